// Package registry provides clients for the external registries the
// reconciler consults: the organisation code registry and the address
// registry.
package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// Code is an entry of the organisation code list.
type Code struct {
	ID        domain.IRI
	PrefLabel string
}

// Selector runs SELECT queries. *sparql.Client implements it.
type Selector interface {
	Select(ctx context.Context, query string) ([]map[string]rdf.Term, error)
}

// CodeFetcher looks up authority codes missing from the local code list.
type CodeFetcher interface {
	FetchCode(ctx context.Context, iri domain.IRI) (Code, error)
}

// CodeRegistry resolves codes against the SPARQL endpoint of the
// organisation registry.
type CodeRegistry struct {
	selector Selector
	logger   *slog.Logger
}

var _ CodeFetcher = (*CodeRegistry)(nil)

// NewCodeRegistry creates a CodeRegistry querying selector.
func NewCodeRegistry(selector Selector, logger *slog.Logger) *CodeRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &CodeRegistry{selector: selector, logger: logger}
}

// FetchCode returns the preferred label of iri. An iri the registry does not
// know is a NotFoundError.
func (registry *CodeRegistry) FetchCode(ctx context.Context, iri domain.IRI) (Code, error) {
	if iri.IsZero() {
		return Code{}, domain.NewInvariantError("code iri should not be absent")
	}

	query := fmt.Sprintf("SELECT ?prefLabel WHERE {\n  %s %s ?prefLabel .\n} LIMIT 1",
		rdf.IRI(iri.String()).String(), rdf.IRI(vocabulary.PrefLabel).String())
	rows, err := registry.selector.Select(ctx, query)
	if err != nil {
		return Code{}, fmt.Errorf("failed to fetch code %s: %w", iri, err)
	}
	if len(rows) == 0 {
		return Code{}, domain.NewNotFoundError("code %s not found in organisation registry", iri)
	}

	label, ok := rows[0]["prefLabel"]
	if !ok || !label.IsLiteral() {
		return Code{}, domain.NewSystemError(nil, "code %s has no literal preferred label", iri)
	}
	registry.logger.Debug("fetched code", "code", iri, "prefLabel", label.Value)
	return Code{ID: iri, PrefLabel: label.Value}, nil
}
