package repository

import (
	"context"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/registry"
	"github.com/coolbeans/servicecatalog/pkg/store"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// CodeRepository keeps the local copy of the organisation code list that
// competent and executing authorities point into.
type CodeRepository struct {
	client store.Client
	graph  string
	ids    domain.IdentityGenerator
}

// Exists reports whether iri is in the local code list.
func (repository *CodeRepository) Exists(ctx context.Context, iri domain.IRI) (bool, error) {
	exists, err := repository.client.Ask(ctx, typePattern(repository.graph, iri, vocabulary.ClassCode))
	if err != nil {
		return false, domain.NewSystemError(err, "failed to look up code %s", iri)
	}
	return exists, nil
}

// Save adds code to the local code list in both organisation schemes.
func (repository *CodeRepository) Save(ctx context.Context, code registry.Code) error {
	if code.ID.IsZero() || code.PrefLabel == "" {
		return domain.NewInvariantError("code should have an id and a preferred label")
	}

	_, uuid := repository.ids.NewIdentity(domain.KindCode)
	subject := rdf.IRI(code.ID.String())
	graph := repository.graph
	quads := []rdf.Quad{
		rdf.NewQuad(subject, rdf.Type, rdf.IRI(vocabulary.ClassCode), graph),
		rdf.NewQuad(subject, vocabulary.UUID, rdf.Literal(uuid), graph),
		rdf.NewQuad(subject, vocabulary.PrefLabel, rdf.Literal(code.PrefLabel), graph),
		rdf.NewQuad(subject, vocabulary.SeeAlso, subject, graph),
	}
	for _, scheme := range []string{vocabulary.SchemeOrganisations, vocabulary.SchemeOrganisationsTailored} {
		quads = append(quads,
			rdf.NewQuad(subject, vocabulary.InScheme, rdf.IRI(scheme), graph),
			rdf.NewQuad(subject, vocabulary.TopConcept, rdf.IRI(scheme), graph))
	}
	if err := repository.client.Insert(ctx, graph, quads); err != nil {
		return domain.NewSystemError(err, "failed to insert code %s", code.ID)
	}
	return nil
}
