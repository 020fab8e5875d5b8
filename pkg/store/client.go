package store

import (
	"context"

	"github.com/coolbeans/servicecatalog/pkg/rdf"
)

// Client is the query/update surface of the graph store. Every call is scoped
// to exactly one named graph, except Find with an empty pattern graph which
// searches all graphs and is reserved for locating tenant-owned records.
type Client interface {
	// Find returns all quads matching the pattern.
	Find(ctx context.Context, pattern rdf.Pattern) ([]rdf.Quad, error)

	// FindBySubjects returns every quad in graph whose subject is one of
	// subjects, leaving out quads whose predicate is in excludedPredicates.
	FindBySubjects(ctx context.Context, graph string, subjects []rdf.Term, excludedPredicates []string) ([]rdf.Quad, error)

	// Ask reports whether at least one quad matches the pattern. The pattern
	// graph is required.
	Ask(ctx context.Context, pattern rdf.Pattern) (bool, error)

	// Insert adds quads to graph. Quads already present are left untouched.
	Insert(ctx context.Context, graph string, quads []rdf.Quad) error

	// Delete removes quads from graph. Missing quads are ignored.
	Delete(ctx context.Context, graph string, quads []rdf.Quad) error

	// Update deletes and then inserts quads in graph as one request.
	Update(ctx context.Context, graph string, deletes, inserts []rdf.Quad) error

	// UpdateIf applies Update only when at least one quad in graph matches
	// precondition, and reports whether it did. The precondition graph is
	// always the graph argument.
	UpdateIf(ctx context.Context, graph string, precondition rdf.Pattern, deletes, inserts []rdf.Quad) (bool, error)
}
