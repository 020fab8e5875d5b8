package repository

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/store"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// SnapshotReference identifies a snapshot in the graph it was published in.
type SnapshotReference struct {
	ID              domain.IRI
	Graph           string
	GeneratedAtTime time.Time
}

// Ledger records which snapshots were processed and which failed. Entries are
// only ever added.
type Ledger struct {
	client store.Client
	graph  string
}

// Pending returns the snapshots of class in sourceGraph that are neither
// processed nor failed, oldest first with ties broken by id.
func (ledger *Ledger) Pending(ctx context.Context, sourceGraph, class string) ([]SnapshotReference, error) {
	snapshots, err := ledger.snapshots(ctx, rdf.Pattern{
		Graph:     sourceGraph,
		Predicate: rdf.Type,
		Object:    rdf.IRI(class),
	})
	if err != nil {
		return nil, err
	}

	done := make(map[domain.IRI]bool)
	for _, predicate := range []string{vocabulary.ProcessedIn, vocabulary.FailedIn} {
		ids, err := ledger.marked(ctx, sourceGraph, predicate)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			done[id] = true
		}
	}

	pending := slices.DeleteFunc(snapshots, func(reference SnapshotReference) bool {
		return done[reference.ID]
	})
	return ledger.withTimes(ctx, sourceGraph, pending)
}

// ProcessedVersionsOf returns the processed snapshots in sourceGraph that are
// a version of id, oldest first.
func (ledger *Ledger) ProcessedVersionsOf(ctx context.Context, sourceGraph string, id domain.IRI) ([]SnapshotReference, error) {
	versions, err := ledger.snapshots(ctx, rdf.Pattern{
		Graph:     sourceGraph,
		Predicate: vocabulary.IsVersionOf,
		Object:    rdf.IRI(id.String()),
	})
	if err != nil {
		return nil, err
	}

	processed, err := ledger.marked(ctx, sourceGraph, vocabulary.ProcessedIn)
	if err != nil {
		return nil, err
	}
	versions = slices.DeleteFunc(versions, func(reference SnapshotReference) bool {
		return !slices.Contains(processed, reference.ID)
	})
	return ledger.withTimes(ctx, sourceGraph, versions)
}

// IsProcessed reports whether the snapshot was processed successfully.
func (ledger *Ledger) IsProcessed(ctx context.Context, reference SnapshotReference) (bool, error) {
	processed, err := ledger.client.Ask(ctx, ledger.entry(reference, vocabulary.ProcessedIn))
	if err != nil {
		return false, domain.NewSystemError(err, "failed to read ledger for %s", reference.ID)
	}
	return processed, nil
}

// MarkProcessed records a successfully processed snapshot.
func (ledger *Ledger) MarkProcessed(ctx context.Context, reference SnapshotReference) error {
	return ledger.mark(ctx, reference, vocabulary.ProcessedIn)
}

// MarkFailed records a snapshot whose processing gave up.
func (ledger *Ledger) MarkFailed(ctx context.Context, reference SnapshotReference) error {
	return ledger.mark(ctx, reference, vocabulary.FailedIn)
}

func (ledger *Ledger) mark(ctx context.Context, reference SnapshotReference, predicate string) error {
	entry := ledger.entry(reference, predicate)
	quad := rdf.NewQuad(entry.Subject, entry.Predicate, entry.Object, ledger.graph)
	if err := ledger.client.Insert(ctx, ledger.graph, []rdf.Quad{quad}); err != nil {
		return domain.NewSystemError(err, "failed to write ledger entry for %s", reference.ID)
	}
	return nil
}

func (ledger *Ledger) entry(reference SnapshotReference, predicate string) rdf.Pattern {
	return rdf.Pattern{
		Graph:     ledger.graph,
		Subject:   rdf.IRI(reference.ID.String()),
		Predicate: predicate,
		Object:    rdf.IRI(reference.Graph),
	}
}

func (ledger *Ledger) marked(ctx context.Context, sourceGraph, predicate string) ([]domain.IRI, error) {
	quads, err := ledger.client.Find(ctx, rdf.Pattern{
		Graph:     ledger.graph,
		Predicate: predicate,
		Object:    rdf.IRI(sourceGraph),
	})
	if err != nil {
		return nil, domain.NewSystemError(err, "failed to read ledger")
	}
	ids := make([]domain.IRI, 0, len(quads))
	for _, quad := range quads {
		ids = append(ids, domain.IRI(quad.Subject.Value))
	}
	return ids, nil
}

// snapshots returns the distinct subjects matching pattern as references.
func (ledger *Ledger) snapshots(ctx context.Context, pattern rdf.Pattern) ([]SnapshotReference, error) {
	quads, err := ledger.client.Find(ctx, pattern)
	if err != nil {
		return nil, domain.NewSystemError(err, "failed to list snapshots in %s", pattern.Graph)
	}
	ids := make([]domain.IRI, 0, len(quads))
	for _, quad := range quads {
		if quad.Subject.Kind == rdf.KindIRI {
			ids = append(ids, domain.IRI(quad.Subject.Value))
		}
	}
	var references []SnapshotReference
	for _, id := range domain.SortedSet(ids) {
		references = append(references, SnapshotReference{ID: id, Graph: pattern.Graph})
	}
	return references, nil
}

// withTimes fills in the generation time of every reference and sorts them
// oldest first. A snapshot without a parseable time sorts first so that its
// decode failure is reported early.
func (ledger *Ledger) withTimes(ctx context.Context, sourceGraph string, references []SnapshotReference) ([]SnapshotReference, error) {
	if len(references) == 0 {
		return nil, nil
	}
	quads, err := ledger.client.Find(ctx, rdf.Pattern{Graph: sourceGraph, Predicate: vocabulary.GeneratedAtTime})
	if err != nil {
		return nil, domain.NewSystemError(err, "failed to read generation times in %s", sourceGraph)
	}
	times := make(map[domain.IRI]time.Time, len(quads))
	for _, quad := range quads {
		generatedAt, err := time.Parse(time.RFC3339Nano, quad.Object.Value)
		if err == nil {
			times[domain.IRI(quad.Subject.Value)] = generatedAt.UTC()
		}
	}

	for i := range references {
		references[i].GeneratedAtTime = times[references[i].ID]
	}
	slices.SortFunc(references, func(a, b SnapshotReference) int {
		return cmp.Or(a.GeneratedAtTime.Compare(b.GeneratedAtTime), cmp.Compare(a.ID, b.ID))
	})
	return references, nil
}
