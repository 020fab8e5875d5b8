package repository

import (
	"context"
	"fmt"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/fetch"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// ConceptSnapshotRepository reads the concept snapshots published by the
// upstream feed.
type ConceptSnapshotRepository struct {
	base
	graph string
}

// Graph returns the graph holding the snapshots.
func (repository *ConceptSnapshotRepository) Graph() string {
	return repository.graph
}

// FindByID loads a concept snapshot.
func (repository *ConceptSnapshotRepository) FindByID(ctx context.Context, id domain.IRI) (domain.ConceptSnapshot, error) {
	return load(ctx, repository.base, "concept snapshot", repository.graph, id,
		fetch.ConceptSnapshotOptions(), repository.codec.DecodeConceptSnapshot)
}

// Save writes a snapshot. Snapshots are immutable, so saving one twice fails.
func (repository *ConceptSnapshotRepository) Save(ctx context.Context, snapshot domain.ConceptSnapshot) error {
	quads, err := repository.codec.EncodeConceptSnapshot(snapshot, repository.graph)
	if err != nil {
		return err
	}
	return create(ctx, repository.client, repository.graph, snapshot.ID, vocabulary.ClassConceptSnapshot, quads)
}

// ConceptRepository reads and writes canonical concepts.
type ConceptRepository struct {
	base
	graph string
}

// Graph returns the graph holding the concepts.
func (repository *ConceptRepository) Graph() string {
	return repository.graph
}

// FindByID loads a concept.
func (repository *ConceptRepository) FindByID(ctx context.Context, id domain.IRI) (domain.Concept, error) {
	return load(ctx, repository.base, "concept", repository.graph, id,
		fetch.ConceptOptions(), repository.codec.DecodeConcept)
}

// Exists reports whether a concept with id is stored.
func (repository *ConceptRepository) Exists(ctx context.Context, id domain.IRI) (bool, error) {
	exists, err := repository.client.Ask(ctx, typePattern(repository.graph, id, vocabulary.ClassConcept))
	if err != nil {
		return false, domain.NewSystemError(err, "failed to check existence of concept %s", id)
	}
	return exists, nil
}

// Save writes a new concept.
func (repository *ConceptRepository) Save(ctx context.Context, concept domain.Concept) error {
	quads, err := repository.codec.EncodeConcept(concept, repository.graph)
	if err != nil {
		return err
	}
	return create(ctx, repository.client, repository.graph, concept.ID, vocabulary.ClassConcept, quads)
}

// Update replaces old by updated. The write only happens while the stored
// latest snapshot pointer still equals the one of old.
func (repository *ConceptRepository) Update(ctx context.Context, updated, old domain.Concept) error {
	if updated.ID != old.ID {
		return domain.NewInvariantError("cannot update concept %s with concept %s", old.ID, updated.ID)
	}
	deletes, err := repository.codec.EncodeConcept(old, repository.graph)
	if err != nil {
		return fmt.Errorf("failed to encode stored concept: %w", err)
	}
	inserts, err := repository.codec.EncodeConcept(updated, repository.graph)
	if err != nil {
		return err
	}

	precondition := rdf.Pattern{
		Subject:   rdf.IRI(old.ID.String()),
		Predicate: vocabulary.LatestSnapshot,
		Object:    rdf.IRI(old.LatestConceptSnapshot.String()),
	}
	return replace(ctx, repository.client, repository.graph, precondition, deletes, inserts, old.ID)
}
