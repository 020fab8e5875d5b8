package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/coolbeans/servicecatalog/pkg/codec"
	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/fetch"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// InstanceSnapshotRepository reads the instance snapshots sent by external
// authoring tools.
type InstanceSnapshotRepository struct {
	base
	graph string
}

// Graph returns the graph holding the snapshots.
func (repository *InstanceSnapshotRepository) Graph() string {
	return repository.graph
}

// FindByID loads an instance snapshot.
func (repository *InstanceSnapshotRepository) FindByID(ctx context.Context, id domain.IRI) (domain.InstanceSnapshot, error) {
	return load(ctx, repository.base, "instance snapshot", repository.graph, id,
		fetch.InstanceSnapshotOptions(), repository.codec.DecodeInstanceSnapshot)
}

// Save writes a snapshot. Snapshots are immutable, so saving one twice fails.
func (repository *InstanceSnapshotRepository) Save(ctx context.Context, snapshot domain.InstanceSnapshot) error {
	quads, err := repository.codec.EncodeInstanceSnapshot(snapshot, repository.graph)
	if err != nil {
		return err
	}
	return create(ctx, repository.client, repository.graph, snapshot.ID, vocabulary.ClassInstanceSnapshot, quads)
}

// InstanceReference locates an instance in the graph of its bestuurseenheid.
type InstanceReference struct {
	ID    domain.IRI
	Graph string
}

// InstanceRepository reads and writes instances. Every instance lives in the
// graph of the bestuurseenheid that created it, so each call names its graph.
type InstanceRepository struct {
	base
	excludedGraphs []string
}

// FindByID loads an instance from graph.
func (repository *InstanceRepository) FindByID(ctx context.Context, graph string, id domain.IRI) (domain.Instance, error) {
	return load(ctx, repository.base, "instance", graph, id,
		fetch.InstanceOptions(), repository.codec.DecodeInstance)
}

// Exists reports whether an instance with id is stored in graph.
func (repository *InstanceRepository) Exists(ctx context.Context, graph string, id domain.IRI) (bool, error) {
	exists, err := repository.client.Ask(ctx, typePattern(graph, id, vocabulary.ClassInstance))
	if err != nil {
		return false, domain.NewSystemError(err, "failed to check existence of instance %s", id)
	}
	return exists, nil
}

// IsDeleted reports whether a tombstone replaced the instance id in graph.
func (repository *InstanceRepository) IsDeleted(ctx context.Context, graph string, id domain.IRI) (bool, error) {
	deleted, err := repository.client.Ask(ctx, typePattern(graph, id, vocabulary.ClassTombstone))
	if err != nil {
		return false, domain.NewSystemError(err, "failed to look up tombstone of %s", id)
	}
	return deleted, nil
}

// Save writes a new instance into graph, replacing the tombstone of an
// earlier deletion of the same id.
func (repository *InstanceRepository) Save(ctx context.Context, graph string, instance domain.Instance) error {
	quads, err := repository.codec.EncodeInstance(instance, graph)
	if err != nil {
		return err
	}
	if err := repository.clearTombstone(ctx, graph, instance.ID); err != nil {
		return err
	}
	return create(ctx, repository.client, graph, instance.ID, vocabulary.ClassInstance, quads)
}

func (repository *InstanceRepository) clearTombstone(ctx context.Context, graph string, id domain.IRI) error {
	deleted, err := repository.IsDeleted(ctx, graph, id)
	if err != nil || !deleted {
		return err
	}
	quads, err := repository.client.Find(ctx, rdf.Pattern{Graph: graph, Subject: rdf.IRI(id.String())})
	if err != nil {
		return domain.NewSystemError(err, "failed to read tombstone of %s", id)
	}
	if err := repository.client.Delete(ctx, graph, quads); err != nil {
		return domain.NewSystemError(err, "failed to remove tombstone of %s", id)
	}
	return nil
}

// Update replaces old by updated in graph while the stored modification date
// still equals the one of old.
func (repository *InstanceRepository) Update(ctx context.Context, graph string, updated, old domain.Instance) error {
	if updated.ID != old.ID {
		return domain.NewInvariantError("cannot update instance %s with instance %s", old.ID, updated.ID)
	}
	deletes, err := repository.codec.EncodeInstance(old, graph)
	if err != nil {
		return fmt.Errorf("failed to encode stored instance: %w", err)
	}
	inserts, err := repository.codec.EncodeInstance(updated, graph)
	if err != nil {
		return err
	}
	return replace(ctx, repository.client, graph, modifiedPrecondition(old), deletes, inserts, old.ID)
}

// Delete removes the instance from graph and leaves a tombstone in its place.
func (repository *InstanceRepository) Delete(ctx context.Context, graph string, instance domain.Instance, deletedAt time.Time) error {
	deletes, err := repository.codec.EncodeInstance(instance, graph)
	if err != nil {
		return fmt.Errorf("failed to encode stored instance: %w", err)
	}
	subject := rdf.IRI(instance.ID.String())
	tombstone := []rdf.Quad{
		rdf.NewQuad(subject, rdf.Type, rdf.IRI(vocabulary.ClassTombstone), graph),
		rdf.NewQuad(subject, vocabulary.FormerType, rdf.IRI(vocabulary.ClassInstance), graph),
		rdf.NewQuad(subject, vocabulary.Deleted, codec.DateTimeLiteral(deletedAt), graph),
	}
	return replace(ctx, repository.client, graph, modifiedPrecondition(instance), deletes, tombstone, instance.ID)
}

// FindDependents returns every instance, in any bestuurseenheid graph, that
// is based on the concept conceptID.
func (repository *InstanceRepository) FindDependents(ctx context.Context, conceptID domain.IRI) ([]InstanceReference, error) {
	quads, err := repository.client.Find(ctx, rdf.Pattern{
		Predicate: vocabulary.Source,
		Object:    rdf.IRI(conceptID.String()),
	})
	if err != nil {
		return nil, domain.NewSystemError(err, "failed to find instances of concept %s", conceptID)
	}

	var references []InstanceReference
	for _, quad := range quads {
		if slices.Contains(repository.excludedGraphs, quad.Graph) {
			continue
		}
		id := domain.IRI(quad.Subject.Value)
		isInstance, err := repository.Exists(ctx, quad.Graph, id)
		if err != nil {
			return nil, err
		}
		if isInstance {
			references = append(references, InstanceReference{ID: id, Graph: quad.Graph})
		}
	}
	slices.SortFunc(references, func(a, b InstanceReference) int {
		return cmp.Or(cmp.Compare(a.Graph, b.Graph), cmp.Compare(a.ID, b.ID))
	})
	return references, nil
}

// UpdateReviewStatus sets the review status of the referenced instance.
func (repository *InstanceRepository) UpdateReviewStatus(
	ctx context.Context,
	reference InstanceReference,
	status domain.ReviewStatus,
) error {
	instance, err := repository.FindByID(ctx, reference.Graph, reference.ID)
	if err != nil {
		return err
	}
	if instance.ReviewStatus == status {
		return nil
	}
	updated := instance
	updated.ReviewStatus = status
	return repository.Update(ctx, reference.Graph, updated, instance)
}

func modifiedPrecondition(instance domain.Instance) rdf.Pattern {
	return rdf.Pattern{
		Subject:   rdf.IRI(instance.ID.String()),
		Predicate: vocabulary.DateModified,
		Object:    codec.DateTimeLiteral(instance.DateModified),
	}
}
