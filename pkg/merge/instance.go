package merge

import (
	"context"
	"log/slog"
	"time"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/registry"
	"github.com/coolbeans/servicecatalog/pkg/repository"
)

// InstanceMerger merges instance snapshots into the instances of the
// bestuurseenheid that created them.
type InstanceMerger struct {
	repositories *repository.Repositories
	codes        codeEnsurer
	addresses    *AddressEnricher
	ids          domain.IdentityGenerator
	logger       *slog.Logger
	now          func() time.Time
}

// NewInstanceMerger creates an InstanceMerger. addresses may be nil to skip
// address enrichment. A nil logger uses slog.Default().
func NewInstanceMerger(
	repositories *repository.Repositories,
	codes registry.CodeFetcher,
	addresses *AddressEnricher,
	ids domain.IdentityGenerator,
	logger *slog.Logger,
) *InstanceMerger {
	if logger == nil {
		logger = slog.Default()
	}
	return &InstanceMerger{
		repositories: repositories,
		codes:        codeEnsurer{codes: repositories.Codes, registry: codes, logger: logger},
		addresses:    addresses,
		ids:          ids,
		logger:       logger,
		now:          time.Now,
	}
}

// Merge applies the instance snapshot referenced by reference to its instance.
//
// Snapshots are compared with the processed versions of the same instance in
// the ledger: one already processed is skipped, one older than a processed
// version is only recorded. Otherwise the instance is created, replaced, or,
// for an archiving snapshot, deleted and replaced by a tombstone.
func (merger *InstanceMerger) Merge(ctx context.Context, reference repository.SnapshotReference) (Outcome, error) {
	startedAt := time.Now()
	ctx, span := startMergeSpan(ctx, "InstanceMerger.Merge", reference.ID.String())
	defer span.End()

	outcome, err := merger.merge(ctx, reference)

	setMergeSpanResult(span, outcome, err)
	recordMergeMetrics(ctx, "instance", time.Since(startedAt), outcome, err == nil)
	return outcome, err
}

func (merger *InstanceMerger) merge(ctx context.Context, reference repository.SnapshotReference) (Outcome, error) {
	snapshot, err := merger.repositories.InstanceSnapshots.FindByID(ctx, reference.ID)
	if err != nil {
		return 0, err
	}
	bestuurseenheid, err := merger.repositories.Bestuurseenheden.FindByID(ctx, snapshot.CreatedBy)
	if err != nil {
		return 0, err
	}
	graph := bestuurseenheid.Graph()

	versions, err := merger.repositories.Ledger.ProcessedVersionsOf(
		ctx, merger.repositories.InstanceSnapshots.Graph(), snapshot.IsVersionOfInstance)
	if err != nil {
		return 0, err
	}
	for _, version := range versions {
		if version.ID == snapshot.ID {
			return OutcomeSkipped, nil
		}
	}
	// Like concept snapshots, a snapshot is only applied when it is strictly
	// newer than every processed version.
	for _, version := range versions {
		if !snapshot.GeneratedAtTime.After(version.GeneratedAtTime) {
			merger.logger.Info("instance snapshot not newer than a processed version",
				"snapshot", snapshot.ID,
				"instance", snapshot.IsVersionOfInstance,
				"newer", version.ID)
			return OutcomeRecorded, nil
		}
	}

	exists, err := merger.repositories.Instances.Exists(ctx, graph, snapshot.IsVersionOfInstance)
	if err != nil {
		return 0, err
	}

	switch {
	case !exists && snapshot.IsArchived:
		merger.logger.Info("ignored archiving snapshot of unknown instance",
			"snapshot", snapshot.ID,
			"instance", snapshot.IsVersionOfInstance)
		return OutcomeIgnored, nil
	case exists && snapshot.IsArchived:
		return merger.delete(ctx, graph, snapshot)
	}

	concept, err := merger.concept(ctx, snapshot)
	if err != nil {
		return 0, err
	}
	if err := merger.codes.ensure(ctx, snapshot.Content); err != nil {
		return 0, err
	}

	outcome := OutcomeUpdated
	if exists {
		err = merger.update(ctx, graph, snapshot, concept)
	} else {
		outcome = OutcomeCreated
		err = merger.create(ctx, graph, snapshot, concept)
	}
	if err != nil {
		return 0, err
	}

	if !snapshot.ConceptID.IsZero() {
		err := merger.repositories.DisplayConfigurations.MarkInstantiated(ctx, bestuurseenheid, snapshot.ConceptID)
		if err != nil && !domain.IsNotFound(err) {
			return 0, err
		}
		if err != nil {
			merger.logger.Warn("no display configuration to mark instantiated",
				"concept", snapshot.ConceptID,
				"bestuurseenheid", bestuurseenheid.ID)
		}
	}
	return outcome, nil
}

// concept returns the concept the snapshot is based on, or the zero concept
// when the snapshot is not based on one.
func (merger *InstanceMerger) concept(ctx context.Context, snapshot domain.InstanceSnapshot) (domain.Concept, error) {
	if snapshot.ConceptID.IsZero() {
		return domain.Concept{}, nil
	}
	return merger.repositories.Concepts.FindByID(ctx, snapshot.ConceptID)
}

func (merger *InstanceMerger) create(
	ctx context.Context,
	graph string,
	snapshot domain.InstanceSnapshot,
	concept domain.Concept,
) error {
	_, uuid := merger.ids.NewIdentity(domain.KindInstance)
	instance := domain.NewInstanceFromSnapshot(snapshot, uuid, concept.LatestFunctionallyChangedConceptSnapshot, merger.ids)
	instance.ProductID = concept.ProductID
	instance.ContactPoints = merger.enrich(ctx, instance.ContactPoints)

	if err := merger.repositories.Instances.Save(ctx, graph, instance); err != nil {
		return err
	}
	merger.logger.Info("created instance", "instance", instance.ID, "graph", graph, "snapshot", snapshot.ID)
	return nil
}

func (merger *InstanceMerger) update(
	ctx context.Context,
	graph string,
	snapshot domain.InstanceSnapshot,
	concept domain.Concept,
) error {
	instance, err := merger.repositories.Instances.FindByID(ctx, graph, snapshot.IsVersionOfInstance)
	if err != nil {
		return err
	}
	updated := instance.ApplySnapshot(snapshot, concept.LatestFunctionallyChangedConceptSnapshot, merger.ids)
	updated.ProductID = concept.ProductID
	updated.ContactPoints = merger.enrich(ctx, updated.ContactPoints)

	if err := merger.repositories.Instances.Update(ctx, graph, updated, instance); err != nil {
		return err
	}
	merger.logger.Info("updated instance",
		"instance", instance.ID,
		"graph", graph,
		"snapshot", snapshot.ID,
		"publication_status", updated.PublicationStatus)
	return nil
}

func (merger *InstanceMerger) delete(ctx context.Context, graph string, snapshot domain.InstanceSnapshot) (Outcome, error) {
	instance, err := merger.repositories.Instances.FindByID(ctx, graph, snapshot.IsVersionOfInstance)
	if err != nil {
		return 0, err
	}
	if err := merger.repositories.Instances.Delete(ctx, graph, instance, merger.now()); err != nil {
		return 0, err
	}
	merger.logger.Info("deleted instance", "instance", instance.ID, "graph", graph, "snapshot", snapshot.ID)
	return OutcomeDeleted, nil
}

func (merger *InstanceMerger) enrich(ctx context.Context, contactPoints []domain.ContactPoint) []domain.ContactPoint {
	if merger.addresses == nil {
		return contactPoints
	}
	return merger.addresses.Enrich(ctx, contactPoints)
}
