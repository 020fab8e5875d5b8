// Package merge reconciles upstream snapshots into the canonical concept and
// instance records, and runs the side effects a change to a record has on
// the rest of the catalog.
package merge

import (
	"context"
	"log/slog"
	"time"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/registry"
	"github.com/coolbeans/servicecatalog/pkg/repository"
)

// ConceptMerger merges concept snapshots into concepts.
type ConceptMerger struct {
	repositories *repository.Repositories
	codes        codeEnsurer
	ids          domain.IdentityGenerator
	logger       *slog.Logger
}

// NewConceptMerger creates a ConceptMerger. A nil logger uses slog.Default().
func NewConceptMerger(
	repositories *repository.Repositories,
	codes registry.CodeFetcher,
	ids domain.IdentityGenerator,
	logger *slog.Logger,
) *ConceptMerger {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConceptMerger{
		repositories: repositories,
		codes:        codeEnsurer{codes: repositories.Codes, registry: codes, logger: logger},
		ids:          ids,
		logger:       logger,
	}
}

// Merge applies the concept snapshot referenced by reference to its concept.
//
// A concept that does not exist yet is built from the snapshot. A snapshot
// the concept already applied is skipped without side effects once the
// ledger lists it as processed; before that, a retry of a merge that failed
// after writing the concept finishes the side effects instead. A snapshot
// older than one already applied only joins the history. Any other snapshot
// replaces the concept's content; the functionally changed pointer moves only
// when the content differs from the latest snapshot's or the snapshot
// archives the concept.
//
// Missing authority codes are fetched before a create or update is written.
// After the write, every bestuurseenheid gets a display configuration, and on an update that
// changed or archived the concept, the instances based on it are flagged for
// review.
func (merger *ConceptMerger) Merge(ctx context.Context, reference repository.SnapshotReference) (Outcome, error) {
	startedAt := time.Now()
	ctx, span := startMergeSpan(ctx, "ConceptMerger.Merge", reference.ID.String())
	defer span.End()

	outcome, err := merger.merge(ctx, reference)

	setMergeSpanResult(span, outcome, err)
	recordMergeMetrics(ctx, "concept", time.Since(startedAt), outcome, err == nil)
	return outcome, err
}

func (merger *ConceptMerger) merge(ctx context.Context, reference repository.SnapshotReference) (Outcome, error) {
	snapshot, err := merger.repositories.ConceptSnapshots.FindByID(ctx, reference.ID)
	if err != nil {
		return 0, err
	}

	exists, err := merger.repositories.Concepts.Exists(ctx, snapshot.IsVersionOfConcept)
	if err != nil {
		return 0, err
	}
	if !exists {
		return merger.create(ctx, snapshot)
	}

	concept, err := merger.repositories.Concepts.FindByID(ctx, snapshot.IsVersionOfConcept)
	if err != nil {
		return 0, err
	}

	if concept.HasApplied(snapshot.ID) {
		processed, err := merger.repositories.Ledger.IsProcessed(ctx, reference)
		if err != nil {
			return 0, err
		}
		// Side effects are not repeated for a snapshot that was processed before.
		if processed {
			merger.logger.Debug("concept snapshot already applied",
				"snapshot", snapshot.ID,
				"concept", concept.ID)
			return OutcomeSkipped, nil
		}
		return merger.resume(ctx, snapshot, concept)
	}

	newest, err := merger.isNewerThanApplied(ctx, snapshot, concept)
	if err != nil {
		return 0, err
	}
	if !newest {
		if err := merger.repositories.Concepts.Update(ctx, concept.RecordPreviousSnapshot(snapshot.ID), concept); err != nil {
			return 0, err
		}
		merger.logger.Info("recorded older concept snapshot",
			"snapshot", snapshot.ID,
			"concept", concept.ID,
			"latest", concept.LatestConceptSnapshot)
		return OutcomeRecorded, nil
	}

	return merger.update(ctx, snapshot, concept)
}

func (merger *ConceptMerger) create(ctx context.Context, snapshot domain.ConceptSnapshot) (Outcome, error) {
	if err := merger.codes.ensure(ctx, snapshot.Content); err != nil {
		return 0, err
	}

	_, uuid := merger.ids.NewIdentity(domain.KindConcept)
	concept := domain.NewConceptFromSnapshot(snapshot, uuid, merger.ids)
	if err := merger.repositories.Concepts.Save(ctx, concept); err != nil {
		return 0, err
	}
	merger.logger.Info("created concept", "concept", concept.ID, "snapshot", snapshot.ID)

	if err := merger.ensureDisplayConfigurations(ctx, concept.ID); err != nil {
		return 0, err
	}
	return OutcomeCreated, nil
}

func (merger *ConceptMerger) update(ctx context.Context, snapshot domain.ConceptSnapshot, concept domain.Concept) (Outcome, error) {
	latest, err := merger.repositories.ConceptSnapshots.FindByID(ctx, concept.LatestConceptSnapshot)
	if err != nil {
		return 0, err
	}
	changed := latest.IsFunctionallyChanged(snapshot)

	if err := merger.codes.ensure(ctx, snapshot.Content); err != nil {
		return 0, err
	}

	updated := concept.ApplySnapshot(snapshot, changed, merger.ids)
	if err := merger.repositories.Concepts.Update(ctx, updated, concept); err != nil {
		return 0, err
	}
	merger.logger.Info("updated concept",
		"concept", concept.ID,
		"snapshot", snapshot.ID,
		"functionally_changed", changed,
		"archived", updated.IsArchived)

	if err := merger.afterUpdate(ctx, snapshot, concept.ID, changed); err != nil {
		return 0, err
	}
	return OutcomeUpdated, nil
}

// resume finishes the side effects of a snapshot whose concept write
// succeeded in an earlier attempt but whose processing never completed.
// Every side effect is an idempotent ensure.
func (merger *ConceptMerger) resume(ctx context.Context, snapshot domain.ConceptSnapshot, concept domain.Concept) (Outcome, error) {
	merger.logger.Info("resuming side effects of applied concept snapshot",
		"snapshot", snapshot.ID,
		"concept", concept.ID)

	// An older snapshot that only joined the history has no side effects.
	if concept.LatestConceptSnapshot != snapshot.ID {
		return OutcomeRecorded, nil
	}

	if err := merger.codes.ensure(ctx, snapshot.Content); err != nil {
		return 0, err
	}
	if len(concept.PreviousConceptSnapshots) == 0 {
		if err := merger.ensureDisplayConfigurations(ctx, concept.ID); err != nil {
			return 0, err
		}
		return OutcomeCreated, nil
	}

	changed := concept.LatestFunctionallyChangedConceptSnapshot == snapshot.ID
	if err := merger.afterUpdate(ctx, snapshot, concept.ID, changed); err != nil {
		return 0, err
	}
	return OutcomeUpdated, nil
}

// afterUpdate runs the side effects that follow the write of an updated
// concept.
func (merger *ConceptMerger) afterUpdate(ctx context.Context, snapshot domain.ConceptSnapshot, conceptID domain.IRI, changed bool) error {
	if err := merger.ensureDisplayConfigurations(ctx, conceptID); err != nil {
		return err
	}
	if !changed && !snapshot.IsArchived() {
		return nil
	}
	status := domain.ReviewStatusConceptGewijzigd
	if snapshot.IsArchived() {
		status = domain.ReviewStatusConceptGearchiveerd
	}
	return merger.flagDependents(ctx, conceptID, status)
}

// isNewerThanApplied reports whether snapshot was generated after every
// snapshot the concept already applied.
func (merger *ConceptMerger) isNewerThanApplied(
	ctx context.Context,
	snapshot domain.ConceptSnapshot,
	concept domain.Concept,
) (bool, error) {
	for _, id := range concept.AppliedSnapshots() {
		applied, err := merger.repositories.ConceptSnapshots.FindByID(ctx, id)
		if err != nil {
			return false, err
		}
		if !snapshot.GeneratedAtTime.After(applied.GeneratedAtTime) {
			return false, nil
		}
	}
	return true, nil
}

func (merger *ConceptMerger) ensureDisplayConfigurations(ctx context.Context, conceptID domain.IRI) error {
	created, err := merger.repositories.DisplayConfigurations.EnsureForAll(ctx, conceptID)
	if err != nil {
		return err
	}
	recordSideEffects(ctx, "display_configurations", created)
	return nil
}

func (merger *ConceptMerger) flagDependents(ctx context.Context, conceptID domain.IRI, status domain.ReviewStatus) error {
	dependents, err := merger.repositories.Instances.FindDependents(ctx, conceptID)
	if err != nil {
		return err
	}
	for _, dependent := range dependents {
		if err := merger.repositories.Instances.UpdateReviewStatus(ctx, dependent, status); err != nil {
			return err
		}
	}
	recordSideEffects(ctx, "review_status", len(dependents))
	merger.logger.Info("flagged instances for review",
		"concept", conceptID,
		"status", status,
		"instances", len(dependents))
	return nil
}
