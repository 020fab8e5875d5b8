package domain

import (
	"slices"
	"time"
)

// ConceptSnapshot is one immutable published version of a catalog entry.
type ConceptSnapshot struct {
	ID                 IRI
	IsVersionOfConcept IRI
	Content
	ProductID       string
	ConceptTags     []ConceptTag
	SnapshotType    SnapshotType
	DateCreated     time.Time
	DateModified    time.Time
	GeneratedAtTime time.Time
}

// IsArchived reports whether the snapshot archives its concept.
func (snapshot ConceptSnapshot) IsArchived() bool {
	return snapshot.SnapshotType == SnapshotTypeDelete
}

// Normalized returns a copy with sets sorted and timestamps in UTC.
func (snapshot ConceptSnapshot) Normalized() ConceptSnapshot {
	snapshot.Content = snapshot.Content.Normalized()
	snapshot.ConceptTags = SortedSet(snapshot.ConceptTags)
	snapshot.DateCreated = snapshot.DateCreated.UTC()
	snapshot.DateModified = snapshot.DateModified.UTC()
	snapshot.GeneratedAtTime = snapshot.GeneratedAtTime.UTC()
	return snapshot
}

// Validate checks the invariants of a concept snapshot.
func (snapshot ConceptSnapshot) Validate() error {
	if err := requireIRI("id", snapshot.ID); err != nil {
		return err
	}
	if err := requireIRI("isVersionOfConcept", snapshot.IsVersionOfConcept); err != nil {
		return err
	}
	if snapshot.SnapshotType == "" {
		return NewInvariantError("snapshotType should not be absent")
	}
	if snapshot.GeneratedAtTime.IsZero() {
		return NewInvariantError("generatedAtTime should not be absent")
	}
	if err := snapshot.Content.validateFinalized(); err != nil {
		return err
	}
	return snapshot.Content.Validate()
}

// IsFunctionallyChanged reports whether other differs from snapshot in a way
// that matters to instances of the concept. Snapshot metadata such as
// timestamps, snapshot type and concept tags is not compared.
func (snapshot ConceptSnapshot) IsFunctionallyChanged(other ConceptSnapshot) bool {
	return !snapshot.Content.FunctionallyEqual(other.Content) || snapshot.ProductID != other.ProductID
}

// Concept is the canonical, mutable-by-replacement catalog entry.
type Concept struct {
	ID   IRI
	UUID string
	Content
	ProductID   string
	ConceptTags []ConceptTag

	LatestConceptSnapshot                    IRI
	LatestFunctionallyChangedConceptSnapshot IRI
	PreviousConceptSnapshots                 []IRI
	IsArchived                               bool
}

// Normalized returns a copy with sets sorted.
func (concept Concept) Normalized() Concept {
	concept.Content = concept.Content.Normalized()
	concept.ConceptTags = SortedSet(concept.ConceptTags)
	concept.PreviousConceptSnapshots = SortedSet(concept.PreviousConceptSnapshots)
	return concept
}

// Validate checks the invariants of a concept.
func (concept Concept) Validate() error {
	if err := requireIRI("id", concept.ID); err != nil {
		return err
	}
	if concept.UUID == "" {
		return NewInvariantError("uuid should not be absent")
	}
	if err := requireIRI("latestConceptSnapshot", concept.LatestConceptSnapshot); err != nil {
		return err
	}
	if err := requireIRI("latestFunctionallyChangedConceptSnapshot", concept.LatestFunctionallyChangedConceptSnapshot); err != nil {
		return err
	}
	if err := concept.Content.validateFinalized(); err != nil {
		return err
	}
	return concept.Content.Validate()
}

// AppliedSnapshots returns the latest snapshot together with the previous
// history, the set used for the idempotency check.
func (concept Concept) AppliedSnapshots() []IRI {
	return SortedSet(append(slices.Clone(concept.PreviousConceptSnapshots), concept.LatestConceptSnapshot))
}

// HasApplied reports whether the snapshot already contributed to this concept.
func (concept Concept) HasApplied(snapshotID IRI) bool {
	return slices.Contains(concept.AppliedSnapshots(), snapshotID)
}

// NewConceptFromSnapshot builds a brand-new concept owning fresh copies of
// the snapshot's children.
func NewConceptFromSnapshot(snapshot ConceptSnapshot, uuid string, ids IdentityGenerator) Concept {
	return Concept{
		ID:                                       snapshot.IsVersionOfConcept,
		UUID:                                     uuid,
		Content:                                  snapshot.Content.Reidentify(ids),
		ProductID:                                snapshot.ProductID,
		ConceptTags:                              slices.Clone(snapshot.ConceptTags),
		LatestConceptSnapshot:                    snapshot.ID,
		LatestFunctionallyChangedConceptSnapshot: snapshot.ID,
		IsArchived:                               snapshot.IsArchived(),
	}.Normalized()
}

// ApplySnapshot returns the concept with its content replaced by the
// snapshot's, the latest pointer moved to it and the old latest pointer kept
// in the history. The functionally changed pointer only moves when
// functionallyChanged is true or the snapshot archives the concept.
func (concept Concept) ApplySnapshot(snapshot ConceptSnapshot, functionallyChanged bool, ids IdentityGenerator) Concept {
	updated := concept
	updated.Content = snapshot.Content.Reidentify(ids)
	updated.ProductID = snapshot.ProductID
	updated.ConceptTags = slices.Clone(snapshot.ConceptTags)
	updated.PreviousConceptSnapshots = append(slices.Clone(concept.PreviousConceptSnapshots), concept.LatestConceptSnapshot)
	updated.LatestConceptSnapshot = snapshot.ID
	if functionallyChanged || snapshot.IsArchived() {
		updated.LatestFunctionallyChangedConceptSnapshot = snapshot.ID
	}
	updated.IsArchived = snapshot.IsArchived()
	return updated.Normalized()
}

// RecordPreviousSnapshot returns the concept with snapshotID appended to its
// history, leaving every pointer untouched.
func (concept Concept) RecordPreviousSnapshot(snapshotID IRI) Concept {
	updated := concept
	updated.PreviousConceptSnapshots = append(slices.Clone(concept.PreviousConceptSnapshots), snapshotID)
	return updated.Normalized()
}
