package domain

import (
	"slices"
	"time"
)

// InstanceSnapshot is one immutable version of a tenant-specific instance
// emitted by an upstream feed.
type InstanceSnapshot struct {
	ID                  IRI
	IsVersionOfInstance IRI
	CreatedBy           IRI
	ConceptID           IRI
	Content
	Languages       []LanguageCode
	Spatials        []IRI
	ContactPoints   []ContactPoint
	IsArchived      bool
	DateCreated     time.Time
	DateModified    time.Time
	GeneratedAtTime time.Time
}

// Normalized returns a copy with sets sorted and timestamps in UTC.
func (snapshot InstanceSnapshot) Normalized() InstanceSnapshot {
	snapshot.Content = snapshot.Content.Normalized()
	snapshot.Languages = SortedSet(snapshot.Languages)
	snapshot.Spatials = SortedSet(snapshot.Spatials)
	snapshot.ContactPoints = slices.Clone(snapshot.ContactPoints)
	SortByOrder(snapshot.ContactPoints, ContactPointOrder)
	snapshot.DateCreated = snapshot.DateCreated.UTC()
	snapshot.DateModified = snapshot.DateModified.UTC()
	snapshot.GeneratedAtTime = snapshot.GeneratedAtTime.UTC()
	return snapshot
}

// Validate checks the invariants of an instance snapshot.
func (snapshot InstanceSnapshot) Validate() error {
	if err := requireIRI("id", snapshot.ID); err != nil {
		return err
	}
	if err := requireIRI("isVersionOfInstance", snapshot.IsVersionOfInstance); err != nil {
		return err
	}
	if err := requireIRI("createdBy", snapshot.CreatedBy); err != nil {
		return err
	}
	if snapshot.Title == nil {
		return NewInvariantError("title should not be absent")
	}
	if snapshot.Description == nil {
		return NewInvariantError("description should not be absent")
	}
	if snapshot.GeneratedAtTime.IsZero() {
		return NewInvariantError("generatedAtTime should not be absent")
	}
	if snapshot.DateCreated.IsZero() || snapshot.DateModified.IsZero() {
		return NewInvariantError("dateCreated and dateModified should not be absent")
	}
	if err := validateContactPoints(snapshot.ContactPoints); err != nil {
		return err
	}
	return snapshot.Content.Validate()
}

// Instance is the canonical record of a tenant-specific public service.
type Instance struct {
	ID                IRI
	UUID              string
	CreatedBy         IRI
	ConceptID         IRI
	ConceptSnapshotID IRI
	Content
	ProductID                           string
	Languages                           []LanguageCode
	Spatials                            []IRI
	ContactPoints                       []ContactPoint
	DutchLanguageVariant                string
	NeedsConversionFromFormalToInformal bool
	Status                              InstanceStatus
	ReviewStatus                        ReviewStatus
	PublicationStatus                   PublicationStatus
	DateCreated                         time.Time
	DateModified                        time.Time
	DateSent                            *time.Time
	DatePublished                       *time.Time
}

// Normalized returns a copy with sets sorted and timestamps in UTC.
func (instance Instance) Normalized() Instance {
	instance.Content = instance.Content.Normalized()
	instance.Languages = SortedSet(instance.Languages)
	instance.Spatials = SortedSet(instance.Spatials)
	instance.ContactPoints = slices.Clone(instance.ContactPoints)
	SortByOrder(instance.ContactPoints, ContactPointOrder)
	instance.DateCreated = instance.DateCreated.UTC()
	instance.DateModified = instance.DateModified.UTC()
	instance.DateSent = normalizeTime(instance.DateSent)
	instance.DatePublished = normalizeTime(instance.DatePublished)
	return instance
}

// Validate checks the invariants of an instance.
func (instance Instance) Validate() error {
	if err := requireIRI("id", instance.ID); err != nil {
		return err
	}
	if instance.UUID == "" {
		return NewInvariantError("uuid should not be absent")
	}
	if err := requireIRI("createdBy", instance.CreatedBy); err != nil {
		return err
	}
	if instance.Status == "" {
		return NewInvariantError("status should not be absent")
	}
	if instance.DateCreated.IsZero() || instance.DateModified.IsZero() {
		return NewInvariantError("dateCreated and dateModified should not be absent")
	}
	switch instance.DutchLanguageVariant {
	case "", LanguageNl, LanguageNlFormal, LanguageNlInformal:
	default:
		return NewInvariantError("dutchLanguageVariant %q is not a dutch language tag", instance.DutchLanguageVariant)
	}
	if instance.Status == InstanceStatusVerzonden && instance.DateSent == nil {
		return NewInvariantError("dateSent should be present when status is verzonden")
	}
	if err := validateContactPoints(instance.ContactPoints); err != nil {
		return err
	}
	return instance.Content.Validate()
}

// IsPublished reports whether the instance has reached the public portals.
func (instance Instance) IsPublished() bool {
	return instance.PublicationStatus == PublicationStatusGepubliceerd
}

// NewInstanceFromSnapshot builds a sent instance from its first snapshot.
// conceptSnapshotID is the concept snapshot the instance is based on, if any.
func NewInstanceFromSnapshot(snapshot InstanceSnapshot, uuid string, conceptSnapshotID IRI, ids IdentityGenerator) Instance {
	sent := snapshot.GeneratedAtTime
	return Instance{
		ID:                snapshot.IsVersionOfInstance,
		UUID:              uuid,
		CreatedBy:         snapshot.CreatedBy,
		ConceptID:         snapshot.ConceptID,
		ConceptSnapshotID: conceptSnapshotID,
		Content:           snapshot.Content.Reidentify(ids),
		Languages:         slices.Clone(snapshot.Languages),
		Spatials:          slices.Clone(snapshot.Spatials),
		ContactPoints:     reidentifyAll(snapshot.ContactPoints, ContactPoint.Reidentify, ids),
		Status:            InstanceStatusVerzonden,
		DateCreated:       snapshot.DateCreated,
		DateModified:      snapshot.DateModified,
		DateSent:          &sent,
	}.Normalized()
}

// ApplySnapshot replaces the content of the instance with the snapshot's.
// Identity and creation date are kept; a published instance is flagged for
// republication.
func (instance Instance) ApplySnapshot(snapshot InstanceSnapshot, conceptSnapshotID IRI, ids IdentityGenerator) Instance {
	sent := snapshot.GeneratedAtTime
	updated := instance
	updated.ConceptID = snapshot.ConceptID
	updated.ConceptSnapshotID = conceptSnapshotID
	updated.Content = snapshot.Content.Reidentify(ids)
	updated.Languages = slices.Clone(snapshot.Languages)
	updated.Spatials = slices.Clone(snapshot.Spatials)
	updated.ContactPoints = reidentifyAll(snapshot.ContactPoints, ContactPoint.Reidentify, ids)
	updated.Status = InstanceStatusVerzonden
	updated.ReviewStatus = ""
	updated.DateModified = snapshot.DateModified
	updated.DateSent = &sent
	if instance.IsPublished() {
		updated.PublicationStatus = PublicationStatusTeHerpubliceren
	}
	return updated.Normalized()
}

func validateContactPoints(contactPoints []ContactPoint) error {
	for _, contactPoint := range contactPoints {
		if err := contactPoint.validate(); err != nil {
			return err
		}
	}
	return ValidateOrders("contact points", contactPoints, ContactPointOrder)
}
