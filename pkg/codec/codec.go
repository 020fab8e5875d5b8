// Package codec translates between triple closures and the catalog
// aggregates. Decoding enforces the invariants the store cannot: a single
// expected rdf:type, valid enumeration codes, present and unique child orders.
// Encoding is its mirror, using the same code tables, so that every valid
// aggregate survives a round trip unchanged.
package codec

import (
	"fmt"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/index"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// Result carries a decoded value together with the integrity warnings found
// while decoding it.
type Result[T any] struct {
	Value    T
	Warnings []index.Warning
}

// Codec decodes and encodes aggregates. It is safe for concurrent use.
type Codec struct {
	tables *tables
}

// New builds a codec and its code tables.
func New() *Codec {
	return &Codec{tables: newTables()}
}

// DecodeConceptSnapshot decodes the snapshot id out of quads. Children whose
// title or description is absent are dropped.
func (c *Codec) DecodeConceptSnapshot(quads []rdf.Quad, id domain.IRI) (Result[domain.ConceptSnapshot], error) {
	d := newDecoder(c.tables, quads)
	snapshot, err := d.conceptSnapshot(id)
	if err != nil {
		return Result[domain.ConceptSnapshot]{}, fmt.Errorf("failed to decode concept snapshot %s: %w", id, err)
	}
	return Result[domain.ConceptSnapshot]{Value: snapshot, Warnings: d.allWarnings()}, nil
}

func (d *decoder) conceptSnapshot(id domain.IRI) (domain.ConceptSnapshot, error) {
	if err := d.requireType(id, vocabulary.ClassConceptSnapshot); err != nil {
		return domain.ConceptSnapshot{}, err
	}

	content, err := d.content(id)
	if err != nil {
		return domain.ConceptSnapshot{}, err
	}

	snapshot := domain.ConceptSnapshot{
		ID:                 id,
		IsVersionOfConcept: d.reference(id, vocabulary.IsVersionOf),
		Content:            withoutUnfinishedChildren(content),
		ProductID:          d.literal(id, vocabulary.ProductID),
	}
	if snapshot.ConceptTags, err = codes(d, d.tables.conceptTags, id, vocabulary.ConceptTag); err != nil {
		return domain.ConceptSnapshot{}, err
	}
	if snapshot.SnapshotType, err = code(d, d.tables.snapshotTypes, id, vocabulary.SnapshotType); err != nil {
		return domain.ConceptSnapshot{}, err
	}
	if snapshot.DateCreated, err = d.requiredTime(id, vocabulary.DateCreated); err != nil {
		return domain.ConceptSnapshot{}, err
	}
	if snapshot.DateModified, err = d.requiredTime(id, vocabulary.DateModified); err != nil {
		return domain.ConceptSnapshot{}, err
	}
	if snapshot.GeneratedAtTime, err = d.requiredTime(id, vocabulary.GeneratedAtTime); err != nil {
		return domain.ConceptSnapshot{}, err
	}

	if err := snapshot.Validate(); err != nil {
		return domain.ConceptSnapshot{}, err
	}
	return snapshot, nil
}

// EncodeConceptSnapshot encodes snapshot into graph.
func (c *Codec) EncodeConceptSnapshot(snapshot domain.ConceptSnapshot, graph string) ([]rdf.Quad, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("failed to encode concept snapshot %s: %w", snapshot.ID, err)
	}

	e := newEncoder(c.tables, graph)
	id := snapshot.ID
	e.typed(id, vocabulary.ClassConceptSnapshot)
	e.reference(id, vocabulary.IsVersionOf, snapshot.IsVersionOfConcept)
	e.literal(id, vocabulary.ProductID, snapshot.ProductID)
	e.dateTime(id, vocabulary.DateCreated, snapshot.DateCreated)
	e.dateTime(id, vocabulary.DateModified, snapshot.DateModified)
	e.dateTime(id, vocabulary.GeneratedAtTime, snapshot.GeneratedAtTime)

	if err := e.content(id, snapshot.Content); err != nil {
		return nil, fmt.Errorf("failed to encode concept snapshot %s: %w", id, err)
	}
	if err := encodeCodes(e, c.tables.conceptTags, id, vocabulary.ConceptTag, snapshot.ConceptTags); err != nil {
		return nil, fmt.Errorf("failed to encode concept snapshot %s: %w", id, err)
	}
	if err := encodeCode(e, c.tables.snapshotTypes, id, vocabulary.SnapshotType, snapshot.SnapshotType); err != nil {
		return nil, fmt.Errorf("failed to encode concept snapshot %s: %w", id, err)
	}
	return e.result(), nil
}

// DecodeConcept decodes the concept id out of quads.
func (c *Codec) DecodeConcept(quads []rdf.Quad, id domain.IRI) (Result[domain.Concept], error) {
	d := newDecoder(c.tables, quads)
	concept, err := d.concept(id)
	if err != nil {
		return Result[domain.Concept]{}, fmt.Errorf("failed to decode concept %s: %w", id, err)
	}
	return Result[domain.Concept]{Value: concept, Warnings: d.allWarnings()}, nil
}

func (d *decoder) concept(id domain.IRI) (domain.Concept, error) {
	if err := d.requireType(id, vocabulary.ClassConcept); err != nil {
		return domain.Concept{}, err
	}

	content, err := d.content(id)
	if err != nil {
		return domain.Concept{}, err
	}

	concept := domain.Concept{
		ID:                                       id,
		UUID:                                     d.literal(id, vocabulary.UUID),
		Content:                                  content,
		ProductID:                                d.literal(id, vocabulary.ProductID),
		LatestConceptSnapshot:                    d.reference(id, vocabulary.LatestSnapshot),
		LatestFunctionallyChangedConceptSnapshot: d.reference(id, vocabulary.LatestFunctionalChange),
		PreviousConceptSnapshots:                 d.references(id, vocabulary.PreviousSnapshot),
		IsArchived:                               d.boolean(id, vocabulary.IsArchived),
	}
	if concept.ConceptTags, err = codes(d, d.tables.conceptTags, id, vocabulary.ConceptTag); err != nil {
		return domain.Concept{}, err
	}

	if err := concept.Validate(); err != nil {
		return domain.Concept{}, err
	}
	return concept, nil
}

// EncodeConcept encodes concept into graph.
func (c *Codec) EncodeConcept(concept domain.Concept, graph string) ([]rdf.Quad, error) {
	if err := concept.Validate(); err != nil {
		return nil, fmt.Errorf("failed to encode concept %s: %w", concept.ID, err)
	}

	e := newEncoder(c.tables, graph)
	id := concept.ID
	e.typed(id, vocabulary.ClassConcept)
	e.literal(id, vocabulary.UUID, concept.UUID)
	e.literal(id, vocabulary.ProductID, concept.ProductID)
	e.reference(id, vocabulary.LatestSnapshot, concept.LatestConceptSnapshot)
	e.reference(id, vocabulary.LatestFunctionalChange, concept.LatestFunctionallyChangedConceptSnapshot)
	e.references(id, vocabulary.PreviousSnapshot, concept.PreviousConceptSnapshots)
	e.boolean(id, vocabulary.IsArchived, concept.IsArchived)

	if err := e.content(id, concept.Content); err != nil {
		return nil, fmt.Errorf("failed to encode concept %s: %w", id, err)
	}
	if err := encodeCodes(e, c.tables.conceptTags, id, vocabulary.ConceptTag, concept.ConceptTags); err != nil {
		return nil, fmt.Errorf("failed to encode concept %s: %w", id, err)
	}
	return e.result(), nil
}

// DecodeInstanceSnapshot decodes the instance snapshot id out of quads.
func (c *Codec) DecodeInstanceSnapshot(quads []rdf.Quad, id domain.IRI) (Result[domain.InstanceSnapshot], error) {
	d := newDecoder(c.tables, quads)
	snapshot, err := d.instanceSnapshot(id)
	if err != nil {
		return Result[domain.InstanceSnapshot]{}, fmt.Errorf("failed to decode instance snapshot %s: %w", id, err)
	}
	return Result[domain.InstanceSnapshot]{Value: snapshot, Warnings: d.allWarnings()}, nil
}

func (d *decoder) instanceSnapshot(id domain.IRI) (domain.InstanceSnapshot, error) {
	if err := d.requireType(id, vocabulary.ClassInstanceSnapshot); err != nil {
		return domain.InstanceSnapshot{}, err
	}

	content, err := d.content(id)
	if err != nil {
		return domain.InstanceSnapshot{}, err
	}

	snapshot := domain.InstanceSnapshot{
		ID:                  id,
		IsVersionOfInstance: d.reference(id, vocabulary.IsVersionOf),
		CreatedBy:           d.reference(id, vocabulary.CreatedBy),
		ConceptID:           d.reference(id, vocabulary.Source),
		Content:             content,
		Spatials:            d.references(id, vocabulary.Spatial),
		IsArchived:          d.boolean(id, vocabulary.IsArchived),
	}
	if snapshot.Languages, err = codes(d, d.tables.languages, id, vocabulary.Language); err != nil {
		return domain.InstanceSnapshot{}, err
	}
	if snapshot.ContactPoints, err = children(d, collectionContactPoints, id, vocabulary.HasContactPoint, d.contactPoint, domain.ContactPointOrder); err != nil {
		return domain.InstanceSnapshot{}, err
	}
	if snapshot.DateCreated, err = d.requiredTime(id, vocabulary.DateCreated); err != nil {
		return domain.InstanceSnapshot{}, err
	}
	if snapshot.DateModified, err = d.requiredTime(id, vocabulary.DateModified); err != nil {
		return domain.InstanceSnapshot{}, err
	}
	if snapshot.GeneratedAtTime, err = d.requiredTime(id, vocabulary.GeneratedAtTime); err != nil {
		return domain.InstanceSnapshot{}, err
	}

	if err := snapshot.Validate(); err != nil {
		return domain.InstanceSnapshot{}, err
	}
	return snapshot, nil
}

// EncodeInstanceSnapshot encodes snapshot into graph.
func (c *Codec) EncodeInstanceSnapshot(snapshot domain.InstanceSnapshot, graph string) ([]rdf.Quad, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("failed to encode instance snapshot %s: %w", snapshot.ID, err)
	}

	e := newEncoder(c.tables, graph)
	id := snapshot.ID
	e.typed(id, vocabulary.ClassInstanceSnapshot)
	e.reference(id, vocabulary.IsVersionOf, snapshot.IsVersionOfInstance)
	e.reference(id, vocabulary.CreatedBy, snapshot.CreatedBy)
	e.reference(id, vocabulary.Source, snapshot.ConceptID)
	e.references(id, vocabulary.Spatial, snapshot.Spatials)
	e.boolean(id, vocabulary.IsArchived, snapshot.IsArchived)
	e.dateTime(id, vocabulary.DateCreated, snapshot.DateCreated)
	e.dateTime(id, vocabulary.DateModified, snapshot.DateModified)
	e.dateTime(id, vocabulary.GeneratedAtTime, snapshot.GeneratedAtTime)
	for _, contactPoint := range snapshot.ContactPoints {
		e.reference(id, vocabulary.HasContactPoint, contactPoint.ID)
		e.contactPoint(contactPoint)
	}

	if err := e.content(id, snapshot.Content); err != nil {
		return nil, fmt.Errorf("failed to encode instance snapshot %s: %w", id, err)
	}
	if err := encodeCodes(e, c.tables.languages, id, vocabulary.Language, snapshot.Languages); err != nil {
		return nil, fmt.Errorf("failed to encode instance snapshot %s: %w", id, err)
	}
	return e.result(), nil
}

// DecodeInstance decodes the instance id out of quads.
func (c *Codec) DecodeInstance(quads []rdf.Quad, id domain.IRI) (Result[domain.Instance], error) {
	d := newDecoder(c.tables, quads)
	instance, err := d.instance(id)
	if err != nil {
		return Result[domain.Instance]{}, fmt.Errorf("failed to decode instance %s: %w", id, err)
	}
	return Result[domain.Instance]{Value: instance, Warnings: d.allWarnings()}, nil
}

func (d *decoder) instance(id domain.IRI) (domain.Instance, error) {
	if err := d.requireType(id, vocabulary.ClassInstance); err != nil {
		return domain.Instance{}, err
	}

	content, err := d.content(id)
	if err != nil {
		return domain.Instance{}, err
	}

	instance := domain.Instance{
		ID:                                  id,
		UUID:                                d.literal(id, vocabulary.UUID),
		CreatedBy:                           d.reference(id, vocabulary.CreatedBy),
		ConceptID:                           d.reference(id, vocabulary.Source),
		ConceptSnapshotID:                   d.reference(id, vocabulary.ConceptSnapshotSource),
		Content:                             content,
		ProductID:                           d.literal(id, vocabulary.ProductID),
		Spatials:                            d.references(id, vocabulary.Spatial),
		DutchLanguageVariant:                d.literal(id, vocabulary.DutchLanguageVariant),
		NeedsConversionFromFormalToInformal: d.boolean(id, vocabulary.NeedsConversion),
	}
	if instance.Languages, err = codes(d, d.tables.languages, id, vocabulary.Language); err != nil {
		return domain.Instance{}, err
	}
	if instance.ContactPoints, err = children(d, collectionContactPoints, id, vocabulary.HasContactPoint, d.contactPoint, domain.ContactPointOrder); err != nil {
		return domain.Instance{}, err
	}
	if instance.Status, err = code(d, d.tables.instanceStatuses, id, vocabulary.Status); err != nil {
		return domain.Instance{}, err
	}
	if instance.ReviewStatus, err = code(d, d.tables.reviewStatuses, id, vocabulary.ReviewStatus); err != nil {
		return domain.Instance{}, err
	}
	if instance.PublicationStatus, err = code(d, d.tables.publicationStatuses, id, vocabulary.PublicationStatus); err != nil {
		return domain.Instance{}, err
	}
	if instance.DateCreated, err = d.requiredTime(id, vocabulary.DateCreated); err != nil {
		return domain.Instance{}, err
	}
	if instance.DateModified, err = d.requiredTime(id, vocabulary.DateModified); err != nil {
		return domain.Instance{}, err
	}
	if instance.DateSent, err = d.optionalTime(id, vocabulary.DateSent); err != nil {
		return domain.Instance{}, err
	}
	if instance.DatePublished, err = d.optionalTime(id, vocabulary.DatePublished); err != nil {
		return domain.Instance{}, err
	}

	if err := instance.Validate(); err != nil {
		return domain.Instance{}, err
	}
	return instance, nil
}

// EncodeInstance encodes instance into graph, normally the graph of the
// bestuurseenheid that created it.
func (c *Codec) EncodeInstance(instance domain.Instance, graph string) ([]rdf.Quad, error) {
	if err := instance.Validate(); err != nil {
		return nil, fmt.Errorf("failed to encode instance %s: %w", instance.ID, err)
	}

	e := newEncoder(c.tables, graph)
	id := instance.ID
	e.typed(id, vocabulary.ClassInstance)
	e.literal(id, vocabulary.UUID, instance.UUID)
	e.reference(id, vocabulary.CreatedBy, instance.CreatedBy)
	e.reference(id, vocabulary.Source, instance.ConceptID)
	e.reference(id, vocabulary.ConceptSnapshotSource, instance.ConceptSnapshotID)
	e.literal(id, vocabulary.ProductID, instance.ProductID)
	e.references(id, vocabulary.Spatial, instance.Spatials)
	e.literal(id, vocabulary.DutchLanguageVariant, instance.DutchLanguageVariant)
	e.boolean(id, vocabulary.NeedsConversion, instance.NeedsConversionFromFormalToInformal)
	e.dateTime(id, vocabulary.DateCreated, instance.DateCreated)
	e.dateTime(id, vocabulary.DateModified, instance.DateModified)
	e.optionalTime(id, vocabulary.DateSent, instance.DateSent)
	e.optionalTime(id, vocabulary.DatePublished, instance.DatePublished)
	for _, contactPoint := range instance.ContactPoints {
		e.reference(id, vocabulary.HasContactPoint, contactPoint.ID)
		e.contactPoint(contactPoint)
	}

	if err := e.content(id, instance.Content); err != nil {
		return nil, fmt.Errorf("failed to encode instance %s: %w", id, err)
	}
	codeErrors := []error{
		encodeCodes(e, c.tables.languages, id, vocabulary.Language, instance.Languages),
		encodeCode(e, c.tables.instanceStatuses, id, vocabulary.Status, instance.Status),
		encodeCode(e, c.tables.reviewStatuses, id, vocabulary.ReviewStatus, instance.ReviewStatus),
		encodeCode(e, c.tables.publicationStatuses, id, vocabulary.PublicationStatus, instance.PublicationStatus),
	}
	for _, err := range codeErrors {
		if err != nil {
			return nil, fmt.Errorf("failed to encode instance %s: %w", id, err)
		}
	}
	return e.result(), nil
}
