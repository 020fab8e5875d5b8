package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(en, nl string) *LanguageString {
	return NewLanguageString(LanguageString{En: en, Nl: nl})
}

func sampleSnapshot(id string, generatedAt time.Time) ConceptSnapshot {
	return ConceptSnapshot{
		ID:                 IRI(id),
		IsVersionOfConcept: "http://data.lblod.info/id/conceptual-public-service/X",
		Content: Content{
			Title:           text("Title", "Titel"),
			Description:     text("Description", "Beschrijving"),
			ProductType:     ProductTypeToelating,
			TargetAudiences: []TargetAudience{TargetAudienceOnderneming, TargetAudienceBurger},
			Requirements: []Requirement{
				{
					ID:          "http://example.org/requirement/1",
					Title:       text("", "Voorwaarde"),
					Description: text("", "Uitleg"),
					Order:       0,
					Evidence:    &Evidence{ID: "http://example.org/evidence/1", Title: text("", "Bewijs")},
				},
			},
		},
		SnapshotType:    SnapshotTypeCreate,
		DateCreated:     generatedAt,
		DateModified:    generatedAt,
		GeneratedAtTime: generatedAt,
	}.Normalized()
}

func TestClassifiedError_Is(t *testing.T) {
	err := fmt.Errorf("decoding concept: %w", NewNotFoundError("no concept %s", "X"))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsInvariant(err))
	assert.Equal(t, "decoding concept: no concept X", err.Error())

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrorNotFound, kind)
	assert.Equal(t, "not-found", kind.String())

	wrapped := NewSystemError(errors.New("connection refused"), "querying store")
	assert.True(t, IsSystem(wrapped))
	assert.Equal(t, "querying store: connection refused", wrapped.Error())
	assert.True(t, IsConcurrentUpdate(NewConcurrentUpdateError("stale")))
}

func TestNewIRI(t *testing.T) {
	_, err := NewIRI("   ")
	assert.True(t, IsInvariant(err))

	iri, err := NewIRI("http://example.org/a")
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/a", iri.String())
}

func TestNewLanguageString_Absent(t *testing.T) {
	assert.Nil(t, NewLanguageString(LanguageString{}))
	assert.NotNil(t, NewLanguageString(LanguageString{NlGeneratedInformal: "x"}))
}

func TestLanguageStringFromTags(t *testing.T) {
	value, unsupported := LanguageStringFromTags(map[string]string{
		"en":               "Title",
		"nl-be-x-informal": "Titel",
		"fr":               "Titre",
	})

	require.NotNil(t, value)
	assert.Equal(t, "Title", value.En)
	assert.Equal(t, "Titel", value.NlInformal)
	assert.Equal(t, []string{"fr"}, unsupported)
	assert.Equal(t, map[string]string{"en": "Title", "nl-be-x-informal": "Titel"}, value.Values())

	empty, _ := LanguageStringFromTags(map[string]string{"fr": "Titre"})
	assert.Nil(t, empty)
}

func TestLanguageStringsFunctionallyEqual(t *testing.T) {
	a := NewLanguageString(LanguageString{En: "a", Nl: "b", NlFormal: "c"})
	b := NewLanguageString(LanguageString{En: "a", Nl: "b", NlFormal: "other"})

	assert.True(t, LanguageStringsFunctionallyEqual(a, b))
	assert.False(t, LanguageStringsEqual(a, b))
	assert.True(t, LanguageStringsFunctionallyEqual(nil, nil))
	assert.False(t, LanguageStringsFunctionallyEqual(a, nil))

	informal := NewLanguageString(LanguageString{NlInformal: "alleen informeel"})
	assert.True(t, LanguageStringsFunctionallyEqual(nil, informal))
	assert.True(t, LanguageStringsFunctionallyEqual(informal, nil))
	assert.False(t, LanguageStringsFunctionallyEqual(nil, NewLanguageString(LanguageString{Nl: "b"})))
}

func TestConceptSnapshot_IsFunctionallyChanged_AddedInformalVariant(t *testing.T) {
	a := sampleSnapshot("http://example.org/snapshot/1", time.Now())
	a.Exception = nil
	b := a
	b.ID = "http://example.org/snapshot/2"
	b.Exception = NewLanguageString(LanguageString{NlInformal: "alleen informeel"})

	assert.False(t, a.IsFunctionallyChanged(b))
	assert.False(t, b.IsFunctionallyChanged(a))
}

func TestSortedSet(t *testing.T) {
	assert.Equal(t, []Theme{ThemeBouwenWonen, ThemeEconomieWerk},
		SortedSet([]Theme{ThemeEconomieWerk, ThemeBouwenWonen, ThemeEconomieWerk, ""}))
	assert.Nil(t, SortedSet([]Theme{}))
}

func TestValidateOrders_NamesCollection(t *testing.T) {
	costs := []Cost{{ID: "http://example.org/c1", Order: 1}, {ID: "http://example.org/c2", Order: 1}}

	err := ValidateOrders("costs", costs, CostOrder)
	require.Error(t, err)
	assert.True(t, IsInvariant(err))
	assert.Contains(t, err.Error(), "costs")
}

func TestAssignOrders(t *testing.T) {
	websites := []Website{{ID: "http://example.org/w1", Order: 7}, {ID: "http://example.org/w2", Order: 7}}

	ordered := AssignOrders(websites, func(website *Website, order int) { website.Order = order })

	assert.Equal(t, 0, ordered[0].Order)
	assert.Equal(t, 1, ordered[1].Order)
	assert.Equal(t, 7, websites[0].Order, "input is not mutated")
	assert.NoError(t, ValidateOrders("websites", ordered, WebsiteOrder))
}

func TestRequirement_Reidentify(t *testing.T) {
	ids := SequentialIdentities()
	original := sampleSnapshot("http://example.org/snapshot/1", time.Now()).Requirements[0]

	copied := original.Reidentify(ids)

	assert.Equal(t, IRI(BaseIRI+"requirement/requirement-1"), copied.ID)
	assert.Equal(t, "requirement-1", copied.UUID)
	assert.Equal(t, IRI(BaseIRI+"evidence/evidence-1"), copied.Evidence.ID)
	assert.Equal(t, original.Title, copied.Title)
	assert.Equal(t, IRI("http://example.org/evidence/1"), original.Evidence.ID, "original evidence untouched")
}

func TestNewConceptFromSnapshot(t *testing.T) {
	generatedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	snapshot := sampleSnapshot("http://example.org/snapshot/1", generatedAt)

	concept := NewConceptFromSnapshot(snapshot, "concept-uuid", SequentialIdentities())

	assert.Equal(t, snapshot.IsVersionOfConcept, concept.ID)
	assert.Equal(t, snapshot.ID, concept.LatestConceptSnapshot)
	assert.Equal(t, snapshot.ID, concept.LatestFunctionallyChangedConceptSnapshot)
	assert.Empty(t, concept.PreviousConceptSnapshots)
	assert.False(t, concept.IsArchived)
	assert.NotEqual(t, snapshot.Requirements[0].ID, concept.Requirements[0].ID)
	assert.NoError(t, concept.Validate())
	assert.True(t, concept.HasApplied(snapshot.ID))
}

func TestConcept_ApplySnapshot(t *testing.T) {
	first := sampleSnapshot("http://example.org/snapshot/1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	concept := NewConceptFromSnapshot(first, "concept-uuid", SequentialIdentities())

	cosmetic := sampleSnapshot("http://example.org/snapshot/2", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	require.False(t, first.IsFunctionallyChanged(cosmetic))

	updated := concept.ApplySnapshot(cosmetic, false, SequentialIdentities())
	assert.Equal(t, cosmetic.ID, updated.LatestConceptSnapshot)
	assert.Equal(t, first.ID, updated.LatestFunctionallyChangedConceptSnapshot)
	assert.Equal(t, []IRI{first.ID}, updated.PreviousConceptSnapshots)
	assert.Equal(t, "concept-uuid", updated.UUID)

	deletion := cosmetic
	deletion.ID = "http://example.org/snapshot/3"
	deletion.SnapshotType = SnapshotTypeDelete
	archived := updated.ApplySnapshot(deletion, false, SequentialIdentities())
	assert.True(t, archived.IsArchived)
	assert.Equal(t, deletion.ID, archived.LatestFunctionallyChangedConceptSnapshot)
}

func TestConceptSnapshot_IsFunctionallyChanged(t *testing.T) {
	base := sampleSnapshot("http://example.org/snapshot/1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name    string
		mutate  func(*ConceptSnapshot)
		changed bool
	}{
		{"timestamps only", func(s *ConceptSnapshot) { s.DateModified = s.DateModified.Add(time.Hour) }, false},
		{"formal variant only", func(s *ConceptSnapshot) {
			s.Title = NewLanguageString(LanguageString{En: "Title", Nl: "Titel", NlFormal: "U-titel"})
		}, false},
		{"concept tags", func(s *ConceptSnapshot) { s.ConceptTags = []ConceptTag{ConceptTagYourEuropeVerplicht} }, false},
		{"child ids", func(s *ConceptSnapshot) {
			s.Requirements = []Requirement{s.Requirements[0].Reidentify(SequentialIdentities())}
		}, false},
		{"nl title", func(s *ConceptSnapshot) { s.Title = text("Title", "Andere titel") }, true},
		{"audience", func(s *ConceptSnapshot) { s.TargetAudiences = []TargetAudience{TargetAudienceBurger} }, true},
		{"evidence removed", func(s *ConceptSnapshot) {
			requirement := s.Requirements[0]
			requirement.Evidence = nil
			s.Requirements = []Requirement{requirement}
		}, true},
		{"product id", func(s *ConceptSnapshot) { s.ProductID = "1234" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			other.Content = base.Content.Normalized()
			tt.mutate(&other)
			assert.Equal(t, tt.changed, base.IsFunctionallyChanged(other))
		})
	}
}

func TestInstance_ApplySnapshot_Republish(t *testing.T) {
	sentAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	published := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	instance := Instance{
		ID:                "http://data.lblod.info/id/public-service/1",
		UUID:              "instance-uuid",
		CreatedBy:         "http://data.lblod.info/id/bestuurseenheden/1",
		Content:           Content{Title: text("", "Oud")},
		Status:            InstanceStatusVerzonden,
		PublicationStatus: PublicationStatusGepubliceerd,
		DateCreated:       published,
		DateModified:      published,
		DateSent:          &published,
		DatePublished:     &published,
	}
	snapshot := InstanceSnapshot{
		ID:                  "http://example.org/instance-snapshot/2",
		IsVersionOfInstance: instance.ID,
		CreatedBy:           instance.CreatedBy,
		Content:             Content{Title: text("", "Nieuw"), Description: text("", "Beschrijving")},
		ContactPoints: []ContactPoint{
			{ID: "http://example.org/contact/1", Email: "info@example.org", Address: &Address{ID: "http://example.org/address/1"}},
		},
		DateCreated:     published,
		DateModified:    sentAt,
		GeneratedAtTime: sentAt,
	}

	updated := instance.ApplySnapshot(snapshot, "", SequentialIdentities())

	assert.Equal(t, instance.ID, updated.ID)
	assert.Equal(t, "instance-uuid", updated.UUID)
	assert.Equal(t, published, updated.DateCreated)
	assert.Equal(t, PublicationStatusTeHerpubliceren, updated.PublicationStatus)
	assert.Equal(t, "Nieuw", updated.Title.Nl)
	assert.Equal(t, sentAt, *updated.DateSent)
	assert.Equal(t, IRI(BaseIRI+"address/address-1"), updated.ContactPoints[0].Address.ID)
	assert.NoError(t, updated.Validate())
}
