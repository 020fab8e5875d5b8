// Package domaintest provides valid catalog aggregates for tests. Every
// fixture is normalized so that it compares equal to its decoded form.
package domaintest

import (
	"fmt"
	"time"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// Well-known identifiers used by the fixtures.
const (
	Bestuurseenheid     domain.IRI = "http://data.lblod.info/id/bestuurseenheden/pepingen"
	BestuurseenheidUUID            = "73840d393bd94828f0903e8357c7f328d4bf4b8fbd63adbfa443e784f056a589"
	CompetentAuthority  domain.IRI = "https://data.vlaanderen.be/id/organisatie/OVO000001"
	ExecutingAuthority  domain.IRI = "https://data.vlaanderen.be/id/organisatie/OVO000002"
	Spatial             domain.IRI = "http://data.europa.eu/nuts/code/BE24123064"
)

// TenantGraph returns the graph of the Bestuurseenheid fixture.
func TenantGraph() string {
	return vocabulary.TenantGraph(BestuurseenheidUUID)
}

// BestuurseenheidQuads describes the Bestuurseenheid fixture in graph.
func BestuurseenheidQuads(graph string) []rdf.Quad {
	subject := rdf.IRI(Bestuurseenheid.String())
	return []rdf.Quad{
		rdf.NewQuad(subject, rdf.Type, rdf.IRI(vocabulary.ClassBestuurseenheid), graph),
		rdf.NewQuad(subject, vocabulary.UUID, rdf.Literal(BestuurseenheidUUID), graph),
	}
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Text returns a LanguageString with base and nl variants.
func Text(en, nl string) *domain.LanguageString {
	return domain.NewLanguageString(domain.LanguageString{En: en, Nl: nl})
}

// ConceptID returns the identifier of a canonical concept.
func ConceptID(name string) domain.IRI {
	return domain.IRI("https://ipdc.vlaanderen.be/id/concept/" + name)
}

// ConceptSnapshotID returns the identifier of a concept snapshot.
func ConceptSnapshotID(name string) domain.IRI {
	return domain.IRI("https://ipdc.vlaanderen.be/id/conceptsnapshot/" + name)
}

// InstanceID returns the identifier of a canonical instance.
func InstanceID(name string) domain.IRI {
	return domain.IRI("http://data.lblod.info/id/public-service/" + name)
}

// InstanceSnapshotID returns the identifier of an instance snapshot.
func InstanceSnapshotID(name string) domain.IRI {
	return domain.IRI("http://data.lblod.info/id/public-service-snapshot/" + name)
}

// FullContent returns content with every field and nested child populated.
// prefix keeps child identifiers distinct between fixtures.
func FullContent(prefix string) domain.Content {
	child := func(kind string, n int) domain.IRI {
		return domain.IRI(fmt.Sprintf("http://data.lblod.info/id/%s/%s-%d", kind, prefix, n))
	}
	startDate := Date(2023, time.October, 1)
	endDate := Date(2027, time.December, 31)

	return domain.Content{
		Title: domain.NewLanguageString(domain.LanguageString{
			En:                "Parking permit",
			Nl:                "Parkeervergunning",
			NlFormal:          "Parkeervergunning (u)",
			NlGeneratedFormal: "Parkeervergunning (gegenereerd)",
		}),
		Description:              Text("Permit for residents", "Vergunning voor bewoners"),
		AdditionalDescription:    Text("", "Aanvullend"),
		Exception:                Text("", "Uitzondering"),
		Regulation:               domain.NewLanguageString(domain.LanguageString{NlInformal: "Regelgeving"}),
		StartDate:                &startDate,
		EndDate:                  &endDate,
		ProductType:              domain.ProductTypeToelating,
		TargetAudiences:          []domain.TargetAudience{domain.TargetAudienceBurger, domain.TargetAudienceOnderneming},
		Themes:                   []domain.Theme{domain.ThemeMobiliteitOpenbareWerken},
		CompetentAuthorityLevels: []domain.CompetentAuthorityLevel{domain.CompetentAuthorityLevelLokaal},
		CompetentAuthorities:     []domain.IRI{CompetentAuthority},
		ExecutingAuthorityLevels: []domain.ExecutingAuthorityLevel{domain.ExecutingAuthorityLevelDerden, domain.ExecutingAuthorityLevelLokaal},
		ExecutingAuthorities:     []domain.IRI{ExecutingAuthority},
		PublicationMedia:         []domain.PublicationMedium{domain.PublicationMediumYourEurope},
		YourEuropeCategories:     []domain.YourEuropeCategory{domain.YourEuropeCategoryVoertuigen},
		Keywords: []domain.LanguageString{
			{Nl: "parkeren"},
			{En: "parking"},
		},
		Requirements: []domain.Requirement{
			{
				ID:          child("requirement", 1),
				UUID:        prefix + "-requirement-1",
				Title:       Text("Residence", "Woonplaats"),
				Description: Text("You live here", "U woont hier"),
				Order:       0,
				Evidence: &domain.Evidence{
					ID:          child("evidence", 1),
					UUID:        prefix + "-evidence-1",
					Title:       Text("", "Identiteitskaart"),
					Description: Text("", "Een geldige identiteitskaart"),
				},
			},
			{
				ID:          child("requirement", 2),
				Title:       Text("", "Voertuig"),
				Description: Text("", "U bent eigenaar van het voertuig"),
				Order:       1,
			},
		},
		Procedures: []domain.Procedure{
			{
				ID:          child("rule", 1),
				UUID:        prefix + "-rule-1",
				Title:       Text("", "Aanvragen"),
				Description: Text("", "Vraag aan via het loket"),
				Order:       0,
				Websites: []domain.Website{
					{ID: child("website", 10), Title: Text("", "Loket"), URL: "https://loket.example.org", Order: 0},
					{ID: child("website", 11), Title: Text("", "Formulier"), Description: Text("", "Pdf"), URL: "https://example.org/form.pdf", Order: 1},
				},
			},
		},
		Websites: []domain.Website{
			{ID: child("website", 1), UUID: prefix + "-website-1", Title: Text("", "Meer info"), URL: "https://example.org", Order: 0},
		},
		Costs: []domain.Cost{
			{ID: child("cost", 1), Title: Text("", "Prijs"), Description: Text("", "25 euro"), Order: 0},
		},
		FinancialAdvantages: []domain.FinancialAdvantage{
			{ID: child("financial-advantage", 1), Title: Text("", "Korting"), Description: Text("", "Voor bewoners"), Order: 0},
		},
		LegalResources: []domain.LegalResource{
			{ID: child("legal-resource", 1), Title: Text("", "Reglement"), URL: "https://codex.example.org/1", Order: 0},
		},
	}.Normalized()
}

// ConceptSnapshot returns a valid snapshot of concept generated at generatedAt.
func ConceptSnapshot(name string, concept domain.IRI, generatedAt time.Time) domain.ConceptSnapshot {
	return domain.ConceptSnapshot{
		ID:                 ConceptSnapshotID(name),
		IsVersionOfConcept: concept,
		Content:            FullContent(name),
		ProductID:          "1502",
		ConceptTags:        []domain.ConceptTag{domain.ConceptTagYourEuropeVerplicht},
		SnapshotType:       domain.SnapshotTypeUpdate,
		DateCreated:        Date(2023, time.January, 1),
		DateModified:       generatedAt,
		GeneratedAtTime:    generatedAt,
	}.Normalized()
}

// Concept returns a valid concept whose latest snapshot is latest.
func Concept(name string, latest domain.IRI, previous ...domain.IRI) domain.Concept {
	return domain.Concept{
		ID:                                       ConceptID(name),
		UUID:                                     name + "-uuid",
		Content:                                  FullContent(name),
		ProductID:                                "1502",
		ConceptTags:                              []domain.ConceptTag{domain.ConceptTagYourEuropeAanbevolen},
		LatestConceptSnapshot:                    latest,
		LatestFunctionallyChangedConceptSnapshot: latest,
		PreviousConceptSnapshots:                 previous,
	}.Normalized()
}

// ContactPoints returns two ordered contact points, the first with an address.
func ContactPoints(prefix string) []domain.ContactPoint {
	return []domain.ContactPoint{
		{
			ID:           domain.IRI("http://data.lblod.info/id/contact-point/" + prefix + "-1"),
			UUID:         prefix + "-contact-point-1",
			URL:          "https://pepingen.be",
			Email:        "info@pepingen.be",
			Telephone:    "02 000 00 00",
			OpeningHours: "ma-vr 9-12",
			Order:        0,
			Address: &domain.Address{
				ID:           domain.IRI("http://data.lblod.info/id/address/" + prefix + "-1"),
				UUID:         prefix + "-address-1",
				Municipality: Text("", "Pepingen"),
				Street:       Text("", "Ninoofsesteenweg"),
				HouseNumber:  "12",
				BoxNumber:    "A",
				PostalCode:   "1670",
				Country:      Text("", "België"),
				RefersTo:     "https://data.vlaanderen.be/id/adres/3706808",
			},
		},
		{
			ID:    domain.IRI("http://data.lblod.info/id/contact-point/" + prefix + "-2"),
			Email: "backoffice@pepingen.be",
			Order: 1,
		},
	}
}

// InstanceSnapshot returns a valid snapshot of instance generated at generatedAt.
func InstanceSnapshot(name string, instance domain.IRI, generatedAt time.Time) domain.InstanceSnapshot {
	return domain.InstanceSnapshot{
		ID:                  InstanceSnapshotID(name),
		IsVersionOfInstance: instance,
		CreatedBy:           Bestuurseenheid,
		ConceptID:           ConceptID("parking"),
		Content:             FullContent(name),
		Languages:           []domain.LanguageCode{domain.LanguageCodeNLD, domain.LanguageCodeENG},
		Spatials:            []domain.IRI{Spatial},
		ContactPoints:       ContactPoints(name),
		DateCreated:         Date(2023, time.March, 1),
		DateModified:        generatedAt,
		GeneratedAtTime:     generatedAt,
	}.Normalized()
}

// Instance returns a valid sent instance.
func Instance(name string) domain.Instance {
	sent := Date(2024, time.January, 10)
	published := Date(2024, time.January, 11)
	return domain.Instance{
		ID:                                  InstanceID(name),
		UUID:                                name + "-uuid",
		CreatedBy:                           Bestuurseenheid,
		ConceptID:                           ConceptID("parking"),
		ConceptSnapshotID:                   ConceptSnapshotID("parking-1"),
		Content:                             FullContent(name),
		ProductID:                           "1502",
		Languages:                           []domain.LanguageCode{domain.LanguageCodeNLD},
		Spatials:                            []domain.IRI{Spatial},
		ContactPoints:                       ContactPoints(name),
		DutchLanguageVariant:                domain.LanguageNlFormal,
		NeedsConversionFromFormalToInformal: true,
		Status:                              domain.InstanceStatusVerzonden,
		PublicationStatus:                   domain.PublicationStatusGepubliceerd,
		DateCreated:                         Date(2023, time.March, 1),
		DateModified:                        Date(2024, time.January, 10),
		DateSent:                            &sent,
		DatePublished:                       &published,
	}.Normalized()
}
