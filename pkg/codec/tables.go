package codec

import (
	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// Code namespaces. A code IRI is its namespace followed by the label.
const (
	NamespaceProductType             = vocabulary.NamespaceCodes + "Type/"
	NamespaceTargetAudience          = vocabulary.NamespaceCodes + "Doelgroep/"
	NamespaceTheme                   = vocabulary.NamespaceCodes + "Thema/"
	NamespaceCompetentAuthorityLevel = vocabulary.NamespaceCodes + "BevoegdBestuursniveau/"
	NamespaceExecutingAuthorityLevel = vocabulary.NamespaceCodes + "UitvoerendBestuursniveau/"
	NamespacePublicationMedium       = vocabulary.NamespaceCodes + "PublicatieKanaal/"
	NamespaceYourEuropeCategory      = vocabulary.NamespaceCodes + "YourEuropeCategorie/"
	NamespaceConceptTag              = vocabulary.NamespaceCodes + "ConceptTag/"
	NamespaceSnapshotType            = vocabulary.NamespaceCodes + "SnapshotType/"
	NamespaceLanguage                = "http://publications.europa.eu/resource/authority/language/"
	NamespaceInstanceStatus          = vocabulary.NamespaceLBLOD + "instance-status/"
	NamespaceReviewStatus            = vocabulary.NamespaceLBLOD + "instance-review-status/"
	NamespacePublicationStatus       = vocabulary.NamespaceLBLOD + "instance-publication-status/"
)

// codeTable maps enumeration members to code IRIs and back in O(1).
type codeTable[T ~string] struct {
	name    string
	toIRI   map[T]string
	fromIRI map[string]T
}

func newCodeTable[T ~string](name, namespace string, values []T) *codeTable[T] {
	table := &codeTable[T]{
		name:    name,
		toIRI:   make(map[T]string, len(values)),
		fromIRI: make(map[string]T, len(values)),
	}
	for _, value := range values {
		iri := namespace + string(value)
		table.toIRI[value] = iri
		table.fromIRI[iri] = value
	}
	return table
}

// iri returns the code IRI of value.
func (table *codeTable[T]) iri(value T) (string, error) {
	iri, found := table.toIRI[value]
	if !found {
		return "", domain.NewInvariantError("%s %q has no code", table.name, value)
	}
	return iri, nil
}

// value returns the member for a code IRI.
func (table *codeTable[T]) value(iri string) (T, error) {
	value, found := table.fromIRI[iri]
	if !found {
		return "", domain.NewInvariantError("could not map <%s> to a %s", iri, table.name)
	}
	return value, nil
}

// tables holds one code table per enumeration.
type tables struct {
	productTypes             *codeTable[domain.ProductType]
	targetAudiences          *codeTable[domain.TargetAudience]
	themes                   *codeTable[domain.Theme]
	competentAuthorityLevels *codeTable[domain.CompetentAuthorityLevel]
	executingAuthorityLevels *codeTable[domain.ExecutingAuthorityLevel]
	publicationMedia         *codeTable[domain.PublicationMedium]
	yourEuropeCategories     *codeTable[domain.YourEuropeCategory]
	conceptTags              *codeTable[domain.ConceptTag]
	snapshotTypes            *codeTable[domain.SnapshotType]
	languages                *codeTable[domain.LanguageCode]
	instanceStatuses         *codeTable[domain.InstanceStatus]
	reviewStatuses           *codeTable[domain.ReviewStatus]
	publicationStatuses      *codeTable[domain.PublicationStatus]
}

func newTables() *tables {
	return &tables{
		productTypes:             newCodeTable("product type", NamespaceProductType, domain.ProductTypes),
		targetAudiences:          newCodeTable("target audience", NamespaceTargetAudience, domain.TargetAudiences),
		themes:                   newCodeTable("theme", NamespaceTheme, domain.Themes),
		competentAuthorityLevels: newCodeTable("competent authority level", NamespaceCompetentAuthorityLevel, domain.CompetentAuthorityLevels),
		executingAuthorityLevels: newCodeTable("executing authority level", NamespaceExecutingAuthorityLevel, domain.ExecutingAuthorityLevels),
		publicationMedia:         newCodeTable("publication medium", NamespacePublicationMedium, domain.PublicationMedia),
		yourEuropeCategories:     newCodeTable("your europe category", NamespaceYourEuropeCategory, domain.YourEuropeCategories),
		conceptTags:              newCodeTable("concept tag", NamespaceConceptTag, domain.ConceptTags),
		snapshotTypes:            newCodeTable("snapshot type", NamespaceSnapshotType, domain.SnapshotTypes),
		languages:                newCodeTable("language", NamespaceLanguage, domain.LanguageCodes),
		instanceStatuses:         newCodeTable("instance status", NamespaceInstanceStatus, domain.InstanceStatuses),
		reviewStatuses:           newCodeTable("review status", NamespaceReviewStatus, domain.ReviewStatuses),
		publicationStatuses:      newCodeTable("publication status", NamespacePublicationStatus, domain.PublicationStatuses),
	}
}
