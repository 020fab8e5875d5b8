// Package vocabulary defines the namespaces, classes, predicates and graphs of
// the public service catalog ontology.
package vocabulary

import "fmt"

// Namespace URIs.
const (
	NamespaceLPDC    = "https://productencatalogus.data.vlaanderen.be/ns/ipdc-lpdc#"
	NamespaceCodes   = "https://productencatalogus.data.vlaanderen.be/id/concept/"
	NamespaceDCT     = "http://purl.org/dc/terms/"
	NamespaceM8G     = "http://data.europa.eu/m8g/"
	NamespaceCPSV    = "http://purl.org/vocab/cpsv#"
	NamespaceSchema  = "http://schema.org/"
	NamespaceSHACL   = "http://www.w3.org/ns/shacl#"
	NamespaceMU      = "http://mu.semte.ch/vocabularies/core/"
	NamespaceExt     = "http://mu.semte.ch/vocabularies/ext/"
	NamespaceProv    = "http://www.w3.org/ns/prov#"
	NamespaceADMS    = "http://www.w3.org/ns/adms#"
	NamespaceDCAT    = "http://www.w3.org/ns/dcat#"
	NamespaceSKOS    = "http://www.w3.org/2004/02/skos/core#"
	NamespaceRDFS    = "http://www.w3.org/2000/01/rdf-schema#"
	NamespaceELI     = "http://data.europa.eu/eli/ontology#"
	NamespaceLOCN    = "http://www.w3.org/ns/locn#"
	NamespaceAdres   = "https://data.vlaanderen.be/ns/adres#"
	NamespacePAV     = "http://purl.org/pav/"
	NamespaceBesluit = "http://data.vlaanderen.be/ns/besluit#"
	NamespaceAS      = "https://www.w3.org/ns/activitystreams#"
	NamespaceLBLOD   = "http://lblod.data.gift/concepts/"
)

// Prefixes returns the conventional prefix of every namespace.
func Prefixes() map[string]string {
	return map[string]string{
		"lpdc":    NamespaceLPDC,
		"dct":     NamespaceDCT,
		"m8g":     NamespaceM8G,
		"cpsv":    NamespaceCPSV,
		"schema":  NamespaceSchema,
		"sh":      NamespaceSHACL,
		"mu":      NamespaceMU,
		"ext":     NamespaceExt,
		"prov":    NamespaceProv,
		"adms":    NamespaceADMS,
		"dcat":    NamespaceDCAT,
		"skos":    NamespaceSKOS,
		"rdfs":    NamespaceRDFS,
		"eli":     NamespaceELI,
		"locn":    NamespaceLOCN,
		"adres":   NamespaceAdres,
		"pav":     NamespacePAV,
		"besluit": NamespaceBesluit,
		"as":      NamespaceAS,
	}
}

// Aggregate classes.
const (
	ClassConcept          = NamespaceLPDC + "ConceptualPublicService"
	ClassConceptSnapshot  = NamespaceLPDC + "ConceptualPublicServiceSnapshot"
	ClassInstance         = NamespaceLPDC + "InstancePublicService"
	ClassInstanceSnapshot = NamespaceLPDC + "InstancePublicServiceSnapshot"
)

// Nested entity classes.
const (
	ClassRequirement        = NamespaceM8G + "Requirement"
	ClassEvidence           = NamespaceM8G + "Evidence"
	ClassProcedure          = NamespaceCPSV + "Rule"
	ClassWebsite            = NamespaceSchema + "WebSite"
	ClassCost               = NamespaceM8G + "Cost"
	ClassFinancialAdvantage = NamespaceLPDC + "FinancialAdvantage"
	ClassContactPoint       = NamespaceSchema + "ContactPoint"
	ClassAddress            = NamespaceLOCN + "Address"
	ClassLegalResource      = NamespaceELI + "LegalResource"
)

// Supporting classes living next to the aggregates.
const (
	ClassCode                 = NamespaceSKOS + "Concept"
	ClassBestuurseenheid      = NamespaceBesluit + "Bestuurseenheid"
	ClassDisplayConfiguration = NamespaceLPDC + "ConceptDisplayConfiguration"
	ClassTombstone            = NamespaceAS + "Tombstone"
)

// Text and scalar content predicates.
const (
	Title                 = NamespaceDCT + "title"
	Description           = NamespaceDCT + "description"
	AdditionalDescription = NamespaceLPDC + "additionalDescription"
	Exception             = NamespaceLPDC + "exception"
	Regulation            = NamespaceLPDC + "regulation"
	StartDate             = NamespaceSchema + "startDate"
	EndDate               = NamespaceSchema + "endDate"
	Keyword               = NamespaceDCAT + "keyword"
	ProductID             = NamespaceSchema + "productID"
	URL                   = NamespaceSchema + "url"
	Order                 = NamespaceSHACL + "order"
	UUID                  = NamespaceMU + "uuid"
)

// Coded (enumerated) predicates.
const (
	ProductType             = NamespaceDCT + "type"
	TargetAudience          = NamespaceLPDC + "targetAudience"
	Theme                   = NamespaceM8G + "thematicArea"
	CompetentAuthorityLevel = NamespaceLPDC + "competentAuthorityLevel"
	ExecutingAuthorityLevel = NamespaceLPDC + "executingAuthorityLevel"
	PublicationMedium       = NamespaceLPDC + "publicationMedium"
	YourEuropeCategory      = NamespaceLPDC + "yourEuropeCategory"
	Language                = NamespaceDCT + "language"
	ConceptTag              = NamespaceLPDC + "conceptTag"
	SnapshotType            = NamespaceLPDC + "snapshotType"
	Status                  = NamespaceADMS + "status"
	ReviewStatus            = NamespaceExt + "reviewStatus"
	PublicationStatus       = NamespaceSchema + "publication"
)

// Linked-resource predicates.
const (
	CompetentAuthority = NamespaceM8G + "hasCompetentAuthority"
	ExecutingAuthority = NamespaceLPDC + "hasExecutingAuthority"
	Spatial            = NamespaceDCT + "spatial"
	CreatedBy          = NamespacePAV + "createdBy"
	Source             = NamespaceDCT + "source"
	IsVersionOf        = NamespaceDCT + "isVersionOf"
)

// Child collection predicates (parent to child).
const (
	HasRequirement        = NamespaceM8G + "hasRequirement"
	HasSupportingEvidence = NamespaceM8G + "hasSupportingEvidence"
	HasProcedure          = NamespaceCPSV + "follows"
	HasWebsite            = NamespaceLPDC + "hasWebsite"
	HasCost               = NamespaceM8G + "hasCost"
	HasFinancialAdvantage = NamespaceCPSV + "produces"
	HasLegalResource      = NamespaceM8G + "hasLegalResource"
	HasContactPoint       = NamespaceM8G + "hasContactPoint"
	HasAddress            = NamespaceLPDC + "address"
)

// Contact point and address predicates.
const (
	Email        = NamespaceSchema + "email"
	Telephone    = NamespaceSchema + "telephone"
	OpeningHours = NamespaceSchema + "openingHours"

	Municipality = NamespaceAdres + "gemeentenaam"
	Country      = NamespaceAdres + "land"
	Street       = NamespaceAdres + "Straatnaam"
	HouseNumber  = NamespaceAdres + "Adresvoorstelling.huisnummer"
	BoxNumber    = NamespaceAdres + "Adresvoorstelling.busnummer"
	PostalCode   = NamespaceAdres + "postcode"
	RefersTo     = NamespaceAdres + "verwijstNaar"
)

// Versioning predicates.
const (
	GeneratedAtTime        = NamespaceProv + "generatedAtTime"
	DateCreated            = NamespaceSchema + "dateCreated"
	DateModified           = NamespaceSchema + "dateModified"
	DateSent               = NamespaceSchema + "dateSent"
	DatePublished          = NamespaceSchema + "datePublished"
	LatestSnapshot         = NamespaceExt + "hasVersionedSource"
	PreviousSnapshot       = NamespaceExt + "previousVersionedSource"
	LatestFunctionalChange = NamespaceLPDC + "hasLatestFunctionalChange"
	IsArchived             = NamespaceLPDC + "isArchived"
)

// Instance-only predicates.
const (
	DutchLanguageVariant  = NamespaceLPDC + "dutchLanguageVariant"
	NeedsConversion       = NamespaceLPDC + "needsConversionFromFormalToInformal"
	ConceptSnapshotSource = NamespaceExt + "hasVersionedSource"
)

// Code list, display configuration, tombstone and ledger predicates.
const (
	PrefLabel               = NamespaceSKOS + "prefLabel"
	InScheme                = NamespaceSKOS + "inScheme"
	TopConcept              = NamespaceSKOS + "topConceptOf"
	SeeAlso                 = NamespaceRDFS + "seeAlso"
	Relation                = NamespaceDCT + "relation"
	ConceptIsNew            = NamespaceLPDC + "conceptIsNew"
	ConceptInstantiated     = NamespaceLPDC + "conceptInstantiated"
	HasDisplayConfiguration = NamespaceLPDC + "hasConceptDisplayConfiguration"
	FormerType              = NamespaceAS + "formerType"
	Deleted                 = NamespaceAS + "deleted"
	ProcessedIn             = NamespaceExt + "processedIn"
	FailedIn                = NamespaceExt + "failedIn"
)

// Code schemes.
const (
	SchemeOrganisations         = "https://productencatalogus.data.vlaanderen.be/id/conceptscheme/IPDCOrganisaties"
	SchemeOrganisationsTailored = "https://productencatalogus.data.vlaanderen.be/id/conceptscheme/IPDCOrganisaties/tailored"
)

// Well-known graphs.
const (
	GraphPublic            = "http://mu.semte.ch/graphs/public"
	GraphConceptSnapshots  = "http://mu.semte.ch/graphs/lpdc/ldes-data"
	GraphInstanceSnapshots = "http://mu.semte.ch/graphs/lpdc/instancesnapshots-ldes-data"
	GraphLedger            = "http://mu.semte.ch/graphs/lpdc/snapshot-ledger"
)

// TenantGraph returns the graph holding the data of one bestuurseenheid.
func TenantGraph(bestuurseenheidUUID string) string {
	return fmt.Sprintf("http://mu.semte.ch/graphs/organizations/%s/LoketLB-LPDCGebruiker", bestuurseenheidUUID)
}
