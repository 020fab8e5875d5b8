package domain

// ProductType classifies what a public service delivers.
type ProductType string

const (
	ProductTypeFinancieelVoordeel      ProductType = "FinancieelVoordeel"
	ProductTypeFinancieleVerplichting  ProductType = "FinancieleVerplichting"
	ProductTypeToelating               ProductType = "Toelating"
	ProductTypeBewijs                  ProductType = "Bewijs"
	ProductTypeVoorwerp                ProductType = "Voorwerp"
	ProductTypeAdviesBegeleiding       ProductType = "AdviesBegeleiding"
	ProductTypeInfrastructuurMateriaal ProductType = "InfrastructuurMateriaal"
)

// ProductTypes lists every ProductType.
var ProductTypes = []ProductType{
	ProductTypeFinancieelVoordeel,
	ProductTypeFinancieleVerplichting,
	ProductTypeToelating,
	ProductTypeBewijs,
	ProductTypeVoorwerp,
	ProductTypeAdviesBegeleiding,
	ProductTypeInfrastructuurMateriaal,
}

// TargetAudience is a group a public service is aimed at.
type TargetAudience string

const (
	TargetAudienceBurger          TargetAudience = "Burger"
	TargetAudienceOnderneming     TargetAudience = "Onderneming"
	TargetAudienceOrganisatie     TargetAudience = "Organisatie"
	TargetAudienceVlaamseOverheid TargetAudience = "VlaamseOverheid"
	TargetAudienceLokaalBestuur   TargetAudience = "LokaalBestuur"
	TargetAudienceVereniging      TargetAudience = "Vereniging"
)

var TargetAudiences = []TargetAudience{
	TargetAudienceBurger,
	TargetAudienceOnderneming,
	TargetAudienceOrganisatie,
	TargetAudienceVlaamseOverheid,
	TargetAudienceLokaalBestuur,
	TargetAudienceVereniging,
}

// Theme is a thematic area.
type Theme string

const (
	ThemeBurgerOverheid           Theme = "BurgerOverheid"
	ThemeBouwenWonen              Theme = "BouwenWonen"
	ThemeCultuurSportVrijeTijd    Theme = "CultuurSportVrijeTijd"
	ThemeEconomieWerk             Theme = "EconomieWerk"
	ThemeMilieuEnergie            Theme = "MilieuEnergie"
	ThemeMobiliteitOpenbareWerken Theme = "MobiliteitOpenbareWerken"
	ThemeOnderwijsWetenschap      Theme = "OnderwijsWetenschap"
	ThemeWelzijnGezondheid        Theme = "WelzijnGezondheid"
)

var Themes = []Theme{
	ThemeBurgerOverheid,
	ThemeBouwenWonen,
	ThemeCultuurSportVrijeTijd,
	ThemeEconomieWerk,
	ThemeMilieuEnergie,
	ThemeMobiliteitOpenbareWerken,
	ThemeOnderwijsWetenschap,
	ThemeWelzijnGezondheid,
}

// CompetentAuthorityLevel is the government level responsible for a service.
type CompetentAuthorityLevel string

const (
	CompetentAuthorityLevelEuropees    CompetentAuthorityLevel = "Europees"
	CompetentAuthorityLevelFederaal    CompetentAuthorityLevel = "Federaal"
	CompetentAuthorityLevelVlaams      CompetentAuthorityLevel = "Vlaams"
	CompetentAuthorityLevelProvinciaal CompetentAuthorityLevel = "Provinciaal"
	CompetentAuthorityLevelLokaal      CompetentAuthorityLevel = "Lokaal"
)

var CompetentAuthorityLevels = []CompetentAuthorityLevel{
	CompetentAuthorityLevelEuropees,
	CompetentAuthorityLevelFederaal,
	CompetentAuthorityLevelVlaams,
	CompetentAuthorityLevelProvinciaal,
	CompetentAuthorityLevelLokaal,
}

// ExecutingAuthorityLevel is the level that actually delivers a service.
type ExecutingAuthorityLevel string

const (
	ExecutingAuthorityLevelEuropees    ExecutingAuthorityLevel = "Europees"
	ExecutingAuthorityLevelFederaal    ExecutingAuthorityLevel = "Federaal"
	ExecutingAuthorityLevelVlaams      ExecutingAuthorityLevel = "Vlaams"
	ExecutingAuthorityLevelProvinciaal ExecutingAuthorityLevel = "Provinciaal"
	ExecutingAuthorityLevelLokaal      ExecutingAuthorityLevel = "Lokaal"
	ExecutingAuthorityLevelDerden      ExecutingAuthorityLevel = "Derden"
)

var ExecutingAuthorityLevels = []ExecutingAuthorityLevel{
	ExecutingAuthorityLevelEuropees,
	ExecutingAuthorityLevelFederaal,
	ExecutingAuthorityLevelVlaams,
	ExecutingAuthorityLevelProvinciaal,
	ExecutingAuthorityLevelLokaal,
	ExecutingAuthorityLevelDerden,
}

// PublicationMedium is a channel a service is published on.
type PublicationMedium string

const (
	PublicationMediumRechtenverkenner PublicationMedium = "Rechtenverkenner"
	PublicationMediumYourEurope       PublicationMedium = "YourEurope"
)

var PublicationMedia = []PublicationMedium{
	PublicationMediumRechtenverkenner,
	PublicationMediumYourEurope,
}

// YourEuropeCategory is a category of the Your Europe portal.
type YourEuropeCategory string

const (
	YourEuropeCategoryBedrijf                 YourEuropeCategory = "Bedrijf"
	YourEuropeCategoryBedrijfFinanciering     YourEuropeCategory = "BedrijfFinanciering"
	YourEuropeCategoryBedrijfOprichting       YourEuropeCategory = "BedrijfOprichting"
	YourEuropeCategoryBurgerschapVerblijf     YourEuropeCategory = "BurgerschapVerblijf"
	YourEuropeCategoryConsumentenrechten      YourEuropeCategory = "Consumentenrechten"
	YourEuropeCategoryGezondheidszorg         YourEuropeCategory = "Gezondheidszorg"
	YourEuropeCategoryOnderwijsStage          YourEuropeCategory = "OnderwijsStage"
	YourEuropeCategoryProcedures              YourEuropeCategory = "Procedures"
	YourEuropeCategoryReizen                  YourEuropeCategory = "Reizen"
	YourEuropeCategoryVoertuigen              YourEuropeCategory = "Voertuigen"
	YourEuropeCategoryWerkPensioneringSociaal YourEuropeCategory = "WerkPensioneringSociaal"
)

var YourEuropeCategories = []YourEuropeCategory{
	YourEuropeCategoryBedrijf,
	YourEuropeCategoryBedrijfFinanciering,
	YourEuropeCategoryBedrijfOprichting,
	YourEuropeCategoryBurgerschapVerblijf,
	YourEuropeCategoryConsumentenrechten,
	YourEuropeCategoryGezondheidszorg,
	YourEuropeCategoryOnderwijsStage,
	YourEuropeCategoryProcedures,
	YourEuropeCategoryReizen,
	YourEuropeCategoryVoertuigen,
	YourEuropeCategoryWerkPensioneringSociaal,
}

// ConceptTag marks concepts with an obligation towards Your Europe.
type ConceptTag string

const (
	ConceptTagYourEuropeVerplicht  ConceptTag = "YourEuropeVerplicht"
	ConceptTagYourEuropeAanbevolen ConceptTag = "YourEuropeAanbevolen"
)

var ConceptTags = []ConceptTag{
	ConceptTagYourEuropeVerplicht,
	ConceptTagYourEuropeAanbevolen,
}

// SnapshotType tells what an upstream snapshot does to its concept.
type SnapshotType string

const (
	SnapshotTypeCreate SnapshotType = "Create"
	SnapshotTypeUpdate SnapshotType = "Update"
	SnapshotTypeDelete SnapshotType = "Delete"
)

var SnapshotTypes = []SnapshotType{
	SnapshotTypeCreate,
	SnapshotTypeUpdate,
	SnapshotTypeDelete,
}

// LanguageCode is an EU authority language code.
type LanguageCode string

const (
	LanguageCodeNLD LanguageCode = "NLD"
	LanguageCodeENG LanguageCode = "ENG"
	LanguageCodeFRA LanguageCode = "FRA"
	LanguageCodeDEU LanguageCode = "DEU"
)

var LanguageCodes = []LanguageCode{
	LanguageCodeNLD,
	LanguageCodeENG,
	LanguageCodeFRA,
	LanguageCodeDEU,
}

// InstanceStatus is the authoring status of an instance.
type InstanceStatus string

const (
	InstanceStatusOntwerp   InstanceStatus = "ontwerp"
	InstanceStatusVerzonden InstanceStatus = "verzonden"
)

var InstanceStatuses = []InstanceStatus{
	InstanceStatusOntwerp,
	InstanceStatusVerzonden,
}

// ReviewStatus flags an instance whose concept changed after it was
// instantiated.
type ReviewStatus string

const (
	ReviewStatusConceptGewijzigd    ReviewStatus = "concept-gewijzigd"
	ReviewStatusConceptGearchiveerd ReviewStatus = "concept-gearchiveerd"
)

var ReviewStatuses = []ReviewStatus{
	ReviewStatusConceptGewijzigd,
	ReviewStatusConceptGearchiveerd,
}

// PublicationStatus tracks whether an instance reached the public portals.
type PublicationStatus string

const (
	PublicationStatusTeHerpubliceren PublicationStatus = "te-herpubliceren"
	PublicationStatusGepubliceerd    PublicationStatus = "gepubliceerd"
)

var PublicationStatuses = []PublicationStatus{
	PublicationStatusTeHerpubliceren,
	PublicationStatusGepubliceerd,
}
