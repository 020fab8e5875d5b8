package domain

import (
	"slices"
	"time"
)

// Content holds the catalog fields shared by concepts, instances and their
// snapshots.
type Content struct {
	Title                    *LanguageString
	Description              *LanguageString
	AdditionalDescription    *LanguageString
	Exception                *LanguageString
	Regulation               *LanguageString
	StartDate                *time.Time
	EndDate                  *time.Time
	ProductType              ProductType
	TargetAudiences          []TargetAudience
	Themes                   []Theme
	CompetentAuthorityLevels []CompetentAuthorityLevel
	CompetentAuthorities     []IRI
	ExecutingAuthorityLevels []ExecutingAuthorityLevel
	ExecutingAuthorities     []IRI
	PublicationMedia         []PublicationMedium
	YourEuropeCategories     []YourEuropeCategory
	Keywords                 []LanguageString
	Requirements             []Requirement
	Procedures               []Procedure
	Websites                 []Website
	Costs                    []Cost
	FinancialAdvantages      []FinancialAdvantage
	LegalResources           []LegalResource
}

// Normalized returns a copy with sets sorted and de-duplicated, children
// sorted by order and timestamps in UTC.
func (content Content) Normalized() Content {
	content.StartDate = normalizeTime(content.StartDate)
	content.EndDate = normalizeTime(content.EndDate)
	content.TargetAudiences = SortedSet(content.TargetAudiences)
	content.Themes = SortedSet(content.Themes)
	content.CompetentAuthorityLevels = SortedSet(content.CompetentAuthorityLevels)
	content.CompetentAuthorities = SortedSet(content.CompetentAuthorities)
	content.ExecutingAuthorityLevels = SortedSet(content.ExecutingAuthorityLevels)
	content.ExecutingAuthorities = SortedSet(content.ExecutingAuthorities)
	content.PublicationMedia = SortedSet(content.PublicationMedia)
	content.YourEuropeCategories = SortedSet(content.YourEuropeCategories)
	content.Keywords = SortLanguageStrings(content.Keywords)

	content.Requirements = slices.Clone(content.Requirements)
	SortByOrder(content.Requirements, RequirementOrder)
	content.Procedures = slices.Clone(content.Procedures)
	for i := range content.Procedures {
		content.Procedures[i].Websites = slices.Clone(content.Procedures[i].Websites)
		SortByOrder(content.Procedures[i].Websites, WebsiteOrder)
	}
	SortByOrder(content.Procedures, ProcedureOrder)
	content.Websites = slices.Clone(content.Websites)
	SortByOrder(content.Websites, WebsiteOrder)
	content.Costs = slices.Clone(content.Costs)
	SortByOrder(content.Costs, CostOrder)
	content.FinancialAdvantages = slices.Clone(content.FinancialAdvantages)
	SortByOrder(content.FinancialAdvantages, FinancialAdvantageOrder)
	content.LegalResources = slices.Clone(content.LegalResources)
	SortByOrder(content.LegalResources, LegalResourceOrder)
	return content
}

// Reidentify returns a copy whose nested children all carry fresh identifiers.
// Canonical records own their children independently of the snapshot they
// were copied from.
func (content Content) Reidentify(ids IdentityGenerator) Content {
	content.Requirements = reidentifyAll(content.Requirements, Requirement.Reidentify, ids)
	content.Procedures = reidentifyAll(content.Procedures, Procedure.Reidentify, ids)
	content.Websites = reidentifyAll(content.Websites, Website.Reidentify, ids)
	content.Costs = reidentifyAll(content.Costs, Cost.Reidentify, ids)
	content.FinancialAdvantages = reidentifyAll(content.FinancialAdvantages, FinancialAdvantage.Reidentify, ids)
	content.LegalResources = reidentifyAll(content.LegalResources, LegalResource.Reidentify, ids)
	return content
}

// Validate checks child identifiers and order uniqueness per collection.
func (content Content) Validate() error {
	for _, requirement := range content.Requirements {
		if err := requirement.validate(); err != nil {
			return err
		}
	}
	for _, procedure := range content.Procedures {
		if err := procedure.validate(); err != nil {
			return err
		}
	}
	for _, website := range content.Websites {
		if err := requireIRI("website id", website.ID); err != nil {
			return err
		}
	}
	for _, cost := range content.Costs {
		if err := requireIRI("cost id", cost.ID); err != nil {
			return err
		}
	}
	for _, advantage := range content.FinancialAdvantages {
		if err := requireIRI("financial advantage id", advantage.ID); err != nil {
			return err
		}
	}
	for _, resource := range content.LegalResources {
		if err := requireIRI("legal resource id", resource.ID); err != nil {
			return err
		}
	}

	for _, keyword := range content.Keywords {
		if len(keyword.Values()) != 1 {
			return NewInvariantError("keyword should have exactly one language variant")
		}
	}

	checks := []error{
		ValidateOrders("requirements", content.Requirements, RequirementOrder),
		ValidateOrders("procedures", content.Procedures, ProcedureOrder),
		ValidateOrders("websites", content.Websites, WebsiteOrder),
		ValidateOrders("costs", content.Costs, CostOrder),
		ValidateOrders("financial advantages", content.FinancialAdvantages, FinancialAdvantageOrder),
		ValidateOrders("legal resources", content.LegalResources, LegalResourceOrder),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// validateFinalized requires the title and description of every
// requirement, procedure, cost and financial advantage.
func (content Content) validateFinalized() error {
	if content.Title == nil {
		return NewInvariantError("title should not be absent")
	}
	if content.Description == nil {
		return NewInvariantError("description should not be absent")
	}
	for _, requirement := range content.Requirements {
		if requirement.Title == nil || requirement.Description == nil {
			return NewInvariantError("requirement %s should have a title and description", requirement.ID)
		}
	}
	for _, procedure := range content.Procedures {
		if procedure.Title == nil || procedure.Description == nil {
			return NewInvariantError("procedure %s should have a title and description", procedure.ID)
		}
	}
	for _, cost := range content.Costs {
		if cost.Title == nil || cost.Description == nil {
			return NewInvariantError("cost %s should have a title and description", cost.ID)
		}
	}
	for _, advantage := range content.FinancialAdvantages {
		if advantage.Title == nil || advantage.Description == nil {
			return NewInvariantError("financial advantage %s should have a title and description", advantage.ID)
		}
	}
	return nil
}

// FunctionallyEqual reports whether both contents describe the same service.
// Texts compare on their base and nl variants only and child identifiers are
// ignored.
func (content Content) FunctionallyEqual(other Content) bool {
	a, b := content.Normalized(), other.Normalized()

	return LanguageStringsFunctionallyEqual(a.Title, b.Title) &&
		LanguageStringsFunctionallyEqual(a.Description, b.Description) &&
		LanguageStringsFunctionallyEqual(a.AdditionalDescription, b.AdditionalDescription) &&
		LanguageStringsFunctionallyEqual(a.Exception, b.Exception) &&
		LanguageStringsFunctionallyEqual(a.Regulation, b.Regulation) &&
		timesEqual(a.StartDate, b.StartDate) &&
		timesEqual(a.EndDate, b.EndDate) &&
		a.ProductType == b.ProductType &&
		slices.Equal(a.TargetAudiences, b.TargetAudiences) &&
		slices.Equal(a.Themes, b.Themes) &&
		slices.Equal(a.CompetentAuthorityLevels, b.CompetentAuthorityLevels) &&
		slices.Equal(a.CompetentAuthorities, b.CompetentAuthorities) &&
		slices.Equal(a.ExecutingAuthorityLevels, b.ExecutingAuthorityLevels) &&
		slices.Equal(a.ExecutingAuthorities, b.ExecutingAuthorities) &&
		slices.Equal(a.PublicationMedia, b.PublicationMedia) &&
		slices.Equal(a.YourEuropeCategories, b.YourEuropeCategories) &&
		slices.EqualFunc(a.Keywords, b.Keywords, func(x, y LanguageString) bool {
			return LanguageStringsFunctionallyEqual(&x, &y)
		}) &&
		slices.EqualFunc(a.Requirements, b.Requirements, requirementsEqual) &&
		slices.EqualFunc(a.Procedures, b.Procedures, proceduresEqual) &&
		slices.EqualFunc(a.Websites, b.Websites, websitesEqual) &&
		slices.EqualFunc(a.Costs, b.Costs, func(x, y Cost) bool {
			return textsEqual(x.Title, x.Description, y.Title, y.Description) && x.Order == y.Order
		}) &&
		slices.EqualFunc(a.FinancialAdvantages, b.FinancialAdvantages, func(x, y FinancialAdvantage) bool {
			return textsEqual(x.Title, x.Description, y.Title, y.Description) && x.Order == y.Order
		}) &&
		slices.EqualFunc(a.LegalResources, b.LegalResources, func(x, y LegalResource) bool {
			return textsEqual(x.Title, x.Description, y.Title, y.Description) && x.URL == y.URL && x.Order == y.Order
		})
}

func textsEqual(titleA, descriptionA, titleB, descriptionB *LanguageString) bool {
	return LanguageStringsFunctionallyEqual(titleA, titleB) &&
		LanguageStringsFunctionallyEqual(descriptionA, descriptionB)
}

func requirementsEqual(a, b Requirement) bool {
	if !textsEqual(a.Title, a.Description, b.Title, b.Description) || a.Order != b.Order {
		return false
	}
	if a.Evidence == nil || b.Evidence == nil {
		return a.Evidence == nil && b.Evidence == nil
	}
	return textsEqual(a.Evidence.Title, a.Evidence.Description, b.Evidence.Title, b.Evidence.Description)
}

func websitesEqual(a, b Website) bool {
	return textsEqual(a.Title, a.Description, b.Title, b.Description) && a.URL == b.URL && a.Order == b.Order
}

func proceduresEqual(a, b Procedure) bool {
	return textsEqual(a.Title, a.Description, b.Title, b.Description) &&
		a.Order == b.Order &&
		slices.EqualFunc(a.Websites, b.Websites, websitesEqual)
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func normalizeTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	normalized := value.UTC()
	return &normalized
}
