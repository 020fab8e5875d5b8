package codec

import (
	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// Collection names used in decode errors.
const (
	collectionRequirements        = "requirements"
	collectionProcedures          = "procedures"
	collectionWebsites            = "websites"
	collectionCosts               = "costs"
	collectionFinancialAdvantages = "financial advantages"
	collectionLegalResources      = "legal resources"
	collectionContactPoints       = "contact points"
)

func (d *decoder) content(id domain.IRI) (domain.Content, error) {
	var err error
	content := domain.Content{
		Title:                 d.text(id, vocabulary.Title),
		Description:           d.text(id, vocabulary.Description),
		AdditionalDescription: d.text(id, vocabulary.AdditionalDescription),
		Exception:             d.text(id, vocabulary.Exception),
		Regulation:            d.text(id, vocabulary.Regulation),
		CompetentAuthorities:  d.references(id, vocabulary.CompetentAuthority),
		ExecutingAuthorities:  d.references(id, vocabulary.ExecutingAuthority),
		Keywords:              d.keywords(id, vocabulary.Keyword),
	}

	if content.StartDate, err = d.optionalTime(id, vocabulary.StartDate); err != nil {
		return content, err
	}
	if content.EndDate, err = d.optionalTime(id, vocabulary.EndDate); err != nil {
		return content, err
	}
	if content.ProductType, err = code(d, d.tables.productTypes, id, vocabulary.ProductType); err != nil {
		return content, err
	}
	if content.TargetAudiences, err = codes(d, d.tables.targetAudiences, id, vocabulary.TargetAudience); err != nil {
		return content, err
	}
	if content.Themes, err = codes(d, d.tables.themes, id, vocabulary.Theme); err != nil {
		return content, err
	}
	if content.CompetentAuthorityLevels, err = codes(d, d.tables.competentAuthorityLevels, id, vocabulary.CompetentAuthorityLevel); err != nil {
		return content, err
	}
	if content.ExecutingAuthorityLevels, err = codes(d, d.tables.executingAuthorityLevels, id, vocabulary.ExecutingAuthorityLevel); err != nil {
		return content, err
	}
	if content.PublicationMedia, err = codes(d, d.tables.publicationMedia, id, vocabulary.PublicationMedium); err != nil {
		return content, err
	}
	if content.YourEuropeCategories, err = codes(d, d.tables.yourEuropeCategories, id, vocabulary.YourEuropeCategory); err != nil {
		return content, err
	}

	if content.Requirements, err = children(d, collectionRequirements, id, vocabulary.HasRequirement, d.requirement, domain.RequirementOrder); err != nil {
		return content, err
	}
	if content.Procedures, err = children(d, collectionProcedures, id, vocabulary.HasProcedure, d.procedure, domain.ProcedureOrder); err != nil {
		return content, err
	}
	if content.Websites, err = children(d, collectionWebsites, id, vocabulary.HasWebsite, d.website, domain.WebsiteOrder); err != nil {
		return content, err
	}
	if content.Costs, err = children(d, collectionCosts, id, vocabulary.HasCost, d.cost, domain.CostOrder); err != nil {
		return content, err
	}
	if content.FinancialAdvantages, err = children(d, collectionFinancialAdvantages, id, vocabulary.HasFinancialAdvantage, d.financialAdvantage, domain.FinancialAdvantageOrder); err != nil {
		return content, err
	}
	if content.LegalResources, err = children(d, collectionLegalResources, id, vocabulary.HasLegalResource, d.legalResource, domain.LegalResourceOrder); err != nil {
		return content, err
	}
	return content, nil
}

func (d *decoder) requirement(id domain.IRI) (domain.Requirement, error) {
	if err := d.requireType(id, vocabulary.ClassRequirement); err != nil {
		return domain.Requirement{}, err
	}
	order, err := d.order(collectionRequirements, id)
	if err != nil {
		return domain.Requirement{}, err
	}

	requirement := domain.Requirement{
		ID:          id,
		UUID:        d.literal(id, vocabulary.UUID),
		Title:       d.text(id, vocabulary.Title),
		Description: d.text(id, vocabulary.Description),
		Order:       order,
	}

	if evidenceID := d.reference(id, vocabulary.HasSupportingEvidence); evidenceID != "" {
		if err := d.requireType(evidenceID, vocabulary.ClassEvidence); err != nil {
			return domain.Requirement{}, err
		}
		requirement.Evidence = &domain.Evidence{
			ID:          evidenceID,
			UUID:        d.literal(evidenceID, vocabulary.UUID),
			Title:       d.text(evidenceID, vocabulary.Title),
			Description: d.text(evidenceID, vocabulary.Description),
		}
	}
	return requirement, nil
}

func (d *decoder) procedure(id domain.IRI) (domain.Procedure, error) {
	if err := d.requireType(id, vocabulary.ClassProcedure); err != nil {
		return domain.Procedure{}, err
	}
	order, err := d.order(collectionProcedures, id)
	if err != nil {
		return domain.Procedure{}, err
	}
	websites, err := children(d, collectionWebsites, id, vocabulary.HasWebsite, d.website, domain.WebsiteOrder)
	if err != nil {
		return domain.Procedure{}, err
	}

	return domain.Procedure{
		ID:          id,
		UUID:        d.literal(id, vocabulary.UUID),
		Title:       d.text(id, vocabulary.Title),
		Description: d.text(id, vocabulary.Description),
		Order:       order,
		Websites:    websites,
	}, nil
}

func (d *decoder) website(id domain.IRI) (domain.Website, error) {
	if err := d.requireType(id, vocabulary.ClassWebsite); err != nil {
		return domain.Website{}, err
	}
	order, err := d.order(collectionWebsites, id)
	if err != nil {
		return domain.Website{}, err
	}

	return domain.Website{
		ID:          id,
		UUID:        d.literal(id, vocabulary.UUID),
		Title:       d.text(id, vocabulary.Title),
		Description: d.text(id, vocabulary.Description),
		URL:         d.literal(id, vocabulary.URL),
		Order:       order,
	}, nil
}

func (d *decoder) cost(id domain.IRI) (domain.Cost, error) {
	if err := d.requireType(id, vocabulary.ClassCost); err != nil {
		return domain.Cost{}, err
	}
	order, err := d.order(collectionCosts, id)
	if err != nil {
		return domain.Cost{}, err
	}

	return domain.Cost{
		ID:          id,
		UUID:        d.literal(id, vocabulary.UUID),
		Title:       d.text(id, vocabulary.Title),
		Description: d.text(id, vocabulary.Description),
		Order:       order,
	}, nil
}

func (d *decoder) financialAdvantage(id domain.IRI) (domain.FinancialAdvantage, error) {
	if err := d.requireType(id, vocabulary.ClassFinancialAdvantage); err != nil {
		return domain.FinancialAdvantage{}, err
	}
	order, err := d.order(collectionFinancialAdvantages, id)
	if err != nil {
		return domain.FinancialAdvantage{}, err
	}

	return domain.FinancialAdvantage{
		ID:          id,
		UUID:        d.literal(id, vocabulary.UUID),
		Title:       d.text(id, vocabulary.Title),
		Description: d.text(id, vocabulary.Description),
		Order:       order,
	}, nil
}

func (d *decoder) legalResource(id domain.IRI) (domain.LegalResource, error) {
	if err := d.requireType(id, vocabulary.ClassLegalResource); err != nil {
		return domain.LegalResource{}, err
	}
	order, err := d.order(collectionLegalResources, id)
	if err != nil {
		return domain.LegalResource{}, err
	}

	return domain.LegalResource{
		ID:          id,
		UUID:        d.literal(id, vocabulary.UUID),
		Title:       d.text(id, vocabulary.Title),
		Description: d.text(id, vocabulary.Description),
		URL:         d.literal(id, vocabulary.URL),
		Order:       order,
	}, nil
}

func (d *decoder) contactPoint(id domain.IRI) (domain.ContactPoint, error) {
	if err := d.requireType(id, vocabulary.ClassContactPoint); err != nil {
		return domain.ContactPoint{}, err
	}
	order, err := d.order(collectionContactPoints, id)
	if err != nil {
		return domain.ContactPoint{}, err
	}

	contactPoint := domain.ContactPoint{
		ID:           id,
		UUID:         d.literal(id, vocabulary.UUID),
		URL:          d.literal(id, vocabulary.URL),
		Email:        d.literal(id, vocabulary.Email),
		Telephone:    d.literal(id, vocabulary.Telephone),
		OpeningHours: d.literal(id, vocabulary.OpeningHours),
		Order:        order,
	}

	if addressID := d.reference(id, vocabulary.HasAddress); addressID != "" {
		if err := d.requireType(addressID, vocabulary.ClassAddress); err != nil {
			return domain.ContactPoint{}, err
		}
		contactPoint.Address = &domain.Address{
			ID:           addressID,
			UUID:         d.literal(addressID, vocabulary.UUID),
			Municipality: d.text(addressID, vocabulary.Municipality),
			Street:       d.text(addressID, vocabulary.Street),
			HouseNumber:  d.literal(addressID, vocabulary.HouseNumber),
			BoxNumber:    d.literal(addressID, vocabulary.BoxNumber),
			PostalCode:   d.literal(addressID, vocabulary.PostalCode),
			Country:      d.text(addressID, vocabulary.Country),
			RefersTo:     d.reference(addressID, vocabulary.RefersTo),
		}
	}
	return contactPoint, nil
}

// withoutUnfinishedChildren drops children of a snapshot whose title or
// description is absent. Historical snapshots may carry partially authored
// legacy data that is never surfaced.
func withoutUnfinishedChildren(content domain.Content) domain.Content {
	content.Requirements = keepFinished(content.Requirements, func(child domain.Requirement) bool {
		return child.Title != nil && child.Description != nil
	})
	content.Procedures = keepFinished(content.Procedures, func(child domain.Procedure) bool {
		return child.Title != nil && child.Description != nil
	})
	content.Costs = keepFinished(content.Costs, func(child domain.Cost) bool {
		return child.Title != nil && child.Description != nil
	})
	content.FinancialAdvantages = keepFinished(content.FinancialAdvantages, func(child domain.FinancialAdvantage) bool {
		return child.Title != nil && child.Description != nil
	})
	return content
}

func keepFinished[T any](items []T, finished func(T) bool) []T {
	var result []T
	for _, item := range items {
		if finished(item) {
			result = append(result, item)
		}
	}
	return result
}
