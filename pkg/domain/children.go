package domain

import "sort"

// Evidence is the supporting evidence of a requirement.
type Evidence struct {
	ID          IRI
	UUID        string
	Title       *LanguageString
	Description *LanguageString
}

// Requirement is a condition for obtaining a service. It owns at most one Evidence.
type Requirement struct {
	ID          IRI
	UUID        string
	Title       *LanguageString
	Description *LanguageString
	Order       int
	Evidence    *Evidence
}

// Website is a link with a title.
type Website struct {
	ID          IRI
	UUID        string
	Title       *LanguageString
	Description *LanguageString
	URL         string
	Order       int
}

// Procedure describes how to obtain a service. It owns ordered Websites.
type Procedure struct {
	ID          IRI
	UUID        string
	Title       *LanguageString
	Description *LanguageString
	Order       int
	Websites    []Website
}

// Cost is a cost attached to a service.
type Cost struct {
	ID          IRI
	UUID        string
	Title       *LanguageString
	Description *LanguageString
	Order       int
}

// FinancialAdvantage is an advantage a service produces.
type FinancialAdvantage struct {
	ID          IRI
	UUID        string
	Title       *LanguageString
	Description *LanguageString
	Order       int
}

// LegalResource points at the regulation a service is based on.
type LegalResource struct {
	ID          IRI
	UUID        string
	Title       *LanguageString
	Description *LanguageString
	URL         string
	Order       int
}

// Address is a postal address. RefersTo links an address registry match.
type Address struct {
	ID           IRI
	UUID         string
	Municipality *LanguageString
	Street       *LanguageString
	HouseNumber  string
	BoxNumber    string
	PostalCode   string
	Country      *LanguageString
	RefersTo     IRI
}

// ContactPoint is a way to reach the executing authority. It owns at most one Address.
type ContactPoint struct {
	ID           IRI
	UUID         string
	URL          string
	Email        string
	Telephone    string
	OpeningHours string
	Order        int
	Address      *Address
}

// Reidentify returns a copy with fresh identifiers, including nested evidence.
func (requirement Requirement) Reidentify(ids IdentityGenerator) Requirement {
	requirement.ID, requirement.UUID = ids.NewIdentity(KindRequirement)
	if requirement.Evidence != nil {
		evidence := *requirement.Evidence
		evidence.ID, evidence.UUID = ids.NewIdentity(KindEvidence)
		requirement.Evidence = &evidence
	}
	return requirement
}

// Reidentify returns a copy with fresh identifiers.
func (website Website) Reidentify(ids IdentityGenerator) Website {
	website.ID, website.UUID = ids.NewIdentity(KindWebsite)
	return website
}

// Reidentify returns a copy with fresh identifiers, including every website.
func (procedure Procedure) Reidentify(ids IdentityGenerator) Procedure {
	procedure.ID, procedure.UUID = ids.NewIdentity(KindProcedure)
	procedure.Websites = reidentifyAll(procedure.Websites, Website.Reidentify, ids)
	return procedure
}

func (cost Cost) Reidentify(ids IdentityGenerator) Cost {
	cost.ID, cost.UUID = ids.NewIdentity(KindCost)
	return cost
}

func (advantage FinancialAdvantage) Reidentify(ids IdentityGenerator) FinancialAdvantage {
	advantage.ID, advantage.UUID = ids.NewIdentity(KindFinancialAdvantage)
	return advantage
}

func (resource LegalResource) Reidentify(ids IdentityGenerator) LegalResource {
	resource.ID, resource.UUID = ids.NewIdentity(KindLegalResource)
	return resource
}

// Reidentify returns a copy with fresh identifiers, including the address.
func (contactPoint ContactPoint) Reidentify(ids IdentityGenerator) ContactPoint {
	contactPoint.ID, contactPoint.UUID = ids.NewIdentity(KindContactPoint)
	if contactPoint.Address != nil {
		address := *contactPoint.Address
		address.ID, address.UUID = ids.NewIdentity(KindAddress)
		contactPoint.Address = &address
	}
	return contactPoint
}

func reidentifyAll[T any](items []T, reidentify func(T, IdentityGenerator) T, ids IdentityGenerator) []T {
	if items == nil {
		return nil
	}
	result := make([]T, len(items))
	for i, item := range items {
		result[i] = reidentify(item, ids)
	}
	return result
}

// AssignOrders numbers a newly authored collection in its current sequence.
// Reconstituted collections keep the orders they were decoded with.
func AssignOrders[T any](items []T, setOrder func(*T, int)) []T {
	if items == nil {
		return nil
	}
	result := make([]T, len(items))
	copy(result, items)
	for i := range result {
		setOrder(&result[i], i)
	}
	return result
}

// SortByOrder sorts a collection in place by its order value.
func SortByOrder[T any](items []T, order func(T) int) {
	sort.SliceStable(items, func(i, j int) bool { return order(items[i]) < order(items[j]) })
}

// ValidateOrders fails when two children of the same collection share an order.
func ValidateOrders[T any](collection string, items []T, order func(T) int) error {
	seen := make(map[int]bool, len(items))
	for _, item := range items {
		value := order(item)
		if seen[value] {
			return NewInvariantError("%s > order should not contain duplicates (order %d)", collection, value)
		}
		seen[value] = true
	}
	return nil
}

// RequirementOrder and the other order accessors are used with SortByOrder and ValidateOrders.
func RequirementOrder(requirement Requirement) int {
	return requirement.Order
}

func ProcedureOrder(procedure Procedure) int {
	return procedure.Order
}

func WebsiteOrder(website Website) int {
	return website.Order
}

func CostOrder(cost Cost) int {
	return cost.Order
}

func FinancialAdvantageOrder(advantage FinancialAdvantage) int {
	return advantage.Order
}

func LegalResourceOrder(resource LegalResource) int {
	return resource.Order
}

func ContactPointOrder(contactPoint ContactPoint) int {
	return contactPoint.Order
}

func (evidence *Evidence) validate() error {
	if evidence == nil {
		return nil
	}
	return requireIRI("evidence id", evidence.ID)
}

func (requirement Requirement) validate() error {
	if err := requireIRI("requirement id", requirement.ID); err != nil {
		return err
	}
	return requirement.Evidence.validate()
}

func (procedure Procedure) validate() error {
	if err := requireIRI("procedure id", procedure.ID); err != nil {
		return err
	}
	for _, website := range procedure.Websites {
		if err := requireIRI("website id", website.ID); err != nil {
			return err
		}
	}
	return ValidateOrders("websites", procedure.Websites, WebsiteOrder)
}

func (contactPoint ContactPoint) validate() error {
	if err := requireIRI("contact point id", contactPoint.ID); err != nil {
		return err
	}
	if contactPoint.Address != nil {
		return requireIRI("address id", contactPoint.Address.ID)
	}
	return nil
}
