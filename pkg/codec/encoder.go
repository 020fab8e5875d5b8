package codec

import (
	"strconv"
	"time"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// encoder accumulates the quads of one aggregate in one graph.
type encoder struct {
	tables *tables
	graph  string
	quads  []rdf.Quad
}

func newEncoder(tables *tables, graph string) *encoder {
	return &encoder{tables: tables, graph: graph}
}

func (e *encoder) add(id domain.IRI, predicate string, object rdf.Term) {
	e.quads = append(e.quads, rdf.NewQuad(subjectOf(id), predicate, object, e.graph))
}

func (e *encoder) typed(id domain.IRI, class string) {
	e.add(id, rdf.Type, rdf.IRI(class))
}

func (e *encoder) text(id domain.IRI, predicate string, text *domain.LanguageString) {
	for tag, value := range text.Values() {
		e.add(id, predicate, rdf.LangLiteral(value, tag))
	}
}

func (e *encoder) keywords(id domain.IRI, keywords []domain.LanguageString) {
	for _, keyword := range keywords {
		e.text(id, vocabulary.Keyword, &keyword)
	}
}

func (e *encoder) literal(id domain.IRI, predicate, value string) {
	if value != "" {
		e.add(id, predicate, rdf.Literal(value))
	}
}

func (e *encoder) reference(id domain.IRI, predicate string, object domain.IRI) {
	if object != "" {
		e.add(id, predicate, rdf.IRI(string(object)))
	}
}

func (e *encoder) references(id domain.IRI, predicate string, objects []domain.IRI) {
	for _, object := range objects {
		e.reference(id, predicate, object)
	}
}

func (e *encoder) boolean(id domain.IRI, predicate string, value bool) {
	e.add(id, predicate, rdf.TypedLiteral(strconv.FormatBool(value), rdf.XSDBoolean))
}

func (e *encoder) dateTime(id domain.IRI, predicate string, value time.Time) {
	if !value.IsZero() {
		e.add(id, predicate, DateTimeLiteral(value))
	}
}

// DateTimeLiteral is the xsd:dateTime literal the codec writes for value.
func DateTimeLiteral(value time.Time) rdf.Term {
	return rdf.TypedLiteral(value.UTC().Format(time.RFC3339Nano), rdf.XSDDateTime)
}

func (e *encoder) optionalTime(id domain.IRI, predicate string, value *time.Time) {
	if value != nil {
		e.dateTime(id, predicate, *value)
	}
}

func (e *encoder) order(id domain.IRI, order int) {
	e.add(id, vocabulary.Order, rdf.TypedLiteral(strconv.Itoa(order), rdf.XSDInteger))
}

func encodeCode[T ~string](e *encoder, table *codeTable[T], id domain.IRI, predicate string, value T) error {
	if value == "" {
		return nil
	}
	iri, err := table.iri(value)
	if err != nil {
		return err
	}
	e.add(id, predicate, rdf.IRI(iri))
	return nil
}

func encodeCodes[T ~string](e *encoder, table *codeTable[T], id domain.IRI, predicate string, values []T) error {
	for _, value := range values {
		if err := encodeCode(e, table, id, predicate, value); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) content(id domain.IRI, content domain.Content) error {
	e.text(id, vocabulary.Title, content.Title)
	e.text(id, vocabulary.Description, content.Description)
	e.text(id, vocabulary.AdditionalDescription, content.AdditionalDescription)
	e.text(id, vocabulary.Exception, content.Exception)
	e.text(id, vocabulary.Regulation, content.Regulation)
	e.optionalTime(id, vocabulary.StartDate, content.StartDate)
	e.optionalTime(id, vocabulary.EndDate, content.EndDate)
	e.references(id, vocabulary.CompetentAuthority, content.CompetentAuthorities)
	e.references(id, vocabulary.ExecutingAuthority, content.ExecutingAuthorities)
	e.keywords(id, content.Keywords)

	codeErrors := []error{
		encodeCode(e, e.tables.productTypes, id, vocabulary.ProductType, content.ProductType),
		encodeCodes(e, e.tables.targetAudiences, id, vocabulary.TargetAudience, content.TargetAudiences),
		encodeCodes(e, e.tables.themes, id, vocabulary.Theme, content.Themes),
		encodeCodes(e, e.tables.competentAuthorityLevels, id, vocabulary.CompetentAuthorityLevel, content.CompetentAuthorityLevels),
		encodeCodes(e, e.tables.executingAuthorityLevels, id, vocabulary.ExecutingAuthorityLevel, content.ExecutingAuthorityLevels),
		encodeCodes(e, e.tables.publicationMedia, id, vocabulary.PublicationMedium, content.PublicationMedia),
		encodeCodes(e, e.tables.yourEuropeCategories, id, vocabulary.YourEuropeCategory, content.YourEuropeCategories),
	}
	for _, err := range codeErrors {
		if err != nil {
			return err
		}
	}

	for _, requirement := range content.Requirements {
		e.reference(id, vocabulary.HasRequirement, requirement.ID)
		e.requirement(requirement)
	}
	for _, procedure := range content.Procedures {
		e.reference(id, vocabulary.HasProcedure, procedure.ID)
		e.procedure(procedure)
	}
	for _, website := range content.Websites {
		e.reference(id, vocabulary.HasWebsite, website.ID)
		e.website(website)
	}
	for _, cost := range content.Costs {
		e.reference(id, vocabulary.HasCost, cost.ID)
		e.titled(cost.ID, vocabulary.ClassCost, cost.UUID, cost.Title, cost.Description)
		e.order(cost.ID, cost.Order)
	}
	for _, advantage := range content.FinancialAdvantages {
		e.reference(id, vocabulary.HasFinancialAdvantage, advantage.ID)
		e.titled(advantage.ID, vocabulary.ClassFinancialAdvantage, advantage.UUID, advantage.Title, advantage.Description)
		e.order(advantage.ID, advantage.Order)
	}
	for _, resource := range content.LegalResources {
		e.reference(id, vocabulary.HasLegalResource, resource.ID)
		e.titled(resource.ID, vocabulary.ClassLegalResource, resource.UUID, resource.Title, resource.Description)
		e.literal(resource.ID, vocabulary.URL, resource.URL)
		e.order(resource.ID, resource.Order)
	}
	return nil
}

// titled emits the type, uuid, title and description every child shares.
func (e *encoder) titled(id domain.IRI, class, uuid string, title, description *domain.LanguageString) {
	e.typed(id, class)
	e.literal(id, vocabulary.UUID, uuid)
	e.text(id, vocabulary.Title, title)
	e.text(id, vocabulary.Description, description)
}

func (e *encoder) requirement(requirement domain.Requirement) {
	e.titled(requirement.ID, vocabulary.ClassRequirement, requirement.UUID, requirement.Title, requirement.Description)
	e.order(requirement.ID, requirement.Order)
	if evidence := requirement.Evidence; evidence != nil {
		e.reference(requirement.ID, vocabulary.HasSupportingEvidence, evidence.ID)
		e.titled(evidence.ID, vocabulary.ClassEvidence, evidence.UUID, evidence.Title, evidence.Description)
	}
}

func (e *encoder) procedure(procedure domain.Procedure) {
	e.titled(procedure.ID, vocabulary.ClassProcedure, procedure.UUID, procedure.Title, procedure.Description)
	e.order(procedure.ID, procedure.Order)
	for _, website := range procedure.Websites {
		e.reference(procedure.ID, vocabulary.HasWebsite, website.ID)
		e.website(website)
	}
}

func (e *encoder) website(website domain.Website) {
	e.titled(website.ID, vocabulary.ClassWebsite, website.UUID, website.Title, website.Description)
	e.literal(website.ID, vocabulary.URL, website.URL)
	e.order(website.ID, website.Order)
}

func (e *encoder) contactPoint(contactPoint domain.ContactPoint) {
	e.typed(contactPoint.ID, vocabulary.ClassContactPoint)
	e.literal(contactPoint.ID, vocabulary.UUID, contactPoint.UUID)
	e.literal(contactPoint.ID, vocabulary.URL, contactPoint.URL)
	e.literal(contactPoint.ID, vocabulary.Email, contactPoint.Email)
	e.literal(contactPoint.ID, vocabulary.Telephone, contactPoint.Telephone)
	e.literal(contactPoint.ID, vocabulary.OpeningHours, contactPoint.OpeningHours)
	e.order(contactPoint.ID, contactPoint.Order)

	if address := contactPoint.Address; address != nil {
		e.reference(contactPoint.ID, vocabulary.HasAddress, address.ID)
		e.typed(address.ID, vocabulary.ClassAddress)
		e.literal(address.ID, vocabulary.UUID, address.UUID)
		e.text(address.ID, vocabulary.Municipality, address.Municipality)
		e.text(address.ID, vocabulary.Street, address.Street)
		e.literal(address.ID, vocabulary.HouseNumber, address.HouseNumber)
		e.literal(address.ID, vocabulary.BoxNumber, address.BoxNumber)
		e.literal(address.ID, vocabulary.PostalCode, address.PostalCode)
		e.text(address.ID, vocabulary.Country, address.Country)
		e.reference(address.ID, vocabulary.RefersTo, address.RefersTo)
	}
}

// result returns the quads in a stable order.
func (e *encoder) result() []rdf.Quad {
	return rdf.NewSet(e.quads...).Slice()
}
