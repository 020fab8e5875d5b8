package codec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/index"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// WarningUnsupportedLanguage means a text literal carried no language tag or
// one outside the six supported variants, and was skipped.
const WarningUnsupportedLanguage index.WarningKind = "unsupported-language"

// decoder reads typed values out of one triple closure.
type decoder struct {
	tables   *tables
	index    *index.Index
	warnings []index.Warning
}

func newDecoder(tables *tables, quads []rdf.Quad) *decoder {
	return &decoder{tables: tables, index: index.New(quads)}
}

// allWarnings returns the index findings followed by the decoder's own.
func (d *decoder) allWarnings() []index.Warning {
	warnings := d.index.Warnings()
	warnings = append(warnings, d.warnings...)
	if len(warnings) == 0 {
		return nil
	}
	return warnings
}

// requireType checks that id has exactly one rdf:type, equal to expected.
func (d *decoder) requireType(id domain.IRI, expected string) error {
	types := d.index.Objects(rdf.IRI(string(id)), rdf.Type)
	switch {
	case len(types) == 0:
		return domain.NewNotFoundError("could not find <%s> for type <%s>", id, expected)
	case len(types) > 1:
		return domain.NewNotFoundError("could not find <%s> for type <%s>, but found multiple types %v", id, expected, types)
	case types[0].Value != expected:
		return domain.NewNotFoundError("could not find <%s> for type <%s>, but found with type <%s>", id, expected, types[0].Value)
	}
	return nil
}

func subjectOf(id domain.IRI) rdf.Term {
	return rdf.IRI(string(id))
}

func (d *decoder) text(id domain.IRI, predicate string) *domain.LanguageString {
	values := make(map[string]string)
	for _, statement := range d.index.StatementsChecked(subjectOf(id), predicate) {
		object := statement.Object
		if !object.IsLiteral() || object.Lang == "" {
			d.unsupportedLanguage(id, predicate, "literal without language tag")
			continue
		}
		if _, taken := values[object.Lang]; !taken {
			values[object.Lang] = object.Value
		}
	}

	text, unsupported := domain.LanguageStringFromTags(values)
	for _, tag := range unsupported {
		d.unsupportedLanguage(id, predicate, fmt.Sprintf("language tag %q", tag))
	}
	return text
}

func (d *decoder) keywords(id domain.IRI, predicate string) []domain.LanguageString {
	var keywords []domain.LanguageString
	for _, statement := range d.index.Statements(subjectOf(id), predicate) {
		keyword, unsupported := domain.LanguageStringFromTags(map[string]string{statement.Object.Lang: statement.Object.Value})
		if keyword == nil || len(unsupported) > 0 {
			d.unsupportedLanguage(id, predicate, fmt.Sprintf("keyword %q", statement.Object.Value))
			continue
		}
		keywords = append(keywords, *keyword)
	}
	return domain.SortLanguageStrings(keywords)
}

func (d *decoder) unsupportedLanguage(id domain.IRI, predicate, detail string) {
	d.warnings = append(d.warnings, index.Warning{
		Kind:      WarningUnsupportedLanguage,
		Subject:   subjectOf(id),
		Predicate: predicate,
		Detail:    detail,
	})
}

func (d *decoder) literal(id domain.IRI, predicate string) string {
	value, found := d.index.UniqueValue(subjectOf(id), predicate)
	if !found {
		return ""
	}
	return value.Value
}

func (d *decoder) reference(id domain.IRI, predicate string) domain.IRI {
	value, found := d.index.UniqueValue(subjectOf(id), predicate)
	if !found || !value.IsReference() {
		return ""
	}
	return domain.IRI(value.Value)
}

func (d *decoder) references(id domain.IRI, predicate string) []domain.IRI {
	var iris []domain.IRI
	for _, object := range d.index.Objects(subjectOf(id), predicate) {
		if object.IsReference() {
			iris = append(iris, domain.IRI(object.Value))
		}
	}
	return domain.SortedSet(iris)
}

func (d *decoder) boolean(id domain.IRI, predicate string) bool {
	value := d.literal(id, predicate)
	return value == "true" || value == "1"
}

func (d *decoder) optionalTime(id domain.IRI, predicate string) (*time.Time, error) {
	value := d.literal(id, predicate)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, domain.NewInvariantError("<%s> <%s> is not a valid dateTime: %q", id, predicate, value)
	}
	parsed = parsed.UTC()
	return &parsed, nil
}

func (d *decoder) requiredTime(id domain.IRI, predicate string) (time.Time, error) {
	value, err := d.optionalTime(id, predicate)
	if err != nil || value == nil {
		return time.Time{}, err
	}
	return *value, nil
}

func (d *decoder) order(collection string, id domain.IRI) (int, error) {
	value := d.literal(id, vocabulary.Order)
	if value == "" {
		return 0, domain.NewInvariantError("%s > order should not be absent (%s)", collection, id)
	}
	order, err := strconv.Atoi(value)
	if err != nil {
		return 0, domain.NewInvariantError("%s > order %q of %s is not an integer", collection, value, id)
	}
	return order, nil
}

// code decodes an optional single-valued enumeration.
func code[T ~string](d *decoder, table *codeTable[T], id domain.IRI, predicate string) (T, error) {
	value, found := d.index.UniqueValue(subjectOf(id), predicate)
	if !found {
		return "", nil
	}
	return table.value(value.Value)
}

// codes decodes a multi-valued enumeration. Any unmappable code fails the
// whole decode.
func codes[T ~string](d *decoder, table *codeTable[T], id domain.IRI, predicate string) ([]T, error) {
	var values []T
	for _, object := range d.index.Objects(subjectOf(id), predicate) {
		value, err := table.value(object.Value)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return domain.SortedSet(values), nil
}

// children decodes every child linked from parent through predicate and sorts
// them by order. Orders must be present and unique within the collection.
func children[T any](
	d *decoder,
	collection string,
	parent domain.IRI,
	predicate string,
	decodeChild func(domain.IRI) (T, error),
	order func(T) int,
) ([]T, error) {
	childIDs := d.references(parent, predicate)
	if len(childIDs) == 0 {
		return nil, nil
	}

	result := make([]T, 0, len(childIDs))
	for _, childID := range childIDs {
		child, err := decodeChild(childID)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
		}
		result = append(result, child)
	}

	if err := domain.ValidateOrders(collection, result, order); err != nil {
		return nil, err
	}
	domain.SortByOrder(result, order)
	return result, nil
}
