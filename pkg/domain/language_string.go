package domain

import "sort"

// Language tags of the six text variants.
const (
	LanguageEn                  = "en"
	LanguageNl                  = "nl"
	LanguageNlFormal            = "nl-be-x-formal"
	LanguageNlInformal          = "nl-be-x-informal"
	LanguageNlGeneratedFormal   = "nl-be-x-generated-formal"
	LanguageNlGeneratedInformal = "nl-be-x-generated-informal"
)

// LanguageTags lists the supported tags in slot order.
var LanguageTags = []string{
	LanguageEn,
	LanguageNl,
	LanguageNlFormal,
	LanguageNlInformal,
	LanguageNlGeneratedFormal,
	LanguageNlGeneratedInformal,
}

// LanguageString holds up to six language and register variants of the same
// text. En is the base variant. A nil *LanguageString means the text is absent.
type LanguageString struct {
	En                  string
	Nl                  string
	NlFormal            string
	NlInformal          string
	NlGeneratedFormal   string
	NlGeneratedInformal string
}

// NewLanguageString returns text, or nil when every slot is empty.
func NewLanguageString(text LanguageString) *LanguageString {
	if text.IsEmpty() {
		return nil
	}
	return &text
}

// LanguageStringFromTags bins values by language tag. Unknown tags are
// returned separately so callers can report them. The result is nil when no
// supported slot has a value.
func LanguageStringFromTags(values map[string]string) (*LanguageString, []string) {
	var text LanguageString
	var unsupported []string
	for tag, value := range values {
		slot := text.slot(tag)
		if slot == nil {
			unsupported = append(unsupported, tag)
			continue
		}
		*slot = value
	}
	sort.Strings(unsupported)
	return NewLanguageString(text), unsupported
}

// IsEmpty reports whether no slot has a value.
func (text LanguageString) IsEmpty() bool {
	return text == LanguageString{}
}

// Get returns the value for tag, or "" when the slot is empty or the tag is unsupported.
func (text *LanguageString) Get(tag string) string {
	if text == nil {
		return ""
	}
	slot := text.slot(tag)
	if slot == nil {
		return ""
	}
	return *slot
}

// Values returns the non-empty slots keyed by language tag.
func (text *LanguageString) Values() map[string]string {
	values := make(map[string]string)
	if text == nil {
		return values
	}
	for _, tag := range LanguageTags {
		if value := text.Get(tag); value != "" {
			values[tag] = value
		}
	}
	return values
}

func (text *LanguageString) slot(tag string) *string {
	switch tag {
	case LanguageEn:
		return &text.En
	case LanguageNl:
		return &text.Nl
	case LanguageNlFormal:
		return &text.NlFormal
	case LanguageNlInformal:
		return &text.NlInformal
	case LanguageNlGeneratedFormal:
		return &text.NlGeneratedFormal
	case LanguageNlGeneratedInformal:
		return &text.NlGeneratedInformal
	default:
		return nil
	}
}

// LanguageStringsEqual compares all slots. Two absent values are equal.
func LanguageStringsEqual(a, b *LanguageString) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// LanguageStringsFunctionallyEqual compares only the base and nl slots. An
// absent text equals one that has neither slot.
func LanguageStringsFunctionallyEqual(a, b *LanguageString) bool {
	return a.Get(LanguageEn) == b.Get(LanguageEn) && a.Get(LanguageNl) == b.Get(LanguageNl)
}

// SortLanguageStrings orders keywords by their slot values and removes duplicates.
func SortLanguageStrings(values []LanguageString) []LanguageString {
	if len(values) == 0 {
		return nil
	}

	key := func(text LanguageString) string {
		var result string
		for _, tag := range LanguageTags {
			result += text.Get(tag) + "\x00"
		}
		return result
	}

	seen := make(map[LanguageString]bool, len(values))
	result := make([]LanguageString, 0, len(values))
	for _, value := range values {
		if value.IsEmpty() || seen[value] {
			continue
		}
		seen[value] = true
		result = append(result, value)
	}
	if len(result) == 0 {
		return nil
	}

	sort.Slice(result, func(i, j int) bool { return key(result[i]) < key(result[j]) })
	return result
}
