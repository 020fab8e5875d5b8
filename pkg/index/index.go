// Package index wraps a fetched quad set in a lookup structure keyed by
// (subject, predicate) and records integrity warnings for data the store
// could not prevent, such as a single-valued predicate with several values.
package index

import (
	"fmt"
	"sort"

	"github.com/coolbeans/servicecatalog/pkg/rdf"
)

// WarningKind classifies an integrity warning.
type WarningKind string

const (
	// WarningMultipleValues means a single-valued lookup found more than one value.
	WarningMultipleValues WarningKind = "multiple-values"

	// WarningDuplicateLanguage means more than one literal shares a language tag.
	WarningDuplicateLanguage WarningKind = "duplicate-language"
)

// Warning is a non-fatal integrity finding. Warnings are diagnostic only and
// never change how a lookup behaves.
type Warning struct {
	Kind      WarningKind `json:"kind"`
	Subject   rdf.Term    `json:"subject"`
	Predicate string      `json:"predicate"`
	Detail    string      `json:"detail"`
}

// String returns a human-readable representation of the warning.
func (warning Warning) String() string {
	return fmt.Sprintf("%s on %s <%s>: %s", warning.Kind, warning.Subject, warning.Predicate, warning.Detail)
}

type statementKey struct {
	subject   rdf.Term
	predicate string
}

// Index is a read-only view over a quad set.
type Index struct {
	statements map[statementKey][]rdf.Quad
	count      int
	warnings   []Warning
	reported   map[Warning]bool
}

// New builds an index over quads. Duplicate quads are collapsed and the
// statements of each (subject, predicate) pair are kept in a stable order.
func New(quads []rdf.Quad) *Index {
	index := &Index{
		statements: make(map[statementKey][]rdf.Quad),
		reported:   make(map[Warning]bool),
	}

	for _, quad := range rdf.NewSet(quads...).Slice() {
		key := statementKey{subject: quad.Subject, predicate: quad.Predicate}
		index.statements[key] = append(index.statements[key], quad)
		index.count++
	}

	return index
}

// Len returns the number of distinct quads in the index.
func (index *Index) Len() int {
	return index.count
}

// Statements returns all quads for subject and predicate.
func (index *Index) Statements(subject rdf.Term, predicate string) []rdf.Quad {
	return index.statements[statementKey{subject: subject, predicate: predicate}]
}

// StatementsChecked returns all quads for subject and predicate and records
// a warning when two literal objects share the same language tag.
func (index *Index) StatementsChecked(subject rdf.Term, predicate string) []rdf.Quad {
	statements := index.Statements(subject, predicate)

	languageCounts := make(map[string]int)
	for _, statement := range statements {
		if statement.Object.IsLiteral() && statement.Object.Lang != "" {
			languageCounts[statement.Object.Lang]++
		}
	}

	languages := make([]string, 0, len(languageCounts))
	for language, count := range languageCounts {
		if count > 1 {
			languages = append(languages, language)
		}
	}
	sort.Strings(languages)

	for _, language := range languages {
		index.warn(Warning{
			Kind:      WarningDuplicateLanguage,
			Subject:   subject,
			Predicate: predicate,
			Detail:    fmt.Sprintf("%d literals tagged %q", languageCounts[language], language),
		})
	}

	return statements
}

// UniqueStatement returns the first quad for subject and predicate. When more
// than one exists a warning is recorded; callers needing strict uniqueness
// check Statements themselves.
func (index *Index) UniqueStatement(subject rdf.Term, predicate string) (rdf.Quad, bool) {
	statements := index.Statements(subject, predicate)
	if len(statements) == 0 {
		return rdf.Quad{}, false
	}

	if len(statements) > 1 {
		index.warn(Warning{
			Kind:      WarningMultipleValues,
			Subject:   subject,
			Predicate: predicate,
			Detail:    fmt.Sprintf("expected one value, found %d", len(statements)),
		})
	}

	return statements[0], true
}

// UniqueValue returns the object of UniqueStatement.
func (index *Index) UniqueValue(subject rdf.Term, predicate string) (rdf.Term, bool) {
	statement, found := index.UniqueStatement(subject, predicate)
	return statement.Object, found
}

// Objects returns the objects of all quads for subject and predicate.
func (index *Index) Objects(subject rdf.Term, predicate string) []rdf.Term {
	statements := index.Statements(subject, predicate)
	objects := make([]rdf.Term, 0, len(statements))
	for _, statement := range statements {
		objects = append(objects, statement.Object)
	}
	return objects
}

// Has reports whether the exact (subject, predicate, object) statement exists.
func (index *Index) Has(subject rdf.Term, predicate string, object rdf.Term) bool {
	for _, statement := range index.Statements(subject, predicate) {
		if statement.Object == object {
			return true
		}
	}
	return false
}

// Warnings returns the integrity warnings recorded so far, in the order they were found.
func (index *Index) Warnings() []Warning {
	warnings := make([]Warning, len(index.warnings))
	copy(warnings, index.warnings)
	return warnings
}

func (index *Index) warn(warning Warning) {
	if index.reported[warning] {
		return
	}
	index.reported[warning] = true
	index.warnings = append(index.warnings, warning)
}
