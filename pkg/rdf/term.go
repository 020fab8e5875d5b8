// Package rdf provides the RDF terms and quads exchanged with the graph store.
package rdf

import (
	"fmt"
	"strings"
)

// TermKind discriminates the three kinds of RDF term.
type TermKind int

const (
	// KindIRI is a named resource.
	KindIRI TermKind = iota + 1

	// KindBlank is a blank node, scoped to the store it came from.
	KindBlank

	// KindLiteral is a literal value with an optional language tag or datatype.
	KindLiteral
)

// String returns the lowercase name of the kind.
func (kind TermKind) String() string {
	switch kind {
	case KindIRI:
		return "iri"
	case KindBlank:
		return "bnode"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Term is a subject or object position value. A literal carries either a
// language tag or a datatype, never both. The zero Term is used as a wildcard
// in patterns.
type Term struct {
	Kind     TermKind
	Value    string
	Lang     string
	Datatype string
}

// IRI creates a named resource term.
func IRI(value string) Term {
	return Term{Kind: KindIRI, Value: value}
}

// Blank creates a blank node term.
func Blank(id string) Term {
	return Term{Kind: KindBlank, Value: strings.TrimPrefix(id, "_:")}
}

// Literal creates a plain literal without language tag or datatype.
func Literal(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// LangLiteral creates a language-tagged literal. Tags are normalised to lowercase.
func LangLiteral(value, lang string) Term {
	return Term{Kind: KindLiteral, Value: value, Lang: strings.ToLower(lang)}
}

// TypedLiteral creates a literal with a datatype. An xsd:string datatype is
// equivalent to a plain literal and is dropped.
func TypedLiteral(value, datatype string) Term {
	if datatype == XSDString {
		datatype = ""
	}
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// NewLiteral creates a literal from its parts, rejecting a literal that has
// both a language tag and a datatype. rdf:langString is accepted together
// with a language tag since that is how it is serialised.
func NewLiteral(value, lang, datatype string) (Term, error) {
	if lang != "" {
		if datatype != "" && datatype != RDFLangString {
			return Term{}, fmt.Errorf("literal %q has both language tag %q and datatype %q", value, lang, datatype)
		}
		return LangLiteral(value, lang), nil
	}
	return TypedLiteral(value, datatype), nil
}

// IsZero reports whether the term is the wildcard zero value.
func (term Term) IsZero() bool {
	return term.Kind == 0
}

// IsReference reports whether the term points at another resource (IRI or blank node).
func (term Term) IsReference() bool {
	return term.Kind == KindIRI || term.Kind == KindBlank
}

// IsLiteral reports whether the term is a literal.
func (term Term) IsLiteral() bool {
	return term.Kind == KindLiteral
}

// String returns the term in N-Triples syntax.
func (term Term) String() string {
	switch term.Kind {
	case KindIRI:
		return "<" + escapeIRI(term.Value) + ">"
	case KindBlank:
		return "_:" + term.Value
	case KindLiteral:
		literal := `"` + escapeLiteral(term.Value) + `"`
		if term.Lang != "" {
			return literal + "@" + term.Lang
		}
		if term.Datatype != "" {
			return literal + "^^<" + escapeIRI(term.Datatype) + ">"
		}
		return literal
	default:
		return "?"
	}
}

// escapeLiteral escapes special characters per the N-Triples grammar.
func escapeLiteral(value string) string {
	var builder strings.Builder
	builder.Grow(len(value) + len(value)/8)

	for _, char := range value {
		switch char {
		case '\\':
			builder.WriteString(`\\`)
		case '"':
			builder.WriteString(`\"`)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\t':
			builder.WriteString(`\t`)
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}

// escapeIRI escapes characters not allowed in IRIs within angle brackets.
func escapeIRI(iri string) string {
	var builder strings.Builder
	builder.Grow(len(iri))

	for _, char := range iri {
		switch char {
		case '<':
			builder.WriteString(`\u003C`)
		case '>':
			builder.WriteString(`\u003E`)
		case '"':
			builder.WriteString(`\u0022`)
		case ' ':
			builder.WriteString(`\u0020`)
		case '{':
			builder.WriteString(`\u007B`)
		case '}':
			builder.WriteString(`\u007D`)
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}
