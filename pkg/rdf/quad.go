package rdf

import (
	"sort"
	"strings"
)

// Core RDF and XML Schema IRIs used by every layer.
const (
	NamespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceXSD = "http://www.w3.org/2001/XMLSchema#"

	// Type is rdf:type.
	Type = NamespaceRDF + "type"

	RDFLangString = NamespaceRDF + "langString"
	XSDString     = NamespaceXSD + "string"
	XSDBoolean    = NamespaceXSD + "boolean"
	XSDInteger    = NamespaceXSD + "integer"
	XSDDateTime   = NamespaceXSD + "dateTime"
)

// Quad is a single fact: a triple located in a named graph.
type Quad struct {
	Subject   Term
	Predicate string
	Object    Term
	Graph     string
}

// NewQuad creates a quad with the given components.
func NewQuad(subject Term, predicate string, object Term, graph string) Quad {
	return Quad{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		Graph:     graph,
	}
}

// IsValid returns true if the subject is a reference, the predicate is set
// and the object is present.
func (quad Quad) IsValid() bool {
	return quad.Subject.IsReference() && quad.Predicate != "" && !quad.Object.IsZero()
}

// InGraph returns a copy of the quad placed in another graph.
func (quad Quad) InGraph(graph string) Quad {
	quad.Graph = graph
	return quad
}

// TripleString returns the quad without its graph in N-Triples format.
func (quad Quad) TripleString() string {
	return quad.Subject.String() + " <" + escapeIRI(quad.Predicate) + "> " + quad.Object.String() + " ."
}

// String returns the quad in N-Quads format.
func (quad Quad) String() string {
	if quad.Graph == "" {
		return quad.TripleString()
	}
	return quad.Subject.String() + " <" + escapeIRI(quad.Predicate) + "> " + quad.Object.String() +
		" <" + escapeIRI(quad.Graph) + "> ."
}

// Pattern matches quads. Zero terms and empty strings act as wildcards.
type Pattern struct {
	Graph     string
	Subject   Term
	Predicate string
	Object    Term
}

// Matches checks if a quad matches this pattern.
func (pattern Pattern) Matches(quad Quad) bool {
	if pattern.Graph != "" && pattern.Graph != quad.Graph {
		return false
	}
	if !pattern.Subject.IsZero() && pattern.Subject != quad.Subject {
		return false
	}
	if pattern.Predicate != "" && pattern.Predicate != quad.Predicate {
		return false
	}
	if !pattern.Object.IsZero() && pattern.Object != quad.Object {
		return false
	}
	return true
}

// Sort orders quads by their N-Quads representation, which gives a stable
// order for serialisation and comparisons.
func Sort(quads []Quad) {
	sort.Slice(quads, func(i, j int) bool {
		return quads[i].String() < quads[j].String()
	})
}

// NQuads renders the quads as an N-Quads document, one quad per line.
func NQuads(quads []Quad) string {
	sorted := make([]Quad, len(quads))
	copy(sorted, quads)
	Sort(sorted)

	var builder strings.Builder
	for _, quad := range sorted {
		builder.WriteString(quad.String())
		builder.WriteString("\n")
	}
	return builder.String()
}

// Set is an unordered collection of unique quads.
type Set map[Quad]struct{}

// NewSet creates a set holding the given quads.
func NewSet(quads ...Quad) Set {
	set := make(Set, len(quads))
	set.Add(quads...)
	return set
}

// Add inserts quads into the set.
func (set Set) Add(quads ...Quad) {
	for _, quad := range quads {
		set[quad] = struct{}{}
	}
}

// Contains reports whether the quad is in the set.
func (set Set) Contains(quad Quad) bool {
	_, found := set[quad]
	return found
}

// Equal reports whether both sets hold exactly the same quads.
func (set Set) Equal(other Set) bool {
	if len(set) != len(other) {
		return false
	}
	for quad := range set {
		if !other.Contains(quad) {
			return false
		}
	}
	return true
}

// Slice returns the quads in sorted order.
func (set Set) Slice() []Quad {
	quads := make([]Quad, 0, len(set))
	for quad := range set {
		quads = append(quads, quad)
	}
	Sort(quads)
	return quads
}
