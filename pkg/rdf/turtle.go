package rdf

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// PrefixMapping associates a short prefix label with its full namespace IRI.
type PrefixMapping struct {
	Prefix    string
	Namespace string
}

// TurtleSerializer renders quads as Turtle. Graph names are dropped, so the
// input normally comes from a single graph.
type TurtleSerializer struct {
	prefixMappings []PrefixMapping
	namespaceIndex map[string]string // namespace -> prefix
}

// TurtleOption is a functional option for configuring the TurtleSerializer.
type TurtleOption func(*TurtleSerializer)

// NewTurtleSerializer creates a TurtleSerializer declaring the rdf and xsd prefixes.
func NewTurtleSerializer(options ...TurtleOption) *TurtleSerializer {
	serializer := &TurtleSerializer{
		prefixMappings: []PrefixMapping{
			{Prefix: "rdf", Namespace: NamespaceRDF},
			{Prefix: "xsd", Namespace: NamespaceXSD},
		},
	}

	for _, option := range options {
		option(serializer)
	}

	serializer.namespaceIndex = make(map[string]string, len(serializer.prefixMappings))
	for _, mapping := range serializer.prefixMappings {
		serializer.namespaceIndex[mapping.Namespace] = mapping.Prefix
	}

	return serializer
}

// WithPrefix adds or overrides a prefix mapping.
func WithPrefix(prefix, namespace string) TurtleOption {
	return func(serializer *TurtleSerializer) {
		serializer.prefixMappings = slices.DeleteFunc(serializer.prefixMappings, func(mapping PrefixMapping) bool {
			return mapping.Prefix == prefix
		})
		serializer.prefixMappings = append(serializer.prefixMappings, PrefixMapping{
			Prefix:    prefix,
			Namespace: namespace,
		})
	}
}

// WithPrefixes adds every prefix of prefixes.
func WithPrefixes(prefixes map[string]string) TurtleOption {
	return func(serializer *TurtleSerializer) {
		for _, prefix := range slices.Sorted(maps.Keys(prefixes)) {
			WithPrefix(prefix, prefixes[prefix])(serializer)
		}
	}
}

// Serialize converts quads to Turtle, one block per subject, subjects and
// predicates sorted with rdf:type first.
func (serializer *TurtleSerializer) Serialize(quads []Quad) string {
	var builder strings.Builder

	serializer.writePrefixDeclarations(&builder)

	subjectGroups := groupBySubject(quads)
	subjects := slices.SortedFunc(maps.Keys(subjectGroups), compareTerms)

	for subjectIndex, subject := range subjects {
		if subjectIndex > 0 {
			builder.WriteString("\n")
		}
		serializer.writeSubjectGroup(&builder, subject, subjectGroups[subject])
	}

	return builder.String()
}

func (serializer *TurtleSerializer) writePrefixDeclarations(builder *strings.Builder) {
	sortedPrefixes := slices.SortedFunc(slices.Values(serializer.prefixMappings), func(a, b PrefixMapping) int {
		return cmp.Compare(a.Prefix, b.Prefix)
	})

	for _, mapping := range sortedPrefixes {
		fmt.Fprintf(builder, "@prefix %s: <%s> .\n", mapping.Prefix, mapping.Namespace)
	}

	if len(serializer.prefixMappings) > 0 {
		builder.WriteString("\n")
	}
}

// groupBySubject organizes quads into subject -> predicate -> distinct objects.
func groupBySubject(quads []Quad) map[Term]map[string][]Term {
	subjectGroups := make(map[Term]map[string][]Term)

	for _, quad := range quads {
		predicates, exists := subjectGroups[quad.Subject]
		if !exists {
			predicates = make(map[string][]Term)
			subjectGroups[quad.Subject] = predicates
		}
		if !slices.Contains(predicates[quad.Predicate], quad.Object) {
			predicates[quad.Predicate] = append(predicates[quad.Predicate], quad.Object)
		}
	}

	return subjectGroups
}

func (serializer *TurtleSerializer) writeSubjectGroup(
	builder *strings.Builder,
	subject Term,
	predicateObjectMap map[string][]Term,
) {
	builder.WriteString(serializer.formatTerm(subject))

	for predicateIndex, predicate := range sortPredicatesTypeFirst(predicateObjectMap) {
		objects := predicateObjectMap[predicate]
		slices.SortFunc(objects, compareTerms)

		if predicateIndex == 0 {
			builder.WriteString(" ")
		} else {
			builder.WriteString(" ;\n    ")
		}

		builder.WriteString(serializer.formatPredicate(predicate))

		for objectIndex, object := range objects {
			if objectIndex > 0 {
				builder.WriteString(" ,\n        ")
			} else {
				builder.WriteString(" ")
			}
			builder.WriteString(serializer.formatTerm(object))
		}
	}

	builder.WriteString(" .\n")
}

// formatPredicate formats a predicate, using "a" shorthand for rdf:type.
func (serializer *TurtleSerializer) formatPredicate(predicate string) string {
	if predicate == Type {
		return "a"
	}
	return serializer.formatIRI(predicate)
}

func (serializer *TurtleSerializer) formatTerm(term Term) string {
	switch term.Kind {
	case KindIRI:
		return serializer.formatIRI(term.Value)
	case KindLiteral:
		literal := formatLiteral(term.Value)
		if term.Lang != "" {
			return literal + "@" + term.Lang
		}
		if term.Datatype != "" {
			return literal + "^^" + serializer.formatIRI(term.Datatype)
		}
		return literal
	default:
		return term.String()
	}
}

func (serializer *TurtleSerializer) formatIRI(iri string) string {
	if compacted, ok := serializer.compactIRI(iri); ok {
		return compacted
	}
	return "<" + escapeIRI(iri) + ">"
}

// compactIRI replaces a namespace IRI with its prefix form, preferring the
// longest matching namespace.
func (serializer *TurtleSerializer) compactIRI(iri string) (string, bool) {
	bestPrefix := ""
	bestNamespace := ""
	for namespace, prefix := range serializer.namespaceIndex {
		if strings.HasPrefix(iri, namespace) && len(namespace) > len(bestNamespace) {
			if isValidLocalName(iri[len(namespace):]) {
				bestPrefix = prefix
				bestNamespace = namespace
			}
		}
	}

	if bestNamespace != "" {
		return bestPrefix + ":" + iri[len(bestNamespace):], true
	}
	return "", false
}

// sortPredicatesTypeFirst sorts predicates with rdf:type first, then alphabetically.
func sortPredicatesTypeFirst(predicateObjectMap map[string][]Term) []string {
	predicates := slices.Sorted(maps.Keys(predicateObjectMap))
	if index := slices.Index(predicates, Type); index > 0 {
		predicates = slices.Delete(predicates, index, index+1)
		predicates = slices.Insert(predicates, 0, Type)
	}
	return predicates
}

// isValidLocalName reports whether localName can follow a prefix unescaped.
func isValidLocalName(localName string) bool {
	if localName == "" || strings.HasSuffix(localName, ".") {
		return false
	}
	return !strings.ContainsAny(localName, " \t\n\r<>\"{}|^`\\/#?&=%~,;()[]'!$*+@")
}

// formatLiteral wraps a string value in Turtle-compliant double quotes.
func formatLiteral(value string) string {
	return `"` + escapeLiteral(value) + `"`
}

func compareTerms(a, b Term) int {
	return cmp.Or(cmp.Compare(a.Kind, b.Kind), cmp.Compare(a.Value, b.Value),
		cmp.Compare(a.Lang, b.Lang), cmp.Compare(a.Datatype, b.Datatype))
}
