package sparql

import (
	"strings"

	"github.com/coolbeans/servicecatalog/pkg/rdf"
)

// Variables bound by every SELECT built here.
const (
	varGraph     = "g"
	varSubject   = "s"
	varPredicate = "p"
	varObject    = "o"
)

// findQuery selects every quad matching pattern. Bound positions are pinned
// with VALUES so the result rows always carry all four variables.
func findQuery(pattern rdf.Pattern) string {
	var builder strings.Builder
	builder.WriteString("SELECT ?g ?s ?p ?o WHERE {\n")
	if pattern.Graph != "" {
		writeValues(&builder, varGraph, rdf.IRI(pattern.Graph))
	}
	if !pattern.Subject.IsZero() {
		writeValues(&builder, varSubject, pattern.Subject)
	}
	if pattern.Predicate != "" {
		writeValues(&builder, varPredicate, rdf.IRI(pattern.Predicate))
	}
	if !pattern.Object.IsZero() {
		writeValues(&builder, varObject, pattern.Object)
	}
	builder.WriteString("  GRAPH ?g { ?s ?p ?o }\n}")
	return builder.String()
}

// subjectsQuery selects the triples of a batch of subjects in one graph.
func subjectsQuery(graph string, subjects []rdf.Term, excludedPredicates []string) string {
	var builder strings.Builder
	builder.WriteString("SELECT ?s ?p ?o WHERE {\n")
	writeValues(&builder, varSubject, subjects...)
	builder.WriteString("  GRAPH " + rdf.IRI(graph).String() + " { ?s ?p ?o }\n")
	if len(excludedPredicates) > 0 {
		excluded := make([]string, len(excludedPredicates))
		for i, predicate := range excludedPredicates {
			excluded[i] = rdf.IRI(predicate).String()
		}
		builder.WriteString("  FILTER(?p NOT IN (" + strings.Join(excluded, ", ") + "))\n")
	}
	builder.WriteString("}")
	return builder.String()
}

// askQuery checks for a quad matching pattern in the pattern's graph.
func askQuery(pattern rdf.Pattern) string {
	return "ASK {\n  " + graphPattern(pattern) + "\n}"
}

// dataUpdate renders INSERT DATA or DELETE DATA for quads in graph.
func dataUpdate(operation, graph string, quads []rdf.Quad) string {
	return operation + " DATA {\n" + graphBlock(graph, quads) + "}"
}

// replaceUpdate renders the deletes and inserts as one request. Empty halves
// are left out; the result is empty when there is nothing to do.
func replaceUpdate(graph string, deletes, inserts []rdf.Quad) string {
	var parts []string
	if len(deletes) > 0 {
		parts = append(parts, dataUpdate("DELETE", graph, deletes))
	}
	if len(inserts) > 0 {
		parts = append(parts, dataUpdate("INSERT", graph, inserts))
	}
	return strings.Join(parts, " ;\n")
}

// conditionalUpdate renders a DELETE/INSERT whose WHERE clause is the
// precondition, so the store evaluates the check and the write together.
func conditionalUpdate(graph string, precondition rdf.Pattern, deletes, inserts []rdf.Quad) string {
	precondition.Graph = graph

	var builder strings.Builder
	if len(deletes) > 0 {
		builder.WriteString("DELETE {\n" + graphBlock(graph, deletes) + "}\n")
	}
	if len(inserts) > 0 {
		builder.WriteString("INSERT {\n" + graphBlock(graph, inserts) + "}\n")
	}
	builder.WriteString("WHERE {\n  " + graphPattern(precondition) + "\n}")
	return builder.String()
}

func graphBlock(graph string, quads []rdf.Quad) string {
	var builder strings.Builder
	builder.WriteString("  GRAPH " + rdf.IRI(graph).String() + " {\n")
	for _, quad := range quads {
		builder.WriteString("    " + quad.TripleString() + "\n")
	}
	builder.WriteString("  }\n")
	return builder.String()
}

// graphPattern renders pattern as a GRAPH block, using variables for the
// wildcard positions.
func graphPattern(pattern rdf.Pattern) string {
	subject := "?" + varSubject
	if !pattern.Subject.IsZero() {
		subject = pattern.Subject.String()
	}
	predicate := "?" + varPredicate
	if pattern.Predicate != "" {
		predicate = rdf.IRI(pattern.Predicate).String()
	}
	object := "?" + varObject
	if !pattern.Object.IsZero() {
		object = pattern.Object.String()
	}
	return "GRAPH " + rdf.IRI(pattern.Graph).String() + " { " + subject + " " + predicate + " " + object + " }"
}

func writeValues(builder *strings.Builder, variable string, terms ...rdf.Term) {
	values := make([]string, len(terms))
	for i, term := range terms {
		values[i] = term.String()
	}
	builder.WriteString("  VALUES ?" + variable + " { " + strings.Join(values, " ") + " }\n")
}
