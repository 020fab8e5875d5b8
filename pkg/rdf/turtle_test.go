package rdf

import (
	"strings"
	"testing"
)

const testNamespace = "https://example.org/ns#"

func TestNewTurtleSerializer_WithPrefix(t *testing.T) {
	serializer := NewTurtleSerializer(
		WithPrefix("ex", testNamespace),
		WithPrefix("xsd", "https://example.org/xsd#"),
	)

	if len(serializer.prefixMappings) != 3 {
		t.Errorf("Expected 3 prefix mappings, got %d", len(serializer.prefixMappings))
	}
	if serializer.namespaceIndex[testNamespace] != "ex" {
		t.Errorf("Expected ex namespace to reverse-map to 'ex', got %q", serializer.namespaceIndex[testNamespace])
	}
	if _, ok := serializer.namespaceIndex[NamespaceXSD]; ok {
		t.Error("Overridden xsd prefix still maps the default namespace")
	}
}

func TestTurtleSerializer_Serialize(t *testing.T) {
	graph := "http://example.org/graph"
	subject := IRI(testNamespace + "permit")
	quads := []Quad{
		NewQuad(subject, testNamespace+"title", LangLiteral("Parkeervergunning", "nl"), graph),
		NewQuad(subject, Type, IRI(testNamespace+"Service"), graph),
		NewQuad(subject, testNamespace+"title", LangLiteral("Parking permit", "en"), graph),
		NewQuad(subject, testNamespace+"modified", TypedLiteral("2024-01-01T00:00:00Z", XSDDateTime), graph),
		NewQuad(subject, testNamespace+"modified", TypedLiteral("2024-01-01T00:00:00Z", XSDDateTime), graph),
		NewQuad(Blank("b0"), testNamespace+"note", Literal("line\n\"two\""), graph),
	}

	output := NewTurtleSerializer(WithPrefix("ex", testNamespace)).Serialize(quads)

	expected := `@prefix ex: <https://example.org/ns#> .
@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

ex:permit a ex:Service ;
    ex:modified "2024-01-01T00:00:00Z"^^xsd:dateTime ;
    ex:title "Parkeervergunning"@nl ,
        "Parking permit"@en .

_:b0 ex:note "line\n\"two\"" .
`
	if output != expected {
		t.Errorf("Unexpected Turtle output.\nGot:\n%s\nExpected:\n%s", output, expected)
	}
}

func TestTurtleSerializer_UncompactableIRI(t *testing.T) {
	serializer := NewTurtleSerializer(WithPrefix("ex", testNamespace))
	quads := []Quad{
		NewQuad(IRI(testNamespace+"a/b"), testNamespace+"p", IRI("http://other.org/x y"), "g"),
	}

	output := serializer.Serialize(quads)

	if !strings.Contains(output, "<https://example.org/ns#a/b> ex:p <http://other.org/x\\u0020y> .") {
		t.Errorf("Expected full IRIs for names that cannot be prefixed, got:\n%s", output)
	}
}

func TestTurtleSerializer_Empty(t *testing.T) {
	output := NewTurtleSerializer().Serialize(nil)

	if strings.Count(output, "@prefix") != 2 {
		t.Errorf("Expected only the default prefix declarations, got:\n%s", output)
	}
}
