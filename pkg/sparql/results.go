package sparql

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/coolbeans/servicecatalog/pkg/rdf"
)

// resultsDocument is the SPARQL 1.1 Query Results JSON format. SELECT
// responses fill Results, ASK responses fill Boolean.
type resultsDocument struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]bindingValue `json:"bindings"`
	} `json:"results"`
	Boolean *bool `json:"boolean"`
}

type bindingValue struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang"`
	Datatype string `json:"datatype"`
}

// term converts one binding into an RDF term. typed-literal is the SPARQL
// 1.0 spelling some stores still emit.
func (binding bindingValue) term() (rdf.Term, error) {
	switch binding.Type {
	case "uri":
		return rdf.IRI(binding.Value), nil
	case "bnode":
		return rdf.Blank(binding.Value), nil
	case "literal", "typed-literal":
		return rdf.NewLiteral(binding.Value, binding.Lang, binding.Datatype)
	default:
		return rdf.Term{}, fmt.Errorf("unknown binding type %q", binding.Type)
	}
}

func decodeResults(body io.Reader) (*resultsDocument, error) {
	var document resultsDocument
	if err := json.NewDecoder(body).Decode(&document); err != nil {
		return nil, fmt.Errorf("failed to decode query results: %w", err)
	}
	return &document, nil
}

// rows converts every binding row into terms keyed by variable name.
func (document *resultsDocument) rows() ([]map[string]rdf.Term, error) {
	rows := make([]map[string]rdf.Term, 0, len(document.Results.Bindings))
	for _, bindings := range document.Results.Bindings {
		row := make(map[string]rdf.Term, len(bindings))
		for variable, binding := range bindings {
			term, err := binding.term()
			if err != nil {
				return nil, fmt.Errorf("variable ?%s: %w", variable, err)
			}
			row[variable] = term
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// rowQuad builds a quad from a row, taking graph from the row when graph is empty.
func rowQuad(row map[string]rdf.Term, graph string) (rdf.Quad, error) {
	if graph == "" {
		graph = row[varGraph].Value
	}
	subject, predicate, object := row[varSubject], row[varPredicate], row[varObject]
	if !subject.IsReference() || predicate.Kind != rdf.KindIRI || object.IsZero() || graph == "" {
		return rdf.Quad{}, fmt.Errorf("incomplete result row %v", row)
	}
	return rdf.NewQuad(subject, predicate.Value, object, graph), nil
}
