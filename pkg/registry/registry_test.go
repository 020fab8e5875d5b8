package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/sparql"
)

const organisation domain.IRI = "https://data.vlaanderen.be/id/organisatie/OVO000001"

// stubSelector answers every query with rows or err.
type stubSelector struct {
	rows    []map[string]rdf.Term
	err     error
	queries []string
}

func (selector *stubSelector) Select(ctx context.Context, query string) ([]map[string]rdf.Term, error) {
	selector.queries = append(selector.queries, query)
	return selector.rows, selector.err
}

func TestCodeRegistry_FetchCode(t *testing.T) {
	selector := &stubSelector{rows: []map[string]rdf.Term{{"prefLabel": rdf.Literal("Vlaamse overheid")}}}
	registry := NewCodeRegistry(selector, nil)

	code, err := registry.FetchCode(context.Background(), organisation)
	require.NoError(t, err)
	assert.Equal(t, Code{ID: organisation, PrefLabel: "Vlaamse overheid"}, code)
	require.Len(t, selector.queries, 1)
	assert.Contains(t, selector.queries[0], "<"+organisation.String()+"> <http://www.w3.org/2004/02/skos/core#prefLabel> ?prefLabel")
}

func TestCodeRegistry_FetchCode_NotFound(t *testing.T) {
	registry := NewCodeRegistry(&stubSelector{}, nil)

	_, err := registry.FetchCode(context.Background(), organisation)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestCodeRegistry_FetchCode_TransportError(t *testing.T) {
	cause := domain.NewSystemError(errors.New("connection refused"), "request failed")
	registry := NewCodeRegistry(&stubSelector{err: cause}, nil)

	_, err := registry.FetchCode(context.Background(), organisation)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.True(t, domain.IsSystem(err))
}

func TestCodeRegistry_OverSPARQL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write([]byte(`{"head":{"vars":["prefLabel"]},"results":{"bindings":[
		  {"prefLabel":{"type":"literal","value":"Agentschap Binnenlands Bestuur","xml:lang":"nl"}}]}}`))
	}))
	defer server.Close()

	client := sparql.NewClient(sparql.Config{QueryEndpoint: server.URL}, nil, nil)
	code, err := NewCodeRegistry(client, nil).FetchCode(context.Background(), organisation)
	require.NoError(t, err)
	assert.Equal(t, "Agentschap Binnenlands Bestuur", code.PrefLabel)
}

const matchBody = `{"adresMatches":[
  {"identificator":{"id":"https://data.vlaanderen.be/id/adres/1"},
   "gemeente":{"gemeentenaam":{"geografischeNaam":{"spelling":"Gent","taal":"nl"}}},
   "postinfo":{"objectId":"9000"},
   "straatnaam":{"straatnaam":{"geografischeNaam":{"spelling":"Korenmarkt","taal":"nl"}}},
   "huisnummer":"2","score":80},
  {"identificator":{"id":"https://data.vlaanderen.be/id/adres/2"},
   "gemeente":{"gemeentenaam":{"geografischeNaam":{"spelling":"Gent","taal":"nl"}}},
   "postinfo":{"objectId":"9000"},
   "straatnaam":{"straatnaam":{"geografischeNaam":{"spelling":"Korenmarkt","taal":"nl"}}},
   "huisnummer":"1","busnummer":"A","score":100}
]}`

func TestAddressRegistry_FindAddressMatch(t *testing.T) {
	var received *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r
		_, _ = w.Write([]byte(matchBody))
	}))
	defer server.Close()

	registry := NewAddressRegistry(server.URL, "secret", nil, nil)
	match, err := registry.FindAddressMatch(context.Background(), "Gent", "Korenmarkt", "1", "A")
	require.NoError(t, err)
	require.NotNil(t, match)

	assert.Equal(t, &AddressMatch{
		ID:           "https://data.vlaanderen.be/id/adres/2",
		Municipality: "Gent",
		PostalCode:   "9000",
		Street:       "Korenmarkt",
		HouseNumber:  "1",
		BoxNumber:    "A",
	}, match)
	require.NotNil(t, received)
	assert.Equal(t, "Gent", received.URL.Query().Get("gemeentenaam"))
	assert.Equal(t, "A", received.URL.Query().Get("busnummer"))
	assert.Equal(t, "secret", received.Header.Get("x-api-key"))
}

func TestAddressRegistry_NoExactMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"adresMatches":[{"identificator":{"id":"x"},"score":60}]}`))
	}))
	defer server.Close()

	match, err := NewAddressRegistry(server.URL, "", nil, nil).
		FindAddressMatch(context.Background(), "Gent", "Korenmarkt", "9", "")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestAddressRegistry_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewAddressRegistry(server.URL, "", nil, nil).
		FindAddressMatch(context.Background(), "Gent", "Korenmarkt", "1", "")
	require.Error(t, err)
	assert.True(t, domain.IsSystem(err))
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, DefaultCodeEndpoint, config.CodeEndpoint)
	assert.Equal(t, DefaultAddressEndpoint, config.AddressEndpoint)
	assert.Positive(t, config.RequestsPerSecond)
}
