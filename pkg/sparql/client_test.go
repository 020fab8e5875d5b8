package sparql

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/store"
)

const (
	testGraph   = "http://example.org/graph"
	testSubject = "http://example.org/s"
)

// recordingServer answers every request with a fixed body and records the
// form values it received.
type recordingServer struct {
	*httptest.Server

	mu       sync.Mutex
	queries  []string
	updates  []string
	headers  []http.Header
	response func(query string) (int, string)
}

func newRecordingServer(t *testing.T, response func(query string) (int, string)) *recordingServer {
	t.Helper()
	server := &recordingServer{response: response}
	server.Server = httptest.NewServer(http.HandlerFunc(server.handle))
	t.Cleanup(server.Close)
	return server
}

func (server *recordingServer) handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	server.mu.Lock()
	server.headers = append(server.headers, r.Header.Clone())
	query := r.PostForm.Get("query")
	if query != "" {
		server.queries = append(server.queries, query)
	}
	if update := r.PostForm.Get("update"); update != "" {
		server.updates = append(server.updates, update)
	}
	server.mu.Unlock()

	status, body := http.StatusOK, ""
	if query != "" {
		status, body = server.response(query)
	}
	w.Header().Set("Content-Type", contentTypeResults)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func newTestClient(server *recordingServer, batchSize int) *Client {
	return NewClient(Config{QueryEndpoint: server.URL, BatchSize: batchSize}, nil, nil)
}

func askResponse(result bool) func(string) (int, string) {
	return func(string) (int, string) {
		if result {
			return http.StatusOK, `{"head":{},"boolean":true}`
		}
		return http.StatusOK, `{"head":{},"boolean":false}`
	}
}

const findResponse = `{
  "head": {"vars": ["g", "s", "p", "o"]},
  "results": {"bindings": [
    {"g": {"type": "uri", "value": "http://example.org/graph"},
     "s": {"type": "uri", "value": "http://example.org/s"},
     "p": {"type": "uri", "value": "http://purl.org/dc/terms/title"},
     "o": {"type": "literal", "value": "Titel", "xml:lang": "NL"}},
    {"g": {"type": "uri", "value": "http://example.org/graph"},
     "s": {"type": "uri", "value": "http://example.org/s"},
     "p": {"type": "uri", "value": "http://www.w3.org/ns/shacl#order"},
     "o": {"type": "typed-literal", "value": "1", "datatype": "http://www.w3.org/2001/XMLSchema#integer"}},
    {"g": {"type": "uri", "value": "http://example.org/graph"},
     "s": {"type": "bnode", "value": "b0"},
     "p": {"type": "uri", "value": "http://schema.org/url"},
     "o": {"type": "uri", "value": "http://example.org/page"}}
  ]}
}`

func TestClient_Find(t *testing.T) {
	server := newRecordingServer(t, func(string) (int, string) { return http.StatusOK, findResponse })
	client := newTestClient(server, 0)

	quads, err := client.Find(context.Background(), rdf.Pattern{Graph: testGraph, Subject: rdf.IRI(testSubject)})
	require.NoError(t, err)

	assert.Equal(t, []rdf.Quad{
		rdf.NewQuad(rdf.IRI(testSubject), "http://purl.org/dc/terms/title", rdf.LangLiteral("Titel", "nl"), testGraph),
		rdf.NewQuad(rdf.IRI(testSubject), "http://www.w3.org/ns/shacl#order", rdf.TypedLiteral("1", rdf.XSDInteger), testGraph),
		rdf.NewQuad(rdf.Blank("b0"), "http://schema.org/url", rdf.IRI("http://example.org/page"), testGraph),
	}, quads)

	require.Len(t, server.queries, 1)
	assert.Contains(t, server.queries[0], "VALUES ?g { <http://example.org/graph> }")
	assert.Contains(t, server.queries[0], "VALUES ?s { <http://example.org/s> }")
	assert.NotContains(t, server.queries[0], "VALUES ?p")
}

func TestClient_FindBySubjects_Batches(t *testing.T) {
	server := newRecordingServer(t, func(string) (int, string) {
		return http.StatusOK, `{"head":{"vars":["s","p","o"]},"results":{"bindings":[
		  {"s":{"type":"uri","value":"http://example.org/a"},
		   "p":{"type":"uri","value":"http://schema.org/url"},
		   "o":{"type":"literal","value":"x"}}]}}`
	})
	client := newTestClient(server, 2)

	subjects := []rdf.Term{
		rdf.IRI("http://example.org/a"),
		rdf.IRI("http://example.org/b"),
		rdf.IRI("http://example.org/c"),
	}
	quads, err := client.FindBySubjects(context.Background(), testGraph, subjects, []string{"http://example.org/hidden"})
	require.NoError(t, err)

	assert.Len(t, quads, 2)
	for _, quad := range quads {
		assert.Equal(t, testGraph, quad.Graph)
	}
	require.Len(t, server.queries, 2)
	assert.Contains(t, server.queries[0], "VALUES ?s { <http://example.org/a> <http://example.org/b> }")
	assert.Contains(t, server.queries[1], "VALUES ?s { <http://example.org/c> }")
	assert.Contains(t, server.queries[0], "FILTER(?p NOT IN (<http://example.org/hidden>))")
}

func TestClient_FindBySubjects_BlankNodeSubject(t *testing.T) {
	server := newRecordingServer(t, func(string) (int, string) {
		return http.StatusOK, `{"head":{"vars":["s","p","o"]},"results":{"bindings":[]}}`
	})
	client := newTestClient(server, 0)

	subjects := []rdf.Term{rdf.IRI("http://example.org/a"), rdf.Blank("b0")}
	_, err := client.FindBySubjects(context.Background(), testGraph, subjects, nil)
	require.Error(t, err)
	assert.True(t, domain.IsSystem(err))
	assert.Contains(t, err.Error(), "_:b0")
	assert.Empty(t, server.queries)
}

func TestClient_FindBySubjects_GraphRequired(t *testing.T) {
	server := newRecordingServer(t, askResponse(true))
	client := newTestClient(server, 0)

	_, err := client.FindBySubjects(context.Background(), "", []rdf.Term{rdf.IRI(testSubject)}, nil)
	assert.ErrorIs(t, err, store.ErrGraphRequired)
	assert.Empty(t, server.queries)
}

func TestClient_Ask(t *testing.T) {
	for _, expected := range []bool{true, false} {
		server := newRecordingServer(t, askResponse(expected))
		client := newTestClient(server, 0)

		found, err := client.Ask(context.Background(), rdf.Pattern{Graph: testGraph, Predicate: rdf.Type})
		require.NoError(t, err)
		assert.Equal(t, expected, found)
		require.Len(t, server.queries, 1)
		assert.Equal(t,
			"ASK {\n  GRAPH <http://example.org/graph> { ?s <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> ?o }\n}",
			server.queries[0])
	}
}

func TestClient_InsertDeleteUpdate(t *testing.T) {
	server := newRecordingServer(t, askResponse(true))
	client := newTestClient(server, 0)
	ctx := context.Background()

	first := rdf.NewQuad(rdf.IRI(testSubject), "http://schema.org/url", rdf.Literal("a"), "")
	second := rdf.NewQuad(rdf.IRI(testSubject), "http://schema.org/url", rdf.Literal("b"), "")

	require.NoError(t, client.Insert(ctx, testGraph, []rdf.Quad{first}))
	require.NoError(t, client.Delete(ctx, testGraph, []rdf.Quad{first}))
	require.NoError(t, client.Update(ctx, testGraph, []rdf.Quad{first}, []rdf.Quad{second}))
	require.NoError(t, client.Update(ctx, testGraph, nil, nil))
	require.NoError(t, client.Insert(ctx, testGraph, nil))

	require.Len(t, server.updates, 3)
	assert.Equal(t,
		"INSERT DATA {\n  GRAPH <http://example.org/graph> {\n    <http://example.org/s> <http://schema.org/url> \"a\" .\n  }\n}",
		server.updates[0])
	assert.True(t, strings.HasPrefix(server.updates[1], "DELETE DATA {"))
	assert.Contains(t, server.updates[2], "DELETE DATA {")
	assert.Contains(t, server.updates[2], " ;\nINSERT DATA {")
	assert.Contains(t, server.updates[2], `"b" .`)
}

func TestClient_UpdateIf(t *testing.T) {
	precondition := rdf.Pattern{Subject: rdf.IRI(testSubject), Predicate: "http://schema.org/dateModified"}
	insert := rdf.NewQuad(rdf.IRI(testSubject), "http://schema.org/url", rdf.Literal("new"), "")

	t.Run("precondition holds", func(t *testing.T) {
		server := newRecordingServer(t, askResponse(true))
		client := newTestClient(server, 0)

		applied, err := client.UpdateIf(context.Background(), testGraph, precondition, nil, []rdf.Quad{insert})
		require.NoError(t, err)
		assert.True(t, applied)
		require.Len(t, server.updates, 1)
		assert.Contains(t, server.updates[0], "INSERT {\n  GRAPH <http://example.org/graph>")
		assert.Contains(t, server.updates[0],
			"WHERE {\n  GRAPH <http://example.org/graph> { <http://example.org/s> <http://schema.org/dateModified> ?o }\n}")
		assert.NotContains(t, server.updates[0], "DELETE")
	})

	t.Run("precondition fails", func(t *testing.T) {
		server := newRecordingServer(t, askResponse(false))
		client := newTestClient(server, 0)

		applied, err := client.UpdateIf(context.Background(), testGraph, precondition, nil, []rdf.Quad{insert})
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Empty(t, server.updates)
	})
}

func TestClient_ErrorResponse(t *testing.T) {
	server := newRecordingServer(t, func(string) (int, string) {
		return http.StatusServiceUnavailable, "store is restarting"
	})
	client := newTestClient(server, 0)

	_, err := client.Find(context.Background(), rdf.Pattern{Graph: testGraph})
	require.Error(t, err)
	assert.True(t, domain.IsSystem(err))
	assert.Contains(t, err.Error(), "HTTP 503")
	assert.Contains(t, err.Error(), "store is restarting")
}

func TestClient_MalformedResults(t *testing.T) {
	server := newRecordingServer(t, func(string) (int, string) { return http.StatusOK, "not json" })
	client := newTestClient(server, 0)

	_, err := client.Find(context.Background(), rdf.Pattern{Graph: testGraph})
	require.Error(t, err)
	assert.True(t, domain.IsSystem(err))
}

func TestClient_TransportError(t *testing.T) {
	server := newRecordingServer(t, askResponse(true))
	client := newTestClient(server, 0)
	server.Close()

	_, err := client.Ask(context.Background(), rdf.Pattern{Graph: testGraph})
	require.Error(t, err)
	assert.True(t, domain.IsSystem(err))
}

func TestClient_Headers(t *testing.T) {
	server := newRecordingServer(t, askResponse(true))
	client := NewClient(Config{
		QueryEndpoint: server.URL,
		Headers:       map[string]string{"mu-auth-sudo": "true"},
	}, nil, nil)

	_, err := client.Ask(context.Background(), rdf.Pattern{Graph: testGraph})
	require.NoError(t, err)
	require.Len(t, server.headers, 1)
	assert.Equal(t, "true", server.headers[0].Get("mu-auth-sudo"))
	assert.Equal(t, contentTypeResults, server.headers[0].Get("Accept"))
}

func TestFindQuery(t *testing.T) {
	query := findQuery(rdf.Pattern{Predicate: "http://purl.org/dc/terms/source", Object: rdf.IRI("http://example.org/c")})
	assert.Equal(t, "SELECT ?g ?s ?p ?o WHERE {\n"+
		"  VALUES ?p { <http://purl.org/dc/terms/source> }\n"+
		"  VALUES ?o { <http://example.org/c> }\n"+
		"  GRAPH ?g { ?s ?p ?o }\n}", query)
}
