// Package sparql implements the graph store client over the SPARQL 1.1
// protocol: SELECT and ASK against a query endpoint, INSERT DATA, DELETE DATA
// and DELETE/INSERT against an update endpoint.
package sparql

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/store"
	"github.com/coolbeans/servicecatalog/pkg/transport"
)

// DefaultBatchSize is the number of subjects bound per VALUES clause.
const DefaultBatchSize = 100

const (
	contentTypeForm    = "application/x-www-form-urlencoded"
	contentTypeResults = "application/sparql-results+json"

	// maxErrorBody bounds how much of a failed response ends up in an error.
	maxErrorBody = 512
)

// Config holds the endpoint settings of a Client.
type Config struct {
	// QueryEndpoint receives SELECT and ASK requests.
	QueryEndpoint string `yaml:"query_endpoint" validate:"required,url"`

	// UpdateEndpoint receives updates. Defaults to QueryEndpoint.
	UpdateEndpoint string `yaml:"update_endpoint" validate:"omitempty,url"`

	// BatchSize bounds the subjects per query when fetching by subject.
	BatchSize int `yaml:"batch_size" validate:"gte=0"`

	// Headers are added to every request, e.g. mu-auth-sudo.
	Headers map[string]string `yaml:"headers"`

	transport.Config `yaml:",inline"`
}

// DefaultConfig returns a Config for a local store with sensible defaults.
func DefaultConfig() Config {
	return Config{
		QueryEndpoint: "http://localhost:8890/sparql",
		BatchSize:     DefaultBatchSize,
	}
}

// Client is a store.Client talking to a remote SPARQL endpoint.
type Client struct {
	httpClient transport.HTTPClient
	config     Config
	logger     *slog.Logger
}

var _ store.Client = (*Client)(nil)

// NewClient creates a Client. A nil httpClient is replaced by a timeout
// client; rate limiting from config wraps whichever client is used.
func NewClient(config Config, httpClient transport.HTTPClient, logger *slog.Logger) *Client {
	if config.UpdateEndpoint == "" {
		config.UpdateEndpoint = config.QueryEndpoint
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: transport.New(config.Config, httpClient),
		config:     config,
		logger:     logger,
	}
}

// Find returns all quads matching the pattern.
func (client *Client) Find(ctx context.Context, pattern rdf.Pattern) ([]rdf.Quad, error) {
	document, err := client.query(ctx, findQuery(pattern))
	if err != nil {
		return nil, err
	}
	return client.quads(document, "")
}

// FindBySubjects returns the quads of subjects in graph, querying at most
// BatchSize subjects per request. Blank node subjects cannot be bound in a
// VALUES clause, so asking for one fails with a SystemError before any
// request is sent.
func (client *Client) FindBySubjects(
	ctx context.Context,
	graph string,
	subjects []rdf.Term,
	excludedPredicates []string,
) ([]rdf.Quad, error) {
	if graph == "" {
		return nil, store.ErrGraphRequired
	}

	for _, subject := range subjects {
		if subject.Kind != rdf.KindIRI {
			return nil, domain.NewSystemError(nil, "cannot query subject %s in %s: only IRIs can be bound", subject, graph)
		}
	}

	var results []rdf.Quad
	for start := 0; start < len(subjects); start += client.config.BatchSize {
		end := min(start+client.config.BatchSize, len(subjects))
		document, err := client.query(ctx, subjectsQuery(graph, subjects[start:end], excludedPredicates))
		if err != nil {
			return nil, err
		}
		quads, err := client.quads(document, graph)
		if err != nil {
			return nil, err
		}
		results = append(results, quads...)
	}
	return results, nil
}

// Ask reports whether a quad matches the pattern.
func (client *Client) Ask(ctx context.Context, pattern rdf.Pattern) (bool, error) {
	if pattern.Graph == "" {
		return false, store.ErrGraphRequired
	}
	document, err := client.query(ctx, askQuery(pattern))
	if err != nil {
		return false, err
	}
	if document.Boolean == nil {
		return false, domain.NewSystemError(nil, "ASK response carries no boolean")
	}
	return *document.Boolean, nil
}

// Insert adds quads to graph with INSERT DATA.
func (client *Client) Insert(ctx context.Context, graph string, quads []rdf.Quad) error {
	if graph == "" {
		return store.ErrGraphRequired
	}
	if len(quads) == 0 {
		return nil
	}
	return client.update(ctx, dataUpdate("INSERT", graph, quads))
}

// Delete removes quads from graph with DELETE DATA.
func (client *Client) Delete(ctx context.Context, graph string, quads []rdf.Quad) error {
	if graph == "" {
		return store.ErrGraphRequired
	}
	if len(quads) == 0 {
		return nil
	}
	return client.update(ctx, dataUpdate("DELETE", graph, quads))
}

// Update sends DELETE DATA and INSERT DATA as one request.
func (client *Client) Update(ctx context.Context, graph string, deletes, inserts []rdf.Quad) error {
	if graph == "" {
		return store.ErrGraphRequired
	}
	request := replaceUpdate(graph, deletes, inserts)
	if request == "" {
		return nil
	}
	return client.update(ctx, request)
}

// UpdateIf asks for the precondition and, when it holds, sends a
// DELETE/INSERT guarded by the same precondition. A write racing between the
// two requests makes the guarded update a no-op while true is still reported.
func (client *Client) UpdateIf(
	ctx context.Context,
	graph string,
	precondition rdf.Pattern,
	deletes, inserts []rdf.Quad,
) (bool, error) {
	if graph == "" {
		return false, store.ErrGraphRequired
	}
	precondition.Graph = graph
	holds, err := client.Ask(ctx, precondition)
	if err != nil || !holds {
		return false, err
	}
	if len(deletes) == 0 && len(inserts) == 0 {
		return true, nil
	}
	if err := client.update(ctx, conditionalUpdate(graph, precondition, deletes, inserts)); err != nil {
		return false, err
	}
	return true, nil
}

// Select runs a SELECT query and returns its rows keyed by variable name.
// Unbound variables are absent from their row.
func (client *Client) Select(ctx context.Context, query string) ([]map[string]rdf.Term, error) {
	document, err := client.query(ctx, query)
	if err != nil {
		return nil, err
	}
	rows, err := document.rows()
	if err != nil {
		return nil, domain.NewSystemError(err, "malformed query results")
	}
	return rows, nil
}

func (client *Client) quads(document *resultsDocument, graph string) ([]rdf.Quad, error) {
	rows, err := document.rows()
	if err != nil {
		return nil, domain.NewSystemError(err, "malformed query results")
	}
	quads := make([]rdf.Quad, 0, len(rows))
	for _, row := range rows {
		quad, err := rowQuad(row, graph)
		if err != nil {
			return nil, domain.NewSystemError(err, "malformed query results")
		}
		quads = append(quads, quad)
	}
	return quads, nil
}

func (client *Client) query(ctx context.Context, query string) (*resultsDocument, error) {
	client.logger.Debug("sparql query", "endpoint", client.config.QueryEndpoint, "query", query)

	resp, err := client.post(ctx, client.config.QueryEndpoint, url.Values{"query": {query}})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	document, err := decodeResults(resp.Body)
	if err != nil {
		return nil, domain.NewSystemError(err, "query against %s failed", client.config.QueryEndpoint)
	}
	return document, nil
}

func (client *Client) update(ctx context.Context, update string) error {
	client.logger.Debug("sparql update", "endpoint", client.config.UpdateEndpoint, "update", update)

	resp, err := client.post(ctx, client.config.UpdateEndpoint, url.Values{"update": {update}})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// post sends a form-encoded request and turns transport failures and non-2xx
// responses into SystemErrors. The caller closes the body of a returned
// response.
func (client *Client) post(ctx context.Context, endpoint string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, domain.NewSystemError(err, "failed to build request for %s", endpoint)
	}
	req.Header.Set("Content-Type", contentTypeForm)
	req.Header.Set("Accept", contentTypeResults)
	for name, value := range client.config.Headers {
		req.Header.Set(name, value)
	}

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewSystemError(err, "request to %s failed", endpoint)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, domain.NewSystemError(nil, "%s returned HTTP %d: %s",
			endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp, nil
}

// String describes the client for logs.
func (client *Client) String() string {
	return fmt.Sprintf("sparql(%s)", client.config.QueryEndpoint)
}
