package fetch

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/store"
)

var tracer = otel.Tracer("servicecatalog.fetch")

// Fetcher computes triple closures with one store query per round.
type Fetcher struct {
	client store.Client
	config Config
	logger *slog.Logger
}

// NewFetcher creates a fetcher over client. A nil logger uses slog.Default().
func NewFetcher(client store.Client, config Config, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{client: client, config: config, logger: logger}
}

// Fetch returns the closure of roots in graph.
func (fetcher *Fetcher) Fetch(ctx context.Context, graph string, roots []rdf.Term, options Options) ([]rdf.Quad, error) {
	quads, _, err := fetcher.FetchWithReport(ctx, graph, roots, options)
	return quads, err
}

// FetchWithReport returns the closure of roots in graph together with a
// summary of the work done.
//
// Every round queries all triples whose subject is in the frontier, leaving
// out DoNotQuery predicates. Reference objects become the next frontier
// unless reached through rdf:type or a StopAt predicate, or already queried
// in an earlier round. The fetch fails with a SystemError as soon as a
// fetched rdf:type is one of ForbiddenTypes. Store errors are returned
// unchanged.
func (fetcher *Fetcher) FetchWithReport(
	ctx context.Context,
	graph string,
	roots []rdf.Term,
	options Options,
) ([]rdf.Quad, *Report, error) {
	startedAt := time.Now()
	ctx, span := tracer.Start(ctx, "Fetcher.Fetch", trace.WithAttributes(
		attribute.String("fetch.graph", graph),
		attribute.Int("fetch.roots", len(roots)),
	))
	defer span.End()

	stopAt := toSet(options.StopAt)
	forbidden := toSet(options.ForbiddenTypes)

	visited := make(map[rdf.Term]bool)
	frontier := uniqueTerms(roots, visited)
	report := &Report{Graph: graph, Roots: len(frontier)}

	var closure []rdf.Quad
	for len(frontier) > 0 {
		if fetcher.config.MaxRounds > 0 && report.Rounds >= fetcher.config.MaxRounds {
			err := domain.NewSystemError(nil, "malformed recursion: frontier of %d ids left after %d rounds in <%s>",
				len(frontier), report.Rounds, graph)
			span.SetStatus(codes.Error, err.Error())
			return nil, report, err
		}
		report.Rounds++

		for _, id := range frontier {
			visited[id] = true
		}
		report.QueriedIDs += len(frontier)

		quads, err := fetcher.client.FindBySubjects(ctx, graph, frontier, options.DoNotQuery)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, report, err
		}

		for _, quad := range quads {
			if quad.Predicate == rdf.Type && forbidden[quad.Object.Value] {
				err := domain.NewSystemError(nil, "fetching <%s> in <%s> reached forbidden type <%s>",
					quad.Subject.Value, graph, quad.Object.Value)
				span.SetStatus(codes.Error, err.Error())
				return nil, report, err
			}
		}

		var referenced []rdf.Term
		for _, quad := range quads {
			if quad.Object.IsReference() && quad.Predicate != rdf.Type && !stopAt[quad.Predicate] {
				referenced = append(referenced, quad.Object)
			}
		}

		closure = append(closure, quads...)
		frontier = uniqueTerms(referenced, visited)

		fetcher.logger.Debug("fetch round complete",
			"graph", graph,
			"round", report.Rounds,
			"quads", len(quads),
			"next_frontier", len(frontier))
	}

	report.Quads = len(closure)
	report.Duration = time.Since(startedAt)
	span.SetAttributes(
		attribute.Int("fetch.rounds", report.Rounds),
		attribute.Int("fetch.queried_ids", report.QueriedIDs),
		attribute.Int("fetch.quads", report.Quads),
	)
	return closure, report, nil
}

// uniqueTerms returns the distinct terms not yet visited, in a stable order.
func uniqueTerms(terms []rdf.Term, visited map[rdf.Term]bool) []rdf.Term {
	seen := make(map[rdf.Term]bool, len(terms))
	var unique []rdf.Term
	for _, term := range terms {
		if visited[term] || seen[term] {
			continue
		}
		seen[term] = true
		unique = append(unique, term)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].String() < unique[j].String() })
	return unique
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, value := range values {
		set[value] = true
	}
	return set
}
