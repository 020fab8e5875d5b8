// Package repository loads and saves catalog aggregates and their supporting
// records in the graph store: concepts, instances and their snapshots, the
// processing ledger, the organisation code list, display configurations and
// bestuurseenheden.
//
// Aggregates are read with the recursive fetcher, decoded with the codec and
// written back as a delete of the previously read quads plus an insert of the
// new ones, guarded by an optimistic precondition.
package repository

import (
	"context"
	"log/slog"

	"github.com/coolbeans/servicecatalog/pkg/codec"
	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/fetch"
	"github.com/coolbeans/servicecatalog/pkg/index"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/store"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// Graphs names the well-known graphs the repositories read and write.
type Graphs struct {
	Public            string `yaml:"public" validate:"required"`
	ConceptSnapshots  string `yaml:"concept_snapshots" validate:"required"`
	InstanceSnapshots string `yaml:"instance_snapshots" validate:"required"`
	Ledger            string `yaml:"ledger" validate:"required"`
}

// DefaultGraphs returns the graphs of a standard deployment.
func DefaultGraphs() Graphs {
	return Graphs{
		Public:            vocabulary.GraphPublic,
		ConceptSnapshots:  vocabulary.GraphConceptSnapshots,
		InstanceSnapshots: vocabulary.GraphInstanceSnapshots,
		Ledger:            vocabulary.GraphLedger,
	}
}

// Repositories bundles every repository over one store.
type Repositories struct {
	Concepts              *ConceptRepository
	ConceptSnapshots      *ConceptSnapshotRepository
	Instances             *InstanceRepository
	InstanceSnapshots     *InstanceSnapshotRepository
	Ledger                *Ledger
	Codes                 *CodeRepository
	DisplayConfigurations *DisplayConfigurationRepository
	Bestuurseenheden      *BestuurseenheidRepository
}

// New wires the repositories over client.
func New(
	client store.Client,
	fetcher *fetch.Fetcher,
	c *codec.Codec,
	graphs Graphs,
	ids domain.IdentityGenerator,
	logger *slog.Logger,
) *Repositories {
	if logger == nil {
		logger = slog.Default()
	}
	shared := base{client: client, fetcher: fetcher, codec: c, logger: logger}
	bestuurseenheden := &BestuurseenheidRepository{client: client, graph: graphs.Public}
	displayConfigurations := &DisplayConfigurationRepository{
		client:           client,
		bestuurseenheden: bestuurseenheden,
		ids:              ids,
	}
	instances := &InstanceRepository{
		base:           shared,
		excludedGraphs: []string{graphs.ConceptSnapshots, graphs.InstanceSnapshots},
	}
	return &Repositories{
		Concepts:              &ConceptRepository{base: shared, graph: graphs.Public},
		ConceptSnapshots:      &ConceptSnapshotRepository{base: shared, graph: graphs.ConceptSnapshots},
		Instances:             instances,
		InstanceSnapshots:     &InstanceSnapshotRepository{base: shared, graph: graphs.InstanceSnapshots},
		Ledger:                &Ledger{client: client, graph: graphs.Ledger},
		Codes:                 &CodeRepository{client: client, graph: graphs.Public, ids: ids},
		DisplayConfigurations: displayConfigurations,
		Bestuurseenheden:      bestuurseenheden,
	}
}

// base holds the collaborators shared by the aggregate repositories.
type base struct {
	client  store.Client
	fetcher *fetch.Fetcher
	codec   *codec.Codec
	logger  *slog.Logger
}

// load fetches the closure of id in graph and decodes it. An id without any
// quads is a NotFoundError named after kind.
func load[T any](
	ctx context.Context,
	b base,
	kind string,
	graph string,
	id domain.IRI,
	options fetch.Options,
	decode func([]rdf.Quad, domain.IRI) (codec.Result[T], error),
) (T, error) {
	var zero T
	quads, err := b.fetcher.Fetch(ctx, graph, []rdf.Term{rdf.IRI(id.String())}, options)
	if err != nil {
		return zero, err
	}
	if len(quads) == 0 {
		return zero, domain.NewNotFoundError("%s %s not found in graph %s", kind, id, graph)
	}

	result, err := decode(quads, id)
	if err != nil {
		return zero, err
	}
	logWarnings(b.logger, kind, id, result.Warnings)
	return result.Value, nil
}

func logWarnings(logger *slog.Logger, kind string, id domain.IRI, warnings []index.Warning) {
	for _, warning := range warnings {
		logger.Warn("integrity warning while decoding",
			"kind", kind,
			"id", id,
			"warning", warning.Kind,
			"subject", warning.Subject.Value,
			"predicate", warning.Predicate,
			"detail", warning.Detail)
	}
}

// replace applies deletes and inserts in graph provided precondition
// still holds, failing with a ConcurrentUpdateError otherwise.
func replace(
	ctx context.Context,
	client store.Client,
	graph string,
	precondition rdf.Pattern,
	deletes, inserts []rdf.Quad,
	id domain.IRI,
) error {
	applied, err := client.UpdateIf(ctx, graph, precondition, deletes, inserts)
	if err != nil {
		return domain.NewSystemError(err, "failed to update %s", id)
	}
	if !applied {
		return domain.NewConcurrentUpdateError("%s was modified concurrently", id)
	}
	return nil
}

// create inserts quads for id after checking that id does not exist yet.
func create(ctx context.Context, client store.Client, graph string, id domain.IRI, class string, quads []rdf.Quad) error {
	exists, err := client.Ask(ctx, typePattern(graph, id, class))
	if err != nil {
		return domain.NewSystemError(err, "failed to check existence of %s", id)
	}
	if exists {
		return domain.NewConcurrentUpdateError("%s already exists in graph %s", id, graph)
	}
	if err := client.Insert(ctx, graph, quads); err != nil {
		return domain.NewSystemError(err, "failed to insert %s", id)
	}
	return nil
}

func typePattern(graph string, id domain.IRI, class string) rdf.Pattern {
	return rdf.Pattern{
		Graph:     graph,
		Subject:   rdf.IRI(id.String()),
		Predicate: rdf.Type,
		Object:    rdf.IRI(class),
	}
}
