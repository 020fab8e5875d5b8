package main

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/coolbeans/servicecatalog/pkg/batch"
	"github.com/coolbeans/servicecatalog/pkg/codec"
	"github.com/coolbeans/servicecatalog/pkg/config"
	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/fetch"
	"github.com/coolbeans/servicecatalog/pkg/merge"
	"github.com/coolbeans/servicecatalog/pkg/registry"
	"github.com/coolbeans/servicecatalog/pkg/repository"
	"github.com/coolbeans/servicecatalog/pkg/sparql"
	"github.com/coolbeans/servicecatalog/pkg/transport"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// app holds the components one command run needs.
type app struct {
	config       *config.Config
	logger       *slog.Logger
	fetcher      *fetch.Fetcher
	repositories *repository.Repositories
}

// newApp loads the configuration named by the --config flag and wires the
// store, fetcher and repositories.
func newApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logging.NewLogger(cmd.ErrOrStderr())
	client := sparql.NewClient(cfg.SPARQL, nil, logger)
	fetcher := fetch.NewFetcher(client, cfg.Fetch, logger)
	repositories := repository.New(client, fetcher, codec.New(), cfg.Graphs, domain.RandomIdentities(), logger)

	return &app{
		config:       cfg,
		logger:       logger,
		fetcher:      fetcher,
		repositories: repositories,
	}, nil
}

// codeRegistry queries the organisation registry over SPARQL.
func (application *app) codeRegistry() *registry.CodeRegistry {
	endpoint := sparql.Config{
		QueryEndpoint: application.config.Registry.CodeEndpoint,
		Config:        application.config.Registry.Config,
	}
	return registry.NewCodeRegistry(sparql.NewClient(endpoint, nil, application.logger), application.logger)
}

// addressEnricher returns nil when no address registry key is configured.
func (application *app) addressEnricher() *merge.AddressEnricher {
	registryConfig := application.config.Registry
	if registryConfig.AddressAPIKey == "" {
		return nil
	}
	addresses := registry.NewAddressRegistry(registryConfig.AddressEndpoint, registryConfig.AddressAPIKey,
		transport.New(registryConfig.Config, nil), application.logger)
	return merge.NewAddressEnricher(addresses, application.logger)
}

// processor builds the batch processor of the named source.
func (application *app) processor(name string, registerer prometheus.Registerer) (*batch.Processor, error) {
	ids := domain.RandomIdentities()
	graphs := application.config.Graphs

	var source batch.Source
	var merger batch.Merger
	switch name {
	case "concepts":
		source = batch.Source{Name: name, Graph: graphs.ConceptSnapshots, Class: vocabulary.ClassConceptSnapshot}
		merger = merge.NewConceptMerger(application.repositories, application.codeRegistry(), ids, application.logger)
	case "instances":
		source = batch.Source{Name: name, Graph: graphs.InstanceSnapshots, Class: vocabulary.ClassInstanceSnapshot}
		merger = merge.NewInstanceMerger(application.repositories, application.codeRegistry(),
			application.addressEnricher(), ids, application.logger)
	default:
		return nil, fmt.Errorf("unknown source %q (expected concepts or instances)", name)
	}

	return batch.NewProcessor(source, merger, application.repositories.Ledger, application.config.Batch,
		registerer, application.logger)
}
