package repository

import (
	"context"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/store"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// Bestuurseenheid is a local government owning a graph of instances.
type Bestuurseenheid struct {
	ID   domain.IRI
	UUID string
}

// Graph returns the graph holding the bestuurseenheid's data.
func (bestuurseenheid Bestuurseenheid) Graph() string {
	return vocabulary.TenantGraph(bestuurseenheid.UUID)
}

// BestuurseenheidRepository reads the bestuurseenheden of the public graph.
type BestuurseenheidRepository struct {
	client store.Client
	graph  string
}

// FindByID loads one bestuurseenheid.
func (repository *BestuurseenheidRepository) FindByID(ctx context.Context, id domain.IRI) (Bestuurseenheid, error) {
	quads, err := repository.client.Find(ctx, rdf.Pattern{
		Graph:     repository.graph,
		Subject:   rdf.IRI(id.String()),
		Predicate: vocabulary.UUID,
	})
	if err != nil {
		return Bestuurseenheid{}, domain.NewSystemError(err, "failed to read bestuurseenheid %s", id)
	}
	if len(quads) == 0 {
		return Bestuurseenheid{}, domain.NewNotFoundError("bestuurseenheid %s not found", id)
	}
	if len(quads) > 1 {
		return Bestuurseenheid{}, domain.NewSystemError(nil, "bestuurseenheid %s has %d uuids", id, len(quads))
	}
	return Bestuurseenheid{ID: id, UUID: quads[0].Object.Value}, nil
}

// All returns every bestuurseenheid with a uuid, ordered by id.
func (repository *BestuurseenheidRepository) All(ctx context.Context) ([]Bestuurseenheid, error) {
	typed, err := repository.client.Find(ctx, rdf.Pattern{
		Graph:     repository.graph,
		Predicate: rdf.Type,
		Object:    rdf.IRI(vocabulary.ClassBestuurseenheid),
	})
	if err != nil {
		return nil, domain.NewSystemError(err, "failed to list bestuurseenheden")
	}
	uuids, err := repository.client.Find(ctx, rdf.Pattern{Graph: repository.graph, Predicate: vocabulary.UUID})
	if err != nil {
		return nil, domain.NewSystemError(err, "failed to list bestuurseenheden")
	}

	uuidOf := make(map[string]string, len(uuids))
	for _, quad := range uuids {
		uuidOf[quad.Subject.Value] = quad.Object.Value
	}
	ids := make([]domain.IRI, 0, len(typed))
	for _, quad := range typed {
		ids = append(ids, domain.IRI(quad.Subject.Value))
	}

	var bestuurseenheden []Bestuurseenheid
	for _, id := range domain.SortedSet(ids) {
		if uuid, ok := uuidOf[id.String()]; ok {
			bestuurseenheden = append(bestuurseenheden, Bestuurseenheid{ID: id, UUID: uuid})
		}
	}
	return bestuurseenheden, nil
}
