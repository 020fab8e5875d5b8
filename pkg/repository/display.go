package repository

import (
	"context"
	"strconv"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/store"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// DisplayConfiguration tells the bestuurseenheid of Graph whether a concept
// is new to it and whether it already instantiated the concept.
type DisplayConfiguration struct {
	ID                  domain.IRI
	UUID                string
	ConceptID           domain.IRI
	Bestuurseenheid     domain.IRI
	Graph               string
	ConceptIsNew        bool
	ConceptInstantiated bool
}

// DisplayConfigurationRepository maintains one display configuration per
// concept and bestuurseenheid, stored in the bestuurseenheid's graph.
type DisplayConfigurationRepository struct {
	client           store.Client
	bestuurseenheden *BestuurseenheidRepository
	ids              domain.IdentityGenerator
}

// Find returns the display configuration of conceptID for bestuurseenheid.
func (repository *DisplayConfigurationRepository) Find(
	ctx context.Context,
	bestuurseenheid Bestuurseenheid,
	conceptID domain.IRI,
) (DisplayConfiguration, error) {
	graph := bestuurseenheid.Graph()
	id, err := repository.configurationID(ctx, graph, conceptID)
	if err != nil {
		return DisplayConfiguration{}, err
	}
	if id.IsZero() {
		return DisplayConfiguration{}, domain.NewNotFoundError(
			"no display configuration for concept %s in %s", conceptID, graph)
	}

	quads, err := repository.client.FindBySubjects(ctx, graph, []rdf.Term{rdf.IRI(id.String())}, nil)
	if err != nil {
		return DisplayConfiguration{}, domain.NewSystemError(err, "failed to read display configuration %s", id)
	}
	configuration := DisplayConfiguration{
		ID:              id,
		ConceptID:       conceptID,
		Bestuurseenheid: bestuurseenheid.ID,
		Graph:           graph,
	}
	for _, quad := range quads {
		switch quad.Predicate {
		case vocabulary.UUID:
			configuration.UUID = quad.Object.Value
		case vocabulary.ConceptIsNew:
			configuration.ConceptIsNew, _ = strconv.ParseBool(quad.Object.Value)
		case vocabulary.ConceptInstantiated:
			configuration.ConceptInstantiated, _ = strconv.ParseBool(quad.Object.Value)
		}
	}
	return configuration, nil
}

// EnsureForAll makes sure every bestuurseenheid has a display configuration
// for conceptID. Existing configurations are left untouched. It returns the
// number of configurations created.
func (repository *DisplayConfigurationRepository) EnsureForAll(ctx context.Context, conceptID domain.IRI) (int, error) {
	bestuurseenheden, err := repository.bestuurseenheden.All(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, bestuurseenheid := range bestuurseenheden {
		graph := bestuurseenheid.Graph()
		existing, err := repository.configurationID(ctx, graph, conceptID)
		if err != nil {
			return created, err
		}
		if !existing.IsZero() {
			continue
		}

		id, uuid := repository.ids.NewIdentity(domain.KindDisplayConfiguration)
		subject := rdf.IRI(id.String())
		quads := []rdf.Quad{
			rdf.NewQuad(rdf.IRI(conceptID.String()), vocabulary.HasDisplayConfiguration, subject, graph),
			rdf.NewQuad(subject, rdf.Type, rdf.IRI(vocabulary.ClassDisplayConfiguration), graph),
			rdf.NewQuad(subject, vocabulary.UUID, rdf.Literal(uuid), graph),
			rdf.NewQuad(subject, vocabulary.ConceptIsNew, booleanLiteral(true), graph),
			rdf.NewQuad(subject, vocabulary.ConceptInstantiated, booleanLiteral(false), graph),
			rdf.NewQuad(subject, vocabulary.Relation, rdf.IRI(bestuurseenheid.ID.String()), graph),
		}
		if err := repository.client.Insert(ctx, graph, quads); err != nil {
			return created, domain.NewSystemError(err, "failed to insert display configuration for %s", conceptID)
		}
		created++
	}
	return created, nil
}

// MarkInstantiated records that bestuurseenheid created an instance of
// conceptID: the concept is no longer new and it is instantiated.
func (repository *DisplayConfigurationRepository) MarkInstantiated(
	ctx context.Context,
	bestuurseenheid Bestuurseenheid,
	conceptID domain.IRI,
) error {
	configuration, err := repository.Find(ctx, bestuurseenheid, conceptID)
	if err != nil {
		return err
	}
	if !configuration.ConceptIsNew && configuration.ConceptInstantiated {
		return nil
	}

	subject := rdf.IRI(configuration.ID.String())
	graph := configuration.Graph
	deletes := []rdf.Quad{
		rdf.NewQuad(subject, vocabulary.ConceptIsNew, booleanLiteral(configuration.ConceptIsNew), graph),
		rdf.NewQuad(subject, vocabulary.ConceptInstantiated, booleanLiteral(configuration.ConceptInstantiated), graph),
	}
	inserts := []rdf.Quad{
		rdf.NewQuad(subject, vocabulary.ConceptIsNew, booleanLiteral(false), graph),
		rdf.NewQuad(subject, vocabulary.ConceptInstantiated, booleanLiteral(true), graph),
	}
	if err := repository.client.Update(ctx, graph, deletes, inserts); err != nil {
		return domain.NewSystemError(err, "failed to update display configuration %s", configuration.ID)
	}
	return nil
}

func (repository *DisplayConfigurationRepository) configurationID(
	ctx context.Context,
	graph string,
	conceptID domain.IRI,
) (domain.IRI, error) {
	quads, err := repository.client.Find(ctx, rdf.Pattern{
		Graph:     graph,
		Subject:   rdf.IRI(conceptID.String()),
		Predicate: vocabulary.HasDisplayConfiguration,
	})
	if err != nil {
		return "", domain.NewSystemError(err, "failed to look up display configuration of %s", conceptID)
	}
	if len(quads) == 0 {
		return "", nil
	}
	return domain.IRI(quads[0].Object.Value), nil
}

func booleanLiteral(value bool) rdf.Term {
	return rdf.TypedLiteral(strconv.FormatBool(value), rdf.XSDBoolean)
}
