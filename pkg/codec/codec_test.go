package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/domain/domaintest"
	"github.com/coolbeans/servicecatalog/pkg/index"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

const testGraph = "http://mu.semte.ch/graphs/test"

func minimalConcept() domain.Concept {
	return domain.Concept{
		ID:                                       domaintest.ConceptID("minimal"),
		UUID:                                     "minimal-uuid",
		Content:                                  domain.Content{Title: domaintest.Text("", "Titel"), Description: domaintest.Text("", "Beschrijving")},
		LatestConceptSnapshot:                    domaintest.ConceptSnapshotID("minimal-1"),
		LatestFunctionallyChangedConceptSnapshot: domaintest.ConceptSnapshotID("minimal-1"),
	}
}

func TestCodec_Concept_RoundTrip(t *testing.T) {
	codec := New()

	tests := []struct {
		name    string
		concept domain.Concept
	}{
		{"full", domaintest.Concept("parking", domaintest.ConceptSnapshotID("parking-3"),
			domaintest.ConceptSnapshotID("parking-1"), domaintest.ConceptSnapshotID("parking-2"))},
		{"minimal", minimalConcept()},
		{"archived with lagging functional change", func() domain.Concept {
			concept := domaintest.Concept("archived", domaintest.ConceptSnapshotID("archived-2"), domaintest.ConceptSnapshotID("archived-1"))
			concept.LatestFunctionallyChangedConceptSnapshot = domaintest.ConceptSnapshotID("archived-1")
			concept.IsArchived = true
			return concept
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quads, err := codec.EncodeConcept(tt.concept, testGraph)
			require.NoError(t, err)

			decoded, err := codec.DecodeConcept(quads, tt.concept.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.concept, decoded.Value)
			assert.Empty(t, decoded.Warnings)

			reencoded, err := codec.EncodeConcept(decoded.Value, testGraph)
			require.NoError(t, err)
			assert.True(t, rdf.NewSet(quads...).Equal(rdf.NewSet(reencoded...)))
		})
	}
}

func TestCodec_ConceptSnapshot_RoundTrip(t *testing.T) {
	codec := New()
	snapshot := domaintest.ConceptSnapshot("parking-1", domaintest.ConceptID("parking"), domaintest.Date(2024, time.January, 1))

	quads, err := codec.EncodeConceptSnapshot(snapshot, vocabulary.GraphConceptSnapshots)
	require.NoError(t, err)
	for _, quad := range quads {
		assert.Equal(t, vocabulary.GraphConceptSnapshots, quad.Graph)
	}

	decoded, err := codec.DecodeConceptSnapshot(quads, snapshot.ID)
	require.NoError(t, err)
	assert.Equal(t, snapshot, decoded.Value)

	reencoded, err := codec.EncodeConceptSnapshot(decoded.Value, vocabulary.GraphConceptSnapshots)
	require.NoError(t, err)
	assert.Equal(t, rdf.NQuads(quads), rdf.NQuads(reencoded))
}

func TestCodec_Instance_RoundTrip(t *testing.T) {
	codec := New()
	graph := vocabulary.TenantGraph(domaintest.BestuurseenheidUUID)

	full := domaintest.Instance("parking")
	draft := domain.Instance{
		ID:           domaintest.InstanceID("draft"),
		UUID:         "draft-uuid",
		CreatedBy:    domaintest.Bestuurseenheid,
		Status:       domain.InstanceStatusOntwerp,
		ReviewStatus: domain.ReviewStatusConceptGearchiveerd,
		DateCreated:  domaintest.Date(2024, time.May, 1),
		DateModified: domaintest.Date(2024, time.May, 2),
	}

	for _, instance := range []domain.Instance{full, draft} {
		quads, err := codec.EncodeInstance(instance, graph)
		require.NoError(t, err)

		decoded, err := codec.DecodeInstance(quads, instance.ID)
		require.NoError(t, err)
		assert.Equal(t, instance, decoded.Value)

		reencoded, err := codec.EncodeInstance(decoded.Value, graph)
		require.NoError(t, err)
		assert.True(t, rdf.NewSet(quads...).Equal(rdf.NewSet(reencoded...)))
	}
}

func TestCodec_InstanceSnapshot_RoundTrip(t *testing.T) {
	codec := New()
	snapshot := domaintest.InstanceSnapshot("parking-1", domaintest.InstanceID("parking"), domaintest.Date(2024, time.February, 1))
	snapshot.IsArchived = true

	quads, err := codec.EncodeInstanceSnapshot(snapshot, vocabulary.GraphInstanceSnapshots)
	require.NoError(t, err)

	decoded, err := codec.DecodeInstanceSnapshot(quads, snapshot.ID)
	require.NoError(t, err)
	assert.Equal(t, snapshot, decoded.Value)
}

func TestCodec_Decode_TypeMismatch(t *testing.T) {
	codec := New()
	concept := minimalConcept()
	quads, err := codec.EncodeConcept(concept, testGraph)
	require.NoError(t, err)

	_, err = codec.DecodeConceptSnapshot(quads, concept.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Contains(t, err.Error(), vocabulary.ClassConceptSnapshot)
	assert.Contains(t, err.Error(), vocabulary.ClassConcept)

	_, err = codec.DecodeConcept(nil, concept.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestCodec_Decode_DuplicateOrder(t *testing.T) {
	codec := New()
	concept := domaintest.Concept("parking", domaintest.ConceptSnapshotID("parking-1"))
	quads, err := codec.EncodeConcept(concept, testGraph)
	require.NoError(t, err)

	second := rdf.IRI(string(concept.Requirements[1].ID))
	var corrupted []rdf.Quad
	for _, quad := range quads {
		if quad.Subject == second && quad.Predicate == vocabulary.Order {
			quad.Object = rdf.TypedLiteral("0", rdf.XSDInteger)
		}
		corrupted = append(corrupted, quad)
	}

	_, err = codec.DecodeConcept(corrupted, concept.ID)
	require.Error(t, err)
	assert.True(t, domain.IsInvariant(err))
	assert.Contains(t, err.Error(), "requirements")
}

func TestCodec_Decode_MissingOrder(t *testing.T) {
	codec := New()
	concept := domaintest.Concept("parking", domaintest.ConceptSnapshotID("parking-1"))
	quads, err := codec.EncodeConcept(concept, testGraph)
	require.NoError(t, err)

	cost := rdf.IRI(string(concept.Costs[0].ID))
	var corrupted []rdf.Quad
	for _, quad := range quads {
		if quad.Subject == cost && quad.Predicate == vocabulary.Order {
			continue
		}
		corrupted = append(corrupted, quad)
	}

	_, err = codec.DecodeConcept(corrupted, concept.ID)
	require.Error(t, err)
	assert.True(t, domain.IsInvariant(err))
	assert.Contains(t, err.Error(), "costs")
}

func TestCodec_Decode_UnmappableCode(t *testing.T) {
	codec := New()
	concept := minimalConcept()
	quads, err := codec.EncodeConcept(concept, testGraph)
	require.NoError(t, err)

	quads = append(quads, rdf.NewQuad(rdf.IRI(string(concept.ID)), vocabulary.TargetAudience,
		rdf.IRI(NamespaceTargetAudience+"Marsbewoner"), testGraph))

	_, err = codec.DecodeConcept(quads, concept.ID)
	require.Error(t, err)
	assert.True(t, domain.IsInvariant(err))
	assert.Contains(t, err.Error(), "Marsbewoner")
}

func TestCodec_Encode_UnknownEnumValue(t *testing.T) {
	concept := minimalConcept()
	concept.Themes = []domain.Theme{"Ruimtevaart"}

	_, err := New().EncodeConcept(concept, testGraph)
	require.Error(t, err)
	assert.True(t, domain.IsInvariant(err))
}

func TestCodec_DecodeConceptSnapshot_DropsUnfinishedChildren(t *testing.T) {
	codec := New()
	snapshot := domaintest.ConceptSnapshot("legacy", domaintest.ConceptID("legacy"), domaintest.Date(2020, time.June, 1))
	quads, err := codec.EncodeConceptSnapshot(snapshot, testGraph)
	require.NoError(t, err)

	unfinished := rdf.IRI(string(snapshot.Requirements[1].ID))
	var legacy []rdf.Quad
	for _, quad := range quads {
		if quad.Subject == unfinished && quad.Predicate == vocabulary.Description {
			continue
		}
		legacy = append(legacy, quad)
	}

	decoded, err := codec.DecodeConceptSnapshot(legacy, snapshot.ID)
	require.NoError(t, err)
	require.Len(t, decoded.Value.Requirements, 1)
	assert.Equal(t, snapshot.Requirements[0].ID, decoded.Value.Requirements[0].ID)

	concept := domaintest.Concept("legacy", snapshot.ID)
	conceptQuads, err := codec.EncodeConcept(concept, testGraph)
	require.NoError(t, err)
	var broken []rdf.Quad
	for _, quad := range conceptQuads {
		if quad.Subject == rdf.IRI(string(concept.Requirements[1].ID)) && quad.Predicate == vocabulary.Description {
			continue
		}
		broken = append(broken, quad)
	}
	_, err = codec.DecodeConcept(broken, concept.ID)
	assert.True(t, domain.IsInvariant(err), "canonical records are not lenient")
}

func TestCodec_Decode_Warnings(t *testing.T) {
	codec := New()
	concept := minimalConcept()
	quads, err := codec.EncodeConcept(concept, testGraph)
	require.NoError(t, err)

	subject := rdf.IRI(string(concept.ID))
	quads = append(quads,
		rdf.NewQuad(subject, vocabulary.Title, rdf.LangLiteral("Tweede titel", "nl"), testGraph),
		rdf.NewQuad(subject, vocabulary.Description, rdf.LangLiteral("Description", "fr"), testGraph),
		rdf.NewQuad(subject, vocabulary.UUID, rdf.Literal("another-uuid"), testGraph),
	)

	decoded, err := codec.DecodeConcept(quads, concept.ID)
	require.NoError(t, err)

	kinds := make(map[index.WarningKind]int)
	for _, warning := range decoded.Warnings {
		kinds[warning.Kind]++
	}
	assert.Equal(t, 1, kinds[index.WarningDuplicateLanguage])
	assert.Equal(t, 1, kinds[index.WarningMultipleValues])
	assert.Equal(t, 1, kinds[WarningUnsupportedLanguage])
	assert.NotEmpty(t, decoded.Value.Title.Nl)
}

func TestCodec_Encode_RejectsInvalid(t *testing.T) {
	concept := minimalConcept()
	concept.Costs = []domain.Cost{
		{ID: "http://example.org/cost/1", Title: domaintest.Text("", "a"), Description: domaintest.Text("", "b"), Order: 3},
		{ID: "http://example.org/cost/2", Title: domaintest.Text("", "c"), Description: domaintest.Text("", "d"), Order: 3},
	}

	_, err := New().EncodeConcept(concept, testGraph)
	require.Error(t, err)
	assert.True(t, domain.IsInvariant(err))
	assert.Contains(t, err.Error(), "costs")
}
