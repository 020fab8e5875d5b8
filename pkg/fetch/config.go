// Package fetch pulls the triple closure of a set of root identifiers out of
// one named graph, breadth first, following reference-valued predicates.
package fetch

import (
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// DefaultMaxRounds bounds the number of breadth-first rounds of one fetch.
// Catalog aggregates are at most four levels deep.
const DefaultMaxRounds = 16

// Config holds configuration shared by every fetch of a Fetcher.
type Config struct {
	// MaxRounds is the maximum number of breadth-first rounds. A fetch that
	// still has a non-empty frontier after MaxRounds fails. Zero disables
	// the guard.
	MaxRounds int `yaml:"max_rounds" validate:"gte=0"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{MaxRounds: DefaultMaxRounds}
}

// Options are the recursion rules of one fetch.
type Options struct {
	// DoNotQuery predicates are excluded from every round's query.
	DoNotQuery []string

	// StopAt predicates mark recursion boundaries: their objects are kept in
	// the result but never expanded.
	StopAt []string

	// ForbiddenTypes fail the fetch when any expanded id carries one of them.
	ForbiddenTypes []string
}

// linkPredicates point at resources owned by other aggregates or code lists.
var linkPredicates = []string{
	vocabulary.ProductType,
	vocabulary.TargetAudience,
	vocabulary.Theme,
	vocabulary.CompetentAuthorityLevel,
	vocabulary.ExecutingAuthorityLevel,
	vocabulary.PublicationMedium,
	vocabulary.YourEuropeCategory,
	vocabulary.Language,
	vocabulary.ConceptTag,
	vocabulary.SnapshotType,
	vocabulary.Status,
	vocabulary.ReviewStatus,
	vocabulary.PublicationStatus,
	vocabulary.CompetentAuthority,
	vocabulary.ExecutingAuthority,
	vocabulary.Spatial,
	vocabulary.CreatedBy,
	vocabulary.Source,
	vocabulary.ConceptSnapshotSource,
	vocabulary.IsVersionOf,
	vocabulary.RefersTo,
	vocabulary.LatestSnapshot,
	vocabulary.PreviousSnapshot,
	vocabulary.LatestFunctionalChange,
}

func withLinks(extra ...string) []string {
	predicates := make([]string, 0, len(linkPredicates)+len(extra))
	predicates = append(predicates, linkPredicates...)
	return append(predicates, extra...)
}

// ConceptOptions returns the rules for fetching a canonical concept.
func ConceptOptions() Options {
	return Options{
		DoNotQuery: []string{vocabulary.HasDisplayConfiguration},
		StopAt:     withLinks(),
		ForbiddenTypes: []string{
			vocabulary.ClassCode,
			vocabulary.ClassBestuurseenheid,
			vocabulary.ClassConceptSnapshot,
			vocabulary.ClassInstance,
		},
	}
}

// ConceptSnapshotOptions returns the rules for fetching a concept snapshot.
func ConceptSnapshotOptions() Options {
	return Options{
		StopAt: withLinks(),
		ForbiddenTypes: []string{
			vocabulary.ClassCode,
			vocabulary.ClassBestuurseenheid,
			vocabulary.ClassConcept,
		},
	}
}

// InstanceOptions returns the rules for fetching a canonical instance.
func InstanceOptions() Options {
	return Options{
		DoNotQuery: []string{vocabulary.HasDisplayConfiguration},
		StopAt:     withLinks(),
		ForbiddenTypes: []string{
			vocabulary.ClassCode,
			vocabulary.ClassBestuurseenheid,
			vocabulary.ClassConcept,
			vocabulary.ClassConceptSnapshot,
		},
	}
}

// InstanceSnapshotOptions returns the rules for fetching an instance snapshot.
func InstanceSnapshotOptions() Options {
	return Options{
		StopAt: withLinks(),
		ForbiddenTypes: []string{
			vocabulary.ClassCode,
			vocabulary.ClassBestuurseenheid,
			vocabulary.ClassInstance,
		},
	}
}
