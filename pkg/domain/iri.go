package domain

import (
	"sort"
	"strings"
)

// IRI is an opaque identifier used as primary key for every aggregate and
// nested entity. Equality and ordering are value based.
type IRI string

// NewIRI validates value and returns it as an IRI.
func NewIRI(value string) (IRI, error) {
	if strings.TrimSpace(value) == "" {
		return "", NewInvariantError("iri should not be blank")
	}
	return IRI(value), nil
}

// String returns the IRI value.
func (iri IRI) String() string {
	return string(iri)
}

// IsZero reports whether the IRI is unset.
func (iri IRI) IsZero() bool {
	return iri == ""
}

// SortedSet returns a sorted copy of values without duplicates or empty
// entries. It returns nil for an empty result so that decoded and authored
// values compare equal.
func SortedSet[T ~string](values []T) []T {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[T]bool, len(values))
	result := make([]T, 0, len(values))
	for _, value := range values {
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		result = append(result, value)
	}
	if len(result) == 0 {
		return nil
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func requireIRI(field string, iri IRI) error {
	if strings.TrimSpace(string(iri)) == "" {
		return NewInvariantError("%s should not be blank", field)
	}
	return nil
}
