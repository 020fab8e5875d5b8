package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// BaseIRI prefixes every identifier minted by RandomIdentities.
const BaseIRI = "http://data.lblod.info/id/"

// Identity kinds used when minting fresh identifiers.
const (
	KindConcept              = "conceptual-public-service"
	KindInstance             = "public-service"
	KindRequirement          = "requirement"
	KindEvidence             = "evidence"
	KindProcedure            = "rule"
	KindWebsite              = "website"
	KindCost                 = "cost"
	KindFinancialAdvantage   = "financial-advantage"
	KindLegalResource        = "legal-resource"
	KindContactPoint         = "contact-point"
	KindAddress              = "address"
	KindDisplayConfiguration = "concept-display-configuration"
	KindCode                 = "code"
)

// IdentityGenerator mints a fresh (id, uuid) pair for an entity kind.
type IdentityGenerator interface {
	NewIdentity(kind string) (IRI, string)
}

// IdentityFunc adapts a function to IdentityGenerator.
type IdentityFunc func(kind string) (IRI, string)

// NewIdentity calls f(kind).
func (f IdentityFunc) NewIdentity(kind string) (IRI, string) {
	return f(kind)
}

// RandomIdentities mints ids of the form BaseIRI/<kind>/<uuid> from random uuids.
func RandomIdentities() IdentityGenerator {
	return IdentityFunc(func(kind string) (IRI, string) {
		id := uuid.NewString()
		return IRI(fmt.Sprintf("%s%s/%s", BaseIRI, kind, id)), id
	})
}

// SequentialIdentities mints predictable ids, numbering each kind separately.
// Useful in tests and dry runs.
func SequentialIdentities() IdentityGenerator {
	counters := make(map[string]int)
	return IdentityFunc(func(kind string) (IRI, string) {
		counters[kind]++
		id := fmt.Sprintf("%s-%d", kind, counters[kind])
		return IRI(BaseIRI + kind + "/" + id), id
	})
}
