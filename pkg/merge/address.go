package merge

import (
	"context"
	"log/slog"
	"slices"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/registry"
)

// AddressEnricher links contact point addresses to the address registry.
type AddressEnricher struct {
	finder registry.AddressFinder
	logger *slog.Logger
}

// NewAddressEnricher creates an AddressEnricher. A nil logger uses slog.Default().
func NewAddressEnricher(finder registry.AddressFinder, logger *slog.Logger) *AddressEnricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &AddressEnricher{finder: finder, logger: logger}
}

// Enrich returns a copy of contactPoints where every address that does not
// refer to a registry address yet refers to its exact registry match.
// Addresses without a match, and lookups that fail, are left as they are.
func (enricher *AddressEnricher) Enrich(ctx context.Context, contactPoints []domain.ContactPoint) []domain.ContactPoint {
	enriched := slices.Clone(contactPoints)
	linked := 0
	for i, contactPoint := range enriched {
		address := contactPoint.Address
		if address == nil || !address.RefersTo.IsZero() {
			continue
		}
		municipality := address.Municipality.Get(domain.LanguageNl)
		street := address.Street.Get(domain.LanguageNl)
		if municipality == "" || street == "" || address.HouseNumber == "" {
			continue
		}

		match, err := enricher.finder.FindAddressMatch(ctx, municipality, street, address.HouseNumber, address.BoxNumber)
		if err != nil {
			enricher.logger.Warn("address lookup failed",
				"address", address.ID,
				"error", err)
			continue
		}
		if match == nil {
			continue
		}

		copied := *address
		copied.RefersTo = match.ID
		enriched[i].Address = &copied
		linked++
	}
	recordSideEffects(ctx, "addresses", linked)
	return enriched
}
