package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/transport"
)

// DefaultAddressEndpoint is the address match API of the Flemish base registries.
const DefaultAddressEndpoint = "https://api.basisregisters.vlaanderen.be/v2/adresmatch"

// exactScore is the score the address registry gives a match on every field.
const exactScore = 100

// AddressMatch is an address as the registry knows it.
type AddressMatch struct {
	ID           domain.IRI
	Municipality string
	PostalCode   string
	Street       string
	HouseNumber  string
	BoxNumber    string
}

// AddressFinder matches free-form addresses against the address registry.
type AddressFinder interface {
	FindAddressMatch(ctx context.Context, municipality, street, houseNumber, boxNumber string) (*AddressMatch, error)
}

// AddressRegistry is the HTTP client of the address match API.
type AddressRegistry struct {
	httpClient transport.HTTPClient
	endpoint   string
	apiKey     string
	logger     *slog.Logger
}

var _ AddressFinder = (*AddressRegistry)(nil)

// NewAddressRegistry creates an AddressRegistry for endpoint. An empty
// endpoint uses DefaultAddressEndpoint.
func NewAddressRegistry(endpoint, apiKey string, httpClient transport.HTTPClient, logger *slog.Logger) *AddressRegistry {
	if endpoint == "" {
		endpoint = DefaultAddressEndpoint
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AddressRegistry{
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     apiKey,
		logger:     logger,
	}
}

type addressMatchResponse struct {
	Matches []struct {
		Identificator struct {
			ID string `json:"id"`
		} `json:"identificator"`
		Gemeente struct {
			Gemeentenaam geografischeNaam `json:"gemeentenaam"`
		} `json:"gemeente"`
		Postinfo struct {
			ObjectID string `json:"objectId"`
		} `json:"postinfo"`
		Straatnaam struct {
			Straatnaam geografischeNaam `json:"straatnaam"`
		} `json:"straatnaam"`
		Huisnummer string  `json:"huisnummer"`
		Busnummer  string  `json:"busnummer"`
		Score      float64 `json:"score"`
	} `json:"adresMatches"`
}

type geografischeNaam struct {
	GeografischeNaam struct {
		Spelling string `json:"spelling"`
	} `json:"geografischeNaam"`
}

// FindAddressMatch returns the exact registry match for the address, or nil
// when the registry has none.
func (registry *AddressRegistry) FindAddressMatch(
	ctx context.Context,
	municipality, street, houseNumber, boxNumber string,
) (*AddressMatch, error) {
	params := url.Values{}
	params.Set("gemeentenaam", municipality)
	params.Set("straatnaam", street)
	params.Set("huisnummer", houseNumber)
	if boxNumber != "" {
		params.Set("busnummer", boxNumber)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, registry.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, domain.NewSystemError(err, "failed to build address match request")
	}
	req.Header.Set("Accept", "application/json")
	if registry.apiKey != "" {
		req.Header.Set("x-api-key", registry.apiKey)
	}

	resp, err := registry.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewSystemError(err, "address match request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, domain.NewSystemError(nil, "address registry returned HTTP %d: %s", resp.StatusCode, body)
	}

	var response addressMatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, domain.NewSystemError(err, "failed to decode address match response")
	}

	for _, match := range response.Matches {
		if match.Score < exactScore || match.Identificator.ID == "" {
			continue
		}
		return &AddressMatch{
			ID:           domain.IRI(match.Identificator.ID),
			Municipality: match.Gemeente.Gemeentenaam.GeografischeNaam.Spelling,
			PostalCode:   match.Postinfo.ObjectID,
			Street:       match.Straatnaam.Straatnaam.GeografischeNaam.Spelling,
			HouseNumber:  match.Huisnummer,
			BoxNumber:    match.Busnummer,
		}, nil
	}

	registry.logger.Debug("no exact address match",
		"municipality", municipality, "street", street, "houseNumber", houseNumber,
		"candidates", len(response.Matches))
	return nil, nil
}

// String describes the registry for logs.
func (registry *AddressRegistry) String() string {
	return fmt.Sprintf("address-registry(%s)", registry.endpoint)
}
