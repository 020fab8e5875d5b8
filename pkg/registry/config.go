package registry

import (
	"time"

	"github.com/coolbeans/servicecatalog/pkg/transport"
)

// DefaultCodeEndpoint is the public SPARQL endpoint of the organisation registry.
const DefaultCodeEndpoint = "https://data.vlaanderen.be/sparql"

// Config holds the registry endpoints.
type Config struct {
	CodeEndpoint    string `yaml:"code_endpoint" validate:"required,url"`
	AddressEndpoint string `yaml:"address_endpoint" validate:"required,url"`
	AddressAPIKey   string `yaml:"address_api_key"`

	transport.Config `yaml:",inline"`
}

// DefaultConfig returns the public registry endpoints with a modest rate limit.
func DefaultConfig() Config {
	return Config{
		CodeEndpoint:    DefaultCodeEndpoint,
		AddressEndpoint: DefaultAddressEndpoint,
		Config: transport.Config{
			Timeout:           30 * time.Second,
			RequestsPerSecond: 5,
			Burst:             1,
		},
	}
}
