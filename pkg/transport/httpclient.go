// Package transport provides the HTTP client wrappers shared by the remote
// collaborators: the graph store and the code and address registries.
package transport

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// HTTPClient is an interface matching the Do method of *http.Client.
// This allows injection of mock clients for testing and custom transports.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RateLimitedHTTPClient wraps an HTTPClient with a token-bucket rate limiter.
// Waiting honours the request context, so a cancelled request never blocks on
// the limiter.
type RateLimitedHTTPClient struct {
	underlying HTTPClient
	limiter    *rate.Limiter
}

// NewRateLimitedHTTPClient creates a rate-limited HTTP client allowing
// requestsPerSecond sustained requests with bursts of up to burst requests.
// A non-positive requestsPerSecond disables limiting.
func NewRateLimitedHTTPClient(underlying HTTPClient, requestsPerSecond float64, burst int) *RateLimitedHTTPClient {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedHTTPClient{
		underlying: underlying,
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// Do executes an HTTP request, waiting for the rate limiter before sending.
func (rateLimitedClient *RateLimitedHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if err := rateLimitedClient.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return rateLimitedClient.underlying.Do(req)
}

// TimeoutHTTPClient is an *http.Client with a configurable timeout and a
// bounded number of redirects.
type TimeoutHTTPClient struct {
	client *http.Client
}

// NewTimeoutHTTPClient creates an HTTP client with the specified timeout.
// A zero timeout means no timeout.
func NewTimeoutHTTPClient(timeout time.Duration) *TimeoutHTTPClient {
	return &TimeoutHTTPClient{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Allow up to 10 redirects
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// Do executes an HTTP request with the configured timeout.
func (timeoutClient *TimeoutHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return timeoutClient.client.Do(req)
}

// Config holds the connection settings shared by the remote clients.
type Config struct {
	// Timeout bounds every request. Zero disables the timeout.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`

	// RequestsPerSecond caps the sustained request rate. Zero disables limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`

	// Burst is the number of requests allowed above the sustained rate.
	Burst int `yaml:"burst" validate:"gte=0"`
}

// New builds the client described by config: a timeout client wrapped with
// rate limiting. underlying replaces the timeout client when non-nil.
func New(config Config, underlying HTTPClient) HTTPClient {
	if underlying == nil {
		underlying = NewTimeoutHTTPClient(config.Timeout)
	}
	if config.RequestsPerSecond <= 0 {
		return underlying
	}
	return NewRateLimitedHTTPClient(underlying, config.RequestsPerSecond, config.Burst)
}
