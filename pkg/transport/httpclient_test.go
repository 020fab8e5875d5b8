package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockHTTPClient implements HTTPClient for testing.
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
	calls  int
}

func (mockClient *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	mockClient.calls++
	return mockClient.DoFunc(req)
}

func okClient() *MockHTTPClient {
	return &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		},
	}
}

func TestRateLimitedHTTPClient_PassesThrough(t *testing.T) {
	mockClient := okClient()
	client := NewRateLimitedHTTPClient(mockClient, 1000, 5)

	for i := 0; i < 3; i++ {
		req, err := http.NewRequest(http.MethodGet, "http://example.org", nil)
		require.NoError(t, err)
		resp, err := client.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 3, mockClient.calls)
}

func TestRateLimitedHTTPClient_CancelledContext(t *testing.T) {
	mockClient := okClient()
	client := NewRateLimitedHTTPClient(mockClient, 0.001, 1)

	first, err := http.NewRequest(http.MethodGet, "http://example.org", nil)
	require.NoError(t, err)
	_, err = client.Do(first)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	second, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.org", nil)
	require.NoError(t, err)
	_, err = client.Do(second)
	assert.Error(t, err)
	assert.Equal(t, 1, mockClient.calls)
}

func TestTimeoutHTTPClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewTimeoutHTTPClient(5 * time.Second)
	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestNew(t *testing.T) {
	mockClient := okClient()

	t.Run("no rate limit returns underlying", func(t *testing.T) {
		client := New(Config{}, mockClient)
		assert.Same(t, mockClient, client)
	})

	t.Run("rate limit wraps underlying", func(t *testing.T) {
		client := New(Config{RequestsPerSecond: 10, Burst: 2}, mockClient)
		_, ok := client.(*RateLimitedHTTPClient)
		assert.True(t, ok)
	})

	t.Run("nil underlying uses timeout client", func(t *testing.T) {
		client := New(Config{Timeout: time.Second}, nil)
		_, ok := client.(*TimeoutHTTPClient)
		assert.True(t, ok)
	})
}
