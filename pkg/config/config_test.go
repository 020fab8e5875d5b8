package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "servicecatalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, vocabulary.GraphPublic, cfg.Graphs.Public)
	assert.Equal(t, 3, cfg.Batch.MaxAttempts)
	assert.Equal(t, 60*time.Second, cfg.SPARQL.Timeout)

	// Every call returns a fresh value.
	cfg.Batch.MaxAttempts = 9
	assert.Equal(t, 3, Default().Batch.MaxAttempts)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
sparql:
  query_endpoint: http://virtuoso:8890/sparql
  batch_size: 50
  timeout: 5s
  headers:
    mu-auth-sudo: "true"
batch:
  max_attempts: 5
  retry_delay: 250ms
logging:
  level: debug
  format: json
metrics:
  addr: "localhost:9100"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://virtuoso:8890/sparql", cfg.SPARQL.QueryEndpoint)
	assert.Equal(t, 50, cfg.SPARQL.BatchSize)
	assert.Equal(t, 5*time.Second, cfg.SPARQL.Timeout)
	assert.Equal(t, map[string]string{"mu-auth-sudo": "true"}, cfg.SPARQL.Headers)
	assert.Equal(t, 5, cfg.Batch.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Batch.RetryDelay)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "localhost:9100", cfg.Metrics.Addr)

	// Values absent from the file keep their defaults.
	assert.Equal(t, Default().Graphs, cfg.Graphs)
	assert.Equal(t, Default().Registry.CodeEndpoint, cfg.Registry.CodeEndpoint)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "sparql:\n  query_endpoint: http://virtuoso:8890/sparql\n")
	t.Setenv("SERVICECATALOG_SPARQL_ENDPOINT", "http://database:8890/sparql")
	t.Setenv("SERVICECATALOG_ADDRESS_API_KEY", "secret")
	t.Setenv("SERVICECATALOG_BATCH_MAX_ATTEMPTS", "7")
	t.Setenv("SERVICECATALOG_BATCH_RETRY_DELAY", "2s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://database:8890/sparql", cfg.SPARQL.QueryEndpoint)
	assert.Equal(t, "secret", cfg.Registry.AddressAPIKey)
	assert.Equal(t, 7, cfg.Batch.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Batch.RetryDelay)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "sparql: [",
			wantErr: "parsing config file",
		},
		{
			name:    "invalid endpoint",
			content: "sparql:\n  query_endpoint: not a url\n",
			wantErr: "Config.SPARQL.QueryEndpoint fails \"url\"",
		},
		{
			name:    "no attempts",
			content: "batch:\n  max_attempts: 0\n",
			wantErr: "Config.Batch.MaxAttempts fails \"min\"",
		},
		{
			name:    "unknown log level",
			content: "logging:\n  level: verbose\n",
			wantErr: "Config.Logging.Level fails \"oneof\"",
		},
		{
			name:    "bad env attempts",
			env:     map[string]string{"SERVICECATALOG_BATCH_MAX_ATTEMPTS": "many"},
			wantErr: "SERVICECATALOG_BATCH_MAX_ATTEMPTS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for name, value := range tt.env {
				t.Setenv(name, value)
			}
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_WithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().SPARQL.QueryEndpoint, cfg.SPARQL.QueryEndpoint)
}

func TestLoggingConfig_NewLogger(t *testing.T) {
	var buffer bytes.Buffer
	logger := LoggingConfig{Level: "warn", Format: "json"}.NewLogger(&buffer)

	logger.Info("hidden")
	logger.Warn("shown", "snapshot", "s1")

	assert.NotContains(t, buffer.String(), "hidden")
	assert.Contains(t, buffer.String(), `"msg":"shown"`)
	assert.Contains(t, buffer.String(), `"snapshot":"s1"`)
}
