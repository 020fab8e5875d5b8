// Package config loads the configuration of the reconciliation service:
// built-in defaults, overlaid by an optional YAML file, overlaid by
// SERVICECATALOG_* environment variables, then validated.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/coolbeans/servicecatalog/pkg/batch"
	"github.com/coolbeans/servicecatalog/pkg/fetch"
	"github.com/coolbeans/servicecatalog/pkg/registry"
	"github.com/coolbeans/servicecatalog/pkg/repository"
	"github.com/coolbeans/servicecatalog/pkg/sparql"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SERVICECATALOG_"

// Config holds the configuration of every component.
type Config struct {
	SPARQL   sparql.Config     `yaml:"sparql"`
	Graphs   repository.Graphs `yaml:"graphs"`
	Fetch    fetch.Config      `yaml:"fetch"`
	Batch    batch.Config      `yaml:"batch"`
	Registry registry.Config   `yaml:"registry"`
	Logging  LoggingConfig     `yaml:"logging"`
	Metrics  MetricsConfig     `yaml:"metrics"`
}

// LoggingConfig selects the log level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address of /metrics. Empty disables the endpoint.
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// Default returns a Config with default values.
func Default() *Config {
	store := sparql.DefaultConfig()
	store.Timeout = 60 * time.Second

	return &Config{
		SPARQL:   store,
		Graphs:   repository.DefaultGraphs(),
		Fetch:    fetch.DefaultConfig(),
		Batch:    batch.DefaultConfig(),
		Registry: registry.DefaultConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from the defaults, the YAML file at path when
// path is not empty, and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides(lookup func(string) (string, bool)) error {
	overrides := map[string]*string{
		"SPARQL_ENDPOINT":        &c.SPARQL.QueryEndpoint,
		"SPARQL_UPDATE_ENDPOINT": &c.SPARQL.UpdateEndpoint,
		"CODE_ENDPOINT":          &c.Registry.CodeEndpoint,
		"ADDRESS_ENDPOINT":       &c.Registry.AddressEndpoint,
		"ADDRESS_API_KEY":        &c.Registry.AddressAPIKey,
		"LOG_LEVEL":              &c.Logging.Level,
		"LOG_FORMAT":             &c.Logging.Format,
		"METRICS_ADDR":           &c.Metrics.Addr,
	}
	for name, target := range overrides {
		if value, ok := lookup(EnvPrefix + name); ok {
			*target = value
		}
	}

	if value, ok := lookup(EnvPrefix + "BATCH_MAX_ATTEMPTS"); ok {
		attempts, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing %sBATCH_MAX_ATTEMPTS: %w", EnvPrefix, err)
		}
		c.Batch.MaxAttempts = attempts
	}
	if value, ok := lookup(EnvPrefix + "BATCH_RETRY_DELAY"); ok {
		delay, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("parsing %sBATCH_RETRY_DELAY: %w", EnvPrefix, err)
		}
		c.Batch.RetryDelay = delay
	}
	return nil
}

// Validate checks every field against its validation tags.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validating config: %w", err)
	}
	problems := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		problems = append(problems, fmt.Sprintf("%s fails %q", fieldError.Namespace(), fieldError.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
}

// NewLogger returns a logger writing to w as configured.
func (logging LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logging.Level)); err != nil {
		level = slog.LevelInfo
	}
	options := &slog.HandlerOptions{Level: level}

	if logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, options))
	}
	return slog.New(slog.NewTextHandler(w, options))
}
