// Package config loads the application configuration from YAML with
// environment overrides for deployment-specific values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lucasinocencio1/surf-forecast/internal/database"
	"github.com/lucasinocencio1/surf-forecast/internal/forecast"
	"github.com/lucasinocencio1/surf-forecast/internal/scoring"
)

// DefaultPath is consulted when SURF_CONFIG is unset.
const DefaultPath = "configs/config.yaml"

// Duration wraps time.Duration so YAML values like "10s" decode;
// yaml.v3 cannot unmarshal a duration string on its own.
type Duration time.Duration

// UnmarshalYAML parses the scalar with time.ParseDuration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config aggregates every tunable the binaries share. Scoring weights
// live here so they stay policy rather than code.
type Config struct {
	Server   ServerConfig     `yaml:"server"`
	Database DatabaseConfig   `yaml:"database"`
	Fetch    forecast.Options `yaml:"fetch"`
	Scoring  scoring.Config   `yaml:"scoring"`
	Tides    TidesConfig      `yaml:"tides"`
	Export   ExportConfig     `yaml:"export"`
	Log      LogConfig        `yaml:"log"`
}

// ServerConfig controls the REST backend.
type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
	IdleTimeout  Duration `yaml:"idle_timeout"`
}

// DatabaseConfig points at the sqlite file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// TidesConfig enables the optional WorldTides integration.
type TidesConfig struct {
	APIKey string `yaml:"api_key"`
}

// ExportConfig controls CSV history exports.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig selects log verbosity and output shape.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// Default returns the stock configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration(10 * time.Second),
			WriteTimeout: Duration(30 * time.Second),
			IdleTimeout:  Duration(60 * time.Second),
		},
		Database: DatabaseConfig{Path: database.DBPath()},
		Fetch:    forecast.DefaultOptions(),
		Scoring:  scoring.DefaultConfig(),
		Export:   ExportConfig{Dir: "data"},
		Log:      LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads configuration from a YAML file and environment variables.
// A missing file is not an error: defaults apply, then env overrides.
func Load() (*Config, error) {
	cfg := Default()

	path := os.Getenv("SURF_CONFIG")
	explicit := path != ""
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file; run on defaults.
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides lets deployments adjust addresses, paths and keys
// without editing the YAML file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SURF_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("SURF_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("WORLDTIDES_API_KEY"); v != "" {
		c.Tides.APIKey = v
	}
	if v := os.Getenv("SURF_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v := os.Getenv("SURF_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SURF_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

// Validate checks every section, so bad tuning fails at startup rather
// than mid-fetch.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Export.Dir == "" {
		return fmt.Errorf("export.dir is required")
	}
	if err := c.Fetch.Validate(); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	if err := c.Scoring.Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format %q must be json or console", c.Log.Format)
	}
	return nil
}
