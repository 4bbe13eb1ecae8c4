package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified
// path. It applies default values, validates the configuration, and
// returns any errors. A missing file is not an error: defaults are a
// complete working configuration.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	case os.IsNotExist(err):
		// Run entirely on defaults.
	default:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Variables follow the naming
// convention DATATAPE_SECTION_FIELD (e.g. DATATAPE_CATALOG_URL) and
// always take precedence over file values.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	// Validation overrides
	if val := os.Getenv("DATATAPE_VALIDATION_SCHEMA_PATH"); val != "" {
		cfg.Validation.SchemaPath = val
	}
	if val := os.Getenv("DATATAPE_VALIDATION_DATA_DIR"); val != "" {
		cfg.Validation.DataDir = val
	}
	if val := os.Getenv("DATATAPE_VALIDATION_CHECK_FIELD_TYPES"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Validation.CheckFieldTypes = b
		}
	}
	if val := os.Getenv("DATATAPE_VALIDATION_CHECK_CODES"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Validation.CheckCodes = Bool(b)
		}
	}

	// Catalog overrides
	if val := os.Getenv("DATATAPE_CATALOG_URL"); val != "" {
		cfg.Catalog.URL = val
	}
	if val := os.Getenv("DATATAPE_CATALOG_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Catalog.Timeout = d
		}
	}
	if val := os.Getenv("DATATAPE_CATALOG_REFRESH_SCHEDULE"); val != "" {
		cfg.Catalog.RefreshSchedule = val
	}

	// Report overrides
	if val := os.Getenv("DATATAPE_REPORT_OUTPUT_DIR"); val != "" {
		cfg.Report.OutputDir = val
	}

	// History overrides
	if val := os.Getenv("DATATAPE_HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv("DATATAPE_HISTORY_SQLITE_PATH"); val != "" {
		cfg.History.SQLite.Path = val
	}

	// Telemetry overrides
	if val := os.Getenv("DATATAPE_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("DATATAPE_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("DATATAPE_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
}
