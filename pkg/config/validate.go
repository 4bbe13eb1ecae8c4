package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate checks a fully-defaulted Config for contradictions that
// would only surface later as confusing runtime failures.
func Validate(cfg *Config) error {
	if err := validateValidation(&cfg.Validation); err != nil {
		return err
	}
	if err := validateCatalog(&cfg.Catalog); err != nil {
		return err
	}
	if err := validateLogging(&cfg.Telemetry.Logging); err != nil {
		return err
	}
	return nil
}

func validateValidation(cfg *ValidationConfig) error {
	switch ext := strings.ToLower(filepath.Ext(cfg.SchemaPath)); ext {
	case ".json", ".yaml", ".yml":
	default:
		return fmt.Errorf("validation.schema_path: unsupported extension %q (want .json, .yaml or .yml)", ext)
	}
	if !cfg.CheckFieldTypes && (cfg.CheckCodes == nil || !*cfg.CheckCodes) {
		return fmt.Errorf("validation: at least one of check_field_types and check_codes must be enabled")
	}
	if cfg.MaxFileSize <= 0 {
		return fmt.Errorf("validation.max_file_size must be positive, got %d", cfg.MaxFileSize)
	}
	return nil
}

func validateCatalog(cfg *CatalogConfig) error {
	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("catalog.url %q is not a valid absolute URL", cfg.URL)
	}
	if cfg.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(cfg.RefreshSchedule); err != nil {
			return fmt.Errorf("catalog.refresh_schedule %q is not a valid cron expression: %w", cfg.RefreshSchedule, err)
		}
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level %q is invalid (want debug, info, warn or error)", cfg.Level)
	}
	switch cfg.Format {
	case "json", "text", "console":
	default:
		return fmt.Errorf("telemetry.logging.format %q is invalid (want json, text or console)", cfg.Format)
	}
	return nil
}
