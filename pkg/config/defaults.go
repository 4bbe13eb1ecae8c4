package config

import "time"

// Default values for configuration fields.
const (
	// Validation defaults
	DefaultSchemaPath  = "schema.json"
	DefaultDataDir     = "Data"
	DefaultCheckCodes  = true
	DefaultMaxFileSize = int64(10 * 1024 * 1024)

	// Catalog defaults
	DefaultCatalogURL     = "https://nrd.api.nhtsa.dot.gov/nhtsa/nhtsadb/api/v1/ncodes"
	DefaultCatalogTimeout = 10 * time.Second
	DefaultSnapshotDir    = "Data/ProcessedFiles"

	// Report defaults
	DefaultReportOutputDir     = "Data/ProcessedFiles"
	DefaultReportIncludeHeader = true

	// History defaults
	DefaultHistorySQLitePath         = "data/history.db"
	DefaultHistorySQLiteMaxOpenConns = 10
	DefaultHistorySQLiteMaxIdleConns = 5
	DefaultHistorySQLiteWALMode      = true
	DefaultHistorySQLiteBusyTimeout  = 5 * time.Second

	// Watch defaults
	DefaultWatchDebounceInterval = 500 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "console"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "datatape"
	DefaultMetricsSubsystem = "validation"
)

// DefaultWatchExtensions are the file extensions watch mode reacts to.
var DefaultWatchExtensions = []string{".ev5"}

// Bool returns a pointer to v, for setting the presence-tracked bool
// fields of a Config.
func Bool(v bool) *bool {
	return &v
}

// ApplyDefaults applies default values to a Config struct. It sets
// defaults for any fields that have zero values and is idempotent.
// Bool fields whose default is true are pointers: nil means absent and
// takes the default, while an explicit false in the file is kept.
func ApplyDefaults(cfg *Config) {
	// Validation
	if cfg.Validation.SchemaPath == "" {
		cfg.Validation.SchemaPath = DefaultSchemaPath
	}
	if cfg.Validation.DataDir == "" {
		cfg.Validation.DataDir = DefaultDataDir
	}
	if cfg.Validation.CheckCodes == nil {
		cfg.Validation.CheckCodes = Bool(DefaultCheckCodes)
	}
	if cfg.Validation.MaxFileSize <= 0 {
		cfg.Validation.MaxFileSize = DefaultMaxFileSize
	}

	// Catalog
	if cfg.Catalog.URL == "" {
		cfg.Catalog.URL = DefaultCatalogURL
	}
	if cfg.Catalog.Timeout <= 0 {
		cfg.Catalog.Timeout = DefaultCatalogTimeout
	}
	if cfg.Catalog.SnapshotDir == "" {
		cfg.Catalog.SnapshotDir = DefaultSnapshotDir
	}

	// Report
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = DefaultReportOutputDir
	}
	if cfg.Report.IncludeHeader == nil {
		cfg.Report.IncludeHeader = Bool(DefaultReportIncludeHeader)
	}

	// History
	if cfg.History.SQLite.Path == "" {
		cfg.History.SQLite.Path = DefaultHistorySQLitePath
	}
	if cfg.History.SQLite.MaxOpenConns <= 0 {
		cfg.History.SQLite.MaxOpenConns = DefaultHistorySQLiteMaxOpenConns
	}
	if cfg.History.SQLite.MaxIdleConns <= 0 {
		cfg.History.SQLite.MaxIdleConns = DefaultHistorySQLiteMaxIdleConns
	}
	if cfg.History.SQLite.WALMode == nil {
		cfg.History.SQLite.WALMode = Bool(DefaultHistorySQLiteWALMode)
	}
	if cfg.History.SQLite.BusyTimeout <= 0 {
		cfg.History.SQLite.BusyTimeout = DefaultHistorySQLiteBusyTimeout
	}

	// Watch
	if cfg.Watch.DebounceInterval <= 0 {
		cfg.Watch.DebounceInterval = DefaultWatchDebounceInterval
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}

	// Telemetry
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Enabled == nil {
		cfg.Telemetry.Metrics.Enabled = Bool(DefaultMetricsEnabled)
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
