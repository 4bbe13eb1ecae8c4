package config

import "time"

// Config is the root configuration structure for datatape.
type Config struct {
	// Validation configures the schema and validation policy.
	Validation ValidationConfig `yaml:"validation"`

	// Catalog configures the valid code catalog source.
	Catalog CatalogConfig `yaml:"catalog"`

	// Report configures the findings report sink.
	Report ReportConfig `yaml:"report"`

	// History configures persistence of validation runs.
	History HistoryConfig `yaml:"history"`

	// Watch configures watch mode.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ValidationConfig configures the validation engine.
type ValidationConfig struct {
	// SchemaPath is the field-position schema file (.json, .yaml, .yml).
	// Default: "schema.json"
	SchemaPath string `yaml:"schema_path"`

	// DataDir is the directory scanned for .ev5 files when no explicit
	// files are given.
	// Default: "Data"
	DataDir string `yaml:"data_dir"`

	// CheckFieldTypes flags schema fields whose type is absent from the
	// catalog.
	// Default: false
	CheckFieldTypes bool `yaml:"check_field_types"`

	// CheckCodes flags values outside their field's allowed code set.
	// A pointer so an explicit false in the file is distinguishable
	// from the field being absent.
	// Default: true
	CheckCodes *bool `yaml:"check_codes"`

	// MaxFileSize is the maximum tape size in bytes.
	// Default: 10MB
	MaxFileSize int64 `yaml:"max_file_size"`
}

// CatalogConfig configures the valid code catalog source.
type CatalogConfig struct {
	// URL is the catalog API endpoint.
	// Default: the NHTSA ncodes endpoint
	URL string `yaml:"url"`

	// Timeout is the per-request timeout for catalog fetches.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// SnapshotDir is where fetched catalog snapshots are written.
	// Default: "Data/ProcessedFiles"
	SnapshotDir string `yaml:"snapshot_dir"`

	// RefreshSchedule is a cron expression for catalog refresh in watch
	// mode. Empty disables scheduled refresh.
	RefreshSchedule string `yaml:"refresh_schedule"`
}

// ReportConfig configures the findings report sink.
type ReportConfig struct {
	// OutputDir is where per-tape report files are written.
	// Default: "Data/ProcessedFiles"
	OutputDir string `yaml:"output_dir"`

	// IncludeHeader includes the column header row in reports.
	// Default: true
	IncludeHeader *bool `yaml:"include_header"`
}

// HistoryConfig configures run history persistence.
type HistoryConfig struct {
	// Enabled turns run history on.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// SQLite configures the SQLite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig configures the SQLite history backend.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/history.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging.
	// Default: true
	WALMode *bool `yaml:"wal_mode"`

	// BusyTimeout is the wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// DebounceInterval is the quiet period after a file event before
	// the tape is validated.
	// Default: 500ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// Extensions lists file extensions to watch.
	// Default: [".ev5"]
	Extensions []string `yaml:"extensions"`
}

// TelemetryConfig configures observability.
type TelemetryConfig struct {
	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text", "console").
	// Default: "console"
	Format string `yaml:"format"`

	// AddSource includes file:line in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled turns metric collection on.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Namespace is the metric namespace.
	// Default: "datatape"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem.
	// Default: "validation"
	Subsystem string `yaml:"subsystem"`

	// ListenAddress serves /metrics in watch mode when non-empty.
	ListenAddress string `yaml:"listen_address"`
}
