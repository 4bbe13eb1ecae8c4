package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/arundhati-c/datatapevalidation/pkg/ev5/report"
)

// SQLiteConfig contains configuration for the SQLite history backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/history.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite history backend. It initializes
// the database schema and enables WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "storage.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite history initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return NewStorageError("sqlite", "enable_foreign_keys", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec("INSERT OR IGNORE INTO schema_version (version) VALUES (?)", SchemaVersion); err != nil {
		return NewStorageError("sqlite", "set_schema_version", err)
	}

	return nil
}

// RecordRun persists a run and its findings in one transaction.
func (s *SQLiteStorage) RecordRun(ctx context.Context, run *RunRecord) error {
	if run.ID == "" {
		return NewStorageError("sqlite", "record", fmt.Errorf("run ID is empty"))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStorageError("sqlite", "record", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, tape, run_time, checked_fields, finding_count)
		 VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Tape, run.RunTime.UTC(), run.CheckedFields, len(run.Findings),
	)
	if err != nil {
		return NewStorageError("sqlite", "record", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO findings (run_id, seq, block, line, col, field, value, invalid_type, expected_codes, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return NewStorageError("sqlite", "record", err)
	}
	defer stmt.Close()

	for seq, f := range run.Findings {
		_, err := stmt.ExecContext(ctx,
			run.ID, seq, f.Block, f.Line, f.Column, f.Field, f.Value,
			string(f.Kind), f.ExpectedCodes, f.Status,
		)
		if err != nil {
			return NewStorageError("sqlite", "record", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return NewStorageError("sqlite", "record", err)
	}

	s.logger.Debug("run recorded",
		"run_id", run.ID,
		"tape", run.Tape,
		"findings", len(run.Findings),
	)
	return nil
}

// ListRuns returns up to limit runs, most recent first.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]*RunRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tape, run_time, checked_fields, finding_count
		 FROM runs ORDER BY run_time DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	var runs []*RunRecord
	for rows.Next() {
		var run RunRecord
		if err := rows.Scan(&run.ID, &run.Tape, &run.RunTime, &run.CheckedFields, &run.FindingCount); err != nil {
			return nil, NewStorageError("sqlite", "list", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}

	return runs, nil
}

// RunFindings returns the findings of one run in recorded order.
func (s *SQLiteStorage) RunFindings(ctx context.Context, runID string) ([]report.Finding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT block, line, col, field, value, invalid_type, expected_codes, status
		 FROM findings WHERE run_id = ? ORDER BY seq`, runID,
	)
	if err != nil {
		return nil, NewStorageError("sqlite", "findings", err)
	}
	defer rows.Close()

	var findings []report.Finding
	for rows.Next() {
		var f report.Finding
		var kind string
		if err := rows.Scan(&f.Block, &f.Line, &f.Column, &f.Field, &f.Value, &kind, &f.ExpectedCodes, &f.Status); err != nil {
			return nil, NewStorageError("sqlite", "findings", err)
		}
		f.Kind = report.Kind(kind)
		findings = append(findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "findings", err)
	}

	return findings, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
