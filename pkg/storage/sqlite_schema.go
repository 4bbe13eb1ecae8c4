package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the run history schema.
const Schema = `
-- Validation runs
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    tape TEXT NOT NULL,
    run_time TIMESTAMP NOT NULL,
    checked_fields INTEGER NOT NULL,
    finding_count INTEGER NOT NULL
);

-- Findings, ordered within a run by seq
CREATE TABLE IF NOT EXISTS findings (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    block TEXT NOT NULL,
    line INTEGER NOT NULL,
    col INTEGER NOT NULL,
    field TEXT NOT NULL,
    value TEXT NOT NULL,
    invalid_type TEXT NOT NULL,
    expected_codes TEXT NOT NULL,
    status TEXT NOT NULL,
    PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_runs_run_time ON runs(run_time DESC);
CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`
