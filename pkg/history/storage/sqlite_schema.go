package storage

// SchemaVersion is bumped whenever Schema changes shape. Opening a
// database written by a newer schema fails rather than corrupting it.
const SchemaVersion = 1

// Schema creates the tables and indexes for validation run history.
// Every statement is idempotent so it can run on every open.
const Schema = `
-- One row per validation run
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    file TEXT NOT NULL,
    valid BOOLEAN NOT NULL,
    error_count INTEGER NOT NULL,
    warning_count INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL,
    diagnostics TEXT
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Queries filter by age and file, and split valid from invalid runs
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_file ON runs(file);
CREATE INDEX IF NOT EXISTS idx_runs_valid ON runs(valid);
`

// InsertSchemaVersion records the running version, once.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion reads back the newest recorded version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
