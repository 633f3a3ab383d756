package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Ovid/cyclonedx-parser/pkg/history"
)

// SQLiteConfig tunes the SQLite backend. Zero values are not usable
// directly; DefaultSQLiteConfig supplies working settings.
type SQLiteConfig struct {
	// Path locates the database file. Parent directories must exist.
	Path string

	// MaxOpenConns caps concurrent connections to the file.
	MaxOpenConns int

	// MaxIdleConns caps connections kept open between queries.
	MaxIdleConns int

	// WALMode switches the journal to write-ahead logging, letting
	// reads proceed during a write.
	WALMode bool

	// BusyTimeout is how long a statement waits on a locked database
	// before giving up.
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns settings suited to a single local CLI:
// WAL on, a small pool, five second lock patience.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/history.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage is the durable history.Storage backend, one database
// file per history.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens or creates the database at config.Path and
// brings its schema up to date. A nil config falls back to
// DefaultSQLiteConfig.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "history.storage.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, history.NewStorageError("sqlite", "open", err)
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

	logger.Debug("SQLite storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize applies pragmas, creates the schema, and refuses to use a
// database recorded under a different schema version.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return history.NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return history.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return history.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return history.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return history.NewStorageError("sqlite", "get_schema_version", err)
	}

	if version != SchemaVersion {
		return history.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists a validation record to the database.
func (s *SQLiteStorage) Store(ctx context.Context, record *history.Record) error {
	diagnostics, err := json.Marshal(record.Diagnostics)
	if err != nil {
		return history.NewStorageError("sqlite", "marshal_diagnostics", err)
	}

	query := `
		INSERT INTO runs (
			id, file, valid, error_count, warning_count, duration_ms, created_at, diagnostics
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.File, record.Valid,
		record.ErrorCount, record.WarningCount,
		record.Duration.Milliseconds(), record.CreatedAt,
		string(diagnostics),
	)
	if err != nil {
		return history.NewStorageError("sqlite", "store", err)
	}

	return nil
}

// Query retrieves validation records matching the query filters, newest first.
func (s *SQLiteStorage) Query(ctx context.Context, query *history.Query) ([]*history.Record, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT id, file, valid, error_count, warning_count, duration_ms, created_at, diagnostics FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}
	sqlQuery += " ORDER BY created_at DESC"

	limit := 100
	if query.Limit > 0 {
		limit = query.Limit
	}
	sqlQuery += fmt.Sprintf(" LIMIT %d", limit)

	if query.Offset > 0 {
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, history.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*history.Record{}
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, history.NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, history.NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of validation records matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *history.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, history.NewStorageError("sqlite", "count", err)
	}

	return count, nil
}

// Delete removes matching records and reports how many went. An empty
// query deletes everything.
func (s *SQLiteStorage) Delete(ctx context.Context, query *history.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "DELETE FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, history.NewStorageError("sqlite", "delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, history.NewStorageError("sqlite", "delete", err)
	}

	return count, nil
}

// Close shuts the connection pool down.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return history.NewStorageError("sqlite", "close", err)
	}
	s.logger.Debug("SQLite storage closed")
	return nil
}

// buildWhereClause turns the set filters into SQL conditions and their
// placeholder arguments. The "WHERE" keyword itself is the caller's.
func buildWhereClause(query *history.Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if query.Since != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *query.Since)
	}
	if query.Until != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *query.Until)
	}
	if query.File != "" {
		conditions = append(conditions, "file = ?")
		args = append(args, query.File)
	}
	if query.OnlyInvalid {
		conditions = append(conditions, "valid = 0")
	}

	return strings.Join(conditions, " AND "), args
}

// scanRow scans a database row into a history.Record.
func scanRow(rows *sql.Rows) (*history.Record, error) {
	var record history.Record
	var durationMs int64
	var diagnostics sql.NullString

	err := rows.Scan(
		&record.ID, &record.File, &record.Valid,
		&record.ErrorCount, &record.WarningCount,
		&durationMs, &record.CreatedAt, &diagnostics,
	)
	if err != nil {
		return nil, err
	}

	record.Duration = time.Duration(durationMs) * time.Millisecond

	if diagnostics.Valid && diagnostics.String != "" {
		if err := json.Unmarshal([]byte(diagnostics.String), &record.Diagnostics); err != nil {
			return nil, err
		}
	}

	return &record, nil
}
