// Package storage provides the SQLite backend for validation history.
//
// SQLite is a good fit for a local validation tool: a single file, no
// server, good read performance. The backend enables WAL mode by default
// so that queries do not block a recorder writing in the background, and
// it verifies the schema version on open.
//
// # Usage
//
//	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
//	    Path:         "data/history.db",
//	    MaxOpenConns: 10,
//	    MaxIdleConns: 5,
//	    WALMode:      true,
//	    BusyTimeout:  5 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// Records are stored in a single "runs" table; the per-run diagnostic
// list is serialized to JSON in a TEXT column.
package storage
