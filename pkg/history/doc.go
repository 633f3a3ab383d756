// Package history provides persistent storage of validation runs. Each run
// of the validator can be recorded so that past results are queryable and
// older records are pruned on a schedule.
//
// # Architecture
//
// The history system consists of three layers:
//
//  1. Recorder - enqueues records and writes them asynchronously
//  2. Storage Backend - persists records (SQLite)
//  3. Retention - prunes records past the configured age on a cron schedule
//
// # Records
//
// Each record captures:
//   - The validated file path and run outcome
//   - Error and warning counts plus the full diagnostic list
//   - Run duration and creation timestamp
//   - A UUID identifying the run
//
// # Basic Usage
//
//	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
//	    Path:    "data/history.db",
//	    WALMode: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	recorder := history.NewRecorder(store, nil)
//	defer recorder.Close()
//
//	// Record hands the write to a background worker and returns
//	record := history.NewRecord(path, result.Valid, result.Diagnostics, elapsed)
//	if err := recorder.Record(ctx, record); err != nil {
//	    log.Printf("history: %v", err)
//	}
//
//	// List recent failures
//	records, err := store.Query(ctx, &history.Query{OnlyInvalid: true, Limit: 20})
package history
