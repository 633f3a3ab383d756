package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Ovid/cyclonedx-parser/pkg/bom/diag"
)

// Record captures the outcome of a single validation run. Records are
// persisted so that past runs can be listed, inspected, and pruned.
type Record struct {
	// ID is a UUID v4 assigned when the record is created.
	ID string `json:"id"`

	// File is the path of the validated document as given by the caller.
	File string `json:"file"`

	// Valid reports whether the document passed validation.
	Valid bool `json:"valid"`

	// ErrorCount is the number of error diagnostics produced.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warning diagnostics produced.
	WarningCount int `json:"warning_count"`

	// Duration is the wall-clock time of the run.
	Duration time.Duration `json:"duration"`

	// CreatedAt is when the record was created.
	CreatedAt time.Time `json:"created_at"`

	// Diagnostics holds the full diagnostic list of the run.
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

// NewRecord creates a record for a completed validation run. The ID and
// creation time are assigned here; counts are derived from the diagnostics.
func NewRecord(file string, valid bool, diagnostics []diag.Diagnostic, duration time.Duration) *Record {
	record := &Record{
		ID:          uuid.New().String(),
		File:        file,
		Valid:       valid,
		Duration:    duration,
		CreatedAt:   time.Now(),
		Diagnostics: diagnostics,
	}
	for _, d := range diagnostics {
		switch d.Severity {
		case diag.SeverityError:
			record.ErrorCount++
		case diag.SeverityWarning:
			record.WarningCount++
		}
	}
	return record
}

// Query defines filter parameters for querying validation records.
// Results are always ordered newest first.
type Query struct {
	// Since filters records created at or after this time.
	Since *time.Time `json:"since,omitempty"`

	// Until filters records created at or before this time.
	Until *time.Time `json:"until,omitempty"`

	// File filters records by the validated file path.
	File string `json:"file,omitempty"`

	// OnlyInvalid restricts results to failed runs.
	OnlyInvalid bool `json:"only_invalid,omitempty"`

	// Limit is the maximum number of records to return. Default: 100.
	Limit int `json:"limit,omitempty"`

	// Offset skips the first N records.
	Offset int `json:"offset,omitempty"`
}

// Storage is the persistence boundary for validation records. The
// recorder and the pruner share one Storage, so implementations must
// tolerate concurrent calls.
type Storage interface {
	// Store persists one record.
	Store(ctx context.Context, record *Record) error

	// Query returns matching records newest first, or an empty slice
	// when nothing matches.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count reports how many records match without fetching them.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes matching records and reports how many went.
	// Retention pruning calls it with an Until cutoff.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases the backend.
	Close() error
}
