package history

import "fmt"

// StorageError reports a failed storage operation. Backend names the
// implementation ("sqlite", "memory") and Operation the action that
// failed ("store", "query", "delete").
type StorageError struct {
	Backend   string
	Operation string
	Cause     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Operation, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError wraps cause with the backend and operation that failed.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Cause: cause}
}

// RecorderError reports a record that could not be enqueued or flushed.
// RecordID is empty when the failure is not tied to a single record.
type RecorderError struct {
	RecordID string
	Cause    error
}

func (e *RecorderError) Error() string {
	if e.RecordID == "" {
		return fmt.Sprintf("recorder: %v", e.Cause)
	}
	return fmt.Sprintf("record %s: %v", e.RecordID, e.Cause)
}

func (e *RecorderError) Unwrap() error {
	return e.Cause
}

// NewRecorderError wraps cause with the affected record ID.
func NewRecorderError(recordID string, cause error) *RecorderError {
	return &RecorderError{RecordID: recordID, Cause: cause}
}

// RetentionError reports a failed pruning pass along with the retention
// period that was being enforced.
type RetentionError struct {
	MaxAgeDays int
	Cause      error
}

func (e *RetentionError) Error() string {
	return fmt.Sprintf("prune (max age %dd): %v", e.MaxAgeDays, e.Cause)
}

func (e *RetentionError) Unwrap() error {
	return e.Cause
}

// NewRetentionError wraps cause with the configured retention period.
func NewRetentionError(maxAgeDays int, cause error) *RetentionError {
	return &RetentionError{MaxAgeDays: maxAgeDays, Cause: cause}
}
