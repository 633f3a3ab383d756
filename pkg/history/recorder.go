package history

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RecorderConfig contains configuration for the history recorder.
type RecorderConfig struct {
	// AsyncBuffer is how many records may queue up before Record
	// starts blocking. Default: 1000
	AsyncBuffer int

	// WriteTimeout is the timeout for writing a record to storage, and
	// the longest Record will wait for buffer space before dropping.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultRecorderConfig returns the default recorder configuration.
func DefaultRecorderConfig() *RecorderConfig {
	return &RecorderConfig{
		AsyncBuffer:  1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder persists validation records asynchronously so that validation
// runs never block on storage writes.
type Recorder struct {
	storage    Storage
	config     *RecorderConfig
	recordChan chan *Record
	wg         sync.WaitGroup
	done       chan struct{}
	logger     *slog.Logger
}

// NewRecorder creates a new history recorder with the provided storage
// backend and configuration.
func NewRecorder(storage Storage, config *RecorderConfig) *Recorder {
	if config == nil {
		config = DefaultRecorderConfig()
	}
	if config.AsyncBuffer <= 0 {
		config.AsyncBuffer = DefaultRecorderConfig().AsyncBuffer
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = DefaultRecorderConfig().WriteTimeout
	}

	r := &Recorder{
		storage:    storage,
		config:     config,
		recordChan: make(chan *Record, config.AsyncBuffer),
		done:       make(chan struct{}),
		logger:     slog.Default().With("component", "history.recorder"),
	}

	r.wg.Add(1)
	go r.worker()

	r.logger.Debug("history recorder initialized",
		"async_buffer", config.AsyncBuffer,
		"write_timeout", config.WriteTimeout,
	)

	return r
}

// Record enqueues a validation record for async writing to storage.
//
// This method returns quickly; it blocks at most WriteTimeout waiting for
// buffer space, then drops the record and reports the failure.
func (r *Recorder) Record(ctx context.Context, record *Record) error {
	select {
	case r.recordChan <- record:
		return nil
	case <-ctx.Done():
		return NewRecorderError(record.ID, ctx.Err())
	case <-time.After(r.config.WriteTimeout):
		r.logger.Error("record channel full, dropping record",
			"record_id", record.ID,
			"file", record.File,
			"channel_capacity", r.config.AsyncBuffer,
		)
		return NewRecorderError(record.ID, context.DeadlineExceeded)
	case <-r.done:
		return NewRecorderError(record.ID, context.Canceled)
	}
}

// Close gracefully shuts down the recorder by draining the async channel
// and waiting for all pending writes to complete.
func (r *Recorder) Close() error {
	close(r.done)
	r.wg.Wait()
	r.logger.Debug("history recorder shut down")
	return nil
}

// worker is the background goroutine that drains the record channel and
// writes records to storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.recordChan:
			r.writeRecord(record)

		case <-r.done:
			// Flush whatever is still queued, then exit
			for {
				select {
				case record := <-r.recordChan:
					r.writeRecord(record)
				default:
					return
				}
			}
		}
	}
}

// writeRecord writes a single record to storage.
func (r *Recorder) writeRecord(record *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	if err := r.storage.Store(ctx, record); err != nil {
		r.logger.Error("failed to store validation record",
			"record_id", record.ID,
			"file", record.File,
			"error", err,
		)
		return
	}

	r.logger.Debug("validation record stored",
		"record_id", record.ID,
		"file", record.File,
		"valid", record.Valid,
	)
}
