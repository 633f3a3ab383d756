package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ovid/cyclonedx-parser/pkg/history"
	"github.com/Ovid/cyclonedx-parser/pkg/history/storage"
)

// storeRecordAged stores a record whose creation time lies the given number
// of days in the past.
func storeRecordAged(t *testing.T, backend history.Storage, file string, ageDays int) *history.Record {
	t.Helper()

	record := history.NewRecord(file, true, nil, time.Millisecond)
	record.CreatedAt = time.Now().AddDate(0, 0, -ageDays)

	if err := backend.Store(context.Background(), record); err != nil {
		t.Fatalf("Store(%s) error = %v", file, err)
	}
	return record
}

type failingDeleteStorage struct {
	*storage.MemoryStorage
}

func (f *failingDeleteStorage) Delete(ctx context.Context, query *history.Query) (int64, error) {
	return 0, history.NewStorageError("memory", "delete", errors.New("database is locked"))
}

func TestPruner_Prune(t *testing.T) {
	backend := storage.NewMemoryStorage()
	storeRecordAged(t, backend, "ancient.json", 120)
	storeRecordAged(t, backend, "old.json", 91)
	recent := storeRecordAged(t, backend, "recent.json", 5)

	pruner := NewPruner(backend, &Config{MaxAgeDays: 90, Schedule: "0 3 * * *"})

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("Prune() deleted = %d, want 2", deleted)
	}

	remaining, err := backend.Query(context.Background(), &history.Query{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("remaining records = %d, want 1", len(remaining))
	}
	if remaining[0].ID != recent.ID {
		t.Errorf("remaining record = %s, want %s", remaining[0].File, recent.File)
	}
}

func TestPruner_Prune_Disabled(t *testing.T) {
	backend := storage.NewMemoryStorage()
	storeRecordAged(t, backend, "ancient.json", 365)

	pruner := NewPruner(backend, &Config{MaxAgeDays: 0})

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("Prune() deleted = %d, want 0", deleted)
	}
	if backend.Size() != 1 {
		t.Errorf("stored records = %d, want 1", backend.Size())
	}
}

func TestPruner_Prune_StorageError(t *testing.T) {
	backend := &failingDeleteStorage{MemoryStorage: storage.NewMemoryStorage()}
	pruner := NewPruner(backend, &Config{MaxAgeDays: 30, Schedule: "0 3 * * *"})

	_, err := pruner.Prune(context.Background())
	if err == nil {
		t.Fatal("Prune() error = nil, want retention error")
	}

	var retErr *history.RetentionError
	if !errors.As(err, &retErr) {
		t.Fatalf("error type = %T, want *history.RetentionError", err)
	}
	if retErr.MaxAgeDays != 30 {
		t.Errorf("MaxAgeDays = %d, want 30", retErr.MaxAgeDays)
	}
}

func TestNewPruner_NilConfig(t *testing.T) {
	pruner := NewPruner(storage.NewMemoryStorage(), nil)

	if pruner.config.MaxAgeDays != 90 {
		t.Errorf("MaxAgeDays = %d, want 90", pruner.config.MaxAgeDays)
	}
	if pruner.config.Schedule != "0 3 * * *" {
		t.Errorf("Schedule = %q, want %q", pruner.config.Schedule, "0 3 * * *")
	}
}
