package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/Ovid/cyclonedx-parser/pkg/history"
)

// MemoryStorage implements the history.Storage interface using an in-memory
// map. This implementation is intended for testing only.
type MemoryStorage struct {
	records map[string]*history.Record
	mu      sync.RWMutex
}

// NewMemoryStorage returns an empty in-memory backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*history.Record),
	}
}

// Store persists a validation record to memory.
func (s *MemoryStorage) Store(ctx context.Context, record *history.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy so later caller mutation does not leak in
	recordCopy := *record
	s.records[record.ID] = &recordCopy

	return nil
}

// Query retrieves validation records matching the query filters, newest first.
func (s *MemoryStorage) Query(ctx context.Context, query *history.Query) ([]*history.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*history.Record
	for _, record := range s.records {
		if matchesQuery(record, query) {
			recordCopy := *record
			results = append(results, &recordCopy)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	// Apply pagination
	start := query.Offset
	if start > len(results) {
		return []*history.Record{}, nil
	}
	results = results[start:]

	limit := 100
	if query.Limit > 0 {
		limit = query.Limit
	}
	if limit < len(results) {
		results = results[:limit]
	}

	return results, nil
}

// Count returns the number of validation records matching the query filters.
func (s *MemoryStorage) Count(ctx context.Context, query *history.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if matchesQuery(record, query) {
			count++
		}
	}

	return count, nil
}

// Delete removes validation records matching the query filters.
func (s *MemoryStorage) Delete(ctx context.Context, query *history.Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, record := range s.records {
		if matchesQuery(record, query) {
			delete(s.records, id)
			deleted++
		}
	}

	return deleted, nil
}

// Close drops all records.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*history.Record)
	return nil
}

// matchesQuery reports whether a record passes every set filter.
func matchesQuery(record *history.Record, query *history.Query) bool {
	if query.Since != nil && record.CreatedAt.Before(*query.Since) {
		return false
	}
	if query.Until != nil && record.CreatedAt.After(*query.Until) {
		return false
	}
	if query.File != "" && record.File != query.File {
		return false
	}
	if query.OnlyInvalid && record.Valid {
		return false
	}
	return true
}

// Size reports how many records are held. Tests use it to assert on
// storage contents without a query.
func (s *MemoryStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
