package tabular

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and as a local fallback.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]Row

	// FailWrites makes every mutation fail with the given error. Used by
	// tests to exercise degraded-persistence paths.
	FailWrites error
	// FailReads does the same for reads.
	FailReads error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][]Row)}
}

// Read returns a copy of the table's rows in insertion order.
func (s *MemoryStore) Read(_ context.Context, table string) ([]Row, error) {
	if s.FailReads != nil {
		return nil, s.FailReads
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.tables[table]
	out := make([]Row, len(rows))
	for i, row := range rows {
		copied := make(Row, len(row))
		for k, v := range row {
			copied[k] = v
		}
		out[i] = copied
	}
	return out, nil
}

// Append adds rows to the end of the table.
func (s *MemoryStore) Append(_ context.Context, table string, rows ...Row) error {
	if s.FailWrites != nil {
		return s.FailWrites
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], rows...)
	return nil
}

// Write replaces the entire contents of the table.
func (s *MemoryStore) Write(_ context.Context, table string, rows []Row) error {
	if s.FailWrites != nil {
		return s.FailWrites
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append([]Row(nil), rows...)
	return nil
}

// Compile-time check that MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
