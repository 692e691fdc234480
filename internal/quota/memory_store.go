package quota

import (
	"context"
	"sync"
)

// MemoryStore keeps counters in process; for development and tests
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Update(_ context.Context, userID, date string, fn func(rec *Record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := DocumentID(userID, date)

	rec, ok := s.records[id]
	if !ok {
		rec = Record{UserID: userID, Date: date}
	}

	if err := fn(&rec); err != nil {
		return err
	}

	s.records[id] = rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, userID, date string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[DocumentID(userID, date)]
	if !ok {
		return nil, nil
	}

	return &rec, nil
}
