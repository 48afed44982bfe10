package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps all collections in memory. It honors the same
// exclusive-section contract as FileStore and is intended for tests.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[Collection][]json.RawMessage
	locks map[Collection]*sync.Mutex

	// FailWrites makes every Write return an error, for exercising
	// storage-failure paths.
	FailWrites bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	locks := make(map[Collection]*sync.Mutex, len(Collections()))
	for _, c := range Collections() {
		locks[c] = &sync.Mutex{}
	}
	return &MemoryStore{
		data:  make(map[Collection][]json.RawMessage),
		locks: locks,
	}
}

func (s *MemoryStore) Read(c Collection) []json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.data[c]
	out := make([]json.RawMessage, len(records))
	copy(out, records)
	return out
}

func (s *MemoryStore) Write(c Collection, records []json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return fmt.Errorf("write failed for collection %s", c)
	}

	stored := make([]json.RawMessage, len(records))
	copy(stored, records)
	s.data[c] = stored
	return nil
}

func (s *MemoryStore) Update(c Collection, fn func(records []json.RawMessage) ([]json.RawMessage, error)) error {
	mu, ok := s.locks[c]
	if !ok {
		return fmt.Errorf("unknown collection: %s", c)
	}
	mu.Lock()
	defer mu.Unlock()

	next, err := fn(s.Read(c))
	if err != nil {
		return err
	}
	return s.Write(c, next)
}
