package memstore

import (
	"sync"

	"github.com/anthanhphan/go-cluster-sim/internal/sim/port"
)

// Store is an in-memory configuration store. It is the default
// persistence sink in sim mode and the test double of record for the
// role index.
type Store struct {
	mu       sync.RWMutex
	data     map[string][]byte
	versions map[string]int32
}

// Ensure Store implements port.ConfigStore.
var _ port.ConfigStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		data:     make(map[string][]byte),
		versions: make(map[string]int32),
	}
}

// SetData writes data at path and bumps the path's version. The
// version argument is accepted for interface compatibility; -1 is the
// only value the provider ever passes and means unconditional
// overwrite.
func (s *Store) SetData(path string, data []byte, version int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.data[path] = stored
	s.versions[path]++
	return nil
}

// GetData returns the last blob written at path.
func (s *Store) GetData(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[path]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true
}

// Version returns how many writes path has received.
func (s *Store) Version(path string) int32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.versions[path]
}
