package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/treeoracle/pkg/domain"
)

// Store implements ports.SampleStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Sample
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Sample),
	}
}

// Save persists the sample in memory.
func (s *Store) Save(ctx context.Context, sample *domain.Sample) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := sample.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sample.ID] = copied
	return nil
}

// Load retrieves the sample from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.Sample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sample, ok := s.data[id]
	if !ok {
		return nil, domain.ErrSampleNotFound
	}

	// Copy on read so callers can't mutate a stored tree by pointer
	return sample.Snapshot(), nil
}

// Delete removes the sample.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored sample IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Len returns the number of stored samples.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
