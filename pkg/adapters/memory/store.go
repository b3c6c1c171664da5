package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
)

// Store implements ports.ArtifactStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Artifacts
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Artifacts),
	}
}

// Write keeps the artifacts of a run, replacing any previous write.
func (s *Store) Write(ctx context.Context, runID string, artifacts domain.Artifacts) error {
	if err := ports.ValidateRunID(runID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[runID] = artifacts
	return nil
}

// Read retrieves the artifacts of a run.
func (s *Store) Read(ctx context.Context, runID string) (domain.Artifacts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.data[runID]
	if !ok {
		return domain.Artifacts{}, domain.ErrArtifactsNotFound
	}
	return a, nil
}

// List returns the stored run IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]string, 0, len(s.data))
	for id := range s.data {
		runs = append(runs, id)
	}
	sort.Strings(runs)
	return runs, nil
}
