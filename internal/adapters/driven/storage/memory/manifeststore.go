package memory

import (
	"context"
	"sync"

	"github.com/oyna-ai/modelkit/internal/core/domain"
	"github.com/oyna-ai/modelkit/internal/core/ports/driven"
)

// Ensure ManifestStore implements the interface.
var _ driven.ManifestStore = (*ManifestStore)(nil)

// ManifestStore is an in-memory implementation of driven.ManifestStore keyed by path.
type ManifestStore struct {
	mu        sync.RWMutex
	manifests map[string]domain.Manifest
	pretty    map[string]bool
}

// NewManifestStore creates a new in-memory manifest store.
func NewManifestStore() *ManifestStore {
	return &ManifestStore{
		manifests: make(map[string]domain.Manifest),
		pretty:    make(map[string]bool),
	}
}

// Write stores a copy of manifest under path.
func (s *ManifestStore) Write(_ context.Context, path string, manifest *domain.Manifest, pretty bool) error {
	if manifest == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *manifest
	stored.Models = append([]domain.ManifestEntry(nil), manifest.Models...)
	s.manifests[path] = stored
	s.pretty[path] = pretty
	return nil
}

// Read retrieves the manifest stored under path.
func (s *ManifestStore) Read(_ context.Context, path string) (*domain.Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.manifests[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

// Pretty reports whether the manifest at path was written in indented form.
func (s *ManifestStore) Pretty(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pretty[path]
}
