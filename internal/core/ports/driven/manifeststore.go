package driven

import (
	"context"

	"github.com/oyna-ai/modelkit/internal/core/domain"
)

// ManifestStore persists the consolidated manifest.
type ManifestStore interface {
	// Write replaces the manifest at path as a whole.
	// Readers never observe a partially written file.
	Write(ctx context.Context, path string, manifest *domain.Manifest, pretty bool) error

	// Read loads a previously written manifest.
	Read(ctx context.Context, path string) (*domain.Manifest, error)
}
