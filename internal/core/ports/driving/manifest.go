package driving

import (
	"context"

	"github.com/oyna-ai/modelkit/internal/core/domain"
)

// BuildOptions configures one manifest build.
type BuildOptions struct {
	// ModelsDir is scanned recursively for model documents.
	ModelsDir string

	// ProjectRoot is used to relativise source_file paths.
	ProjectRoot string
}

// ManifestService builds and persists the consolidated manifest.
type ManifestService interface {
	// Build discovers documents and assembles a manifest.
	// Unloadable files are skipped and reported in the result.
	Build(ctx context.Context, opts BuildOptions) (*domain.BuildResult, error)

	// Write persists the manifest at path.
	Write(ctx context.Context, manifest *domain.Manifest, path string, pretty bool) error

	// Read loads a manifest from path.
	Read(ctx context.Context, path string) (*domain.Manifest, error)
}
