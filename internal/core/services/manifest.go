package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/oyna-ai/modelkit/internal/core/domain"
	"github.com/oyna-ai/modelkit/internal/core/ports/driven"
	"github.com/oyna-ai/modelkit/internal/core/ports/driving"
	"github.com/oyna-ai/modelkit/internal/logger"
)

// Ensure ManifestService implements the interface.
var _ driving.ManifestService = (*ManifestService)(nil)

// ManifestService builds the consolidated manifest from model documents.
type ManifestService struct {
	discoverer driven.FileDiscoverer
	loader     driven.DocumentLoader
	store      driven.ManifestStore
	now        func() time.Time
}

// NewManifestService creates a new manifest service.
func NewManifestService(
	discoverer driven.FileDiscoverer,
	loader driven.DocumentLoader,
	store driven.ManifestStore,
) *ManifestService {
	initMetrics()
	return &ManifestService{
		discoverer: discoverer,
		loader:     loader,
		store:      store,
		now:        time.Now,
	}
}

// Build scans opts.ModelsDir recursively and extracts one entry per loadable document.
func (s *ManifestService) Build(ctx context.Context, opts driving.BuildOptions) (*domain.BuildResult, error) {
	ctx, span := tracer().Start(ctx, "manifest.build",
		trace.WithAttributes(attribute.String("models.dir", opts.ModelsDir)))
	defer span.End()

	result := &domain.BuildResult{}

	files, err := s.discoverer.Discover(ctx, opts.ModelsDir, true)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		result.Diagnostics = append(result.Diagnostics, warn("Models directory not found: %s", opts.ModelsDir))
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("discover models: %w", err)
	}

	result.Files = files
	result.Diagnostics = append(result.Diagnostics,
		info("Using models directory: %s", opts.ModelsDir),
		info("Found %d JSON file(s).", len(files)),
	)

	entries := make([]domain.ManifestEntry, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := s.loader.Load(ctx, path)
		if err != nil {
			result.Skipped = append(result.Skipped, domain.SkippedFile{Path: path, Reason: err.Error()})
			result.Diagnostics = append(result.Diagnostics, failure("%v", err))
			continue
		}

		entry := extractEntry(doc, opts.ProjectRoot)
		entries = append(entries, entry)
		result.Diagnostics = append(result.Diagnostics,
			info("  - Added model: %s  (from %s)", entry.ID, entry.SourceFile))
		logger.Debug("manifest: %s -> id=%s", path, entry.ID)
	}

	result.Manifest = domain.NewManifest(s.now(), entries)
	buildEntryCounter.Add(ctx, int64(len(entries)))
	span.SetAttributes(
		attribute.Int("manifest.model_count", result.Manifest.ModelCount),
		attribute.Int("manifest.skipped", len(result.Skipped)),
	)
	return result, nil
}

// Write persists manifest at path, replacing any previous file.
func (s *ManifestService) Write(ctx context.Context, manifest *domain.Manifest, path string, pretty bool) error {
	if manifest == nil {
		return fmt.Errorf("%w: nil manifest", domain.ErrInvalidInput)
	}

	ctx, span := tracer().Start(ctx, "manifest.write",
		trace.WithAttributes(attribute.String("manifest.path", path), attribute.Bool("manifest.pretty", pretty)))
	defer span.End()

	if err := s.store.Write(ctx, path, manifest, pretty); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Read loads a manifest previously written by Write.
func (s *ManifestService) Read(ctx context.Context, path string) (*domain.Manifest, error) {
	return s.store.Read(ctx, path)
}
