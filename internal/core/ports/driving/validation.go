package driving

import (
	"context"

	"github.com/oyna-ai/modelkit/internal/core/domain"
)

// ValidateOptions configures one validation run.
type ValidateOptions struct {
	// ProjectRoot is used to compute relative paths in the report.
	ProjectRoot string

	// ModelsDir is scanned non-recursively.
	ModelsDir string

	// SchemasDir holds one <type>_schema.json per model type.
	SchemasDir string

	// Record stores the finished report when a run store is configured.
	Record bool
}

// ValidationService checks model documents against their type's schema.
type ValidationService interface {
	// Validate runs a full pass over the models directory.
	// The returned error is reserved for infrastructure failures;
	// document failures are reported in the report.
	Validate(ctx context.Context, opts ValidateOptions) (*domain.ValidationReport, error)
}

// HistoryService exposes recorded validation runs.
type HistoryService interface {
	// List returns recent run summaries, most recent first.
	List(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// Get returns a recorded run by ID.
	Get(ctx context.Context, id string) (*domain.ValidationReport, error)
}
