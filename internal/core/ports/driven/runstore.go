package driven

import (
	"context"

	"github.com/oyna-ai/modelkit/internal/core/domain"
)

// RunStore records validation runs for later inspection.
// Backed by SQLite in production.
type RunStore interface {
	// SaveRun stores a finished report and its per-document results.
	SaveRun(ctx context.Context, report *domain.ValidationReport) error

	// ListRuns returns run summaries, most recent first.
	// A limit of zero or less returns every run.
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// GetRun loads a full report by ID.
	// Returns domain.ErrNotFound when no such run exists.
	GetRun(ctx context.Context, id string) (*domain.ValidationReport, error)
}
