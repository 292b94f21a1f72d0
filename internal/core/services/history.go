package services

import (
	"context"
	"errors"

	"github.com/oyna-ai/modelkit/internal/core/domain"
	"github.com/oyna-ai/modelkit/internal/core/ports/driven"
	"github.com/oyna-ai/modelkit/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// ErrHistoryDisabled is returned when no run store is configured.
var ErrHistoryDisabled = errors.New("validation history is not configured")

// HistoryService reads recorded validation runs.
type HistoryService struct {
	runs driven.RunStore
}

// NewHistoryService creates a history service.
func NewHistoryService(runs driven.RunStore) *HistoryService {
	return &HistoryService{runs: runs}
}

// List returns up to limit recent runs.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if s.runs == nil {
		return nil, ErrHistoryDisabled
	}
	return s.runs.ListRuns(ctx, limit)
}

// Get returns the full report for a run.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.ValidationReport, error) {
	if s.runs == nil {
		return nil, ErrHistoryDisabled
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.runs.GetRun(ctx, id)
}
