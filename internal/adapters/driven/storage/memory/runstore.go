package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/oyna-ai/modelkit/internal/core/domain"
	"github.com/oyna-ai/modelkit/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.ValidationReport
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]domain.ValidationReport),
	}
}

// SaveRun stores or replaces a report.
func (s *RunStore) SaveRun(_ context.Context, report *domain.ValidationReport) error {
	if report == nil || report.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *report
	stored.Results = append([]domain.DocumentResult(nil), report.Results...)
	stored.Diagnostics = append([]domain.Diagnostic(nil), report.Diagnostics...)
	s.runs[report.ID] = stored
	return nil
}

// ListRuns returns summaries ordered by start time, most recent first.
func (s *RunStore) ListRuns(_ context.Context, limit int) ([]domain.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.RunSummary, 0, len(s.runs))
	for _, run := range s.runs {
		summaries = append(summaries, run.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].StartedAt.Equal(summaries[j].StartedAt) {
			return summaries[i].ID > summaries[j].ID
		}
		return summaries[i].StartedAt.After(summaries[j].StartedAt)
	})

	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// GetRun retrieves a report by ID.
func (s *RunStore) GetRun(_ context.Context, id string) (*domain.ValidationReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}
