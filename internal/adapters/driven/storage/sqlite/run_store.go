package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oyna-ai/modelkit/internal/core/domain"
	"github.com/oyna-ai/modelkit/internal/core/ports/driven"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// SaveRun stores a report and its per-document results in one transaction.
// Saving a run with an existing ID replaces it.
func (s *runStore) SaveRun(ctx context.Context, report *domain.ValidationReport) error {
	if report == nil || report.ID == "" {
		return domain.ErrInvalidInput
	}

	diagnostics, err := json.Marshal(nonNil(report.Diagnostics))
	if err != nil {
		return fmt.Errorf("marshalling diagnostics: %w", err)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM validation_results WHERE run_id = ?`, report.ID); err != nil {
		return fmt.Errorf("replacing results: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM validation_runs WHERE id = ?`, report.ID); err != nil {
		return fmt.Errorf("replacing run: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO validation_runs
			(id, started_at, finished_at, models_dir, schemas_dir, passed, failed, skipped, diagnostics)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.ID,
		report.StartedAt.UTC().Format(timeLayout),
		formatNullableTime(report.FinishedAt),
		report.ModelsDir,
		report.SchemasDir,
		report.Passed,
		report.Failed,
		report.Skipped,
		string(diagnostics),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO validation_results
			(run_id, position, path, rel_path, model_type, status, reason, violations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing result insert: %w", err)
	}
	defer stmt.Close()

	for i, result := range report.Results {
		violations, err := json.Marshal(nonNil(result.Violations))
		if err != nil {
			return fmt.Errorf("marshalling violations: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			report.ID,
			i,
			result.Path,
			result.RelPath,
			string(result.Type),
			string(result.Status),
			nullString(result.Reason),
			string(violations),
		); err != nil {
			return fmt.Errorf("inserting result %s: %w", result.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// ListRuns returns run summaries, most recent first.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	query := `
		SELECT id, started_at, finished_at, models_dir, passed, failed, skipped
		FROM validation_runs
		ORDER BY started_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunSummary //nolint:prealloc // size unknown from query
	for rows.Next() {
		var run domain.RunSummary
		var startedAt string
		var finishedAt sql.NullString
		if err := rows.Scan(&run.ID, &startedAt, &finishedAt, &run.ModelsDir,
			&run.Passed, &run.Failed, &run.Skipped); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt = parseTime(startedAt)
		run.FinishedAt = parseNullableTime(finishedAt)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// GetRun loads a full report by ID.
func (s *runStore) GetRun(ctx context.Context, id string) (*domain.ValidationReport, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, models_dir, schemas_dir, passed, failed, skipped, diagnostics
		FROM validation_runs WHERE id = ?
	`, id)

	var report domain.ValidationReport
	var startedAt, diagnostics string
	var finishedAt sql.NullString
	if err := row.Scan(&report.ID, &startedAt, &finishedAt, &report.ModelsDir, &report.SchemasDir,
		&report.Passed, &report.Failed, &report.Skipped, &diagnostics); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	report.StartedAt = parseTime(startedAt)
	report.FinishedAt = parseNullableTime(finishedAt)
	if err := json.Unmarshal([]byte(diagnostics), &report.Diagnostics); err != nil {
		return nil, fmt.Errorf("unmarshalling diagnostics: %w", err)
	}
	if len(report.Diagnostics) == 0 {
		report.Diagnostics = nil
	}

	results, err := s.results(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Results = results

	return &report, nil
}

func (s *runStore) results(ctx context.Context, runID string) ([]domain.DocumentResult, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT path, rel_path, model_type, status, reason, violations
		FROM validation_results
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var results []domain.DocumentResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		var result domain.DocumentResult
		var modelType, status, violations string
		var reason sql.NullString
		if err := rows.Scan(&result.Path, &result.RelPath, &modelType, &status, &reason, &violations); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		result.Type = domain.ModelType(modelType)
		result.Status = domain.ResultStatus(status)
		result.Reason = reason.String
		if err := json.Unmarshal([]byte(violations), &result.Violations); err != nil {
			return nil, fmt.Errorf("unmarshalling violations: %w", err)
		}
		if len(result.Violations) == 0 {
			result.Violations = nil
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}

	return results, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func formatNullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseNullableTime(ns sql.NullString) time.Time {
	if !ns.Valid {
		return time.Time{}
	}
	return parseTime(ns.String)
}
