package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/oyna-ai/modelkit/internal/core/domain"
	"github.com/oyna-ai/modelkit/internal/core/ports/driven"
	"github.com/oyna-ai/modelkit/internal/core/ports/driving"
	"github.com/oyna-ai/modelkit/internal/logger"
)

// Ensure ValidationService implements the interface.
var _ driving.ValidationService = (*ValidationService)(nil)

// ValidationService classifies model documents and checks them against their schema.
type ValidationService struct {
	discoverer driven.FileDiscoverer
	loader     driven.DocumentLoader
	schemas    *SchemaIndexBuilder
	runs       driven.RunStore // optional
	now        func() time.Time
	newID      func() string
}

// NewValidationService creates a validation service.
// runs may be nil, in which case reports are never recorded.
func NewValidationService(
	discoverer driven.FileDiscoverer,
	loader driven.DocumentLoader,
	schemas *SchemaIndexBuilder,
	runs driven.RunStore,
) *ValidationService {
	initMetrics()
	return &ValidationService{
		discoverer: discoverer,
		loader:     loader,
		schemas:    schemas,
		runs:       runs,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Validate runs one full pass over opts.ModelsDir.
func (s *ValidationService) Validate(ctx context.Context, opts driving.ValidateOptions) (*domain.ValidationReport, error) {
	report := &domain.ValidationReport{
		ID:         s.newID(),
		StartedAt:  s.now().UTC(),
		ModelsDir:  opts.ModelsDir,
		SchemasDir: opts.SchemasDir,
	}

	ctx, span := tracer().Start(ctx, "validation.run", trace.WithAttributes(
		attribute.String("run.id", report.ID),
		attribute.String("models.dir", opts.ModelsDir),
	))
	defer span.End()

	report.Diagnose(domain.SeverityInfo, "Using models dir:  "+opts.ModelsDir)
	report.Diagnose(domain.SeverityInfo, "Using schemas dir: "+opts.SchemasDir)

	files, err := s.discoverer.Discover(ctx, opts.ModelsDir, false)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		report.Diagnose(domain.SeverityWarn, "Directory not found: "+opts.ModelsDir)
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("discover models: %w", err)
	}

	if len(files) == 0 {
		report.Diagnose(domain.SeverityWarn, "No model files found in "+opts.ModelsDir)
		return s.finish(ctx, report, opts), nil
	}

	index, diags := s.schemas.Build(ctx, opts.SchemasDir)
	report.Diagnostics = append(report.Diagnostics, diags...)
	report.Diagnose(domain.SeverityInfo, fmt.Sprintf("Found %d model file(s).", len(files)))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := s.validateFile(ctx, path, opts.ProjectRoot, index)
		report.Add(result)
		documentsCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("status", string(result.Status)),
			attribute.String("model_type", result.Type.String()),
		))
	}

	span.SetAttributes(
		attribute.Int("validation.passed", report.Passed),
		attribute.Int("validation.failed", report.Failed),
		attribute.Int("validation.skipped", report.Skipped),
	)
	return s.finish(ctx, report, opts), nil
}

func (s *ValidationService) validateFile(
	ctx context.Context,
	path, projectRoot string,
	index *SchemaIndex,
) domain.DocumentResult {
	result := domain.DocumentResult{
		Path:    path,
		RelPath: relativePath(path, projectRoot),
		Type:    domain.ClassifyPath(path),
	}

	if result.Type == domain.ModelTypeUnknown {
		result.Status = domain.StatusSkipped
		result.Reason = domain.ErrUnclassified.Error()
		logger.Debug("validate: %s skipped", result.RelPath)
		return result
	}

	doc, err := s.loader.Load(ctx, path)
	if err != nil {
		return failed(result, err.Error())
	}
	doc.Type = result.Type

	schema, ok := index.Lookup(doc.Type)
	if !ok {
		return failed(result, fmt.Errorf("%w for model_type='%s'", domain.ErrNoSchema, doc.Type).Error())
	}

	violations := schema.Validate(doc.Content)
	if len(violations) == 0 {
		result.Status = domain.StatusOK
		return result
	}

	domain.SortViolations(violations)
	result.Status = domain.StatusFail
	result.Violations = violations
	logger.Debug("validate: %s has %d violation(s)", result.RelPath, len(violations))
	return result
}

func failed(result domain.DocumentResult, message string) domain.DocumentResult {
	result.Status = domain.StatusFail
	result.Violations = []domain.Violation{{Location: domain.RootLocation, Message: message}}
	return result
}

func (s *ValidationService) finish(
	ctx context.Context,
	report *domain.ValidationReport,
	opts driving.ValidateOptions,
) *domain.ValidationReport {
	report.FinishedAt = s.now().UTC()

	if opts.Record && s.runs != nil {
		if err := s.runs.SaveRun(ctx, report); err != nil {
			report.Diagnose(domain.SeverityWarn, "could not record run: "+err.Error())
		} else {
			logger.Debug("validate: recorded run %s", report.ID)
		}
	}
	return report
}
