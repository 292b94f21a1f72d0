package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/oyna-ai/modelkit/internal/core/domain"
	"github.com/oyna-ai/modelkit/internal/core/ports/driven"
	"github.com/oyna-ai/modelkit/internal/logger"
)

// SchemaIndex maps model types to compiled schemas for one validation run.
// A type without an entry has no usable schema.
type SchemaIndex struct {
	schemas map[domain.ModelType]driven.CompiledSchema
}

// NewSchemaIndex returns an empty index.
func NewSchemaIndex() *SchemaIndex {
	return &SchemaIndex{schemas: make(map[domain.ModelType]driven.CompiledSchema)}
}

// Lookup returns the schema for t.
func (i *SchemaIndex) Lookup(t domain.ModelType) (driven.CompiledSchema, bool) {
	s, ok := i.schemas[t]
	return s, ok
}

// Types returns the indexed types in declaration order.
func (i *SchemaIndex) Types() []domain.ModelType {
	var types []domain.ModelType
	for _, t := range domain.KnownModelTypes() {
		if _, ok := i.schemas[t]; ok {
			types = append(types, t)
		}
	}
	return types
}

// Len returns the number of indexed types.
func (i *SchemaIndex) Len() int {
	return len(i.schemas)
}

// SchemaIndexBuilder loads and compiles one schema per known model type.
type SchemaIndexBuilder struct {
	loader   driven.DocumentLoader
	compiler driven.SchemaCompiler
}

// NewSchemaIndexBuilder creates a builder.
func NewSchemaIndexBuilder(loader driven.DocumentLoader, compiler driven.SchemaCompiler) *SchemaIndexBuilder {
	return &SchemaIndexBuilder{
		loader:   loader,
		compiler: compiler,
	}
}

// Build loads <schemasDir>/<type>_schema.json for every known type.
// Missing, unreadable or invalid schemas leave their type out of the index;
// the difference shows only in the returned diagnostics.
func (b *SchemaIndexBuilder) Build(ctx context.Context, schemasDir string) (*SchemaIndex, []domain.Diagnostic) {
	ctx, span := tracer().Start(ctx, "schema_index.build",
		trace.WithAttributes(attribute.String("schemas.dir", schemasDir)))
	defer span.End()

	index := NewSchemaIndex()
	var diags []domain.Diagnostic

	for _, t := range domain.KnownModelTypes() {
		path := filepath.Join(schemasDir, t.SchemaFileName())

		doc, err := b.loader.Load(ctx, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				diags = append(diags, warn("Schema file missing for '%s': %s", t, path))
			} else {
				diags = append(diags, failure("%v", err))
			}
			continue
		}

		compiled, err := b.compiler.Compile(ctx, path, doc.Content)
		if err != nil {
			var compileErr *domain.SchemaCompileError
			switch {
			case !errors.As(err, &compileErr):
				err = &domain.SchemaCompileError{ModelType: t, Path: path, Err: err}
			case compileErr.ModelType == "":
				compileErr.ModelType = t
			}
			diags = append(diags, failure("%v", err))
			continue
		}

		index.schemas[t] = compiled
		diags = append(diags, info("Loaded schema for '%s' from %s", t, path))
		logger.Debug("schema index: %s -> %s", t, path)
	}

	span.SetAttributes(attribute.Int("schemas.loaded", index.Len()))
	return index, diags
}

func info(format string, args ...any) domain.Diagnostic {
	return domain.Diagnostic{Severity: domain.SeverityInfo, Message: fmt.Sprintf(format, args...)}
}

func warn(format string, args ...any) domain.Diagnostic {
	return domain.Diagnostic{Severity: domain.SeverityWarn, Message: fmt.Sprintf(format, args...)}
}

func failure(format string, args ...any) domain.Diagnostic {
	return domain.Diagnostic{Severity: domain.SeverityError, Message: fmt.Sprintf(format, args...)}
}
