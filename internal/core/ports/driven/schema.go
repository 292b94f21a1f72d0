package driven

import (
	"context"

	"github.com/oyna-ai/modelkit/internal/core/domain"
)

// SchemaCompiler turns a parsed JSON Schema document into a reusable validator.
type SchemaCompiler interface {
	// Compile checks doc against its dialect's metaschema and prepares it for validation.
	// location identifies the schema for references and error messages.
	// Returns *domain.SchemaCompileError when the schema itself is invalid.
	Compile(ctx context.Context, location string, doc map[string]any) (CompiledSchema, error)
}

// CompiledSchema validates document content.
type CompiledSchema interface {
	// Validate returns every violation found in content, or nil when it conforms.
	// Each violation names the slash-joined instance path or domain.RootLocation.
	Validate(content map[string]any) []domain.Violation
}
