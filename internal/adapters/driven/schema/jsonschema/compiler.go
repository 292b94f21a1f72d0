// Package jsonschema compiles and evaluates JSON Schema documents.
// Schemas without a $schema keyword are treated as draft 2020-12.
package jsonschema

import (
	"context"
	"errors"
	"strings"

	jsv "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/oyna-ai/modelkit/internal/core/domain"
	"github.com/oyna-ai/modelkit/internal/core/ports/driven"
)

// Ensure Compiler and Schema implement the interfaces.
var (
	_ driven.SchemaCompiler = (*Compiler)(nil)
	_ driven.CompiledSchema = (*Schema)(nil)
)

// Compiler builds validators for individual schema documents.
type Compiler struct {
	draft   *jsv.Draft
	printer *message.Printer
}

// NewCompiler creates a compiler defaulting to draft 2020-12.
func NewCompiler() *Compiler {
	return &Compiler{
		draft:   jsv.Draft2020,
		printer: message.NewPrinter(language.English),
	}
}

// Compile validates doc against its metaschema and returns a reusable validator.
// Every call uses a fresh underlying compiler so schemas never share resources.
func (c *Compiler) Compile(ctx context.Context, location string, doc map[string]any) (driven.CompiledSchema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	compiler := jsv.NewCompiler()
	compiler.DefaultDraft(c.draft)

	if err := compiler.AddResource(location, doc); err != nil {
		return nil, &domain.SchemaCompileError{Path: location, Err: err}
	}
	sch, err := compiler.Compile(location)
	if err != nil {
		return nil, &domain.SchemaCompileError{Path: location, Err: err}
	}

	return &Schema{schema: sch, printer: c.printer}, nil
}

// Schema is a compiled JSON Schema.
type Schema struct {
	schema  *jsv.Schema
	printer *message.Printer
}

// Validate returns every violation in content in evaluation order.
func (s *Schema) Validate(content map[string]any) []domain.Violation {
	err := s.schema.Validate(content)
	if err == nil {
		return nil
	}

	var verr *jsv.ValidationError
	if !errors.As(err, &verr) {
		return []domain.Violation{{Location: domain.RootLocation, Message: err.Error()}}
	}

	var out []domain.Violation
	s.flatten(verr, &out)
	return out
}

// flatten walks the error tree down to the keywords that actually failed.
// Combinators other than allOf are reported as a single violation.
func (s *Schema) flatten(verr *jsv.ValidationError, out *[]domain.Violation) {
	switch k := verr.ErrorKind.(type) {
	case *kind.Schema, *kind.Group, *kind.Reference, *kind.AllOf:
		if len(verr.Causes) > 0 {
			for _, cause := range verr.Causes {
				s.flatten(cause, out)
			}
			return
		}
	case *kind.Required:
		loc := location(verr.InstanceLocation)
		for _, missing := range k.Missing {
			single := &kind.Required{Missing: []string{missing}}
			*out = append(*out, domain.Violation{
				Location: loc,
				Message:  single.LocalizedString(s.printer),
				Path:     tokens(verr.InstanceLocation),
			})
		}
		return
	}

	*out = append(*out, domain.Violation{
		Location: location(verr.InstanceLocation),
		Message:  verr.ErrorKind.LocalizedString(s.printer),
		Path:     tokens(verr.InstanceLocation),
	})
}

// tokens copies the instance location; the validator may reuse its slices.
func tokens(loc []string) []string {
	if len(loc) == 0 {
		return nil
	}
	return append([]string(nil), loc...)
}

func location(tokens []string) string {
	if len(tokens) == 0 {
		return domain.RootLocation
	}
	return strings.Join(tokens, "/")
}
