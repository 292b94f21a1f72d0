package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSchema indicates a classified document has no compiled schema.
	ErrNoSchema = errors.New("no schema loaded")

	// ErrUnclassified indicates a file name matched no classification rule.
	ErrUnclassified = errors.New("could not infer model type from filename")
)

// IOError reports a file that could not be read.
// Missing files satisfy errors.Is(err, fs.ErrNotExist) through Unwrap.
type IOError struct {
	Path   string
	Reason string
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("could not read %s: %s", e.Path, e.Reason)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError reports malformed structured content.
// Line and Column are 1-based; zero means the position is unknown.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Reason)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaCompileError reports a schema document that is not a valid JSON Schema.
type SchemaCompileError struct {
	ModelType ModelType
	Path      string
	Err       error
}

func (e *SchemaCompileError) Error() string {
	return fmt.Sprintf("invalid JSON Schema for %q in %s: %v", e.ModelType, e.Path, e.Err)
}

func (e *SchemaCompileError) Unwrap() error {
	return e.Err
}
