package services

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oyna-ai/modelkit/internal/core/domain"
)

// accessor yields a candidate value from document content when present and usable.
type accessor[T any] func(content map[string]any) (T, bool)

// resolve returns the first usable candidate in order.
func resolve[T any](content map[string]any, candidates ...accessor[T]) (T, bool) {
	for _, candidate := range candidates {
		if v, ok := candidate(content); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// textField accepts non-empty strings and non-zero numbers.
func textField(key string) accessor[string] {
	return func(content map[string]any) (string, bool) {
		switch v := content[key].(type) {
		case string:
			return v, v != ""
		case json.Number:
			if f, err := v.Float64(); err == nil && f == 0 {
				return "", false
			}
			return v.String(), true
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), v != 0
		case int:
			return strconv.Itoa(v), v != 0
		}
		return "", false
	}
}

// stringField accepts non-empty strings only.
func stringField(key string) accessor[string] {
	return func(content map[string]any) (string, bool) {
		v, ok := content[key].(string)
		return v, ok && v != ""
	}
}

// arrayField accepts non-empty arrays.
func arrayField(key string) accessor[[]any] {
	return func(content map[string]any) ([]any, bool) {
		v, ok := content[key].([]any)
		return v, ok && len(v) > 0
	}
}

// valueField accepts any present non-null value.
func valueField(key string) accessor[any] {
	return func(content map[string]any) (any, bool) {
		v, ok := content[key]
		return v, ok && v != nil
	}
}

func constant[T any](v T) accessor[T] {
	return func(map[string]any) (T, bool) {
		return v, true
	}
}

// extractEntry derives a manifest entry from one loaded document.
func extractEntry(doc *domain.ModelDocument, projectRoot string) domain.ManifestEntry {
	content := doc.Content

	id, _ := resolve(content,
		textField("id"),
		textField("model_id"),
		textField("name"),
		constant(doc.Stem()),
	)
	name, _ := resolve(content, textField("name"), constant(id))
	description, _ := resolve(content,
		stringField("description"),
		stringField("summary"),
	)

	entry := domain.ManifestEntry{
		ID:          id,
		Name:        name,
		Description: description,
		SourceFile:  relativePath(doc.Path, projectRoot),
	}

	if endpoints, ok := resolve(content,
		arrayField("endpoints"),
		arrayField("tools"),
		arrayField("operations"),
	); ok {
		entry.Endpoints = endpoints
	}

	if schema, ok := resolve(content,
		valueField("schema"),
		valueField("json_schema"),
		valueField("openapi_schema"),
	); ok {
		entry.Schema = schema
	}

	return entry
}

// relativePath returns path relative to root, slash-separated,
// or path unchanged when it does not lie under root.
func relativePath(path, root string) string {
	if root == "" {
		return path
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
