package document

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oyna-ai/modelkit/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pump_api_contract.json", `{"id": "pump", "version": 2, "tags": ["a", "b"]}`)

	doc, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, doc.Path)
	assert.Equal(t, domain.ModelTypeUnknown, doc.Type)
	assert.Equal(t, "pump", doc.Content["id"])
	assert.Equal(t, json.Number("2"), doc.Content["version"])
	assert.Equal(t, []any{"a", "b"}, doc.Content["tags"])
}

func TestLoader_Load_YAML(t *testing.T) {
	dir := t.TempDir()
	content := "id: tank\ncapacity: 1500\nsensors:\n  - name: level\n    unit: m\n1: numeric key\n"

	for _, name := range []string{"tank_digital_twin.yaml", "tank_digital_twin.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, name, content)

			doc, err := NewLoader().Load(context.Background(), path)
			require.NoError(t, err)

			assert.Equal(t, "tank", doc.Content["id"])
			assert.Equal(t, json.Number("1500"), doc.Content["capacity"])
			assert.Equal(t, "numeric key", doc.Content["1"])
			sensors, ok := doc.Content["sensors"].([]any)
			require.True(t, ok)
			require.Len(t, sensors, 1)
			assert.Equal(t, map[string]any{"name": "level", "unit": "m"}, sensors[0])
		})
	}
}

func TestLoader_Load_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)

	var ioErr *domain.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, path, ioErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoader_Load_SyntaxError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.json", "{\n  \"id\": \"x\",\n  oops\n}")

	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)

	var parseErr *domain.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, path, parseErr.Path)
	assert.Equal(t, 3, parseErr.Line)
	assert.Positive(t, parseErr.Column)
	assert.Contains(t, err.Error(), "parse error in")
}

func TestLoader_Load_Truncated(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "truncated.json", `{"id": "x"`)

	_, err := NewLoader().Load(context.Background(), path)

	var parseErr *domain.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 1, parseErr.Line)
}

func TestLoader_Load_TrailingData(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "trailing.json", `{"id": "x"} {"id": "y"}`)

	_, err := NewLoader().Load(context.Background(), path)

	var parseErr *domain.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, parseErr.Reason, "unexpected data")
}

func TestLoader_Load_NonObjectRoot(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		kind    string
	}{
		{"array", "list.json", `[1, 2, 3]`, "array"},
		{"string", "text.json", `"hello"`, "string"},
		{"null", "null.json", `null`, "null"},
		{"yaml list", "list.yaml", "- a\n- b\n", "array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)

			_, err := NewLoader().Load(context.Background(), path)

			var parseErr *domain.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Contains(t, parseErr.Reason, tt.kind)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLoader_Load_Empty(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"empty.json", "empty.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, name, "")

			_, err := NewLoader().Load(context.Background(), path)

			var parseErr *domain.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "empty document", parseErr.Reason)
		})
	}
}

func TestLoader_Load_YAMLSyntaxError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", "id: x\n  nested: [unclosed\n")

	_, err := NewLoader().Load(context.Background(), path)

	var parseErr *domain.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Positive(t, parseErr.Line)
}

func TestLoader_Load_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "hello")

	_, err := NewLoader().Load(context.Background(), path)

	var parseErr *domain.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, parseErr.Reason, "unsupported")
}

func TestLoader_Load_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader().Load(ctx, "any.json")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPosition(t *testing.T) {
	data := []byte("ab\ncd\nef")

	line, col := position(data, 0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, col = position(data, 5)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)

	line, _ = position(data, 100)
	assert.Equal(t, 3, line)
}
