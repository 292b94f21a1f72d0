package jsonschema

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oyna-ai/modelkit/internal/core/domain"
)

func twinSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"id", "name"},
		"properties": map[string]any{
			"id":   map[string]any{"type": "string"},
			"name": map[string]any{"type": "string"},
			"sensors": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"unit"},
					"properties": map[string]any{
						"unit": map[string]any{"type": "string"},
					},
				},
			},
		},
	}
}

func compile(t *testing.T, doc map[string]any) *Schema {
	t.Helper()
	location := filepath.Join(t.TempDir(), "digital_twin_schema.json")
	compiled, err := NewCompiler().Compile(context.Background(), location, doc)
	require.NoError(t, err)
	sch, ok := compiled.(*Schema)
	require.True(t, ok)
	return sch
}

func TestCompiler_Compile_Valid(t *testing.T) {
	sch := compile(t, twinSchema())
	assert.NotNil(t, sch.schema)
}

func TestCompiler_Compile_InvalidSchema(t *testing.T) {
	location := filepath.Join(t.TempDir(), "api_contract_schema.json")

	_, err := NewCompiler().Compile(context.Background(), location, map[string]any{
		"type": 5,
	})
	require.Error(t, err)

	var compileErr *domain.SchemaCompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, location, compileErr.Path)
}

func TestCompiler_Compile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCompiler().Compile(ctx, "schema.json", twinSchema())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSchema_Validate_Conforming(t *testing.T) {
	sch := compile(t, twinSchema())

	violations := sch.Validate(map[string]any{
		"id":      "tank",
		"name":    "Tank",
		"sensors": []any{map[string]any{"unit": "m"}},
	})

	assert.Empty(t, violations)
}

func TestSchema_Validate_ReportsEveryViolation(t *testing.T) {
	sch := compile(t, twinSchema())

	violations := sch.Validate(map[string]any{
		"id": json.Number("5"),
		"sensors": []any{
			map[string]any{"unit": "m"},
			map[string]any{},
		},
	})

	byLocation := map[string][]string{}
	for _, v := range violations {
		byLocation[v.Location] = append(byLocation[v.Location], v.Message)
	}

	require.Contains(t, byLocation, domain.RootLocation)
	assert.Equal(t, []string{"missing property 'name'"}, byLocation[domain.RootLocation])

	require.Contains(t, byLocation, "id")
	assert.Contains(t, byLocation["id"][0], "want string")

	require.Contains(t, byLocation, "sensors/1")
	assert.Equal(t, []string{"missing property 'unit'"}, byLocation["sensors/1"])

	assert.Len(t, violations, 3)
}

func TestSchema_Validate_SplitsMissingProperties(t *testing.T) {
	sch := compile(t, twinSchema())

	violations := sch.Validate(map[string]any{})

	require.Len(t, violations, 2)
	for _, v := range violations {
		assert.Equal(t, domain.RootLocation, v.Location)
	}
	assert.ElementsMatch(t,
		[]string{"missing property 'id'", "missing property 'name'"},
		[]string{violations[0].Message, violations[1].Message},
	)
}

func TestSchema_Validate_CombinatorReportedOnce(t *testing.T) {
	sch := compile(t, map[string]any{
		"properties": map[string]any{
			"port": map[string]any{
				"anyOf": []any{
					map[string]any{"type": "string"},
					map[string]any{"type": "integer"},
				},
			},
		},
	})

	violations := sch.Validate(map[string]any{"port": true})

	require.Len(t, violations, 1)
	assert.Equal(t, "port", violations[0].Location)
}

func TestSchema_Validate_RefsAndDefs(t *testing.T) {
	sch := compile(t, map[string]any{
		"$defs": map[string]any{
			"endpoint": map[string]any{
				"type":     "object",
				"required": []any{"path"},
			},
		},
		"properties": map[string]any{
			"endpoints": map[string]any{
				"type":  "array",
				"items": map[string]any{"$ref": "#/$defs/endpoint"},
			},
		},
	})

	violations := sch.Validate(map[string]any{
		"endpoints": []any{map[string]any{"path": "/a"}, map[string]any{"method": "GET"}},
	})

	require.Len(t, violations, 1)
	assert.Equal(t, "endpoints/1", violations[0].Location)
	assert.Equal(t, "missing property 'path'", violations[0].Message)
}

func TestSchema_Validate_SortsByPathTokens(t *testing.T) {
	sch := compile(t, map[string]any{
		"type":     "object",
		"required": []any{"name"},
		"properties": map[string]any{
			"$ver": map[string]any{"type": "string"},
			"endpoints": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	})
	endpoints := make([]any, 11)
	for i := range endpoints {
		endpoints[i] = "/e"
	}
	endpoints[2] = json.Number("2")
	endpoints[10] = json.Number("10")

	violations := sch.Validate(map[string]any{"$ver": json.Number("1"), "endpoints": endpoints})
	domain.SortViolations(violations)

	locations := make([]string, 0, len(violations))
	for _, v := range violations {
		locations = append(locations, v.Location)
	}
	assert.Equal(t, []string{domain.RootLocation, "$ver", "endpoints/2", "endpoints/10"}, locations)
	assert.Empty(t, violations[0].Path)
	assert.Equal(t, []string{"endpoints", "10"}, violations[3].Path)
}

func TestLocation(t *testing.T) {
	assert.Equal(t, domain.RootLocation, location(nil))
	assert.Equal(t, "a/0/b", location([]string{"a", "0", "b"}))
}
