package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oyna-ai/modelkit/internal/adapters/driven/document"
	"github.com/oyna-ai/modelkit/internal/adapters/driven/schema/jsonschema"
	"github.com/oyna-ai/modelkit/internal/adapters/driven/storage/memory"
	"github.com/oyna-ai/modelkit/internal/connectors/filesystem"
)

var fixedTime = time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)

// project is a throwaway project tree with models and schemas directories.
type project struct {
	root       string
	modelsDir  string
	schemasDir string
}

func newProject(t *testing.T) *project {
	t.Helper()
	root := t.TempDir()
	p := &project{
		root:       root,
		modelsDir:  filepath.Join(root, "models", "v1"),
		schemasDir: filepath.Join(root, "models", "schemas"),
	}
	require.NoError(t, os.MkdirAll(p.modelsDir, 0o755))
	require.NoError(t, os.MkdirAll(p.schemasDir, 0o755))
	return p
}

func (p *project) model(t *testing.T, name, content string) string {
	t.Helper()
	return writeFile(t, filepath.Join(p.modelsDir, name), content)
}

func (p *project) schema(t *testing.T, name, content string) string {
	t.Helper()
	return writeFile(t, filepath.Join(p.schemasDir, name), content)
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestValidationService(runs *memory.RunStore) *ValidationService {
	loader := document.NewLoader()
	svc := NewValidationService(
		filesystem.NewDiscoverer(),
		loader,
		NewSchemaIndexBuilder(loader, jsonschema.NewCompiler()),
		nil,
	)
	if runs != nil {
		svc.runs = runs
	}
	svc.now = func() time.Time { return fixedTime }
	svc.newID = func() string { return "run-1" }
	return svc
}

func newTestManifestService(store *memory.ManifestStore) *ManifestService {
	svc := NewManifestService(filesystem.NewDiscoverer(), document.NewLoader(), store)
	svc.now = func() time.Time { return fixedTime }
	return svc
}

const digitalTwinSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "serial"],
  "properties": {
    "id": {"type": "string"},
    "serial": {"type": "string"},
    "capacity": {"type": "number", "minimum": 0}
  }
}`

const apiContractSchema = `{
  "type": "object",
  "required": ["id", "endpoints"],
  "properties": {
    "id": {"type": "string"},
    "endpoints": {"type": "array", "minItems": 1}
  }
}`
