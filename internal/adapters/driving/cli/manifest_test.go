package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oyna-ai/modelkit/internal/core/domain"
)

func readManifest(t *testing.T, path string) (domain.Manifest, string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var m domain.Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	return m, string(data)
}

func TestManifestBuildCmd_EmptyModels(t *testing.T) {
	f := newFixture(t)

	out, _, err := execute(t, "--root", f.root, "manifest", "build")
	require.NoError(t, err)

	assert.Contains(t, out, "Manifest written to: manifest.json")
	assert.Contains(t, out, "Total models in manifest: 0")

	m, raw := readManifest(t, filepath.Join(f.root, "manifest.json"))
	assert.Equal(t, 0, m.ModelCount)
	assert.Empty(t, m.Models)
	assert.False(t, m.GeneratedAt.IsZero())
	assert.Contains(t, raw, `"models":[]`)
}

func TestManifestBuildCmd_WritesEntries(t *testing.T) {
	f := newFixture(t)
	f.write(t, "models/v1/pump_api_contract.json", `{"id": "pump", "endpoints": [{"path": "/start"}]}`)
	f.write(t, "models/v1/extra/boiler_digital_twin.json", `{"summary": "Boiler"}`)
	f.write(t, "models/v1/broken.json", `{"id": `)

	out, stderr, err := execute(t, "--root", f.root, "manifest", "build", "--pretty", "-o", filepath.Join(f.root, "out", "m.json"))
	require.NoError(t, err)

	assert.Contains(t, out, "Total models in manifest: 2")
	assert.Contains(t, stderr, "[INFO]   - Added model: pump  (from models/v1/pump_api_contract.json)")
	assert.Contains(t, stderr, "[ERROR] parse error in")
	assert.Contains(t, stderr, "[WARN] 1 file(s) skipped")

	m, raw := readManifest(t, filepath.Join(f.root, "out", "m.json"))
	require.Equal(t, 2, m.ModelCount)
	assert.True(t, strings.HasPrefix(raw, "{\n  \"version\": 1,"))

	ids := []string{m.Models[0].ID, m.Models[1].ID}
	assert.ElementsMatch(t, []string{"pump", "boiler_digital_twin"}, ids)
}

func TestManifestBuildCmd_ModelsDirFlag(t *testing.T) {
	f := newFixture(t)
	dir := dirOf(f.write(t, "elsewhere/a_manifest.json", `{"id": "a"}`))

	_, _, err := execute(t, "--root", f.root, "manifest", "build", "--models-dir", dir)
	require.NoError(t, err)

	m, _ := readManifest(t, filepath.Join(f.root, "manifest.json"))
	require.Len(t, m.Models, 1)
	assert.Equal(t, "elsewhere/a_manifest.json", m.Models[0].SourceFile)
}

func TestManifestBuildCmd_ModelsDirIsFile(t *testing.T) {
	f := newFixture(t)
	file := f.write(t, "models/a_manifest.json", `{"id": "a"}`)

	stdout, stderr, err := execute(t, "--root", f.root, "manifest", "build", "--models-dir", file)
	require.NoError(t, err)

	assert.Contains(t, stderr, "Models directory not found")
	assert.Contains(t, stdout, "Total models in manifest: 0")
	m, _ := readManifest(t, filepath.Join(f.root, "manifest.json"))
	assert.Empty(t, m.Models)
}

func TestManifestBuildCmd_VerboseSection(t *testing.T) {
	f := newFixture(t)

	_, stderr, err := execute(t, "--root", f.root, "-v", "manifest", "build")
	require.NoError(t, err)
	assert.Contains(t, stderr, "\n=== Build manifest from models ===\n")
}

func TestManifestBuildCmd_WriteFailure(t *testing.T) {
	f := newFixture(t)
	blocker := f.write(t, "blocker", "not a directory")

	_, _, err := execute(t, "--root", f.root, "manifest", "build", "-o", filepath.Join(blocker, "manifest.json"))
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, err.Error(), "write manifest")
}

func TestManifestInspectCmd(t *testing.T) {
	f := newFixture(t)
	f.write(t, "models/v1/pump_api_contract.json",
		`{"id": "pump", "name": "Pump", "description": "Moves water", "endpoints": [1, 2]}`)

	_, _, err := execute(t, "--root", f.root, "manifest", "build")
	require.NoError(t, err)

	out, _, err := execute(t, "--root", f.root, "manifest", "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "Manifest version 1")
	assert.Contains(t, out, "1 model(s):")
	assert.Contains(t, out, "  - pump (Pump)  [models/v1/pump_api_contract.json]")
	assert.Contains(t, out, "      Moves water")
	assert.Contains(t, out, "      endpoints: 2")

	out, _, err = execute(t, "--root", f.root, "manifest", "inspect", "--json", filepath.Join(f.root, "manifest.json"))
	require.NoError(t, err)
	var m domain.Manifest
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, 1, m.ModelCount)
}

func TestManifestInspectCmd_Missing(t *testing.T) {
	f := newFixture(t)

	_, _, err := execute(t, "--root", f.root, "manifest", "inspect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read manifest")
}
