package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oyna-ai/modelkit/internal/core/domain"
)

func sampleManifest() *domain.Manifest {
	return domain.NewManifest(time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC), []domain.ManifestEntry{
		{
			ID:          "pump",
			Name:        "Pumpe ØST",
			Description: "Primary <pump> & valve",
			SourceFile:  "models/v1/pump_api_contract.json",
			Endpoints:   []any{map[string]any{"path": "/status", "timeout": json.Number("30")}},
		},
		{
			ID:         "tank",
			Name:       "tank",
			SourceFile: "models/v1/tank_digital_twin.json",
			Schema:     map[string]any{"type": "object"},
		},
	})
}

func TestFileStore_WriteRead_RoundTrip(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		name := "compact"
		if pretty {
			name = "pretty"
		}
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifest.json")
			store := NewFileStore()
			m := sampleManifest()

			require.NoError(t, store.Write(context.Background(), path, m, pretty))

			got, err := store.Read(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, m, got)
		})
	}
}

func TestFileStore_Write_CompactAndPrettyParseEqual(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore()
	m := sampleManifest()

	compactPath := filepath.Join(dir, "compact.json")
	prettyPath := filepath.Join(dir, "pretty.json")
	require.NoError(t, store.Write(context.Background(), compactPath, m, false))
	require.NoError(t, store.Write(context.Background(), prettyPath, m, true))

	compact, err := os.ReadFile(compactPath)
	require.NoError(t, err)
	pretty, err := os.ReadFile(prettyPath)
	require.NoError(t, err)

	assert.NotContains(t, strings.TrimSpace(string(compact)), "\n")
	assert.Contains(t, string(pretty), "\n  \"version\": 1")

	var a, b any
	require.NoError(t, json.Unmarshal(compact, &a))
	require.NoError(t, json.Unmarshal(pretty, &b))
	assert.Equal(t, a, b)
}

func TestFileStore_Write_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, NewFileStore().Write(context.Background(), path, sampleManifest(), false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, `{"version":1,"generated_at":"2026-05-01T08:30:00Z","model_count":2,"models":[`))
	assert.Contains(t, text, "Pumpe ØST")
	assert.Contains(t, text, "Primary <pump> & valve")
	// Absent optional fields are omitted
	assert.Equal(t, 1, strings.Count(text, `"endpoints"`))
	assert.Equal(t, 1, strings.Count(text, `"schema"`))
}

func TestFileStore_Write_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "manifest.json")

	require.NoError(t, NewFileStore().Write(context.Background(), path, sampleManifest(), false))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStore_Write_ReplacesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte("old content that is much longer than nothing"), 0o644))

	empty := domain.NewManifest(time.Now(), nil)
	require.NoError(t, NewFileStore().Write(context.Background(), path, empty, false))

	got, err := NewFileStore().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ModelCount)
	assert.Empty(t, got.Models)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not remain")
}

func TestFileStore_Write_Failure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := NewFileStore().Write(context.Background(), filepath.Join(blocker, "manifest.json"), sampleManifest(), false)
	assert.Error(t, err)
}

func TestFileStore_Read_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileStore().Read(context.Background(), filepath.Join(dir, "missing.json"))
	var ioErr *domain.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = NewFileStore().Read(context.Background(), bad)
	var parseErr *domain.ParseError
	assert.True(t, errors.As(err, &parseErr))
}
