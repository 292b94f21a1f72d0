// Package manifest persists the consolidated manifest as a JSON file.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oyna-ai/modelkit/internal/core/domain"
	"github.com/oyna-ai/modelkit/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.ManifestStore = (*FileStore)(nil)

// FileStore writes manifests as whole files.
type FileStore struct{}

// NewFileStore creates a file-backed manifest store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Encode renders manifest as compact JSON, or indented by two spaces when pretty.
// Non-ASCII text is written as-is.
func Encode(manifest *domain.Manifest, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(manifest); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write replaces the file at path via a temporary file in the same directory.
// Parent directories are created as needed.
func (s *FileStore) Write(ctx context.Context, path string, manifest *domain.Manifest, pretty bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(manifest, pretty)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close manifest: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod manifest: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}

// Read decodes the manifest at path.
func (s *FileStore) Read(ctx context.Context, path string) (*domain.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.IOError{Path: path, Reason: err.Error(), Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m domain.Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, &domain.ParseError{Path: path, Reason: err.Error(), Err: err}
	}
	if m.Models == nil {
		m.Models = []domain.ManifestEntry{}
	}
	return &m, nil
}
