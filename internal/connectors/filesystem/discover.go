package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oyna-ai/modelkit/internal/core/domain"
	"github.com/oyna-ai/modelkit/internal/core/ports/driven"
	"github.com/oyna-ai/modelkit/internal/logger"
)

// DefaultExtensions is used when no extensions are configured.
var DefaultExtensions = []string{".json"}

// Ensure Discoverer implements the interface.
var _ driven.FileDiscoverer = (*Discoverer)(nil)

// Discoverer lists files whose name ends in one of its extensions.
type Discoverer struct {
	extensions []string
}

// NewDiscoverer creates a discoverer for the given extensions (".json" when none).
func NewDiscoverer(extensions ...string) *Discoverer {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Discoverer{extensions: normalizeExtensions(extensions)}
}

// Extensions returns the configured extensions.
func (d *Discoverer) Extensions() []string {
	return append([]string(nil), d.extensions...)
}

// Discover returns matching files under root in component order.
// A root that is missing, unreadable or not a directory returns domain.ErrNotFound.
// Unreadable entries below root are skipped with a warning; only
// cancellation aborts a scan.
func (d *Discoverer) Discover(ctx context.Context, root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, root)
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrNotFound, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrNotFound, root)
	}

	var files []string
	if recursive {
		files, err = d.walk(ctx, root)
	} else {
		files, err = d.list(ctx, root)
	}
	if err != nil {
		return nil, err
	}

	SortPaths(files)
	return files, nil
}

func (d *Discoverer) walk(ctx context.Context, root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.accept(path, entry) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (d *Discoverer) list(ctx context.Context, root string) ([]string, error) {
	// ReadDir returns the entries read before an error.
	entries, err := os.ReadDir(root)
	if err != nil {
		logger.Warn("Could not read all of %s: %v", root, err)
	}

	var files []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(root, entry.Name())
		if d.accept(path, entry) {
			files = append(files, path)
		}
	}
	return files, nil
}

func (d *Discoverer) accept(path string, entry fs.DirEntry) bool {
	if entry.IsDir() || !d.matches(entry.Name()) {
		return false
	}
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		return err == nil && !info.IsDir()
	}
	return true
}

func (d *Discoverer) matches(name string) bool {
	return matchesExtension(name, d.extensions)
}

func matchesExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return true
		}
	}
	return false
}

func normalizeExtensions(extensions []string) []string {
	out := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultExtensions...)
	}
	return out
}

// SortPaths orders paths by their components, comparing each component as a string.
func SortPaths(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return comparePaths(paths[i], paths[j]) < 0
	})
}

func comparePaths(a, b string) int {
	pa := strings.Split(filepath.ToSlash(a), "/")
	pb := strings.Split(filepath.ToSlash(b), "/")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if c := strings.Compare(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	return len(pa) - len(pb)
}
