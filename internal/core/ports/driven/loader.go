package driven

import (
	"context"

	"github.com/oyna-ai/modelkit/internal/core/domain"
)

// DocumentLoader parses one structured file into a ModelDocument.
// Implementations never modify the file.
type DocumentLoader interface {
	// Load reads and parses the file at path.
	// Returns *domain.IOError when the file cannot be read and
	// *domain.ParseError when it is not a well-formed object document.
	Load(ctx context.Context, path string) (*domain.ModelDocument, error)
}

// FileDiscoverer lists candidate model files under a directory.
type FileDiscoverer interface {
	// Discover returns matching file paths under root, ordered by path components.
	// A root that is missing or not a directory yields domain.ErrNotFound.
	// Unreadable entries below root are skipped; only cancellation fails a scan.
	Discover(ctx context.Context, root string, recursive bool) ([]string, error)
}
