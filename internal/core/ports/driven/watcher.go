package driven

import (
	"context"

	"github.com/oyna-ai/modelkit/internal/core/domain"
)

// ChangeWatcher reports relevant file changes under a set of directories.
type ChangeWatcher interface {
	// Watch emits one change per settled burst of events until ctx is cancelled,
	// then closes the channel.
	Watch(ctx context.Context, dirs []string) (<-chan domain.FileChange, error)
}
