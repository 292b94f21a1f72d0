package cli

import (
	"fmt"

	"github.com/oyna-ai/modelkit/internal/adapters/driven/document"
	"github.com/oyna-ai/modelkit/internal/adapters/driven/manifest"
	"github.com/oyna-ai/modelkit/internal/adapters/driven/schema/jsonschema"
	"github.com/oyna-ai/modelkit/internal/adapters/driven/storage/sqlite"
	"github.com/oyna-ai/modelkit/internal/connectors/filesystem"
	"github.com/oyna-ai/modelkit/internal/core/ports/driven"
	"github.com/oyna-ai/modelkit/internal/core/services"
)

// Services are constructed per command so every run gets fresh state.

func (s *session) manifestService() *services.ManifestService {
	return services.NewManifestService(
		filesystem.NewDiscoverer(s.cfg.Manifest.Extensions...),
		document.NewLoader(),
		manifest.NewFileStore(),
	)
}

// validationService returns the service and a close func for the run store.
// The store is only opened when record is set.
func (s *session) validationService(record bool) (*services.ValidationService, func(), error) {
	loader := document.NewLoader()
	builder := services.NewSchemaIndexBuilder(loader, jsonschema.NewCompiler())

	var runs driven.RunStore
	closeFn := func() {}
	if record {
		store, err := s.openHistory()
		if err != nil {
			return nil, nil, err
		}
		runs = store.RunStore()
		closeFn = func() { _ = store.Close() }
	}

	svc := services.NewValidationService(filesystem.NewDiscoverer(), loader, builder, runs)
	return svc, closeFn, nil
}

func (s *session) historyService() (*services.HistoryService, func(), error) {
	store, err := s.openHistory()
	if err != nil {
		return nil, nil, err
	}
	return services.NewHistoryService(store.RunStore()), func() { _ = store.Close() }, nil
}

func (s *session) openHistory() (*sqlite.Store, error) {
	store, err := sqlite.NewStore(s.resolve(s.cfg.History.DataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}
