package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/oyna-ai/modelkit/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a koanf-backed implementation of driven.ConfigStore.
// It keeps the file layer separately so Save never writes defaults or
// environment overrides back to disk.
type ConfigStore struct {
	mu        sync.RWMutex
	filePath  string
	parser    koanf.Parser
	effective *koanf.Koanf
	fileLayer *koanf.Koanf
}

// NewConfigStore loads defaults, the file at path (when it exists) and the environment.
// An empty path disables the file layer.
func NewConfigStore(path string) (*ConfigStore, error) {
	s := &ConfigStore{
		filePath: path,
		parser:   parserFor(path),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load rebuilds every layer from scratch.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	effective := koanf.New(".")
	for key, value := range Defaults() {
		if err := effective.Set(key, value); err != nil {
			return fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	fileLayer := koanf.New(".")
	if s.filePath != "" {
		if _, err := os.Stat(s.filePath); err == nil {
			if err := fileLayer.Load(file.Provider(s.filePath), s.parser); err != nil {
				return fmt.Errorf("loading config %s: %w", s.filePath, err)
			}
			if err := effective.Merge(fileLayer); err != nil {
				return fmt.Errorf("merging config %s: %w", s.filePath, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config %s: %w", s.filePath, err)
		}
	}

	if err := effective.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	s.effective = effective
	s.fileLayer = fileLayer
	return nil
}

// envKey maps MODELKIT_VALIDATE_SCHEMAS_DIR to validate.schemas_dir.
// Only the first underscore separates the section from the key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Config unmarshals the effective configuration.
func (s *ConfigStore) Config() (*Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cfg Config
	if err := s.effective.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.effective.Exists(key) {
		return nil, false
	}
	return s.effective.Get(key), true
}

// Set stores a value in the file layer and the effective view.
func (s *ConfigStore) Set(key string, value any) error {
	if key == "" {
		return errors.New("config key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fileLayer.Set(key, value); err != nil {
		return err
	}
	return s.effective.Set(key, value)
}

// Save writes the file layer to the configuration file.
func (s *ConfigStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.filePath == "" {
		return errors.New("no config file path")
	}

	data, err := s.fileLayer.Marshal(s.parser)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(s.filePath, data, 0o600)
}

// Render encodes the effective configuration in the file's format.
func (s *ConfigStore) Render() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.effective.Marshal(s.parser)
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
