package driven

// ConfigStore provides access to layered application configuration.
// Keys use dot notation, e.g. "validate.schemas_dir".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// Set stores a value in the file layer. Call Save to persist it.
	Set(key string, value any) error

	// Save writes the file layer back to the configuration file.
	Save() error

	// Path returns the configuration file path, empty when none is used.
	Path() string
}
