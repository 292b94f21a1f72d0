package file

import "time"

// DefaultFileName is the project config file looked up under the project root.
const DefaultFileName = "modelkit.toml"

// EnvPrefix prefixes every environment override, e.g. MODELKIT_VALIDATE_SCHEMAS_DIR.
const EnvPrefix = "MODELKIT_"

// Config is the typed view of the effective configuration.
// Relative directories are interpreted against the project root.
type Config struct {
	Manifest  ManifestConfig  `koanf:"manifest"`
	Validate  ValidateConfig  `koanf:"validate"`
	History   HistoryConfig   `koanf:"history"`
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ManifestConfig configures manifest builds.
type ManifestConfig struct {
	ModelsDir  string   `koanf:"models_dir"`
	Output     string   `koanf:"output"`
	Pretty     bool     `koanf:"pretty"`
	Extensions []string `koanf:"extensions"`
}

// ValidateConfig configures validation runs.
type ValidateConfig struct {
	ModelsDir     string        `koanf:"models_dir"`
	SchemasDir    string        `koanf:"schemas_dir"`
	Pretty        bool          `koanf:"pretty"`
	Record        bool          `koanf:"record"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`
}

// HistoryConfig configures the run history database.
type HistoryConfig struct {
	DataDir string `koanf:"data_dir"`
}

// LogConfig configures diagnostics output.
type LogConfig struct {
	Verbose bool `koanf:"verbose"`
}

// TelemetryConfig selects the OpenTelemetry exporter.
type TelemetryConfig struct {
	Exporter     string `koanf:"exporter"` // none, stdout, otlp
	ServiceName  string `koanf:"service_name"`
	OTLPEndpoint string `koanf:"otlp_endpoint"`
	OTLPInsecure bool   `koanf:"otlp_insecure"`
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]any {
	return map[string]any{
		"manifest.models_dir":     "models",
		"manifest.output":         "manifest.json",
		"manifest.pretty":         false,
		"manifest.extensions":     []string{".json"},
		"validate.models_dir":     "models/v1",
		"validate.schemas_dir":    "models/schemas",
		"validate.pretty":         false,
		"validate.record":         false,
		"validate.watch_debounce": "300ms",
		"history.data_dir":        ".modelkit",
		"log.verbose":             false,
		"telemetry.exporter":      "none",
		"telemetry.service_name":  "modelkit",
		"telemetry.otlp_endpoint": "localhost:4317",
		"telemetry.otlp_insecure": true,
	}
}
