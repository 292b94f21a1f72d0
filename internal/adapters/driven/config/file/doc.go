// Package file provides the file-backed configuration adapter.
//
// Configuration is layered with koanf: built-in defaults, then the project
// config file (TOML, or YAML by extension), then MODELKIT_* environment
// variables. Command-line flags are applied on top by the CLI.
package file
