// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentLoader: Parses JSON and YAML model documents
//   - FileDiscoverer: Lists model files in scan order
//   - SchemaCompiler: Compiles JSON Schema documents into validators
//   - ManifestStore: Manifest persistence
//   - ConfigStore: Layered configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: Validation history. Without it, runs are not recorded.
//   - ChangeWatcher: Filesystem notifications for watch mode.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
