// Package domain defines the core business entities for modelkit.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ModelDocument: A parsed model document read from one file
//   - ModelType: The closed set of model-type tags and the filename classifier
//   - Manifest / ManifestEntry: The consolidated build artifact
//   - ValidationReport: The aggregate result of a validation run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
