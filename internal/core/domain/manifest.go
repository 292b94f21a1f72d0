package domain

import "time"

// ManifestVersion is the format version written into every manifest.
const ManifestVersion = 1

// ManifestEntry is the normalised record for one model document.
type ManifestEntry struct {
	// ID is never empty; it falls back to the file stem.
	ID string `json:"id"`

	// Name falls back to ID.
	Name string `json:"name"`

	// Description may be empty.
	Description string `json:"description"`

	// SourceFile is relative to the project root when the file lies under it.
	SourceFile string `json:"source_file"`

	// Endpoints holds opaque endpoint descriptors. Omitted when empty.
	Endpoints []any `json:"endpoints,omitempty"`

	// Schema is an embedded structured document. Omitted when absent.
	Schema any `json:"schema,omitempty"`
}

// Manifest is the consolidated build artifact.
type Manifest struct {
	Version     int             `json:"version"`
	GeneratedAt time.Time       `json:"generated_at"`
	ModelCount  int             `json:"model_count"`
	Models      []ManifestEntry `json:"models"`
}

// NewManifest assembles a manifest whose ModelCount matches its entries.
func NewManifest(generatedAt time.Time, entries []ManifestEntry) *Manifest {
	if entries == nil {
		entries = []ManifestEntry{}
	}
	return &Manifest{
		Version:     ManifestVersion,
		GeneratedAt: generatedAt.UTC(),
		ModelCount:  len(entries),
		Models:      entries,
	}
}

// SkippedFile records a document the builder could not load.
type SkippedFile struct {
	Path   string
	Reason string
}

// BuildResult is the outcome of a manifest build.
type BuildResult struct {
	Manifest *Manifest

	// Files is every discovered document path in scan order.
	Files []string

	// Skipped lists files that failed to load.
	Skipped []SkippedFile

	// Diagnostics holds build-level messages such as a missing models directory.
	Diagnostics []Diagnostic
}
