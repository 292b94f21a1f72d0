package domain

import (
	"path/filepath"
	"strings"
)

// ModelType tags a model document with the kind of model it declares.
type ModelType string

const (
	// ModelTypeAPIContract is an API contract model.
	ModelTypeAPIContract ModelType = "api_contract"

	// ModelTypeDigitalTwin is a digital twin model.
	ModelTypeDigitalTwin ModelType = "digital_twin"

	// ModelTypeKnowledgeGraph is a knowledge graph model.
	ModelTypeKnowledgeGraph ModelType = "knowledge_graph"

	// ModelTypeMasterSystemModel is the master system model.
	ModelTypeMasterSystemModel ModelType = "master_system_model"

	// ModelTypeManifest is a manifest instance document.
	ModelTypeManifest ModelType = "manifest"

	// ModelTypeUnknown marks a document whose name matched no rule.
	ModelTypeUnknown ModelType = "unknown"
)

// KnownModelTypes returns every classifiable model type in declaration order.
func KnownModelTypes() []ModelType {
	return []ModelType{
		ModelTypeAPIContract,
		ModelTypeDigitalTwin,
		ModelTypeKnowledgeGraph,
		ModelTypeMasterSystemModel,
		ModelTypeManifest,
	}
}

// IsKnown reports whether t is one of the classifiable types.
func (t ModelType) IsKnown() bool {
	for _, known := range KnownModelTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// SchemaFileName returns the expected schema file name for t,
// or an empty string for unknown types.
func (t ModelType) SchemaFileName() string {
	if !t.IsKnown() {
		return ""
	}
	return string(t) + "_schema.json"
}

func (t ModelType) String() string {
	if t == "" {
		return string(ModelTypeUnknown)
	}
	return string(t)
}

// ModelDocument is a parsed structured document read from one file.
// It is created once per file per run and not modified after load.
type ModelDocument struct {
	// Path is the path the document was loaded from.
	Path string

	// Content is the untyped key-value payload.
	Content map[string]any

	// Type is the classified model type, ModelTypeUnknown until classified.
	Type ModelType
}

// Stem returns the document's file name without directory or extension.
func (d ModelDocument) Stem() string {
	return FileStem(d.Path)
}

// FileStem returns the base name of path without its final extension.
func FileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
