package domain

import "strings"

// ClassificationRule maps a lower-cased file stem to a model type.
type ClassificationRule struct {
	Type  ModelType
	Match func(stem string) bool
}

// ClassificationRules is evaluated in order and the first match wins.
// Rule order is part of the contract: names like "x_api_contract_manifest"
// must classify by the earlier rule.
var ClassificationRules = []ClassificationRule{
	{Type: ModelTypeAPIContract, Match: contains("api_contract")},
	{Type: ModelTypeDigitalTwin, Match: contains("digital_twin")},
	{Type: ModelTypeKnowledgeGraph, Match: contains("knowledge_graph")},
	{Type: ModelTypeMasterSystemModel, Match: contains("master_system_model")},
	{Type: ModelTypeManifest, Match: isManifestInstance},
}

// Classify returns the model type for a file stem (base name without extension).
// The stem is lower-cased before matching.
func Classify(stem string) ModelType {
	name := strings.ToLower(stem)
	for _, rule := range ClassificationRules {
		if rule.Match(name) {
			return rule.Type
		}
	}
	return ModelTypeUnknown
}

// ClassifyPath classifies the file at path by its base name.
func ClassifyPath(path string) ModelType {
	return Classify(FileStem(path))
}

func contains(substr string) func(string) bool {
	return func(stem string) bool {
		return strings.Contains(stem, substr)
	}
}

// Schema files are usually named *_manifest_schema.json and are not manifest instances.
func isManifestInstance(stem string) bool {
	if strings.Contains(stem, "ai_master_manifest") {
		return true
	}
	return strings.Contains(stem, "manifest") && !strings.Contains(stem, "schema")
}
