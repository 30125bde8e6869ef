package models

import "strings"

// Relationship is one discovered cross-table reference, produced by the
// discovery pipeline and handed to the engine as an immutable fact. Table
// fields may carry raw file keys (directory prefixes, .xml suffixes); the
// relationship index normalizes them before use.
type Relationship struct {
	SourceTable     string  `json:"source_table" yaml:"source_table"`
	SourceField     string  `json:"source_field" yaml:"source_field"`
	SourceFieldPath string  `json:"source_field_path,omitempty" yaml:"source_field_path,omitempty"`
	TargetTable     string  `json:"target_table" yaml:"target_table"`
	TargetField     string  `json:"target_field" yaml:"target_field"`
	TargetFieldPath string  `json:"target_field_path,omitempty" yaml:"target_field_path,omitempty"`
	Confidence      float64 `json:"confidence" yaml:"confidence"`
	MatchCount      int     `json:"match_count" yaml:"match_count"`
}

// NormalizeTableName reduces a file key to its bare table name: directory
// path and ".xml" suffix are stripped, as is the "client_" prefix used by
// client-only table exports. Idempotent, so already-normalized names pass
// through unchanged.
func NormalizeTableName(fileKey string) string {
	name := fileKey
	if idx := strings.LastIndexAny(name, "/\\"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSuffix(name, ".xml")
	name = strings.TrimPrefix(name, "client_")
	return name
}
