package models

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Impact Types
// ============================================================================

// ImpactType identifies the kind of edit being analyzed.
type ImpactType string

const (
	ImpactTypeDelete ImpactType = "delete"
	ImpactTypeUpdate ImpactType = "update"
)

// ValidImpactTypes contains all valid impact type values.
var ValidImpactTypes = []ImpactType{
	ImpactTypeDelete,
	ImpactTypeUpdate,
}

// IsValidImpactType checks if the given type is valid.
func IsValidImpactType(t ImpactType) bool {
	for _, v := range ValidImpactTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ============================================================================
// Impact Severity
// ============================================================================

// ImpactSeverity grades how widely an edit propagates. Graded on the number
// of distinct impacted tables: zero is safe, one to three is a warning,
// more than three is critical.
type ImpactSeverity string

const (
	ImpactSeveritySafe     ImpactSeverity = "safe"
	ImpactSeverityWarning  ImpactSeverity = "warning"
	ImpactSeverityCritical ImpactSeverity = "critical"
)

// ValidImpactSeverities contains all valid severity values.
var ValidImpactSeverities = []ImpactSeverity{
	ImpactSeveritySafe,
	ImpactSeverityWarning,
	ImpactSeverityCritical,
}

// IsValidImpactSeverity checks if the given severity is valid.
func IsValidImpactSeverity(s ImpactSeverity) bool {
	for _, v := range ValidImpactSeverities {
		if v == s {
			return true
		}
	}
	return false
}

// ============================================================================
// Impact Report Model
// ============================================================================

// ImpactedReference names one field in a referencing table that would be
// affected by the analyzed edit.
type ImpactedReference struct {
	TableName  string  `json:"table_name"`
	FieldName  string  `json:"field_name"`
	Confidence float64 `json:"confidence"`
	Suggestion string  `json:"suggestion"`
}

// CascadeAction is one ordered follow-up step a designer must take in a
// referencing table. Steps are numbered from 1 in the order the impacted
// tables were first encountered.
type CascadeAction struct {
	Step        int                 `json:"step"`
	TableName   string              `json:"table_name"`
	References  []ImpactedReference `json:"references"`
	Description string              `json:"description"`
}

// ImpactReport is the complete answer to a single "what breaks if" query.
// Reports are fully built before being returned and never mutated after.
type ImpactReport struct {
	ID        uuid.UUID  `json:"id"`
	Type      ImpactType `json:"type"`
	TableName string     `json:"table_name"`
	FieldName string     `json:"field_name"`
	Value     string     `json:"value"`
	// NewValue is set for update impacts only.
	NewValue       string              `json:"new_value,omitempty"`
	Severity       ImpactSeverity      `json:"severity"`
	Summary        string              `json:"summary"`
	References     []ImpactedReference `json:"references"`
	CascadeActions []CascadeAction     `json:"cascade_actions"`
	GeneratedAt    time.Time           `json:"generated_at"`
}

// IsSafe returns true when the analyzed edit touches no referencing tables.
func (r *ImpactReport) IsSafe() bool {
	return r.Severity == ImpactSeveritySafe
}

// ImpactedTableCount returns the number of distinct tables in the cascade.
func (r *ImpactReport) ImpactedTableCount() int {
	return len(r.CascadeActions)
}
