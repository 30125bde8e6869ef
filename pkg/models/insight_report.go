package models

import (
	"time"

	"github.com/google/uuid"
)

// FileInsightReport is the full statistical portrait of one data table.
// Reports for unparseable files carry EntryCount 0, Unparseable true and a
// single critical issue in place of the usual sections.
type FileInsightReport struct {
	ID        uuid.UUID `json:"id"`
	FileKey   string    `json:"file_key"`
	TableName string    `json:"table_name"`
	// EntityName is the singular display name derived from the table name,
	// e.g. "items" becomes "Item".
	EntityName  string `json:"entity_name"`
	EntryCount  int    `json:"entry_count"`
	Unparseable bool   `json:"unparseable"`
	// PrimaryKey is nil when no field qualifies as the identifying field.
	PrimaryKey    *string                      `json:"primary_key,omitempty"`
	Attributes    []AttributeInsight           `json:"attributes"`
	Distributions []AttributeValueDistribution `json:"distributions"`
	Types         []AttributeType              `json:"types"`
	Correlations  []FieldCorrelation           `json:"correlations,omitempty"`
	Profiles      []DistributionProfile        `json:"profiles,omitempty"`
	BalanceIssues []BalanceIssue               `json:"balance_issues,omitempty"`
	GeneratedAt   time.Time                    `json:"generated_at"`
}

// HasFindings returns true when the advanced analyses produced anything a
// designer should look at.
func (r *FileInsightReport) HasFindings() bool {
	return len(r.Correlations) > 0 || len(r.BalanceIssues) > 0 || len(r.Gaps()) > 0
}

// Gaps collects every distribution gap across all profiled fields.
func (r *FileInsightReport) Gaps() []GapInfo {
	var gaps []GapInfo
	for _, p := range r.Profiles {
		gaps = append(gaps, p.Gaps...)
	}
	return gaps
}
