package models

// ============================================================================
// Issue Severity
// ============================================================================

// IssueSeverity grades findings attached to an insight report.
type IssueSeverity string

const (
	IssueSeverityCritical IssueSeverity = "critical"
	IssueSeverityWarning  IssueSeverity = "warning"
	IssueSeverityInfo     IssueSeverity = "info"
)

// ValidIssueSeverities contains all valid severity values.
var ValidIssueSeverities = []IssueSeverity{
	IssueSeverityCritical,
	IssueSeverityWarning,
	IssueSeverityInfo,
}

// IsValidIssueSeverity checks if the given severity is valid.
func IsValidIssueSeverity(s IssueSeverity) bool {
	for _, v := range ValidIssueSeverities {
		if v == s {
			return true
		}
	}
	return false
}

// ============================================================================
// Balance Issues
// ============================================================================

// Balance issue categories.
const (
	IssueCategoryOutlier     = "statistical_outlier"
	IssueCategoryUnparseable = "unparseable"
)

// BalanceIssue is one suspected data or balance problem in a table.
type BalanceIssue struct {
	Category    string        `json:"category"`
	Severity    IssueSeverity `json:"severity"`
	Description string        `json:"description"`
	Suggestion  string        `json:"suggestion"`
	// Examples identifies up to three affected records.
	Examples []string `json:"examples,omitempty"`
}
