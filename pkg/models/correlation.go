package models

// ============================================================================
// Correlation Patterns
// ============================================================================

// CorrelationPattern labels the functional shape inferred for a pair of
// numeric fields.
type CorrelationPattern string

const (
	CorrelationPositiveLinear CorrelationPattern = "positive_linear"
	CorrelationNegativeLinear CorrelationPattern = "negative_linear"
	CorrelationPowerGrowth    CorrelationPattern = "power_growth"
	CorrelationLinearGrowth   CorrelationPattern = "linear_growth"
	// CorrelationStepGrowth is a recognized classification that the current
	// growth heuristic never assigns.
	CorrelationStepGrowth CorrelationPattern = "step_growth"
	CorrelationNone       CorrelationPattern = "none"
)

// ValidCorrelationPatterns contains all valid pattern values.
var ValidCorrelationPatterns = []CorrelationPattern{
	CorrelationPositiveLinear,
	CorrelationNegativeLinear,
	CorrelationPowerGrowth,
	CorrelationLinearGrowth,
	CorrelationStepGrowth,
	CorrelationNone,
}

// IsValidCorrelationPattern checks if the given pattern is valid.
func IsValidCorrelationPattern(p CorrelationPattern) bool {
	for _, v := range ValidCorrelationPatterns {
		if v == p {
			return true
		}
	}
	return false
}

// FieldCorrelation is the relationship found between two numeric fields of
// the same table.
type FieldCorrelation struct {
	Field1      string             `json:"field1"`
	Field2      string             `json:"field2"`
	Coefficient float64            `json:"coefficient"`
	Pattern     CorrelationPattern `json:"pattern"`
	Insight     string             `json:"insight"`
}
