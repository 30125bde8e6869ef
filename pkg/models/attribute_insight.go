package models

// ============================================================================
// Attribute Categories
// ============================================================================

// GameAttributeCategory is the semantic role guessed from a field's name.
type GameAttributeCategory string

const (
	AttributeCategoryIdentifier  GameAttributeCategory = "identifier"
	AttributeCategoryCombatStat  GameAttributeCategory = "combat_stat"
	AttributeCategoryEconomy     GameAttributeCategory = "economy"
	AttributeCategoryProgression GameAttributeCategory = "progression"
	AttributeCategoryQuality     GameAttributeCategory = "quality"
	AttributeCategoryProbability GameAttributeCategory = "probability"
	AttributeCategoryReference   GameAttributeCategory = "reference"
	AttributeCategoryDescriptive GameAttributeCategory = "descriptive"
	AttributeCategoryUnknown     GameAttributeCategory = "unknown"
)

// ValidGameAttributeCategories contains all valid category values.
var ValidGameAttributeCategories = []GameAttributeCategory{
	AttributeCategoryIdentifier,
	AttributeCategoryCombatStat,
	AttributeCategoryEconomy,
	AttributeCategoryProgression,
	AttributeCategoryQuality,
	AttributeCategoryProbability,
	AttributeCategoryReference,
	AttributeCategoryDescriptive,
	AttributeCategoryUnknown,
}

// IsValidGameAttributeCategory checks if the given category is valid.
func IsValidGameAttributeCategory(c GameAttributeCategory) bool {
	for _, v := range ValidGameAttributeCategories {
		if v == c {
			return true
		}
	}
	return false
}

// AttributeType is the classification of one field by name pattern.
type AttributeType struct {
	FieldName   string                `json:"field_name"`
	Category    GameAttributeCategory `json:"category"`
	Description string                `json:"description"`
}

// ============================================================================
// Attribute Statistics
// ============================================================================

// AttributeInsight is the per-field statistical summary over one table's
// records. Min, Max and Mean are nil when the field had no numeric samples.
type AttributeInsight struct {
	FieldName     string  `json:"field_name"`
	PresentCount  int     `json:"present_count"`
	BlankCount    int     `json:"blank_count"`
	DistinctCount int     `json:"distinct_count"`
	// DuplicateCount is the number of values observed more than once, not
	// the number of duplicated occurrences.
	DuplicateCount int      `json:"duplicate_count"`
	NumericCount   int      `json:"numeric_count"`
	CoverageRatio  float64  `json:"coverage_ratio"`
	Truncated      bool     `json:"truncated"`
	Min            *float64 `json:"min,omitempty"`
	Max            *float64 `json:"max,omitempty"`
	Mean           *float64 `json:"mean,omitempty"`
}

// ValueBucket is one value's share of a field's occurrences.
type ValueBucket struct {
	Value string  `json:"value"`
	Count int     `json:"count"`
	Ratio float64 `json:"ratio"`
}

// TruncatedBucketLabel names the synthetic trailing bucket that absorbs
// occurrences of values the capped tally stopped tracking.
const TruncatedBucketLabel = "remaining values (truncated)"

// AttributeValueDistribution is the most-frequent-values view of one field,
// at most twelve buckets plus the synthetic truncation bucket.
type AttributeValueDistribution struct {
	FieldName string        `json:"field_name"`
	Buckets   []ValueBucket `json:"buckets"`
	Truncated bool          `json:"truncated"`
}
