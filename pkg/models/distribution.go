package models

// ============================================================================
// Distribution Classes
// ============================================================================

// DistributionClass labels the overall shape of one numeric field's values.
type DistributionClass string

const (
	DistributionUniform     DistributionClass = "uniform"
	DistributionNormal      DistributionClass = "normal"
	DistributionSkewedLeft  DistributionClass = "skewed_left"
	DistributionSkewedRight DistributionClass = "skewed_right"
	DistributionPowerLaw    DistributionClass = "power_law"
	DistributionDiscrete    DistributionClass = "discrete"
)

// ValidDistributionClasses contains all valid class values.
var ValidDistributionClasses = []DistributionClass{
	DistributionUniform,
	DistributionNormal,
	DistributionSkewedLeft,
	DistributionSkewedRight,
	DistributionPowerLaw,
	DistributionDiscrete,
}

// IsValidDistributionClass checks if the given class is valid.
func IsValidDistributionClass(c DistributionClass) bool {
	for _, v := range ValidDistributionClasses {
		if v == c {
			return true
		}
	}
	return false
}

// GapInfo marks an unusually large empty interval between consecutive
// sorted values of a field.
type GapInfo struct {
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Description string  `json:"description"`
}

// DistributionProfile is the shape analysis of one numeric field.
type DistributionProfile struct {
	FieldName string            `json:"field_name"`
	Class     DistributionClass `json:"class"`
	Skewness  float64           `json:"skewness"`
	// Evenness is 1.0 when values spread uniformly across their range and
	// approaches 0.0 as they clump into a single region.
	Evenness float64   `json:"evenness"`
	Insight  string    `json:"insight"`
	Gaps     []GapInfo `json:"gaps,omitempty"`
}
