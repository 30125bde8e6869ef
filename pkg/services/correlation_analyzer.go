package services

import (
	"fmt"
	"math"

	"github.com/tablecraft/insight-engine/pkg/models"
)

// Correlation classification thresholds
const (
	// CorrelationNoiseFloor is the |r| below which a pair is reported as
	// uncorrelated.
	CorrelationNoiseFloor = 0.3
	// StrongCorrelationThreshold is the |r| above which a positive pair is
	// probed for non-linear growth.
	StrongCorrelationThreshold = 0.7

	// Growth heuristic parameters.
	growthMinPoints  = 5
	growthWindow     = 10
	growthMinRates   = 3
	growthRateStep   = 1.1
	growthPowerShare = 0.6
)

// AnalyzeFieldCorrelation computes the Pearson correlation between two
// aligned numeric series and classifies the functional shape. Mismatched
// or empty series are not an error: they yield the none pattern with an
// explanatory insight, since fields with spotty numeric content routinely
// produce series of different lengths.
func AnalyzeFieldCorrelation(name1 string, values1 []float64, name2 string, values2 []float64) models.FieldCorrelation {
	correlation := models.FieldCorrelation{
		Field1:  name1,
		Field2:  name2,
		Pattern: models.CorrelationNone,
	}

	if len(values1) == 0 || len(values2) == 0 {
		correlation.Insight = fmt.Sprintf("%s and %s have no comparable values", name1, name2)
		return correlation
	}
	if len(values1) != len(values2) {
		correlation.Insight = fmt.Sprintf("%s and %s are not comparable, value counts differ", name1, name2)
		return correlation
	}

	r := pearson(values1, values2)
	correlation.Coefficient = r

	switch abs := math.Abs(r); {
	case abs < CorrelationNoiseFloor:
		correlation.Pattern = models.CorrelationNone
		correlation.Insight = fmt.Sprintf("no meaningful correlation between %s and %s", name1, name2)
	case abs <= StrongCorrelationThreshold:
		if r > 0 {
			correlation.Pattern = models.CorrelationPositiveLinear
			correlation.Insight = fmt.Sprintf("%s tends to rise with %s (r=%.2f)", name2, name1, r)
		} else {
			correlation.Pattern = models.CorrelationNegativeLinear
			correlation.Insight = fmt.Sprintf("%s tends to fall as %s rises (r=%.2f)", name2, name1, r)
		}
	case r > StrongCorrelationThreshold:
		correlation.Pattern = classifyGrowth(values1, values2)
		if correlation.Pattern == models.CorrelationPowerGrowth {
			correlation.Insight = fmt.Sprintf("%s grows faster than linear against %s (r=%.2f), typical of progression curves", name2, name1, r)
		} else {
			correlation.Insight = fmt.Sprintf("%s grows linearly with %s (r=%.2f)", name2, name1, r)
		}
	default:
		// Strong negative correlation is not probed for growth shape.
		correlation.Pattern = models.CorrelationNegativeLinear
		correlation.Insight = fmt.Sprintf("%s falls sharply as %s rises (r=%.2f)", name2, name1, r)
	}

	return correlation
}

// pearson computes the correlation coefficient via the sums formula.
// A zero denominator (constant series) yields 0.
func pearson(x, y []float64) float64 {
	n := float64(len(x))
	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}

	numerator := n*sumXY - sumX*sumY
	denominator := math.Sqrt(n*sumX2-sumX*sumX) * math.Sqrt(n*sumY2-sumY*sumY)
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// classifyGrowth separates accelerating growth from plain linear growth by
// watching how the discrete rate dy/dx develops over the first few points.
// Series too short to judge default to linear growth.
func classifyGrowth(x, y []float64) models.CorrelationPattern {
	if len(x) < growthMinPoints {
		return models.CorrelationLinearGrowth
	}

	window := len(x)
	if window > growthWindow {
		window = growthWindow
	}

	var rates []float64
	for i := 1; i < window; i++ {
		dx := x[i] - x[i-1]
		if dx > 0 {
			rates = append(rates, (y[i]-y[i-1])/dx)
		}
	}
	if len(rates) < growthMinRates {
		return models.CorrelationLinearGrowth
	}

	increases := 0
	for i := 1; i < len(rates); i++ {
		if rates[i] > rates[i-1]*growthRateStep {
			increases++
		}
	}

	if float64(increases) >= growthPowerShare*float64(len(rates)-1) {
		return models.CorrelationPowerGrowth
	}
	return models.CorrelationLinearGrowth
}
