package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/tablecraft/insight-engine/pkg/models"
)

// Distribution analysis constants
const (
	// maxEvennessBuckets bounds the equal-width histogram used for the
	// evenness score.
	maxEvennessBuckets = 10
	// gapFactor scales the average consecutive difference into the gap
	// threshold.
	gapFactor = 3.0
	// minGapWidth filters out gaps smaller than one absolute unit, which
	// are noise in integer-valued game tables.
	minGapWidth = 1.0
	// powerLawMinSamples is the smallest series the top-decile test runs
	// on; below it the power-law check is skipped entirely.
	powerLawMinSamples = 10
	// powerLawTopShare is the share of the total sum the top decile must
	// exceed to call the shape power-law.
	powerLawTopShare = 0.5
)

// AnalyzeValueDistribution classifies the shape of one numeric field:
// skewness from population moments, an evenness score from an equal-width
// histogram, unusually large gaps between consecutive values, and a
// power-law test on the top decile. An empty series yields the discrete
// class with zeroed scores.
func AnalyzeValueDistribution(name string, values []float64) models.DistributionProfile {
	profile := models.DistributionProfile{
		FieldName: name,
		Class:     models.DistributionDiscrete,
	}

	if len(values) == 0 {
		profile.Insight = fmt.Sprintf("%s has no numeric values to analyze", name)
		return profile
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)

	mean := 0.0
	for _, v := range sorted {
		mean += v
	}
	mean /= float64(n)

	var m2, m3 float64
	for _, v := range sorted {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= float64(n)
	m3 /= float64(n)

	if m2 > 0 {
		profile.Skewness = m3 / math.Pow(m2, 1.5)
	}

	profile.Evenness = evennessScore(sorted)
	profile.Gaps = detectGaps(sorted)
	powerLaw := isPowerLaw(sorted)

	skew := profile.Skewness
	switch {
	case math.Abs(skew) < 0.5 && profile.Evenness > 0.7:
		profile.Class = models.DistributionUniform
		profile.Insight = fmt.Sprintf("%s spreads evenly between %g and %g", name, sorted[0], sorted[n-1])
	case math.Abs(skew) < 0.5:
		profile.Class = models.DistributionNormal
		profile.Insight = fmt.Sprintf("%s clusters around %.4g", name, mean)
	case skew > 1:
		profile.Class = models.DistributionSkewedRight
		profile.Insight = fmt.Sprintf("%s leans low with a long tail of high values", name)
	case skew < -1:
		profile.Class = models.DistributionSkewedLeft
		profile.Insight = fmt.Sprintf("%s leans high with a long tail of low values", name)
	case powerLaw:
		profile.Class = models.DistributionPowerLaw
		profile.Insight = fmt.Sprintf("a small share of %s values dominates the total", name)
	default:
		profile.Class = models.DistributionDiscrete
		profile.Insight = fmt.Sprintf("%s takes scattered values without a clear shape", name)
	}

	return profile
}

// evennessScore buckets the sorted values into an equal-width histogram
// and compares the observed bucket-count variance against the worst case
// of everything landing in one bucket. 1.0 means perfectly even; a zero
// value range also scores 1.0.
func evennessScore(sorted []float64) float64 {
	n := len(sorted)
	lo, hi := sorted[0], sorted[n-1]
	if hi == lo {
		return 1.0
	}

	b := maxEvennessBuckets
	if n < b {
		b = n
	}

	counts := make([]int, b)
	width := (hi - lo) / float64(b)
	for _, v := range sorted {
		idx := int((v - lo) / width)
		if idx >= b {
			idx = b - 1
		}
		counts[idx]++
	}

	expected := float64(n) / float64(b)
	var variance float64
	for _, c := range counts {
		d := float64(c) - expected
		variance += d * d
	}
	variance /= float64(b)

	// Worst case: every value in a single bucket.
	worst := (math.Pow(float64(n)-expected, 2) + float64(b-1)*expected*expected) / float64(b)
	if worst == 0 {
		return 1.0
	}
	return 1.0 - variance/worst
}

// detectGaps flags consecutive differences larger than gapFactor times the
// average difference, ignoring sub-unit gaps.
func detectGaps(sorted []float64) []models.GapInfo {
	n := len(sorted)
	if n < 2 {
		return nil
	}

	avgDiff := (sorted[n-1] - sorted[0]) / float64(n-1)
	threshold := avgDiff * gapFactor

	var gaps []models.GapInfo
	for i := 1; i < n; i++ {
		diff := sorted[i] - sorted[i-1]
		if diff > threshold && diff > minGapWidth {
			gaps = append(gaps, models.GapInfo{
				Start:       sorted[i-1],
				End:         sorted[i],
				Description: fmt.Sprintf("no values between %g and %g", sorted[i-1], sorted[i]),
			})
		}
	}
	return gaps
}

// isPowerLaw reports whether the top decile of sorted values carries more
// than half the total sum. Series under ten samples never qualify.
func isPowerLaw(sorted []float64) bool {
	n := len(sorted)
	if n < powerLawMinSamples {
		return false
	}

	topCount := n / 10
	var total, top float64
	for i, v := range sorted {
		total += v
		if i >= n-topCount {
			top += v
		}
	}
	return top > powerLawTopShare*total
}
