package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tablecraft/insight-engine/pkg/models"
)

// Aggregation configuration constants
const (
	// MaxTrackedDistinctValues caps the per-field distinct tally. Once hit,
	// never-seen values stop being tracked while known values keep
	// counting.
	MaxTrackedDistinctValues = 500
	// MaxDistributionBuckets is the top-N window of the value distribution.
	MaxDistributionBuckets = 12
	// PrimaryKeyCoverageThreshold is the minimum coverage ratio a field
	// needs to qualify as the identifying field.
	PrimaryKeyCoverageThreshold = 0.95
)

// numericValuePattern accepts integers and plain decimals with an optional
// leading minus. Scientific notation and thousand separators stay textual.
var numericValuePattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// AttributeStats accumulates statistics for a single field. Values are fed
// in through Record during the accumulation phase; the To* methods
// snapshot the result once all records are seen. Not safe for concurrent
// use.
type AttributeStats struct {
	FieldName string

	presentCount     int
	blankCount       int
	duplicateSamples int
	truncated        bool

	valueCounts map[string]int
	valueOrder  []string

	numericSamples int
	numericValues  []float64
	min            float64
	max            float64
	mean           float64
}

func newAttributeStats(field string) *AttributeStats {
	return &AttributeStats{
		FieldName:   field,
		valueCounts: make(map[string]int),
	}
}

// Record feeds one raw value into the accumulator. Blank values count as
// blanks only; they enter neither the distinct tally nor the numeric
// stats. Values matching the numeric pattern additionally update min, max
// and a single-pass running mean.
func (s *AttributeStats) Record(raw string) {
	s.presentCount++

	value := strings.TrimSpace(raw)
	if value == "" {
		s.blankCount++
		return
	}

	count, tracked := s.valueCounts[value]
	switch {
	case tracked:
		s.valueCounts[value] = count + 1
		// A value becomes a duplicate exactly once, on its second sighting.
		if count == 1 {
			s.duplicateSamples++
		}
	case len(s.valueCounts) < MaxTrackedDistinctValues:
		s.valueCounts[value] = 1
		s.valueOrder = append(s.valueOrder, value)
	default:
		s.truncated = true
	}

	if numericValuePattern.MatchString(value) {
		if x, err := strconv.ParseFloat(value, 64); err == nil {
			s.recordNumeric(x)
		}
	}
}

func (s *AttributeStats) recordNumeric(x float64) {
	s.numericSamples++
	if s.numericSamples == 1 {
		s.min, s.max = x, x
	} else {
		if x < s.min {
			s.min = x
		}
		if x > s.max {
			s.max = x
		}
	}
	s.mean += (x - s.mean) / float64(s.numericSamples)
	s.numericValues = append(s.numericValues, x)
}

// CoverageRatio returns presentCount over entryCount, 0 for an empty table.
func (s *AttributeStats) CoverageRatio(entryCount int) float64 {
	if entryCount == 0 {
		return 0
	}
	return float64(s.presentCount) / float64(entryCount)
}

// ToInsight snapshots the accumulated statistics. Min, Max and Mean are
// nil when the field never produced a numeric sample.
func (s *AttributeStats) ToInsight(entryCount int) models.AttributeInsight {
	insight := models.AttributeInsight{
		FieldName:      s.FieldName,
		PresentCount:   s.presentCount,
		BlankCount:     s.blankCount,
		DistinctCount:  len(s.valueCounts),
		DuplicateCount: s.duplicateSamples,
		NumericCount:   s.numericSamples,
		CoverageRatio:  s.CoverageRatio(entryCount),
		Truncated:      s.truncated,
	}
	if s.numericSamples > 0 {
		minVal, maxVal, meanVal := s.min, s.max, s.mean
		insight.Min = &minVal
		insight.Max = &maxVal
		insight.Mean = &meanVal
	}
	return insight
}

// ToDistribution snapshots the most-frequent-values view: top buckets by
// descending count, ties kept in first-seen order. When the tally was
// truncated by the distinct cap or the top-N window, a synthetic trailing
// bucket absorbs the leftover occurrence count. Its ratio stays 0.
func (s *AttributeStats) ToDistribution(entryCount int) models.AttributeValueDistribution {
	buckets := make([]models.ValueBucket, 0, len(s.valueOrder))
	for _, value := range s.valueOrder {
		count := s.valueCounts[value]
		ratio := 0.0
		if entryCount > 0 {
			ratio = float64(count) / float64(entryCount)
		}
		buckets = append(buckets, models.ValueBucket{Value: value, Count: count, Ratio: ratio})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})

	truncated := s.truncated || len(buckets) > MaxDistributionBuckets
	if len(buckets) > MaxDistributionBuckets {
		buckets = buckets[:MaxDistributionBuckets]
	}

	if truncated {
		kept := 0
		for _, b := range buckets {
			kept += b.Count
		}
		leftover := s.presentCount - s.blankCount - kept
		if leftover > 0 {
			buckets = append(buckets, models.ValueBucket{
				Value: models.TruncatedBucketLabel,
				Count: leftover,
				Ratio: 0,
			})
		}
	}

	return models.AttributeValueDistribution{
		FieldName: s.FieldName,
		Buckets:   buckets,
		Truncated: truncated,
	}
}

// AttributeAggregator routes record fields into per-field accumulators.
// One aggregator serves exactly one analysis run and must not be shared
// across goroutines; the orchestrator creates a fresh instance per report.
type AttributeAggregator struct {
	stats map[string]*AttributeStats
	order []string
}

// NewAttributeAggregator creates an empty aggregator.
func NewAttributeAggregator() *AttributeAggregator {
	return &AttributeAggregator{
		stats: make(map[string]*AttributeStats),
	}
}

// Accept routes every field of the record into its accumulator, creating
// accumulators on first sight. Fields within one record are visited in
// sorted name order so that field discovery order is deterministic; a
// field absent from a record simply contributes nothing.
func (a *AttributeAggregator) Accept(record models.Record) {
	fields := make([]string, 0, len(record))
	for field := range record {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		s, ok := a.stats[field]
		if !ok {
			s = newAttributeStats(field)
			a.stats[field] = s
			a.order = append(a.order, field)
		}
		s.Record(record[field])
	}
}

// Fields returns every seen field in discovery order.
func (a *AttributeAggregator) Fields() []string {
	return a.order
}

// Stats returns the accumulator for a field, or nil if never seen.
func (a *AttributeAggregator) Stats(field string) *AttributeStats {
	return a.stats[field]
}

// NumericSeries returns the field's numeric values in record order. Values
// that failed the numeric pattern are absent, so two fields' series may
// differ in length.
func (a *AttributeAggregator) NumericSeries(field string) []float64 {
	s := a.stats[field]
	if s == nil {
		return nil
	}
	return s.numericValues
}

// ResolvePrimaryKeyCandidate selects the field most likely to identify
// records: coverage of at least 0.95, zero duplicates, zero blanks, best
// coverage wins. The comparison is strictly greater, so among equal-ratio
// qualifiers the first discovered field sticks. Returns false when no
// field qualifies.
func (a *AttributeAggregator) ResolvePrimaryKeyCandidate(entryCount int) (string, bool) {
	var candidate string
	bestRatio := 0.0
	found := false

	for _, field := range a.order {
		s := a.stats[field]
		if s.duplicateSamples > 0 || s.blankCount > 0 {
			continue
		}
		ratio := s.CoverageRatio(entryCount)
		if ratio < PrimaryKeyCoverageThreshold {
			continue
		}
		if ratio > bestRatio {
			candidate = field
			bestRatio = ratio
			found = true
		}
	}

	return candidate, found
}
