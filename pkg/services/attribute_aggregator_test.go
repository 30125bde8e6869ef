package services

import (
	"fmt"
	"math"
	"testing"

	"github.com/tablecraft/insight-engine/pkg/models"
)

func TestAttributeStats_DuplicateCounting(t *testing.T) {
	s := newAttributeStats("quality")

	s.Record("rare")
	s.Record("rare")
	if s.duplicateSamples != 1 {
		t.Errorf("second sighting: expected 1 duplicate, got %d", s.duplicateSamples)
	}

	// Third and fourth sightings do not count the value again.
	s.Record("rare")
	s.Record("rare")
	if s.duplicateSamples != 1 {
		t.Errorf("further sightings: expected 1 duplicate, got %d", s.duplicateSamples)
	}

	s.Record("epic")
	s.Record("epic")
	if s.duplicateSamples != 2 {
		t.Errorf("second duplicated value: expected 2 duplicates, got %d", s.duplicateSamples)
	}

	insight := s.ToInsight(6)
	if insight.DistinctCount != 2 {
		t.Errorf("expected 2 distinct values, got %d", insight.DistinctCount)
	}
	if insight.DuplicateCount != 2 {
		t.Errorf("expected DuplicateCount 2, got %d", insight.DuplicateCount)
	}
}

func TestAttributeStats_BlankValues(t *testing.T) {
	s := newAttributeStats("notes")

	s.Record("")
	s.Record("   ")
	s.Record("fine")

	if s.presentCount != 3 {
		t.Errorf("expected 3 present, got %d", s.presentCount)
	}
	if s.blankCount != 2 {
		t.Errorf("expected 2 blanks, got %d", s.blankCount)
	}

	insight := s.ToInsight(3)
	if insight.DistinctCount != 1 {
		t.Errorf("blanks must not enter the distinct tally, got %d", insight.DistinctCount)
	}
	if insight.NumericCount != 0 {
		t.Errorf("blanks must not enter numeric stats, got %d", insight.NumericCount)
	}
}

func TestAttributeStats_NumericRecognition(t *testing.T) {
	tests := []struct {
		value   string
		numeric bool
	}{
		{"100", true},
		{"-5", true},
		{"0.25", true},
		{"  42  ", true}, // trimmed before matching
		{"1e5", false},   // scientific notation stays textual
		{"1,000", false},
		{"10.", false},
		{"abc", false},
		{"12abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			s := newAttributeStats("x")
			s.Record(tt.value)
			if got := s.numericSamples == 1; got != tt.numeric {
				t.Errorf("value %q: numeric=%v, expected %v", tt.value, got, tt.numeric)
			}
		})
	}
}

func TestAttributeStats_RunningStats(t *testing.T) {
	s := newAttributeStats("attack")

	for _, v := range []string{"10", "20", "40"} {
		s.Record(v)
	}

	insight := s.ToInsight(3)
	if insight.Min == nil || insight.Max == nil || insight.Mean == nil {
		t.Fatal("expected numeric stats to be set")
	}
	if *insight.Min != 10 || *insight.Max != 40 {
		t.Errorf("expected min 10 max 40, got %g and %g", *insight.Min, *insight.Max)
	}
	if math.Abs(*insight.Mean-70.0/3.0) > 1e-9 {
		t.Errorf("expected mean %.6f, got %.6f", 70.0/3.0, *insight.Mean)
	}
}

func TestAttributeStats_NoNumericSamples(t *testing.T) {
	s := newAttributeStats("name")
	s.Record("Iron Sword")

	insight := s.ToInsight(1)
	if insight.Min != nil || insight.Max != nil || insight.Mean != nil {
		t.Error("expected nil numeric stats for a text-only field")
	}
}

func TestAttributeStats_DistinctCap(t *testing.T) {
	s := newAttributeStats("id")

	for i := 0; i < MaxTrackedDistinctValues+2; i++ {
		s.Record(fmt.Sprintf("%d", i))
	}

	if len(s.valueCounts) != MaxTrackedDistinctValues {
		t.Errorf("expected tally capped at %d, got %d", MaxTrackedDistinctValues, len(s.valueCounts))
	}
	if !s.truncated {
		t.Error("expected truncated flag after cap")
	}

	// Known values keep counting past the cap.
	s.Record("0")
	if s.valueCounts["0"] != 2 {
		t.Errorf("expected known value to keep counting, got %d", s.valueCounts["0"])
	}
	if s.duplicateSamples != 1 {
		t.Errorf("expected duplicate tally to keep working, got %d", s.duplicateSamples)
	}

	insight := s.ToInsight(MaxTrackedDistinctValues + 3)
	if !insight.Truncated {
		t.Error("expected Truncated on the insight")
	}
	if insight.PresentCount != MaxTrackedDistinctValues+3 {
		t.Errorf("present count must include untracked values, got %d", insight.PresentCount)
	}
}

func TestAttributeStats_ToDistribution(t *testing.T) {
	s := newAttributeStats("quality")

	// 15 distinct values, value i fed (16-i) times: counts 15 down to 1.
	for i := 1; i <= 15; i++ {
		for j := 0; j < 16-i; j++ {
			s.Record(fmt.Sprintf("q%d", i))
		}
	}
	total := s.presentCount // 120

	dist := s.ToDistribution(total)
	if !dist.Truncated {
		t.Error("expected truncated distribution for 15 distinct values")
	}
	if len(dist.Buckets) != MaxDistributionBuckets+1 {
		t.Fatalf("expected %d buckets plus the synthetic one, got %d", MaxDistributionBuckets, len(dist.Buckets))
	}

	if dist.Buckets[0].Value != "q1" || dist.Buckets[0].Count != 15 {
		t.Errorf("expected top bucket q1 x15, got %s x%d", dist.Buckets[0].Value, dist.Buckets[0].Count)
	}
	if math.Abs(dist.Buckets[0].Ratio-15.0/120.0) > 1e-9 {
		t.Errorf("expected ratio %.4f, got %.4f", 15.0/120.0, dist.Buckets[0].Ratio)
	}

	last := dist.Buckets[len(dist.Buckets)-1]
	if last.Value != models.TruncatedBucketLabel {
		t.Errorf("expected synthetic trailing bucket, got %q", last.Value)
	}
	// Dropped values q13, q14, q15 carried 3+2+1 occurrences.
	if last.Count != 6 {
		t.Errorf("expected leftover count 6, got %d", last.Count)
	}
	if last.Ratio != 0 {
		t.Errorf("synthetic bucket ratio must stay 0, got %g", last.Ratio)
	}
}

func TestAttributeStats_ToDistributionSmall(t *testing.T) {
	s := newAttributeStats("tier")
	s.Record("a")
	s.Record("b")
	s.Record("b")

	dist := s.ToDistribution(3)
	if dist.Truncated {
		t.Error("expected no truncation for 2 distinct values")
	}
	if len(dist.Buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(dist.Buckets))
	}
	// Descending by count.
	if dist.Buckets[0].Value != "b" || dist.Buckets[1].Value != "a" {
		t.Errorf("expected [b a], got [%s %s]", dist.Buckets[0].Value, dist.Buckets[1].Value)
	}
}

func TestAttributeStats_ToDistributionTieOrder(t *testing.T) {
	s := newAttributeStats("slot")
	for _, v := range []string{"head", "chest", "legs"} {
		s.Record(v)
	}

	dist := s.ToDistribution(3)
	// Equal counts keep first-seen order.
	want := []string{"head", "chest", "legs"}
	for i, b := range dist.Buckets {
		if b.Value != want[i] {
			t.Errorf("bucket[%d]: expected %s, got %s", i, want[i], b.Value)
		}
	}
}

func TestAttributeAggregator_Accept(t *testing.T) {
	agg := NewAttributeAggregator()

	agg.Accept(models.Record{"name": "Iron Sword", "id": "1001"})
	agg.Accept(models.Record{"id": "1002", "price": "250"})

	fields := agg.Fields()
	want := []string{"id", "name", "price"}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %v", len(want), fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field[%d]: expected %s, got %s", i, want[i], fields[i])
		}
	}

	// A field absent from a record contributes nothing.
	if agg.Stats("name").presentCount != 1 {
		t.Errorf("expected name present once, got %d", agg.Stats("name").presentCount)
	}
	if agg.Stats("id").presentCount != 2 {
		t.Errorf("expected id present twice, got %d", agg.Stats("id").presentCount)
	}
	if agg.Stats("missing") != nil {
		t.Error("expected nil stats for unseen field")
	}
}

func TestAttributeAggregator_NumericSeries(t *testing.T) {
	agg := NewAttributeAggregator()
	agg.Accept(models.Record{"level": "1", "exp": "100"})
	agg.Accept(models.Record{"level": "2", "exp": "n/a"})
	agg.Accept(models.Record{"level": "3", "exp": "420"})

	levels := agg.NumericSeries("level")
	if len(levels) != 3 || levels[0] != 1 || levels[2] != 3 {
		t.Errorf("unexpected level series: %v", levels)
	}

	// The unparseable exp value is absent, so the series is shorter.
	exps := agg.NumericSeries("exp")
	if len(exps) != 2 {
		t.Errorf("expected 2 exp samples, got %v", exps)
	}

	if agg.NumericSeries("missing") != nil {
		t.Error("expected nil series for unseen field")
	}
}

func TestResolvePrimaryKeyCandidate(t *testing.T) {
	agg := NewAttributeAggregator()
	for i := 0; i < 10; i++ {
		agg.Accept(models.Record{
			"id":      fmt.Sprintf("%d", 1000+i),
			"quality": "common",
		})
	}

	field, ok := agg.ResolvePrimaryKeyCandidate(10)
	if !ok || field != "id" {
		t.Errorf("expected id as key candidate, got %q (found=%v)", field, ok)
	}
}

func TestResolvePrimaryKeyCandidate_OneDuplicate(t *testing.T) {
	agg := NewAttributeAggregator()
	for i := 0; i < 9; i++ {
		agg.Accept(models.Record{"code": fmt.Sprintf("%d", i)})
	}
	// Tenth record repeats an existing code: full coverage, one duplicate.
	agg.Accept(models.Record{"code": "0"})

	if field, ok := agg.ResolvePrimaryKeyCandidate(10); ok {
		t.Errorf("a single duplicate must disqualify, got %q", field)
	}
}

func TestResolvePrimaryKeyCandidate_CoverageThreshold(t *testing.T) {
	agg := NewAttributeAggregator()
	for i := 0; i < 9; i++ {
		agg.Accept(models.Record{"id": fmt.Sprintf("%d", i)})
	}
	agg.Accept(models.Record{"name": "unkeyed"})

	// id covers 9 of 10 records: below the 0.95 floor.
	if field, ok := agg.ResolvePrimaryKeyCandidate(10); ok {
		t.Errorf("expected no candidate below coverage threshold, got %q", field)
	}
}

func TestResolvePrimaryKeyCandidate_BlankDisqualifies(t *testing.T) {
	agg := NewAttributeAggregator()
	agg.Accept(models.Record{"id": "1"})
	agg.Accept(models.Record{"id": " "})

	if field, ok := agg.ResolvePrimaryKeyCandidate(2); ok {
		t.Errorf("blank value must disqualify, got %q", field)
	}
}

func TestResolvePrimaryKeyCandidate_FirstOfEqualsWins(t *testing.T) {
	agg := NewAttributeAggregator()
	for i := 0; i < 5; i++ {
		agg.Accept(models.Record{
			"guid": fmt.Sprintf("g%d", i),
			"id":   fmt.Sprintf("%d", i),
		})
	}

	// Both qualify at full coverage; the first discovered field sticks.
	field, ok := agg.ResolvePrimaryKeyCandidate(5)
	if !ok || field != "guid" {
		t.Errorf("expected guid (first discovered), got %q", field)
	}
}
