package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tablecraft/insight-engine/pkg/models"
)

// Outlier detection constants
const (
	// minOutlierSamples is the smallest numeric series worth testing.
	minOutlierSamples = 5
	// maxReportedOutliers caps how many outliers still read as an anomaly.
	// Above it the extremes are a broad pattern of the field, not a data
	// problem, and no issue is emitted.
	maxReportedOutliers = 5
	// outlierIQRMultiplier widens the quartile fence. Three IQRs flags only
	// far-out values; game tables legitimately spread wide.
	outlierIQRMultiplier = 3.0
	// maxIssueExamples caps the affected-record labels per issue.
	maxIssueExamples = 3
)

// DetectBalanceIssues scans each numeric field for extreme values outside
// a widened interquartile fence. Quartiles are taken at plain integer
// indexes n/4 and 3n/4 of the sorted values, not interpolated. Outliers
// are located by re-scanning the records in their original order and
// labeled with the id field's value, falling back to a positional label.
// Fields with no outliers or with more than maxReportedOutliers stay
// silent.
func DetectBalanceIssues(records []models.Record, numericFields []string, idField string) []models.BalanceIssue {
	var issues []models.BalanceIssue

	for _, field := range numericFields {
		values := make([]float64, 0, len(records))
		for _, record := range records {
			if v, ok := numericFieldValue(record, field); ok {
				values = append(values, v)
			}
		}
		if len(values) < minOutlierSamples {
			continue
		}

		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		n := len(sorted)

		q1 := sorted[n/4]
		q3 := sorted[3*n/4]
		iqr := q3 - q1
		lower := q1 - outlierIQRMultiplier*iqr
		upper := q3 + outlierIQRMultiplier*iqr

		outliers := 0
		var examples []string
		for i, record := range records {
			v, ok := numericFieldValue(record, field)
			if !ok || (v >= lower && v <= upper) {
				continue
			}
			outliers++
			if len(examples) < maxIssueExamples {
				examples = append(examples, recordLabel(record, idField, i))
			}
		}

		if outliers == 0 || outliers > maxReportedOutliers {
			continue
		}

		issues = append(issues, models.BalanceIssue{
			Category:    models.IssueCategoryOutlier,
			Severity:    models.IssueSeverityWarning,
			Description: fmt.Sprintf("field %s has %d extreme value(s) outside [%g, %g]", field, outliers, lower, upper),
			Suggestion:  "check whether these records are intended or data entry mistakes",
			Examples:    examples,
		})
	}

	return issues
}

func numericFieldValue(record models.Record, field string) (float64, bool) {
	raw, ok := record[field]
	if !ok {
		return 0, false
	}
	value := strings.TrimSpace(raw)
	if !numericValuePattern.MatchString(value) {
		return 0, false
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// recordLabel identifies a record by its id field value, or by 1-based
// position when the id field is blank or missing.
func recordLabel(record models.Record, idField string, index int) string {
	if id := strings.TrimSpace(record[idField]); id != "" {
		return id
	}
	return fmt.Sprintf("record %d", index+1)
}
