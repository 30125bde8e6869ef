package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/inflection"
	"go.uber.org/zap"

	"github.com/tablecraft/insight-engine/pkg/models"
)

// Report assembly constants
const (
	// MinNumericSamplesForAnalysis is how many parseable numbers a field
	// needs before correlation and distribution analysis consider it.
	MinNumericSamplesForAnalysis = 3
	// MaxCorrelationFields bounds the pairwise correlation pass.
	MaxCorrelationFields = 10
	// MaxDistributionFields bounds the distribution profiling pass.
	MaxDistributionFields = 15
	// DefaultIDField is used for outlier labeling when no field qualified
	// as the identifying field.
	DefaultIDField = "id"
)

// InsightReportBuilder assembles the full statistical portrait of one
// table file. Each builder call runs its own aggregator; instances hold no
// per-file state and one builder must serve one caller at a time.
type InsightReportBuilder interface {
	BuildReport(file models.FileRecords) *models.FileInsightReport
}

type insightReportBuilder struct {
	logger *zap.Logger
}

var _ InsightReportBuilder = (*insightReportBuilder)(nil)

// NewInsightReportBuilder creates a new report builder.
func NewInsightReportBuilder(logger *zap.Logger) InsightReportBuilder {
	return &insightReportBuilder{
		logger: logger.Named("insight-report"),
	}
}

// BuildReport aggregates every record of the file, resolves the
// identifying field, classifies field names, then layers correlation,
// distribution and balance findings on top. The advanced layer is
// fail-soft: if it panics, the basic aggregation result is still
// returned. Unparseable files yield a minimal report carrying a single
// critical issue.
func (b *insightReportBuilder) BuildReport(file models.FileRecords) *models.FileInsightReport {
	tableName := models.NormalizeTableName(file.FileKey)
	report := &models.FileInsightReport{
		ID:          uuid.New(),
		FileKey:     file.FileKey,
		TableName:   tableName,
		EntityName:  toEntityName(tableName),
		GeneratedAt: time.Now(),
	}

	if file.Unparseable {
		report.Unparseable = true
		report.BalanceIssues = append(report.BalanceIssues, models.BalanceIssue{
			Category:    models.IssueCategoryUnparseable,
			Severity:    models.IssueSeverityCritical,
			Description: fmt.Sprintf("file %s could not be parsed", file.FileKey),
			Suggestion:  "unable to parse, fix the file before analysis",
		})
		b.logger.Warn("skipping unparseable file", zap.String("file_key", file.FileKey))
		return report
	}

	entryCount := len(file.Records)
	report.EntryCount = entryCount

	aggregator := NewAttributeAggregator()
	for _, record := range file.Records {
		aggregator.Accept(record)
	}

	if field, ok := aggregator.ResolvePrimaryKeyCandidate(entryCount); ok {
		report.PrimaryKey = &field
	}

	for _, field := range aggregator.Fields() {
		stats := aggregator.Stats(field)
		report.Attributes = append(report.Attributes, stats.ToInsight(entryCount))
		report.Distributions = append(report.Distributions, stats.ToDistribution(entryCount))
		report.Types = append(report.Types, ClassifyAttribute(field))
	}

	b.runAdvancedAnalysis(report, aggregator, file.Records)

	b.logger.Debug("insight report built",
		zap.String("file_key", file.FileKey),
		zap.Int("entries", entryCount),
		zap.Int("fields", len(report.Attributes)),
		zap.Int("correlations", len(report.Correlations)),
		zap.Int("balance_issues", len(report.BalanceIssues)))

	return report
}

// runAdvancedAnalysis layers correlations, distribution profiles and
// balance findings onto the report. Recovered panics leave the report as
// built so far.
func (b *insightReportBuilder) runAdvancedAnalysis(report *models.FileInsightReport, aggregator *AttributeAggregator, records []models.Record) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("advanced analysis failed, keeping basic aggregation",
				zap.String("file_key", report.FileKey),
				zap.Any("panic", r))
		}
	}()

	var numericFields []string
	series := make(map[string][]float64)
	for _, field := range aggregator.Fields() {
		values := aggregator.NumericSeries(field)
		if len(values) >= MinNumericSamplesForAnalysis {
			numericFields = append(numericFields, field)
			series[field] = values
		}
	}

	correlationFields := numericFields
	if len(correlationFields) > MaxCorrelationFields {
		correlationFields = correlationFields[:MaxCorrelationFields]
	}
	for i := 0; i < len(correlationFields); i++ {
		for j := i + 1; j < len(correlationFields); j++ {
			f1, f2 := correlationFields[i], correlationFields[j]
			correlation := AnalyzeFieldCorrelation(f1, series[f1], f2, series[f2])
			if math.Abs(correlation.Coefficient) > CorrelationNoiseFloor {
				report.Correlations = append(report.Correlations, correlation)
			}
		}
	}

	profileFields := numericFields
	if len(profileFields) > MaxDistributionFields {
		profileFields = profileFields[:MaxDistributionFields]
	}
	for _, field := range profileFields {
		report.Profiles = append(report.Profiles, AnalyzeValueDistribution(field, series[field]))
	}

	idField := DefaultIDField
	if report.PrimaryKey != nil {
		idField = *report.PrimaryKey
	}
	report.BalanceIssues = append(report.BalanceIssues, DetectBalanceIssues(records, numericFields, idField)...)
}

// toEntityName converts a table name to a singular display name.
// Examples: "items" -> "Item", "npc_spawns" -> "Npc_spawn"
func toEntityName(tableName string) string {
	name := inflection.Singular(tableName)
	if len(name) > 0 {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return name
}
