package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tablecraft/insight-engine/pkg/models"
)

// Impact severity thresholds, graded on distinct impacted tables.
const (
	// WarningTableThreshold is the highest impacted-table count still
	// graded as a warning; above it the impact is critical.
	WarningTableThreshold = 3
)

// ImpactAnalyzer answers "what breaks if" queries against a previously
// built RelationshipIndex. All operations are read-only.
type ImpactAnalyzer interface {
	// AnalyzeDeleteImpact reports what deleting a value would break.
	AnalyzeDeleteImpact(table, field, value string) *models.ImpactReport

	// AnalyzeUpdateImpact reports which references need a synchronized
	// update when a value changes.
	AnalyzeUpdateImpact(table, field, oldValue, newValue string) *models.ImpactReport

	// BuildDependencyGraph expands the reference neighborhood around a
	// root table out to maxDepth hops.
	BuildDependencyGraph(rootTable string, maxDepth int) *models.DependencyGraph

	// FindReferenceCycles reports groups of tables in the graph that
	// reference each other in a loop.
	FindReferenceCycles(depGraph *models.DependencyGraph) [][]string
}

type impactAnalyzer struct {
	index  *RelationshipIndex
	logger *zap.Logger
}

var _ ImpactAnalyzer = (*impactAnalyzer)(nil)

// NewImpactAnalyzer creates a new impact analyzer over the given index.
func NewImpactAnalyzer(index *RelationshipIndex, logger *zap.Logger) ImpactAnalyzer {
	return &impactAnalyzer{
		index:  index,
		logger: logger.Named("impact-analyzer"),
	}
}

func (a *impactAnalyzer) AnalyzeDeleteImpact(table, field, value string) *models.ImpactReport {
	report := &models.ImpactReport{
		ID:          uuid.New(),
		Type:        models.ImpactTypeDelete,
		TableName:   table,
		FieldName:   field,
		Value:       value,
		GeneratedAt: time.Now(),
	}

	suggestion := "must delete or clear this field's value"
	impactedTables := a.collectReferences(report, table, field, suggestion)

	if impactedTables == 0 {
		report.Severity = models.ImpactSeveritySafe
		report.Summary = "no references found, safe to delete"
		return report
	}

	report.Severity = gradeSeverity(impactedTables)
	report.Summary = fmt.Sprintf("deleting this value affects %d table(s) across %d reference(s)",
		impactedTables, len(report.References))

	a.generateCascadeActions(report)

	a.logger.Debug("delete impact analyzed",
		zap.String("table", table),
		zap.String("field", field),
		zap.Int("impacted_tables", impactedTables),
		zap.String("severity", string(report.Severity)))

	return report
}

func (a *impactAnalyzer) AnalyzeUpdateImpact(table, field, oldValue, newValue string) *models.ImpactReport {
	report := &models.ImpactReport{
		ID:          uuid.New(),
		Type:        models.ImpactTypeUpdate,
		TableName:   table,
		FieldName:   field,
		Value:       oldValue,
		NewValue:    newValue,
		GeneratedAt: time.Now(),
	}

	suggestion := fmt.Sprintf("update from %q to %q", oldValue, newValue)
	impactedTables := a.collectReferences(report, table, field, suggestion)

	if impactedTables == 0 {
		report.Severity = models.ImpactSeveritySafe
		report.Summary = "no references found, safe to update"
		return report
	}

	report.Severity = gradeSeverity(impactedTables)
	report.Summary = fmt.Sprintf("changing this value affects %d table(s) across %d reference(s), needs synchronized update",
		impactedTables, len(report.References))

	a.generateCascadeActions(report)

	a.logger.Debug("update impact analyzed",
		zap.String("table", table),
		zap.String("field", field),
		zap.Int("impacted_tables", impactedTables),
		zap.String("severity", string(report.Severity)))

	return report
}

// collectReferences fills report.References from the reverse index and
// returns the number of distinct impacted tables. Matching is a
// case-insensitive substring test of the queried field against each
// relationship's target field. The fuzziness is load-bearing: it lets a
// query for "id" match references discovered against "item_id", which is
// how these tables actually name things. Do not tighten to exact match.
func (a *impactAnalyzer) collectReferences(report *models.ImpactReport, table, field, suggestion string) int {
	referencing := a.index.Reverse(table)
	if referencing == nil {
		return 0
	}

	fieldLower := strings.ToLower(field)
	impactedTables := 0

	for _, sourceTable := range referencing.Tables() {
		matched := false
		for _, rel := range referencing.Get(sourceTable) {
			if !strings.Contains(strings.ToLower(rel.TargetField), fieldLower) {
				continue
			}
			report.References = append(report.References, models.ImpactedReference{
				TableName:  rel.SourceTable,
				FieldName:  rel.SourceField,
				Confidence: rel.Confidence,
				Suggestion: suggestion,
			})
			matched = true
		}
		if matched {
			impactedTables++
		}
	}

	return impactedTables
}

func gradeSeverity(impactedTables int) models.ImpactSeverity {
	switch {
	case impactedTables == 0:
		return models.ImpactSeveritySafe
	case impactedTables <= WarningTableThreshold:
		return models.ImpactSeverityWarning
	default:
		return models.ImpactSeverityCritical
	}
}

// generateCascadeActions groups the collected references by table in
// first-seen order and numbers the resulting steps from 1. For updates the
// description names only the first referencing field of each table, even
// when several fields in that table match.
func (a *impactAnalyzer) generateCascadeActions(report *models.ImpactReport) {
	var tableOrder []string
	byTable := make(map[string][]models.ImpactedReference)

	for _, ref := range report.References {
		if _, seen := byTable[ref.TableName]; !seen {
			tableOrder = append(tableOrder, ref.TableName)
		}
		byTable[ref.TableName] = append(byTable[ref.TableName], ref)
	}

	for i, tableName := range tableOrder {
		refs := byTable[tableName]
		action := models.CascadeAction{
			Step:       i + 1,
			TableName:  tableName,
			References: refs,
		}

		switch report.Type {
		case models.ImpactTypeDelete:
			action.Description = fmt.Sprintf("delete or clear %d record(s) in table %s", len(refs), tableName)
		case models.ImpactTypeUpdate:
			action.Description = fmt.Sprintf("update field %s in table %s from %q to %q",
				refs[0].FieldName, tableName, report.Value, report.NewValue)
		}

		report.CascadeActions = append(report.CascadeActions, action)
	}
}
