package services

import (
	"fmt"
	"strings"

	"github.com/tablecraft/insight-engine/pkg/logging"
	"github.com/tablecraft/insight-engine/pkg/models"
)

const renderRuleWidth = 64

func renderRule(b *strings.Builder) {
	b.WriteString(strings.Repeat("=", renderRuleWidth))
	b.WriteByte('\n')
}

// RenderImpactReport formats an impact report as designer-facing text:
// header, severity, the impacted references and the numbered cascade
// actions.
func RenderImpactReport(report *models.ImpactReport) string {
	var b strings.Builder

	renderRule(&b)
	value := logging.DisplayValue(report.Value)
	if report.Type == models.ImpactTypeUpdate {
		fmt.Fprintf(&b, "UPDATE IMPACT: %s.%s %q -> %q\n",
			report.TableName, report.FieldName, value, logging.DisplayValue(report.NewValue))
	} else {
		fmt.Fprintf(&b, "DELETE IMPACT: %s.%s = %q\n", report.TableName, report.FieldName, value)
	}
	renderRule(&b)

	fmt.Fprintf(&b, "Severity: %s\n", report.Severity)
	fmt.Fprintf(&b, "Summary:  %s\n", report.Summary)

	if len(report.References) > 0 {
		b.WriteString("\nImpacted references:\n")
		for _, ref := range report.References {
			fmt.Fprintf(&b, "  %s.%s (confidence %.2f): %s\n",
				ref.TableName, ref.FieldName, ref.Confidence, ref.Suggestion)
		}
	}

	if len(report.CascadeActions) > 0 {
		b.WriteString("\nCascade actions:\n")
		for _, action := range report.CascadeActions {
			fmt.Fprintf(&b, "  %d. %s\n", action.Step, action.Description)
		}
	}

	return b.String()
}

// RenderDependencyGraph formats the reference neighborhood: the reachable
// tables, each dependency edge with its evidence count, and any reference
// cycles.
func RenderDependencyGraph(depGraph *models.DependencyGraph, cycles [][]string) string {
	var b strings.Builder

	renderRule(&b)
	fmt.Fprintf(&b, "DEPENDENCY GRAPH: %s (max depth %d)\n", depGraph.RootTable, depGraph.MaxDepth)
	renderRule(&b)

	fmt.Fprintf(&b, "Tables (%d): %s\n", len(depGraph.Tables), strings.Join(depGraph.Tables, ", "))

	if depGraph.EdgeCount() > 0 {
		b.WriteString("\nEdges (depended-upon -> dependent):\n")
		for _, from := range depGraph.Tables {
			for _, to := range depGraph.Dependencies[from] {
				fmt.Fprintf(&b, "  %s -> %s (%d relationship(s))\n",
					from, to, len(depGraph.Relationships[from][to]))
			}
		}
	}

	if len(cycles) > 0 {
		b.WriteString("\nReference cycles:\n")
		for _, cycle := range cycles {
			fmt.Fprintf(&b, "  %s\n", strings.Join(cycle, " <-> "))
		}
	}

	return b.String()
}

// RenderInsightReport formats one table's statistical portrait: per-field
// coverage and classification, correlations, distribution insights and
// balance issues.
func RenderInsightReport(report *models.FileInsightReport) string {
	var b strings.Builder

	renderRule(&b)
	fmt.Fprintf(&b, "TABLE INSIGHTS: %s (%s)\n", report.TableName, report.EntityName)
	renderRule(&b)

	if report.Unparseable {
		b.WriteString("File could not be parsed; no analysis available.\n")
		for _, issue := range report.BalanceIssues {
			fmt.Fprintf(&b, "  [%s] %s\n", issue.Severity, issue.Description)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "Entries: %d\n", report.EntryCount)
	if report.PrimaryKey != nil {
		fmt.Fprintf(&b, "Primary key: %s\n", *report.PrimaryKey)
	} else {
		b.WriteString("Primary key: none resolved\n")
	}

	if len(report.Attributes) > 0 {
		fmt.Fprintf(&b, "\nFields (%d):\n", len(report.Attributes))
		for i, attr := range report.Attributes {
			category := models.AttributeCategoryUnknown
			if i < len(report.Types) {
				category = report.Types[i].Category
			}
			fmt.Fprintf(&b, "  %s [%s] coverage %.0f%%, distinct %d",
				attr.FieldName, category, attr.CoverageRatio*100, attr.DistinctCount)
			if attr.Mean != nil {
				fmt.Fprintf(&b, ", range %g..%g, mean %.4g", *attr.Min, *attr.Max, *attr.Mean)
			}
			b.WriteByte('\n')
		}
	}

	if len(report.Correlations) > 0 {
		b.WriteString("\nCorrelations:\n")
		for _, correlation := range report.Correlations {
			fmt.Fprintf(&b, "  %s\n", correlation.Insight)
		}
	}

	if len(report.Profiles) > 0 {
		b.WriteString("\nDistributions:\n")
		for _, profile := range report.Profiles {
			fmt.Fprintf(&b, "  %s [%s] %s\n", profile.FieldName, profile.Class, profile.Insight)
			for _, gap := range profile.Gaps {
				fmt.Fprintf(&b, "    gap: %s\n", gap.Description)
			}
		}
	}

	if len(report.BalanceIssues) > 0 {
		b.WriteString("\nBalance issues:\n")
		for _, issue := range report.BalanceIssues {
			fmt.Fprintf(&b, "  [%s] %s\n", issue.Severity, issue.Description)
			if len(issue.Examples) > 0 {
				examples := make([]string, len(issue.Examples))
				for i, example := range issue.Examples {
					examples[i] = logging.DisplayValue(example)
				}
				fmt.Fprintf(&b, "    affected: %s\n", strings.Join(examples, ", "))
			}
		}
	}

	return b.String()
}
