package services

import (
	"sort"

	"github.com/dominikbraun/graph"
	"go.uber.org/zap"

	"github.com/tablecraft/insight-engine/pkg/models"
)

type tableAtDepth struct {
	table string
	depth int
}

// BuildDependencyGraph walks the reference neighborhood around rootTable
// breadth-first, expanding each table at most once and stopping expansion
// at maxDepth hops. Both directions contribute edges: tables referencing
// the current table and tables it references. Every edge is recorded as
// depended-upon table pointing at the dependent table; cycle detection and
// rendering rely on that orientation.
func (a *impactAnalyzer) BuildDependencyGraph(rootTable string, maxDepth int) *models.DependencyGraph {
	root := models.NormalizeTableName(rootTable)
	depGraph := &models.DependencyGraph{
		RootTable:     root,
		Dependencies:  make(map[string][]string),
		Relationships: make(map[string]map[string][]models.Relationship),
		MaxDepth:      maxDepth,
	}

	visited := make(map[string]bool)
	queue := []tableAtDepth{{table: root, depth: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current.table] {
			continue
		}
		visited[current.table] = true
		depGraph.Tables = append(depGraph.Tables, current.table)

		if current.depth >= maxDepth {
			continue
		}

		// Tables referencing the current table depend on it.
		if dependents := a.index.Reverse(current.table); dependents != nil {
			for _, dependent := range dependents.Tables() {
				addGraphEdge(depGraph, current.table, dependent, dependents.Get(dependent))
				queue = append(queue, tableAtDepth{table: dependent, depth: current.depth + 1})
			}
		}

		// Tables the current table references are its dependencies.
		if dependencies := a.index.Forward(current.table); dependencies != nil {
			for _, dependency := range dependencies.Tables() {
				addGraphEdge(depGraph, dependency, current.table, dependencies.Get(dependency))
				queue = append(queue, tableAtDepth{table: dependency, depth: current.depth + 1})
			}
		}
	}

	a.logger.Debug("dependency graph built",
		zap.String("root", root),
		zap.Int("max_depth", maxDepth),
		zap.Int("tables", len(depGraph.Tables)),
		zap.Int("edges", depGraph.EdgeCount()))

	return depGraph
}

// addGraphEdge appends the edge unless it already exists. An edge can be
// discovered from both of its endpoints; the first discovery wins and
// carries the evidence.
func addGraphEdge(depGraph *models.DependencyGraph, from, to string, rels []models.Relationship) {
	for _, existing := range depGraph.Dependencies[from] {
		if existing == to {
			return
		}
	}
	depGraph.Dependencies[from] = append(depGraph.Dependencies[from], to)

	if depGraph.Relationships[from] == nil {
		depGraph.Relationships[from] = make(map[string][]models.Relationship)
	}
	depGraph.Relationships[from][to] = rels
}

// FindReferenceCycles detects groups of tables that reference each other
// in a loop. Returns one sorted slice per cycle of two or more tables;
// self-references are not reported. Output order is deterministic.
func (a *impactAnalyzer) FindReferenceCycles(depGraph *models.DependencyGraph) [][]string {
	g := graph.New(graph.StringHash, graph.Directed())

	for _, table := range depGraph.Tables {
		_ = g.AddVertex(table)
	}
	for _, from := range depGraph.Tables {
		for _, to := range depGraph.Dependencies[from] {
			_ = g.AddEdge(from, to)
		}
	}

	sccs, err := graph.StronglyConnectedComponents(g)
	if err != nil {
		a.logger.Warn("cycle detection failed", zap.Error(err))
		return nil
	}

	var cycles [][]string
	for _, component := range sccs {
		if len(component) < 2 {
			continue
		}
		sort.Strings(component)
		cycles = append(cycles, component)
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})

	if len(cycles) > 0 {
		a.logger.Debug("reference cycles found",
			zap.String("root", depGraph.RootTable),
			zap.Int("cycles", len(cycles)))
	}

	return cycles
}
