package models

// DependencyGraph is the bounded reference neighborhood around a root
// table. Every edge points from the depended-upon table to the table that
// depends on it, regardless of which direction the traversal discovered it
// in, so downstream consumers can rely on a single orientation.
type DependencyGraph struct {
	RootTable string `json:"root_table"`
	// Tables lists every table in the neighborhood in first-encountered
	// order, root first.
	Tables []string `json:"tables"`
	// Dependencies maps depended-upon table to the ordered list of tables
	// that depend on it. Lists contain no duplicates.
	Dependencies map[string][]string `json:"dependencies"`
	// Relationships carries the evidence for each edge, keyed by the same
	// from/to orientation as Dependencies.
	Relationships map[string]map[string][]Relationship `json:"relationships,omitempty"`
	MaxDepth      int                                  `json:"max_depth"`
}

// HasTable reports whether the graph neighborhood contains the table.
func (g *DependencyGraph) HasTable(table string) bool {
	for _, t := range g.Tables {
		if t == table {
			return true
		}
	}
	return false
}

// EdgeCount returns the total number of dependency edges.
func (g *DependencyGraph) EdgeCount() int {
	n := 0
	for _, deps := range g.Dependencies {
		n += len(deps)
	}
	return n
}
