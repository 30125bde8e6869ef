package services

import (
	"github.com/tablecraft/insight-engine/pkg/models"
)

// TableRelations groups one table's relationships by counterpart table.
// Counterpart order and within-bucket order both follow catalogue order, so
// iteration is deterministic for identical input.
type TableRelations struct {
	order   []string
	buckets map[string][]models.Relationship
}

// Tables returns the counterpart tables in first-seen catalogue order.
func (t *TableRelations) Tables() []string {
	if t == nil {
		return nil
	}
	return t.order
}

// Get returns the relationships shared with the counterpart table.
func (t *TableRelations) Get(table string) []models.Relationship {
	if t == nil {
		return nil
	}
	return t.buckets[models.NormalizeTableName(table)]
}

// All returns every relationship across all counterpart buckets, in
// catalogue order.
func (t *TableRelations) All() []models.Relationship {
	if t == nil {
		return nil
	}
	var all []models.Relationship
	for _, table := range t.order {
		all = append(all, t.buckets[table]...)
	}
	return all
}

func (t *TableRelations) add(counterpart string, rel models.Relationship) {
	if _, seen := t.buckets[counterpart]; !seen {
		t.order = append(t.order, counterpart)
	}
	t.buckets[counterpart] = append(t.buckets[counterpart], rel)
}

func newTableRelations() *TableRelations {
	return &TableRelations{buckets: make(map[string][]models.Relationship)}
}

// RelationshipIndex provides constant-time adjacency lookups over a
// relationship catalogue. Forward answers "which tables does T reference",
// reverse answers "which tables reference T". The index performs no range
// validation on confidence or match counts; catalogue facts pass through
// as given. Not safe for concurrent mutation; build once, then share for
// reads.
type RelationshipIndex struct {
	forward map[string]*TableRelations
	reverse map[string]*TableRelations
	order   []string
	seen    map[string]bool
	size    int
}

// BuildRelationshipIndex indexes the catalogue in a single pass. Table
// names are normalized, so raw file keys and bare table names land in the
// same buckets.
func BuildRelationshipIndex(relationships []models.Relationship) *RelationshipIndex {
	idx := &RelationshipIndex{
		forward: make(map[string]*TableRelations),
		reverse: make(map[string]*TableRelations),
		seen:    make(map[string]bool),
	}

	for _, rel := range relationships {
		rel.SourceTable = models.NormalizeTableName(rel.SourceTable)
		rel.TargetTable = models.NormalizeTableName(rel.TargetTable)

		idx.track(rel.SourceTable)
		idx.track(rel.TargetTable)

		fwd, ok := idx.forward[rel.SourceTable]
		if !ok {
			fwd = newTableRelations()
			idx.forward[rel.SourceTable] = fwd
		}
		fwd.add(rel.TargetTable, rel)

		rev, ok := idx.reverse[rel.TargetTable]
		if !ok {
			rev = newTableRelations()
			idx.reverse[rel.TargetTable] = rev
		}
		rev.add(rel.SourceTable, rel)

		idx.size++
	}

	return idx
}

func (idx *RelationshipIndex) track(table string) {
	if !idx.seen[table] {
		idx.seen[table] = true
		idx.order = append(idx.order, table)
	}
}

// Forward returns the tables referenced by the given table, or nil when the
// table references nothing.
func (idx *RelationshipIndex) Forward(table string) *TableRelations {
	return idx.forward[models.NormalizeTableName(table)]
}

// Reverse returns the tables referencing the given table, or nil when
// nothing references it.
func (idx *RelationshipIndex) Reverse(table string) *TableRelations {
	return idx.reverse[models.NormalizeTableName(table)]
}

// Tables returns every table in the catalogue in first-seen order.
func (idx *RelationshipIndex) Tables() []string {
	return idx.order
}

// Size returns the number of indexed relationships.
func (idx *RelationshipIndex) Size() int {
	return idx.size
}
