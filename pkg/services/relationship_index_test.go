package services

import (
	"testing"

	"github.com/tablecraft/insight-engine/pkg/models"
)

// testCatalogue returns a small relationship catalogue shaped like real
// discovery output: raw file keys on some tables, bare names on others.
func testCatalogue() []models.Relationship {
	return []models.Relationship{
		{SourceTable: "npc_drops", SourceField: "item_id", TargetTable: "data/items.xml", TargetField: "id", Confidence: 0.92, MatchCount: 311},
		{SourceTable: "shop_goods", SourceField: "item_ref", TargetTable: "items", TargetField: "id", Confidence: 0.85, MatchCount: 120},
		{SourceTable: "items", SourceField: "quality_id", TargetTable: "client_quality_colors.xml", TargetField: "id", Confidence: 0.77, MatchCount: 54},
	}
}

func TestBuildRelationshipIndex_ForwardReverse(t *testing.T) {
	idx := BuildRelationshipIndex(testCatalogue())

	if idx.Size() != 3 {
		t.Fatalf("expected 3 indexed relationships, got %d", idx.Size())
	}

	fwd := idx.Forward("npc_drops")
	if fwd == nil {
		t.Fatal("expected forward entry for npc_drops")
	}
	if got := fwd.Tables(); len(got) != 1 || got[0] != "items" {
		t.Errorf("expected npc_drops to reference [items], got %v", got)
	}

	rev := idx.Reverse("items")
	if rev == nil {
		t.Fatal("expected reverse entry for items")
	}
	counterparts := rev.Tables()
	if len(counterparts) != 2 || counterparts[0] != "npc_drops" || counterparts[1] != "shop_goods" {
		t.Errorf("expected items to be referenced by [npc_drops shop_goods], got %v", counterparts)
	}

	// items itself references quality_colors
	if got := idx.Forward("items").Tables(); len(got) != 1 || got[0] != "quality_colors" {
		t.Errorf("expected items to reference [quality_colors], got %v", got)
	}

	// Every relationship that landed in a forward bucket appears in the
	// matching reverse bucket.
	if len(idx.Forward("shop_goods").Get("items")) != len(idx.Reverse("items").Get("shop_goods")) {
		t.Error("forward and reverse buckets disagree for shop_goods -> items")
	}
}

func TestBuildRelationshipIndex_TableOrder(t *testing.T) {
	idx := BuildRelationshipIndex(testCatalogue())

	want := []string{"npc_drops", "items", "shop_goods", "quality_colors"}
	got := idx.Tables()
	if len(got) != len(want) {
		t.Fatalf("expected %d tables, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("table[%d]: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestBuildRelationshipIndex_NormalizesRawFileKeys(t *testing.T) {
	idx := BuildRelationshipIndex(testCatalogue())

	// Raw file key and bare table name hit the same bucket.
	byKey := idx.Reverse("data/items.xml")
	byName := idx.Reverse("items")
	if byKey == nil || byName == nil {
		t.Fatal("expected reverse entries for both spellings of items")
	}
	if len(byKey.All()) != len(byName.All()) {
		t.Errorf("raw key and bare name return different buckets: %d vs %d",
			len(byKey.All()), len(byName.All()))
	}

	// client_ prefix strips too.
	if idx.Reverse("client_quality_colors.xml") == nil {
		t.Error("expected reverse entry for client_quality_colors.xml")
	}

	// Stored relationships carry normalized names.
	for _, rel := range byName.All() {
		if rel.TargetTable != "items" {
			t.Errorf("expected normalized target table, got %q", rel.TargetTable)
		}
	}
}

func TestRelationshipIndex_UnknownTable(t *testing.T) {
	idx := BuildRelationshipIndex(testCatalogue())

	if idx.Forward("quests") != nil {
		t.Error("expected nil forward entry for unknown table")
	}
	if idx.Reverse("quests") != nil {
		t.Error("expected nil reverse entry for unknown table")
	}

	// Nil TableRelations stays usable.
	var tr *TableRelations
	if tr.Tables() != nil || tr.Get("items") != nil || tr.All() != nil {
		t.Error("nil TableRelations accessors should return nil")
	}
}

func TestTableRelations_All(t *testing.T) {
	rels := []models.Relationship{
		{SourceTable: "npc_drops", SourceField: "item_id", TargetTable: "items", TargetField: "id"},
		{SourceTable: "shop_goods", SourceField: "item_ref", TargetTable: "items", TargetField: "id"},
		{SourceTable: "npc_drops", SourceField: "bonus_item_id", TargetTable: "items", TargetField: "id"},
	}
	idx := BuildRelationshipIndex(rels)

	all := idx.Reverse("items").All()
	if len(all) != 3 {
		t.Fatalf("expected 3 relationships, got %d", len(all))
	}

	// Bucket order groups by counterpart: both npc_drops entries first.
	if all[0].SourceField != "item_id" || all[1].SourceField != "bonus_item_id" || all[2].SourceField != "item_ref" {
		t.Errorf("unexpected bucket order: %v, %v, %v", all[0].SourceField, all[1].SourceField, all[2].SourceField)
	}
}

func TestBuildRelationshipIndex_PassesStatsThrough(t *testing.T) {
	// Out-of-range confidence is catalogue business, not the index's.
	rels := []models.Relationship{
		{SourceTable: "a", SourceField: "x", TargetTable: "b", TargetField: "y", Confidence: 1.7, MatchCount: -1},
	}
	idx := BuildRelationshipIndex(rels)

	got := idx.Forward("a").Get("b")
	if len(got) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(got))
	}
	if got[0].Confidence != 1.7 || got[0].MatchCount != -1 {
		t.Errorf("expected stats passed through unmodified, got %+v", got[0])
	}
}

func TestBuildRelationshipIndex_Empty(t *testing.T) {
	idx := BuildRelationshipIndex(nil)

	if idx.Size() != 0 {
		t.Errorf("expected size 0, got %d", idx.Size())
	}
	if len(idx.Tables()) != 0 {
		t.Errorf("expected no tables, got %v", idx.Tables())
	}
}
