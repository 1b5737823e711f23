package model_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nikbrunner/nt/internal/model"
)

func TestItem_JSONFieldNames(t *testing.T) {
	item := model.Item{ID: "a", ParentID: "p", Title: "Notes", Icon: "📁", Order: 3}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	for _, field := range []string{`"id":"a"`, `"parentId":"p"`, `"title":"Notes"`, `"order":3`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("expected %s in %s", field, data)
		}
	}
}

func TestNewItem_Defaults(t *testing.T) {
	item := model.NewItem(model.NewItemParams{})

	if item.ID == "" {
		t.Error("expected generated ID")
	}
	if !item.IsRoot() {
		t.Errorf("expected root item, got parent %q", item.ParentID)
	}
	if item.Order != 0 {
		t.Errorf("expected order 0, got %d", item.Order)
	}
	if !strings.HasPrefix(item.Title, model.PlaceholderPrefix) || len(item.Title) != len(model.PlaceholderPrefix)+5 {
		t.Errorf("unexpected placeholder title %q", item.Title)
	}
	if item.Icon != model.DefaultIcon {
		t.Errorf("expected default icon, got %q", item.Icon)
	}
}

func TestNewItem_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		item := model.NewItem(model.NewItemParams{Title: "x"})
		if seen[item.ID] {
			t.Fatalf("duplicate ID %s", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestSortByOrder_StableTies(t *testing.T) {
	items := []model.Item{
		{ID: "c", Order: 2},
		{ID: "a", Order: 1},
		{ID: "b", Order: 1},
		{ID: "z", Order: 0},
	}

	sorted := model.SortByOrder(items)

	want := []string{"z", "a", "b", "c"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, sorted[i].ID, id)
		}
	}
	if items[0].ID != "c" {
		t.Error("input slice should not be reordered")
	}
}

func TestStore_GetChildren(t *testing.T) {
	store := model.Store{
		Items: []model.Item{
			{ID: "a", ParentID: "", Order: 2},
			{ID: "b", ParentID: "a", Order: 1},
			{ID: "c", ParentID: "", Order: 1},
			{ID: "d", ParentID: "a", Order: 2},
		},
	}

	roots := store.GetChildren("")
	if len(roots) != 2 || roots[0].ID != "c" || roots[1].ID != "a" {
		t.Errorf("unexpected root children: %+v", roots)
	}

	nested := store.GetChildren("a")
	if len(nested) != 2 {
		t.Errorf("expected 2 children of a, got %d", len(nested))
	}

	if empty := store.GetChildren("c"); len(empty) != 0 {
		t.Errorf("expected no children of c, got %d", len(empty))
	}
}

func TestStore_GetItemByID(t *testing.T) {
	store := model.Store{Items: []model.Item{{ID: "a", Title: "First"}}}

	if got := store.GetItemByID("a"); got == nil || got.Title != "First" {
		t.Errorf("expected to find item a, got %+v", got)
	}
	if got := store.GetItemByID("nonexistent"); got != nil {
		t.Error("expected nil for nonexistent item")
	}
}

func TestStore_UpsertAndRemove(t *testing.T) {
	store := model.NewStore()
	store.Upsert([]model.Item{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}})
	store.Upsert([]model.Item{{ID: "a", Title: "A2"}})

	if len(store.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(store.Items))
	}
	if store.Items[0].Title != "A2" {
		t.Errorf("expected upsert to replace in place, got %q", store.Items[0].Title)
	}

	if err := store.Remove("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Remove("a"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(store.Items) != 1 || store.Items[0].ID != "b" {
		t.Errorf("unexpected remaining items: %+v", store.Items)
	}
}
