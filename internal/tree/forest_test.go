package tree_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/nt/internal/model"
	"github.com/nikbrunner/nt/internal/tree"
)

// shape maps each node ID to its child IDs, with "" holding the roots.
func shape(forest []*tree.Node) map[string][]string {
	out := map[string][]string{}
	var walk func(parent string, nodes []*tree.Node)
	walk = func(parent string, nodes []*tree.Node) {
		for _, n := range nodes {
			out[parent] = append(out[parent], n.ID)
			walk(n.ID, n.Children)
		}
	}
	walk("", forest)
	return out
}

func TestBuildTree_Nesting(t *testing.T) {
	items := model.SortByOrder([]model.Item{
		item("b", "", 2),
		item("a", "", 1),
		item("a2", "a", 2),
		item("a1", "a", 1),
		item("a1x", "a1", 1),
	})

	forest := tree.BuildTree(items, tree.OrphanDrop)

	assert.DeepEqual(t, shape(forest), map[string][]string{
		"":   {"a", "b"},
		"a":  {"a1", "a2"},
		"a1": {"a1x"},
	})
	assert.Assert(t, forest[0].HasChildren())
	assert.Assert(t, !forest[1].HasChildren())
}

func TestBuildTree_KeepsInputOrder(t *testing.T) {
	items := []model.Item{item("b", "", 2), item("a", "", 1)}

	forest := tree.BuildTree(items, tree.OrphanDrop)

	assert.Equal(t, forest[0].ID, "b")
	assert.Equal(t, forest[1].ID, "a")
}

func TestBuildTree_Orphans(t *testing.T) {
	items := []model.Item{
		item("a", "", 1),
		item("lost", "gone", 1),
		item("child", "lost", 1),
	}

	dropped := tree.BuildTree(items, tree.OrphanDrop)
	assert.DeepEqual(t, shape(dropped), map[string][]string{"": {"a"}})

	promoted := tree.BuildTree(items, tree.OrphanPromote)
	assert.DeepEqual(t, shape(promoted), map[string][]string{
		"":     {"a", "lost"},
		"lost": {"child"},
	})
}

func TestBuildTree_DoesNotMutateInput(t *testing.T) {
	items := []model.Item{item("a", "", 1), item("b", "a", 1)}
	snapshot := append([]model.Item{}, items...)

	forest := tree.BuildTree(items, tree.OrphanDrop)
	forest[0].Title = "changed"

	assert.DeepEqual(t, items, snapshot)
}

func TestBuildTree_EachItemOnce(t *testing.T) {
	items := []model.Item{item("a", "", 1), item("b", "a", 1), item("a", "", 1)}

	flat := tree.Flatten(tree.BuildTree(items, tree.OrphanDrop))

	assert.Equal(t, len(flat), 2)
}

func TestFlatten_RoundTrip(t *testing.T) {
	items := model.SortByOrder([]model.Item{
		item("a", "", 1),
		item("b", "", 2),
		item("c", "a", 1),
		item("d", "c", 1),
		item("e", "a", 2),
		item("o", "missing", 1),
	})

	for _, policy := range []tree.OrphanPolicy{tree.OrphanDrop, tree.OrphanPromote} {
		t.Run(policy.String(), func(t *testing.T) {
			first := tree.BuildTree(items, policy)
			second := tree.BuildTree(tree.Flatten(first), policy)
			assert.DeepEqual(t, shape(second), shape(first))
		})
	}
}

func TestFlatten_PreOrder(t *testing.T) {
	items := []model.Item{item("a", "", 1), item("b", "", 2), item("a1", "a", 1)}

	flat := tree.Flatten(tree.BuildTree(items, tree.OrphanDrop))

	ids := make([]string, len(flat))
	for i, it := range flat {
		ids[i] = it.ID
	}
	assert.DeepEqual(t, ids, []string{"a", "a1", "b"})
	assert.Equal(t, flat[1].ParentID, "a")
}

func TestFindAndPath(t *testing.T) {
	items := []model.Item{item("a", "", 1), item("b", "a", 1), item("c", "b", 1)}
	forest := tree.BuildTree(items, tree.OrphanDrop)

	assert.Equal(t, tree.Find(forest, "c").ID, "c")
	assert.Assert(t, tree.Find(forest, "zz") == nil)
	assert.DeepEqual(t, tree.Path(forest, "c"), []string{"a", "b", "c"})
	assert.Assert(t, tree.Path(forest, "zz") == nil)
}

func TestParseOrphanPolicy(t *testing.T) {
	assert.Equal(t, tree.ParseOrphanPolicy("promote"), tree.OrphanPromote)
	assert.Equal(t, tree.ParseOrphanPolicy("drop"), tree.OrphanDrop)
	assert.Equal(t, tree.ParseOrphanPolicy(""), tree.OrphanDrop)
}
