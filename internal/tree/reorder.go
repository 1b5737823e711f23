package tree

import (
	"errors"
	"fmt"

	"github.com/nikbrunner/nt/internal/model"
)

// MoveRequest describes a drag of one or more items onto a new parent.
type MoveRequest struct {
	DraggedIDs  []string
	NewParentID string // "" = root
	// TargetIndex is the drop position among the new parent's children,
	// counted with the dragged items still in place.
	TargetIndex int
}

// Move computes the collection after moving the dragged items under
// NewParentID at TargetIndex. Every sibling group is renumbered 1..n, and
// the full collection is returned so it can be written as one batch.
//
// Empty drag sets, unknown dragged IDs and unknown parents are no-ops that
// return the input unchanged. Dropping items into their own subtree returns
// ErrCycle.
func Move(all []model.Item, req MoveRequest) ([]model.Item, error) {
	if len(req.DraggedIDs) == 0 {
		return all, nil
	}

	sorted := model.SortByOrder(all)
	byID := make(map[string]model.Item, len(sorted))
	for _, it := range sorted {
		byID[it.ID] = it
	}

	if req.NewParentID != "" {
		if _, ok := byID[req.NewParentID]; !ok {
			return all, nil
		}
	}

	dragSet := make(map[string]bool, len(req.DraggedIDs))
	for _, id := range req.DraggedIDs {
		dragSet[id] = true
	}
	if isInSubtree(byID, dragSet, req.NewParentID) {
		return nil, fmt.Errorf("move to %q: %w", req.NewParentID, ErrCycle)
	}

	var dragged, remaining []model.Item
	for _, it := range sorted {
		if dragSet[it.ID] {
			dragged = append(dragged, it)
		} else {
			remaining = append(remaining, it)
		}
	}
	if len(dragged) == 0 {
		return all, nil
	}

	groups, keys := groupByParent(remaining)
	target := groups[req.NewParentID]

	index := req.TargetIndex
	// Reordering inside the same parent: the drop index still counts the
	// dragged items, so dropping below them shifts left by the batch size.
	// Root moves take the same path, indexed within the root sequence.
	if dragged[0].ParentID == req.NewParentID {
		if pos := firstDraggedPosition(sorted, dragSet, req.NewParentID); pos >= 0 && pos < req.TargetIndex {
			index -= len(dragged)
		}
	}
	index = max(0, min(index, len(target)))

	for i := range dragged {
		dragged[i].ParentID = req.NewParentID
	}

	spliced := make([]model.Item, 0, len(target)+len(dragged))
	spliced = append(spliced, target[:index]...)
	spliced = append(spliced, dragged...)
	spliced = append(spliced, target[index:]...)

	if _, ok := groups[req.NewParentID]; !ok {
		keys = append(keys, req.NewParentID)
	}
	groups[req.NewParentID] = spliced

	return renumber(groups, keys), nil
}

// Normalize renumbers every sibling group to 1..n without moving anything.
func Normalize(all []model.Item) []model.Item {
	groups, keys := groupByParent(model.SortByOrder(all))
	return renumber(groups, keys)
}

// Rename returns the item with its title replaced.
func Rename(all []model.Item, id, title string) (model.Item, error) {
	for _, it := range all {
		if it.ID == id {
			it.Title = title
			return it, nil
		}
	}
	return model.Item{}, fmt.Errorf("rename %q: %w", id, ErrNotFound)
}

// Delete resolves which of ids exist in the collection. Each id is handled
// independently: missing ones are reported as ErrNotFound in the joined
// error while the rest are still returned for removal. Surviving siblings
// are not renumbered.
func Delete(all []model.Item, ids []string) ([]string, error) {
	exists := make(map[string]bool, len(all))
	for _, it := range all {
		exists[it.ID] = true
	}

	var removed []string
	var errs []error
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if !exists[id] {
			errs = append(errs, fmt.Errorf("delete %q: %w", id, ErrNotFound))
			continue
		}
		removed = append(removed, id)
	}
	return removed, errors.Join(errs...)
}

// Changed returns the items in after that are new or differ from before.
func Changed(before, after []model.Item) []model.Item {
	prev := make(map[string]model.Item, len(before))
	for _, it := range before {
		prev[it.ID] = it
	}

	var changed []model.Item
	for _, it := range after {
		if old, ok := prev[it.ID]; ok && old == it {
			continue
		}
		changed = append(changed, it)
	}
	return changed
}

// groupByParent splits items into sibling groups, keeping input order
// within each group. keys lists parents in first-seen order.
func groupByParent(items []model.Item) (map[string][]model.Item, []string) {
	groups := make(map[string][]model.Item)
	var keys []string
	for _, it := range items {
		if _, ok := groups[it.ParentID]; !ok {
			keys = append(keys, it.ParentID)
		}
		groups[it.ParentID] = append(groups[it.ParentID], it)
	}
	return groups, keys
}

func renumber(groups map[string][]model.Item, keys []string) []model.Item {
	var result []model.Item
	for _, key := range keys {
		for i, it := range groups[key] {
			it.Order = i + 1
			result = append(result, it)
		}
	}
	return result
}

// firstDraggedPosition returns the index of the first dragged item among
// the children of parentID, or -1.
func firstDraggedPosition(sorted []model.Item, dragSet map[string]bool, parentID string) int {
	pos := 0
	for _, it := range sorted {
		if it.ParentID != parentID {
			continue
		}
		if dragSet[it.ID] {
			return pos
		}
		pos++
	}
	return -1
}

// isInSubtree reports whether id is one of the dragged items or a descendant of one.
func isInSubtree(byID map[string]model.Item, dragSet map[string]bool, id string) bool {
	visited := make(map[string]bool)
	for id != "" && !visited[id] {
		if dragSet[id] {
			return true
		}
		visited[id] = true
		it, ok := byID[id]
		if !ok {
			return false
		}
		id = it.ParentID
	}
	return false
}
