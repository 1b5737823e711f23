package tree

import "github.com/nikbrunner/nt/internal/model"

// OrphanPolicy decides what BuildTree does with items whose parent does not exist.
type OrphanPolicy int

const (
	// OrphanDrop leaves orphaned items out of the forest.
	OrphanDrop OrphanPolicy = iota
	// OrphanPromote renders orphaned items as roots.
	OrphanPromote
)

// ParseOrphanPolicy maps a config value to a policy. Unknown values mean OrphanDrop.
func ParseOrphanPolicy(s string) OrphanPolicy {
	if s == "promote" {
		return OrphanPromote
	}
	return OrphanDrop
}

func (p OrphanPolicy) String() string {
	if p == OrphanPromote {
		return "promote"
	}
	return "drop"
}

// Node is an item with its resolved children.
type Node struct {
	model.Item
	Children []*Node
}

// HasChildren reports whether the node has any children.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// BuildTree links items into a forest via ParentID.
// Siblings keep their relative input order, so callers sort with
// model.SortByOrder first. The input slice is not modified.
func BuildTree(items []model.Item, policy OrphanPolicy) []*Node {
	nodes := make(map[string]*Node, len(items))
	for _, it := range items {
		if _, dup := nodes[it.ID]; dup {
			continue
		}
		nodes[it.ID] = &Node{Item: it, Children: []*Node{}}
	}

	forest := []*Node{}
	placed := make(map[string]bool, len(items))
	for _, it := range items {
		if placed[it.ID] {
			continue
		}
		placed[it.ID] = true
		n := nodes[it.ID]

		if it.ParentID == "" {
			forest = append(forest, n)
			continue
		}
		parent, ok := nodes[it.ParentID]
		if !ok {
			if policy == OrphanPromote {
				forest = append(forest, n)
			}
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	return forest
}

// Flatten walks the forest in pre-order and returns its items with
// ParentID taken from the forest structure.
func Flatten(forest []*Node) []model.Item {
	var items []model.Item
	var walk func(nodes []*Node, parentID string)
	walk = func(nodes []*Node, parentID string) {
		for _, n := range nodes {
			it := n.Item
			it.ParentID = parentID
			items = append(items, it)
			walk(n.Children, n.ID)
		}
	}
	walk(forest, "")
	return items
}

// Find returns the node with the given ID, or nil.
func Find(forest []*Node, id string) *Node {
	for _, n := range forest {
		if n.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// Path returns the titles from the root down to the item with the given ID.
// Returns nil when the item is not in the forest.
func Path(forest []*Node, id string) []string {
	for _, n := range forest {
		if n.ID == id {
			return []string{n.Title}
		}
		if sub := Path(n.Children, id); sub != nil {
			return append([]string{n.Title}, sub...)
		}
	}
	return nil
}
