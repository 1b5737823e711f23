package tui

import "github.com/nikbrunner/nt/internal/tree"

// Row is one visible line of the tree browser.
type Row struct {
	Node     *tree.Node
	Depth    int
	ParentID string // parent in the displayed forest, "" for roots
	Index    int    // position among siblings
	Siblings int    // number of siblings including this row
}

// visibleRows flattens the forest in pre-order, skipping the children of
// collapsed nodes.
func visibleRows(forest []*tree.Node, collapsed map[string]bool) []Row {
	var rows []Row
	var walk func(nodes []*tree.Node, parentID string, depth int)
	walk = func(nodes []*tree.Node, parentID string, depth int) {
		for i, n := range nodes {
			rows = append(rows, Row{
				Node:     n,
				Depth:    depth,
				ParentID: parentID,
				Index:    i,
				Siblings: len(nodes),
			})
			if n.HasChildren() && !collapsed[n.ID] {
				walk(n.Children, n.ID, depth+1)
			}
		}
	}
	walk(forest, "", 0)
	return rows
}

// rowIndex returns the position of the row showing id, or -1.
func rowIndex(rows []Row, id string) int {
	for i, r := range rows {
		if r.Node.ID == id {
			return i
		}
	}
	return -1
}
