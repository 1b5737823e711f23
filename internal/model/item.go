package model

import (
	"errors"
	"sort"
)

// ErrNotFound is returned when an item ID does not exist in the collection.
var ErrNotFound = errors.New("item not found")

// Default values for newly created items.
const (
	DefaultIcon        = "📄"
	PlaceholderPrefix  = "note-"
	placeholderIDChars = 5
)

// Item is a single node in the note hierarchy.
type Item struct {
	ID       string `json:"id"`
	ParentID string `json:"parentId"` // "" = root level
	Title    string `json:"title,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Order    int    `json:"order"` // rank among siblings sharing ParentID
}

// IsRoot reports whether the item sits at root level.
func (i Item) IsRoot() bool {
	return i.ParentID == ""
}

// NewItemParams holds parameters for creating a new Item.
type NewItemParams struct {
	Title    string
	Icon     string
	ParentID string
}

// NewItem creates an Item with a generated UUID.
// Empty titles get a "note-xxxxx" placeholder, and new items start at order 0.
func NewItem(params NewItemParams) Item {
	id := GenerateUUID()

	title := params.Title
	if title == "" {
		title = PlaceholderPrefix + GenerateUUID()[:placeholderIDChars]
	}
	icon := params.Icon
	if icon == "" {
		icon = DefaultIcon
	}

	return Item{
		ID:       id,
		ParentID: params.ParentID,
		Title:    title,
		Icon:     icon,
		Order:    0,
	}
}

// SortByOrder returns a copy of items sorted by Order ascending.
// Ties keep their relative input position.
func SortByOrder(items []Item) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}
