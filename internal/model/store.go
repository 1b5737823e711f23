package model

// Store is a snapshot of the whole item collection.
type Store struct {
	Items []Item `json:"items"`
}

// NewStore creates an empty Store with an initialized slice.
func NewStore() *Store {
	return &Store{
		Items: []Item{},
	}
}

// GetItemByID finds an item by ID, returns nil if not found.
func (s *Store) GetItemByID(id string) *Item {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}
	return nil
}

// GetChildren returns the items whose parent is parentID, sorted by order.
// Pass "" for root level items.
func (s *Store) GetChildren(parentID string) []Item {
	var result []Item
	for _, it := range s.Items {
		if it.ParentID == parentID {
			result = append(result, it)
		}
	}
	return SortByOrder(result)
}

// Upsert replaces items with matching IDs and appends the rest.
func (s *Store) Upsert(items []Item) {
	index := make(map[string]int, len(s.Items))
	for i, it := range s.Items {
		index[it.ID] = i
	}
	for _, it := range items {
		if i, ok := index[it.ID]; ok {
			s.Items[i] = it
			continue
		}
		index[it.ID] = len(s.Items)
		s.Items = append(s.Items, it)
	}
}

// Remove deletes the item with the given ID.
// Returns ErrNotFound if it does not exist.
func (s *Store) Remove(id string) error {
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
