package search

import (
	"github.com/nikbrunner/nt/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Item           *model.Item
	MatchedIndexes []int
	Score          int
}

// itemTitles implements fuzzy.Source for an item slice.
type itemTitles []*model.Item

func (it itemTitles) String(i int) string {
	return it[i].Title
}

func (it itemTitles) Len() int {
	return len(it)
}

// FuzzySearchItems searches items by title using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchItems(items []model.Item, query string) []SearchResult {
	if query == "" {
		return nil
	}

	source := make(itemTitles, len(items))
	for i := range items {
		source[i] = &items[i]
	}

	matches := fuzzy.FindFrom(query, source)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Item:           source[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
