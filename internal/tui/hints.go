package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "rename")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, h/l, etc.)
	Move   []Hint // Restructuring hints (J/K, H/L)
	Edit   []Hint // Edit hints (a, r, d, etc.)
	System []Hint // System hints (q, Esc)
}

// All returns all hints flattened in display order: Nav + Move + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Move)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Move...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar.
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeRename, ModeAdd:
		return HintSet{
			System: []Hint{
				{Key: "Enter", Desc: "save"},
				{Key: "Esc", Desc: "cancel"},
			},
		}
	case ModeConfirmDelete:
		return HintSet{
			System: []Hint{
				{Key: "y", Desc: "delete"},
				{Key: "n/Esc", Desc: "cancel"},
			},
		}
	default:
		return HintSet{
			Nav: []Hint{
				{Key: "j/k", Desc: "move"},
				{Key: "h/l", Desc: "fold"},
			},
			Move: []Hint{
				{Key: "J/K", Desc: "reorder"},
				{Key: "H/L", Desc: "out/in"},
			},
			Edit: []Hint{
				{Key: "a/A", Desc: "add"},
				{Key: "r", Desc: "rename"},
				{Key: "d", Desc: "del"},
				{Key: "y", Desc: "yank"},
			},
			System: []Hint{
				{Key: "q", Desc: "quit"},
			},
		}
	}
}
