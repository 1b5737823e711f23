package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/nt/internal/model"
	"github.com/nikbrunner/nt/internal/search"
)

func testChoices() []Choice {
	return []Choice{
		{SearchResult: search.SearchResult{Item: &model.Item{ID: "a", Title: "Groceries", Icon: "📄"}}},
		{SearchResult: search.SearchResult{Item: &model.Item{ID: "b", Title: "Gardening", Icon: "📄"}}, Path: "Home / Outside"},
	}
}

func press(p Picker, r rune) Picker {
	m, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return m.(Picker)
}

func TestPicker_InitialState(t *testing.T) {
	p := New(testChoices(), "g")

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
	if len(p.choices) != 2 {
		t.Errorf("expected 2 choices, got %d", len(p.choices))
	}
}

func TestPicker_Navigate(t *testing.T) {
	p := New(testChoices(), "g")

	p = press(p, 'j')
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1, got %d", p.cursor)
	}

	// Bottom bound
	p = press(p, 'j')
	if p.cursor != 1 {
		t.Errorf("expected cursor to stay at 1, got %d", p.cursor)
	}

	p = press(p, 'k')
	p = press(p, 'k')
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
}

func TestPicker_SelectOnEnter(t *testing.T) {
	p := New(testChoices(), "g")
	p = press(p, 'j')

	m, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = m.(Picker)

	if cmd == nil {
		t.Error("expected quit command")
	}
	if got := p.SelectedItem(); got == nil || got.ID != "b" {
		t.Errorf("expected item b selected, got %+v", got)
	}
}

func TestPicker_Cancel(t *testing.T) {
	p := New(testChoices(), "g")

	m, _ := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	p = m.(Picker)

	if !p.Cancelled() {
		t.Error("expected cancelled")
	}
	if p.SelectedItem() != nil {
		t.Error("expected no selection after cancel")
	}
}

func TestPicker_ViewShowsPath(t *testing.T) {
	view := New(testChoices(), "g").View()

	if !strings.Contains(view, "Gardening") {
		t.Error("expected title in view")
	}
	if !strings.Contains(view, "Home / Outside") {
		t.Error("expected path in view")
	}
	if !strings.Contains(view, "(2 results)") {
		t.Error("expected result count in header")
	}
}
