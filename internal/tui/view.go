package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/nt/internal/tree"
	"github.com/nikbrunner/nt/internal/tui/layout"
)

// renderView renders the full screen: breadcrumb, tree rows and help bar.
func (a App) renderView() string {
	breadcrumb := a.renderBreadcrumb()
	list := a.renderTree()
	helpBar := a.renderHelpBar()

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, breadcrumb, "", list, helpBar),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderBreadcrumb renders the path of the selected item.
func (a App) renderBreadcrumb() string {
	path := "nt"
	if n := a.Selected(); n != nil {
		path = "nt / " + strings.Join(tree.Path(a.forest, n.ID), " / ")
	}

	// Terminal width minus app padding: left=2, right=2
	path = layout.TruncatePathFromLeft(path, a.width-4, a.layoutConfig.Text)
	return a.styles.Breadcrumb.Render(path)
}

// renderTree renders the visible window of rows around the cursor.
func (a App) renderTree() string {
	height := layout.CalculateListHeight(a.height, a.layoutConfig.List)

	if !a.loaded {
		return a.styles.Empty.Render("Loading...")
	}
	if len(a.rows) == 0 {
		if a.mode == ModeAdd {
			return a.input.View()
		}
		return a.styles.Empty.Render("No items. Press a to add one.")
	}

	start, end := layout.CalculateVisibleListItems(height, a.cursor, len(a.rows))
	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		lines = append(lines, a.renderRow(a.rows[i], i == a.cursor))
		if i == a.cursor && a.mode == ModeAdd {
			lines = append(lines, a.renderAddLine(a.rows[i]))
		}
	}
	return strings.Join(lines, "\n")
}

// renderRow renders one tree line: indent, fold glyph, icon and title.
func (a App) renderRow(row Row, selected bool) string {
	indent := strings.Repeat(" ", row.Depth*a.layoutConfig.List.IndentWidth)

	guide := "  "
	if row.Node.HasChildren() {
		if a.collapsed[row.Node.ID] {
			guide = "▸ "
		} else {
			guide = "▾ "
		}
	}

	var label string
	if selected && a.mode == ModeRename {
		label = a.input.View()
	} else {
		title, _ := layout.TruncateText(row.Node.Title, a.layoutConfig.Text.TitleMaxLen, a.layoutConfig.Text)
		label = title
		if row.Node.Icon != "" {
			label = row.Node.Icon + " " + title
		}
		if selected {
			label = a.styles.ItemSelected.Render(label)
		} else {
			label = a.styles.Item.Render(label)
		}
	}

	return indent + a.styles.Guide.Render(guide) + label
}

// renderAddLine renders the input for a new item under the selected row.
// Root items are shown unindented, children one level below the row.
func (a App) renderAddLine(row Row) string {
	depth := 0
	if a.addParent != "" {
		depth = row.Depth + 1
	}
	indent := strings.Repeat(" ", depth*a.layoutConfig.List.IndentWidth)
	return indent + a.styles.Guide.Render("+ ") + a.input.View()
}

// renderHelpBar renders the message line and the contextual hints.
func (a App) renderHelpBar() string {
	lines := []string{""}

	switch {
	case a.mode == ModeConfirmDelete:
		if n := a.Selected(); n != nil {
			lines = append(lines, a.styles.Error.Render(fmt.Sprintf("Delete %q? (y/n)", n.Title)))
		}
	case a.messageText != "":
		lines = append(lines, a.renderMessageLine())
	default:
		lines = append(lines, "")
	}

	lines = append(lines, a.renderHints(a.getContextualHints()))
	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with a prefix icon based on type.
func (a App) renderMessageLine() string {
	switch a.messageType {
	case MessageError:
		return a.styles.Error.Render("✗ " + a.messageText)
	case MessageSuccess:
		return a.styles.Success.Render("✓ " + a.messageText)
	default:
		return a.styles.HintDesc.Render(a.messageText)
	}
}
