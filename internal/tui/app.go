package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/nt/internal/model"
	"github.com/nikbrunner/nt/internal/tree"
	"github.com/nikbrunner/nt/internal/tui/layout"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd
	ModeRename
	ModeConfirmDelete
)

// MessageType distinguishes status line messages.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageError
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// FileChangedMsg asks the app to reload the tree from storage.
type FileChangedMsg struct{}

type treeLoadedMsg struct {
	forest  []*tree.Node
	focusID string
}

type opDoneMsg struct {
	text    string
	focusID string
}

type errMsg struct {
	err error
}

// App is the main bubbletea model for the tree browser.
type App struct {
	engine       *tree.Engine
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	icon         string

	forest    []*tree.Node
	rows      []Row
	collapsed map[string]bool
	cursor    int
	loaded    bool

	mode      Mode
	input     textinput.Model
	addParent string // parent for the item being added

	// For gg command
	lastKeyWasG bool

	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Engine       *tree.Engine
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Icon         string               // icon for new items, model.DefaultIcon if empty
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutConfig = *params.LayoutConfig
	}

	icon := params.Icon
	if icon == "" {
		icon = model.DefaultIcon
	}

	input := textinput.New()
	input.CharLimit = layoutConfig.Input.TitleCharLimit
	input.Width = layoutConfig.Input.Width
	input.Cursor.SetMode(cursor.CursorStatic)

	return App{
		engine:       params.Engine,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutConfig,
		icon:         icon,
		collapsed:    make(map[string]bool),
		input:        input,
		width:        80,
		height:       24,
	}
}

// WithDimensions returns a copy of the app with fixed window dimensions.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Rows returns the currently visible rows.
func (a App) Rows() []Row {
	return a.rows
}

// Selected returns the node under the cursor, or nil when the tree is empty.
func (a App) Selected() *tree.Node {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return nil
	}
	return a.rows[a.cursor].Node
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.load("")
}

// load reads the forest and focuses focusID when it is visible.
func (a App) load(focusID string) tea.Cmd {
	engine := a.engine
	return func() tea.Msg {
		forest, err := engine.Tree(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return treeLoadedMsg{forest: forest, focusID: focusID}
	}
}

// run executes an engine operation off the update loop.
func (a App) run(op func(ctx context.Context, engine *tree.Engine) (opDoneMsg, error)) tea.Cmd {
	engine := a.engine
	return func() tea.Msg {
		done, err := op(context.Background(), engine)
		if err != nil {
			return errMsg{err: err}
		}
		return done
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case treeLoadedMsg:
		a.applyForest(msg.forest, msg.focusID)
		return a, nil

	case opDoneMsg:
		a.setMessage(MessageSuccess, msg.text)
		return a, a.load(msg.focusID)

	case errMsg:
		a.setMessage(MessageError, msg.err.Error())
		// Storage is the source of truth; show whatever it holds now.
		return a, a.load(a.selectedID())

	case FileChangedMsg:
		return a, a.load(a.selectedID())

	case tea.KeyMsg:
		switch a.mode {
		case ModeAdd, ModeRename:
			return a.updateInput(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

// applyForest replaces the displayed tree and restores the cursor.
func (a *App) applyForest(forest []*tree.Node, focusID string) {
	a.forest = forest
	a.loaded = true
	a.rows = visibleRows(forest, a.collapsed)

	if focusID != "" {
		if idx := rowIndex(a.rows, focusID); idx >= 0 {
			a.cursor = idx
			return
		}
	}
	a.clampCursor()
}

func (a *App) clampCursor() {
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a App) selectedID() string {
	if n := a.Selected(); n != nil {
		return n.ID
	}
	return ""
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.rows) > 0 {
			a.cursor = len(a.rows) - 1
		}

	case key.Matches(msg, a.keys.Expand):
		if n := a.Selected(); n != nil && n.HasChildren() && a.collapsed[n.ID] {
			delete(a.collapsed, n.ID)
			a.rows = visibleRows(a.forest, a.collapsed)
		}

	case key.Matches(msg, a.keys.Collapse):
		a.collapseOrJumpToParent()

	case key.Matches(msg, a.keys.MoveUp):
		return a, a.moveSibling(-1)

	case key.Matches(msg, a.keys.MoveDown):
		return a, a.moveSibling(1)

	case key.Matches(msg, a.keys.Indent):
		return a, a.indent()

	case key.Matches(msg, a.keys.Outdent):
		return a, a.outdent()

	case key.Matches(msg, a.keys.Add):
		return a.startInput(ModeAdd, "", "")

	case key.Matches(msg, a.keys.AddChild):
		if n := a.Selected(); n != nil {
			delete(a.collapsed, n.ID)
			return a.startInput(ModeAdd, n.ID, "")
		}

	case key.Matches(msg, a.keys.Rename):
		if n := a.Selected(); n != nil {
			return a.startInput(ModeRename, "", n.Title)
		}

	case key.Matches(msg, a.keys.Delete):
		if a.Selected() != nil {
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.Yank):
		if n := a.Selected(); n != nil {
			if err := writeClipboard(n.Title); err != nil {
				a.setMessage(MessageError, "clipboard: "+err.Error())
			} else {
				a.setMessage(MessageSuccess, fmt.Sprintf("Yanked %q", n.Title))
			}
		}

	case key.Matches(msg, a.keys.Normalize):
		focus := a.selectedID()
		return a, a.run(func(ctx context.Context, e *tree.Engine) (opDoneMsg, error) {
			n, err := e.Normalize(ctx)
			if err != nil {
				return opDoneMsg{}, err
			}
			return opDoneMsg{text: fmt.Sprintf("Renumbered %d items", n), focusID: focus}, nil
		})
	}

	return a, nil
}

func (a *App) collapseOrJumpToParent() {
	if a.cursor >= len(a.rows) {
		return
	}
	row := a.rows[a.cursor]
	if row.Node.HasChildren() && !a.collapsed[row.Node.ID] {
		a.collapsed[row.Node.ID] = true
		a.rows = visibleRows(a.forest, a.collapsed)
		return
	}
	if row.ParentID != "" {
		if idx := rowIndex(a.rows, row.ParentID); idx >= 0 {
			a.cursor = idx
		}
	}
}

// moveCmd issues a single-item move and keeps the item focused.
func (a App) moveCmd(id, parentID string, index int) tea.Cmd {
	return a.run(func(ctx context.Context, e *tree.Engine) (opDoneMsg, error) {
		_, err := e.Move(ctx, tree.MoveRequest{
			DraggedIDs:  []string{id},
			NewParentID: parentID,
			TargetIndex: index,
		})
		if err != nil {
			return opDoneMsg{}, err
		}
		return opDoneMsg{focusID: id}, nil
	})
}

// moveSibling shifts the selected item one slot up (delta -1) or down (+1)
// among its siblings. Moving down targets index+2 because the item's own
// slot is removed before the insert.
func (a App) moveSibling(delta int) tea.Cmd {
	if a.cursor >= len(a.rows) {
		return nil
	}
	row := a.rows[a.cursor]
	switch {
	case delta < 0 && row.Index > 0:
		return a.moveCmd(row.Node.ID, row.ParentID, row.Index-1)
	case delta > 0 && row.Index < row.Siblings-1:
		return a.moveCmd(row.Node.ID, row.ParentID, row.Index+2)
	}
	return nil
}

// indent makes the selected item the last child of its previous sibling.
func (a App) indent() tea.Cmd {
	if a.cursor >= len(a.rows) {
		return nil
	}
	row := a.rows[a.cursor]
	if row.Index == 0 {
		return nil
	}
	siblings := a.forest
	if row.ParentID != "" {
		parent := tree.Find(a.forest, row.ParentID)
		if parent == nil {
			return nil
		}
		siblings = parent.Children
	}
	prev := siblings[row.Index-1]
	delete(a.collapsed, prev.ID)
	return a.moveCmd(row.Node.ID, prev.ID, len(prev.Children))
}

// outdent moves the selected item out of its parent, right after it.
func (a App) outdent() tea.Cmd {
	if a.cursor >= len(a.rows) {
		return nil
	}
	row := a.rows[a.cursor]
	if row.ParentID == "" {
		return nil
	}
	idx := rowIndex(a.rows, row.ParentID)
	if idx < 0 {
		return nil
	}
	parent := a.rows[idx]
	return a.moveCmd(row.Node.ID, parent.ParentID, parent.Index+1)
}

func (a App) startInput(mode Mode, parentID, value string) (tea.Model, tea.Cmd) {
	a.mode = mode
	a.addParent = parentID
	a.input.Reset()
	a.input.SetValue(value)
	a.input.CursorEnd()
	if mode == ModeAdd {
		a.input.Placeholder = "Title (blank for placeholder)"
	} else {
		a.input.Placeholder = ""
	}
	a.input.Focus()
	return a, nil
}

func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.input.Blur()
		return a, nil

	case tea.KeyEnter:
		title := strings.TrimSpace(a.input.Value())
		mode := a.mode
		a.mode = ModeNormal
		a.input.Blur()

		if mode == ModeAdd {
			return a, a.createCmd(title)
		}
		n := a.Selected()
		if n == nil || title == "" || title == n.Title {
			return a, nil
		}
		id := n.ID
		return a, a.run(func(ctx context.Context, e *tree.Engine) (opDoneMsg, error) {
			if _, err := e.Rename(ctx, id, title); err != nil {
				return opDoneMsg{}, err
			}
			return opDoneMsg{text: "Renamed", focusID: id}, nil
		})
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) createCmd(title string) tea.Cmd {
	params := model.NewItemParams{
		Title:    title,
		Icon:     a.icon,
		ParentID: a.addParent,
	}
	return a.run(func(ctx context.Context, e *tree.Engine) (opDoneMsg, error) {
		it, err := e.Create(ctx, params)
		if err != nil {
			return opDoneMsg{}, err
		}
		return opDoneMsg{text: fmt.Sprintf("Added %q", it.Title), focusID: it.ID}, nil
	})
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.mode = ModeNormal

	n := a.Selected()
	if n == nil || !key.Matches(msg, a.keys.Confirm) {
		return a, nil
	}

	id, title := n.ID, n.Title
	return a, a.run(func(ctx context.Context, e *tree.Engine) (opDoneMsg, error) {
		if _, err := e.Delete(ctx, []string{id}); err != nil {
			return opDoneMsg{}, err
		}
		return opDoneMsg{text: fmt.Sprintf("Deleted %q", title)}, nil
	})
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
