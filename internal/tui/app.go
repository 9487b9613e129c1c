package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
	"kanban-cli/internal/store"
)

type mode int

const (
	modeNormal mode = iota
	modeAdding
	modeEditing
	modeMoving
)

// itemRef names an item by position. While a drag is active it tracks the
// card's current visual position; for an edit it pins the edit target.
type itemRef struct {
	Col  model.Column
	Item int
}

type appModel struct {
	store store.Store
	board *model.Board

	// lists is the visual tree: what is actually on screen, in order.
	// In normal operation it mirrors the board; during a drag it diverges
	// and becomes the authority (the board is rebuilt from it on drop).
	lists board.Lists

	sel  selection
	mode mode

	// drag is the active drag source. Set while a card is picked up.
	// Edit commits against the dragged card are ignored outright.
	drag *itemRef

	editTarget itemRef
	input      textinput.Model

	status string

	width  int
	height int
}

func newAppModel(s store.Store, b *model.Board) appModel {
	m := appModel{
		store: s,
		board: b,
		mode:  modeNormal,
	}
	m.lists.FromBoard(b)
	m.sel = clampSelection(&m.lists, selection{})

	ti := textinput.New()
	ti.Prompt = "> "
	m.input = ti
	return m
}

func (m appModel) Init() tea.Cmd { return textinput.Blink }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = m.width - 4
		return m, nil

	case tea.KeyMsg:
		// Any keypress clears the previous transient notice.
		m.status = ""

		switch m.mode {
		case modeAdding, modeEditing:
			return m.updateInput(msg)
		case modeMoving:
			return m.updateMoving(msg)
		default:
			return m.updateNormal(msg)
		}
	}

	return m, nil
}

func (m appModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "left", "h":
		m.sel = clampSelection(&m.lists, selection{Col: m.sel.Col - 1, Item: m.sel.Item})
	case "right", "l":
		m.sel = clampSelection(&m.lists, selection{Col: m.sel.Col + 1, Item: m.sel.Item})
	case "up", "k":
		if m.sel.Item > 0 {
			m.sel.Item--
		}
	case "down", "j":
		m.sel = clampSelection(&m.lists, selection{Col: m.sel.Col, Item: m.sel.Item + 1})

	case "a":
		m.mode = modeAdding
		m.input.SetValue("")
		m.input.Placeholder = fmt.Sprintf("new task in %s", m.sel.Col.Title())
		m.input.Focus()
		return m, textinput.Blink

	case "e", "enter":
		if m.sel.Item < 0 {
			return m, nil
		}
		if m.drag != nil {
			// No in-place edits while a card is in flight.
			return m, nil
		}
		m.mode = modeEditing
		m.editTarget = itemRef{Col: m.sel.Col, Item: m.sel.Item}
		m.input.Placeholder = ""
		m.input.SetValue(m.board.Items(m.sel.Col)[m.sel.Item])
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink

	case " ":
		if m.sel.Item < 0 {
			return m, nil
		}
		m.drag = &itemRef{Col: m.sel.Col, Item: m.sel.Item}
		m.mode = modeMoving

	case "r":
		m.reloadFromDisk()
	}
	return m, nil
}

func (m appModel) updateMoving(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.drag == nil {
		m.mode = modeNormal
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		m.moveDragged(m.drag.Col-1, m.drag.Item)
	case "right", "l":
		m.moveDragged(m.drag.Col+1, m.drag.Item)
	case "up", "k":
		m.moveDragged(m.drag.Col, m.drag.Item-1)
	case "down", "j":
		m.moveDragged(m.drag.Col, m.drag.Item+1)

	case " ", "enter":
		m.commitDrop()
	case "esc":
		m.cancelDrag()
	case "ctrl+c", "q":
		return m, tea.Quit
	}
	return m, nil
}

// moveDragged relocates the in-flight card to (col, idx) in the visual
// lists. This is direct manipulation: the board is untouched until the drop.
func (m *appModel) moveDragged(col model.Column, idx int) {
	if m.drag == nil || !col.Valid() {
		return
	}
	item, ok := m.lists.Take(m.drag.Col, m.drag.Item)
	if !ok {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(m.lists.ColumnItems(col)) {
		idx = len(m.lists.ColumnItems(col))
	}
	m.lists.Insert(col, idx, item)
	m.drag.Col = col
	m.drag.Item = idx
	m.sel = selection{Col: col, Item: idx}
}

// commitDrop makes the visual order authoritative: every column's sequence
// is rebuilt by reading the lists back, then rendered and persisted.
func (m *appModel) commitDrop() {
	m.board = board.Rebuild(&m.lists)
	m.lists.FromBoard(m.board)
	m.drag = nil
	m.mode = modeNormal
	m.sel = clampSelection(&m.lists, m.sel)
	m.store.SaveQuiet(context.Background(), m.board)
}

func (m *appModel) cancelDrag() {
	origin := selection{}
	if m.drag != nil {
		origin = selection{Col: m.drag.Col, Item: m.drag.Item}
	}
	m.lists.FromBoard(m.board)
	m.drag = nil
	m.mode = modeNormal
	m.sel = clampSelection(&m.lists, origin)
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.mode == modeAdding {
			m.commitAdd()
		} else {
			m.commitEdit()
		}
		return m, nil
	case "esc":
		m.input.Blur()
		m.mode = modeNormal
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// In-place editing enforces the character limit continuously: anything
	// past it is cut immediately and the user is warned. Adds are instead
	// rejected at submit time, leaving the text intact for trimming.
	if m.mode == modeEditing {
		if v, cut := board.Truncate(m.input.Value()); cut {
			m.input.SetValue(v)
			m.input.CursorEnd()
			m.status = fmt.Sprintf("task text is limited to %d characters", board.MaxItemLen)
		}
	}
	return m, cmd
}

func (m *appModel) commitAdd() {
	text := m.input.Value()
	err := board.Add(m.board, m.sel.Col, text)

	var tooLong board.TooLongError
	if errors.As(err, &tooLong) {
		// Reject with no mutation; keep the input open so the user can trim.
		m.status = tooLong.Error()
		return
	}
	if err != nil {
		m.status = err.Error()
		return
	}

	m.input.Blur()
	m.mode = modeNormal
	m.lists.FromBoard(m.board)
	if n := len(m.lists.ColumnItems(m.sel.Col)); n > 0 && strings.TrimSpace(text) != "" {
		m.sel = selection{Col: m.sel.Col, Item: n - 1}
	}
	m.store.SaveQuiet(context.Background(), m.board)
}

func (m *appModel) commitEdit() {
	m.input.Blur()
	m.mode = modeNormal

	// An edit commit can fire spuriously while its element is being dragged
	// (focus loss during the gesture). Committing then would corrupt the
	// sequences, so the commit is skipped entirely.
	if m.drag != nil && m.drag.Col == m.editTarget.Col && m.drag.Item == m.editTarget.Item {
		return
	}

	if err := board.Edit(m.board, m.editTarget.Col, m.editTarget.Item, m.input.Value()); err != nil {
		m.status = err.Error()
		return
	}
	m.lists.FromBoard(m.board)
	m.sel = clampSelection(&m.lists, m.sel)
	m.store.SaveQuiet(context.Background(), m.board)
}

func (m *appModel) reloadFromDisk() {
	b, err := m.store.Load(context.Background())
	if err != nil {
		m.status = "reload failed: " + err.Error()
		return
	}
	m.board = b
	m.lists.FromBoard(b)
	m.drag = nil
	m.mode = modeNormal
	m.sel = clampSelection(&m.lists, m.sel)
}

func (m appModel) View() string {
	header := lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("Kanban  %s  %d tasks", m.store.Dir, m.board.Count()))

	bodyHeight := m.height - 5
	if bodyHeight < 8 {
		bodyHeight = 8
	}
	bodyWidth := m.width
	if bodyWidth < 48 {
		bodyWidth = 48
	}
	body := renderBoard(&m.lists, m.sel, m.drag != nil, bodyWidth, bodyHeight)

	var extra string
	switch m.mode {
	case modeAdding:
		extra = fmt.Sprintf("add to %s  %s", m.sel.Col.Title(), m.input.View())
	case modeEditing:
		extra = fmt.Sprintf("edit  %s", m.input.View())
	}

	if m.status != "" {
		if extra != "" {
			extra += "\n"
		}
		extra += styleWarn().Render(m.status)
	}

	footer := styleMuted().Render(m.helpLine())

	parts := []string{header, body}
	if extra != "" {
		parts = append(parts, extra)
	}
	parts = append(parts, footer)
	return strings.Join(parts, "\n")
}

func (m appModel) helpLine() string {
	switch m.mode {
	case modeAdding, modeEditing:
		return "enter: save  esc: cancel"
	case modeMoving:
		return "arrows: move card  space/enter: drop  esc: put back"
	default:
		return "arrows/hjkl: navigate  a: add  e/enter: edit  space: pick up  r: reload  q: quit"
	}
}
