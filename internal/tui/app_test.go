package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
	"kanban-cli/internal/store"
)

func newTestModel(t *testing.T) appModel {
	t.Helper()
	s := store.Store{Dir: t.TempDir()}
	return newAppModel(s, model.Default())
}

func press(t *testing.T, m tea.Model, msg tea.Msg) appModel {
	t.Helper()
	nm, _ := m.Update(msg)
	am, ok := nm.(appModel)
	if !ok {
		t.Fatalf("Update returned %T, want appModel", nm)
	}
	return am
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func wantColumn(t *testing.T, b *model.Board, c model.Column, want ...string) {
	t.Helper()
	got := b.Items(c)
	if len(got) != len(want) {
		t.Fatalf("column %s: want %v, got %v", c.Name(), want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %s: want %v, got %v", c.Name(), want, got)
		}
	}
}

func TestGrabMoveDropRebuildsAndPersists(t *testing.T) {
	m := newTestModel(t)

	// Pick up the first backlog card.
	m = press(t, m, key(tea.KeySpace))
	if m.mode != modeMoving || m.drag == nil {
		t.Fatalf("expected moving mode with an active drag source")
	}

	// Carry it into the progress column, then one slot down.
	m = press(t, m, key(tea.KeyRight))
	m = press(t, m, key(tea.KeyDown))

	// Board is untouched until the drop; the visual lists diverge.
	wantColumn(t, m.board, model.Backlog, "Release the course", "Sit back and relax")

	m = press(t, m, key(tea.KeyEnter))
	if m.mode != modeNormal || m.drag != nil {
		t.Fatalf("expected drop to clear the drag state")
	}

	wantColumn(t, m.board, model.Backlog, "Sit back and relax")
	wantColumn(t, m.board, model.Progress, "Work on projects", "Release the course", "Listen to music")
	wantColumn(t, m.board, model.Complete, "Being cool", "Getting stuff done")
	wantColumn(t, m.board, model.OnHold, "Being uncool")

	// Both affected columns are persisted by the time the handler returns.
	persisted, err := m.store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !persisted.Equal(m.board) {
		t.Fatalf("persisted board should match in-memory board after drop")
	}
}

func TestCancelDragRestoresBoardOrder(t *testing.T) {
	m := newTestModel(t)
	before := m.board.Clone()

	m = press(t, m, key(tea.KeySpace))
	m = press(t, m, key(tea.KeyRight))
	m = press(t, m, key(tea.KeyRight))
	m = press(t, m, key(tea.KeyEsc))

	if m.mode != modeNormal || m.drag != nil {
		t.Fatalf("expected esc to end the drag")
	}
	if !m.board.Equal(before) {
		t.Fatalf("cancelled drag must leave the board unchanged")
	}
	got := board.Rebuild(&m.lists)
	if !got.Equal(before) {
		t.Fatalf("cancelled drag must restore the visual lists from the board")
	}
}

func TestAddCommitsAndPersists(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("a"))
	if m.mode != modeAdding {
		t.Fatalf("expected adding mode")
	}
	m = press(t, m, runes("Ship v2"))
	m = press(t, m, key(tea.KeyEnter))

	if m.mode != modeNormal {
		t.Fatalf("expected commit to return to normal mode")
	}
	wantColumn(t, m.board, model.Backlog, "Release the course", "Sit back and relax", "Ship v2")
	if m.sel.Item != 2 {
		t.Fatalf("expected cursor on the new item, got %+v", m.sel)
	}

	persisted, err := m.store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !persisted.Equal(m.board) {
		t.Fatalf("add must persist before the handler returns")
	}
}

func TestAddOverLimitRejectsWithWarning(t *testing.T) {
	m := newTestModel(t)
	before := m.board.Clone()

	m = press(t, m, runes("a"))
	m = press(t, m, runes(strings.Repeat("x", board.MaxItemLen+1)))
	m = press(t, m, key(tea.KeyEnter))

	if !m.board.Equal(before) {
		t.Fatalf("over-limit add must not mutate the board")
	}
	if m.status == "" {
		t.Fatalf("expected a user-visible warning")
	}
	if m.mode != modeAdding {
		t.Fatalf("expected the input to stay open for correction")
	}
}

func TestAddEmptyIsSilentNoOp(t *testing.T) {
	m := newTestModel(t)
	before := m.board.Clone()

	m = press(t, m, runes("a"))
	m = press(t, m, runes("   "))
	m = press(t, m, key(tea.KeyEnter))

	if !m.board.Equal(before) {
		t.Fatalf("whitespace-only add must not mutate the board")
	}
	if m.mode != modeNormal {
		t.Fatalf("expected empty add to close the input")
	}
	if m.status != "" {
		t.Fatalf("empty add should not warn, got %q", m.status)
	}
}

func TestEditReplacesSelectedItem(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("e"))
	if m.mode != modeEditing {
		t.Fatalf("expected editing mode")
	}
	if m.input.Value() != "Release the course" {
		t.Fatalf("expected input prefilled with the item, got %q", m.input.Value())
	}
	m = press(t, m, runes(" today"))
	m = press(t, m, key(tea.KeyEnter))

	wantColumn(t, m.board, model.Backlog, "Release the course today", "Sit back and relax")
}

func TestEditToEmptyDeletesItem(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("e"))
	m.input.SetValue("")
	m = press(t, m, key(tea.KeyEnter))

	wantColumn(t, m.board, model.Backlog, "Sit back and relax")
	// No other column shifts.
	wantColumn(t, m.board, model.Progress, "Work on projects", "Listen to music")
}

func TestEditLiveTruncationWarns(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("e"))
	m = press(t, m, runes(strings.Repeat("y", board.MaxItemLen+10)))

	if got := len([]rune(m.input.Value())); got != board.MaxItemLen {
		t.Fatalf("expected live truncation to %d chars, got %d", board.MaxItemLen, got)
	}
	if m.status == "" {
		t.Fatalf("expected truncation warning")
	}
}

func TestEditCommitDuringDragIsSkipped(t *testing.T) {
	m := newTestModel(t)
	before := m.board.Clone()

	// Start a drag, then simulate the spurious commit a focus loss can fire
	// against the dragged element mid-gesture.
	m = press(t, m, key(tea.KeySpace))
	m.editTarget = *m.drag
	m.input.SetValue("")
	(&m).commitEdit()

	if !m.board.Equal(before) {
		t.Fatalf("an edit commit against the active drag source must be ignored")
	}
}

func TestEditKeyIgnoredWhileMoving(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, key(tea.KeySpace))
	m = press(t, m, runes("e"))
	if m.mode != modeMoving {
		t.Fatalf("expected edit to be refused while a card is in flight")
	}
}

func TestViewIsIdempotent(t *testing.T) {
	m := newTestModel(t)
	m.width = 120
	m.height = 30
	if m.View() != m.View() {
		t.Fatalf("View must be a pure function of the model")
	}
	if !strings.Contains(m.View(), "Backlog (2)") {
		t.Fatalf("expected the board in the view")
	}
}
