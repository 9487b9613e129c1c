package model

import (
	"fmt"
	"strings"
)

// Column identifies one of the four fixed board columns by index.
// The indices are part of the persisted contract and must not change.
type Column int

const (
	Backlog Column = iota
	Progress
	Complete
	OnHold

	NumColumns = 4
)

// Columns lists all columns in display order (left to right).
func Columns() []Column {
	return []Column{Backlog, Progress, Complete, OnHold}
}

func (c Column) Valid() bool {
	return c >= 0 && c < NumColumns
}

// Name is the machine-facing column name (CLI arguments, storage docs).
func (c Column) Name() string {
	switch c {
	case Backlog:
		return "backlog"
	case Progress:
		return "progress"
	case Complete:
		return "complete"
	case OnHold:
		return "onhold"
	default:
		return fmt.Sprintf("column-%d", int(c))
	}
}

// Title is the human-facing column label shown in headers.
func (c Column) Title() string {
	switch c {
	case Backlog:
		return "Backlog"
	case Progress:
		return "In Progress"
	case Complete:
		return "Complete"
	case OnHold:
		return "On Hold"
	default:
		return c.Name()
	}
}

// ParseColumn accepts a column name (case-insensitive, with a few common
// spellings) or a numeric index 0-3.
func ParseColumn(s string) (Column, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "backlog", "0":
		return Backlog, nil
	case "progress", "in-progress", "inprogress", "doing", "1":
		return Progress, nil
	case "complete", "completed", "done", "2":
		return Complete, nil
	case "onhold", "on-hold", "hold", "3":
		return OnHold, nil
	default:
		return 0, fmt.Errorf("invalid column: %q (expected backlog|progress|complete|onhold or 0-3)", s)
	}
}

// Board is the full board state: four ordered item sequences, one per column.
// Sequence order is display order (top to bottom).
type Board struct {
	Columns [NumColumns][]string
}

// New returns an empty board with non-nil sequences.
func New() *Board {
	b := &Board{}
	for i := range b.Columns {
		b.Columns[i] = []string{}
	}
	return b
}

// Default returns the seed board used when no persisted state exists.
func Default() *Board {
	return &Board{Columns: [NumColumns][]string{
		{"Release the course", "Sit back and relax"},
		{"Work on projects", "Listen to music"},
		{"Being cool", "Getting stuff done"},
		{"Being uncool"},
	}}
}

// Items returns the sequence for a column. The slice is the board's own
// backing array; callers that mutate should go through board ops or Clone.
func (b *Board) Items(c Column) []string {
	if !c.Valid() {
		return nil
	}
	return b.Columns[c]
}

func (b *Board) SetItems(c Column, items []string) {
	if !c.Valid() {
		return
	}
	if items == nil {
		items = []string{}
	}
	b.Columns[c] = items
}

// Count returns the total number of items across all columns.
func (b *Board) Count() int {
	n := 0
	for i := range b.Columns {
		n += len(b.Columns[i])
	}
	return n
}

// Clone returns a deep copy sharing no backing arrays with b.
func (b *Board) Clone() *Board {
	out := &Board{}
	for i := range b.Columns {
		out.Columns[i] = append([]string{}, b.Columns[i]...)
	}
	return out
}

// Equal reports whether two boards hold the same items in the same order.
// Nil and empty sequences compare equal.
func (b *Board) Equal(other *Board) bool {
	if b == nil || other == nil {
		return b == other
	}
	for i := range b.Columns {
		if len(b.Columns[i]) != len(other.Columns[i]) {
			return false
		}
		for j := range b.Columns[i] {
			if b.Columns[i][j] != other.Columns[i][j] {
				return false
			}
		}
	}
	return true
}
