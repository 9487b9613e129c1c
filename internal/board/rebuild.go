package board

import (
	"strings"

	"kanban-cli/internal/model"
)

// ListReader exposes the current visual order of each column's items.
//
// Drag-and-drop manipulates the visual lists directly, so after a drop the
// in-memory board is a stale cache. Rebuild treats the visual order as
// authoritative and reconstructs every column from it, which avoids computing
// an insertion index from drop coordinates.
type ListReader interface {
	ColumnItems(c model.Column) []string
}

// Rebuild reads back all four columns from r, in order, and returns a fresh
// board. Empty items are filtered out: they are never persisted.
func Rebuild(r ListReader) *model.Board {
	out := model.New()
	for _, c := range model.Columns() {
		for _, text := range r.ColumnItems(c) {
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			out.Columns[c] = append(out.Columns[c], text)
		}
	}
	return out
}

// Lists is a plain in-memory ListReader: four ordered string slices, one per
// column. The TUI uses it as the visual tree; tests use it as the stand-in.
type Lists [model.NumColumns][]string

func (l *Lists) ColumnItems(c model.Column) []string {
	if !c.Valid() {
		return nil
	}
	return l[c]
}

// FromBoard resets the lists to mirror b.
func (l *Lists) FromBoard(b *model.Board) {
	for i := range l {
		l[i] = append([]string{}, b.Columns[i]...)
	}
}

// Take removes and returns the item at idx in column c. It reports ok=false
// without mutating anything if the position does not exist.
func (l *Lists) Take(c model.Column, idx int) (string, bool) {
	if !c.Valid() || idx < 0 || idx >= len(l[c]) {
		return "", false
	}
	item := l[c][idx]
	l[c] = append(l[c][:idx], l[c][idx+1:]...)
	return item, true
}

// Insert places item at idx in column c, clamping idx into [0, len].
func (l *Lists) Insert(c model.Column, idx int, item string) {
	if !c.Valid() {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(l[c]) {
		idx = len(l[c])
	}
	l[c] = append(l[c][:idx], append([]string{item}, l[c][idx:]...)...)
}
