// Package board implements the board state manager: validated mutations over
// the in-memory model.Board, and reconstruction of the board from an ordered
// list source after a drag.
package board

import (
	"fmt"
	"strings"

	"kanban-cli/internal/model"
)

// MaxItemLen is the maximum item length in characters, counted after
// trimming surrounding whitespace.
const MaxItemLen = 100

type TooLongError struct {
	Len int
}

func (e TooLongError) Error() string {
	return fmt.Sprintf("task text is too long: %d characters (max %d)", e.Len, MaxItemLen)
}

type IndexError struct {
	Column model.Column
	Index  int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("no item at index %d in column %s", e.Index, e.Column.Name())
}

type ColumnError struct {
	Column model.Column
}

func (e ColumnError) Error() string {
	return fmt.Sprintf("invalid column index: %d", int(e.Column))
}

// Add appends trimmed text to a column's sequence.
//
// Empty text (after trimming) is a silent no-op. Text longer than MaxItemLen
// is rejected with TooLongError and the board is left unchanged.
func Add(b *model.Board, c model.Column, text string) error {
	if !c.Valid() {
		return ColumnError{Column: c}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if n := len([]rune(text)); n > MaxItemLen {
		return TooLongError{Len: n}
	}
	b.Columns[c] = append(b.Columns[c], text)
	return nil
}

// Edit replaces the item at idx with trimmed newText. Empty text removes the
// item. Over-limit text is truncated to MaxItemLen rather than rejected: this
// is the in-place editing rule, where the limit is enforced continuously.
func Edit(b *model.Board, c model.Column, idx int, newText string) error {
	if !c.Valid() {
		return ColumnError{Column: c}
	}
	if idx < 0 || idx >= len(b.Columns[c]) {
		return IndexError{Column: c, Index: idx}
	}
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return RemoveAt(b, c, idx)
	}
	newText, _ = Truncate(newText)
	b.Columns[c][idx] = newText
	return nil
}

// RemoveAt splices the item at idx out of the column's sequence. There is
// never a transient hole: the remaining items keep their relative order.
func RemoveAt(b *model.Board, c model.Column, idx int) error {
	if !c.Valid() {
		return ColumnError{Column: c}
	}
	items := b.Columns[c]
	if idx < 0 || idx >= len(items) {
		return IndexError{Column: c, Index: idx}
	}
	b.Columns[c] = append(items[:idx], items[idx+1:]...)
	return nil
}

// Truncate enforces MaxItemLen on in-flight edit text and reports whether
// anything was cut, so the caller can warn the user.
func Truncate(text string) (string, bool) {
	runes := []rune(text)
	if len(runes) <= MaxItemLen {
		return text, false
	}
	return string(runes[:MaxItemLen]), true
}
