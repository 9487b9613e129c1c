package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
)

// selection is the cursor position on the board: a column and an item index
// within it. Item is -1 when the column is empty.
type selection struct {
	Col  model.Column
	Item int
}

// clampSelection snaps sel onto a position that exists in the given lists.
func clampSelection(l *board.Lists, sel selection) selection {
	if sel.Col < 0 {
		sel.Col = 0
	}
	if sel.Col >= model.NumColumns {
		sel.Col = model.NumColumns - 1
	}

	n := len(l.ColumnItems(sel.Col))
	if n == 0 {
		sel.Item = -1
		return sel
	}
	if sel.Item < 0 {
		sel.Item = 0
	}
	if sel.Item >= n {
		sel.Item = n - 1
	}
	return sel
}

// renderBoard draws the four columns side by side from the visual lists.
// It is a pure function of its inputs: rendering the same lists, selection
// and size twice yields identical output.
func renderBoard(l *board.Lists, sel selection, dragging bool, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	sel = clampSelection(l, sel)

	n := model.NumColumns
	gap := 2
	avail := width - gap*(n-1)
	if avail < n {
		avail = n
	}
	colW := avail / n
	if colW < 10 {
		colW = 10
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Background(colorControlBg)
	headerSelectedStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)
	muted := styleMuted()

	// Whitespace defines the "card", not borders; borders read like a
	// continuous list when cards stack.
	itemStyle := lipgloss.NewStyle().Width(colW).Padding(0, 1)
	itemSelectedStyle := itemStyle.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	itemDraggedStyle := itemStyle.Foreground(colorAccentFg).Background(colorAccent).Bold(true)
	itemInnerW := colW - 2
	if itemInnerW < 0 {
		itemInnerW = 0
	}

	renderCard := func(text string, selected bool) string {
		lines := wrapPlainText(text, itemInnerW)
		inner := normalizePane(strings.Join(lines, "\n"), itemInnerW, 0)
		if selected && dragging {
			return itemDraggedStyle.Render(inner)
		}
		if selected {
			return itemSelectedStyle.Render(inner)
		}
		return itemStyle.Render(inner)
	}

	renderCol := func(c model.Column) string {
		items := l.ColumnItems(c)
		head := fmt.Sprintf("%s (%d)", c.Title(), len(items))
		head = truncateToWidth(head, colW)
		lines := make([]string, 0, height)
		hs := headerStyle
		if c == sel.Col {
			hs = headerSelectedStyle
		}
		lines = append(lines, hs.Width(colW).Render(head))

		if len(items) == 0 {
			lines = append(lines, muted.Render("(empty)"))
			return normalizePane(strings.Join(lines, "\n"), colW, height)
		}

		// Padding above the first card.
		lines = append(lines, "")

		for i, text := range items {
			card := renderCard(text, c == sel.Col && i == sel.Item)
			lines = append(lines, strings.Split(card, "\n")...)

			if i < len(items)-1 {
				sepW := colW - 2 // align with card padding
				if sepW < 0 {
					sepW = 0
				}
				sep := " " + strings.Repeat("─", sepW) + " "
				lines = append(lines, muted.Render(sep))
			}
		}
		return normalizePane(strings.Join(lines, "\n"), colW, height)
	}

	rendered := make([]string, 0, n)
	for _, c := range model.Columns() {
		rendered = append(rendered, renderCol(c))
	}

	// Insert gaps manually; JoinHorizontal has no inter-column spacing.
	out := rendered[0]
	sep := strings.Repeat(" ", gap)
	for i := 1; i < len(rendered); i++ {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, sep, rendered[i])
	}

	return normalizePane(out, width, height)
}
