package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
	"kanban-cli/internal/store"
)

// boardOut is the wire shape of the whole board for CLI output.
type boardOut struct {
	Backlog  []string `json:"backlog"`
	Progress []string `json:"progress"`
	Complete []string `json:"complete"`
	OnHold   []string `json:"onhold"`
}

func boardOutOf(b *model.Board) boardOut {
	return boardOut{
		Backlog:  emptyNotNil(b.Items(model.Backlog)),
		Progress: emptyNotNil(b.Items(model.Progress)),
		Complete: emptyNotNil(b.Items(model.Complete)),
		OnHold:   emptyNotNil(b.Items(model.OnHold)),
	}
}

func (o boardOut) Lines() []string {
	var out []string
	cols := []struct {
		title string
		items []string
	}{
		{model.Backlog.Title(), o.Backlog},
		{model.Progress.Title(), o.Progress},
		{model.Complete.Title(), o.Complete},
		{model.OnHold.Title(), o.OnHold},
	}
	for _, c := range cols {
		out = append(out, fmt.Sprintf("%s (%d)", c.title, len(c.items)))
		for i, it := range c.items {
			out = append(out, fmt.Sprintf("  %d. %s", i, it))
		}
	}
	return out
}

type columnOut struct {
	Column string   `json:"column"`
	Items  []string `json:"items"`
}

func (o columnOut) Lines() []string {
	out := []string{fmt.Sprintf("%s (%d)", o.Column, len(o.Items))}
	for i, it := range o.Items {
		out = append(out, fmt.Sprintf("  %d. %s", i, it))
	}
	return out
}

func emptyNotNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [column]",
		Short: "Show the board, or one column",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, b, err := loadBoard(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(args) == 0 {
				return writeOut(cmd, app, boardOutOf(b))
			}
			c, err := model.ParseColumn(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, columnOut{Column: c.Name(), Items: emptyNotNil(b.Items(c))})
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <column> <text...>",
		Short: "Append a task to a column",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := model.ParseColumn(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, b, err := loadBoard(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			text := strings.Join(args[1:], " ")
			if err := board.Add(b, c, text); err != nil {
				return writeErr(cmd, err)
			}
			saveBestEffort(s, b)
			return writeOut(cmd, app, columnOut{Column: c.Name(), Items: emptyNotNil(b.Items(c))})
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <column> <index> [text...]",
		Short: "Replace a task's text; empty text deletes the task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, idx, err := parseColumnIndex(args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, b, err := loadBoard(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			text := strings.Join(args[2:], " ")
			if err := board.Edit(b, c, idx, text); err != nil {
				return writeErr(cmd, err)
			}
			saveBestEffort(s, b)
			return writeOut(cmd, app, columnOut{Column: c.Name(), Items: emptyNotNil(b.Items(c))})
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <column> <index>",
		Short: "Remove the task at an index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, idx, err := parseColumnIndex(args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, b, err := loadBoard(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if err := board.RemoveAt(b, c, idx); err != nil {
				return writeErr(cmd, err)
			}
			saveBestEffort(s, b)
			return writeOut(cmd, app, columnOut{Column: c.Name(), Items: emptyNotNil(b.Items(c))})
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <column> <index> <target> [position]",
		Short: "Move a task to another column (appends unless a position is given)",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, idx, err := parseColumnIndex(args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			dst, err := model.ParseColumn(args[2])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, b, err := loadBoard(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			// Same recovery path as an interactive drag: mutate the ordered
			// lists, then rebuild every column from their order.
			var lists board.Lists
			lists.FromBoard(b)
			item, ok := lists.Take(src, idx)
			if !ok {
				return writeErr(cmd, board.IndexError{Column: src, Index: idx})
			}
			pos := len(lists.ColumnItems(dst))
			if len(args) == 4 {
				p, err := strconv.Atoi(args[3])
				if err != nil {
					return writeErr(cmd, fmt.Errorf("invalid position: %q", args[3]))
				}
				pos = p
			}
			lists.Insert(dst, pos, item)

			b = board.Rebuild(&lists)
			saveBestEffort(s, b)
			return writeOut(cmd, app, boardOutOf(b))
		},
	}
}

func parseColumnIndex(colArg, idxArg string) (model.Column, int, error) {
	c, err := model.ParseColumn(colArg)
	if err != nil {
		return 0, 0, err
	}
	idx, err := strconv.Atoi(strings.TrimSpace(idxArg))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid index: %q", idxArg)
	}
	return c, idx, nil
}

// saveBestEffort persists the mutated board. A write failure is logged and
// swallowed: the command already applied its mutation and reports the
// resulting state; durability loss is not an error to the caller.
func saveBestEffort(s store.Store, b *model.Board) {
	if err := s.Save(context.Background(), b); err != nil {
		logrus.WithError(err).WithField("dir", s.Dir).Warn("board save failed")
	}
}
