package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"kanban-cli/internal/format"
	"kanban-cli/internal/model"
	"kanban-cli/internal/store"
	"kanban-cli/internal/tui"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "kanban",
		Short:        "Local task board: four columns, drag-and-drop, no server",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  kanban

  # Scriptable commands
  kanban list
  kanban add progress "Ship v2"
  kanban move backlog 0 complete

  # Column shortcut (same as: kanban list backlog)
  kanban backlog
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("KANBAN_DIR", ""), "Path to store dir (default: discovered .kanban, else ./.kanban)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("KANBAN_FORMAT", "json"), "Output format (json|text)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	s, b, err := loadBoard(app)
	if err != nil {
		// Storage being unavailable never kills the session: run on the
		// seed board in memory only.
		logrus.WithError(err).Warn("board load failed; starting with in-memory defaults")
		b = model.Default()
	}
	return tui.Run(s, b)
}

// loadBoard resolves the store dir and loads the persisted board (or the
// seed defaults when nothing is persisted yet).
func loadBoard(app *App) (store.Store, *model.Board, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, nil, err
		}
		dir = d
		app.Dir = dir
	}

	s := store.Store{Dir: dir}
	b, err := s.Load(context.Background())
	if err != nil {
		return s, nil, err
	}
	return s, b, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// writeOut emits v under the JSON {"data": ...} envelope, or as plain lines
// in text mode.
func writeOut(cmd *cobra.Command, app *App, v any) error {
	if app.Format == "text" {
		return format.Write(cmd.OutOrStdout(), v, app.Format, false)
	}
	return format.Write(cmd.OutOrStdout(), map[string]any{"data": v}, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
