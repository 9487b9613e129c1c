package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the store dir and persist the starter board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, b, err := loadBoard(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Load already seeded defaults if nothing was persisted; writing
			// them back makes the board durable from the start.
			if err := s.Save(context.Background(), b); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"dir": s.Dir, "tasks": b.Count()})
		},
	}
}
