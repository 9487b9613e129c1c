package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"kanban-cli/internal/model"
	"kanban-cli/internal/store"
)

func Run(s store.Store, b *model.Board) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(s, b)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
