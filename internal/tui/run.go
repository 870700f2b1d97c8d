package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"chessington/internal/server/game"
)

func Run(m *game.Manager, fen string) error {
	model, err := NewModel(m, fen)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
