package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pb33f/reqgrid/motor"
	"github.com/pb33f/reqgrid/tui"
)

func LaunchTUI(opts motor.ViewerOptions) error {
	model := tui.NewGridViewModel(opts)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if m, ok := finalModel.(*tui.GridViewModel); ok {
		if err := m.Err(); err != nil {
			return err
		}
	}

	return nil
}
