package tui

import (
	"context"
	"errors"

	"github.com/amterp/swatch/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the terminal UI and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, controller *service.Controller) error {
	bridge := NewBridge()
	program := tea.NewProgram(
		NewModel(controller, bridge),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	bridge.Attach(program)
	defer controller.RemoveView(bridge)

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
