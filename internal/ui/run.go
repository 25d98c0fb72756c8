package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/jterm/internal/engine"
)

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, s *engine.Session, opts Options) error {
	m := newModel(ctx, s, opts)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
