package cli

import (
	"context"

	coreapp "libdeps/internal/core/app"
	"libdeps/internal/data/history"

	tea "github.com/charmbracelet/bubbletea"
)

func runUI(ctx context.Context, ctrl Controller, runs []history.Run) error {
	m := initialModel(ctx, ctrl, runs)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	ctrl.SetUpdateHandler(func(coreapp.Update) {
		p.Send(updateMsg{result: ctrl.Current()})
	})
	defer ctrl.SetUpdateHandler(nil)

	go func() {
		p.Send(updateMsg{result: ctrl.Current()})
	}()

	_, err := p.Run()
	return err
}
