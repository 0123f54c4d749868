package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"sidekick/internal/app"
	"sidekick/internal/tui"
)

// RunCmd starts the reminder engine and the interactive dashboard.
type RunCmd struct{}

func (c *RunCmd) Run(ctx *Context) error {
	a, err := app.New(ctx.Config)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.Start(runCtx); err != nil {
		return fmt.Errorf("failed to start services: %w", err)
	}
	defer a.Stop()

	model := tui.NewModel(tui.Deps{
		Sink:     a.Sink(),
		Poller:   a.Poller(),
		Client:   a.Client(),
		Gate:     a.Gate(),
		Coords:   a.Coordinates(),
		Location: ctx.Config.TimezoneLocation(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard exited with error: %w", err)
	}
	return nil
}
