package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sidekick/internal/app"
)

// ServeCmd runs the reminder engine headless, without the dashboard. Meant
// for running under a service manager with the desktop forwarder enabled.
type ServeCmd struct{}

func (c *ServeCmd) Run(ctx *Context) error {
	a, err := app.New(ctx.Config)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(runCtx); err != nil {
		return fmt.Errorf("failed to start services: %w", err)
	}

	fmt.Println("sidekick is watching your schedule. Ctrl+C to stop.")
	<-runCtx.Done()

	a.Stop()
	return nil
}
