package cli

import (
	"fmt"

	"sidekick/internal/notify"
)

// NotifyCmd forwards a one-off notification to the desktop tray helper.
// Used internally and for testing the tray wiring.
type NotifyCmd struct {
	Title   string `arg:"" help:"Notification title."`
	Message string `arg:"" help:"Notification message."`
}

func (c *NotifyCmd) Run(ctx *Context) error {
	forwarder := notify.NewTrayForwarder()
	if err := forwarder.Notify(c.Title, c.Message); err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	fmt.Println("✓ Notification sent")
	return nil
}
