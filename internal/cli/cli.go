package cli

import (
	"sidekick/internal/config"
)

// Context carries the loaded configuration into the kong command handlers.
type Context struct {
	Config     *config.Config
	ConfigPath string
}
