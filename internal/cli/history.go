package cli

import (
	"fmt"
	"strings"

	"sidekick/internal/keyring"
	"sidekick/internal/models"
	"sidekick/internal/storage"
)

// HistoryCmd prints the recent notification history from the archive store.
type HistoryCmd struct {
	Limit int `help:"Maximum number of entries to show." default:"${history_page_size}"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	notifications, err := store.GetNotifications(c.Limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(notifications) == 0 {
		fmt.Println("No notification history yet.")
		return nil
	}

	loc := ctx.Config.TimezoneLocation()
	for _, n := range notifications {
		fmt.Printf("%s  %-7s  %s\n", n.CreatedAt.In(loc).Format("2006-01-02 15:04:05"), kindTag(n.Kind), n.Title)
		fmt.Printf("%s%s\n", strings.Repeat(" ", 31), n.Message)
	}
	return nil
}

func openStore(ctx *Context) (storage.Provider, error) {
	switch ctx.Config.Storage.Driver {
	case "postgres":
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("failed to read database credentials: %w", err)
		}
		store := storage.NewPostgresStore(connStr)
		if err := store.Init(); err != nil {
			return nil, err
		}
		return store, nil
	default:
		store := storage.NewSQLiteStore(ctx.Config.Storage.Path)
		if err := store.Init(); err != nil {
			return nil, err
		}
		return store, nil
	}
}

func kindTag(kind models.NotificationKind) string {
	if kind == "" {
		return string(models.KindInfo)
	}
	return string(kind)
}
