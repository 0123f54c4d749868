package cli

import (
	"errors"
	"fmt"
	"strings"

	"sidekick/internal/keyring"
)

// TokenSetCmd stores the backend API token in the OS keyring.
type TokenSetCmd struct {
	Token string `arg:"" help:"Backend API token to store in keyring."`
}

func (c *TokenSetCmd) Run(ctx *Context) error {
	if err := keyring.SetToken(strings.TrimSpace(c.Token)); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	fmt.Println("✓ Backend token stored in OS keyring")
	return nil
}

// TokenClearCmd removes the backend API token from the OS keyring.
type TokenClearCmd struct{}

func (c *TokenClearCmd) Run(ctx *Context) error {
	if err := keyring.DeleteToken(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no token found in keyring")
		}
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	fmt.Println("✓ Backend token deleted from OS keyring")
	return nil
}

// TokenStatusCmd checks keyring availability and whether a token is stored.
type TokenStatusCmd struct{}

func (c *TokenStatusCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	fmt.Println("✓ OS keyring is available")

	if _, err := keyring.GetToken(); err == nil {
		fmt.Println("✓ Backend token is stored in keyring")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("ℹ No backend token stored in keyring")
	}
	return nil
}

// TokenSetDbCmd stores the postgres connection string for the history store.
type TokenSetDbCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring."`
}

func (c *TokenSetDbCmd) Run(ctx *Context) error {
	connStr := strings.TrimSpace(c.ConnectionString)
	if !strings.HasPrefix(connStr, "postgres://") &&
		!strings.HasPrefix(connStr, "postgresql://") &&
		!strings.Contains(connStr, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if err := keyring.SetConnectionString(connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	fmt.Println("✓ Connection string stored in OS keyring")
	fmt.Println("  Set storage.driver to \"postgres\" in your config to use it")
	return nil
}
