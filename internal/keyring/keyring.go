package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
	"sidekick/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetToken retrieves the backend API token from the OS keyring.
// Returns ErrNotFound if no token is stored.
func GetToken() (string, error) {
	return get(constants.DefaultKeyringUser)
}

// SetToken stores the backend API token in the OS keyring.
func SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	return set(constants.DefaultKeyringUser, token)
}

// DeleteToken removes the backend API token from the OS keyring.
func DeleteToken() error {
	return del(constants.DefaultKeyringUser)
}

// GetConnectionString retrieves the postgres connection string from the OS
// keyring. Only used when the history store runs on the postgres driver.
func GetConnectionString() (string, error) {
	return get(constants.KeyringDatabaseKey)
}

// SetConnectionString stores the postgres connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return set(constants.KeyringDatabaseKey, connStr)
}

// DeleteConnectionString removes the postgres connection string from the OS keyring.
func DeleteConnectionString() error {
	return del(constants.KeyringDatabaseKey)
}

func get(user string) (string, error) {
	value, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		// Wrap other keyring errors as unavailable
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func set(user, value string) error {
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func del(user string) error {
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	// If the error is ErrNotFound, the keyring is available but empty
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
