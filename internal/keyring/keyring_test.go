package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetToken(t *testing.T) {
	// Use mock keyring for testing
	gokeyring.MockInit()

	testToken := "sk-backend-0123456789"

	if err := SetToken(testToken); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}

	retrieved, err := GetToken()
	if err != nil {
		t.Fatalf("GetToken() failed: %v", err)
	}

	if retrieved != testToken {
		t.Errorf("GetToken() = %q, want %q", retrieved, testToken)
	}
}

func TestSetTokenEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken(""); err == nil {
		t.Error("SetToken(\"\") should return an error")
	}
}

func TestGetTokenNotFound(t *testing.T) {
	gokeyring.MockInit()

	// Ensure nothing is stored
	_ = DeleteToken()

	_, err := GetToken()
	if err != ErrNotFound {
		t.Errorf("GetToken() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteToken(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken("sk-backend-0123456789"); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}

	if err := DeleteToken(); err != nil {
		t.Fatalf("DeleteToken() failed: %v", err)
	}

	if _, err := GetToken(); err != ErrNotFound {
		t.Errorf("After DeleteToken(), GetToken() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteTokenNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteToken()

	if err := DeleteToken(); err != ErrNotFound {
		t.Errorf("DeleteToken() error = %v, want %v", err, ErrNotFound)
	}
}

func TestTokenAndConnectionStringAreSeparate(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken("token-value"); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}
	if err := SetConnectionString("postgres://testuser@localhost:5432/testdb?sslmode=disable"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	token, err := GetToken()
	if err != nil {
		t.Fatalf("GetToken() failed: %v", err)
	}
	connStr, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if token == connStr {
		t.Error("token and connection string collided in the keyring")
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	// In mock mode, keyring should be available
	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}
