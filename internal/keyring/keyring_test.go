package keyring

import (
	"testing"

	"github.com/google/uuid"
	gokeyring "github.com/zalando/go-keyring"
)

func TestGetUserTokenMintsOnce(t *testing.T) {
	gokeyring.MockInit()

	first, err := GetUserToken()
	if err != nil {
		t.Fatalf("GetUserToken() failed: %v", err)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Errorf("GetUserToken() = %q, want a UUID: %v", first, err)
	}

	second, err := GetUserToken()
	if err != nil {
		t.Fatalf("GetUserToken() second call failed: %v", err)
	}
	if second != first {
		t.Errorf("GetUserToken() = %q, want stored token %q", second, first)
	}
}

func TestDeleteUserTokenRotates(t *testing.T) {
	gokeyring.MockInit()

	first, err := GetUserToken()
	if err != nil {
		t.Fatalf("GetUserToken() failed: %v", err)
	}
	if err := DeleteUserToken(); err != nil {
		t.Fatalf("DeleteUserToken() failed: %v", err)
	}
	second, err := GetUserToken()
	if err != nil {
		t.Fatalf("GetUserToken() failed: %v", err)
	}
	if second == first {
		t.Error("GetUserToken() after delete returned the old token")
	}
}

func TestDeleteUserTokenNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteUserToken()

	if err := DeleteUserToken(); err != ErrNotFound {
		t.Errorf("DeleteUserToken() error = %v, want %v", err, ErrNotFound)
	}
}

func TestSetAndGetEmail(t *testing.T) {
	gokeyring.MockInit()

	if err := SetEmail("editor@example.com"); err != nil {
		t.Fatalf("SetEmail() failed: %v", err)
	}

	got, err := GetEmail()
	if err != nil {
		t.Fatalf("GetEmail() failed: %v", err)
	}
	if got != "editor@example.com" {
		t.Errorf("GetEmail() = %q, want %q", got, "editor@example.com")
	}
}

func TestSetEmailEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetEmail(""); err == nil {
		t.Error("SetEmail(\"\") should return an error")
	}
}

func TestGetEmailNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteEmail()

	if _, err := GetEmail(); err != ErrNotFound {
		t.Errorf("GetEmail() error = %v, want %v", err, ErrNotFound)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}
