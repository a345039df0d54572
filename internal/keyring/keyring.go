package keyring

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/zalando/go-keyring"

	"github.com/julianstephens/hermione/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(user string) (string, error) {
	v, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func del(user string) error {
	err := keyring.Delete(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetUserToken returns the device's user token, minting and storing a new
// one on first use. The token is the bearer credential of the status check.
func GetUserToken() (string, error) {
	token, err := get(constants.DefaultKeyringUser)
	if err == nil && token != "" {
		return token, nil
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", err
	}

	token = uuid.NewString()
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, token); err != nil {
		return "", fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return token, nil
}

// DeleteUserToken removes the user token. The next GetUserToken mints a new
// one, which signs the device out.
func DeleteUserToken() error {
	return del(constants.DefaultKeyringUser)
}

// GetEmail retrieves the last email used for the OTP challenge.
// Returns ErrNotFound if none is stored.
func GetEmail() (string, error) {
	return get(constants.DefaultKeyringEmail)
}

// SetEmail stores the email used for the OTP challenge.
func SetEmail(email string) error {
	if email == "" {
		return errors.New("email cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringEmail, email); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteEmail removes the stored email.
func DeleteEmail() error {
	return del(constants.DefaultKeyringEmail)
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
