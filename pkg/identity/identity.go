// Package identity tracks who owns the log. The active user id is kept in the
// OS keyring so every command sees the same identity, and every store read is
// scoped to it.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	service        = "internlog"
	currentAccount = "current-user"
)

// ErrNoUser means nobody is signed in; callers should point the user at
// `internlog login` rather than show an error page.
var ErrNoUser = errors.New("identity: no user signed in")

// Current returns the signed-in user id, or ErrNoUser.
func Current() (string, error) {
	user, err := keyring.Get(service, currentAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoUser
		}
		return "", fmt.Errorf("identity: read keyring: %w", err)
	}
	user = strings.TrimSpace(user)
	if user == "" {
		return "", ErrNoUser
	}
	return user, nil
}

// Login records userID as the active identity.
func Login(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errors.New("identity: user id required")
	}
	if err := keyring.Set(service, currentAccount, userID); err != nil {
		return fmt.Errorf("identity: write keyring: %w", err)
	}
	return nil
}

// Logout clears the active identity. Logging out when nobody is signed in is
// not an error.
func Logout() error {
	if err := keyring.Delete(service, currentAccount); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("identity: clear keyring: %w", err)
	}
	return nil
}
