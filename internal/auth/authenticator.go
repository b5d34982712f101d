// Package auth derives, stores and verifies operator password hashes.
package auth

import (
	"context"

	"github.com/mmynk/contactbook/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping the credential check without changing the
// workflow that logs the operator in.
type Authenticator interface {
	// Register provisions a new user with the given credential.
	Register(ctx context.Context, username string, credential []byte) (*models.User, error)

	// Authenticate verifies the credentials and returns the user if they match.
	// An unknown user and a wrong credential are both ErrInvalidCredentials;
	// storage failures are returned wrapped.
	Authenticate(ctx context.Context, username string, credential []byte) (*models.User, error)

	// SetCredential replaces the credential of an existing user.
	SetCredential(ctx context.Context, username string, credential []byte) error

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential []byte) error
}
