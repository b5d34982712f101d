package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/contactbook/internal/models"
	"github.com/mmynk/contactbook/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password too short")
	ErrUserExists         = errors.New("username already registered")
)

const DefaultMinPasswordLength = 8

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	GetUser(ctx context.Context, username string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) error
	CreateUser(ctx context.Context, user *models.User) error
}

// PasswordAuthenticator implements password-based authentication using PBKDF2.
type PasswordAuthenticator struct {
	storage        UserStorage
	params         Params
	minPasswordLen int

	// dummyHash is verified when the username is unknown or the stored hash
	// is unreadable, so every rejected login does the same amount of work.
	dummyHash string
}

// Option configures a PasswordAuthenticator.
type Option func(*PasswordAuthenticator)

// WithParams sets the parameters used for newly derived hashes.
func WithParams(p Params) Option {
	return func(a *PasswordAuthenticator) { a.params = p }
}

// WithMinPasswordLength sets the minimum accepted length for new passwords.
func WithMinPasswordLength(n int) Option {
	return func(a *PasswordAuthenticator) { a.minPasswordLen = n }
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage, opts ...Option) (*PasswordAuthenticator, error) {
	a := &PasswordAuthenticator{
		storage:        storage,
		params:         DefaultParams(),
		minPasswordLen: DefaultMinPasswordLength,
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.params.Validate(); err != nil {
		return nil, err
	}

	dummy, err := HashPassword(nil, a.params)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	a.dummyHash = dummy

	return a, nil
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential []byte) error {
	if len(credential) == 0 || len(credential) < a.minPasswordLen {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, a.minPasswordLen)
	}
	return nil
}

// FindUser looks a user up by username without checking any credential.
func (a *PasswordAuthenticator) FindUser(ctx context.Context, username string) (*models.User, error) {
	return a.storage.GetUser(ctx, username)
}

// Authenticate verifies the username and password, returning the user if valid.
// Unknown users and wrong passwords both yield ErrInvalidCredentials; any other
// storage error is returned wrapped.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username string, credential []byte) (*models.User, error) {
	user, err := a.storage.GetUser(ctx, username)
	if err != nil {
		if !errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		_ = CheckPassword(a.dummyHash, credential)
		return nil, ErrInvalidCredentials
	}

	if err := CheckPassword(user.PasswordHash, credential); err != nil {
		if errors.Is(err, ErrMalformedHash) {
			slog.Warn("stored password hash is unreadable", "username", username, "error", err)
			_ = CheckPassword(a.dummyHash, credential)
		}
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// SetCredential hashes the password with a fresh salt and stores it.
// Returns storage.ErrUserNotFound if username does not exist.
func (a *PasswordAuthenticator) SetCredential(ctx context.Context, username string, credential []byte) error {
	hash, err := HashPassword(credential, a.params)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.storage.UpdatePasswordHash(ctx, username, hash); err != nil {
		return err
	}

	return nil
}

// Register provisions a new user with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, username string, credential []byte) (*models.User, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	// Check if username already exists
	if _, err := a.storage.GetUser(ctx, username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, err
	}

	hash, err := HashPassword(credential, a.params)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: hash}
	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Ensure PasswordAuthenticator implements Authenticator
var _ Authenticator = (*PasswordAuthenticator)(nil)
