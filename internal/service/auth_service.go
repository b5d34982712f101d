package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/contactbook/internal/auth"
)

// AuthService logs the operator in and manages their password.
type AuthService struct {
	authenticator auth.Authenticator
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		authenticator: authenticator,
		logger:        logger,
	}
}

// Login verifies the credentials and starts a session.
// Rejected credentials are auth.ErrInvalidCredentials; storage failures are
// returned as they are so the operator sees them.
func (s *AuthService) Login(ctx context.Context, username string, password []byte) (*auth.Session, error) {
	s.logger.Info("Login request", "username", username)

	if username == "" || len(password) == 0 {
		return nil, auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Warn("Login failed", "username", username)
		} else {
			s.logger.Error("Login failed", "username", username, "error", err)
		}
		return nil, err
	}

	session := auth.NewSession(user)
	s.logger.Info("User logged in successfully", "username", user.Username, "session_id", session.ID)
	return session, nil
}

// ChangePassword replaces the password of the session's user.
func (s *AuthService) ChangePassword(ctx context.Context, session *auth.Session, newPassword []byte) error {
	if session == nil {
		return ErrNoSession
	}
	s.logger.Info("ChangePassword request", "username", session.Username, "session_id", session.ID)

	if err := s.authenticator.ValidateCredential(newPassword); err != nil {
		return err
	}

	if err := s.authenticator.SetCredential(ctx, session.Username, newPassword); err != nil {
		s.logger.Error("ChangePassword failed", "username", session.Username, "error", err)
		return fmt.Errorf("failed to change password: %w", err)
	}

	s.logger.Info("Password changed", "username", session.Username)
	return nil
}

// Register provisions a new operator account.
func (s *AuthService) Register(ctx context.Context, username string, password []byte) error {
	s.logger.Info("Register request", "username", username)

	if username == "" {
		return errors.New("username is required")
	}

	if _, err := s.authenticator.Register(ctx, username, password); err != nil {
		s.logger.Error("Registration failed", "username", username, "error", err)
		return err
	}

	s.logger.Info("User registered successfully", "username", username)
	return nil
}
