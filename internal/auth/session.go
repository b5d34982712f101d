package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/contactbook/internal/models"
)

// Session identifies the logged-in operator. It is created once at login and
// passed explicitly to every operation that acts on behalf of the operator.
type Session struct {
	ID        string
	Username  string
	StartedAt time.Time
}

// NewSession starts a session for an authenticated user.
func NewSession(user *models.User) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Username:  user.Username,
		StartedAt: time.Now(),
	}
}
