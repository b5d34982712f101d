// Package middleware wraps menu actions with cross-cutting behavior.
package middleware

import (
	"context"

	"github.com/mmynk/contactbook/internal/auth"
	"github.com/mmynk/contactbook/internal/service"
)

// Action is one menu operation performed on behalf of the session's operator.
type Action func(ctx context.Context, session *auth.Session) error

// RequireSession rejects the call unless an operator is logged in.
func RequireSession(next Action) Action {
	return func(ctx context.Context, session *auth.Session) error {
		if session == nil || session.Username == "" {
			return service.ErrNoSession
		}
		return next(ctx, session)
	}
}

// Chain applies wrappers so the first one is outermost.
func Chain(action Action, wrappers ...func(Action) Action) Action {
	for i := len(wrappers) - 1; i >= 0; i-- {
		action = wrappers[i](action)
	}
	return action
}
