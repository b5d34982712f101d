package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/contactbook/internal/auth"
	"github.com/mmynk/contactbook/internal/storage"
	"github.com/mmynk/contactbook/internal/ui"
)

// Logging returns an Action that logs every invocation of next.
// It logs the action name, username, session ID, duration, and any error.
func Logging(name string, next Action) Action {
	return func(ctx context.Context, session *auth.Session) error {
		start := time.Now()
		username, sessionID := "", ""
		if session != nil {
			username, sessionID = session.Username, session.ID
		}

		err := next(ctx, session)

		duration := time.Since(start).Milliseconds()
		switch {
		case err == nil:
			slog.Info("Action ok",
				"action", name,
				"username", username,
				"session_id", sessionID,
				"duration_ms", duration,
			)
		case errors.Is(err, ui.ErrAborted), errors.Is(err, storage.ErrPersonNotFound):
			slog.Warn("Action stopped",
				"action", name,
				"error", err,
				"username", username,
				"session_id", sessionID,
				"duration_ms", duration,
			)
		default:
			slog.Error("Action error",
				"action", name,
				"error", err,
				"username", username,
				"session_id", sessionID,
				"duration_ms", duration,
			)
		}

		return err
	}
}
