package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mmynk/contactbook/internal/auth"
	"github.com/mmynk/contactbook/internal/config"
	"github.com/mmynk/contactbook/internal/service"
	"github.com/mmynk/contactbook/internal/storage/sqlite"
	"github.com/mmynk/contactbook/internal/ui"
)

// runtime is everything a command needs once configuration is loaded.
type runtime struct {
	store    *sqlite.SQLiteStore
	contacts *service.ContactService
	auth     *service.AuthService
	prompt   ui.Prompter
}

func openRuntime(cfg config.Config, in io.Reader, out io.Writer) (*runtime, error) {
	store, err := sqlite.New(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	slog.Info("Storage initialized", "database", cfg.Storage.Path)

	authenticator, err := auth.NewPasswordAuthenticator(store,
		auth.WithParams(cfg.Auth.HashParams()),
		auth.WithMinPasswordLength(cfg.Auth.MinPasswordLength),
	)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("configure authentication: %w", err)
	}

	logger := slog.Default()
	return &runtime{
		store:    store,
		contacts: service.NewContactService(store, logger),
		auth:     service.NewAuthService(authenticator, logger),
		prompt:   ui.NewHuhPrompter(in, out, cfg.UI.Accessible),
	}, nil
}

func (r *runtime) Close() error {
	return r.store.Close()
}
