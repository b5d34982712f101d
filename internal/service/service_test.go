package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/contactbook/internal/auth"
	"github.com/mmynk/contactbook/internal/models"
	"github.com/mmynk/contactbook/internal/storage"
	"github.com/mmynk/contactbook/internal/storage/sqlite"
)

// setupServices creates both services over a fresh temp database.
func setupServices(t *testing.T) (*ContactService, *AuthService, *bytes.Buffer) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	authenticator, err := auth.NewPasswordAuthenticator(store,
		auth.WithParams(auth.Params{Algorithm: "sha256", Iterations: 1000, SaltLen: 20}),
	)
	if err != nil {
		t.Fatalf("failed to create authenticator: %v", err)
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return NewContactService(store, logger), NewAuthService(authenticator, logger), &logs
}

func lovelace() *models.Person {
	return &models.Person{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Birthday:  "1815-12-10",
		Email:     "ada@example.com",
		Address:   models.Address{Line1: "12 Square", City: "London", Prov: "LDN", Country: "UK", Postcode: "SW1"},
		PhoneNumbers: []models.PhoneNumber{
			{Number: "555-123-4567", Label: models.PhoneCell},
		},
	}
}

func TestContactServiceAddListDelete(t *testing.T) {
	contacts, _, _ := setupServices(t)
	ctx := context.Background()

	id, err := contacts.AddPerson(ctx, lovelace())
	require.NoError(t, err)

	people, err := contacts.ListPeople(ctx, storage.SortByLastName)
	require.NoError(t, err)
	require.Len(t, people, 1)
	require.Equal(t, id, people[0].ID)
	require.Equal(t, []models.PhoneNumber{{Number: "555-123-4567", Label: "CELL"}}, people[0].PhoneNumbers)

	ids, err := contacts.PersonIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{id}, ids)

	require.NoError(t, contacts.DeletePerson(ctx, id))

	err = contacts.DeletePerson(ctx, id)
	require.ErrorIs(t, err, storage.ErrPersonNotFound)

	people, err = contacts.ListPeople(ctx, storage.SortByID)
	require.NoError(t, err)
	require.Empty(t, people)
}

func TestContactServiceRejectsSortField(t *testing.T) {
	contacts, _, _ := setupServices(t)

	_, err := contacts.ListPeople(context.Background(), storage.SortField("city"))
	require.ErrorIs(t, err, storage.ErrInvalidSortField)
}

// failingPeople is a PersonStore whose writes always fail.
type failingPeople struct {
	storage.PersonStore
	err error
}

func (f failingPeople) AddPerson(context.Context, *models.Person) (int64, error) {
	return 0, f.err
}

func TestContactServiceAddFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	storeErr := errors.New("disk I/O error")
	contacts := NewContactService(failingPeople{err: storeErr}, logger)

	_, err := contacts.AddPerson(context.Background(), lovelace())
	require.ErrorIs(t, err, storeErr)
	require.Contains(t, logs.String(), "Error adding person")
}

func TestContactServiceRejectsPhoneLabel(t *testing.T) {
	contacts, _, logs := setupServices(t)

	p := lovelace()
	p.PhoneNumbers = append(p.PhoneNumbers, models.PhoneNumber{Number: "555-000-0000", Label: "PAGER"})

	_, err := contacts.AddPerson(context.Background(), p)
	require.ErrorIs(t, err, storage.ErrInvalidPhoneLabel)
	require.Contains(t, logs.String(), "AddPerson rejected")

	ids, err := contacts.PersonIDs(context.Background())
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestAuthServiceLoginAndChangePassword(t *testing.T) {
	_, authSvc, logs := setupServices(t)
	ctx := context.Background()

	require.NoError(t, authSvc.Register(ctx, "admin", []byte("first-password")))

	session, err := authSvc.Login(ctx, "admin", []byte("first-password"))
	require.NoError(t, err)
	require.Equal(t, "admin", session.Username)

	require.NoError(t, authSvc.ChangePassword(ctx, session, []byte("second-password")))

	_, err = authSvc.Login(ctx, "admin", []byte("first-password"))
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = authSvc.Login(ctx, "admin", []byte("second-password"))
	require.NoError(t, err)

	require.NotContains(t, logs.String(), "second-password")
	require.NotContains(t, logs.String(), "first-password")
}

func TestAuthServiceLoginFailures(t *testing.T) {
	_, authSvc, _ := setupServices(t)
	ctx := context.Background()
	require.NoError(t, authSvc.Register(ctx, "admin", []byte("first-password")))

	_, unknown := authSvc.Login(ctx, "ghost", []byte("first-password"))
	_, wrong := authSvc.Login(ctx, "admin", []byte("nope-nope-nope"))
	_, empty := authSvc.Login(ctx, "", []byte(""))

	for _, err := range []error{unknown, wrong, empty} {
		require.True(t, errors.Is(err, auth.ErrInvalidCredentials))
		require.Equal(t, auth.ErrInvalidCredentials.Error(), err.Error())
	}
}

func TestAuthServiceChangePasswordRules(t *testing.T) {
	_, authSvc, _ := setupServices(t)
	ctx := context.Background()

	require.ErrorIs(t, authSvc.ChangePassword(ctx, nil, []byte("whatever-long")), ErrNoSession)

	require.NoError(t, authSvc.Register(ctx, "admin", []byte("first-password")))
	session, err := authSvc.Login(ctx, "admin", []byte("first-password"))
	require.NoError(t, err)

	require.ErrorIs(t, authSvc.ChangePassword(ctx, session, []byte("short")), auth.ErrWeakPassword)

	ghost := &auth.Session{ID: "x", Username: "ghost"}
	require.ErrorIs(t, authSvc.ChangePassword(ctx, ghost, []byte("long-enough-pw")), storage.ErrUserNotFound)
}

func TestAuthServiceRegisterDuplicate(t *testing.T) {
	_, authSvc, _ := setupServices(t)
	ctx := context.Background()

	require.NoError(t, authSvc.Register(ctx, "admin", []byte("first-password")))
	require.ErrorIs(t, authSvc.Register(ctx, "admin", []byte("other-password")), auth.ErrUserExists)
	require.Error(t, authSvc.Register(ctx, "", []byte("other-password")))
}

func TestAuthServiceLoginReportsStorageFailure(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	authenticator, err := auth.NewPasswordAuthenticator(store,
		auth.WithParams(auth.Params{Algorithm: "sha256", Iterations: 1000, SaltLen: 20}),
	)
	require.NoError(t, err)
	authSvc := NewAuthService(authenticator, nil)

	ctx := context.Background()
	require.NoError(t, authSvc.Register(ctx, "admin", []byte("first-password")))
	require.NoError(t, store.Close())

	_, err = authSvc.Login(ctx, "admin", []byte("first-password"))
	require.Error(t, err)
	require.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	require.Contains(t, err.Error(), "database is closed")
}
