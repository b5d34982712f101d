// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/contactbook/internal/models"
)

var (
	ErrPersonNotFound    = errors.New("person not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidSortField  = errors.New("invalid sort field")
	ErrInvalidPhoneLabel = errors.New("invalid phone label")
)

// PersonStore defines the person repository operations.
type PersonStore interface {
	// AddPerson inserts the person and all of its phone numbers atomically and
	// returns the id assigned by the store. person.ID is set only after commit.
	AddPerson(ctx context.Context, person *models.Person) (int64, error)

	// DeletePerson removes the person and its phone numbers.
	// Returns ErrPersonNotFound if no person has that id.
	DeletePerson(ctx context.Context, personID int64) error

	// ListPeople returns every person with their phone numbers, ordered by field.
	// Returns ErrInvalidSortField without querying if field is not allowed.
	ListPeople(ctx context.Context, field SortField) ([]models.Person, error)

	// ListPersonIDs returns the ids of all stored people in storage order.
	ListPersonIDs(ctx context.Context) ([]int64, error)
}

// UserStore defines access to the operator accounts.
type UserStore interface {
	// GetUser returns ErrUserNotFound if username does not exist.
	GetUser(ctx context.Context, username string) (*models.User, error)

	// UpdatePasswordHash returns ErrUserNotFound if username does not exist.
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) error

	CreateUser(ctx context.Context, user *models.User) error
}

// Store is the full storage backend.
// This abstraction allows swapping storage backends without changing the service layer.
type Store interface {
	PersonStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
