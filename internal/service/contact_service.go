// Package service holds the operations the menu invokes, layered over storage.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/contactbook/internal/models"
	"github.com/mmynk/contactbook/internal/storage"
)

// ErrNoSession is returned by operations that require a logged-in operator.
var ErrNoSession = errors.New("not logged in")

// ContactService manages people and their phone numbers.
type ContactService struct {
	store  storage.PersonStore
	logger *slog.Logger
}

// NewContactService creates a new ContactService with the given storage backend.
func NewContactService(store storage.PersonStore, logger *slog.Logger) *ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactService{store: store, logger: logger}
}

// ListPeople returns every person with their phone numbers, ordered by field.
func (s *ContactService) ListPeople(ctx context.Context, field storage.SortField) ([]models.Person, error) {
	s.logger.Debug("ListPeople request received", "sort", string(field))

	if !field.Valid() {
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalidSortField, string(field))
	}

	people, err := s.store.ListPeople(ctx, field)
	if err != nil {
		s.logger.Error("ListPeople failed", "error", err)
		return nil, err
	}

	s.logger.Debug("ListPeople successful", "count", len(people))
	return people, nil
}

// AddPerson stores a new person with their phone numbers and returns the new id.
func (s *ContactService) AddPerson(ctx context.Context, person *models.Person) (int64, error) {
	s.logger.Info("AddPerson request received",
		"last_name", person.LastName,
		"phone_count", len(person.PhoneNumbers),
	)

	for _, ph := range person.PhoneNumbers {
		if !ph.Label.Valid() {
			s.logger.Warn("AddPerson rejected", "label", string(ph.Label))
			return 0, fmt.Errorf("%w: %q", storage.ErrInvalidPhoneLabel, string(ph.Label))
		}
	}

	id, err := s.store.AddPerson(ctx, person)
	if err != nil {
		s.logger.Error("Error adding person", "error", err)
		return 0, err
	}

	s.logger.Info("Person added", "person_id", id)
	return id, nil
}

// DeletePerson removes a person. Returns storage.ErrPersonNotFound if the id is unknown.
func (s *ContactService) DeletePerson(ctx context.Context, personID int64) error {
	s.logger.Info("DeletePerson request received", "person_id", personID)

	if err := s.store.DeletePerson(ctx, personID); err != nil {
		if errors.Is(err, storage.ErrPersonNotFound) {
			s.logger.Warn("DeletePerson: no such person", "person_id", personID)
		} else {
			s.logger.Error("DeletePerson failed", "person_id", personID, "error", err)
		}
		return err
	}

	s.logger.Info("Person deleted", "person_id", personID)
	return nil
}

// PersonIDs returns the ids of every stored person.
func (s *ContactService) PersonIDs(ctx context.Context) ([]int64, error) {
	ids, err := s.store.ListPersonIDs(ctx)
	if err != nil {
		s.logger.Error("ListPersonIDs failed", "error", err)
		return nil, err
	}
	return ids, nil
}
