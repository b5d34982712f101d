package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/contactbook/internal/grouping"
	"github.com/mmynk/contactbook/internal/models"
	"github.com/mmynk/contactbook/internal/storage"
)

const selectPeopleWithPhones = `
	SELECT p.person_id, p.first_name, p.last_name, p.birthday, p.email,
	       p.address_line1, p.address_line2, p.city, p.prov, p.country, p.postcode,
	       ph.phone_id, ph.number, ph.label
	FROM person p
	LEFT JOIN phone ph ON p.person_id = ph.person_id`

// orderClauses is the only source of ORDER BY text. Caller input selects an
// entry, it is never written into the query.
var orderClauses = map[storage.SortField]string{
	storage.SortByID:        " ORDER BY p.person_id, ph.phone_id",
	storage.SortByFirstName: " ORDER BY p.first_name, p.person_id, ph.phone_id",
	storage.SortByLastName:  " ORDER BY p.last_name, p.person_id, ph.phone_id",
	storage.SortByBirthday:  " ORDER BY p.birthday, p.person_id, ph.phone_id",
	storage.SortByEmail:     " ORDER BY p.email, p.person_id, ph.phone_id",
}

// AddPerson inserts the person and its phone numbers in a single transaction.
func (s *SQLiteStore) AddPerson(ctx context.Context, person *models.Person) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	a := person.Address
	result, err := tx.ExecContext(ctx,
		`INSERT INTO person (first_name, last_name, birthday, email,
		                     address_line1, address_line2, city, prov, country, postcode)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		person.FirstName, person.LastName, person.Birthday, person.Email,
		a.Line1, a.Line2, a.City, a.Prov, a.Country, a.Postcode,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert person: %w", err)
	}

	personID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read person id: %w", err)
	}

	for _, phone := range person.PhoneNumbers {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO phone (person_id, number, label) VALUES (?, ?, ?)",
			personID, phone.Number, string(phone.Label),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert phone number %s: %w", phone.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	person.ID = personID
	return personID, nil
}

// DeletePerson removes a person and their phone numbers.
// Phone rows are deleted explicitly so databases created without ON DELETE CASCADE
// behave the same as new ones.
func (s *SQLiteStore) DeletePerson(ctx context.Context, personID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM phone WHERE person_id = ?", personID); err != nil {
		return fmt.Errorf("failed to delete phone numbers: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM person WHERE person_id = ?", personID)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", storage.ErrPersonNotFound, personID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// personPhoneRow is one row of the person/phone outer join.
type personPhoneRow struct {
	person  models.Person
	phoneID sql.NullInt64
	number  sql.NullString
	label   sql.NullString
}

// ListPeople retrieves all people with their phone numbers, ordered by field.
func (s *SQLiteStore) ListPeople(ctx context.Context, field storage.SortField) ([]models.Person, error) {
	order, ok := orderClauses[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalidSortField, string(field))
	}

	rows, err := s.db.QueryContext(ctx, selectPeopleWithPhones+order)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var flat []personPhoneRow
	for rows.Next() {
		row, err := scanPersonPhone(rows)
		if err != nil {
			return nil, err
		}
		flat = append(flat, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	groups := grouping.ByKey(flat,
		func(r personPhoneRow) int64 { return r.person.ID },
		func(r personPhoneRow) models.Person { return r.person },
		phoneFromRow,
	)

	people := make([]models.Person, 0, len(groups))
	for _, g := range groups {
		p := g.Parent
		p.PhoneNumbers = g.Children
		people = append(people, p)
	}

	return people, nil
}

// phoneFromRow reports the phone carried by a join row. A row whose phone side
// is NULL belongs to a person without phone numbers.
func phoneFromRow(r personPhoneRow) (models.PhoneNumber, bool) {
	if !r.phoneID.Valid {
		return models.PhoneNumber{}, false
	}
	return models.PhoneNumber{
		Number: r.number.String,
		Label:  models.PhoneLabel(r.label.String),
	}, true
}

func scanPersonPhone(rows *sql.Rows) (personPhoneRow, error) {
	var (
		row                                   personPhoneRow
		birthday, email                       sql.NullString
		line1, line2, city, prov, country, pc sql.NullString
	)

	err := rows.Scan(
		&row.person.ID, &row.person.FirstName, &row.person.LastName, &birthday, &email,
		&line1, &line2, &city, &prov, &country, &pc,
		&row.phoneID, &row.number, &row.label,
	)
	if err != nil {
		return personPhoneRow{}, fmt.Errorf("failed to scan person: %w", err)
	}

	row.person.Birthday = birthday.String
	row.person.Email = email.String
	row.person.Address = models.Address{
		Line1:    line1.String,
		Line2:    line2.String,
		City:     city.String,
		Prov:     prov.String,
		Country:  country.String,
		Postcode: pc.String,
	}

	return row, nil
}

// ListPersonIDs returns the ids of every stored person.
func (s *SQLiteStore) ListPersonIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT person_id FROM person")
	if err != nil {
		return nil, fmt.Errorf("failed to list person ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan person id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate person ids: %w", err)
	}

	return ids, nil
}
