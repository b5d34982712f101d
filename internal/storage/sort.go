package storage

import "fmt"

// SortField is a column people can be listed by.
type SortField string

const (
	SortByID        SortField = "person_id"
	SortByFirstName SortField = "first_name"
	SortByLastName  SortField = "last_name"
	SortByBirthday  SortField = "birthday"
	SortByEmail     SortField = "email"
)

var sortHeadings = map[SortField]string{
	SortByID:        "ID",
	SortByFirstName: "First Name",
	SortByLastName:  "Last Name",
	SortByBirthday:  "Birthday",
	SortByEmail:     "Email",
}

// SortFields returns the allowed sort fields in menu order.
func SortFields() []SortField {
	return []SortField{SortByID, SortByFirstName, SortByLastName, SortByBirthday, SortByEmail}
}

// Valid reports whether f is on the allow-list.
func (f SortField) Valid() bool {
	_, ok := sortHeadings[f]
	return ok
}

// Heading is the column title shown for f.
func (f SortField) Heading() string {
	return sortHeadings[f]
}

// ParseSortField converts s into a SortField, rejecting anything not on the allow-list.
func ParseSortField(s string) (SortField, error) {
	f := SortField(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortField, s)
	}
	return f, nil
}
