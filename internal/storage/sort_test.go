package storage

import (
	"errors"
	"testing"
)

func TestParseSortField(t *testing.T) {
	for _, f := range SortFields() {
		got, err := ParseSortField(string(f))
		if err != nil {
			t.Errorf("ParseSortField(%q) unexpected error: %v", f, err)
		}
		if got != f {
			t.Errorf("ParseSortField(%q) = %q", f, got)
		}
		if f.Heading() == "" {
			t.Errorf("missing heading for %q", f)
		}
	}

	invalid := []string{"", "phone", "person_id; DROP TABLE person", "LAST_NAME", "p.last_name"}
	for _, s := range invalid {
		if _, err := ParseSortField(s); !errors.Is(err, ErrInvalidSortField) {
			t.Errorf("ParseSortField(%q) error = %v, want ErrInvalidSortField", s, err)
		}
	}
}
