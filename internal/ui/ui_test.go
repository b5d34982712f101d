package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatterns(t *testing.T) {
	tests := []struct {
		name    string
		check   func(string) error
		valid   []string
		invalid []string
	}{
		{
			name:    "birthday",
			check:   Matches(BirthdayPattern, "bad date"),
			valid:   []string{"1815-12-10", ""},
			invalid: []string{"1815-1-10", "10/12/1815", "tomorrow"},
		},
		{
			name:    "email",
			check:   Matches(EmailPattern, "bad email"),
			valid:   []string{"ada@example.com", "@", ""},
			invalid: []string{"ada.example.com"},
		},
		{
			name:    "phone",
			check:   Matches(PhonePattern, "bad phone"),
			valid:   []string{"555-123-4567"},
			invalid: []string{"", "5551234567", "555-123-456", "555-123-45678"},
		},
		{
			name:    "required",
			check:   Required("required"),
			valid:   []string{"Ada"},
			invalid: []string{"", "   "},
		},
		{
			name:    "one of",
			check:   OneOf([]string{"1", "4"}, "There is no person with that ID"),
			valid:   []string{"1", "4", " 4 "},
			invalid: []string{"", "2", "14"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range tt.valid {
				require.NoError(t, tt.check(v), "%q should be accepted", v)
			}
			for _, v := range tt.invalid {
				require.Error(t, tt.check(v), "%q should be rejected", v)
			}
		})
	}
}

func TestOneOfMessage(t *testing.T) {
	err := OneOf([]string{"1"}, "There is no person with that ID")("9")
	require.EqualError(t, err, "There is no person with that ID")
}

func TestTable(t *testing.T) {
	out := Table(
		[]string{"ID", "First Name", "Phone"},
		[][]string{
			{"1", "Ada", "(C) 555-123-4567\n(W) 555-987-6543"},
			{"2", "Grace", ""},
		},
	)

	for _, want := range []string{"ID", "First Name", "Phone", "Ada", "Grace", "(C) 555-123-4567", "(W) 555-987-6543"} {
		require.Contains(t, out, want)
	}
	require.Less(t, strings.Index(out, "Ada"), strings.Index(out, "Grace"))
}

func TestHeading(t *testing.T) {
	require.Contains(t, Heading("People List"), "People List")
}
