package cli

import (
	"fmt"
	"strings"

	"github.com/mmynk/contactbook/internal/models"
)

// formatPhones puts each number on its own line, prefixed with the first
// letter of its label: (C), (H), (W) or (O).
func formatPhones(numbers []models.PhoneNumber) string {
	lines := make([]string, 0, len(numbers))
	for _, ph := range numbers {
		prefix := "?"
		if ph.Label != "" {
			prefix = string(ph.Label)[:1]
		}
		lines = append(lines, fmt.Sprintf("(%s) %s", prefix, ph.Number))
	}
	return strings.Join(lines, "\n")
}

func formatAddress(a models.Address) string {
	lines := []string{a.Line1}
	if a.Line2 != "" {
		lines = append(lines, a.Line2)
	}
	lines = append(lines, a.City+", "+a.Prov+", "+a.Country, a.Postcode)
	return strings.Join(lines, "\n")
}

func labelTitle(l models.PhoneLabel) string {
	s := strings.ToLower(string(l))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
