package ui

import (
	"errors"
	"regexp"
	"strings"
)

// Field formats accepted by the add-person prompts.
var (
	BirthdayPattern = regexp.MustCompile(`^\d\d\d\d-\d\d-\d\d$|^$`)
	// Loose on purpose: anything with an @, or nothing.
	EmailPattern = regexp.MustCompile(`.*@.*|^$`)
	PhonePattern = regexp.MustCompile(`^\d\d\d-\d\d\d-\d\d\d\d$`)
)

// Required rejects blank answers.
func Required(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

// Matches accepts answers matching re.
func Matches(re *regexp.Regexp, msg string) func(string) error {
	return func(s string) error {
		if !re.MatchString(s) {
			return errors.New(msg)
		}
		return nil
	}
}

// OneOf accepts only answers from allowed.
func OneOf(allowed []string, msg string) func(string) error {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(s string) error {
		if _, ok := set[strings.TrimSpace(s)]; !ok {
			return errors.New(msg)
		}
		return nil
	}
}
