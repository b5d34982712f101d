// Package ui is the terminal front end: prompts, validators and table output.
package ui

import (
	"errors"
	"io"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the operator cancels a prompt (Ctrl+C / Esc).
var ErrAborted = errors.New("prompt aborted")

// Option is one choice of a Select prompt.
type Option struct {
	Label string
	Value string
}

// Prompter asks the operator for input. Implementations re-prompt until the
// answer passes validation.
type Prompter interface {
	Input(title string, validate func(string) error) (string, error)
	// Password returns the answer as bytes the caller wipes after use.
	Password(title string) ([]byte, error)
	Select(title string, options []Option) (string, error)
	Confirm(title string) (bool, error)
}

// HuhPrompter implements Prompter with charmbracelet/huh forms.
type HuhPrompter struct {
	accessible bool
	in         io.Reader
	out        io.Writer
}

// NewHuhPrompter returns a prompter reading from in and drawing to out.
// Accessible mode replaces the TUI widgets with plain line prompts.
func NewHuhPrompter(in io.Reader, out io.Writer, accessible bool) *HuhPrompter {
	return &HuhPrompter{accessible: accessible, in: in, out: out}
}

func (p *HuhPrompter) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(p.accessible).
		WithShowHelp(false)
	if p.in != nil {
		form = form.WithInput(p.in)
	}
	if p.out != nil {
		form = form.WithOutput(p.out)
	}

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

func (p *HuhPrompter) Input(title string, validate func(string) error) (string, error) {
	var value string
	field := huh.NewInput().Title(title).Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}
	if err := p.run(field); err != nil {
		return "", err
	}
	return value, nil
}

func (p *HuhPrompter) Password(title string) ([]byte, error) {
	var value string
	field := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value)
	if err := p.run(field); err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (p *HuhPrompter) Select(title string, options []Option) (string, error) {
	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Label, o.Value))
	}

	var value string
	field := huh.NewSelect[string]().
		Title(title).
		Options(opts...).
		Value(&value)
	if err := p.run(field); err != nil {
		return "", err
	}
	return value, nil
}

func (p *HuhPrompter) Confirm(title string) (bool, error) {
	var value bool
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)
	if err := p.run(field); err != nil {
		return false, err
	}
	return value, nil
}
