package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/awnumar/memguard"

	"github.com/mmynk/contactbook/internal/auth"
	"github.com/mmynk/contactbook/internal/middleware"
	"github.com/mmynk/contactbook/internal/models"
	"github.com/mmynk/contactbook/internal/service"
	"github.com/mmynk/contactbook/internal/storage"
	"github.com/mmynk/contactbook/internal/ui"
)

const (
	menuList     = "list"
	menuAdd      = "add"
	menuDelete   = "delete"
	menuPassword = "password"
	menuQuit     = "quit"
)

var errQuit = errors.New("quit")

// App is the interactive contact book: login followed by the main menu loop.
type App struct {
	contacts *service.ContactService
	auth     *service.AuthService
	prompt   ui.Prompter
	out      io.Writer
}

func NewApp(contacts *service.ContactService, authSvc *service.AuthService, prompt ui.Prompter, out io.Writer) *App {
	return &App{contacts: contacts, auth: authSvc, prompt: prompt, out: out}
}

// Login asks for credentials and returns the operator's session.
func (a *App) Login(ctx context.Context) (*auth.Session, error) {
	username, err := a.prompt.Input("Username", nil)
	if err != nil {
		return nil, err
	}
	password, err := a.prompt.Password("Password")
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(password)
	return a.auth.Login(ctx, username, password)
}

type menuEntry struct {
	label  string
	value  string
	action middleware.Action
}

func (a *App) menu() []menuEntry {
	wrap := func(name string, action middleware.Action) middleware.Action {
		return middleware.Chain(action,
			func(next middleware.Action) middleware.Action { return middleware.Logging(name, next) },
			middleware.RequireSession,
		)
	}

	return []menuEntry{
		{"List people", menuList, wrap("list_people", a.listPeople)},
		{"Add person", menuAdd, wrap("add_person", a.addPerson)},
		{"Delete person", menuDelete, wrap("delete_person", a.deletePerson)},
		{"Change password", menuPassword, wrap("change_password", a.changePassword)},
		{"Quit", menuQuit, func(context.Context, *auth.Session) error { return errQuit }},
	}
}

// Run shows the main menu until the operator quits. A failed action is reported
// and the menu is shown again.
func (a *App) Run(ctx context.Context, session *auth.Session) error {
	entries := a.menu()
	options := make([]ui.Option, 0, len(entries))
	actions := make(map[string]middleware.Action, len(entries))
	for _, e := range entries {
		options = append(options, ui.Option{Label: e.label, Value: e.value})
		actions[e.value] = e.action
	}

	for {
		choice, err := a.prompt.Select("Main Menu", options)
		if errors.Is(err, ui.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		action, ok := actions[choice]
		if !ok {
			fmt.Fprintf(a.out, "Unknown option %q\n", choice)
			continue
		}

		err = action(ctx, session)
		switch {
		case err == nil:
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, ui.ErrAborted):
			fmt.Fprintln(a.out, "Cancelled.")
		default:
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}
}

func (a *App) listPeople(ctx context.Context, _ *auth.Session) error {
	fields := storage.SortFields()
	options := make([]ui.Option, 0, len(fields))
	for _, f := range fields {
		options = append(options, ui.Option{Label: f.Heading(), Value: string(f)})
	}

	choice, err := a.prompt.Select("Sort by...", options)
	if err != nil {
		return err
	}
	field, err := storage.ParseSortField(choice)
	if err != nil {
		return err
	}

	people, err := a.contacts.ListPeople(ctx, field)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(people))
	for _, p := range people {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.FirstName,
			p.LastName,
			p.Birthday,
			p.Email,
			formatPhones(p.PhoneNumbers),
			formatAddress(p.Address),
		})
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, ui.Heading("People List"))
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, ui.Table(
		[]string{"ID", "First Name", "Last Name", "Birthday", "Email", "Phone", "Address"},
		rows,
	))
	return nil
}

func (a *App) addPerson(ctx context.Context, _ *auth.Session) error {
	type field struct {
		title    string
		target   *string
		validate func(string) error
	}

	var p models.Person
	fields := []field{
		{"First Name", &p.FirstName, ui.Required("First name is required")},
		{"Last Name", &p.LastName, ui.Required("Last name is required")},
		{"Birthday (yyyy-mm-dd)", &p.Birthday, ui.Matches(ui.BirthdayPattern, "Use the form yyyy-mm-dd, or leave blank")},
		{"Email", &p.Email, ui.Matches(ui.EmailPattern, "That does not look like an email address")},
		{"Address line 1", &p.Address.Line1, nil},
		{"Address line 2", &p.Address.Line2, nil},
		{"City", &p.Address.City, nil},
		{"Province/State", &p.Address.Prov, nil},
		{"Country", &p.Address.Country, nil},
		{"Post code", &p.Address.Postcode, nil},
	}

	fmt.Fprintln(a.out, ui.Heading("Add Person"))
	for _, f := range fields {
		v, err := a.prompt.Input(f.title, f.validate)
		if err != nil {
			return err
		}
		*f.target = v
	}

	labelOptions := make([]ui.Option, 0, len(models.PhoneLabels()))
	for _, l := range models.PhoneLabels() {
		labelOptions = append(labelOptions, ui.Option{Label: labelTitle(l), Value: string(l)})
	}

	p.PhoneNumbers = []models.PhoneNumber{}
	for {
		more, err := a.prompt.Confirm("Add a phone number?")
		if err != nil {
			return err
		}
		if !more {
			break
		}

		label, err := a.prompt.Select("What kind of phone number?", labelOptions)
		if err != nil {
			return err
		}
		number, err := a.prompt.Input("Phone number (###-###-####)",
			ui.Matches(ui.PhonePattern, "Use the form ###-###-####"))
		if err != nil {
			return err
		}
		p.PhoneNumbers = append(p.PhoneNumbers, models.PhoneNumber{Number: number, Label: models.PhoneLabel(label)})
	}

	id, err := a.contacts.AddPerson(ctx, &p)
	if err != nil {
		return fmt.Errorf("adding person: %w", err)
	}

	fmt.Fprintf(a.out, "Added %s %s with ID %d.\n", p.FirstName, p.LastName, id)
	return nil
}

func (a *App) deletePerson(ctx context.Context, _ *auth.Session) error {
	ids, err := a.contacts.PersonIDs(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "There are no people to delete.")
		return nil
	}

	allowed := make([]string, 0, len(ids))
	for _, id := range ids {
		allowed = append(allowed, strconv.FormatInt(id, 10))
	}

	answer, err := a.prompt.Input("ID of person to delete", ui.OneOf(allowed, "There is no person with that ID"))
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(answer), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid person ID %q", answer)
	}

	if err := a.contacts.DeletePerson(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted person %d.\n", id)
	return nil
}

func (a *App) changePassword(ctx context.Context, session *auth.Session) error {
	password, err := a.prompt.Password("New password")
	if err != nil {
		return err
	}
	defer memguard.WipeBytes(password)
	confirm, err := a.prompt.Password("Confirm new password")
	if err != nil {
		return err
	}
	defer memguard.WipeBytes(confirm)
	if !bytes.Equal(password, confirm) {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return nil
	}

	if err := a.auth.ChangePassword(ctx, session, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Password updated successfully.")
	return nil
}
