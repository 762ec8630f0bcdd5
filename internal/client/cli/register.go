package cli

import (
	"context"
	"fmt"
	"io"

	"useradmin-cli/internal/client/models"
	"useradmin-cli/internal/client/validation"
)

// Register prompts for account details, validates them client-side and
// creates the account. A successful registration hands off to the login
// flow instead of authenticating directly.
func (a *App) Register(ctx context.Context) error {
	form, err := a.promptForm(validation.Form{}, false)
	if err != nil {
		return err
	}

	if errs := validation.Validate(form, validation.ModeCreate); len(errs) > 0 {
		printFieldErrors(a.out, errs)
		return nil
	}

	_, err = a.session.Register(ctx, models.CreateUser{
		Email:    form.Email,
		Username: form.Username,
		FullName: form.FullName,
		Password: form.Password,
		IsActive: true,
	})
	if err != nil {
		a.banner(a.session.Err())
		return err
	}

	fmt.Fprintln(a.out, "Registration successful. Please log in.")
	return nil
}

// promptForm collects the shared form fields. With defaults set (edit mode),
// blank input keeps the current value and a blank password means "keep the
// stored one"; the password prompt says so.
func (a *App) promptForm(defaults validation.Form, edit bool) (validation.Form, error) {
	var form validation.Form
	var err error

	form.Email, err = GetTextWithDefault(a.reader, "Email", defaults.Email, a.out)
	if err != nil {
		return form, err
	}
	form.Username, err = GetTextWithDefault(a.reader, "Username", defaults.Username, a.out)
	if err != nil {
		return form, err
	}
	form.FullName, err = GetTextWithDefault(a.reader, "Full name", defaults.FullName, a.out)
	if err != nil {
		return form, err
	}

	passwordPrompt := "Password"
	if edit {
		passwordPrompt = "New password (leave blank to keep current)"
	}
	form.Password, err = GetPassword(passwordPrompt, a.out)
	if err != nil {
		return form, err
	}
	if form.Password != "" || !edit {
		form.ConfirmPassword, err = GetPassword("Confirm password", a.out)
		if err != nil {
			return form, err
		}
	}

	return form, nil
}

func printFieldErrors(w io.Writer, errs map[string]string) {
	// stable field order for readability
	for _, field := range []string{"email", "username", "full_name", "password", "confirm_password"} {
		if msg, ok := errs[field]; ok {
			fmt.Fprintf(w, "  %s: %s\n", field, msg)
		}
	}
}
