package cli

import (
	"context"
	"fmt"

	"useradmin-cli/internal/client/models"
	"useradmin-cli/internal/client/validation"
)

// Create prompts for a new user's fields, validates them and submits.
func (a *App) Create(ctx context.Context) error {
	form, err := a.promptForm(validation.Form{}, false)
	if err != nil {
		return err
	}
	active, err := GetYesNo(a.reader, "Active", true, a.out)
	if err != nil {
		return err
	}

	if errs := validation.Validate(form, validation.ModeCreate); len(errs) > 0 {
		printFieldErrors(a.out, errs)
		return nil
	}

	user, err := a.users.Create(ctx, models.CreateUser{
		Email:    form.Email,
		Username: form.Username,
		FullName: form.FullName,
		Password: form.Password,
		IsActive: active,
	})
	if err != nil {
		a.banner(a.users.Err())
		return err
	}

	fmt.Fprintf(a.out, "Created user %d (%s)\n", user.ID, user.Username)
	return nil
}

// Edit loads the current record, prompts with its values as defaults and
// submits a partial update. A blank password keeps the stored credential;
// the identifier and creation timestamp are never part of the payload.
func (a *App) Edit(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: edit <id>")
		return nil
	}

	current, err := a.userAPI.GetUser(ctx, id)
	if err != nil {
		a.banner(fmt.Sprintf("Failed to load user %d.", id))
		return err
	}

	form, err := a.promptForm(validation.Form{
		Email:    current.Email,
		Username: current.Username,
		FullName: current.FullName,
	}, true)
	if err != nil {
		return err
	}
	active, err := GetYesNo(a.reader, "Active", current.IsActive, a.out)
	if err != nil {
		return err
	}

	if errs := validation.Validate(form, validation.ModeEdit); len(errs) > 0 {
		printFieldErrors(a.out, errs)
		return nil
	}

	update := models.UpdateUser{
		Email:    &form.Email,
		Username: &form.Username,
		FullName: &form.FullName,
		IsActive: &active,
	}
	if form.Password != "" {
		update.Password = &form.Password
	}

	user, err := a.users.Update(ctx, id, update)
	if err != nil {
		a.banner(a.users.Err())
		return err
	}

	fmt.Fprintf(a.out, "Updated user %d (%s)\n", user.ID, user.Username)
	return nil
}

// Delete runs the two-phase flow: request, confirm interactively, perform.
func (a *App) Delete(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return nil
	}

	a.users.RequestDelete(id)
	confirmed, err := GetYesNo(a.reader, fmt.Sprintf("Delete user %d?", id), false, a.out)
	if err != nil {
		a.users.CancelDelete()
		return err
	}
	if !confirmed {
		a.users.CancelDelete()
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.users.ConfirmDelete(ctx); err != nil {
		a.banner(a.users.Err())
		return err
	}

	fmt.Fprintf(a.out, "Deleted user %d\n", id)
	return nil
}
