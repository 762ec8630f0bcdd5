package cli

import (
	"context"
	"fmt"
)

// Login prompts for credentials and runs the session login flow.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		a.banner(a.session.Err())
		return err
	}

	if user, ok := a.session.CurrentUser(); ok {
		fmt.Fprintf(a.out, "Logged in as %s\n", user.Username)
	}
	return nil
}

// Logout clears the session and the persisted credential.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the authenticated user's profile.
func (a *App) WhoAmI(ctx context.Context) error {
	user, ok := a.session.CurrentUser()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	printUserDetail(a.out, user)
	return nil
}
