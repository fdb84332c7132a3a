package cli

import (
	"context"
	"fmt"
)

// register prompts for credentials and creates an account. Registration
// does not log the new user in; that keeps the login path the only place
// where the encryption key is ever derived.
func (a *App) register(ctx context.Context) error {
	username, err := promptLine(a.in, a.out, "Username")
	if err != nil {
		return err
	}

	password, err := promptPassword(a.in, a.out, "Password")
	if err != nil {
		return err
	}

	user, err := a.services.Auth.Register(ctx, username, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account %q created. Use 'login' to start working.\n", user.Username)
	return nil
}

// login prompts for credentials and unlocks the session.
func (a *App) login(ctx context.Context) error {
	username, err := promptLine(a.in, a.out, "Username")
	if err != nil {
		return err
	}

	password, err := promptPassword(a.in, a.out, "Password")
	if err != nil {
		return err
	}

	if err := a.services.Auth.Login(ctx, username, password); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %q.\n", username)
	return nil
}

func (a *App) logout(_ context.Context) error {
	a.services.Auth.Logout()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) whoami(_ context.Context) error {
	user, err := a.services.Auth.CurrentUser()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (id %d)\n", user.Username, user.UserID)
	return nil
}
