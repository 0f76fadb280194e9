package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/storyshare/internal/client/client"
	"github.com/dmitrijs2005/storyshare/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register prompts for a name, an email and a password and creates the
// account. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Choose password (at least 8 characters)")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, name, email, password); err != nil {
		return err
	}

	a.println("Account created, you can log in now")
	return nil
}

// Login prompts for credentials, authenticates and keeps the session for
// later runs. Wrong credentials are reported without returning an error.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.authService.Login(ctx, email, password)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			a.println("Login unsuccessful:", apiErr.Message)
			return nil
		}
		return err
	}

	a.userName = res.Name
	a.println("Welcome,", res.Name)
	return nil
}

// Logout drops the stored session and the current draft.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	a.draft.Reset()
	a.println("Logged out")
	return nil
}
