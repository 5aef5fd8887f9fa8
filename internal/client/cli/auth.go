package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/client/client"
	"github.com/dmitrijs2005/todokeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Signup creates an account. It does not sign in.
func (a *App) Signup(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Signup(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account %s created, use signin to continue\n", u.Email)
	return nil
}

// Signin authenticates and keeps the session for later runs.
func (a *App) Signin(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Signin(ctx, email, password)
	if err != nil {
		return err
	}

	a.session = s
	fmt.Fprintf(a.out, "Signed in as %s (session valid until %s)\n", s.Email, s.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	u, err := a.authService.Profile(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.session = nil
			return fmt.Errorf("session expired, please sign in again: %w", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "id:      %s\nemail:   %s\ncreated: %s\n", u.ID, u.Email, u.CreatedAt.Local().Format("2006-01-02 15:04"))
	return nil
}

// Logout forgets the local session. The token itself stays valid until it
// expires.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.session = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
