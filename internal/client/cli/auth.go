package cli

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
)

var (
	errEmptyInput   = errors.New("value must not be empty")
	errNotPlainText = errors.New("value is not valid UTF-8")
)

func (a *App) prompt(label string) (string, error) {
	v, err := a.in.Line(label)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("%s: %w", label, errEmptyInput)
	}
	if !utf8.ValidString(v) {
		return "", fmt.Errorf("%s: %w", label, errNotPlainText)
	}
	return v, nil
}

// credentials asks for an email and a password.
func (a *App) credentials() (string, string, error) {
	email, err := a.prompt("Email")
	if err != nil {
		return "", "", err
	}
	pw, err := a.in.Secret("Password")
	if err != nil {
		return "", "", err
	}
	if !utf8.ValidString(pw) {
		return "", "", fmt.Errorf("Password: %w", errNotPlainText)
	}
	return email, pw, nil
}

// Register creates an account and keeps the session it returns.
func (a *App) Register(ctx context.Context) error {
	name, err := a.prompt("Name")
	if err != nil {
		return err
	}
	email, pw, err := a.credentials()
	if err != nil {
		return err
	}

	u, err := a.client.Register(ctx, email, pw, name)
	if err != nil {
		a.noteFailure(err)
		return err
	}

	a.user = u
	a.setMode(ModeOnline)
	printlnFn("Registered as", u.Email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, pw, err := a.credentials()
	if err != nil {
		return err
	}

	u, err := a.client.Login(ctx, email, pw)
	if err != nil {
		a.noteFailure(err)
		return err
	}

	a.user = u
	a.setMode(ModeOnline)
	printlnFn("Logged in as", u.Email)
	return nil
}

// WhoAmI prints the user the server resolves the held token to.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.client.WhoAmI(ctx)
	if err != nil {
		a.noteFailure(err)
		if errors.Is(err, client.ErrUnauthorized) {
			// the token no longer maps to a user
			a.dropSession()
		}
		return err
	}

	a.user = u
	printlnFn(fmt.Sprintf("id:      %s\nemail:   %s\nname:    %s\ncreated: %s",
		u.ID, u.Email, u.Name, u.CreatedAt.Local().Format("2006-01-02 15:04:05")))
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.client.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return err
	}
	a.setMode(ModeOnline)
	printlnFn("Server is up")
	return nil
}

// Logout forgets the token locally.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}
	a.dropSession()
	printlnFn("Logged out")
	return nil
}

func (a *App) dropSession() {
	a.client.Logout()
	a.user = nil
}

func (a *App) noteFailure(err error) {
	if errors.Is(err, client.ErrUnavailable) {
		a.setMode(ModeOffline)
	}
}

// describe turns client errors into short messages for the prompt.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrEmailTaken):
		return "this email is already registered"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, client.ErrNotLoggedIn):
		return "you are not logged in"
	default:
		return err.Error()
	}
}
