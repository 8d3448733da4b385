package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/userauth/internal/client/client"
	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/schema"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register asks for name, email and password, creates the account and signs
// in with the returned token.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	req := schema.Register{Name: name, Email: email, Password: string(password)}
	if err := req.Validate(); err != nil {
		return err
	}

	res, err := a.api.Register(ctx, req)
	if err != nil {
		return err
	}
	if err := a.session.Login(ctx, res.Token, res.User); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", res.User.Name)
	return nil
}

// Login asks for credentials and stores the issued token.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	req := schema.Login{Email: email, Password: string(password)}
	if err := req.Validate(); err != nil {
		return err
	}

	res, err := a.api.Login(ctx, req)
	if err != nil {
		return err
	}
	if err := a.session.Login(ctx, res.Token, res.User); err != nil {
		return err
	}

	a.logger.Info(ctx, "login successful", "email", res.User.Email)
	fmt.Fprintf(a.out, "Logged in as %s\n", res.User.Email)
	return nil
}

// Me re-validates the current token against the server and prints the
// profile. A rejected token ends the session.
func (a *App) Me(ctx context.Context) error {
	if !a.isLoggedIn() {
		return client.ErrUnauthorized
	}

	p, err := a.api.Me(ctx, a.session.Token())
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			_ = a.session.Logout(ctx)
		}
		return err
	}

	printProfiles(a.out, []schema.Profile{*p})
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// describe turns an error into a line for the terminal.
func describe(err error) string {
	var fe schema.FieldErrors
	if errors.As(err, &fe) {
		return fieldErrors(fe)
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if len(apiErr.Fields) > 0 {
			return fieldErrors(apiErr.Fields)
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}

	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, client.ErrUnauthorized):
		return "not logged in"
	}
	return err.Error()
}

func fieldErrors(fe schema.FieldErrors) string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f+": "+strings.Join(fe[f], ", "))
	}
	return strings.Join(msgs, "; ")
}
