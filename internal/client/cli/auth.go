package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/dmitrijs2005/cateringplus/internal/common"
)

// Login prompts for email, password and "remember me", then authenticates
// through the session store. The password is wiped before returning.
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

	remember, err := GetYesNo(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	s, err := a.session.Login(ctx, models.Credentials{Email: email, Password: password, RememberMe: remember})
	if err != nil {
		return err
	}

	a.catalog.Reset()
	a.cart.Reset()
	a.printf("Welcome, %s!\n", nameOrID(s))
	return nil
}

// Logout clears the session and the local catalog and cart views.
func (a *App) Logout(ctx context.Context) error {
	a.catalog.Reset()
	a.cart.Reset()
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.printf("Logged out.\n")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s := a.session.Current()
	if !s.IsAuthenticated() {
		a.printf("Not logged in.\n")
		return nil
	}
	a.printf("Logged in as %s (id %s)\n", nameOrID(s), s.UserID)
	if !s.ExpiresAt.IsZero() {
		a.printf("Token expires %s\n", s.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

func nameOrID(s models.Session) string {
	if s.UserName != "" {
		return s.UserName
	}
	return s.UserID
}
