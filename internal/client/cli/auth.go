package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/userreg/internal/client/client"
	"github.com/dmitrijs2005/userreg/internal/client/models"
	"github.com/dmitrijs2005/userreg/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and starts a session. On success the
// profile is shown. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.console, "Username: ")
	if err != nil {
		return err
	}

	password, err := getPassword(a.console, "Password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	req := models.LoginRequest{Username: username, Password: string(password)}
	if err := req.Validate(); err != nil {
		a.printValidation(err)
		return err
	}

	user, err := a.authService.Login(ctx, username, password)
	if err != nil {
		a.logger.Warn(ctx, "login failed", "username", username, "error", err)
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		a.println(client.MessageOf(err, "Login failed"))
		return err
	}

	a.setMode(ModeOnline)
	a.println("Login successful!")
	a.printProfile(user)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
		a.println("Logout failed")
		return err
	}
	a.println("Logged out.")
	return nil
}

// requireLogin reports whether a session exists. Without one it tells the
// user and runs the login prompt instead.
func (a *App) requireLogin(ctx context.Context) (bool, error) {
	if a.isLoggedIn() {
		return true, nil
	}
	a.println("Please log in first.")
	return false, a.Login(ctx)
}

// printValidation lists the failing fields of a form, one per line.
func (a *App) printValidation(err error) {
	var verr models.ValidationError
	if !errors.As(err, &verr) {
		a.println(err.Error())
		return
	}
	for _, fe := range verr {
		a.printf("  %s: %s\n", fe.Field, fe.Message)
	}
}
