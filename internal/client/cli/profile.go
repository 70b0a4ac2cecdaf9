package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/userreg/internal/client/client"
	"github.com/dmitrijs2005/userreg/internal/client/models"
	"github.com/dmitrijs2005/userreg/internal/client/services"
)

const (
	msgSessionLost   = "Authentication error: Please log in again."
	msgRefreshFailed = "Failed to refresh user data. Please reload the page."
)

// Profile shows the session user.
func (a *App) Profile(ctx context.Context) error {
	ok, err := a.requireLogin(ctx)
	if !ok {
		return err
	}
	a.printProfile(a.profileService.Current())
	return nil
}

func (a *App) printProfile(u *models.User) {
	if u == nil {
		return
	}
	a.printf("Username: %s\n", u.Username)
	a.printf("Email: %s\n", u.Email)
	for _, f := range u.OptionalFields() {
		a.printf("%s: %s\n", f.Label, f.Value)
	}
}

// Edit prompts every optional field with its current value as default and
// saves the result.
func (a *App) Edit(ctx context.Context) error {
	ok, err := a.requireLogin(ctx)
	if !ok {
		return err
	}
	current := a.profileService.Current().Profile()

	a.printf("Edit profile (Enter keeps a value, %q clears it)\n", clearValue)
	req, err := a.readProfileEdit(current)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		a.printValidation(err)
		return err
	}

	user, err := a.profileService.Update(ctx, req)
	switch {
	case err == nil:
		a.println("Profile updated successfully!")
		a.printProfile(user)
		return nil
	case errors.Is(err, services.ErrSessionLost):
		a.println(msgSessionLost)
		return a.Login(ctx)
	case errors.Is(err, services.ErrRefreshFailed):
		a.logger.Error(ctx, "profile refresh after update failed", "error", err)
		a.println(msgRefreshFailed)
	default:
		a.logger.Error(ctx, "profile update failed", "error", err)
		a.println(client.MessageOf(err, "Update failed"))
	}
	return err
}

func (a *App) readProfileEdit(current models.UpdateProfileRequest) (models.UpdateProfileRequest, error) {
	var (
		req models.UpdateProfileRequest
		err error
	)
	if req.Gender, err = GetChoice(a.console, a.out, "Gender", models.Genders, current.Gender); err != nil {
		return req, err
	}
	if req.Birthdate, err = a.readBirthdate(current.Birthdate); err != nil {
		return req, err
	}
	if req.Favorites, err = GetDefault(a.console, "Favorites (e.g. Football, Music, Running)", current.Favorites); err != nil {
		return req, err
	}
	if req.Nickname, err = GetDefault(a.console, "Nickname", current.Nickname); err != nil {
		return req, err
	}
	if req.AboutMe, err = GetMultilineDefault(a.console, "About Me", current.AboutMe, a.out); err != nil {
		return req, err
	}
	return req, nil
}

// Refresh reloads the profile from the API.
func (a *App) Refresh(ctx context.Context) error {
	ok, err := a.requireLogin(ctx)
	if !ok {
		return err
	}
	user, err := a.profileService.Refresh(ctx)
	if err != nil {
		a.logger.Error(ctx, "profile refresh failed", "error", err)
		a.println(client.MessageOf(err, "Failed to refresh user data."))
		return err
	}
	a.printProfile(user)
	return nil
}

// Delete removes the account after confirmation and ends the session.
func (a *App) Delete(ctx context.Context) error {
	ok, err := a.requireLogin(ctx)
	if !ok {
		return err
	}

	confirmed, err := GetConfirm(a.console, "Are you sure you want to delete your account?")
	if err != nil || !confirmed {
		return err
	}

	if err := a.profileService.Delete(ctx); err != nil {
		a.logger.Error(ctx, "account deletion failed", "error", err)
		a.println(client.MessageOf(err, "Delete failed"))
		return err
	}
	a.println("Account deleted successfully")
	return nil
}
