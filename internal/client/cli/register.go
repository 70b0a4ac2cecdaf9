package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userreg/internal/client/client"
	"github.com/dmitrijs2005/userreg/internal/client/models"
	"github.com/dmitrijs2005/userreg/internal/common"
)

// Register runs the two-step sign-up form.
//
// Step 1 asks for the account fields and validates them; the answers minus
// the password are kept as a draft in session storage, so an interrupted
// registration is prefilled next time. Step 2 asks for the optional profile.
// The draft is dropped once the API has answered, whatever the outcome.
func (a *App) Register(ctx context.Context) error {
	draft, err := a.draftService.LoadDraft(ctx)
	if err != nil {
		a.logger.Warn(ctx, "registration draft unreadable", "error", err)
	}
	if draft == nil {
		draft = &models.RegistrationStep1{}
	}

	a.println("Step 1 of 2: account")
	step1, err := a.readAccount(*draft)
	if err != nil {
		return err
	}

	if err := step1.Validate(); err != nil {
		a.printValidation(err)
		return err
	}
	if err := a.draftService.SaveDraft(ctx, step1); err != nil {
		a.logger.Warn(ctx, "saving registration draft failed", "error", err)
	}

	a.println("Step 2 of 2: profile (all optional)")
	step2, err := a.readProfile()
	if err != nil {
		return err
	}

	_, err = a.authService.Register(ctx, models.NewRegisterRequest(step1, step2))
	if dropErr := a.draftService.DropDraft(ctx); dropErr != nil {
		a.logger.Warn(ctx, "dropping registration draft failed", "error", dropErr)
	}
	if err != nil {
		a.logger.Warn(ctx, "registration failed", "username", step1.Username, "error", err)
		a.println(client.MessageOf(err, "Registration failed"))
		a.println("Type 'register' to try again.")
		return err
	}

	a.println("Registration successful! Please login.")
	return nil
}

func (a *App) readAccount(draft models.RegistrationStep1) (models.RegistrationStep1, error) {
	var (
		s   models.RegistrationStep1
		err error
	)
	if s.Username, err = GetDefault(a.console, "Username", draft.Username); err != nil {
		return s, err
	}
	if s.Email, err = GetDefault(a.console, "Email", draft.Email); err != nil {
		return s, err
	}
	pw, err := getPassword(a.console, "Password: ")
	if err != nil {
		return s, err
	}
	s.Password = string(pw)
	common.WipeByteArray(pw)
	return s, nil
}

func (a *App) readProfile() (models.RegistrationStep2, error) {
	var (
		s   models.RegistrationStep2
		err error
	)
	if s.Gender, err = GetChoice(a.console, a.out, "Gender", models.Genders, ""); err != nil {
		return s, err
	}
	if s.Birthdate, err = a.readBirthdate(""); err != nil {
		return s, err
	}
	if s.Favorites, err = a.readFavorites(); err != nil {
		return s, err
	}
	if s.Nickname, err = GetDefault(a.console, "Nickname", ""); err != nil {
		return s, err
	}
	if s.AboutMe, err = GetMultiline(a.console, "About Me", a.out); err != nil {
		return s, err
	}
	return s, nil
}

// readBirthdate asks until the answer is empty or a YYYY-MM-DD date.
func (a *App) readBirthdate(current string) (string, error) {
	for {
		v, err := GetDefault(a.console, "Birthdate (YYYY-MM-DD)", current)
		if err != nil {
			return "", err
		}
		if err := (models.RegistrationStep2{Birthdate: v}).Validate(); err != nil {
			a.printValidation(err)
			continue
		}
		return v, nil
	}
}

// readFavorites toggles catalogue entries, by name or number, until an empty
// line.
func (a *App) readFavorites() ([]string, error) {
	var b strings.Builder
	b.WriteString("Favorites:")
	for i, f := range models.FavoritesCatalogue {
		fmt.Fprintf(&b, " (%d) %s", i+1, f)
	}
	a.println(b.String())

	var selected []string
	for {
		v, err := getSimpleText(a.console, "Toggle favorite ["+models.JoinFavorites(selected)+"]: ")
		if err != nil {
			return nil, err
		}
		if v == "" {
			return selected, nil
		}
		name, ok := models.LookupFavorite(v)
		if !ok {
			a.println("Unknown favorite:", v)
			continue
		}
		selected = models.ToggleFavorite(selected, name)
	}
}
