package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userreg/internal/client/client"
	"github.com/dmitrijs2005/userreg/internal/client/models"
	"github.com/dmitrijs2005/userreg/internal/client/session"
	"github.com/dmitrijs2005/userreg/internal/logging"
)

type ProfileService interface {
	// Current returns the session user, or nil when logged out.
	Current() *models.User
	Refresh(ctx context.Context) (*models.User, error)
	Update(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error)
	Delete(ctx context.Context) error
}

type profileService struct {
	client client.Client
	store  *session.Store
	logger logging.Logger
}

func NewProfileService(client client.Client, store *session.Store, logger logging.Logger) ProfileService {
	return &profileService{client: client, store: store, logger: logger}
}

func (s *profileService) Current() *models.User {
	return s.store.User()
}

func (s *profileService) Refresh(ctx context.Context) (*models.User, error) {
	user := s.store.User()
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	fresh, err := s.client.GetUserByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get user error: %w", err)
	}
	return s.replace(ctx, user.ID, fresh)
}

// Update saves the profile and reads it back. The token cookie must still be
// present after the save; if it is gone the session is ended with
// ErrSessionLost.
func (s *profileService) Update(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	user := s.store.User()
	if user == nil {
		return nil, ErrNotLoggedIn
	}

	if err := s.client.UpdateProfile(ctx, user.ID, req); err != nil {
		return nil, fmt.Errorf("update profile error: %w", err)
	}

	token, err := s.store.CookieToken(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		s.logger.Error(ctx, "token cookie missing after profile update", "user_id", user.ID.String())
		if err := s.store.Logout(ctx); err != nil {
			s.logger.Warn(ctx, "logout failed", "error", err)
		}
		return nil, ErrSessionLost
	}
	s.client.SetAuthToken(token)

	fresh, err := s.client.GetUserByID(ctx, user.ID)
	if err != nil {
		s.logger.Error(ctx, "fetch updated user failed", "user_id", user.ID.String(), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	return s.replace(ctx, user.ID, fresh)
}

func (s *profileService) replace(ctx context.Context, id models.ID, fresh *models.User) (*models.User, error) {
	if fresh.ID == "" {
		fresh.ID = id
	}
	if err := s.store.SetUser(ctx, fresh); err != nil {
		return nil, err
	}
	return s.store.User(), nil
}

// Delete removes the account on the server and ends the session.
func (s *profileService) Delete(ctx context.Context) error {
	user := s.store.User()
	if user == nil {
		return ErrNotLoggedIn
	}
	if err := s.client.DeleteAccount(ctx, user.ID); err != nil {
		return fmt.Errorf("delete account error: %w", err)
	}
	s.logger.Info(ctx, "account deleted", "user_id", user.ID.String())

	// The account is gone; a local storage failure does not undo that.
	if err := s.store.Logout(ctx); err != nil {
		s.logger.Error(ctx, "local logout after account deletion failed", "error", err)
	}
	return nil
}
