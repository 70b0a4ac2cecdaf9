package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userreg/internal/client/client"
	"github.com/dmitrijs2005/userreg/internal/client/models"
	"github.com/dmitrijs2005/userreg/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/userreg/internal/client/repositories/kv"
	"github.com/dmitrijs2005/userreg/internal/client/session"
	"github.com/dmitrijs2005/userreg/internal/dbx"
	"github.com/dmitrijs2005/userreg/internal/logging"
)

// AuthService defines the account entry points of the console.
//
// Contract:
//   - Register: create an account; it does not log in.
//   - Login: authenticate and start a session; returns the session user.
//   - Logout: end the session and forget the token.
//   - Restore: resume a session left in local storage by a previous run.
//   - Expiry: when the token cookie of the current session expires.
//   - Ping: check API reachability.
//   - Close: release client resources.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, username string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (*models.User, error)
	Expiry() time.Time
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	store  *session.Store
	logger logging.Logger
}

func NewAuthService(client client.Client, db *sql.DB, store *session.Store, logger logging.Logger) AuthService {
	return &authService{client: client, db: db, store: store, logger: logger}
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	user, err := a.client.RegisterUser(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	a.logger.Info(ctx, "user registered", "username", req.Username)
	return user, nil
}

// Login exchanges the credentials for a token and starts the session. The
// login response lacks the email and profile fields, so the full profile is
// fetched afterwards; a failed fetch leaves the partial user in place.
func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.User, error) {
	resp, err := a.client.Login(ctx, models.LoginRequest{Username: username, Password: string(password)})
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.store.Login(ctx, resp.User(), resp.AccessToken); err != nil {
		return nil, err
	}

	user := a.store.User()
	full, err := a.client.GetUserByID(ctx, user.ID)
	if err != nil {
		a.logger.Warn(ctx, "profile fetch after login failed", "user_id", user.ID.String(), "error", err)
		return user, nil
	}
	if full.ID == "" {
		full.ID = user.ID
	}
	if err := a.store.SetUser(ctx, full); err != nil {
		a.logger.Warn(ctx, "caching profile failed", "error", err)
	}
	return a.store.User(), nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Logout(ctx)
}

// Restore starts a new console session: session storage from the previous
// run and expired cookies are dropped, and the token cookie, if still live,
// is put back in use.
func (a *authService) Restore(ctx context.Context) (*models.User, error) {
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := kv.NewSessionStorage(tx).Clear(ctx); err != nil {
			return err
		}
		return cookies.NewSQLiteRepository(tx).Purge(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("reset browser storage: %w", err)
	}

	token, err := a.store.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if token != "" {
		a.logger.Debug(ctx, "session restored", "expires_at", a.store.Expiry())
	}
	return a.store.User(), nil
}

func (a *authService) Expiry() time.Time {
	return a.store.Expiry()
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
