package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/userreg/internal/client/models"
	"github.com/dmitrijs2005/userreg/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/userreg/internal/client/repositories/kv"
	"github.com/dmitrijs2005/userreg/internal/common"
	"github.com/dmitrijs2005/userreg/internal/dbx"
	"github.com/dmitrijs2005/userreg/internal/logging"
)

// DefaultTokenTTL is the lifetime of the token cookie.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenSetter receives the bearer token to attach to API requests.
type TokenSetter interface {
	SetAuthToken(token string)
}

type Store struct {
	db     *sql.DB
	api    TokenSetter
	ttl    time.Duration
	logger logging.Logger
	now    func() time.Time

	mu     sync.RWMutex
	user   *models.User
	token  string
	expiry time.Time
}

func NewStore(db *sql.DB, api TokenSetter, ttl time.Duration, logger logging.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Store{db: db, api: api, ttl: ttl, logger: logger, now: time.Now}
}

// WithClock replaces the time source.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) cookies(db dbx.DBTX) *cookies.SQLiteRepository {
	return cookies.NewSQLiteRepository(db).WithClock(s.now)
}

// Login records a successful login: it persists the token cookie and the
// cached user, then publishes the pair and the bearer token.
func (s *Store) Login(ctx context.Context, user *models.User, token string) error {
	expiry := TokenExpiry(token, s.now(), s.ttl)

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cookie := &models.Cookie{Name: common.TokenCookieName, Value: token, ExpiresAt: expiry}
		if err := s.cookies(tx).Set(ctx, cookie); err != nil {
			return err
		}
		return kv.NewLocalStorage(tx).Set(ctx, common.CachedUserKey, data)
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.api.SetAuthToken(token)

	s.mu.Lock()
	s.user = cloneUser(user)
	s.token = token
	s.expiry = expiry
	s.mu.Unlock()

	s.logger.Info(ctx, "session started", "user_id", user.ID.String(), "expires_at", expiry)
	return nil
}

// Logout removes the token cookie and the cached user and resets the pair.
// The in-memory state is reset even when storage fails.
func (s *Store) Logout(ctx context.Context) error {
	s.Forget()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.cookies(tx).Delete(ctx, common.TokenCookieName); err != nil {
			return err
		}
		return kv.NewLocalStorage(tx).Delete(ctx, common.CachedUserKey)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.logger.Info(ctx, "session ended")
	return nil
}

// Forget resets the in-memory pair and the bearer token without touching
// storage.
func (s *Store) Forget() {
	s.api.SetAuthToken("")

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.expiry = time.Time{}
	s.mu.Unlock()
}

// SetUser replaces the current user and keeps the token.
func (s *Store) SetUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	s.user = cloneUser(user)
	s.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := kv.NewLocalStorage(s.db).Set(ctx, common.CachedUserKey, data); err != nil {
		return fmt.Errorf("cache user: %w", err)
	}
	return nil
}

// Init restores the session at start-up. A live token cookie is attached to
// the API client and returned; the cached user is restored when present.
// Without a live cookie nothing changes and "" is returned.
func (s *Store) Init(ctx context.Context) (string, error) {
	cookie, err := s.cookies(s.db).Get(ctx, common.TokenCookieName)
	if err != nil {
		return "", err
	}
	if cookie == nil {
		return "", nil
	}

	s.api.SetAuthToken(cookie.Value)

	s.mu.Lock()
	s.token = cookie.Value
	s.expiry = cookie.ExpiresAt
	s.mu.Unlock()

	data, err := kv.NewLocalStorage(s.db).Get(ctx, common.CachedUserKey)
	if err != nil {
		return cookie.Value, err
	}
	if data == nil {
		return cookie.Value, nil
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.logger.Warn(ctx, "discarding unreadable cached user", "error", err)
		return cookie.Value, nil
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	return cookie.Value, nil
}

// CookieToken reads the token cookie from storage, ignoring the in-memory
// pair. It returns "" when the cookie is missing or expired.
func (s *Store) CookieToken(ctx context.Context) (string, error) {
	cookie, err := s.cookies(s.db).Get(ctx, common.TokenCookieName)
	if err != nil || cookie == nil {
		return "", err
	}
	return cookie.Value, nil
}

// User returns a copy of the current user, or nil when logged out.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.user)
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Expiry is when the token cookie expires; zero when there is none.
func (s *Store) Expiry() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiry
}

func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
