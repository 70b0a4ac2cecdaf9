package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/userreg/internal/client/apitest"
	"github.com/dmitrijs2005/userreg/internal/client/client"
	"github.com/dmitrijs2005/userreg/internal/client/session"
	"github.com/dmitrijs2005/userreg/internal/logging"
)

type fixture struct {
	api    *apitest.Server
	client *client.HTTPClient
	db     *sql.DB
	store  *session.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	api := apitest.NewServer()
	t.Cleanup(api.Close)

	c, err := client.NewHTTPClient(api.URL, 5*time.Second, logging.Discard())
	require.NoError(t, err)

	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "userreg.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &fixture{
		api:    api,
		client: c,
		db:     db,
		store:  session.NewStore(db, c, 0, logging.Discard()),
	}
}

func (f *fixture) auth() AuthService {
	return NewAuthService(f.client, f.db, f.store, logging.Discard())
}

func (f *fixture) profile() ProfileService {
	return NewProfileService(f.client, f.store, logging.Discard())
}

// loggedIn registers alice on the fake API and logs her in.
func (f *fixture) loggedIn(t *testing.T) int64 {
	t.Helper()
	id := f.api.AddUser(apitest.User{
		Username: "alice",
		Email:    "alice@example.org",
		Password: "Secret123",
		Gender:   "female",
		Nickname: "al",
	})
	_, err := f.auth().Login(context.Background(), "alice", []byte("Secret123"))
	require.NoError(t, err)
	return id
}
