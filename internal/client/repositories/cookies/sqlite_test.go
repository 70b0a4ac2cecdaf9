package cookies

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/userreg/internal/client/models"
	_ "modernc.org/sqlite"
)

var baseTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func setupRepo(t *testing.T) (*SQLiteRepository, *sql.DB, *time.Time) {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "cookies.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE cookies (name TEXT PRIMARY KEY, value TEXT NOT NULL, expires_at INTEGER NOT NULL);`)
	require.NoError(t, err)

	now := baseTime
	r := NewSQLiteRepository(db).WithClock(func() time.Time { return now })
	return r, db, &now
}

func TestSetThenGet(t *testing.T) {
	r, _, _ := setupRepo(t)
	ctx := context.Background()

	exp := baseTime.Add(7 * 24 * time.Hour)
	require.NoError(t, r.Set(ctx, &models.Cookie{Name: "token", Value: "abc", ExpiresAt: exp}))

	c, err := r.Get(ctx, "token")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "abc", c.Value)
	assert.True(t, exp.Equal(c.ExpiresAt))
}

func TestGet_ExpiredIsAbsent(t *testing.T) {
	r, _, now := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, &models.Cookie{Name: "token", Value: "abc", ExpiresAt: baseTime.Add(time.Hour)}))

	*now = baseTime.Add(time.Hour)
	c, err := r.Get(ctx, "token")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestSet_OverwritesValueAndExpiry(t *testing.T) {
	r, _, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, &models.Cookie{Name: "token", Value: "old", ExpiresAt: baseTime.Add(time.Minute)}))
	require.NoError(t, r.Set(ctx, &models.Cookie{Name: "token", Value: "new", ExpiresAt: baseTime.Add(time.Hour)}))

	c, err := r.Get(ctx, "token")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "new", c.Value)
	assert.True(t, baseTime.Add(time.Hour).Equal(c.ExpiresAt))
}

func TestListSkipsExpired_PurgeRemovesThem(t *testing.T) {
	r, db, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, &models.Cookie{Name: "a", Value: "1", ExpiresAt: baseTime.Add(time.Hour)}))
	require.NoError(t, r.Set(ctx, &models.Cookie{Name: "b", Value: "2", ExpiresAt: baseTime.Add(-time.Hour)}))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].Name)

	require.NoError(t, r.Purge(ctx))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM cookies`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestDeleteAndClear(t *testing.T) {
	r, _, _ := setupRepo(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, r.Set(ctx, &models.Cookie{Name: name, Value: name, ExpiresAt: baseTime.Add(time.Hour)}))
	}

	require.NoError(t, r.Delete(ctx, "a"))
	require.NoError(t, r.Delete(ctx, "a"))

	c, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, c)

	require.NoError(t, r.Clear(ctx))
	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestErrorsAreWrapped(t *testing.T) {
	r, db, _ := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "token")
	require.ErrorContains(t, err, "failed to get cookie[token]")

	err = r.Set(ctx, &models.Cookie{Name: "token"})
	require.ErrorContains(t, err, "failed to set cookie[token]")

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list cookies")
}
