package cookies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userreg/internal/client/models"
	"github.com/dmitrijs2005/userreg/internal/dbx"
)

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// WithClock replaces the time source used to decide expiry.
func (r *SQLiteRepository) WithClock(now func() time.Time) *SQLiteRepository {
	r.now = now
	return r
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) (*models.Cookie, error) {
	c := &models.Cookie{Name: name}
	var expires int64
	err := r.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM cookies WHERE name = ? AND expires_at > ?`,
		name, r.now().UnixMilli(),
	).Scan(&c.Value, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cookie[%s]: %w", name, err)
	}
	c.ExpiresAt = time.UnixMilli(expires)
	return c, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, cookie *models.Cookie) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cookies (name, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, cookie.Name, cookie.Value, cookie.ExpiresAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to set cookie[%s]: %w", cookie.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cookies WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete cookie[%s]: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Cookie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, value, expires_at FROM cookies WHERE expires_at > ? ORDER BY name`,
		r.now().UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cookies: %w", err)
	}
	defer rows.Close()

	var result []*models.Cookie
	for rows.Next() {
		c := &models.Cookie{}
		var expires int64
		if err := rows.Scan(&c.Name, &c.Value, &expires); err != nil {
			return nil, fmt.Errorf("failed to scan cookie row: %w", err)
		}
		c.ExpiresAt = time.UnixMilli(expires)
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cookie rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cookies`)
	if err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	return nil
}

// Purge removes expired rows.
func (r *SQLiteRepository) Purge(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cookies WHERE expires_at <= ?`, r.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to purge cookies: %w", err)
	}
	return nil
}
