package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/userreg/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/userreg/internal/client/repositories/kv"
	"github.com/dmitrijs2005/userreg/internal/client/session"
	"github.com/dmitrijs2005/userreg/internal/common"
	"github.com/dmitrijs2005/userreg/internal/dbx"
)

// CacheService wipes local storage.
//
//   - ClearAllUserCache: drop the token cookie, local and session storage,
//     and end the in-memory session.
//   - ClearBrowserCache: drop every cookie and both storages. The in-memory
//     session is left alone.
//   - Usage: count live cookies and stored keys.
type CacheService interface {
	ClearAllUserCache(ctx context.Context) error
	ClearBrowserCache(ctx context.Context) error
	Usage(ctx context.Context) (StorageUsage, error)
}

// StorageUsage is what the local browser storage currently holds.
type StorageUsage struct {
	Cookies int
	Local   int
	Session int
}

type cacheService struct {
	db    *sql.DB
	store *session.Store
}

func NewCacheService(db *sql.DB, store *session.Store) CacheService {
	return &cacheService{db: db, store: store}
}

func (s *cacheService) ClearAllUserCache(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := cookies.NewSQLiteRepository(tx).Delete(ctx, common.TokenCookieName); err != nil {
			return err
		}
		return clearStorages(ctx, tx)
	})
	s.store.Forget()
	if err != nil {
		return fmt.Errorf("clear user cache: %w", err)
	}
	return nil
}

func (s *cacheService) ClearBrowserCache(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := cookies.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return clearStorages(ctx, tx)
	})
	if err != nil {
		return fmt.Errorf("clear browser cache: %w", err)
	}
	return nil
}

func clearStorages(ctx context.Context, tx dbx.DBTX) error {
	if err := kv.NewLocalStorage(tx).Clear(ctx); err != nil {
		return err
	}
	return kv.NewSessionStorage(tx).Clear(ctx)
}

func (s *cacheService) Usage(ctx context.Context) (StorageUsage, error) {
	jar, err := cookies.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return StorageUsage{}, fmt.Errorf("storage usage: %w", err)
	}
	local, err := kv.NewLocalStorage(s.db).List(ctx)
	if err != nil {
		return StorageUsage{}, fmt.Errorf("storage usage: %w", err)
	}
	sess, err := kv.NewSessionStorage(s.db).List(ctx)
	if err != nil {
		return StorageUsage{}, fmt.Errorf("storage usage: %w", err)
	}
	return StorageUsage{Cookies: len(jar), Local: len(local), Session: len(sess)}, nil
}
