package cookies

import (
	"context"

	"github.com/dmitrijs2005/userreg/internal/client/models"
)

type Repository interface {
	Get(ctx context.Context, name string) (*models.Cookie, error)
	Set(ctx context.Context, cookie *models.Cookie) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]*models.Cookie, error)
	Clear(ctx context.Context) error
	Purge(ctx context.Context) error
}
