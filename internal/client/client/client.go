package client

import (
	"context"

	"github.com/dmitrijs2005/userreg/internal/client/models"
)

type Client interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	UpdateProfile(ctx context.Context, id models.ID, req models.UpdateProfileRequest) error
	DeleteAccount(ctx context.Context, id models.ID) error
	GetUserByID(ctx context.Context, id models.ID) (*models.User, error)
	Ping(ctx context.Context) error
	SetAuthToken(token string)
	Close() error
}
