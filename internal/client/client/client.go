package client

import (
	"context"

	"github.com/dmitrijs2005/userauth/internal/schema"
)

type Client interface {
	Register(ctx context.Context, req schema.Register) (*schema.AuthResponse, error)
	Login(ctx context.Context, req schema.Login) (*schema.AuthResponse, error)
	Me(ctx context.Context, token string) (*schema.Profile, error)
	ListUsers(ctx context.Context) ([]schema.Profile, error)
	CreateUser(ctx context.Context, req schema.CreateUser) (*schema.Profile, error)
	Ping(ctx context.Context) error
}
