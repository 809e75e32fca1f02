package client

import (
	"context"
	"time"
)

// User is the client view of an account.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}

type Client interface {
	Close() error
	Register(ctx context.Context, email, password, name string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	WhoAmI(ctx context.Context) (*User, error)
	Ping(ctx context.Context) error
	Logout()
	LoggedIn() bool
}
