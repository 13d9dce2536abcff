package security

import (
	"context"
	"errors"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
	ErrBadPassword  = errors.New("invalid email or password")
)

// Identity is the verified caller behind a bearer token. Admin comes from a
// claim embedded in the token, never from a profile read.
type Identity struct {
	UID   string
	Email string
	Admin bool
}

// IdentityProvider is the authentication backend: Firebase Auth in
// production or the local account table.
type IdentityProvider interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
	CreateUser(ctx context.Context, email, password string) (string, error)
	// ExchangeToken mints the one-time token returned after registration.
	ExchangeToken(ctx context.Context, uid string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	SetAdmin(ctx context.Context, uid string, admin bool) error
}
