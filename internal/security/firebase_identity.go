package security

import (
	"context"
	"fmt"

	"builderclub-backend/internal/logger"

	"firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient is the subset of *auth.Client used here.
type FirebaseAuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	CustomToken(ctx context.Context, uid string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	SetCustomUserClaims(ctx context.Context, uid string, customClaims map[string]interface{}) error
}

type firebaseIdentity struct {
	client FirebaseAuthClient
}

func NewFirebaseIdentity(client FirebaseAuthClient) IdentityProvider {
	return &firebaseIdentity{client: client}
}

func (f *firebaseIdentity) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	tok, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	id := &Identity{UID: tok.UID}
	if email, ok := tok.Claims["email"].(string); ok {
		id.Email = email
	}
	if admin, ok := tok.Claims["admin"].(bool); ok {
		id.Admin = admin
	}
	return id, nil
}

func (f *firebaseIdentity) CreateUser(ctx context.Context, email, password string) (string, error) {
	logger.ExternalServiceCall("firebase-auth", "CreateUser")
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		logger.ExternalServiceResult("firebase-auth", "CreateUser", err)
		if auth.IsEmailAlreadyExists(err) {
			return "", ErrEmailExists
		}
		return "", fmt.Errorf("failed to create firebase user: %w", err)
	}
	logger.ExternalServiceResult("firebase-auth", "CreateUser", nil, "uid", user.UID)
	return user.UID, nil
}

func (f *firebaseIdentity) ExchangeToken(ctx context.Context, uid string) (string, error) {
	return f.client.CustomToken(ctx, uid)
}

func (f *firebaseIdentity) DeleteUser(ctx context.Context, uid string) error {
	if err := f.client.DeleteUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete firebase user: %w", err)
	}
	return nil
}

func (f *firebaseIdentity) SetAdmin(ctx context.Context, uid string, admin bool) error {
	if err := f.client.SetCustomUserClaims(ctx, uid, map[string]interface{}{"admin": admin}); err != nil {
		if auth.IsUserNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to set admin claim: %w", err)
	}
	return nil
}
