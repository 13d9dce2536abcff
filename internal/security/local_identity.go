package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LocalIdentity keeps credentials in the account table and issues HS256
// tokens. Admin status is copied into the access token at sign-in, so a
// change takes effect on the next login.
type LocalIdentity struct {
	accounts repository.AccountRepository
	tokens   TokenManager
}

func NewLocalIdentity(accounts repository.AccountRepository, tokens TokenManager) *LocalIdentity {
	return &LocalIdentity{accounts: accounts, tokens: tokens}
}

func (l *LocalIdentity) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	claims, err := l.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeAccess {
		return nil, ErrWrongTokenType
	}
	return &Identity{UID: claims.Subject, Email: claims.Email, Admin: claims.Admin}, nil
}

func (l *LocalIdentity) CreateUser(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := l.accounts.GetByEmail(ctx, email); err == nil {
		return "", ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("failed to look up account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	account := &domain.Account{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := l.accounts.Create(ctx, account); err != nil {
		return "", fmt.Errorf("failed to create account: %w", err)
	}
	return account.UID, nil
}

func (l *LocalIdentity) ExchangeToken(ctx context.Context, uid string) (string, error) {
	return l.tokens.GenerateExchangeToken(uid)
}

func (l *LocalIdentity) DeleteUser(ctx context.Context, uid string) error {
	if err := l.accounts.Delete(ctx, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (l *LocalIdentity) SetAdmin(ctx context.Context, uid string, admin bool) error {
	if err := l.accounts.SetAdmin(ctx, uid, admin); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Login checks a password and returns an access token.
func (l *LocalIdentity) Login(ctx context.Context, email, password string) (string, error) {
	account, err := l.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrBadPassword
		}
		return "", fmt.Errorf("failed to look up account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", ErrBadPassword
	}
	return l.tokens.GenerateAccessToken(account.UID, account.Email, account.Admin)
}

// Exchange trades a registration exchange token for an access token.
func (l *LocalIdentity) Exchange(ctx context.Context, exchangeToken string) (string, error) {
	claims, err := l.tokens.ValidateToken(exchangeToken)
	if err != nil {
		return "", err
	}
	if claims.Type != TokenTypeExchange {
		return "", ErrWrongTokenType
	}
	account, err := l.accounts.GetByUID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return l.tokens.GenerateAccessToken(account.UID, account.Email, account.Admin)
}
