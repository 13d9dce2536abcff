package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"builderclub-backend/internal/config"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/security"
)

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput carries either credentials or the exchange token returned by
// registration.
type LoginInput struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	ExchangeToken string `json:"exchangeToken"`
}

// PasswordLogin is implemented by identity backends that own credentials.
type PasswordLogin interface {
	Login(ctx context.Context, email, password string) (string, error)
	Exchange(ctx context.Context, exchangeToken string) (string, error)
}

type authService struct {
	identity security.IdentityProvider
	local    PasswordLogin
	club     config.ClubConfig
	isAdmin  func(email string) bool
}

// NewAuthService builds registration and sign-in. local is nil when a hosted
// identity provider handles sign-in; Login then returns ErrNotConfigured.
func NewAuthService(identity security.IdentityProvider, local PasswordLogin, club config.ClubConfig, bootstrapAdmin func(email string) bool) AuthService {
	if bootstrapAdmin == nil {
		bootstrapAdmin = func(string) bool { return false }
	}
	return &authService{identity: identity, local: local, club: club, isAdmin: bootstrapAdmin}
}

// Register enforces the institutional domain and password policy, creates the
// account and returns a one-time exchange token for client sign-in.
func (s *authService) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.HasSuffix(strings.ToLower(email), strings.ToLower(s.club.EmailDomain)) {
		return "", &DomainRestrictionError{Domain: s.club.EmailDomain}
	}
	if len(in.Password) < s.club.MinPasswordLength {
		return "", invalid("password", fmt.Sprintf("Password must be at least %d characters.", s.club.MinPasswordLength))
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", invalid("email", "Invalid email address.")
	}

	uid, err := s.identity.CreateUser(ctx, email, in.Password)
	if err != nil {
		if errors.Is(err, security.ErrEmailExists) {
			return "", fmt.Errorf("%w: email already registered", ErrConflict)
		}
		logger.Error("Registration failed", "error", err)
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	if s.isAdmin(email) {
		if err := s.identity.SetAdmin(ctx, uid, true); err != nil {
			logger.Warn("Failed to grant bootstrap admin", "uid", uid, "error", err)
		}
	}

	token, err := s.identity.ExchangeToken(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("failed to mint exchange token: %w", err)
	}
	logger.Info("User registered", "uid", uid)
	return token, nil
}

func (s *authService) Login(ctx context.Context, in LoginInput) (string, error) {
	if s.local == nil {
		return "", ErrNotConfigured
	}
	if in.ExchangeToken != "" {
		token, err := s.local.Exchange(ctx, in.ExchangeToken)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
		return token, nil
	}

	if err := checkStruct(in); err != nil {
		return "", err
	}
	token, err := s.local.Login(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, security.ErrBadPassword) {
			return "", fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
		return "", fmt.Errorf("failed to sign in: %w", err)
	}
	return token, nil
}
