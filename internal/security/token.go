package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenType string

const (
	TokenTypeAccess   TokenType = "access"
	TokenTypeExchange TokenType = "exchange"
)

const issuer = "builderclub-auth"

// UserClaims defines the claims carried by locally issued tokens
type UserClaims struct {
	Email string    `json:"email,omitempty"`
	Type  TokenType `json:"type"`
	Admin bool      `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateAccessToken(uid, email string, admin bool) (string, error)
	// GenerateExchangeToken issues a short-lived token the client trades for
	// an access token right after registration.
	GenerateExchangeToken(uid string) (string, error)
	ValidateToken(tokenString string) (*UserClaims, error)
}

type tokenManager struct {
	secret         []byte
	accessExpiry   time.Duration
	exchangeExpiry time.Duration
}

func NewTokenManager(secret string, accessExpiry, exchangeExpiry time.Duration) TokenManager {
	return &tokenManager{
		secret:         []byte(secret),
		accessExpiry:   accessExpiry,
		exchangeExpiry: exchangeExpiry,
	}
}

func (m *tokenManager) GenerateAccessToken(uid, email string, admin bool) (string, error) {
	return m.sign(UserClaims{
		Email: email,
		Type:  TokenTypeAccess,
		Admin: admin,
	}, uid, m.accessExpiry, "api-access")
}

func (m *tokenManager) GenerateExchangeToken(uid string) (string, error) {
	return m.sign(UserClaims{Type: TokenTypeExchange}, uid, m.exchangeExpiry, "token-exchange")
}

func (m *tokenManager) sign(claims UserClaims, uid string, expiry time.Duration, audience string) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   uid,
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{audience},
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid && claims.Subject != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
