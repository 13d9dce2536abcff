package security

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"builderclub-backend/internal/logger"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFirebaseAuth struct {
	mock.Mock
}

func (m *MockFirebaseAuth) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Token), args.Error(1)
}
func (m *MockFirebaseAuth) CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.UserRecord), args.Error(1)
}
func (m *MockFirebaseAuth) CustomToken(ctx context.Context, uid string) (string, error) {
	args := m.Called(ctx, uid)
	return args.String(0), args.Error(1)
}
func (m *MockFirebaseAuth) DeleteUser(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}
func (m *MockFirebaseAuth) SetCustomUserClaims(ctx context.Context, uid string, claims map[string]interface{}) error {
	args := m.Called(ctx, uid, claims)
	return args.Error(0)
}

func TestFirebaseIdentity_VerifyToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin claim", func(t *testing.T) {
		client := new(MockFirebaseAuth)
		client.On("VerifyIDToken", ctx, "tok").Return(&auth.Token{
			UID:    "u1",
			Claims: map[string]interface{}{"email": "ada@psu.edu", "admin": true},
		}, nil)

		id, err := NewFirebaseIdentity(client).VerifyToken(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, &Identity{UID: "u1", Email: "ada@psu.edu", Admin: true}, id)
	})

	t.Run("Non-boolean admin claim ignored", func(t *testing.T) {
		client := new(MockFirebaseAuth)
		client.On("VerifyIDToken", ctx, "tok").Return(&auth.Token{
			UID:    "u2",
			Claims: map[string]interface{}{"admin": "true"},
		}, nil)

		id, err := NewFirebaseIdentity(client).VerifyToken(ctx, "tok")
		require.NoError(t, err)
		assert.False(t, id.Admin)
	})

	t.Run("Invalid", func(t *testing.T) {
		client := new(MockFirebaseAuth)
		client.On("VerifyIDToken", ctx, "bad").Return(nil, errors.New("signature mismatch"))

		_, err := NewFirebaseIdentity(client).VerifyToken(ctx, "bad")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestFirebaseIdentity_CreateAndClaims(t *testing.T) {
	ctx := context.Background()
	client := new(MockFirebaseAuth)
	id := NewFirebaseIdentity(client)

	client.On("CreateUser", ctx, mock.AnythingOfType("*auth.UserToCreate")).Return(&auth.UserRecord{UserInfo: &auth.UserInfo{UID: "new"}}, nil)
	client.On("CustomToken", ctx, "new").Return("custom", nil)
	client.On("SetCustomUserClaims", ctx, "new", map[string]interface{}{"admin": true}).Return(nil)

	uid, err := id.CreateUser(ctx, "ada@psu.edu", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "new", uid)

	token, err := id.ExchangeToken(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "custom", token)

	assert.NoError(t, id.SetAdmin(ctx, uid, true))
	client.AssertExpectations(t)
}

func TestFirebaseIdentity_CreateUserKeepsEmailOutOfLogs(t *testing.T) {
	var buf bytes.Buffer
	logger.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { logger.Initialize("info", "text") })

	ctx := context.Background()
	client := new(MockFirebaseAuth)
	id := NewFirebaseIdentity(client)
	client.On("CreateUser", ctx, mock.AnythingOfType("*auth.UserToCreate")).Return(&auth.UserRecord{UserInfo: &auth.UserInfo{UID: "new"}}, nil)

	_, err := id.CreateUser(ctx, "ada@psu.edu", "secret1")
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "ada@psu.edu")
	assert.Contains(t, buf.String(), "uid=new")
}
