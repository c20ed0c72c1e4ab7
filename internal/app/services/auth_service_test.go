package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmansoor/campusgate/internal/app/models"
	"github.com/hmansoor/campusgate/internal/app/models/dto"
	"github.com/hmansoor/campusgate/internal/app/repositories"
	"github.com/hmansoor/campusgate/internal/pkg/apperrors"
	"github.com/hmansoor/campusgate/internal/pkg/auth"
)

type fakeUsers struct {
	users map[string]*models.User
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func newAuthService(t *testing.T, users *fakeUsers) *AuthService {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "campusgate-test",
	})
	return NewAuthService(users, jwtService, zerolog.Nop())
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("Admin123!")
	require.NoError(t, err)

	users := &fakeUsers{users: map[string]*models.User{
		"admin": {ID: 1, Username: "admin", PasswordHash: hash, Role: models.RoleAdmin, IsActive: true},
		"gone":  {ID: 2, Username: "gone", PasswordHash: hash, Role: models.RoleStudent, IsActive: false},
	}}
	s := newAuthService(t, users)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := s.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "Admin123!"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, models.RoleAdmin, result.Role)
		assert.Equal(t, 3600, result.ExpiresIn)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := s.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "Admin123!"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		_, err := s.Login(context.Background(), dto.LoginRequest{Username: "gone", Password: "Admin123!"})
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})
}
