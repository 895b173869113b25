package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/usagetrack/backend/internal/domain/identity"
	"github.com/usagetrack/backend/internal/domain/shared"
	"github.com/usagetrack/backend/internal/infrastructure/auth"
	"github.com/usagetrack/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "usagetrack-test",
	})
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers new user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, newTestJWTService(), zap.NewNop())

		repo.On("ExistsByName", ctx, "penny").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		dto, err := svc.Register(ctx, RegisterInput{Name: "penny", Password: "s3cret-pass"})

		require.NoError(t, err)
		assert.Equal(t, "penny", dto.Name)
		assert.False(t, dto.IsStaff)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, newTestJWTService(), zap.NewNop())

		repo.On("ExistsByName", ctx, "penny").Return(true, nil)

		_, err := svc.Register(ctx, RegisterInput{Name: "penny", Password: "s3cret-pass"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NAME_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid password without hitting the store", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, newTestJWTService(), zap.NewNop())

		repo.On("ExistsByName", ctx, "penny").Return(false, nil)

		_, err := svc.Register(ctx, RegisterInput{Name: "penny", Password: "short"})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	user, err := identity.NewUser("penny", "s3cret-pass")
	require.NoError(t, err)

	t.Run("issues tokens for valid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, newTestJWTService(), zap.NewNop())

		repo.On("FindByName", ctx, "penny").Return(user, nil)

		result, err := svc.Login(ctx, LoginInput{Name: "penny", Password: "s3cret-pass"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.Equal(t, user.ID, result.User.ID)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, newTestJWTService(), zap.NewNop())

		repo.On("FindByName", ctx, "penny").Return(user, nil)

		_, err := svc.Login(ctx, LoginInput{Name: "penny", Password: "wrong-pass"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("unknown user yields the same error as wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, newTestJWTService(), zap.NewNop())

		repo.On("FindByName", ctx, "nobody").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginInput{Name: "nobody", Password: "s3cret-pass"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuthServiceRefresh(t *testing.T) {
	ctx := context.Background()
	jwtSvc := newTestJWTService()

	user, err := identity.NewUser("penny", "s3cret-pass")
	require.NoError(t, err)

	t.Run("exchanges valid refresh token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, jwtSvc, zap.NewNop())

		pair, err := jwtSvc.GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID, Name: user.Name})
		require.NoError(t, err)

		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		result, err := svc.Refresh(ctx, pair.RefreshToken)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Tokens.AccessToken)
	})

	t.Run("rejects access token used as refresh token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, jwtSvc, zap.NewNop())

		pair, err := jwtSvc.GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID, Name: user.Name})
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, pair.AccessToken)
		assert.Error(t, err)
	})
}
