package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/usagetrack/backend/internal/domain/identity"
	"github.com/usagetrack/backend/internal/domain/shared"
	"github.com/usagetrack/backend/internal/infrastructure/auth"
)

// AuthService handles registration and login
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// RegisterInput contains input for registering a user
type RegisterInput struct {
	Name     string
	Password string
}

// LoginInput contains credentials for logging in
type LoginInput struct {
	Name     string
	Password string
}

// LoginResult contains tokens and the authenticated user
type LoginResult struct {
	Tokens *auth.TokenPair `json:"tokens"`
	User   UserDTO         `json:"user"`
}

// Register creates a new account
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserDTO, error) {
	exists, err := s.userRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		s.logger.Error("Failed to check name existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check name availability")
	}
	if exists {
		return nil, shared.NewDomainError("NAME_EXISTS", "A user with this name already exists")
	}

	user, err := identity.NewUser(input.Name, input.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("name", user.Name))

	dto := toUserDTO(user)
	return &dto, nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByName(ctx, input.Name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid name or password")
		}
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to look up user")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Failed login attempt", zap.String("name", input.Name))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid name or password")
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      user.ID,
		Name:        user.Name,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	})
	if err != nil {
		s.logger.Error("Failed to generate tokens", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate tokens")
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &LoginResult{
		Tokens: tokens,
		User:   toUserDTO(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
	}

	userID, err := claims.GetUserID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
		}
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to look up user")
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      user.ID,
		Name:        user.Name,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	})
	if err != nil {
		s.logger.Error("Failed to generate tokens", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate tokens")
	}

	return &LoginResult{
		Tokens: tokens,
		User:   toUserDTO(user),
	}, nil
}
