package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/usagetrack/backend/internal/domain/identity"
	"github.com/usagetrack/backend/internal/domain/shared"
)

// UserService handles user management operations
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// UpdateUserInput contains input for updating a user
type UpdateUserInput struct {
	ID   uuid.UUID
	Name string
}

// UserDTO represents user data transfer object
type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListResult represents a paginated user list
type UserListResult struct {
	Users  []UserDTO
	Total  int64
	Limit  int
	Offset int
}

func toUserDTO(u *identity.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// Get returns a single user. Callers may read themselves; admins anyone.
func (s *UserService) Get(ctx context.Context, principal identity.Principal, id uuid.UUID) (*UserDTO, error) {
	if !principal.CanAccessOwned(id) {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// List returns all users. Admin only.
func (s *UserService) List(ctx context.Context, principal identity.Principal, orderBy, order string, limit, offset int) (*UserListResult, error) {
	if !principal.CanListUsers() {
		return nil, shared.ErrForbidden
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, total, err := s.userRepo.FindAll(ctx, orderBy, order, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	return &UserListResult{Users: dtos, Total: total, Limit: limit, Offset: offset}, nil
}

// Update renames a user. Callers may rename themselves; admins anyone.
func (s *UserService) Update(ctx context.Context, principal identity.Principal, input UpdateUserInput) (*UserDTO, error) {
	if !principal.CanAccessOwned(input.ID) {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != user.Name {
		exists, err := s.userRepo.ExistsByName(ctx, input.Name)
		if err != nil {
			s.logger.Error("Failed to check name existence", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check name availability")
		}
		if exists {
			return nil, shared.NewDomainError("NAME_EXISTS", "A user with this name already exists")
		}
	}

	if err := user.Rename(input.Name); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, err
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// Delete removes a user along with all owned usage records.
// Callers may delete themselves; admins anyone.
func (s *UserService) Delete(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	if !principal.CanAccessOwned(id) {
		return shared.ErrForbidden
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User deleted",
		zap.String("user_id", id.String()),
		zap.String("deleted_by", principal.UserID.String()))
	return nil
}
