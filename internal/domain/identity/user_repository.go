package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// Delete deletes a user by ID along with all owned usage records
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByName finds a user by name
	FindByName(ctx context.Context, name string) (*User, error)

	// FindAll returns users with pagination, sorted by the given field
	// and direction. Unknown fields fall back to the store's default.
	FindAll(ctx context.Context, orderBy, order string, limit, offset int) ([]*User, int64, error)

	// ExistsByName checks if a name is already taken
	ExistsByName(ctx context.Context, name string) (bool, error)
}
