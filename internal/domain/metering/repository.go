package metering

import (
	"context"

	"github.com/google/uuid"
)

// UsageRepository defines the interface for persisting and querying usage records
type UsageRepository interface {
	// Create persists a new usage record and assigns its ID
	Create(ctx context.Context, usage *Usage) error

	// Update updates an existing usage record
	Update(ctx context.Context, usage *Usage) error

	// Delete deletes a usage record by ID
	Delete(ctx context.Context, id int64) error

	// DeleteByUser deletes all usage records owned by a user and
	// returns how many were removed
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// FindByID retrieves a usage record with its owner and type loaded
	FindByID(ctx context.Context, id int64) (*Usage, error)

	// FindByUser retrieves a user's usage records matching the query,
	// with owner and type loaded, plus the total count before paging
	FindByUser(ctx context.Context, userID uuid.UUID, query UsageQuery) ([]*Usage, int64, error)

	// CountByType counts usage records referencing a usage type
	CountByType(ctx context.Context, usageTypeID int64) (int64, error)
}

// UsageTypeRepository defines the interface for the usage type catalog
type UsageTypeRepository interface {
	// Create persists a new usage type and assigns its ID
	Create(ctx context.Context, usageType *UsageType) error

	// Update updates an existing usage type
	Update(ctx context.Context, usageType *UsageType) error

	// Delete deletes a usage type by ID. Types still referenced by
	// usage records are not deleted; ErrUsageTypeInUse is returned.
	Delete(ctx context.Context, id int64) error

	// FindByID retrieves a usage type by ID
	FindByID(ctx context.Context, id int64) (*UsageType, error)

	// FindAll returns usage types with pagination, sorted by the given
	// field and direction. Unknown fields fall back to the store's default.
	FindAll(ctx context.Context, orderBy, order string, limit, offset int) ([]*UsageType, int64, error)
}
