package metering

import (
	"time"

	"github.com/google/uuid"

	"github.com/usagetrack/backend/internal/domain/shared"
)

// Usage is a single metered consumption record. It belongs to exactly
// one user and references one usage type. Amount is stored as given;
// negative values are accepted (corrections, refunds).
type Usage struct {
	ID          int64
	UserID      uuid.UUID
	UsageTypeID int64
	UsageAt     time.Time
	Amount      float64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Read-side joins, populated by the repository on loads
	OwnerName string
	Type      *UsageType
}

// NewUsage creates a usage record. The ID is assigned by the store.
func NewUsage(userID uuid.UUID, usageTypeID int64, usageAt time.Time, amount float64) (*Usage, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if usageTypeID <= 0 {
		return nil, shared.NewDomainError("INVALID_USAGE_TYPE_ID", "Usage type ID must be positive")
	}
	if usageAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_USAGE_AT", "Usage timestamp cannot be empty")
	}

	now := time.Now()
	return &Usage{
		UserID:      userID,
		UsageTypeID: usageTypeID,
		UsageAt:     usageAt,
		Amount:      amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateRecord replaces the mutable fields of the record
func (u *Usage) UpdateRecord(usageTypeID int64, usageAt time.Time, amount float64) error {
	if usageTypeID <= 0 {
		return shared.NewDomainError("INVALID_USAGE_TYPE_ID", "Usage type ID must be positive")
	}
	if usageAt.IsZero() {
		return shared.NewDomainError("INVALID_USAGE_AT", "Usage timestamp cannot be empty")
	}

	u.UsageTypeID = usageTypeID
	u.UsageAt = usageAt
	u.Amount = amount
	u.UpdatedAt = time.Now()
	return nil
}

// NormalizedAmount applies the type's conversion factor. Zero when the
// type reference has not been loaded.
func (u *Usage) NormalizedAmount() float64 {
	if u.Type == nil {
		return 0
	}
	return u.Amount * u.Type.Factor
}
