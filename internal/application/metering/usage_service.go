package metering

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/usagetrack/backend/internal/domain/identity"
	"github.com/usagetrack/backend/internal/domain/metering"
	"github.com/usagetrack/backend/internal/domain/shared"
)

// UsageService handles usage records. Every operation is scoped to an
// owning user; callers reach other users' records only as admins.
type UsageService struct {
	usageRepo metering.UsageRepository
	typeRepo  metering.UsageTypeRepository
	userRepo  identity.UserRepository
	logger    *zap.Logger
}

// NewUsageService creates a new usage service
func NewUsageService(
	usageRepo metering.UsageRepository,
	typeRepo metering.UsageTypeRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *UsageService {
	return &UsageService{
		usageRepo: usageRepo,
		typeRepo:  typeRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// UsageInput contains input for creating or updating a usage record.
// UserID is the optional body owner; when set it must match the path owner.
type UsageInput struct {
	UserID      *uuid.UUID
	UsageTypeID int64
	UsageAt     time.Time
	Amount      float64
}

// UsageOwnerDTO is the owner reference nested in a usage response
type UsageOwnerDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UsageDetailDTO combines the catalog fields of the record's type with
// the record's own timestamp and amount
type UsageDetailDTO struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Unit    string    `json:"unit"`
	Factor  float64   `json:"factor"`
	UsageAt time.Time `json:"usage_at"`
	Amount  float64   `json:"amount"`
}

// UsageDTO represents a usage record with its owner and type expanded
type UsageDTO struct {
	ID    int64          `json:"id"`
	User  UsageOwnerDTO  `json:"user"`
	Usage UsageDetailDTO `json:"usage"`
}

// UsageListResult represents a filtered, paginated usage list
type UsageListResult struct {
	Usages []UsageDTO
	Total  int64
	Limit  int
	Offset int
}

// BulkDeleteResult reports how many records a bulk delete removed
type BulkDeleteResult struct {
	Deleted int64 `json:"deleted"`
}

func toUsageDTO(u *metering.Usage) UsageDTO {
	dto := UsageDTO{
		ID: u.ID,
		User: UsageOwnerDTO{
			ID:   u.UserID,
			Name: u.OwnerName,
		},
		Usage: UsageDetailDTO{
			UsageAt: u.UsageAt,
			Amount:  u.Amount,
		},
	}
	if u.Type != nil {
		dto.Usage.ID = u.Type.ID
		dto.Usage.Name = u.Type.Name
		dto.Usage.Unit = u.Type.Unit
		dto.Usage.Factor = u.Type.Factor
	}
	return dto
}

// checkOwnerAccess verifies the caller may act on ownerID's records and
// that the owner actually exists.
func (s *UsageService) checkOwnerAccess(ctx context.Context, principal identity.Principal, ownerID uuid.UUID) error {
	if !principal.CanAccessOwned(ownerID) {
		return shared.ErrForbidden
	}
	if _, err := s.userRepo.FindByID(ctx, ownerID); err != nil {
		return err
	}
	return nil
}

// List returns the owner's usage records matching the query
func (s *UsageService) List(ctx context.Context, principal identity.Principal, ownerID uuid.UUID, query metering.UsageQuery) (*UsageListResult, error) {
	if err := s.checkOwnerAccess(ctx, principal, ownerID); err != nil {
		return nil, err
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	usages, total, err := s.usageRepo.FindByUser(ctx, ownerID, query)
	if err != nil {
		s.logger.Error("Failed to list usage records", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list usage records")
	}

	dtos := make([]UsageDTO, len(usages))
	for i, u := range usages {
		dtos[i] = toUsageDTO(u)
	}
	return &UsageListResult{Usages: dtos, Total: total, Limit: query.Limit, Offset: query.Offset}, nil
}

// Get returns a single usage record under the owner's scope. Records
// owned by someone else are not visible under this path.
func (s *UsageService) Get(ctx context.Context, principal identity.Principal, ownerID uuid.UUID, usageID int64) (*UsageDTO, error) {
	if err := s.checkOwnerAccess(ctx, principal, ownerID); err != nil {
		return nil, err
	}

	usage, err := s.usageRepo.FindByID(ctx, usageID)
	if err != nil {
		return nil, err
	}
	if usage.UserID != ownerID {
		return nil, shared.ErrNotFound
	}

	dto := toUsageDTO(usage)
	return &dto, nil
}

// Create records a new usage entry for the owner
func (s *UsageService) Create(ctx context.Context, principal identity.Principal, ownerID uuid.UUID, input UsageInput) (*UsageDTO, error) {
	if input.UserID != nil && *input.UserID != ownerID {
		return nil, shared.ErrForbidden
	}
	if err := s.checkOwnerAccess(ctx, principal, ownerID); err != nil {
		return nil, err
	}

	if _, err := s.typeRepo.FindByID(ctx, input.UsageTypeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USAGE_TYPE_NOT_FOUND", "Unknown usage type")
		}
		return nil, err
	}

	usage, err := metering.NewUsage(ownerID, input.UsageTypeID, input.UsageAt, input.Amount)
	if err != nil {
		return nil, err
	}

	if err := s.usageRepo.Create(ctx, usage); err != nil {
		s.logger.Error("Failed to create usage record", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create usage record")
	}

	// Reload for the owner and type joins
	created, err := s.usageRepo.FindByID(ctx, usage.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Usage recorded",
		zap.Int64("usage_id", created.ID),
		zap.String("user_id", ownerID.String()),
		zap.Int64("usage_type_id", created.UsageTypeID))

	dto := toUsageDTO(created)
	return &dto, nil
}

// Update modifies a usage record under the owner's scope
func (s *UsageService) Update(ctx context.Context, principal identity.Principal, ownerID uuid.UUID, usageID int64, input UsageInput) (*UsageDTO, error) {
	if input.UserID != nil && *input.UserID != ownerID {
		return nil, shared.ErrForbidden
	}
	if err := s.checkOwnerAccess(ctx, principal, ownerID); err != nil {
		return nil, err
	}

	usage, err := s.usageRepo.FindByID(ctx, usageID)
	if err != nil {
		return nil, err
	}
	if usage.UserID != ownerID {
		return nil, shared.ErrNotFound
	}

	if _, err := s.typeRepo.FindByID(ctx, input.UsageTypeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USAGE_TYPE_NOT_FOUND", "Unknown usage type")
		}
		return nil, err
	}

	if err := usage.UpdateRecord(input.UsageTypeID, input.UsageAt, input.Amount); err != nil {
		return nil, err
	}

	if err := s.usageRepo.Update(ctx, usage); err != nil {
		s.logger.Error("Failed to update usage record", zap.Error(err))
		return nil, err
	}

	updated, err := s.usageRepo.FindByID(ctx, usage.ID)
	if err != nil {
		return nil, err
	}

	dto := toUsageDTO(updated)
	return &dto, nil
}

// Delete removes a single usage record under the owner's scope
func (s *UsageService) Delete(ctx context.Context, principal identity.Principal, ownerID uuid.UUID, usageID int64) error {
	if err := s.checkOwnerAccess(ctx, principal, ownerID); err != nil {
		return err
	}

	usage, err := s.usageRepo.FindByID(ctx, usageID)
	if err != nil {
		return err
	}
	if usage.UserID != ownerID {
		return shared.ErrNotFound
	}

	return s.usageRepo.Delete(ctx, usageID)
}

// DeleteAll removes every usage record the owner has and reports the count
func (s *UsageService) DeleteAll(ctx context.Context, principal identity.Principal, ownerID uuid.UUID) (*BulkDeleteResult, error) {
	if err := s.checkOwnerAccess(ctx, principal, ownerID); err != nil {
		return nil, err
	}

	deleted, err := s.usageRepo.DeleteByUser(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to bulk delete usage records", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to delete usage records")
	}

	s.logger.Info("Usage records bulk deleted",
		zap.String("user_id", ownerID.String()),
		zap.Int64("deleted", deleted))

	return &BulkDeleteResult{Deleted: deleted}, nil
}
