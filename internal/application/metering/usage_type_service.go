package metering

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/usagetrack/backend/internal/domain/identity"
	"github.com/usagetrack/backend/internal/domain/metering"
	"github.com/usagetrack/backend/internal/domain/shared"
)

// UsageTypeService handles the usage type catalog. Reads are open to
// any authenticated caller; writes are admin-only.
type UsageTypeService struct {
	typeRepo metering.UsageTypeRepository
	logger   *zap.Logger
}

// NewUsageTypeService creates a new usage type service
func NewUsageTypeService(typeRepo metering.UsageTypeRepository, logger *zap.Logger) *UsageTypeService {
	return &UsageTypeService{
		typeRepo: typeRepo,
		logger:   logger,
	}
}

// UsageTypeInput contains input for creating or updating a usage type
type UsageTypeInput struct {
	Name   string
	Unit   string
	Factor float64
}

// UsageTypeDTO represents a usage type catalog entry
type UsageTypeDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Factor    float64   `json:"factor"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UsageTypeListResult represents a paginated usage type list
type UsageTypeListResult struct {
	Types  []UsageTypeDTO
	Total  int64
	Limit  int
	Offset int
}

func toUsageTypeDTO(t *metering.UsageType) UsageTypeDTO {
	return UsageTypeDTO{
		ID:        t.ID,
		Name:      t.Name,
		Unit:      t.Unit,
		Factor:    t.Factor,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// Get returns a single usage type
func (s *UsageTypeService) Get(ctx context.Context, id int64) (*UsageTypeDTO, error) {
	usageType, err := s.typeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toUsageTypeDTO(usageType)
	return &dto, nil
}

// List returns usage types with pagination
func (s *UsageTypeService) List(ctx context.Context, orderBy, order string, limit, offset int) (*UsageTypeListResult, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	types, total, err := s.typeRepo.FindAll(ctx, orderBy, order, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list usage types", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list usage types")
	}

	dtos := make([]UsageTypeDTO, len(types))
	for i, t := range types {
		dtos[i] = toUsageTypeDTO(t)
	}
	return &UsageTypeListResult{Types: dtos, Total: total, Limit: limit, Offset: offset}, nil
}

// Create adds a catalog entry. Admin only.
func (s *UsageTypeService) Create(ctx context.Context, principal identity.Principal, input UsageTypeInput) (*UsageTypeDTO, error) {
	if !principal.CanManageUsageTypes() {
		return nil, shared.ErrForbidden
	}

	usageType, err := metering.NewUsageType(input.Name, input.Unit, input.Factor)
	if err != nil {
		return nil, err
	}

	if err := s.typeRepo.Create(ctx, usageType); err != nil {
		s.logger.Error("Failed to create usage type", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create usage type")
	}

	s.logger.Info("Usage type created",
		zap.Int64("usage_type_id", usageType.ID),
		zap.String("name", usageType.Name))

	dto := toUsageTypeDTO(usageType)
	return &dto, nil
}

// Update modifies a catalog entry. Admin only.
func (s *UsageTypeService) Update(ctx context.Context, principal identity.Principal, id int64, input UsageTypeInput) (*UsageTypeDTO, error) {
	if !principal.CanManageUsageTypes() {
		return nil, shared.ErrForbidden
	}

	usageType, err := s.typeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := usageType.UpdateDetails(input.Name, input.Unit, input.Factor); err != nil {
		return nil, err
	}

	if err := s.typeRepo.Update(ctx, usageType); err != nil {
		s.logger.Error("Failed to update usage type", zap.Error(err))
		return nil, err
	}

	dto := toUsageTypeDTO(usageType)
	return &dto, nil
}

// Delete removes a catalog entry. Admin only. Types still referenced
// by usage records are kept and the conflict is reported.
func (s *UsageTypeService) Delete(ctx context.Context, principal identity.Principal, id int64) error {
	if !principal.CanManageUsageTypes() {
		return shared.ErrForbidden
	}

	if err := s.typeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Usage type deleted",
		zap.Int64("usage_type_id", id),
		zap.String("deleted_by", principal.UserID.String()))
	return nil
}
