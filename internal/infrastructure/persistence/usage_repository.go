package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/usagetrack/backend/internal/domain/metering"
	"github.com/usagetrack/backend/internal/domain/shared"
	"github.com/usagetrack/backend/internal/infrastructure/persistence/models"
)

// GormUsageRepository implements metering.UsageRepository using GORM
type GormUsageRepository struct {
	db *gorm.DB
}

// NewGormUsageRepository creates a new GormUsageRepository
func NewGormUsageRepository(db *gorm.DB) *GormUsageRepository {
	return &GormUsageRepository{db: db}
}

// Create persists a new usage record and assigns its ID
func (r *GormUsageRepository) Create(ctx context.Context, usage *metering.Usage) error {
	model := models.UsageModelFromDomain(usage)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	usage.ID = model.ID
	return nil
}

// Update updates an existing usage record
func (r *GormUsageRepository) Update(ctx context.Context, usage *metering.Usage) error {
	model := models.UsageModelFromDomain(usage)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a usage record by ID
func (r *GormUsageRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.UsageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByUser deletes all usage records owned by a user and returns
// how many were removed
func (r *GormUsageRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.UsageModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// FindByID retrieves a usage record with its owner and type loaded
func (r *GormUsageRepository) FindByID(ctx context.Context, id int64) (*metering.Usage, error) {
	var model models.UsageModel
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("UsageType").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser retrieves a user's usage records matching the query plus
// the total count before paging. The query is expected to be validated
// by the caller; the sort field is still checked against the allow-list.
func (r *GormUsageRepository) FindByUser(ctx context.Context, userID uuid.UUID, query metering.UsageQuery) ([]*metering.Usage, int64, error) {
	var usageModels []*models.UsageModel
	var total int64

	base := r.db.WithContext(ctx).
		Model(&models.UsageModel{}).
		Where("user_id = ?", userID).
		Where("usage_at >= ? AND usage_at <= ?", query.StartDate, query.EndDate)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(query.OrderBy, UsageSortFields, "id")
	sortOrder := ValidateSortOrder(query.Order)

	if err := base.
		Preload("User").
		Preload("UsageType").
		Order(fmt.Sprintf("%s %s", sortField, sortOrder)).
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&usageModels).Error; err != nil {
		return nil, 0, err
	}

	usages := make([]*metering.Usage, len(usageModels))
	for i, m := range usageModels {
		usages[i] = m.ToDomain()
	}
	return usages, total, nil
}

// CountByType counts usage records referencing a usage type
func (r *GormUsageRepository) CountByType(ctx context.Context, usageTypeID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UsageModel{}).
		Where("usage_type_id = ?", usageTypeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
