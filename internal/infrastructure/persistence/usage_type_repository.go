package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/usagetrack/backend/internal/domain/metering"
	"github.com/usagetrack/backend/internal/domain/shared"
	"github.com/usagetrack/backend/internal/infrastructure/persistence/models"
)

// GormUsageTypeRepository implements metering.UsageTypeRepository using GORM
type GormUsageTypeRepository struct {
	db *gorm.DB
}

// NewGormUsageTypeRepository creates a new GormUsageTypeRepository
func NewGormUsageTypeRepository(db *gorm.DB) *GormUsageTypeRepository {
	return &GormUsageTypeRepository{db: db}
}

// Create persists a new usage type and assigns its ID
func (r *GormUsageTypeRepository) Create(ctx context.Context, usageType *metering.UsageType) error {
	model := models.UsageTypeModelFromDomain(usageType)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	usageType.ID = model.ID
	return nil
}

// Update updates an existing usage type
func (r *GormUsageTypeRepository) Update(ctx context.Context, usageType *metering.UsageType) error {
	model := models.UsageTypeModelFromDomain(usageType)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a usage type by ID. The check-then-delete runs in one
// transaction so a concurrent insert cannot slip between them.
func (r *GormUsageTypeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&models.UsageModel{}).
			Where("usage_type_id = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return shared.ErrUsageTypeInUse
		}

		result := tx.Delete(&models.UsageTypeModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID retrieves a usage type by ID
func (r *GormUsageTypeRepository) FindByID(ctx context.Context, id int64) (*metering.UsageType, error) {
	var model models.UsageTypeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns usage types with pagination, ordered by ID unless a
// whitelisted sort field is given
func (r *GormUsageTypeRepository) FindAll(ctx context.Context, orderBy, order string, limit, offset int) ([]*metering.UsageType, int64, error) {
	var typeModels []*models.UsageTypeModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.UsageTypeModel{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(orderBy, UsageTypeSortFields, "id")
	sortOrder := ValidateSortOrder(order)

	if err := query.
		Order(sortField + " " + sortOrder).
		Limit(limit).
		Offset(offset).
		Find(&typeModels).Error; err != nil {
		return nil, 0, err
	}

	types := make([]*metering.UsageType, len(typeModels))
	for i, m := range typeModels {
		types[i] = m.ToDomain()
	}
	return types, total, nil
}
