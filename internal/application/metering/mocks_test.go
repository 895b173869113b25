package metering

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/usagetrack/backend/internal/domain/identity"
	"github.com/usagetrack/backend/internal/domain/metering"
)

type MockUsageRepository struct {
	mock.Mock
}

func (m *MockUsageRepository) Create(ctx context.Context, usage *metering.Usage) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

func (m *MockUsageRepository) Update(ctx context.Context, usage *metering.Usage) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

func (m *MockUsageRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsageRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsageRepository) FindByID(ctx context.Context, id int64) (*metering.Usage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metering.Usage), args.Error(1)
}

func (m *MockUsageRepository) FindByUser(ctx context.Context, userID uuid.UUID, query metering.UsageQuery) ([]*metering.Usage, int64, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*metering.Usage), args.Get(1).(int64), args.Error(2)
}

func (m *MockUsageRepository) CountByType(ctx context.Context, usageTypeID int64) (int64, error) {
	args := m.Called(ctx, usageTypeID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUsageTypeRepository struct {
	mock.Mock
}

func (m *MockUsageTypeRepository) Create(ctx context.Context, usageType *metering.UsageType) error {
	args := m.Called(ctx, usageType)
	return args.Error(0)
}

func (m *MockUsageTypeRepository) Update(ctx context.Context, usageType *metering.UsageType) error {
	args := m.Called(ctx, usageType)
	return args.Error(0)
}

func (m *MockUsageTypeRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsageTypeRepository) FindByID(ctx context.Context, id int64) (*metering.UsageType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metering.UsageType), args.Error(1)
}

func (m *MockUsageTypeRepository) FindAll(ctx context.Context, orderBy, order string, limit, offset int) ([]*metering.UsageType, int64, error) {
	args := m.Called(ctx, orderBy, order, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*metering.UsageType), args.Get(1).(int64), args.Error(2)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByName(ctx context.Context, name string) (*identity.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, orderBy, order string, limit, offset int) ([]*identity.User, int64, error) {
	args := m.Called(ctx, orderBy, order, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}
