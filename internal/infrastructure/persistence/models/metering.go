package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/usagetrack/backend/internal/domain/metering"
)

// UsageTypeModel is the persistence model for the UsageType catalog entry.
type UsageTypeModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Unit      string    `gorm:"type:varchar(50);not null"`
	Factor    float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UsageTypeModel) TableName() string {
	return "usage_types"
}

// ToDomain converts the persistence model to a domain UsageType.
func (m *UsageTypeModel) ToDomain() *metering.UsageType {
	return &metering.UsageType{
		ID:        m.ID,
		Name:      m.Name,
		Unit:      m.Unit,
		Factor:    m.Factor,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain UsageType.
func (m *UsageTypeModel) FromDomain(t *metering.UsageType) {
	m.ID = t.ID
	m.Name = t.Name
	m.Unit = t.Unit
	m.Factor = t.Factor
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
}

// UsageTypeModelFromDomain creates a new persistence model from a domain UsageType.
func UsageTypeModelFromDomain(t *metering.UsageType) *UsageTypeModel {
	m := &UsageTypeModel{}
	m.FromDomain(t)
	return m
}

// UsageModel is the persistence model for the Usage record. Records
// follow their owner (CASCADE) but hold their catalog entry in place
// (RESTRICT).
type UsageModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	UsageTypeID int64     `gorm:"not null;index"`
	UsageAt     time.Time `gorm:"not null;index"`
	Amount      float64   `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	User      *UserModel      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	UsageType *UsageTypeModel `gorm:"foreignKey:UsageTypeID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (UsageModel) TableName() string {
	return "usages"
}

// ToDomain converts the persistence model to a domain Usage record.
// Preloaded owner and type associations become read-side joins.
func (m *UsageModel) ToDomain() *metering.Usage {
	usage := &metering.Usage{
		ID:          m.ID,
		UserID:      m.UserID,
		UsageTypeID: m.UsageTypeID,
		UsageAt:     m.UsageAt,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.User != nil {
		usage.OwnerName = m.User.Name
	}
	if m.UsageType != nil {
		usage.Type = m.UsageType.ToDomain()
	}
	return usage
}

// FromDomain populates the persistence model from a domain Usage record.
func (m *UsageModel) FromDomain(u *metering.Usage) {
	m.ID = u.ID
	m.UserID = u.UserID
	m.UsageTypeID = u.UsageTypeID
	m.UsageAt = u.UsageAt
	m.Amount = u.Amount
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}

// UsageModelFromDomain creates a new persistence model from a domain Usage record.
func UsageModelFromDomain(u *metering.Usage) *UsageModel {
	m := &UsageModel{}
	m.FromDomain(u)
	return m
}
