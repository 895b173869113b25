package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/usagetrack/backend/internal/domain/identity"
	"github.com/usagetrack/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(150);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	IsStaff      bool      `gorm:"not null;default:false"`
	IsSuperuser  bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		IsStaff:      m.IsStaff,
		IsSuperuser:  m.IsSuperuser,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.ID = u.ID
	m.Name = u.Name
	m.PasswordHash = u.PasswordHash
	m.IsStaff = u.IsStaff
	m.IsSuperuser = u.IsSuperuser
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
