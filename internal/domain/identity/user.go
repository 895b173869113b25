package identity

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/usagetrack/backend/internal/domain/shared"
)

// Password cost for bcrypt
const bcryptCost = 12

const (
	minNameLength     = 3
	maxNameLength     = 150
	minPasswordLength = 8
	maxPasswordLength = 128
)

// User is the aggregate root for account operations. Name is unique
// across the system and doubles as the login identifier.
type User struct {
	shared.BaseEntity
	Name         string
	PasswordHash string
	IsStaff      bool
	IsSuperuser  bool
}

// NewUser creates a new regular user with a hashed password
func NewUser(name, password string) (*User, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         strings.TrimSpace(name),
		PasswordHash: passwordHash,
	}, nil
}

// NewSuperuser creates a user carrying both admin flags
func NewSuperuser(name, password string) (*User, error) {
	user, err := NewUser(name, password)
	if err != nil {
		return nil, err
	}

	user.IsStaff = true
	user.IsSuperuser = true
	return user, nil
}

// Rename changes the user's name
func (u *User) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	u.Name = strings.TrimSpace(name)
	u.UpdatedAt = time.Now()
	return nil
}

// SetPassword replaces the password hash
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// IsAdmin reports whether the user holds either admin flag.
// A superuser always counts as staff for authorization purposes.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) < minNameLength {
		return shared.NewDomainError("INVALID_NAME", "Name must be at least 3 characters")
	}
	if len(name) > maxNameLength {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 150 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > maxPasswordLength {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
