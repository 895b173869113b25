package metering

import (
	"strings"
	"time"

	"github.com/usagetrack/backend/internal/domain/shared"
)

const (
	maxTypeNameLength = 200
	maxUnitLength     = 50
)

// UsageType is a catalog entry describing a metered resource: what it
// is called, the unit it is measured in, and a conversion factor
// applied when normalizing amounts. Factor carries no sign or range
// restriction.
type UsageType struct {
	ID        int64
	Name      string
	Unit      string
	Factor    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUsageType creates a catalog entry. The ID is assigned by the store.
func NewUsageType(name, unit string, factor float64) (*UsageType, error) {
	if err := validateTypeName(name); err != nil {
		return nil, err
	}
	if err := validateUnit(unit); err != nil {
		return nil, err
	}

	now := time.Now()
	return &UsageType{
		Name:      strings.TrimSpace(name),
		Unit:      strings.TrimSpace(unit),
		Factor:    factor,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateDetails replaces name, unit and factor in one step
func (t *UsageType) UpdateDetails(name, unit string, factor float64) error {
	if err := validateTypeName(name); err != nil {
		return err
	}
	if err := validateUnit(unit); err != nil {
		return err
	}

	t.Name = strings.TrimSpace(name)
	t.Unit = strings.TrimSpace(unit)
	t.Factor = factor
	t.UpdatedAt = time.Now()
	return nil
}

func validateTypeName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > maxTypeNameLength {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validateUnit(unit string) error {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if len(unit) > maxUnitLength {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot exceed 50 characters")
	}
	return nil
}
