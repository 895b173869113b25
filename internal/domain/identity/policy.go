package identity

import "github.com/google/uuid"

// Principal carries the identity of an authenticated caller as
// established by the transport layer.
type Principal struct {
	UserID      uuid.UUID
	Name        string
	IsStaff     bool
	IsSuperuser bool
}

// IsAdmin reports whether the principal holds either admin flag
func (p Principal) IsAdmin() bool {
	return p.IsStaff || p.IsSuperuser
}

// CanAccessOwned decides whether the principal may read or modify a
// resource owned by ownerID. Owners always may; admins may for anyone.
func (p Principal) CanAccessOwned(ownerID uuid.UUID) bool {
	return p.IsAdmin() || p.UserID == ownerID
}

// CanManageUsageTypes decides whether the principal may create,
// update or delete usage type catalog entries.
func (p Principal) CanManageUsageTypes() bool {
	return p.IsAdmin()
}

// CanListUsers decides whether the principal may enumerate all accounts
func (p Principal) CanListUsers() bool {
	return p.IsAdmin()
}
