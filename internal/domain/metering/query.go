package metering

import (
	"time"

	"github.com/usagetrack/backend/internal/domain/shared"
)

// Sort directions accepted by usage queries
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// usageSortFields is the allow-list of fields a usage query may order
// by. Anything outside this set is rejected, never silently defaulted.
var usageSortFields = map[string]bool{
	"id":            true,
	"usage_at":      true,
	"amount":        true,
	"usage_type_id": true,
}

// UsageQuery describes the window, ordering and page of a usage
// listing. The date range is inclusive on both ends.
type UsageQuery struct {
	StartDate time.Time
	EndDate   time.Time
	OrderBy   string
	Order     string
	Limit     int
	Offset    int
}

// DefaultUsageQuery returns a query spanning all of history up to now,
// ordered by record ID ascending.
func DefaultUsageQuery() UsageQuery {
	return UsageQuery{
		StartDate: time.Unix(0, 0).UTC(),
		EndDate:   time.Now().UTC(),
		OrderBy:   "id",
		Order:     OrderAsc,
		Limit:     20,
		Offset:    0,
	}
}

// Validate checks the query against the sort allow-list and direction set
func (q UsageQuery) Validate() error {
	if !usageSortFields[q.OrderBy] {
		return shared.NewDomainError("INVALID_ORDER_BY", "Cannot order by field: "+q.OrderBy)
	}
	if q.Order != OrderAsc && q.Order != OrderDesc {
		return shared.NewDomainError("INVALID_ORDER", "Order must be asc or desc")
	}
	if q.Limit <= 0 {
		return shared.NewDomainError("INVALID_LIMIT", "Limit must be positive")
	}
	if q.Offset < 0 {
		return shared.NewDomainError("INVALID_OFFSET", "Offset cannot be negative")
	}
	return nil
}

// IsValidSortField reports whether a field may be used for ordering
func IsValidSortField(field string) bool {
	return usageSortFields[field]
}
