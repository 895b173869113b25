package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	meteringapp "github.com/usagetrack/backend/internal/application/metering"
	"github.com/usagetrack/backend/internal/domain/metering"
	"github.com/usagetrack/backend/internal/interfaces/http/dto"
	"github.com/usagetrack/backend/internal/interfaces/http/middleware"
)

// UsageHandler handles per-user usage record endpoints
type UsageHandler struct {
	BaseHandler
	usageService *meteringapp.UsageService
}

// NewUsageHandler creates a new UsageHandler
func NewUsageHandler(usageService *meteringapp.UsageService) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
	}
}

// UsageRequest represents a request to create or update a usage record.
// user_id is optional; when present it must match the path owner.
type UsageRequest struct {
	UserID      *uuid.UUID `json:"user_id"`
	UsageTypeID int64      `json:"usage_type_id" binding:"required,gt=0"`
	UsageAt     time.Time  `json:"usage_at" binding:"required"`
	Amount      float64    `json:"amount"`
}

func (r UsageRequest) toInput() meteringapp.UsageInput {
	return meteringapp.UsageInput{
		UserID:      r.UserID,
		UsageTypeID: r.UsageTypeID,
		UsageAt:     r.UsageAt,
		Amount:      r.Amount,
	}
}

// parseUsageID parses the :usage_id path parameter
func parseUsageID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("usage_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseUsageQuery builds a usage query from the request's query string.
// Returns an error message for malformed date or pagination values;
// order-by validation happens downstream so the allow-list lives in one
// place.
func parseUsageQuery(c *gin.Context) (metering.UsageQuery, string) {
	query := metering.DefaultUsageQuery()

	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return query, "start_date must be an RFC3339 timestamp"
		}
		query.StartDate = t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return query, "end_date must be an RFC3339 timestamp"
		}
		query.EndDate = t
	}
	if raw := c.Query("orderby"); raw != "" {
		query.OrderBy = raw
	}
	if raw := c.Query("order"); raw != "" {
		query.Order = raw
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return query, "limit must be an integer"
		}
		query.Limit = v
	}
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return query, "offset must be an integer"
		}
		query.Offset = v
	}

	return query, ""
}

// List returns the owner's usage records matching the query filter
func (h *UsageHandler) List(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	ownerID, ok := parseUserID(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	query, errMsg := parseUsageQuery(c)
	if errMsg != "" {
		h.BadRequest(c, errMsg)
		return
	}

	result, err := h.usageService.List(c.Request.Context(), principal, ownerID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewPage(c.Request.URL, result.Usages, result.Total, result.Limit, result.Offset))
}

// Get returns a single usage record under the owner's scope
func (h *UsageHandler) Get(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	ownerID, ok := parseUserID(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	usageID, ok := parseUsageID(c)
	if !ok {
		h.BadRequest(c, "Invalid usage ID")
		return
	}

	usage, err := h.usageService.Get(c.Request.Context(), principal, ownerID, usageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, usage)
}

// Create records a new usage entry for the owner
func (h *UsageHandler) Create(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	ownerID, ok := parseUserID(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req UsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	usage, err := h.usageService.Create(c.Request.Context(), principal, ownerID, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, usage)
}

// Update modifies a usage record under the owner's scope
func (h *UsageHandler) Update(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	ownerID, ok := parseUserID(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	usageID, ok := parseUsageID(c)
	if !ok {
		h.BadRequest(c, "Invalid usage ID")
		return
	}

	var req UsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	usage, err := h.usageService.Update(c.Request.Context(), principal, ownerID, usageID, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, usage)
}

// Delete removes a single usage record under the owner's scope
func (h *UsageHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	ownerID, ok := parseUserID(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	usageID, ok := parseUsageID(c)
	if !ok {
		h.BadRequest(c, "Invalid usage ID")
		return
	}

	if err := h.usageService.Delete(c.Request.Context(), principal, ownerID, usageID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": fmt.Sprintf("Usage %d has been deleted", usageID)})
}

// DeleteAll removes every usage record the owner has
func (h *UsageHandler) DeleteAll(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	ownerID, ok := parseUserID(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	result, err := h.usageService.DeleteAll(c.Request.Context(), principal, ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers usage routes
func (h *UsageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user/:user_id/usage", h.List)
	rg.POST("/user/:user_id/usage", h.Create)
	rg.DELETE("/user/:user_id/usage", h.DeleteAll)
	rg.GET("/user/:user_id/usage/:usage_id", h.Get)
	rg.PUT("/user/:user_id/usage/:usage_id", h.Update)
	rg.DELETE("/user/:user_id/usage/:usage_id", h.Delete)
}
