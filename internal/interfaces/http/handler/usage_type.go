package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	meteringapp "github.com/usagetrack/backend/internal/application/metering"
	"github.com/usagetrack/backend/internal/interfaces/http/dto"
	"github.com/usagetrack/backend/internal/interfaces/http/middleware"
)

// UsageTypeHandler handles the usage type catalog endpoints
type UsageTypeHandler struct {
	BaseHandler
	typeService *meteringapp.UsageTypeService
}

// NewUsageTypeHandler creates a new UsageTypeHandler
func NewUsageTypeHandler(typeService *meteringapp.UsageTypeService) *UsageTypeHandler {
	return &UsageTypeHandler{
		typeService: typeService,
	}
}

// UsageTypeRequest represents a request to create or update a usage type
type UsageTypeRequest struct {
	Name   string  `json:"name" binding:"required,min=1,max=200"`
	Unit   string  `json:"unit" binding:"required,min=1,max=50"`
	Factor float64 `json:"factor"`
}

// parseUsageTypeID parses the :usage_type_id path parameter
func parseUsageTypeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("usage_type_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// List returns the usage type catalog
func (h *UsageTypeHandler) List(c *gin.Context) {
	limit, offset, ok := parseLimitOffset(c)
	if !ok {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.typeService.List(c.Request.Context(), c.Query("orderby"), c.Query("order"), limit, offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewPage(c.Request.URL, result.Types, result.Total, result.Limit, result.Offset))
}

// Get returns a single usage type
func (h *UsageTypeHandler) Get(c *gin.Context) {
	typeID, ok := parseUsageTypeID(c)
	if !ok {
		h.BadRequest(c, "Invalid usage type ID")
		return
	}

	usageType, err := h.typeService.Get(c.Request.Context(), typeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, usageType)
}

// Create adds a catalog entry. Admin only.
func (h *UsageTypeHandler) Create(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req UsageTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	usageType, err := h.typeService.Create(c.Request.Context(), principal, meteringapp.UsageTypeInput{
		Name:   req.Name,
		Unit:   req.Unit,
		Factor: req.Factor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, usageType)
}

// Update modifies a catalog entry. Admin only.
func (h *UsageTypeHandler) Update(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	typeID, ok := parseUsageTypeID(c)
	if !ok {
		h.BadRequest(c, "Invalid usage type ID")
		return
	}

	var req UsageTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	usageType, err := h.typeService.Update(c.Request.Context(), principal, typeID, meteringapp.UsageTypeInput{
		Name:   req.Name,
		Unit:   req.Unit,
		Factor: req.Factor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, usageType)
}

// Delete removes a catalog entry. Admin only; referenced types conflict.
func (h *UsageTypeHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	typeID, ok := parseUsageTypeID(c)
	if !ok {
		h.BadRequest(c, "Invalid usage type ID")
		return
	}

	if err := h.typeService.Delete(c.Request.Context(), principal, typeID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": fmt.Sprintf("Usage type %d has been deleted", typeID)})
}

// RegisterRoutes registers usage type routes
func (h *UsageTypeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/usage_types/", h.List)
	rg.POST("/usage_types/", h.Create)
	rg.GET("/usage_type/:usage_type_id", h.Get)
	rg.PUT("/usage_type/:usage_type_id", h.Update)
	rg.DELETE("/usage_type/:usage_type_id", h.Delete)
}
