package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/usagetrack/backend/internal/application/identity"
	"github.com/usagetrack/backend/internal/interfaces/http/dto"
	"github.com/usagetrack/backend/internal/interfaces/http/middleware"
)

// UserHandler handles user account endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UpdateUserRequest represents a request to rename a user
type UpdateUserRequest struct {
	Name string `json:"name" binding:"required,min=3,max=150"`
}

// parseUserID parses the :user_id path parameter
func parseUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// parseLimitOffset parses limit/offset query parameters with defaults
func parseLimitOffset(c *gin.Context) (limit, offset int, ok bool) {
	limit, offset = 20, 0

	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return 0, 0, false
		}
		limit = v
	}
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return 0, 0, false
		}
		offset = v
	}
	return limit, offset, true
}

// List returns all users. Admin only.
func (h *UserHandler) List(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	limit, offset, ok := parseLimitOffset(c)
	if !ok {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.userService.List(c.Request.Context(), principal, c.Query("orderby"), c.Query("order"), limit, offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewPage(c.Request.URL, result.Users, result.Total, result.Limit, result.Offset))
}

// Get returns a single user
func (h *UserHandler) Get(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	userID, ok := parseUserID(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.Get(c.Request.Context(), principal, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Update renames a user
func (h *UserHandler) Update(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	userID, ok := parseUserID(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), principal, identityapp.UpdateUserInput{
		ID:   userID,
		Name: req.Name,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Delete removes a user and all owned usage records
func (h *UserHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	userID, ok := parseUserID(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), principal, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": fmt.Sprintf("User %s has been deleted", userID)})
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user/", h.List)
	rg.GET("/user/:user_id", h.Get)
	rg.PUT("/user/:user_id", h.Update)
	rg.DELETE("/user/:user_id", h.Delete)
}
