package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/undiziwa/userpanel/internal/dto"
	"github.com/undiziwa/userpanel/internal/middleware"
	"github.com/undiziwa/userpanel/internal/models"
	"github.com/undiziwa/userpanel/internal/service"
	appErrors "github.com/undiziwa/userpanel/pkg/errors"
	"github.com/undiziwa/userpanel/pkg/response"
)

// UserHandler wires the directory endpoints consumed by the panel.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// List handles GET /api/users.
func (h *UserHandler) List(c *gin.Context) {
	var filter models.UserFilter

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("per_page", "10")); err == nil {
		filter.PageSize = size
	}

	filter.Search = c.Query("search")

	if role := c.Query("role"); role != "" {
		r := models.UserRole(role)
		filter.Role = &r
	}
	if active := c.Query("is_active"); active != "" {
		if val, err := strconv.ParseBool(active); err == nil {
			filter.Active = &val
		}
	}

	res, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// Create handles POST /api/users; the success body is the full new user
// record including the server-assigned user_id.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Kind, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	user, err := h.service.Create(c.Request.Context(), req, actorName(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, user)
}

// UpdatePermission handles PUT /api/users/:id/permission; the success
// body is the full updated user record.
func (h *UserHandler) UpdatePermission(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid user id"))
		return
	}

	var req dto.PermissionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Kind, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	user, err := h.service.UpdatePermission(c.Request.Context(), id, req, actorName(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, user)
}

// ResetPassword handles PATCH /api/users/:id/reset-password; success is
// indicated by the response status alone.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid user id"))
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), id, actorName(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"msg": "Reset email sent"})
}

// ConfirmPasswordReset handles POST /api/reset-password/confirm, the
// unauthenticated destination of invite and reset mails.
func (h *UserHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.ResetPasswordConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Kind, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.service.ConfirmPasswordReset(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"msg": "Password reset successful"})
}

func actorName(c *gin.Context) string {
	if claimsValue, ok := c.Get(middleware.ContextUserKey); ok {
		if claims, ok := claimsValue.(*models.JWTClaims); ok {
			return claims.Username
		}
	}
	return ""
}
