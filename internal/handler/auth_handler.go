package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/undiziwa/userpanel/internal/dto"
	"github.com/undiziwa/userpanel/internal/service"
	appErrors "github.com/undiziwa/userpanel/pkg/errors"
	"github.com/undiziwa/userpanel/pkg/response"
)

// AuthHandler wires the login endpoint to the auth service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Kind, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}
