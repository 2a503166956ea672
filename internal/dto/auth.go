package dto

import "github.com/undiziwa/userpanel/internal/models"

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token and the authenticated account,
// which supplies the panel's viewer context.
type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}
