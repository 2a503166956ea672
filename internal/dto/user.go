// Package dto holds the wire shapes shared by the panel client and the
// directory service.
package dto

import "github.com/undiziwa/userpanel/internal/models"

// PermissionUpdateRequest is the body of PUT /api/users/{id}/permission.
type PermissionUpdateRequest struct {
	Role     models.UserRole `json:"role" validate:"required"`
	IsActive bool            `json:"is_active"`
}

// CreateUserRequest is the body of POST /api/users. The panel validates
// required fields locally before the request leaves the client; role
// membership and email format are enforced server-side.
type CreateUserRequest struct {
	Username      string          `json:"username" validate:"required"`
	FullName      string          `json:"full_name,omitempty"`
	Email         string          `json:"email" validate:"required"`
	Phone         string          `json:"phone,omitempty"`
	Password      string          `json:"password" validate:"required"`
	Role          models.UserRole `json:"role" validate:"required"`
	IsActive      bool            `json:"is_active"`
	InstitutionID *int64          `json:"institution_id,omitempty"`
}

// ResetPasswordConfirmRequest is the body of POST /api/reset-password/confirm:
// the token from a reset or invite mail plus the user's chosen password.
type ResetPasswordConfirmRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserListResponse is the envelope returned by GET /api/users.
type UserListResponse struct {
	Users   []models.User `json:"users"`
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
	Pages   int           `json:"pages"`
}

// ErrorResponse is the failure body; Message is human readable.
type ErrorResponse struct {
	Message string `json:"message"`
}
