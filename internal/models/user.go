package models

import "time"

// UserRole represents the closed set of account roles.
type UserRole string

const (
	RoleSuperAdmin       UserRole = "super_admin"
	RoleGovAdmin         UserRole = "gov_admin"
	RoleInstitutionAdmin UserRole = "institution_admin"
	RoleHR               UserRole = "hr"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleGovAdmin, RoleInstitutionAdmin, RoleHR:
		return true
	}
	return false
}

// CanManageUsers reports whether accounts with this role see the
// per-row manage control and the create-user entry point.
func (r UserRole) CanManageUsers() bool {
	return r == RoleSuperAdmin || r == RoleGovAdmin
}

// User represents one directory account.
type User struct {
	UserID        int64     `db:"user_id" json:"user_id"`
	Username      string    `db:"username" json:"username"`
	FullName      string    `db:"full_name" json:"full_name,omitempty"`
	Email         string    `db:"email" json:"email"`
	Phone         string    `db:"phone" json:"phone,omitempty"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	Role          UserRole  `db:"role" json:"role"`
	InstitutionID *int64    `db:"institution_id" json:"institution_id,omitempty"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at,omitempty"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Search   string
	Role     *UserRole
	Active   *bool
	Page     int
	PageSize int
}
