package panel

import (
	"strings"

	"github.com/undiziwa/userpanel/internal/models"
)

// Status filter values understood by FilterUsers; the empty string
// matches all statuses.
const (
	StatusActive   = "true"
	StatusInactive = "false"
)

// FilterUsers returns the members of users matching every active
// predicate: a case-insensitive substring match of search against
// username or email, exact role equality, and is_active equality with
// the selected status. Empty inputs match all. A fresh slice is always
// returned, never a view into users.
func FilterUsers(users []models.User, search, role, status string) []models.User {
	term := strings.ToLower(search)

	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		matchesSearch := term == "" ||
			strings.Contains(strings.ToLower(u.Username), term) ||
			strings.Contains(strings.ToLower(u.Email), term)
		matchesRole := role == "" || string(u.Role) == role
		matchesStatus := status == "" || u.IsActive == (status == StatusActive)

		if matchesSearch && matchesRole && matchesStatus {
			filtered = append(filtered, u)
		}
	}
	return filtered
}
