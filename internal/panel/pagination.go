package panel

import "github.com/undiziwa/userpanel/internal/models"

// TotalPages returns ceil(n/pageSize) with a minimum of one page, so an
// empty result set still renders as "page 1 of 1".
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (n + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// PageSlice returns the bounds-clipped window of users for a 1-indexed
// page.
func PageSlice(users []models.User, page, pageSize int) []models.User {
	if pageSize <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(users) {
		return nil
	}
	end := start + pageSize
	if end > len(users) {
		end = len(users)
	}
	return users[start:end]
}
