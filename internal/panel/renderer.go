package panel

import (
	"strings"

	"github.com/undiziwa/userpanel/internal/models"
)

// Renderer projects the visible slice of the directory into the
// rendering target. The manage control is present on every row exactly
// when the viewer's role is privileged; the column is empty otherwise.
type Renderer struct {
	view       View
	viewerRole models.UserRole
}

// NewRenderer creates a Renderer painting through view for a viewer with
// the given role.
func NewRenderer(view View, viewerRole models.UserRole) *Renderer {
	return &Renderer{view: view, viewerRole: viewerRole}
}

// Repaint replaces the rendered rows with the visible slice and updates
// the page indicator and both navigation controls.
func (r *Renderer) Repaint(visible []models.User, page, totalPages int) {
	rows := make([]Row, 0, len(visible))
	for _, u := range visible {
		rows = append(rows, r.rowFor(u))
	}

	r.view.SetRows(rows)
	r.view.SetPageIndicator(page, totalPages)
	r.view.SetNavEnabled(page > 1, page < totalPages)
}

func (r *Renderer) rowFor(u models.User) Row {
	status := "Inactive"
	if u.IsActive {
		status = "Active"
	}
	return Row{
		UserID:      u.UserID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        strings.ToUpper(string(u.Role)),
		StatusLabel: status,
		Active:      u.IsActive,
		CanManage:   r.viewerRole.CanManageUsers(),
	}
}
