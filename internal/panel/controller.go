package panel

import (
	"go.uber.org/zap"

	"github.com/undiziwa/userpanel/internal/models"
)

const defaultPageSize = 10

// Controller owns the user collection and the derived filter and page
// state. The collection is seeded once from the bootstrap list and
// mutated only through ReplaceUser and PrependUser, both called by the
// edit flows after a confirmed remote success; every other collaborator
// receives snapshots.
type Controller struct {
	renderer *Renderer
	logger   *zap.Logger

	viewerRole models.UserRole
	pageSize   int

	users    []models.User
	filtered []models.User

	search       string
	roleFilter   string
	statusFilter string
	page         int
}

// NewController seeds a controller for a viewer with the given role.
// A non-positive pageSize falls back to the default.
func NewController(view View, viewerRole models.UserRole, users []models.User, pageSize int, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	owned := make([]models.User, len(users))
	copy(owned, users)

	c := &Controller{
		renderer:   NewRenderer(view, viewerRole),
		logger:     logger,
		viewerRole: viewerRole,
		pageSize:   pageSize,
		users:      owned,
		page:       1,
	}
	c.filtered = FilterUsers(c.users, "", "", "")
	return c
}

// ViewerRole returns the immutable role of the session's viewer.
func (c *Controller) ViewerRole() models.UserRole { return c.viewerRole }

// Page returns the current 1-indexed page.
func (c *Controller) Page() int { return c.page }

// Users returns a snapshot of the full collection.
func (c *Controller) Users() []models.User {
	snapshot := make([]models.User, len(c.users))
	copy(snapshot, c.users)
	return snapshot
}

// Filtered returns a snapshot of the derived filtered sequence.
func (c *Controller) Filtered() []models.User {
	snapshot := make([]models.User, len(c.filtered))
	copy(snapshot, c.filtered)
	return snapshot
}

// Render repaints the visible slice, the page indicator and the
// navigation controls.
func (c *Controller) Render() {
	total := TotalPages(len(c.filtered), c.pageSize)
	c.renderer.Repaint(PageSlice(c.filtered, c.page, c.pageSize), c.page, total)
}

// ApplyFilterInputs re-derives the filtered sequence from the current
// collection, resets to page 1 and repaints. Any filter-input change
// invalidates the page position, so this always jumps back to the start.
func (c *Controller) ApplyFilterInputs(search, role, status string) {
	c.search = search
	c.roleFilter = role
	c.statusFilter = status
	c.refilter()
}

// NextPage advances one page unless already on the last page.
func (c *Controller) NextPage() {
	if c.page < TotalPages(len(c.filtered), c.pageSize) {
		c.page++
	}
	c.Render()
}

// PrevPage goes back one page unless already on the first.
func (c *Controller) PrevPage() {
	if c.page > 1 {
		c.page--
	}
	c.Render()
}

// ReplaceUser swaps the collection entry with the same user_id for
// updated, then re-derives and repaints. Unknown IDs are ignored.
func (c *Controller) ReplaceUser(updated models.User) {
	for i := range c.users {
		if c.users[i].UserID == updated.UserID {
			c.users[i] = updated
			c.refilter()
			return
		}
	}
	c.logger.Warn("updated user not in collection", zap.Int64("user_id", updated.UserID))
}

// PrependUser puts a newly created record at the front of the
// collection, then re-derives and repaints.
func (c *Controller) PrependUser(created models.User) {
	c.users = append([]models.User{created}, c.users...)
	c.refilter()
}

func (c *Controller) refilter() {
	c.filtered = FilterUsers(c.users, c.search, c.roleFilter, c.statusFilter)
	c.page = 1
	c.Render()
}
