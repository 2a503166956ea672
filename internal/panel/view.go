// Package panel implements the user-directory panel: an in-memory user
// collection with a derived filtered and paginated view, two modal edit
// flows, and transient notifications, all rendered through a minimal
// capability interface so the presentation layer stays swappable.
//
// The panel is confined to a single event goroutine: every method is a
// reaction to a discrete user-input event, and the collection is mutated
// only by the controller after a confirmed remote success.
package panel

// Row is one rendered table line. Role is upper-cased for display only;
// the underlying value is untouched.
type Row struct {
	UserID      int64
	Username    string
	Email       string
	Role        string
	StatusLabel string
	Active      bool
	CanManage   bool
}

// EditForm carries the prefilled values for the permission-edit modal.
// IsActive is the string form of the boolean, matching a two-state
// selector.
type EditForm struct {
	UserID   int64
	Username string
	Role     string
	IsActive string
}

// View is the capability surface the panel requires from a rendering
// target. SetRows replaces all previously rendered rows wholesale, so a
// repaint can never leak stale rows.
type View interface {
	SetRows(rows []Row)
	SetPageIndicator(page, totalPages int)
	SetNavEnabled(prev, next bool)
	ShowEditModal(form EditForm)
	HideEditModal()
	ShowCreateModal()
	HideCreateModal()
}

// Notification is a transient success or error message.
type Notification struct {
	Message string
	IsError bool
}

// NotificationSink displays at most one notification at a time.
type NotificationSink interface {
	Display(n Notification)
	Clear()
}

// Confirmer asks the viewer for explicit confirmation before an action
// that cannot be undone.
type Confirmer interface {
	Confirm(prompt string) bool
}
