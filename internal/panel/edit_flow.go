package panel

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/undiziwa/userpanel/internal/dto"
	"github.com/undiziwa/userpanel/internal/models"
)

// DirectoryAPI is the remote surface the modal flows call. Every
// operation is a single attempt with no retry; a transport failure is
// surfaced like any other rejection.
type DirectoryAPI interface {
	UpdatePermissions(ctx context.Context, userID int64, req dto.PermissionUpdateRequest) (*models.User, error)
	ResetPassword(ctx context.Context, userID int64) error
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
}

// EditFlow is the modal state machine for editing one user's role and
// active status or triggering a password reset.
type EditFlow struct {
	ctrl     *Controller
	api      DirectoryAPI
	view     View
	notifier *Notifier
	confirm  Confirmer
	logger   *zap.Logger

	current *models.User
}

// NewEditFlow wires the permission-edit modal.
func NewEditFlow(ctrl *Controller, api DirectoryAPI, view View, notifier *Notifier, confirm Confirmer, logger *zap.Logger) *EditFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditFlow{ctrl: ctrl, api: api, view: view, notifier: notifier, confirm: confirm, logger: logger}
}

// Open targets user and shows the modal prefilled with the user's
// current role and active status.
func (f *EditFlow) Open(user models.User) {
	f.current = &user
	f.view.ShowEditModal(EditForm{
		UserID:   user.UserID,
		Username: user.Username,
		Role:     string(user.Role),
		IsActive: strconv.FormatBool(user.IsActive),
	})
}

// Cancel closes the modal and clears the edit target so a request still
// in flight can never apply against a different user.
func (f *EditFlow) Cancel() {
	f.current = nil
	f.view.HideEditModal()
}

// Target returns the user currently targeted by the modal, or nil.
func (f *EditFlow) Target() *models.User {
	if f.current == nil {
		return nil
	}
	snapshot := *f.current
	return &snapshot
}

// Save issues the permission update for the targeted user. On success
// the collection entry is replaced, the modal closes and a success
// notification is shown; on failure the modal stays open. Save is a
// no-op when no user is targeted.
func (f *EditFlow) Save(ctx context.Context, role, isActive string) {
	if f.current == nil {
		return
	}
	target := *f.current
	active, _ := strconv.ParseBool(isActive)

	updated, err := f.api.UpdatePermissions(ctx, target.UserID, dto.PermissionUpdateRequest{
		Role:     models.UserRole(role),
		IsActive: active,
	})
	if err != nil {
		f.logger.Warn("permission update failed", zap.Int64("user_id", target.UserID), zap.Error(err))
		f.notifier.ReportFailure(err, "Failed to update user")
		return
	}

	// The modal may have been closed or retargeted while the call was
	// outstanding; a late result must not apply against another user.
	if f.current == nil || f.current.UserID != target.UserID {
		f.logger.Debug("dropping stale permission update result", zap.Int64("user_id", target.UserID))
		return
	}

	f.ctrl.ReplaceUser(*updated)
	f.current = nil
	f.view.HideEditModal()
	f.notifier.Success("Permissions updated")
}

// ResetPassword asks for confirmation, then triggers a password reset
// for the targeted user. Neither outcome closes the modal or touches
// the collection.
func (f *EditFlow) ResetPassword(ctx context.Context) {
	if f.current == nil {
		return
	}
	if !f.confirm.Confirm("Reset this user's password to a new random password?") {
		return
	}

	if err := f.api.ResetPassword(ctx, f.current.UserID); err != nil {
		f.logger.Warn("password reset failed", zap.Int64("user_id", f.current.UserID), zap.Error(err))
		f.notifier.ReportFailure(err, "Reset failed")
		return
	}
	f.notifier.Success("Password reset successfully")
}
