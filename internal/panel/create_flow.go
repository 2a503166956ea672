package panel

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/undiziwa/userpanel/internal/dto"
	"github.com/undiziwa/userpanel/internal/models"
)

// CreateForm holds the raw field values of the creation modal. All
// values are strings as entered; parsing happens on save.
type CreateForm struct {
	Username      string
	FullName      string
	Email         string
	Phone         string
	Password      string
	Role          string
	IsActive      string
	InstitutionID string
}

// CreateFlow is the modal state machine for composing and submitting a
// new account.
type CreateFlow struct {
	ctrl     *Controller
	api      DirectoryAPI
	view     View
	notifier *Notifier
	validate *validator.Validate
	logger   *zap.Logger

	open bool
	form CreateForm
}

// NewCreateFlow wires the creation modal.
func NewCreateFlow(ctrl *Controller, api DirectoryAPI, view View, notifier *Notifier, validate *validator.Validate, logger *zap.Logger) *CreateFlow {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreateFlow{ctrl: ctrl, api: api, view: view, notifier: notifier, validate: validate, logger: logger}
}

// Open shows the creation modal with a blank form.
func (f *CreateFlow) Open() {
	f.form = CreateForm{}
	f.open = true
	f.view.ShowCreateModal()
}

// Cancel closes the modal and discards the form contents.
func (f *CreateFlow) Cancel() {
	f.form = CreateForm{}
	f.open = false
	f.view.HideCreateModal()
}

// IsOpen reports whether the modal is currently shown.
func (f *CreateFlow) IsOpen() bool { return f.open }

// Form returns the retained form contents, intact after a failed save.
func (f *CreateFlow) Form() CreateForm { return f.form }

// Save builds the creation payload from form, validates required fields
// locally and submits. A validation failure never reaches the network.
// On success the new record is prepended to the collection, the view
// jumps back to page 1 and the modal closes; on failure the modal stays
// open with the entered data intact.
func (f *CreateFlow) Save(ctx context.Context, form CreateForm) {
	if !f.open {
		return
	}
	f.form = form

	payload := dto.CreateUserRequest{
		Username: strings.TrimSpace(form.Username),
		FullName: strings.TrimSpace(form.FullName),
		Email:    strings.TrimSpace(form.Email),
		Phone:    strings.TrimSpace(form.Phone),
		Password: form.Password,
		Role:     models.UserRole(form.Role),
		IsActive: form.IsActive == StatusActive,
	}
	if form.InstitutionID != "" {
		if id, err := strconv.ParseInt(strings.TrimSpace(form.InstitutionID), 10, 64); err == nil {
			payload.InstitutionID = &id
		}
	}

	if err := f.validate.Struct(payload); err != nil {
		f.notifier.Error("Please fill required fields")
		return
	}

	created, err := f.api.CreateUser(ctx, payload)
	if err != nil {
		f.logger.Warn("user creation failed", zap.String("username", payload.Username), zap.Error(err))
		f.notifier.ReportFailure(err, "Failed to create user")
		return
	}

	f.ctrl.PrependUser(*created)
	f.form = CreateForm{}
	f.open = false
	f.view.HideCreateModal()
	f.notifier.Success("User created successfully")
}
