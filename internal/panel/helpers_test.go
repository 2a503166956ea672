package panel

import (
	"context"

	"github.com/undiziwa/userpanel/internal/dto"
	"github.com/undiziwa/userpanel/internal/models"
)

type fakeView struct {
	rows      []Row
	setRows   int
	page      int
	total     int
	prevOn    bool
	nextOn    bool
	editForm  *EditForm
	editOpen  bool
	createOn  bool
	hideEdit  int
	hideMake  int
	showEdits int
}

func (v *fakeView) SetRows(rows []Row) {
	v.rows = rows
	v.setRows++
}

func (v *fakeView) SetPageIndicator(page, totalPages int) {
	v.page = page
	v.total = totalPages
}

func (v *fakeView) SetNavEnabled(prev, next bool) {
	v.prevOn = prev
	v.nextOn = next
}

func (v *fakeView) ShowEditModal(form EditForm) {
	v.editForm = &form
	v.editOpen = true
	v.showEdits++
}

func (v *fakeView) HideEditModal() {
	v.editOpen = false
	v.hideEdit++
}

func (v *fakeView) ShowCreateModal() { v.createOn = true }

func (v *fakeView) HideCreateModal() {
	v.createOn = false
	v.hideMake++
}

type recordSink struct {
	displayed []Notification
	cleared   int
}

func (s *recordSink) Display(n Notification) { s.displayed = append(s.displayed, n) }
func (s *recordSink) Clear()                 { s.cleared++ }

func (s *recordSink) last() Notification {
	if len(s.displayed) == 0 {
		return Notification{}
	}
	return s.displayed[len(s.displayed)-1]
}

type fakeAPI struct {
	updateResp *models.User
	updateErr  error
	updateReqs []dto.PermissionUpdateRequest
	updateIDs  []int64
	onUpdate   func()

	resetErr error
	resetIDs []int64

	createResp *models.User
	createErr  error
	createReqs []dto.CreateUserRequest
}

func (a *fakeAPI) UpdatePermissions(_ context.Context, userID int64, req dto.PermissionUpdateRequest) (*models.User, error) {
	a.updateIDs = append(a.updateIDs, userID)
	a.updateReqs = append(a.updateReqs, req)
	if a.onUpdate != nil {
		a.onUpdate()
	}
	return a.updateResp, a.updateErr
}

func (a *fakeAPI) ResetPassword(_ context.Context, userID int64) error {
	a.resetIDs = append(a.resetIDs, userID)
	return a.resetErr
}

func (a *fakeAPI) CreateUser(_ context.Context, req dto.CreateUserRequest) (*models.User, error) {
	a.createReqs = append(a.createReqs, req)
	return a.createResp, a.createErr
}

type fakeConfirm struct {
	answer  bool
	prompts []string
}

func (c *fakeConfirm) Confirm(prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

func sampleUsers() []models.User {
	return []models.User{
		{UserID: 1, Username: "amara", Email: "amara@gov.example", Role: models.RoleSuperAdmin, IsActive: true},
		{UserID: 2, Username: "brian", Email: "brian@uni.example", Role: models.RoleInstitutionAdmin, IsActive: true},
		{UserID: 3, Username: "chipo", Email: "chipo@uni.example", Role: models.RoleHR, IsActive: false},
		{UserID: 4, Username: "dalia", Email: "dalia@gov.example", Role: models.RoleGovAdmin, IsActive: true},
		{UserID: 5, Username: "eric", Email: "eric@health.example", Role: models.RoleHR, IsActive: true},
	}
}
