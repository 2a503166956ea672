package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undiziwa/userpanel/internal/models"
)

func TestControllerRenderPaintsVisibleSlice(t *testing.T) {
	view := &fakeView{}
	ctrl := NewController(view, models.RoleSuperAdmin, sampleUsers(), 2, nil)

	ctrl.Render()

	require.Len(t, view.rows, 2)
	assert.Equal(t, "amara", view.rows[0].Username)
	assert.Equal(t, 1, view.page)
	assert.Equal(t, 3, view.total)
	assert.False(t, view.prevOn)
	assert.True(t, view.nextOn)
}

func TestControllerRoleGatedRows(t *testing.T) {
	for _, tc := range []struct {
		role      models.UserRole
		canManage bool
	}{
		{models.RoleSuperAdmin, true},
		{models.RoleGovAdmin, true},
		{models.RoleInstitutionAdmin, false},
		{models.RoleHR, false},
	} {
		view := &fakeView{}
		ctrl := NewController(view, tc.role, sampleUsers(), 10, nil)
		ctrl.Render()
		require.NotEmpty(t, view.rows)
		for _, row := range view.rows {
			assert.Equal(t, tc.canManage, row.CanManage, "viewer role %s", tc.role)
		}
	}
}

func TestControllerRowPresentation(t *testing.T) {
	view := &fakeView{}
	ctrl := NewController(view, models.RoleGovAdmin, sampleUsers(), 10, nil)
	ctrl.Render()

	require.Len(t, view.rows, 5)
	assert.Equal(t, "SUPER_ADMIN", view.rows[0].Role)
	assert.Equal(t, "Active", view.rows[0].StatusLabel)
	assert.Equal(t, "Inactive", view.rows[2].StatusLabel)
}

func TestControllerApplyFilterInputsResetsPage(t *testing.T) {
	view := &fakeView{}
	ctrl := NewController(view, models.RoleSuperAdmin, sampleUsers(), 2, nil)

	ctrl.NextPage()
	require.Equal(t, 2, ctrl.Page())

	ctrl.ApplyFilterInputs("uni.example", "", "")
	assert.Equal(t, 1, ctrl.Page())
	assert.Len(t, ctrl.Filtered(), 2)
	assert.Len(t, view.rows, 2)
}

func TestControllerPageNavigationNoOpsAtEdges(t *testing.T) {
	view := &fakeView{}
	ctrl := NewController(view, models.RoleSuperAdmin, sampleUsers(), 2, nil)

	ctrl.PrevPage()
	assert.Equal(t, 1, ctrl.Page())

	ctrl.NextPage()
	ctrl.NextPage()
	assert.Equal(t, 3, ctrl.Page())

	ctrl.NextPage()
	assert.Equal(t, 3, ctrl.Page())
	assert.True(t, view.prevOn)
	assert.False(t, view.nextOn)
}

func TestControllerEmptySetRendersPageOneOfOne(t *testing.T) {
	view := &fakeView{}
	ctrl := NewController(view, models.RoleSuperAdmin, nil, 10, nil)
	ctrl.Render()

	assert.Empty(t, view.rows)
	assert.Equal(t, 1, view.page)
	assert.Equal(t, 1, view.total)
	assert.False(t, view.prevOn)
	assert.False(t, view.nextOn)
}

func TestControllerReplaceUserSwapsExactlyOne(t *testing.T) {
	view := &fakeView{}
	ctrl := NewController(view, models.RoleSuperAdmin, sampleUsers(), 10, nil)

	ctrl.ReplaceUser(models.User{UserID: 3, Username: "chipo", Email: "chipo@uni.example", Role: models.RoleInstitutionAdmin, IsActive: true})

	users := ctrl.Users()
	require.Len(t, users, 5)
	assert.Equal(t, models.RoleInstitutionAdmin, users[2].Role)
	assert.True(t, users[2].IsActive)
	assert.Equal(t, "amara", users[0].Username)
	assert.Equal(t, "eric", users[4].Username)
}

func TestControllerReplaceUnknownUserLeavesCollection(t *testing.T) {
	view := &fakeView{}
	ctrl := NewController(view, models.RoleSuperAdmin, sampleUsers(), 10, nil)

	ctrl.ReplaceUser(models.User{UserID: 99, Username: "ghost"})
	assert.Equal(t, sampleUsers(), ctrl.Users())
}

func TestControllerPrependUser(t *testing.T) {
	view := &fakeView{}
	ctrl := NewController(view, models.RoleSuperAdmin, sampleUsers(), 2, nil)
	ctrl.NextPage()

	ctrl.PrependUser(models.User{UserID: 42, Username: "alice", Email: "a@x.com", Role: "viewer", IsActive: true})

	users := ctrl.Users()
	require.Len(t, users, 6)
	assert.Equal(t, int64(42), users[0].UserID)
	assert.Equal(t, 1, ctrl.Page())
	assert.Equal(t, "alice", view.rows[0].Username)
}

func TestControllerSnapshotsAreCopies(t *testing.T) {
	view := &fakeView{}
	ctrl := NewController(view, models.RoleSuperAdmin, sampleUsers(), 10, nil)

	snapshot := ctrl.Users()
	snapshot[0].Username = "mutated"
	assert.Equal(t, "amara", ctrl.Users()[0].Username)
}
