package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/undiziwa/userpanel/internal/dto"
	"github.com/undiziwa/userpanel/internal/models"
	"github.com/undiziwa/userpanel/internal/repository"
	"github.com/undiziwa/userpanel/internal/service"
	"github.com/undiziwa/userpanel/pkg/config"
)

func newTestServer(t *testing.T) (*httptest.Server, *repository.MemoryStore) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	store := repository.NewMemoryStore()
	store.Seed([]models.User{
		{Username: "amara", Email: "amara@gov.example", PasswordHash: string(hash), Role: models.RoleSuperAdmin, IsActive: true},
		{Username: "brian", Email: "brian@uni.example", PasswordHash: string(hash), Role: models.RoleInstitutionAdmin, IsActive: true},
		{Username: "chipo", Email: "chipo@uni.example", PasswordHash: string(hash), Role: models.RoleHR, IsActive: true},
	})

	cfg := &config.Config{
		Env: config.EnvProduction,
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "undiziwa"},
	}
	validate := validator.New()
	logr := zap.NewNop()

	auth := service.NewAuthService(store, validate, logr, cfg.JWT)
	users := service.NewUserService(store, service.NopMailer{}, validate, logr, "https://undiziwa.example/reset")

	server := httptest.NewServer(Router(cfg, logr, auth, users, nil))
	t.Cleanup(server.Close)
	return server, store
}

func loginAs(t *testing.T, server *httptest.Server, username string) string {
	t.Helper()
	body, _ := json.Marshal(dto.LoginRequest{Username: username, Password: "secret"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func doJSON(t *testing.T, method, url, token string, payload interface{}) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	server, _ := newTestServer(t)

	body, _ := json.Marshal(dto.LoginRequest{Username: "amara", Password: "wrong"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var failure dto.ErrorResponse
	decodeBody(t, resp, &failure)
	assert.Equal(t, "invalid username or password", failure.Message)
}

func TestListUsersRequiresToken(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/users")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListUsersEnvelope(t *testing.T) {
	server, _ := newTestServer(t)
	token := loginAs(t, server, "chipo")

	resp := doJSON(t, http.MethodGet, server.URL+"/api/users?search=uni&page=1&per_page=2", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res dto.UserListResponse
	decodeBody(t, resp, &res)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 2, res.PerPage)
	assert.Equal(t, 1, res.Pages)
	require.Len(t, res.Users, 2)
}

func TestCreateUserReturnsRawRecord(t *testing.T) {
	server, _ := newTestServer(t)
	token := loginAs(t, server, "amara")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/users", token, dto.CreateUserRequest{
		Username: "dalia",
		Email:    "dalia@gov.example",
		Password: "ignored",
		Role:     models.RoleGovAdmin,
		IsActive: true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var record map[string]interface{}
	decodeBody(t, resp, &record)
	assert.Equal(t, "dalia", record["username"])
	assert.NotZero(t, record["user_id"], "server-assigned id present at top level")
	assert.NotContains(t, record, "password_hash")
}

func TestCreateUserConflict(t *testing.T) {
	server, _ := newTestServer(t)
	token := loginAs(t, server, "amara")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/users", token, dto.CreateUserRequest{
		Username: "amara",
		Email:    "new@gov.example",
		Password: "ignored",
		Role:     models.RoleHR,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var failure dto.ErrorResponse
	decodeBody(t, resp, &failure)
	assert.Equal(t, "username already exists", failure.Message)
}

func TestUpdatePermissionRoleGate(t *testing.T) {
	server, _ := newTestServer(t)
	payload := dto.PermissionUpdateRequest{Role: models.RoleHR, IsActive: false}

	t.Run("hr role is forbidden", func(t *testing.T) {
		token := loginAs(t, server, "chipo")
		resp := doJSON(t, http.MethodPut, server.URL+"/api/users/2/permission", token, payload)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("super admin updates and receives the record", func(t *testing.T) {
		token := loginAs(t, server, "amara")
		resp := doJSON(t, http.MethodPut, server.URL+"/api/users/2/permission", token, payload)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated models.User
		decodeBody(t, resp, &updated)
		assert.Equal(t, int64(2), updated.UserID)
		assert.Equal(t, models.RoleHR, updated.Role)
		assert.False(t, updated.IsActive)
	})
}

func TestUpdatePermissionUnknownUser(t *testing.T) {
	server, _ := newTestServer(t)
	token := loginAs(t, server, "amara")

	resp := doJSON(t, http.MethodPut, server.URL+"/api/users/99/permission", token, dto.PermissionUpdateRequest{Role: models.RoleHR})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestResetPasswordAuditsAction(t *testing.T) {
	server, store := newTestServer(t)
	token := loginAs(t, server, "amara")

	resp := doJSON(t, http.MethodPatch, server.URL+"/api/users/3/reset-password", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Reset email sent", body["msg"])

	logs := store.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, models.AuditActionTriggerReset, logs[0].Action)
	assert.Equal(t, "amara", logs[0].PerformedBy)
	require.NotNil(t, logs[0].TargetUserID)
	assert.Equal(t, int64(3), *logs[0].TargetUserID)
}

func TestConfirmPasswordResetLifecycle(t *testing.T) {
	server, store := newTestServer(t)
	require.NoError(t, store.CreatePasswordResetToken(context.Background(), &models.PasswordResetToken{
		UserID:    3,
		Token:     "tok-1",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}))

	resp := doJSON(t, http.MethodPost, server.URL+"/api/reset-password/confirm", "", dto.ResetPasswordConfirmRequest{
		Token:    "tok-1",
		Password: "fresh-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Password reset successful", body["msg"])

	// The chosen password now authenticates.
	loginBody, _ := json.Marshal(dto.LoginRequest{Username: "chipo", Password: "fresh-password"})
	loginResp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(loginBody))
	require.NoError(t, err)
	defer loginResp.Body.Close()
	assert.Equal(t, http.StatusOK, loginResp.StatusCode)

	// The token is consumed; a second redemption is rejected.
	again := doJSON(t, http.MethodPost, server.URL+"/api/reset-password/confirm", "", dto.ResetPasswordConfirmRequest{
		Token:    "tok-1",
		Password: "other",
	})
	defer again.Body.Close()
	assert.Equal(t, http.StatusBadRequest, again.StatusCode)
}

func TestResetPasswordInvalidID(t *testing.T) {
	server, _ := newTestServer(t)
	token := loginAs(t, server, "amara")

	resp := doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/users/%s/reset-password", server.URL, "abc"), token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
