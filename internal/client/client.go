// Package client implements the REST client for the directory service.
// Each operation is a single attempt bound to the caller's context; the
// client never retries and maps every failure into a typed error so the
// panel flows share one error-to-notification path.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/undiziwa/userpanel/internal/dto"
	"github.com/undiziwa/userpanel/internal/models"
	"github.com/undiziwa/userpanel/pkg/config"
	appErrors "github.com/undiziwa/userpanel/pkg/errors"
)

const defaultTimeout = 10 * time.Second

// Client talks to the directory service.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	logger  *zap.Logger
}

// New creates a Client from config.
func New(cfg config.APIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// Login authenticates and retains the returned bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	var res dto.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest{Username: username, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	c.token = res.Token
	return &res, nil
}

// ListUsers fetches one page of the directory; it seeds the panel's
// collection at bootstrap.
func (c *Client) ListUsers(ctx context.Context, filter models.UserFilter) (*dto.UserListResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(filter.Page))
	q.Set("per_page", strconv.Itoa(filter.PageSize))
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Role != nil {
		q.Set("role", string(*filter.Role))
	}
	if filter.Active != nil {
		q.Set("is_active", strconv.FormatBool(*filter.Active))
	}

	var res dto.UserListResponse
	if err := c.do(ctx, http.MethodGet, "/api/users?"+q.Encode(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdatePermissions updates a user's role and active status, returning
// the full updated record.
func (c *Client) UpdatePermissions(ctx context.Context, userID int64, req dto.PermissionUpdateRequest) (*models.User, error) {
	var user models.User
	path := fmt.Sprintf("/api/users/%d/permission", userID)
	if err := c.do(ctx, http.MethodPut, path, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ResetPassword triggers a password reset for a user. Success is
// determined solely by the response status.
func (c *Client) ResetPassword(ctx context.Context, userID int64) error {
	path := fmt.Sprintf("/api/users/%d/reset-password", userID)
	return c.do(ctx, http.MethodPatch, path, nil, nil)
}

// CreateUser creates a new account, returning the full record including
// the server-assigned user_id.
func (c *Client) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/api/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.KindTransport, "ENCODE_FAILURE", 0, "failed to encode request")
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return appErrors.Wrap(err, appErrors.KindTransport, "REQUEST_FAILURE", 0, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return appErrors.Wrap(err, appErrors.KindTransport, appErrors.ErrTransport.Code, 0, appErrors.ErrTransport.Message)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return rejection(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.KindTransport, "DECODE_FAILURE", resp.StatusCode, "unexpected response body")
	}
	return nil
}

// rejection maps a non-success status into a typed error, surfacing the
// body's message when one parses.
func rejection(resp *http.Response) error {
	var body dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return appErrors.New(appErrors.KindRejected, "REMOTE_REJECTED", resp.StatusCode, body.Message)
}
