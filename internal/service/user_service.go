package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/undiziwa/userpanel/internal/dto"
	"github.com/undiziwa/userpanel/internal/models"
	appErrors "github.com/undiziwa/userpanel/pkg/errors"
)

const (
	passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_-+="
	passwordLength  = 12

	inviteTokenTTL = 24 * time.Hour
	resetTokenTTL  = 1 * time.Hour
)

type userRepository interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePermission(ctx context.Context, id int64, role models.UserRole, active bool) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	CreatePasswordResetToken(ctx context.Context, token *models.PasswordResetToken) error
	FindResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	MarkResetTokenUsed(ctx context.Context, id int64) error
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// UserStore is the full storage surface the directory services require;
// satisfied by both the PostgreSQL repository and the in-memory store.
type UserStore interface {
	userRepository
}

// Mailer delivers invite and reset messages. The service treats
// delivery as best effort; a failed send is logged, not surfaced.
type Mailer interface {
	SendInvite(ctx context.Context, user models.User, resetLink string) error
	SendPasswordReset(ctx context.Context, user models.User, resetLink string) error
}

// UserService implements the directory operations behind the panel's
// API contract.
type UserService struct {
	repo         userRepository
	mailer       Mailer
	validator    *validator.Validate
	logger       *zap.Logger
	resetBaseURL string
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, mailer Mailer, validate *validator.Validate, logger *zap.Logger, resetBaseURL string) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if mailer == nil {
		mailer = NopMailer{}
	}
	return &UserService{repo: repo, mailer: mailer, validator: validate, logger: logger, resetBaseURL: resetBaseURL}
}

// List returns one page of users plus the list envelope metadata.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) (*dto.UserListResponse, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}
	filter.Page = page
	filter.PageSize = pageSize

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Kind, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}

	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}

	return &dto.UserListResponse{
		Users:   users,
		Total:   total,
		Page:    page,
		PerPage: pageSize,
		Pages:   pages,
	}, nil
}

// Create adds a new account with a generated password, issues a 24h
// single-use reset token and mails an invite link.
func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest, actor string) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Kind, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing or invalid required fields")
	}
	if err := s.validator.Var(req.Email, "email"); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid email address")
	}
	if !req.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid role")
	}

	email := strings.ToLower(req.Email)

	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Kind, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check username uniqueness")
	}
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Kind, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email uniqueness")
	}

	password, err := generatePassword(passwordLength)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Kind, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Kind, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Username:      req.Username,
		FullName:      req.FullName,
		Email:         email,
		Phone:         req.Phone,
		PasswordHash:  string(hash),
		Role:          req.Role,
		InstitutionID: req.InstitutionID,
		IsActive:      req.IsActive,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Kind, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	if link, err := s.issueResetToken(ctx, user.UserID, inviteTokenTTL); err != nil {
		s.logger.Warn("failed to issue invite token", zap.Int64("user_id", user.UserID), zap.Error(err))
	} else if err := s.mailer.SendInvite(ctx, *user, link); err != nil {
		s.logger.Warn("failed to send invite email", zap.Int64("user_id", user.UserID), zap.Error(err))
	}

	s.audit(ctx, models.AuditActionCreateUser, user.UserID, actor, map[string]interface{}{"institution_id": user.InstitutionID})

	return user, nil
}

// UpdatePermission changes a user's role and active status and returns
// the full updated record.
func (s *UserService) UpdatePermission(ctx context.Context, id int64, req dto.PermissionUpdateRequest, actor string) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Kind, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid permission payload")
	}
	if !req.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid role")
	}

	updated, err := s.repo.UpdatePermission(ctx, id, req.Role, req.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Kind, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update permissions")
	}

	s.audit(ctx, models.AuditActionUpdatePermission, id, actor, nil)

	return updated, nil
}

// ResetPassword issues a 1h single-use reset token for a user and mails
// the reset link.
func (s *UserService) ResetPassword(ctx context.Context, id int64, actor string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Kind, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	link, err := s.issueResetToken(ctx, user.UserID, resetTokenTTL)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Kind, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue reset token")
	}
	if err := s.mailer.SendPasswordReset(ctx, *user, link); err != nil {
		s.logger.Warn("failed to send reset email", zap.Int64("user_id", user.UserID), zap.Error(err))
	}

	s.audit(ctx, models.AuditActionTriggerReset, user.UserID, actor, nil)

	return nil
}

// ConfirmPasswordReset redeems a reset token: the chosen password is
// stored and the token is consumed so the link from the invite or reset
// mail works exactly once.
func (s *UserService) ConfirmPasswordReset(ctx context.Context, req dto.ResetPasswordConfirmRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Kind, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "token and password are required")
	}

	prt, err := s.repo.FindResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, "invalid or expired token")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Kind, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reset token")
	}
	if prt.Expired(time.Now().UTC()) {
		return appErrors.Clone(appErrors.ErrValidation, "invalid or expired token")
	}

	user, err := s.repo.FindByID(ctx, prt.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Kind, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Kind, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	if err := s.repo.UpdatePassword(ctx, user.UserID, string(hash)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Kind, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
	}
	if err := s.repo.MarkResetTokenUsed(ctx, prt.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Kind, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to consume reset token")
	}

	s.audit(ctx, models.AuditActionResetConfirm, user.UserID, "", nil)

	return nil
}

func (s *UserService) issueResetToken(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	token := &models.PasswordResetToken{
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	if err := s.repo.CreatePasswordResetToken(ctx, token); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s?token=%s", s.resetBaseURL, token.Token), nil
}

func (s *UserService) audit(ctx context.Context, action string, targetID int64, actor string, meta map[string]interface{}) {
	var raw json.RawMessage
	if meta != nil {
		raw, _ = json.Marshal(meta)
	}
	if err := s.repo.CreateAuditLog(ctx, &models.AuditLog{
		TargetUserID: &targetID,
		Action:       action,
		PerformedBy:  actor,
		Meta:         raw,
	}); err != nil {
		s.logger.Warn("failed to record audit log", zap.String("action", action), zap.Error(err))
	}
}

func generatePassword(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordCharset[n.Int64()]
	}
	return string(out), nil
}
