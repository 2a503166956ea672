package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/undiziwa/userpanel/internal/models"
)

// LogMailer records outgoing mail instead of delivering it; the default
// for development setups without an SMTP relay.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendInvite(_ context.Context, user models.User, resetLink string) error {
	m.logger.Info("invite email",
		zap.String("to", user.Email),
		zap.String("username", user.Username),
		zap.String("reset_link", resetLink),
	)
	return nil
}

func (m *LogMailer) SendPasswordReset(_ context.Context, user models.User, resetLink string) error {
	m.logger.Info("password reset email",
		zap.String("to", user.Email),
		zap.String("reset_link", resetLink),
	)
	return nil
}

// NopMailer drops all mail.
type NopMailer struct{}

func (NopMailer) SendInvite(context.Context, models.User, string) error        { return nil }
func (NopMailer) SendPasswordReset(context.Context, models.User, string) error { return nil }
