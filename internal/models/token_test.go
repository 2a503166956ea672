package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPasswordResetTokenExpired(t *testing.T) {
	now := time.Now().UTC()
	token := PasswordResetToken{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, token.Expired(now))
	assert.True(t, token.Expired(now.Add(2*time.Hour)))
}
