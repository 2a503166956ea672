package models

import "time"

// PasswordResetToken is a single-use token mailed to a user so they can
// choose a new password.
type PasswordResetToken struct {
	ID        int64     `db:"id" json:"-"`
	UserID    int64     `db:"user_id" json:"-"`
	Token     string    `db:"token" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"-"`
	Used      bool      `db:"used" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// Expired reports whether the token is past its expiry.
func (t PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
