package models

import (
	"encoding/json"
	"time"
)

// Audit actions recorded by the directory service.
const (
	AuditActionCreateUser       = "create_user_invite"
	AuditActionUpdatePermission = "update_permission"
	AuditActionTriggerReset     = "admin_trigger_reset"
	AuditActionResetConfirm     = "reset_password_confirm"
)

// AuditLog records an administrative action against a target account.
type AuditLog struct {
	ID           int64           `db:"id" json:"id"`
	TargetUserID *int64          `db:"target_user_id" json:"target_user_id,omitempty"`
	Action       string          `db:"action" json:"action"`
	PerformedBy  string          `db:"performed_by" json:"performed_by,omitempty"`
	Meta         json.RawMessage `db:"meta" json:"meta,omitempty"`
	Timestamp    time.Time       `db:"timestamp" json:"timestamp"`
}
