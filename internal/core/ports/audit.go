package ports

import (
	"context"
	"time"
)

// Audit actions.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
	AuditActionUpload = "upload"
)

// Audit outcomes. Local records the optimistic mutation; synced and
// sync_failed record the result of the upstream call.
const (
	AuditOutcomeLocal      = "local"
	AuditOutcomeSynced     = "synced"
	AuditOutcomeSyncFailed = "sync_failed"
	AuditOutcomeRejected   = "rejected"
)

// AuditEntry records one dashboard action for the operator trail.
type AuditEntry struct {
	Action    string    `json:"action"`
	UserID    int64     `json:"user_id,omitempty"`
	UserName  string    `json:"user_name,omitempty"`
	Outcome   string    `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditRecorder persists the action trail. Failures are never fatal to the
// action being recorded.
type AuditRecorder interface {
	Record(ctx context.Context, e AuditEntry) error
	List(ctx context.Context, limit int64) ([]AuditEntry, error)
}
