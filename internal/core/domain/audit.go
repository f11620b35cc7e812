package domain

import "time"

// AuditAction names the state-changing operation an AuditEntry records.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditCommit AuditAction = "COMMIT"
)

// AuditEntry is one row of the append-only audit trail. Entries are never
// updated or deleted; Before/After carry JSON snapshots of the entity.
type AuditEntry struct {
	AuditID    string      `json:"auditID"` // Primary Key (UUID)
	EntityType string      `json:"entityType"`
	EntityID   string      `json:"entityID"`
	Action     AuditAction `json:"action"`
	Actor      string      `json:"actor"`
	OccurredAt time.Time   `json:"occurredAt"`
	Before     []byte      `json:"before,omitempty"` // JSON snapshot, nil on create
	After      []byte      `json:"after,omitempty"`  // JSON snapshot
}
