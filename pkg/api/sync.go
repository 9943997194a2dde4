package api

import (
	"encoding/json"
	"time"
)

// MaxBatchSize caps how many records the server returns per entity type in a
// single pull. A full bucket means the backlog is not drained yet; the client
// re-pulls with an advanced watermark until a bucket comes back short.
const MaxBatchSize = 1000

// Record is the wire form of a syncable business record. The payload carries
// the entity's domain fields as a raw JSON object; the sync layer only
// interprets the envelope.
type Record struct {
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	LogicalID  string          `json:"logical_id"`
	SyncStatus string          `json:"sync_status,omitempty"`
	CreatedBy  string          `json:"created_by,omitempty"`
	Payload    json.RawMessage `json:"payload"`
}

// ChangeSet maps an entity-type name to records ordered by updated_at ascending.
type ChangeSet map[string][]Record

// PullRequest is the body of POST /api/v1/sync/pull.
// LastSyncTimestamp is nil on the very first pull of a device.
type PullRequest struct {
	LastSyncTimestamp *time.Time `json:"lastSyncTimestamp"`
	DeviceID          string     `json:"deviceId"`
}

// PullResponse returns every record changed after the requested watermark.
// Conflicts is always empty: pull is a pure read, conflicts arise on push only.
type PullResponse struct {
	Timestamp time.Time        `json:"timestamp"`
	DeviceID  string           `json:"deviceId"`
	Changes   ChangeSet        `json:"changes"`
	Conflicts []ConflictReport `json:"conflicts"`
	Success   bool             `json:"success"`
}

// PushRequest is the body of POST /api/v1/sync/push.
type PushRequest struct {
	DeviceID string    `json:"deviceId"`
	Changes  ChangeSet `json:"changes"`
}

// AppliedChange describes one record the server durably stored.
type AppliedChange struct {
	EntityType string `json:"entityType"`
	Action     string `json:"action"` // CREATE or UPDATE
	UniqueID   string `json:"uniqueId"`
	EntityID   int64  `json:"entityId"`
}

// ConflictReport describes one conflict resolved during a push.
type ConflictReport struct {
	EntityType string `json:"entityType"`
	Resolution string `json:"resolution"`
	Winner     string `json:"winner"` // "client" or "server"
	EntityID   int64  `json:"entityId"`
}

// RecordError describes a record the server failed to apply. The rest of the
// batch is unaffected.
type RecordError struct {
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	Error      string `json:"error"`
}

// PushResponse summarizes a push batch. Success is false when any record
// landed in Errors.
type PushResponse struct {
	Applied   []AppliedChange  `json:"applied"`
	Conflicts []ConflictReport `json:"conflicts"`
	Errors    []RecordError    `json:"errors"`
	Success   bool             `json:"success"`
}

// StatusResponse is the body of GET /api/v1/sync/status/{deviceId}.
// Pending counts reflect server-side sync_status flags, not a true per-device
// outstanding-change count.
type StatusResponse struct {
	LastSync            *time.Time     `json:"lastSync"`
	Breakdown           map[string]int `json:"breakdown"`
	DeviceID            string         `json:"deviceId"`
	Status              string         `json:"status"` // "pending" or "synced"
	PendingChanges      int            `json:"pendingChanges"`
	UnresolvedConflicts int            `json:"unresolvedConflicts"`
	Success             bool           `json:"success"`
}

// ResolveConflictRequest is the body of POST /api/v1/sync/resolve-conflict,
// the manual-adjudication hook. Conflicts are auto-resolved at push time, so
// the server only records the decision for audit.
type ResolveConflictRequest struct {
	ChosenRecord *Record `json:"chosenRecord,omitempty"`
	ConflictID   string  `json:"conflictId"`
	Resolution   string  `json:"resolution"`
}

// ResolveConflictResponse acknowledges a manual resolution.
type ResolveConflictResponse struct {
	ConflictID string `json:"conflictId"`
	Resolution string `json:"resolution"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// FullSyncRequest is the body of POST /api/v1/sync/full: push then pull in a
// single round trip.
type FullSyncRequest struct {
	LastSyncTimestamp *time.Time `json:"lastSyncTimestamp"`
	DeviceID          string     `json:"deviceId"`
	Changes           ChangeSet  `json:"changes,omitempty"`
}

// FullSyncResponse carries both halves of a full sync.
type FullSyncResponse struct {
	Timestamp time.Time     `json:"timestamp"`
	Push      *PushResponse `json:"push"`
	Pull      *PullResponse `json:"pull"`
	Success   bool          `json:"success"`
}
