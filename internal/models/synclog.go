package models

import "time"

// SyncOutcome classifies how the server handled one pushed record.
type SyncOutcome string

const (
	OutcomeSuccess  SyncOutcome = "SUCCESS"
	OutcomeConflict SyncOutcome = "CONFLICT"
	OutcomeFailed   SyncOutcome = "FAILED"
)

// SyncLogEntry is one row of the server's sync audit trail. Written for every
// record of every push batch and for manual conflict resolutions.
type SyncLogEntry struct {
	CreatedAt  time.Time
	LocalTime  *time.Time // client-side updated_at, if known
	ServerTime *time.Time // server-side updated_at at decision time, if any
	DeviceID   string
	EntityType EntityType
	LogicalID  string
	Action     string // CREATE, UPDATE or RESOLVE
	Outcome    SyncOutcome
	Detail     string // resolution strategy or error message
	ID         int64
	EntityID   int64
}
