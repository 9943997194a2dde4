// Package conflict implements timestamp-based conflict detection and
// resolution between a local and a server version of the same logical record.
package conflict

import (
	"time"

	"github.com/bizsync/bizsync/internal/models"
)

// Tolerance is the clock-skew window. Two versions whose updated_at differ by
// no more than this are treated as the same logical state, not an edit race.
const Tolerance = time.Second

// Conflict carries both versions of a diverged record and their timestamps.
type Conflict struct {
	LocalTimestamp  time.Time
	ServerTimestamp time.Time
	Local           *models.Record
	Server          *models.Record
}

// Winner reports which side's version is newer, "client" or "server".
// An exact tie goes to the server.
func (c *Conflict) Winner() string {
	if c.LocalTimestamp.After(c.ServerTimestamp) {
		return "client"
	}
	return "server"
}

// Detect compares a local and a server version sharing a logical ID.
// Returns nil when the server has no version (a create, not a conflict) or
// when the updated_at delta is within Tolerance.
func Detect(local, server *models.Record) *Conflict {
	if server == nil {
		return nil
	}

	localTS := recordTimestamp(local)
	serverTS := recordTimestamp(server)

	delta := localTS.Sub(serverTS)
	if delta < 0 {
		delta = -delta
	}
	if delta <= Tolerance {
		return nil
	}

	return &Conflict{
		Local:           local,
		Server:          server,
		LocalTimestamp:  localTS,
		ServerTimestamp: serverTS,
	}
}

// recordTimestamp falls back to created_at for records that were never
// updated after creation.
func recordTimestamp(r *models.Record) time.Time {
	if r.UpdatedAt.IsZero() {
		return r.CreatedAt
	}
	return r.UpdatedAt
}
