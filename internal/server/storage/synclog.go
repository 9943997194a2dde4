package storage

import (
	"context"

	"github.com/bizsync/bizsync/internal/models"
)

// SyncLogStorage is the append-only audit trail of sync decisions.
type SyncLogStorage interface {
	// AppendSyncLog writes a batch of audit entries.
	AppendSyncLog(ctx context.Context, entries []*models.SyncLogEntry) error

	// GetSyncLogByDevice returns the most recent audit entries for a device,
	// newest first, at most limit rows.
	GetSyncLogByDevice(ctx context.Context, deviceID string, limit int) ([]*models.SyncLogEntry, error)
}
