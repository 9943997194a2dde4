package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bizsync/bizsync/internal/models"
)

// AppendSyncLog writes a batch of audit entries in one transaction.
func (s *Storage) AppendSyncLog(ctx context.Context, entries []*models.SyncLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO sync_log (
			device_id, entity_type, logical_id, entity_id,
			action, outcome, detail, local_time, server_time, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, entry := range entries {
		createdAt := entry.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		_, err := tx.ExecContext(ctx, query,
			entry.DeviceID,
			string(entry.EntityType),
			entry.LogicalID,
			entry.EntityID,
			entry.Action,
			string(entry.Outcome),
			entry.Detail,
			nullMilli(entry.LocalTime),
			nullMilli(entry.ServerTime),
			timeToMilli(createdAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert sync log entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sync log: %w", err)
	}

	return nil
}

// GetSyncLogByDevice returns the most recent audit entries for a device.
func (s *Storage) GetSyncLogByDevice(ctx context.Context, deviceID string, limit int) ([]*models.SyncLogEntry, error) {
	query := `
		SELECT id, device_id, entity_type, logical_id, entity_id,
		       action, outcome, detail, local_time, server_time, created_at
		FROM sync_log
		WHERE device_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync log: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	var entries []*models.SyncLogEntry
	for rows.Next() {
		entry := &models.SyncLogEntry{}
		var entityType string
		var localTime, serverTime sql.NullInt64
		var createdAt int64

		err := rows.Scan(
			&entry.ID,
			&entry.DeviceID,
			&entityType,
			&entry.LogicalID,
			&entry.EntityID,
			&entry.Action,
			&entry.Outcome,
			&entry.Detail,
			&localTime,
			&serverTime,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync log entry: %w", err)
		}

		entry.EntityType = models.EntityType(entityType)
		entry.LocalTime = milliPtr(localTime)
		entry.ServerTime = milliPtr(serverTime)
		entry.CreatedAt = milliToTime(createdAt)

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}
