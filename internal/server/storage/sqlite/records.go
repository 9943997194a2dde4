package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bizsync/bizsync/internal/models"
	"github.com/bizsync/bizsync/internal/server/storage"
)

// GetRecord retrieves a record by its logical ID.
// Returns ErrRecordNotFound if it doesn't exist.
func (s *Storage) GetRecord(ctx context.Context, entityType models.EntityType, logicalID string) (*models.Record, error) {
	query := `
		SELECT id, entity_type, logical_id, payload, created_by,
		       sync_status, created_at, updated_at, last_synced_at
		FROM records
		WHERE entity_type = ? AND logical_id = ?
	`

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, string(entityType), logicalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return record, nil
}

// SaveRecord inserts or overwrites a record keyed by (entity type, logical id).
// Returns the storage row id and whether the record was newly created.
func (s *Storage) SaveRecord(ctx context.Context, record *models.Record) (int64, bool, error) {
	existing, err := s.GetRecord(ctx, record.EntityType, record.LogicalID)
	if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
		return 0, false, fmt.Errorf("failed to check existing record: %w", err)
	}

	if existing != nil {
		query := `
			UPDATE records
			SET payload = ?, created_by = ?, sync_status = ?,
			    created_at = ?, updated_at = ?, last_synced_at = ?
			WHERE id = ?
		`

		_, err := s.db.ExecContext(ctx, query,
			string(record.Payload),
			record.CreatedBy,
			string(record.SyncStatus),
			timeToMilli(record.CreatedAt),
			timeToMilli(record.UpdatedAt),
			nullMilli(record.LastSyncedAt),
			existing.ID,
		)
		if err != nil {
			return 0, false, fmt.Errorf("failed to update record: %w", err)
		}

		return existing.ID, false, nil
	}

	query := `
		INSERT INTO records (
			entity_type, logical_id, payload, created_by,
			sync_status, created_at, updated_at, last_synced_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		string(record.EntityType),
		record.LogicalID,
		string(record.Payload),
		record.CreatedBy,
		string(record.SyncStatus),
		timeToMilli(record.CreatedAt),
		timeToMilli(record.UpdatedAt),
		nullMilli(record.LastSyncedAt),
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to get insert id: %w", err)
	}

	return id, true, nil
}

// GetChangedSince returns records of one entity type with updated_at > since,
// ordered by updated_at ascending, at most limit rows.
func (s *Storage) GetChangedSince(ctx context.Context, entityType models.EntityType, since time.Time, limit int) ([]*models.Record, error) {
	query := `
		SELECT id, entity_type, logical_id, payload, created_by,
		       sync_status, created_at, updated_at, last_synced_at
		FROM records
		WHERE entity_type = ? AND updated_at > ?
		ORDER BY updated_at ASC
		LIMIT ?
	`

	sinceMilli := int64(0)
	if !since.IsZero() {
		sinceMilli = timeToMilli(since)
	}

	rows, err := s.db.QueryContext(ctx, query, string(entityType), sinceMilli, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query changed records: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	return scanRecords(rows)
}

// CountPending returns the number of records per entity type whose
// sync_status is not SYNCED.
func (s *Storage) CountPending(ctx context.Context) (map[models.EntityType]int, error) {
	query := `
		SELECT entity_type, COUNT(*)
		FROM records
		WHERE sync_status != ?
		GROUP BY entity_type
	`

	rows, err := s.db.QueryContext(ctx, query, string(models.SyncStatusSynced))
	if err != nil {
		return nil, fmt.Errorf("failed to count pending records: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	counts := make(map[models.EntityType]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("failed to scan pending count: %w", err)
		}
		et, err := models.ParseEntityType(name)
		if err != nil {
			continue
		}
		counts[et] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.Record, error) {
	record := &models.Record{}
	var entityType, payload string
	var createdAt, updatedAt int64
	var lastSyncedAt sql.NullInt64

	err := row.Scan(
		&record.ID,
		&entityType,
		&record.LogicalID,
		&payload,
		&record.CreatedBy,
		&record.SyncStatus,
		&createdAt,
		&updatedAt,
		&lastSyncedAt,
	)
	if err != nil {
		return nil, err
	}

	record.EntityType = models.EntityType(entityType)
	record.Payload = json.RawMessage(payload)
	record.CreatedAt = milliToTime(createdAt)
	record.UpdatedAt = milliToTime(updatedAt)
	record.LastSyncedAt = milliPtr(lastSyncedAt)

	return record, nil
}

func scanRecords(rows *sql.Rows) ([]*models.Record, error) {
	var records []*models.Record

	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}
