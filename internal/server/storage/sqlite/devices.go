package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bizsync/bizsync/internal/models"
	"github.com/bizsync/bizsync/internal/server/storage"
)

// UpsertDevice registers a device or refreshes its last pull time.
func (s *Storage) UpsertDevice(ctx context.Context, device *models.Device) error {
	query := `
		INSERT INTO devices (id, user_id, last_pull_at)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			user_id = excluded.user_id,
			last_pull_at = excluded.last_pull_at
	`

	_, err := s.db.ExecContext(ctx, query,
		device.ID,
		device.UserID,
		nullMilli(device.LastPullAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert device: %w", err)
	}

	return nil
}

// GetDevice retrieves a device by its id
func (s *Storage) GetDevice(ctx context.Context, deviceID string) (*models.Device, error) {
	query := `
		SELECT id, user_id, last_pull_at
		FROM devices
		WHERE id = ?
	`

	device := &models.Device{}
	var lastPullAt sql.NullInt64

	err := s.db.QueryRowContext(ctx, query, deviceID).Scan(
		&device.ID,
		&device.UserID,
		&lastPullAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDeviceNotFound
		}
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	device.LastPullAt = milliPtr(lastPullAt)

	return device, nil
}
