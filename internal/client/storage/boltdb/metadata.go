package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const (
	keyWatermark = "last_sync_timestamp"
	keyDeviceID  = "device_id"
)

// SaveWatermark persists the timestamp of the last fully applied pull.
// The stored value never regresses.
func (s *Storage) SaveWatermark(ctx context.Context, watermark time.Time) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if existing := bucket.Get([]byte(keyWatermark)); existing != nil {
			current := int64(binary.BigEndian.Uint64(existing))
			if watermark.UnixMilli() <= current {
				// Monotonicity: an older or equal watermark is a no-op.
				return nil
			}
		}

		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(watermark.UnixMilli()))

		if err := bucket.Put([]byte(keyWatermark), buf); err != nil {
			return fmt.Errorf("failed to save watermark: %w", err)
		}

		return nil
	})
}

// GetWatermark retrieves the timestamp of the last successful pull.
// Returns the zero time if no sync has been performed yet.
func (s *Storage) GetWatermark(ctx context.Context) (time.Time, error) {
	var watermark time.Time

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		buf := bucket.Get([]byte(keyWatermark))
		if buf == nil {
			// Never synced
			return nil
		}

		watermark = time.UnixMilli(int64(binary.BigEndian.Uint64(buf))).UTC()
		return nil
	})

	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get watermark: %w", err)
	}

	return watermark, nil
}

// DeviceID returns this installation's device identifier, generating and
// persisting a UUID on first call.
func (s *Storage) DeviceID(ctx context.Context) (string, error) {
	var deviceID string

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if existing := bucket.Get([]byte(keyDeviceID)); existing != nil {
			deviceID = string(existing)
			return nil
		}

		deviceID = uuid.New().String()
		if err := bucket.Put([]byte(keyDeviceID), []byte(deviceID)); err != nil {
			return fmt.Errorf("failed to save device id: %w", err)
		}

		return nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to get device id: %w", err)
	}

	return deviceID, nil
}
