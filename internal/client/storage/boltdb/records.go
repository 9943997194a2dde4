package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"github.com/bizsync/bizsync/internal/client/storage"
	"github.com/bizsync/bizsync/internal/models"
)

// SaveRecord inserts or overwrites a record by (entity type, logical ID).
func (s *Storage) SaveRecord(ctx context.Context, record *models.Record) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(record.EntityType))
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", record.EntityType)
		}

		if err := bucket.Put([]byte(record.LogicalID), data); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetRecord retrieves a record by logical ID.
func (s *Storage) GetRecord(ctx context.Context, entityType models.EntityType, logicalID string) (*models.Record, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var record *models.Record

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(entityType))
		if bucket == nil {
			return storage.ErrRecordNotFound
		}

		data := bucket.Get([]byte(logicalID))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		record = &models.Record{}
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListRecords returns all records of one entity type.
func (s *Storage) ListRecords(ctx context.Context, entityType models.EntityType) ([]*models.Record, error) {
	return s.filterRecords(entityType, func(*models.Record) bool { return true })
}

// GetUnsyncedRecords returns records not yet acknowledged by the server,
// ordered by updated_at ascending.
func (s *Storage) GetUnsyncedRecords(ctx context.Context, entityType models.EntityType) ([]*models.Record, error) {
	records, err := s.filterRecords(entityType, func(r *models.Record) bool {
		return r.SyncStatus == models.SyncStatusUnsynced
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt.Before(records[j].UpdatedAt)
	})

	return records, nil
}

// MarkSynced flips a record to SYNCED after the server confirmed it.
func (s *Storage) MarkSynced(ctx context.Context, entityType models.EntityType, logicalID string, syncedAt time.Time) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(entityType))
		if bucket == nil {
			return storage.ErrRecordNotFound
		}

		data := bucket.Get([]byte(logicalID))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		var record models.Record
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}

		record.SyncStatus = models.SyncStatusSynced
		record.LastSyncedAt = &syncedAt

		updated, err := json.Marshal(&record)
		if err != nil {
			return fmt.Errorf("failed to marshal updated record: %w", err)
		}

		if err := bucket.Put([]byte(logicalID), updated); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	return nil
}

// CountUnsynced returns the number of pending records per entity type.
func (s *Storage) CountUnsynced(ctx context.Context) (map[models.EntityType]int, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	counts := make(map[models.EntityType]int, len(models.EntityTypes()))

	err := s.db.View(func(tx *bbolt.Tx) error {
		for _, et := range models.EntityTypes() {
			bucket := tx.Bucket([]byte(et))
			if bucket == nil {
				continue
			}

			if err := bucket.ForEach(func(k, v []byte) error {
				var record models.Record
				if err := json.Unmarshal(v, &record); err != nil {
					return fmt.Errorf("failed to unmarshal record: %w", err)
				}
				if record.SyncStatus == models.SyncStatusUnsynced {
					counts[et]++
				}
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to count unsynced records: %w", err)
	}

	return counts, nil
}

// filterRecords scans one entity-type bucket and keeps records matching keep.
func (s *Storage) filterRecords(entityType models.EntityType, keep func(*models.Record) bool) ([]*models.Record, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var records []*models.Record

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(entityType))
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var record models.Record
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}

			if keep(&record) {
				records = append(records, &record)
			}

			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan %s records: %w", entityType, err)
	}

	return records, nil
}
