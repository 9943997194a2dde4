package storage

import (
	"context"
	"time"

	"github.com/bizsync/bizsync/internal/models"
)

//go:generate moq -out recordstore_mock.go . RecordStore

// RecordStore defines the local record store: one persistent collection per
// entity type, keyed by logical ID.
type RecordStore interface {
	// SaveRecord inserts or overwrites a record by (entity type, logical ID).
	SaveRecord(ctx context.Context, record *models.Record) error

	// GetRecord retrieves a record by logical ID.
	// Returns ErrRecordNotFound if the record doesn't exist.
	GetRecord(ctx context.Context, entityType models.EntityType, logicalID string) (*models.Record, error)

	// ListRecords returns all records of one entity type.
	ListRecords(ctx context.Context, entityType models.EntityType) ([]*models.Record, error)

	// GetUnsyncedRecords returns records with mutations not yet acknowledged
	// by the server, ordered by updated_at ascending.
	GetUnsyncedRecords(ctx context.Context, entityType models.EntityType) ([]*models.Record, error)

	// MarkSynced flips a record to SYNCED after the server confirmed it.
	// Returns ErrRecordNotFound if the record doesn't exist.
	MarkSynced(ctx context.Context, entityType models.EntityType, logicalID string, syncedAt time.Time) error

	// CountUnsynced returns the number of pending records per entity type.
	CountUnsynced(ctx context.Context) (map[models.EntityType]int, error)
}
