package storage

import (
	"context"
	"time"

	"github.com/bizsync/bizsync/internal/models"
)

// RecordStorage defines persistence for synced business records. One row per
// (entity type, logical id); the numeric row id is the server's own identity.
type RecordStorage interface {
	// GetRecord retrieves a record by its logical ID.
	// Returns ErrRecordNotFound if it doesn't exist.
	GetRecord(ctx context.Context, entityType models.EntityType, logicalID string) (*models.Record, error)

	// SaveRecord inserts or overwrites a record keyed by
	// (entity type, logical id). Returns the storage row id and whether the
	// record was newly created.
	SaveRecord(ctx context.Context, record *models.Record) (int64, bool, error)

	// GetChangedSince returns records of one entity type with
	// updated_at > since, ordered by updated_at ascending, at most limit rows.
	// A zero since returns everything.
	GetChangedSince(ctx context.Context, entityType models.EntityType, since time.Time, limit int) ([]*models.Record, error)

	// CountPending returns the number of records per entity type whose
	// sync_status is not SYNCED.
	CountPending(ctx context.Context) (map[models.EntityType]int, error)
}
