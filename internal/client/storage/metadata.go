package storage

import (
	"context"
	"time"
)

//go:generate moq -out metadata_mock.go . MetadataStore

// MetadataStore defines the client's sync bookkeeping: the pull watermark and
// the device identity.
type MetadataStore interface {
	// GetWatermark returns the timestamp up to which this client has
	// successfully pulled all server changes. Zero time if never synced.
	GetWatermark(ctx context.Context) (time.Time, error)

	// SaveWatermark persists a new watermark. The stored value never
	// regresses: saving an older timestamp than the current one is a no-op.
	SaveWatermark(ctx context.Context, watermark time.Time) error

	// DeviceID returns this installation's device identifier, generating and
	// persisting one on first call.
	DeviceID(ctx context.Context) (string, error)
}
