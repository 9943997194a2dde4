package storage

import (
	"context"

	"github.com/bizsync/bizsync/internal/models"
)

// DeviceStorage tracks client installations so the status endpoint can report
// a real per-device last-sync time.
type DeviceStorage interface {
	// UpsertDevice registers a device or refreshes its last pull time.
	UpsertDevice(ctx context.Context, device *models.Device) error

	// GetDevice retrieves a device by its id.
	// Returns ErrDeviceNotFound if the device never pulled.
	GetDevice(ctx context.Context, deviceID string) (*models.Device, error)
}
