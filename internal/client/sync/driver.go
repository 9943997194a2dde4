// Package sync implements the client-side sync driver: a single-flight
// push-then-pull cycle against the server's sync endpoint.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	httpClient "github.com/bizsync/bizsync/internal/client/api"
	"github.com/bizsync/bizsync/internal/client/storage"
	"github.com/bizsync/bizsync/internal/models"
	"github.com/bizsync/bizsync/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// State is the driver's current position in the sync cycle. Exposed so
// callers can observe progress instead of poking at hidden flags.
type State string

const (
	StateIdle    State = "IDLE"
	StatePushing State = "PUSHING"
	StatePulling State = "PULLING"
)

// ErrSyncInProgress is returned when a cycle is requested while another one
// is still running. The request is rejected, not queued; the caller retries
// later, typically on the next connectivity-restore event.
var ErrSyncInProgress = errors.New("sync already in progress")

// Service defines the sync driver operations.
type Service interface {
	// Sync runs one full cycle: push local changes, then pull server changes.
	Sync(ctx context.Context, accessToken string) (*Result, error)

	// State returns the driver's current state.
	State() State

	// GetPendingCount returns the number of unsynced local records per
	// entity type.
	GetPendingCount(ctx context.Context) (map[models.EntityType]int, error)
}

// Result contains the counters of one sync cycle.
type Result struct {
	Pushed    int // records sent to the server
	Applied   int // records the server confirmed (CREATE or UPDATE)
	Conflicts int // conflicts the server resolved during push
	Errors    int // records the server failed to apply
	Pulled    int // records received and applied locally
}

// Driver orchestrates push-then-pull. Push goes first so the device's own
// just-submitted edits are not overwritten by a pull of stale server state.
type Driver struct {
	apiClient httpClient.ClientAPI
	records   storage.RecordStore
	metadata  storage.MetadataStore
	logger    *slog.Logger
	mu        sync.Mutex
	state     State
}

// NewDriver creates a new sync driver. One driver per app session.
func NewDriver(apiClient httpClient.ClientAPI, records storage.RecordStore, metadata storage.MetadataStore, logger *slog.Logger) *Driver {
	return &Driver{
		apiClient: apiClient,
		records:   records,
		metadata:  metadata,
		logger:    logger,
		state:     StateIdle,
	}
}

// State returns the driver's current state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// setState transitions the driver unconditionally.
func (d *Driver) setState(s State) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
}

// begin moves IDLE -> PUSHING, failing if a cycle is already active.
func (d *Driver) begin() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateIdle {
		return ErrSyncInProgress
	}
	d.state = StatePushing
	return nil
}

// Sync runs one full cycle. On any cycle-level failure the driver returns to
// IDLE with local sync flags untouched, so the next cycle retries the same
// records.
func (d *Driver) Sync(ctx context.Context, accessToken string) (*Result, error) {
	if err := d.begin(); err != nil {
		return nil, err
	}
	defer d.setState(StateIdle)

	deviceID, err := d.metadata.DeviceID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device id: %w", err)
	}

	d.logger.Info("Starting synchronization", "device_id", deviceID)

	result := &Result{}

	if err := d.push(ctx, accessToken, deviceID, result); err != nil {
		return nil, fmt.Errorf("push failed: %w", err)
	}

	d.setState(StatePulling)

	if err := d.pull(ctx, accessToken, deviceID, result); err != nil {
		return nil, fmt.Errorf("pull failed: %w", err)
	}

	d.logger.Info("Synchronization completed",
		"pushed", result.Pushed,
		"applied", result.Applied,
		"conflicts", result.Conflicts,
		"errors", result.Errors,
		"pulled", result.Pulled)

	return result, nil
}

// push extracts every unsynced local record and sends it to the server.
// Records the server confirms are flipped to SYNCED; records it reports in
// errors stay UNSYNCED and ride along on the next cycle.
func (d *Driver) push(ctx context.Context, accessToken, deviceID string, result *Result) error {
	changes := api.ChangeSet{}

	for _, et := range models.EntityTypes() {
		records, err := d.records.GetUnsyncedRecords(ctx, et)
		if err != nil {
			return fmt.Errorf("failed to extract local changes for %s: %w", et, err)
		}
		if len(records) == 0 {
			continue
		}

		wire := make([]api.Record, 0, len(records))
		for _, r := range records {
			wire = append(wire, toAPIRecord(r))
		}
		changes[string(et)] = wire
		result.Pushed += len(records)
	}

	if result.Pushed == 0 {
		d.logger.Debug("No local changes to push")
		return nil
	}

	d.logger.Info("Pushing local changes", "count", result.Pushed)

	resp, err := d.apiClient.Push(ctx, accessToken, api.PushRequest{
		DeviceID: deviceID,
		Changes:  changes,
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, applied := range resp.Applied {
		et, err := models.ParseEntityType(applied.EntityType)
		if err != nil {
			d.logger.Warn("Server confirmed unknown entity type", "entity_type", applied.EntityType)
			continue
		}

		if err := d.records.MarkSynced(ctx, et, applied.UniqueID, now); err != nil {
			// The record stays UNSYNCED and is re-pushed next cycle; the
			// replay is detected server-side as a matching-timestamp update.
			d.logger.Warn("Failed to mark record synced",
				"entity_type", et,
				"logical_id", applied.UniqueID,
				"error", err)
		}
	}

	result.Applied = len(resp.Applied)
	result.Conflicts = len(resp.Conflicts)
	result.Errors = len(resp.Errors)

	for _, recErr := range resp.Errors {
		d.logger.Warn("Server failed to apply record",
			"entity_type", recErr.EntityType,
			"entity_id", recErr.EntityID,
			"error", recErr.Error)
	}

	return nil
}

// pull fetches server changes since the watermark and applies them locally,
// looping while any entity bucket comes back at the batch cap. The persisted
// watermark only moves after every record of a batch has been applied.
func (d *Driver) pull(ctx context.Context, accessToken, deviceID string, result *Result) error {
	watermark, err := d.metadata.GetWatermark(ctx)
	if err != nil {
		return fmt.Errorf("failed to get watermark: %w", err)
	}

	for {
		req := api.PullRequest{DeviceID: deviceID}
		if !watermark.IsZero() {
			since := watermark
			req.LastSyncTimestamp = &since
		}

		resp, err := d.apiClient.Pull(ctx, accessToken, req)
		if err != nil {
			return err
		}

		applied, resumeAt, full, err := d.applyBatch(ctx, resp)
		if err != nil {
			return err
		}
		result.Pulled += applied

		if !full {
			// Backlog drained: settle on the server-reported pull timestamp.
			if err := d.metadata.SaveWatermark(ctx, resp.Timestamp); err != nil {
				return fmt.Errorf("failed to save watermark: %w", err)
			}
			return nil
		}

		// A full bucket means more backlog. Resume from the oldest capped
		// bucket's last record; jumping to the newest record across all
		// buckets would skip the capped bucket's remainder.
		if !resumeAt.After(watermark) {
			d.logger.Warn("Full batch without watermark progress, stopping pull",
				"watermark", watermark)
			return nil
		}
		watermark = resumeAt
		if err := d.metadata.SaveWatermark(ctx, watermark); err != nil {
			return fmt.Errorf("failed to save watermark: %w", err)
		}

		d.logger.Info("Pull batch full, draining backlog", "watermark", watermark)
	}
}

// applyBatch upserts every pulled record into the local store by logical ID.
// It reports whether any entity bucket hit the server's batch cap and, when
// one did, the timestamp the next pull must resume from: the minimum over the
// capped buckets of their newest applied updated_at. Short buckets never push
// the resume point forward; their records past that point are simply
// re-fetched, which the upsert absorbs.
func (d *Driver) applyBatch(ctx context.Context, resp *api.PullResponse) (applied int, resumeAt time.Time, full bool, err error) {
	for name, records := range resp.Changes {
		et, perr := models.ParseEntityType(name)
		if perr != nil {
			d.logger.Warn("Skipping unknown entity type from server", "entity_type", name)
			continue
		}

		var bucketMax time.Time
		for i := range records {
			record := fromAPIRecord(et, &records[i])
			record.SyncStatus = models.SyncStatusSynced
			ts := resp.Timestamp
			record.LastSyncedAt = &ts

			if err := d.records.SaveRecord(ctx, record); err != nil {
				// Abort the cycle without advancing the watermark: the whole
				// batch is re-pulled next time.
				return applied, resumeAt, full, fmt.Errorf("failed to apply %s record %s: %w", et, record.LogicalID, err)
			}

			applied++
			if record.UpdatedAt.After(bucketMax) {
				bucketMax = record.UpdatedAt
			}
		}

		if len(records) >= api.MaxBatchSize {
			full = true
			if resumeAt.IsZero() || bucketMax.Before(resumeAt) {
				resumeAt = bucketMax
			}
		}
	}

	return applied, resumeAt, full, nil
}

// GetPendingCount returns the number of unsynced local records per entity type.
func (d *Driver) GetPendingCount(ctx context.Context) (map[models.EntityType]int, error) {
	counts, err := d.records.CountUnsynced(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending records: %w", err)
	}
	return counts, nil
}

// toAPIRecord converts a local record to its wire form.
func toAPIRecord(r *models.Record) api.Record {
	return api.Record{
		LogicalID: r.LogicalID,
		Payload:   r.Payload,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// fromAPIRecord converts a wire record to its local form.
func fromAPIRecord(et models.EntityType, r *api.Record) *models.Record {
	return &models.Record{
		LogicalID:  r.LogicalID,
		EntityType: et,
		Payload:    r.Payload,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
