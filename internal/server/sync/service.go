// Package sync implements the server half of the sync protocol: applying
// pushed change sets with conflict resolution, and extracting changed records
// for pulls.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bizsync/bizsync/internal/conflict"
	"github.com/bizsync/bizsync/internal/models"
	"github.com/bizsync/bizsync/internal/server/storage"
	"github.com/bizsync/bizsync/pkg/api"
)

// Service processes push and pull batches against the server record store.
type Service struct {
	records  storage.RecordStorage
	devices  storage.DeviceStorage
	syncLog  storage.SyncLogStorage
	logger   *slog.Logger
	strategy conflict.Strategy

	// now is swappable in tests.
	now func() time.Time
}

// NewService creates the sync service. strategy is the configured default
// conflict resolution strategy applied at push time.
func NewService(
	records storage.RecordStorage,
	devices storage.DeviceStorage,
	syncLog storage.SyncLogStorage,
	logger *slog.Logger,
	strategy conflict.Strategy,
) *Service {
	return &Service{
		records:  records,
		devices:  devices,
		syncLog:  syncLog,
		logger:   logger,
		strategy: strategy,
		now:      time.Now,
	}
}

// Push applies a client change set. Every record is processed independently:
// a failing record lands in the response's errors list and never aborts the
// rest of the batch.
func (s *Service) Push(ctx context.Context, userID, deviceID string, changes api.ChangeSet) (*api.PushResponse, error) {
	resp := &api.PushResponse{
		Applied:   []api.AppliedChange{},
		Conflicts: []api.ConflictReport{},
		Errors:    []api.RecordError{},
	}

	var audit []*models.SyncLogEntry

	// Deterministic processing order across the map.
	names := make([]string, 0, len(changes))
	for name := range changes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		et, err := models.ParseEntityType(name)
		if err != nil {
			for _, wire := range changes[name] {
				resp.Errors = append(resp.Errors, api.RecordError{
					EntityType: name,
					EntityID:   wire.LogicalID,
					Error:      err.Error(),
				})
			}
			continue
		}

		for i := range changes[name] {
			wire := &changes[name][i]
			applied, conflictReport, entry, err := s.applyRecord(ctx, userID, deviceID, et, wire)
			if entry != nil {
				audit = append(audit, entry)
			}
			if err != nil {
				resp.Errors = append(resp.Errors, api.RecordError{
					EntityType: name,
					EntityID:   wire.LogicalID,
					Error:      err.Error(),
				})
				continue
			}
			if conflictReport != nil {
				resp.Conflicts = append(resp.Conflicts, *conflictReport)
				continue
			}
			resp.Applied = append(resp.Applied, *applied)
		}
	}

	resp.Success = len(resp.Errors) == 0

	if err := s.syncLog.AppendSyncLog(ctx, audit); err != nil {
		// The push itself succeeded; losing audit rows is logged, not fatal.
		s.logger.Error("Failed to append sync log", "error", err, "device_id", deviceID)
	}

	s.logger.Info("Push processed",
		"device_id", deviceID,
		"applied", len(resp.Applied),
		"conflicts", len(resp.Conflicts),
		"errors", len(resp.Errors))

	return resp, nil
}

// applyRecord applies one pushed record: create when unknown, update when the
// timestamps agree within tolerance, resolve otherwise.
func (s *Service) applyRecord(ctx context.Context, userID, deviceID string, et models.EntityType, wire *api.Record) (*api.AppliedChange, *api.ConflictReport, *models.SyncLogEntry, error) {
	if wire.LogicalID == "" {
		return nil, nil, nil, errors.New("missing logical id")
	}

	incoming := fromAPIRecord(et, wire)
	if incoming.CreatedBy == "" {
		incoming.CreatedBy = userID
	}

	now := s.now().UTC()
	entry := &models.SyncLogEntry{
		DeviceID:   deviceID,
		EntityType: et,
		LogicalID:  wire.LogicalID,
		LocalTime:  &incoming.UpdatedAt,
		CreatedAt:  now,
	}

	existing, err := s.records.GetRecord(ctx, et, wire.LogicalID)
	if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
		entry.Action = "UPDATE"
		entry.Outcome = models.OutcomeFailed
		entry.Detail = err.Error()
		return nil, nil, entry, fmt.Errorf("failed to load record: %w", err)
	}

	c := conflict.Detect(incoming, existing)
	if c == nil {
		// Create, or an update within the tolerance window.
		action := "UPDATE"
		if existing == nil {
			action = "CREATE"
		} else {
			// Identity and provenance stay with the server's copy.
			incoming.CreatedAt = existing.CreatedAt
			if existing.CreatedBy != "" {
				incoming.CreatedBy = existing.CreatedBy
			}
		}

		id, _, err := s.saveSynced(ctx, incoming, now)
		entry.Action = action
		entry.EntityID = id
		if err != nil {
			entry.Outcome = models.OutcomeFailed
			entry.Detail = err.Error()
			return nil, nil, entry, err
		}
		entry.Outcome = models.OutcomeSuccess

		return &api.AppliedChange{
			EntityType: string(et),
			Action:     action,
			UniqueID:   wire.LogicalID,
			EntityID:   id,
		}, nil, entry, nil
	}

	entry.Action = "UPDATE"
	entry.ServerTime = &c.ServerTimestamp

	resolved, err := conflict.Resolve(c, s.strategy)
	if err != nil {
		entry.Outcome = models.OutcomeFailed
		entry.Detail = err.Error()
		return nil, nil, entry, err
	}

	id, _, err := s.saveSynced(ctx, resolved, now)
	entry.EntityID = id
	if err != nil {
		entry.Outcome = models.OutcomeFailed
		entry.Detail = err.Error()
		return nil, nil, entry, err
	}

	entry.Outcome = models.OutcomeConflict
	entry.Detail = string(s.strategy)

	s.logger.Debug("Conflict resolved",
		"entity_type", et,
		"logical_id", wire.LogicalID,
		"strategy", s.strategy,
		"winner", c.Winner())

	return nil, &api.ConflictReport{
		EntityType: string(et),
		Resolution: string(s.strategy),
		Winner:     c.Winner(),
		EntityID:   id,
	}, entry, nil
}

func (s *Service) saveSynced(ctx context.Context, record *models.Record, now time.Time) (int64, bool, error) {
	record.SyncStatus = models.SyncStatusSynced
	ts := now
	record.LastSyncedAt = &ts
	return s.records.SaveRecord(ctx, record)
}

// Pull returns all records changed after since, capped at MaxBatchSize per
// entity type, and refreshes the device registry. Pull is a pure read of
// record state: its conflicts list is always empty.
func (s *Service) Pull(ctx context.Context, userID, deviceID string, since *time.Time) (*api.PullResponse, error) {
	watermark := time.Time{}
	if since != nil {
		watermark = *since
	}

	changes := api.ChangeSet{}
	total := 0

	for _, et := range models.EntityTypes() {
		records, err := s.records.GetChangedSince(ctx, et, watermark, api.MaxBatchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to extract changes for %s: %w", et, err)
		}
		if len(records) == 0 {
			continue
		}

		wire := make([]api.Record, 0, len(records))
		for _, r := range records {
			wire = append(wire, toAPIRecord(r))
		}
		changes[string(et)] = wire
		total += len(records)
	}

	now := s.now().UTC()

	if err := s.devices.UpsertDevice(ctx, &models.Device{
		ID:         deviceID,
		UserID:     userID,
		LastPullAt: &now,
	}); err != nil {
		s.logger.Error("Failed to upsert device", "error", err, "device_id", deviceID)
	}

	s.logger.Info("Pull processed", "device_id", deviceID, "records", total, "since", watermark)

	return &api.PullResponse{
		Timestamp: now,
		DeviceID:  deviceID,
		Changes:   changes,
		Conflicts: []api.ConflictReport{},
		Success:   true,
	}, nil
}

// Status reports the device's last pull time and the server-side pending
// counts.
func (s *Service) Status(ctx context.Context, deviceID string) (*api.StatusResponse, error) {
	resp := &api.StatusResponse{
		DeviceID: deviceID,
		Success:  true,
	}

	device, err := s.devices.GetDevice(ctx, deviceID)
	if err != nil && !errors.Is(err, storage.ErrDeviceNotFound) {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}
	if device != nil {
		resp.LastSync = device.LastPullAt
	}

	counts, err := s.records.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending records: %w", err)
	}

	resp.Breakdown = make(map[string]int, len(counts))
	for et, n := range counts {
		resp.Breakdown[string(et)] = n
		resp.PendingChanges += n
	}

	resp.Status = "synced"
	if resp.PendingChanges > 0 {
		resp.Status = "pending"
	}

	return resp, nil
}

// ResolveConflict records a manual adjudication. Conflicts are auto-resolved
// at push time, so this applies the chosen record (if any) and writes an
// audit row.
func (s *Service) ResolveConflict(ctx context.Context, deviceID string, req api.ResolveConflictRequest) (*api.ResolveConflictResponse, error) {
	strategy, err := conflict.ParseStrategy(req.Resolution)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	entry := &models.SyncLogEntry{
		DeviceID:  deviceID,
		LogicalID: req.ConflictID,
		Action:    "RESOLVE",
		Outcome:   models.OutcomeSuccess,
		Detail:    string(strategy),
		CreatedAt: now,
	}

	if req.ChosenRecord != nil {
		record, found, applyErr := s.applyChosenRecord(ctx, req.ChosenRecord, now)
		if applyErr != nil {
			return nil, applyErr
		}
		if found {
			entry.EntityType = record.EntityType
			entry.LogicalID = record.LogicalID
		}
	}

	if err := s.syncLog.AppendSyncLog(ctx, []*models.SyncLogEntry{entry}); err != nil {
		s.logger.Error("Failed to append resolution log", "error", err, "conflict_id", req.ConflictID)
	}

	return &api.ResolveConflictResponse{
		ConflictID: req.ConflictID,
		Resolution: string(strategy),
		Message:    "conflict resolution recorded",
		Success:    true,
	}, nil
}

// applyChosenRecord overwrites the stored record with the manually chosen
// copy. The record is located by logical id across entity types.
func (s *Service) applyChosenRecord(ctx context.Context, wire *api.Record, now time.Time) (*models.Record, bool, error) {
	for _, et := range models.EntityTypes() {
		existing, err := s.records.GetRecord(ctx, et, wire.LogicalID)
		if errors.Is(err, storage.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, false, fmt.Errorf("failed to locate record: %w", err)
		}

		chosen := fromAPIRecord(et, wire)
		chosen.CreatedAt = existing.CreatedAt
		if chosen.CreatedBy == "" {
			chosen.CreatedBy = existing.CreatedBy
		}
		if _, _, err := s.saveSynced(ctx, chosen, now); err != nil {
			return nil, false, err
		}
		return chosen, true, nil
	}
	return nil, false, nil
}

func toAPIRecord(r *models.Record) api.Record {
	return api.Record{
		LogicalID: r.LogicalID,
		Payload:   r.Payload,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

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
