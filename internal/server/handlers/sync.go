package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bizsync/bizsync/internal/conflict"
	"github.com/bizsync/bizsync/pkg/api"
)

// contextKey is the type for request-context keys set by middleware.
type contextKey string

const (
	// UserIDKey holds the authenticated user's ID.
	UserIDKey contextKey = "user_id"
	// UsernameKey holds the authenticated user's name.
	UsernameKey contextKey = "username"
)

// GetUserID extracts the authenticated user ID from the request context.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetUsername extracts the authenticated username from the request context.
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// errMissingParameter is the error code for a request missing a required
// field. Clients key on the string, not the message.
const errMissingParameter = "MissingParameter"

// SyncService is the handler's view of the sync engine.
type SyncService interface {
	Push(ctx context.Context, userID, deviceID string, changes api.ChangeSet) (*api.PushResponse, error)
	Pull(ctx context.Context, userID, deviceID string, since *time.Time) (*api.PullResponse, error)
	Status(ctx context.Context, deviceID string) (*api.StatusResponse, error)
	ResolveConflict(ctx context.Context, deviceID string, req api.ResolveConflictRequest) (*api.ResolveConflictResponse, error)
}

// SyncHandler serves the sync endpoints.
type SyncHandler struct {
	logger  *slog.Logger
	service SyncService
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(logger *slog.Logger, service SyncService) *SyncHandler {
	return &SyncHandler{
		logger:  logger,
		service: service,
	}
}

// Pull handles POST /api/v1/sync/pull.
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.PullRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode pull request", slog.Any("error", err))
		h.sendError(w, http.StatusText(http.StatusBadRequest), "invalid request body", http.StatusBadRequest)
		return
	}

	if req.DeviceID == "" {
		h.sendError(w, errMissingParameter, "deviceId is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Pull(ctx, userID, req.DeviceID, req.LastSyncTimestamp)
	if err != nil {
		h.logger.ErrorContext(ctx, "pull failed", slog.Any("error", err), slog.String("device_id", req.DeviceID))
		h.sendError(w, http.StatusText(http.StatusInternalServerError), "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Push handles POST /api/v1/sync/push.
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode push request", slog.Any("error", err))
		h.sendError(w, http.StatusText(http.StatusBadRequest), "invalid request body", http.StatusBadRequest)
		return
	}

	if req.DeviceID == "" {
		h.sendError(w, errMissingParameter, "deviceId is required", http.StatusBadRequest)
		return
	}
	if req.Changes == nil {
		h.sendError(w, errMissingParameter, "changes is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Push(ctx, userID, req.DeviceID, req.Changes)
	if err != nil {
		h.logger.ErrorContext(ctx, "push failed", slog.Any("error", err), slog.String("device_id", req.DeviceID))
		h.sendError(w, http.StatusText(http.StatusInternalServerError), "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// FullSync handles POST /api/v1/sync/full: a push followed by a pull in one
// round trip.
func (h *SyncHandler) FullSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.FullSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode full sync request", slog.Any("error", err))
		h.sendError(w, http.StatusText(http.StatusBadRequest), "invalid request body", http.StatusBadRequest)
		return
	}

	if req.DeviceID == "" {
		h.sendError(w, errMissingParameter, "deviceId is required", http.StatusBadRequest)
		return
	}

	resp := &api.FullSyncResponse{Success: true}

	if len(req.Changes) > 0 {
		pushResp, err := h.service.Push(ctx, userID, req.DeviceID, req.Changes)
		if err != nil {
			h.logger.ErrorContext(ctx, "full sync push failed", slog.Any("error", err), slog.String("device_id", req.DeviceID))
			h.sendError(w, http.StatusText(http.StatusInternalServerError), "internal server error", http.StatusInternalServerError)
			return
		}
		resp.Push = pushResp
		resp.Success = resp.Success && pushResp.Success
	}

	pullResp, err := h.service.Pull(ctx, userID, req.DeviceID, req.LastSyncTimestamp)
	if err != nil {
		h.logger.ErrorContext(ctx, "full sync pull failed", slog.Any("error", err), slog.String("device_id", req.DeviceID))
		h.sendError(w, http.StatusText(http.StatusInternalServerError), "internal server error", http.StatusInternalServerError)
		return
	}
	resp.Pull = pullResp
	resp.Timestamp = pullResp.Timestamp

	h.sendJSON(w, resp, http.StatusOK)
}

// Status handles GET /api/v1/sync/status/{deviceId}.
func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := GetUserID(ctx); !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	deviceID := r.PathValue("deviceId")
	if deviceID == "" {
		h.sendError(w, errMissingParameter, "deviceId is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Status(ctx, deviceID)
	if err != nil {
		h.logger.ErrorContext(ctx, "status failed", slog.Any("error", err), slog.String("device_id", deviceID))
		h.sendError(w, http.StatusText(http.StatusInternalServerError), "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// ResolveConflict handles POST /api/v1/sync/resolve-conflict.
func (h *SyncHandler) ResolveConflict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := GetUserID(ctx); !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// deviceId is optional here: the conflict id alone identifies the record,
	// and the audit trail tolerates an empty device.
	var body struct {
		DeviceID string `json:"deviceId"`
		api.ResolveConflictRequest
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.WarnContext(ctx, "failed to decode resolve request", slog.Any("error", err))
		h.sendError(w, http.StatusText(http.StatusBadRequest), "invalid request body", http.StatusBadRequest)
		return
	}

	if body.ConflictID == "" {
		h.sendError(w, errMissingParameter, "conflictId is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ResolveConflict(ctx, body.DeviceID, body.ResolveConflictRequest)
	if err != nil {
		if errors.Is(err, conflict.ErrUnknownStrategy) {
			h.sendError(w, http.StatusText(http.StatusBadRequest), err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "resolve conflict failed", slog.Any("error", err), slog.String("conflict_id", body.ConflictID))
		h.sendError(w, http.StatusText(http.StatusInternalServerError), "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, resp, http.StatusOK)
}

func (h *SyncHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

func (h *SyncHandler) sendError(w http.ResponseWriter, code, message string, statusCode int) {
	h.sendJSON(w, api.ErrorResponse{
		Error:   code,
		Message: message,
	}, statusCode)
}
