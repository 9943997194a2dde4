package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizsync/bizsync/pkg/api"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(api.TokenResponse{
			AccessToken: "test-token",
			ExpiresIn:   900,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Login(context.Background(), api.LoginRequest{Username: "alice", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "test-token", resp.AccessToken)
	assert.Equal(t, int64(900), resp.ExpiresIn)
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "invalid credentials"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Login(context.Background(), api.LoginRequest{Username: "alice", Password: "wrong"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestClient_Push(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/v1/sync/push", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

		var req api.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "device-1", req.DeviceID)
		require.Len(t, req.Changes["customers"], 1)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(api.PushResponse{
			Success: true,
			Applied: []api.AppliedChange{
				{EntityType: "customers", EntityID: 1, Action: "CREATE", UniqueID: "CUST-1"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Push(context.Background(), "token-abc", api.PushRequest{
		DeviceID: "device-1",
		Changes: api.ChangeSet{
			"customers": []api.Record{{LogicalID: "CUST-1", Payload: json.RawMessage(`{"name":"A"}`)}},
		},
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, resp.Applied, 1)
	assert.Equal(t, "CREATE", resp.Applied[0].Action)
}

func TestClient_Pull(t *testing.T) {
	since := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sync/pull", r.URL.Path)

		var req api.PullRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "device-1", req.DeviceID)
		require.NotNil(t, req.LastSyncTimestamp)
		assert.True(t, req.LastSyncTimestamp.Equal(since))

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(api.PullResponse{
			Success:   true,
			DeviceID:  req.DeviceID,
			Timestamp: since.Add(time.Hour),
			Changes: api.ChangeSet{
				"orders": []api.Record{{LogicalID: "ORD-1", Payload: json.RawMessage(`{}`)}},
			},
			Conflicts: []api.ConflictReport{},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Pull(context.Background(), "token-abc", api.PullRequest{
		DeviceID:          "device-1",
		LastSyncTimestamp: &since,
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, resp.Changes["orders"], 1)
	assert.Empty(t, resp.Conflicts)
}

func TestClient_Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/v1/sync/status/device-1", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(api.StatusResponse{
			Success:        true,
			DeviceID:       "device-1",
			Status:         "pending",
			PendingChanges: 3,
			Breakdown:      map[string]int{"customers": 2, "orders": 1},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Status(context.Background(), "token-abc", "device-1")

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 3, resp.PendingChanges)
}

func TestClient_RetriesTransientErrors(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(api.PullResponse{Success: true, Changes: api.ChangeSet{}})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Pull(context.Background(), "token", api.PullRequest{DeviceID: "device-1"})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "deviceId is required"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Pull(context.Background(), "token", api.PullRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "deviceId is required")
	assert.Equal(t, int32(1), attempts.Load(), "4xx responses must not be retried")
}
