package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizsync/bizsync/internal/models"
	"github.com/bizsync/bizsync/internal/server/storage"
	"github.com/bizsync/bizsync/pkg/api"
)

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users        map[string]*models.User // username -> User
	createError  error
	getUserError error
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Username]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:         []byte("test-secret"),
		AccessTokenTTL: 15 * time.Minute,
	}
}

func newTestUser(t *testing.T, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "user-1",
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
}

func loginRequest(t *testing.T, req api.LoginRequest) *http.Request {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
}

func TestAuthHandler_Login_Success(t *testing.T) {
	users := &mockUserStorage{users: map[string]*models.User{
		"alice": newTestUser(t, "alice", "s3cret"),
	}}
	handler := NewAuthHandler(setupTestLogger(), users, testJWTConfig())

	w := httptest.NewRecorder()
	handler.Login(w, loginRequest(t, api.LoginRequest{Username: "alice", Password: "s3cret"}))

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), resp.ExpiresIn)

	// The issued token round-trips through validation.
	claims, err := ValidateAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	users := &mockUserStorage{users: map[string]*models.User{
		"alice": newTestUser(t, "alice", "s3cret"),
	}}
	handler := NewAuthHandler(setupTestLogger(), users, testJWTConfig())

	w := httptest.NewRecorder()
	handler.Login(w, loginRequest(t, api.LoginRequest{Username: "alice", Password: "wrong"}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	users := &mockUserStorage{users: map[string]*models.User{}}
	handler := NewAuthHandler(setupTestLogger(), users, testJWTConfig())

	w := httptest.NewRecorder()
	handler.Login(w, loginRequest(t, api.LoginRequest{Username: "bob", Password: "whatever"}))

	// Same status as a wrong password so usernames can't be probed.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		req  api.LoginRequest
	}{
		{name: "no username", req: api.LoginRequest{Password: "s3cret"}},
		{name: "no password", req: api.LoginRequest{Username: "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(setupTestLogger(), &mockUserStorage{}, testJWTConfig())

			w := httptest.NewRecorder()
			handler.Login(w, loginRequest(t, tt.req))

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthHandler_Login_InvalidBody(t *testing.T) {
	handler := NewAuthHandler(setupTestLogger(), &mockUserStorage{}, testJWTConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("{broken")))
	w := httptest.NewRecorder()
	handler.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_StorageError(t *testing.T) {
	users := &mockUserStorage{getUserError: errors.New("db down")}
	handler := NewAuthHandler(setupTestLogger(), users, testJWTConfig())

	w := httptest.NewRecorder()
	handler.Login(w, loginRequest(t, api.LoginRequest{Username: "alice", Password: "s3cret"}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
