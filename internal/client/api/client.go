package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/bizsync/bizsync/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI defines the sync endpoint operations as seen by the client.
type ClientAPI interface {
	// Login authenticates against the server and returns an access token.
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)

	// Push sends local unsynced changes to the server.
	Push(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error)

	// Pull fetches server changes since the given watermark.
	Pull(ctx context.Context, accessToken string, req api.PullRequest) (*api.PullResponse, error)

	// Status fetches the server-side sync status for a device.
	Status(ctx context.Context, accessToken, deviceID string) (*api.StatusResponse, error)
}

// Client is the HTTP implementation of ClientAPI.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Carry the Authorization header across redirects
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Login authenticates and returns an access token.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Push sends local unsynced changes to the server. Safe to retry: pushing the
// same record twice converges to the same server state.
func (c *Client) Push(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
	var resp api.PushResponse
	if err := c.doRequestWithRetry(ctx, http.MethodPost, "/api/v1/sync/push", accessToken, req, &resp); err != nil {
		return nil, fmt.Errorf("push request failed: %w", err)
	}
	return &resp, nil
}

// Pull fetches server changes since the given watermark.
func (c *Client) Pull(ctx context.Context, accessToken string, req api.PullRequest) (*api.PullResponse, error) {
	var resp api.PullResponse
	if err := c.doRequestWithRetry(ctx, http.MethodPost, "/api/v1/sync/pull", accessToken, req, &resp); err != nil {
		return nil, fmt.Errorf("pull request failed: %w", err)
	}
	return &resp, nil
}

// Status fetches the server-side sync status for a device.
func (c *Client) Status(ctx context.Context, accessToken, deviceID string) (*api.StatusResponse, error) {
	var resp api.StatusResponse
	path := "/api/v1/sync/status/" + url.PathEscape(deviceID)
	if err := c.doRequestWithRetry(ctx, http.MethodGet, path, accessToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	return &resp, nil
}

// transientError marks an error as retryable for the backoff loop.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// doRequestWithRetry retries transient failures (network errors, 5xx, 429)
// with capped fibonacci backoff. Both sync operations are idempotent, so a
// retry after a dropped response is safe.
func (c *Client) doRequestWithRetry(ctx context.Context, method, path, accessToken string, body, result any) error {
	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(500*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.doRequest(ctx, method, path, accessToken, body, result)
		if err == nil {
			return nil
		}

		var transient *transientError
		if errors.As(err, &transient) {
			return retry.RetryableError(err)
		}
		return err
	})
}

// doRequest performs a single HTTP request.
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result any) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network-level failure: worth a retry
		return &transientError{err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
		var errResp api.ErrorResponse
		if jsonErr := json.Unmarshal(respBody, &errResp); jsonErr == nil && errResp.Error != "" {
			reqErr = fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return &transientError{err: reqErr}
		}
		return reqErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
