// Package api is the HTTP client for the budget service. Request functions
// are stateless: every protected call takes the session token explicitly
// and returns parsed entities or a classified error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/budgetdash/budgetdash/internal/logging"
)

// Client talks to one budget service instance. It holds no session state.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// New builds a client for the given base URL. A zero timeout means no
// request deadline.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

// Health probes the unauthenticated health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health/", "", nil, nil, nil)
}

// do performs one request. path is the service path including trailing
// slash; token is attached as a Token credential when non-empty; body is
// JSON-encoded when non-nil; out is decoded into when non-nil.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode >= 400 {
		apiErr := decodeError(resp.StatusCode, data)
		c.log.Warn("service error", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
