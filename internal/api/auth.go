package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Login exchanges credentials for an opaque session token. A 400-class
// rejection wraps ErrInvalidCredentials so callers can tell bad credentials
// apart from a transport failure.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login/", "", nil, body, &resp)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			return "", fmt.Errorf("login: %w", ErrInvalidCredentials)
		}
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login: empty token in response")
	}
	return resp.Token, nil
}

// Register creates a new account. The service seeds default categories for
// the user on success. Validation failures carry field-level messages.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/register/", "", nil, body, nil)
}
