package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Categories lists the user's categories. The service has shipped three
// payload shapes for this endpoint over time; all are normalized to a flat
// slice at this boundary. An unrecognized shape yields an empty list and a
// logged warning rather than an error.
func (c *Client) Categories(ctx context.Context, token string) ([]Category, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/categories/", token, nil, nil, &raw); err != nil {
		return nil, err
	}
	return normalizeCategories(raw, c.log), nil
}

// CreateCategory adds a category. There is no edit or delete path from
// this client.
func (c *Client) CreateCategory(ctx context.Context, token string, payload CategoryPayload) (Category, error) {
	var created Category
	if err := c.do(ctx, http.MethodPost, "/api/categories/", token, nil, payload, &created); err != nil {
		return Category{}, err
	}
	return created, nil
}

// normalizeCategories accepts a bare array, a {results: []} wrapper, or a
// {categories: []} wrapper and returns one flat slice. Anything else
// normalizes to empty.
func normalizeCategories(raw json.RawMessage, logger *slog.Logger) []Category {
	var flat []Category
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat
	}

	var wrapped struct {
		Results    json.RawMessage `json:"results"`
		Categories json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		for _, inner := range []json.RawMessage{wrapped.Results, wrapped.Categories} {
			if inner == nil {
				continue
			}
			if err := json.Unmarshal(inner, &flat); err == nil {
				return flat
			}
		}
	}

	logger.Warn("unexpected category response shape", "body", truncate(raw, 200))
	return []Category{}
}

func truncate(raw []byte, n int) string {
	if len(raw) <= n {
		return string(raw)
	}
	return fmt.Sprintf("%s... (%d bytes)", raw[:n], len(raw))
}
