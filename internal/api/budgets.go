package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Budgets lists the user's budgets. The endpoint has served both the
// paginated {results, count} wrapper and a bare array; both decode to a
// flat slice.
func (c *Client) Budgets(ctx context.Context, token string) ([]Budget, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/budgets/", token, nil, nil, &raw); err != nil {
		return nil, err
	}

	var flat []Budget
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}
	var wrapped struct {
		Results []Budget `json:"results"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode budget list: %w", err)
	}
	return wrapped.Results, nil
}

// CreateBudget adds a budget. Month is normalized to the first of the
// month; the one-budget-per-category-month rule is enforced server-side.
func (c *Client) CreateBudget(ctx context.Context, token string, payload BudgetPayload) (Budget, error) {
	payload.Month = payload.Month.FirstOfMonth()
	var created Budget
	if err := c.do(ctx, http.MethodPost, "/api/budgets/", token, nil, payload, &created); err != nil {
		return Budget{}, err
	}
	return created, nil
}

// UpdateBudget replaces the budget with the given id. The category of an
// existing budget never changes; callers pass the original category id.
func (c *Client) UpdateBudget(ctx context.Context, token string, id int, payload BudgetPayload) (Budget, error) {
	payload.Month = payload.Month.FirstOfMonth()
	var updated Budget
	path := fmt.Sprintf("/api/budgets/%d/", id)
	if err := c.do(ctx, http.MethodPut, path, token, nil, payload, &updated); err != nil {
		return Budget{}, err
	}
	return updated, nil
}

// DeleteBudget removes the budget with the given id.
func (c *Client) DeleteBudget(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/budgets/%d/", id), token, nil, nil, nil)
}
