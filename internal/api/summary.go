package api

import (
	"context"
	"net/http"
)

// FinancialSummary fetches the server-computed summary for the current
// month. The result is never cached; panels refetch it wholesale on every
// refresh tick.
func (c *Client) FinancialSummary(ctx context.Context, token string) (Summary, error) {
	var s Summary
	if err := c.do(ctx, http.MethodGet, "/api/summary/", token, nil, nil, &s); err != nil {
		return Summary{}, err
	}
	return s, nil
}
