package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// TransactionQuery is the filter predicate plus pagination cursor for a
// transaction listing. Zero-valued fields are omitted from the request;
// dates are only serialized when they are valid calendar days.
type TransactionQuery struct {
	StartDate Date
	EndDate   Date
	Category  string
	Amount    string
	Page      int
	PageSize  int
}

// Values translates the query to the service's query parameters.
func (q TransactionQuery) Values() url.Values {
	params := url.Values{}
	if !q.StartDate.IsZero() {
		params.Set("start_date", q.StartDate.String())
	}
	if !q.EndDate.IsZero() {
		params.Set("end_date", q.EndDate.String())
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Amount != "" {
		params.Set("amount", q.Amount)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return params
}

// TransactionPage is one page of results plus the total match count.
type TransactionPage struct {
	Results []Transaction `json:"results"`
	Count   int           `json:"count"`
}

// Transactions lists transactions matching the query.
func (c *Client) Transactions(ctx context.Context, token string, q TransactionQuery) (TransactionPage, error) {
	var page TransactionPage
	if err := c.do(ctx, http.MethodGet, "/api/transactions/", token, q.Values(), nil, &page); err != nil {
		return TransactionPage{}, err
	}
	return page, nil
}

// CreateTransaction adds a transaction.
func (c *Client) CreateTransaction(ctx context.Context, token string, payload TransactionPayload) (Transaction, error) {
	var created Transaction
	if err := c.do(ctx, http.MethodPost, "/api/transactions/", token, nil, payload, &created); err != nil {
		return Transaction{}, err
	}
	return created, nil
}

// UpdateTransaction replaces the transaction with the given id.
func (c *Client) UpdateTransaction(ctx context.Context, token string, id int, payload TransactionPayload) (Transaction, error) {
	var updated Transaction
	path := fmt.Sprintf("/api/transactions/%d/", id)
	if err := c.do(ctx, http.MethodPut, path, token, nil, payload, &updated); err != nil {
		return Transaction{}, err
	}
	return updated, nil
}

// DeleteTransaction removes the transaction with the given id.
func (c *Client) DeleteTransaction(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/transactions/%d/", id), token, nil, nil, nil)
}
