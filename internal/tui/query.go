package tui

import (
	"github.com/budgetdash/budgetdash/internal/api"
)

// filterState is the conjunctive transaction filter predicate. Dates are
// held as raw input text and only serialized when they parse as calendar
// days; category is a name string, amount a free-form numeric string.
type filterState struct {
	startDate string
	endDate   string
	category  string
	amount    string
}

// paginationState tracks the 1-based page cursor against the server's
// total match count.
type paginationState struct {
	page       int
	pageSize   int
	totalCount int
	totalPages int
}

func newPagination(pageSize int) paginationState {
	return paginationState{page: 1, pageSize: pageSize, totalPages: 1}
}

// applyCount recomputes totalPages from the response count and clamps the
// page back into range, e.g. after deleting the last row of the last page.
func (p *paginationState) applyCount(count int) {
	p.totalCount = count
	p.totalPages = (count + p.pageSize - 1) / p.pageSize
	if p.totalPages < 1 {
		p.totalPages = 1
	}
	if p.page > p.totalPages {
		p.page = p.totalPages
	}
	if p.page < 1 {
		p.page = 1
	}
}

// transactionQuery owns the filter predicate and pagination cursor for the
// transaction list, plus the request sequence counter used to discard
// stale completions.
type transactionQuery struct {
	filters    filterState
	pagination paginationState
	seq        uint64
}

func newTransactionQuery(pageSize int) transactionQuery {
	return transactionQuery{pagination: newPagination(pageSize)}
}

// setFilters replaces the filter predicate. Any change resets the page
// to 1; pagination-only navigation never goes through here.
func (q *transactionQuery) setFilters(f filterState) bool {
	if f == q.filters {
		return false
	}
	q.filters = f
	q.pagination.page = 1
	return true
}

// setPage moves the page cursor, clamped to [1, totalPages]. Filters are
// untouched. Reports whether the page actually changed.
func (q *transactionQuery) setPage(page int) bool {
	if page < 1 {
		page = 1
	}
	if page > q.pagination.totalPages {
		page = q.pagination.totalPages
	}
	if page == q.pagination.page {
		return false
	}
	q.pagination.page = page
	return true
}

// nextSeq stamps a new fetch dispatch. Completions carrying an older
// stamp are stale and must be dropped, so a slow response can never
// overwrite the result of a later-dispatched request.
func (q *transactionQuery) nextSeq() uint64 {
	q.seq++
	return q.seq
}

func (q *transactionQuery) stale(seq uint64) bool {
	return seq != q.seq
}

// request translates the current state into service query parameters.
// Date fields that do not parse as calendar days are omitted entirely,
// never sent as empty strings.
func (q *transactionQuery) request() api.TransactionQuery {
	req := api.TransactionQuery{
		Category: q.filters.category,
		Amount:   q.filters.amount,
		Page:     q.pagination.page,
		PageSize: q.pagination.pageSize,
	}
	if d, err := api.ParseDate(q.filters.startDate); err == nil {
		req.StartDate = d
	}
	if d, err := api.ParseDate(q.filters.endDate); err == nil {
		req.EndDate = d
	}
	return req
}
