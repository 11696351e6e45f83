package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetFiltersResetsPage(t *testing.T) {
	t.Parallel()

	q := newTransactionQuery(10)
	q.pagination.applyCount(55)
	require.True(t, q.setPage(4))
	require.Equal(t, 4, q.pagination.page)

	changed := q.setFilters(filterState{category: "3"})
	require.True(t, changed)
	require.Equal(t, 1, q.pagination.page, "filter change returns to page 1")
}

func TestSetFiltersUnchangedIsNoop(t *testing.T) {
	t.Parallel()

	q := newTransactionQuery(10)
	q.pagination.applyCount(55)
	require.True(t, q.setFilters(filterState{category: "3"}))
	require.True(t, q.setPage(3))

	require.False(t, q.setFilters(filterState{category: "3"}))
	require.Equal(t, 3, q.pagination.page, "re-applying identical filters keeps the page")
}

func TestSetPageClampsToRange(t *testing.T) {
	t.Parallel()

	q := newTransactionQuery(10)
	q.pagination.applyCount(25) // 3 pages

	require.True(t, q.setPage(3))
	require.False(t, q.setPage(99), "past the end clamps to the current last page")
	require.Equal(t, 3, q.pagination.page)
}

func TestSetPageBelowOneClamps(t *testing.T) {
	t.Parallel()

	q := newTransactionQuery(10)
	q.pagination.applyCount(25)
	require.False(t, q.setPage(0))
	require.Equal(t, 1, q.pagination.page)
}

func TestApplyCountClampsPageAfterShrink(t *testing.T) {
	t.Parallel()

	q := newTransactionQuery(10)
	q.pagination.applyCount(31) // 4 pages
	require.True(t, q.setPage(4))

	// deleting the only row on the last page shrinks the set
	q.pagination.applyCount(30)
	require.Equal(t, 3, q.pagination.totalPages)
	require.Equal(t, 3, q.pagination.page)
}

func TestApplyCountEmptyResultIsOnePage(t *testing.T) {
	t.Parallel()

	q := newTransactionQuery(10)
	q.pagination.applyCount(0)
	require.Equal(t, 1, q.pagination.totalPages)
	require.Equal(t, 1, q.pagination.page)
}

func TestSequenceStampsDetectStaleCompletions(t *testing.T) {
	t.Parallel()

	q := newTransactionQuery(10)
	first := q.nextSeq()
	second := q.nextSeq()

	require.True(t, q.stale(first), "older dispatch is stale once a newer one exists")
	require.False(t, q.stale(second))
}

func TestRequestOmitsUnparseableDates(t *testing.T) {
	t.Parallel()

	q := newTransactionQuery(10)
	q.setFilters(filterState{startDate: "2024-02-01", endDate: "not a date", category: "5", amount: "12.50"})

	req := q.request()
	require.Equal(t, "2024-02-01", req.StartDate.String())
	require.True(t, req.EndDate.IsZero())
	require.Equal(t, "5", req.Category)
	require.Equal(t, "12.50", req.Amount)
	require.Equal(t, 1, req.Page)
	require.Equal(t, 10, req.PageSize)

	values := req.Values()
	require.NotContains(t, values, "end_date")
}
