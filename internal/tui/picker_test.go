package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/budgetdash/budgetdash/internal/api"
)

func testCategories() []api.Category {
	return []api.Category{
		{ID: 1, Name: "Groceries", Type: api.CategoryExpense},
		{ID: 2, Name: "Gifts", Type: api.CategoryExpense},
		{ID: 3, Name: "Salary", Type: api.CategoryIncome},
		{ID: 4, Name: "Dining Out", Type: api.CategoryExpense},
	}
}

func names(cats []api.Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.Name
	}
	return out
}

func TestRankCategoriesEmptyQueryKeepsOrder(t *testing.T) {
	t.Parallel()

	got := rankCategories(testCategories(), "")
	require.Equal(t, []string{"Groceries", "Gifts", "Salary", "Dining Out"}, names(got))
}

func TestRankCategoriesPrefixBeatsSubstring(t *testing.T) {
	t.Parallel()

	cats := []api.Category{
		{ID: 1, Name: "Big Gifts"},
		{ID: 2, Name: "Gifts"},
	}
	got := rankCategories(cats, "gi")
	require.Equal(t, []string{"Gifts", "Big Gifts"}, names(got))
}

func TestRankCategoriesNearMissByEditDistance(t *testing.T) {
	t.Parallel()

	got := rankCategories(testCategories(), "salray")
	require.NotEmpty(t, got)
	require.Equal(t, "Salary", got[0].Name)
}

func TestRankCategoriesDropsDistantMatches(t *testing.T) {
	t.Parallel()

	got := rankCategories(testCategories(), "zzzz")
	require.Empty(t, got)
}

func TestPickerCursorClampsAndSelects(t *testing.T) {
	t.Parallel()

	p := newCategoryPicker(testCategories())
	p.move(-5)
	require.Equal(t, 0, p.cursor)
	p.move(99)
	require.Equal(t, 3, p.cursor)

	p.selectID(3)
	require.Equal(t, 2, p.cursor)
	cur := p.current()
	require.NotNil(t, cur)
	require.Equal(t, "Salary", cur.Name)
}

func TestPickerQueryResetsCursor(t *testing.T) {
	t.Parallel()

	p := newCategoryPicker(testCategories())
	p.move(2)
	p.setQuery("gi")
	require.Equal(t, 0, p.cursor)
	require.Equal(t, []string{"Gifts"}, names(p.matches))
}

func TestPickerCurrentNilWhenNoMatches(t *testing.T) {
	t.Parallel()

	p := newCategoryPicker(testCategories())
	p.setQuery("zzzz")
	require.Nil(t, p.current())
}
