package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/budgetdash/budgetdash/internal/logging"
)

func TestNormalizeCategoriesAcceptsAllKnownShapes(t *testing.T) {
	t.Parallel()

	want := []Category{
		{ID: 1, Name: "Groceries", Type: CategoryExpense},
		{ID: 2, Name: "Salary", Type: CategoryIncome},
	}
	inner := `[{"id":1,"name":"Groceries","category_type":"EX"},{"id":2,"name":"Salary","category_type":"IN"}]`

	cases := []struct {
		name string
		body string
	}{
		{"bare array", inner},
		{"results wrapper", `{"count": 2, "results": ` + inner + `}`},
		{"categories wrapper", `{"categories": ` + inner + `}`},
	}
	logger := logging.Discard()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := normalizeCategories(json.RawMessage(tc.body), logger)
			require.Equal(t, want, got)
		})
	}
}

func TestNormalizeCategoriesUnknownShapeIsEmpty(t *testing.T) {
	t.Parallel()

	logger := logging.Discard()
	got := normalizeCategories(json.RawMessage(`{"data": {"nested": true}}`), logger)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestCategoriesEndpoint(t *testing.T) {
	t.Parallel()

	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/categories/", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"results": [{"id": 7, "name": "Rent", "category_type": "EX"}]}`))
	}))

	got, err := c.Categories(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, []Category{{ID: 7, Name: "Rent", Type: CategoryExpense}}, got)
}

func TestCreateCategorySendsTypeCode(t *testing.T) {
	t.Parallel()

	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, map[string]any{"name": "Bonus", "category_type": "IN"}, body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 3, "name": "Bonus", "category_type": "IN"}`))
	}))

	created, err := c.CreateCategory(context.Background(), "tok", CategoryPayload{Name: "Bonus", Type: CategoryIncome})
	require.NoError(t, err)
	require.Equal(t, Category{ID: 3, Name: "Bonus", Type: CategoryIncome}, created)
}
