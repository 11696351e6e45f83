package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/budgetdash/budgetdash/internal/api"
	"github.com/budgetdash/budgetdash/internal/config"
	"github.com/budgetdash/budgetdash/internal/logging"
	"github.com/budgetdash/budgetdash/internal/session"
)

// newTestApp builds an App whose client points nowhere; these tests drive
// the update loop with messages directly and never execute fetch commands.
func newTestApp(t *testing.T, authed bool) *App {
	t.Helper()
	logger := logging.Discard()
	client := api.New("http://127.0.0.1:1", time.Second, logger)
	store := session.NewStoreAt(filepath.Join(t.TempDir(), "token.json"))
	if authed {
		require.NoError(t, store.Save("tok-test"))
	}
	sess, err := session.NewManager(client, store, logger)
	require.NoError(t, err)
	cfg := config.Config{
		API: config.APIConfig{BaseURL: "http://127.0.0.1:1", TimeoutSeconds: 1},
		UI:  config.UIConfig{PageSize: 10, CurrencySymbol: "$", DateFormat: "02/01/2006"},
	}
	return New(context.Background(), cfg, client, sess, logger)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRestoredSessionStartsOnDashboard(t *testing.T) {
	require.Equal(t, viewDashboard, newTestApp(t, true).state)
	require.Equal(t, viewLogin, newTestApp(t, false).state)
}

func TestLoginSuccessEntersDashboardAndLoads(t *testing.T) {
	a := newTestApp(t, false)
	a.loggingIn = true

	_, cmd := a.Update(loginResultMsg{})
	require.Equal(t, viewDashboard, a.state)
	require.False(t, a.loggingIn)
	require.Empty(t, a.loginErr)
	require.NotNil(t, cmd, "entering the dashboard kicks off the initial load")
	require.True(t, a.loadingSummary)
	require.True(t, a.loadingBudgets)
	require.True(t, a.loadingTx)
}

func TestLoginFailureMessages(t *testing.T) {
	a := newTestApp(t, false)

	_, _ = a.Update(loginResultMsg{err: fmt.Errorf("login: %w", api.ErrInvalidCredentials)})
	require.Equal(t, viewLogin, a.state)
	require.Equal(t, "invalid username or password", a.loginErr)

	_, _ = a.Update(loginResultMsg{err: errors.New("dial tcp: connection refused")})
	require.Equal(t, "could not reach the service - try again", a.loginErr)
}

func TestRegisterSuccessReturnsToSignIn(t *testing.T) {
	a := newTestApp(t, false)
	a.registering = true

	_, _ = a.Update(registerResultMsg{})
	require.False(t, a.registering)
	require.Equal(t, viewLogin, a.state)
	require.Equal(t, "account created - sign in", a.status)
}

func TestHealthFailureShowsNotice(t *testing.T) {
	a := newTestApp(t, false)
	_, _ = a.Update(healthResultMsg{err: errors.New("refused")})
	require.Contains(t, a.loginNotice, a.cfg.API.BaseURL)

	_, _ = a.Update(healthResultMsg{})
	require.Empty(t, a.loginNotice)
}

func TestMutationSuccessPublishesOneRefresh(t *testing.T) {
	a := newTestApp(t, true)
	a.form.openCreateBudget(testCategories())

	_, cmd := a.Update(mutationResultMsg{kinds: entityBudgets, status: "budget added"})
	require.False(t, a.form.active(), "form closes on success")
	require.Nil(t, a.confirm)
	require.Equal(t, "budget added", a.status)

	require.NotNil(t, cmd)
	refresh, ok := cmd().(refreshMsg)
	require.True(t, ok, "success publishes exactly one refresh tick")
	require.Equal(t, entityBudgets, refresh.kinds)
}

func TestRefreshReloadsOnlyDependentPanels(t *testing.T) {
	a := newTestApp(t, true)

	// a budget mutation leaves the transaction list alone
	seqBefore := a.query.seq
	_, cmd := a.Update(refreshMsg{kinds: entityBudgets})
	require.NotNil(t, cmd)
	require.True(t, a.loadingSummary)
	require.True(t, a.loadingBudgets)
	require.False(t, a.loadingTx)
	require.Equal(t, seqBefore, a.query.seq, "no transaction fetch was dispatched")

	// a category mutation touches every panel
	a.loadingSummary, a.loadingBudgets = false, false
	_, cmd = a.Update(refreshMsg{kinds: entityCategories})
	require.NotNil(t, cmd)
	require.True(t, a.loadingSummary)
	require.True(t, a.loadingBudgets)
	require.True(t, a.loadingTx)
	require.Equal(t, seqBefore+1, a.query.seq)
}

func TestMutationFailureKeepsFormOpen(t *testing.T) {
	a := newTestApp(t, true)
	a.form.openCreateTransaction(testCategories())
	a.form.submitting = true

	_, cmd := a.Update(mutationResultMsg{
		kinds: entityTransactions,
		err:   &api.Error{Status: 400, Fields: map[string][]string{"amount": {"A valid number is required."}}},
	})
	require.Nil(t, cmd)
	require.True(t, a.form.active())
	require.False(t, a.form.submitting)
	require.Equal(t, "A valid number is required.", a.form.fieldErrs["amount"])
}

func TestStaleTransactionPageIsDropped(t *testing.T) {
	a := newTestApp(t, true)
	_ = a.fetchTransactions() // seq 1
	_ = a.fetchTransactions() // seq 2, first dispatch is now stale

	stalePage := api.TransactionPage{Count: 1, Results: []api.Transaction{{ID: 1, Description: "old"}}}
	_, _ = a.Update(transactionsResultMsg{page: stalePage, seq: 1})
	require.Empty(t, a.transactions, "stale completion must not land")

	freshPage := api.TransactionPage{Count: 1, Results: []api.Transaction{{ID: 2, Description: "new"}}}
	_, _ = a.Update(transactionsResultMsg{page: freshPage, seq: 2})
	require.Len(t, a.transactions, 1)
	require.Equal(t, "new", a.transactions[0].Description)
}

func TestTransactionResultClampsCursor(t *testing.T) {
	a := newTestApp(t, true)
	seq := a.query.nextSeq()
	a.txCursor = 5

	page := api.TransactionPage{Count: 2, Results: []api.Transaction{{ID: 1}, {ID: 2}}}
	_, _ = a.Update(transactionsResultMsg{page: page, seq: seq})
	require.Equal(t, 0, a.txCursor)
	require.Equal(t, 1, a.query.pagination.totalPages)
}

func TestUnauthorizedDropsToLoginView(t *testing.T) {
	a := newTestApp(t, true)
	a.summary = &api.Summary{}
	a.transactions = []api.Transaction{{ID: 1}}

	_, cmd := a.Update(summaryResultMsg{err: &api.Error{Status: http.StatusUnauthorized, Message: "Invalid token."}})
	require.Equal(t, viewLogin, a.state)
	require.Equal(t, "session expired - sign in again", a.loginErr)
	require.False(t, a.session.IsAuthenticated())
	require.Nil(t, a.summary)
	require.Empty(t, a.transactions)
	require.NotNil(t, cmd, "re-probes the service for the login view")
}

func TestFetchErrorStaysInsideOwningPanel(t *testing.T) {
	a := newTestApp(t, true)
	a.budgets = []api.Budget{{ID: 1}}

	_, _ = a.Update(budgetsResultMsg{err: errors.New("boom")})
	require.Equal(t, viewDashboard, a.state, "a read failure never leaves the dashboard")
	require.NotEmpty(t, a.budgetsErr)
	require.Len(t, a.budgets, 1, "last good data is kept")
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	a := newTestApp(t, true)
	a.transactions = []api.Transaction{{ID: 7, Description: "weekly shop"}}

	_, _ = a.Update(key("d"))
	require.NotNil(t, a.confirm)
	require.Contains(t, a.confirm.prompt, "weekly shop")

	_, cmd := a.Update(key("n"))
	require.Nil(t, a.confirm)
	require.Nil(t, cmd)

	_, _ = a.Update(key("d"))
	_, cmd = a.Update(key("y"))
	require.NotNil(t, cmd, "confirming runs the delete command")
	require.Nil(t, a.confirm, "prompt is gone once the delete is dispatched")
}

func TestConfirmDispatchesExactlyOnce(t *testing.T) {
	a := newTestApp(t, true)
	a.transactions = []api.Transaction{{ID: 7, Description: "weekly shop"}}

	_, _ = a.Update(key("d"))
	_, first := a.Update(key("y"))
	require.NotNil(t, first)

	// a repeated keypress lands on the dashboard, not on a stale prompt
	_, second := a.Update(key("y"))
	require.Nil(t, second, "second press must not re-run the delete")
	require.Nil(t, a.confirm)
}

func TestManualRefreshKeyTouchesAllPanels(t *testing.T) {
	a := newTestApp(t, true)
	_, cmd := a.Update(key("r"))
	require.NotNil(t, cmd)
	refresh, ok := cmd().(refreshMsg)
	require.True(t, ok)
	require.Equal(t, entityAll, refresh.kinds)
}

func TestLogoutKeyClearsSession(t *testing.T) {
	a := newTestApp(t, true)
	_, cmd := a.Update(key("L"))
	require.Equal(t, viewLogin, a.state)
	require.False(t, a.session.IsAuthenticated())
	require.NotNil(t, cmd)
}

func TestFilterApplyFetchesOnlyOnChange(t *testing.T) {
	a := newTestApp(t, true)
	a.query.pagination.applyCount(55)
	require.True(t, a.query.setPage(4))

	_, _ = a.Update(key("f"))
	require.True(t, a.filtering)
	a.filterInputs[filterFieldCategory].SetValue("Groceries")

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, a.filtering)
	require.NotNil(t, cmd, "changed filters re-fetch")
	require.Equal(t, 1, a.query.pagination.page, "filter change resets pagination")

	// re-applying the identical filters is a no-op
	_, _ = a.Update(key("f"))
	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, a.filtering)
	require.Nil(t, cmd)
}

func TestPagingKeysClampAtEdges(t *testing.T) {
	a := newTestApp(t, true)
	a.query.pagination.applyCount(25) // 3 pages

	_, cmd := a.Update(key("h"))
	require.Nil(t, cmd, "already on the first page")

	_, cmd = a.Update(key("l"))
	require.NotNil(t, cmd)
	require.Equal(t, 2, a.query.pagination.page)
}

func TestEditKeyOpensSeededForm(t *testing.T) {
	a := newTestApp(t, true)
	a.categories = testCategories()
	a.transactions = []api.Transaction{{
		ID: 3, Amount: 20, Date: mustDate(t, "2024-02-02"),
		Description: "cinema", Category: &a.categories[0],
	}}

	_, _ = a.Update(key("e"))
	require.Equal(t, formTransaction, a.form.kind)
	require.True(t, a.form.editing())
	require.Equal(t, "cinema", a.form.inputs[txFieldDescription].Value())
}

func TestEscCancelsFormWithoutSubmitting(t *testing.T) {
	a := newTestApp(t, true)
	a.categories = testCategories()
	_, _ = a.Update(key("n"))
	require.Equal(t, formTransaction, a.form.kind)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, a.form.active())
	require.Nil(t, cmd)
}
