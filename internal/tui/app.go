// Package tui is the terminal front end: three dashboard panels fed by the
// remote service, one shared modal form surface, and the refresh
// propagation that keeps the panels consistent after any mutation.
package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/budgetdash/budgetdash/internal/api"
	"github.com/budgetdash/budgetdash/internal/config"
	"github.com/budgetdash/budgetdash/internal/session"
)

type appState string

const (
	viewLogin     appState = "login"
	viewDashboard appState = "dashboard"
)

type panelFocus string

const (
	focusTransactions panelFocus = "transactions"
	focusBudgets      panelFocus = "budgets"
)

// login view field order; the email input only participates in register
// mode.
const (
	loginFieldUsername = iota
	loginFieldPassword
	loginFieldEmail
)

// filter row field order.
const (
	filterFieldStart = iota
	filterFieldEnd
	filterFieldCategory
	filterFieldAmount
	filterFieldCount
)

// confirmState is the pending-deletion prompt.
type confirmState struct {
	prompt string
	action tea.Cmd
}

// App ties together the session, the query clients, and the panels.
type App struct {
	ctx     context.Context
	cfg     config.Config
	client  *api.Client
	session *session.Manager
	log     *slog.Logger

	state appState
	focus panelFocus

	// login view
	loginInputs []textinput.Model
	loginFocus  int
	registering bool
	loginErr    string
	loginNotice string
	loggingIn   bool

	// panel data; read errors stay inside the owning panel
	summary        *api.Summary
	summaryErr     string
	loadingSummary bool
	budgets        []api.Budget
	budgetsErr     string
	loadingBudgets bool
	transactions   []api.Transaction
	txErr          string
	loadingTx      bool
	categories     []api.Category

	query transactionQuery

	// filter row editing
	filtering    bool
	filterInputs []textinput.Model
	filterFocus  int

	form    formCoordinator
	confirm *confirmState

	txCursor     int
	budgetCursor int
	status       string
	width        int
	height       int
}

// New builds the app. The session decides the starting view: a restored
// token drops straight into the dashboard.
func New(ctx context.Context, cfg config.Config, client *api.Client, sess *session.Manager, logger *slog.Logger) *App {
	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		client:  client,
		session: sess,
		log:     logger,
		state:   viewLogin,
		focus:   focusTransactions,
		query:   newTransactionQuery(cfg.UI.PageSize),
	}
	a.resetLoginInputs()
	if sess.IsAuthenticated() {
		a.state = viewDashboard
	}
	return a
}

func (a *App) Init() tea.Cmd {
	if a.state == viewDashboard {
		return a.initialLoad()
	}
	return a.healthCheck()
}

func (a *App) initialLoad() tea.Cmd {
	return tea.Batch(a.fetchCategories(), a.fetchSummary(), a.fetchBudgets(), a.fetchTransactions())
}

// messages

type loginResultMsg struct{ err error }

type registerResultMsg struct{ err error }

type healthResultMsg struct{ err error }

type summaryResultMsg struct {
	summary api.Summary
	err     error
}

type budgetsResultMsg struct {
	budgets []api.Budget
	err     error
}

type categoriesResultMsg struct {
	categories []api.Category
	err        error
}

type transactionsResultMsg struct {
	page api.TransactionPage
	seq  uint64
	err  error
}

// mutationResultMsg completes any create/update/delete. kinds names the
// entity collections the mutation touched.
type mutationResultMsg struct {
	kinds  entityKind
	status string
	err    error
}

// commands

func (a *App) healthCheck() tea.Cmd {
	return func() tea.Msg {
		return healthResultMsg{err: a.client.Health(a.ctx)}
	}
}

func (a *App) fetchSummary() tea.Cmd {
	a.loadingSummary = true
	token := a.session.Token()
	return func() tea.Msg {
		s, err := a.client.FinancialSummary(a.ctx, token)
		return summaryResultMsg{summary: s, err: err}
	}
}

func (a *App) fetchBudgets() tea.Cmd {
	a.loadingBudgets = true
	token := a.session.Token()
	return func() tea.Msg {
		list, err := a.client.Budgets(a.ctx, token)
		return budgetsResultMsg{budgets: list, err: err}
	}
}

func (a *App) fetchCategories() tea.Cmd {
	token := a.session.Token()
	return func() tea.Msg {
		cats, err := a.client.Categories(a.ctx, token)
		return categoriesResultMsg{categories: cats, err: err}
	}
}

func (a *App) fetchTransactions() tea.Cmd {
	a.loadingTx = true
	seq := a.query.nextSeq()
	req := a.query.request()
	token := a.session.Token()
	return func() tea.Msg {
		page, err := a.client.Transactions(a.ctx, token, req)
		return transactionsResultMsg{page: page, seq: seq, err: err}
	}
}

// refreshPanels re-fetches every panel whose dependency set overlaps the
// mutated entity kinds. Panels fetch independently; no ordering across
// them is guaranteed or needed.
func (a *App) refreshPanels(kinds entityKind) tea.Cmd {
	var cmds []tea.Cmd
	if kinds.overlaps(summaryDeps) {
		cmds = append(cmds, a.fetchSummary())
	}
	if kinds.overlaps(budgetListDeps) {
		cmds = append(cmds, a.fetchBudgets())
	}
	if kinds.overlaps(transactionListDeps) {
		cmds = append(cmds, a.fetchTransactions())
	}
	if kinds.overlaps(entityCategories) {
		cmds = append(cmds, a.fetchCategories())
	}
	return tea.Batch(cmds...)
}

func (a *App) loginSubmit() tea.Cmd {
	username := a.loginInputs[loginFieldUsername].Value()
	password := a.loginInputs[loginFieldPassword].Value()
	if a.registering {
		email := a.loginInputs[loginFieldEmail].Value()
		return func() tea.Msg {
			return registerResultMsg{err: a.client.Register(a.ctx, username, email, password)}
		}
	}
	return func() tea.Msg {
		return loginResultMsg{err: a.session.Login(a.ctx, username, password)}
	}
}

func (a *App) submitForm() tea.Cmd {
	token := a.session.Token()
	switch a.form.kind {
	case formTransaction:
		payload, err := a.form.transactionPayload()
		if err != nil {
			a.form.errMsg = err.Error()
			return nil
		}
		a.form.submitting = true
		if a.form.editing() {
			id := a.form.editingTransaction.ID
			return func() tea.Msg {
				_, err := a.client.UpdateTransaction(a.ctx, token, id, payload)
				return mutationResultMsg{kinds: entityTransactions, status: "transaction updated", err: err}
			}
		}
		return func() tea.Msg {
			_, err := a.client.CreateTransaction(a.ctx, token, payload)
			return mutationResultMsg{kinds: entityTransactions, status: "transaction added", err: err}
		}
	case formBudget:
		payload, err := a.form.budgetPayload()
		if err != nil {
			a.form.errMsg = err.Error()
			return nil
		}
		a.form.submitting = true
		if a.form.editing() {
			id := a.form.editingBudget.ID
			return func() tea.Msg {
				_, err := a.client.UpdateBudget(a.ctx, token, id, payload)
				return mutationResultMsg{kinds: entityBudgets, status: "budget updated", err: err}
			}
		}
		return func() tea.Msg {
			_, err := a.client.CreateBudget(a.ctx, token, payload)
			return mutationResultMsg{kinds: entityBudgets, status: "budget added", err: err}
		}
	case formCategory:
		payload, err := a.form.categoryPayload()
		if err != nil {
			a.form.errMsg = err.Error()
			return nil
		}
		a.form.submitting = true
		return func() tea.Msg {
			_, err := a.client.CreateCategory(a.ctx, token, payload)
			return mutationResultMsg{kinds: entityCategories, status: "category added", err: err}
		}
	}
	return nil
}

func (a *App) deleteTransactionCmd(id int) tea.Cmd {
	token := a.session.Token()
	return func() tea.Msg {
		err := a.client.DeleteTransaction(a.ctx, token, id)
		return mutationResultMsg{kinds: entityTransactions, status: "transaction deleted", err: err}
	}
}

func (a *App) deleteBudgetCmd(id int) tea.Cmd {
	token := a.session.Token()
	return func() tea.Msg {
		err := a.client.DeleteBudget(a.ctx, token, id)
		return mutationResultMsg{kinds: entityBudgets, status: "budget deleted", err: err}
	}
}

// update loop

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(m)

	case healthResultMsg:
		if m.err != nil {
			a.loginNotice = "service unreachable at " + a.cfg.API.BaseURL
		} else {
			a.loginNotice = ""
		}
		return a, nil

	case loginResultMsg:
		a.loggingIn = false
		if m.err != nil {
			a.loginErr = loginFailureMessage(m.err)
			return a, nil
		}
		a.state = viewDashboard
		a.loginErr = ""
		a.resetLoginInputs()
		a.query = newTransactionQuery(a.cfg.UI.PageSize)
		return a, a.initialLoad()

	case registerResultMsg:
		a.loggingIn = false
		if m.err != nil {
			a.loginErr = registerFailureMessage(m.err)
			return a, nil
		}
		a.registering = false
		a.loginErr = ""
		a.status = "account created - sign in"
		return a, nil

	case refreshMsg:
		return a, a.refreshPanels(m.kinds)

	case mutationResultMsg:
		if m.err != nil {
			if api.IsUnauthorized(m.err) {
				return a, a.sessionExpired()
			}
			if a.form.active() {
				a.form.fail(m.err)
			} else {
				a.status = "error: " + m.err.Error()
			}
			return a, nil
		}
		if a.form.active() {
			a.form.reset()
		}
		a.confirm = nil
		a.status = m.status
		return a, refreshCmd(m.kinds)

	case summaryResultMsg:
		a.loadingSummary = false
		if m.err != nil {
			if api.IsUnauthorized(m.err) {
				return a, a.sessionExpired()
			}
			a.summaryErr = "failed to load summary"
			a.log.Warn("summary fetch failed", "err", m.err)
			return a, nil
		}
		s := m.summary
		a.summary = &s
		a.summaryErr = ""
		return a, nil

	case budgetsResultMsg:
		a.loadingBudgets = false
		if m.err != nil {
			if api.IsUnauthorized(m.err) {
				return a, a.sessionExpired()
			}
			a.budgetsErr = "failed to load budgets - try again later"
			a.log.Warn("budget fetch failed", "err", m.err)
			return a, nil
		}
		a.budgets = m.budgets
		a.budgetsErr = ""
		if a.budgetCursor >= len(a.budgets) {
			a.budgetCursor = 0
		}
		return a, nil

	case categoriesResultMsg:
		if m.err != nil {
			if api.IsUnauthorized(m.err) {
				return a, a.sessionExpired()
			}
			a.log.Warn("category fetch failed", "err", m.err)
			return a, nil
		}
		a.categories = m.categories
		return a, nil

	case transactionsResultMsg:
		if a.query.stale(m.seq) {
			a.log.Debug("dropping stale transaction page", "seq", m.seq, "current", a.query.seq)
			return a, nil
		}
		a.loadingTx = false
		if m.err != nil {
			if api.IsUnauthorized(m.err) {
				return a, a.sessionExpired()
			}
			a.txErr = "failed to load transactions"
			a.log.Warn("transaction fetch failed", "err", m.err)
			return a, nil
		}
		a.transactions = m.page.Results
		a.txErr = ""
		a.query.pagination.applyCount(m.page.Count)
		if a.txCursor >= len(a.transactions) {
			a.txCursor = 0
		}
		return a, nil
	}
	return a, nil
}

// sessionExpired drops back to the login view after a 401 on any
// protected call.
func (a *App) sessionExpired() tea.Cmd {
	a.session.Logout()
	a.state = viewLogin
	a.loginErr = "session expired - sign in again"
	a.resetDashboard()
	return a.healthCheck()
}

func (a *App) resetDashboard() {
	a.summary = nil
	a.summaryErr = ""
	a.budgets = nil
	a.budgetsErr = ""
	a.transactions = nil
	a.txErr = ""
	a.categories = nil
	a.form.reset()
	a.confirm = nil
	a.filtering = false
	a.txCursor, a.budgetCursor = 0, 0
	a.status = ""
}

func (a *App) resetLoginInputs() {
	a.loginInputs = makeInputs("username", "password", "email")
	a.loginInputs[loginFieldPassword].EchoMode = textinput.EchoPassword
	a.loginFocus = 0
	a.loginInputs[0].Focus()
}

func loginFailureMessage(err error) string {
	if errors.Is(err, api.ErrInvalidCredentials) {
		return "invalid username or password"
	}
	return "could not reach the service - try again"
}

func registerFailureMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if names := apiErr.FieldNames(); len(names) > 0 {
			return names[0] + ": " + apiErr.FieldError(names[0])
		}
		return apiErr.Message
	}
	return "could not reach the service - try again"
}
