package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.state == viewLogin {
		return a.handleLoginKey(m)
	}
	if a.confirm != nil {
		return a.handleConfirmKey(m)
	}
	if a.form.active() {
		return a.handleFormKey(m)
	}
	if a.filtering {
		return a.handleFilterKey(m)
	}
	return a.handleDashboardKey(m)
}

func (a *App) loginFieldCount() int {
	if a.registering {
		return 3
	}
	return 2
}

func (a *App) handleLoginKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "tab", "down":
		a.setLoginFocus(a.loginFocus + 1)
		return a, nil
	case "shift+tab", "up":
		a.setLoginFocus(a.loginFocus - 1)
		return a, nil
	case "enter":
		if a.loggingIn {
			return a, nil
		}
		a.loggingIn = true
		a.loginErr = ""
		return a, a.loginSubmit()
	case "ctrl+r":
		a.registering = !a.registering
		a.loginErr = ""
		a.setLoginFocus(0)
		return a, nil
	}
	var cmd tea.Cmd
	a.loginInputs[a.loginFocus], cmd = a.loginInputs[a.loginFocus].Update(m)
	return a, cmd
}

func (a *App) setLoginFocus(focus int) {
	count := a.loginFieldCount()
	a.loginFocus = ((focus % count) + count) % count
	for i := range a.loginInputs {
		if i == a.loginFocus {
			a.loginInputs[i].Focus()
		} else {
			a.loginInputs[i].Blur()
		}
	}
}

func (a *App) handleConfirmKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "y", "Y":
		// Clear before dispatching so a repeated keypress cannot run the
		// action twice; a failure still surfaces through the status bar.
		action := a.confirm.action
		a.confirm = nil
		return a, action
	case "n", "N", "esc":
		a.confirm = nil
	}
	return a, nil
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "esc" {
		a.form.reset()
		return a, nil
	}
	if a.form.submitting {
		return a, nil
	}
	submit, cmd := a.form.update(m)
	if submit {
		return a, a.submitForm()
	}
	return a, cmd
}

func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.filtering = false
		return a, nil
	case "tab", "down":
		a.setFilterFocus(a.filterFocus + 1)
		return a, nil
	case "shift+tab", "up":
		a.setFilterFocus(a.filterFocus - 1)
		return a, nil
	case "ctrl+x":
		for i := range a.filterInputs {
			a.filterInputs[i].SetValue("")
		}
		return a, nil
	case "enter":
		f := filterState{
			startDate: strings.TrimSpace(a.filterInputs[filterFieldStart].Value()),
			endDate:   strings.TrimSpace(a.filterInputs[filterFieldEnd].Value()),
			category:  strings.TrimSpace(a.filterInputs[filterFieldCategory].Value()),
			amount:    strings.TrimSpace(a.filterInputs[filterFieldAmount].Value()),
		}
		a.filtering = false
		if a.query.setFilters(f) {
			return a, a.fetchTransactions()
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.filterInputs[a.filterFocus], cmd = a.filterInputs[a.filterFocus].Update(m)
	return a, cmd
}

func (a *App) setFilterFocus(focus int) {
	a.filterFocus = ((focus % filterFieldCount) + filterFieldCount) % filterFieldCount
	for i := range a.filterInputs {
		if i == a.filterFocus {
			a.filterInputs[i].Focus()
		} else {
			a.filterInputs[i].Blur()
		}
	}
}

func (a *App) openFilters() {
	a.filterInputs = makeInputs("yyyy-mm-dd", "yyyy-mm-dd", "category name", "amount")
	a.filterInputs[filterFieldStart].SetValue(a.query.filters.startDate)
	a.filterInputs[filterFieldEnd].SetValue(a.query.filters.endDate)
	a.filterInputs[filterFieldCategory].SetValue(a.query.filters.category)
	a.filterInputs[filterFieldAmount].SetValue(a.query.filters.amount)
	a.filterFocus = 0
	a.filterInputs[0].Focus()
	a.filtering = true
}

func (a *App) handleDashboardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "tab":
		if a.focus == focusTransactions {
			a.focus = focusBudgets
		} else {
			a.focus = focusTransactions
		}
	case "n":
		a.form.openCreateTransaction(a.categories)
	case "b":
		a.form.openCreateBudget(a.categories)
	case "c":
		a.form.openCreateCategory()
	case "f":
		a.openFilters()
	case "r":
		a.status = ""
		return a, refreshCmd(entityAll)
	case "L":
		a.session.Logout()
		a.state = viewLogin
		a.resetLoginInputs()
		a.resetDashboard()
		return a, a.healthCheck()
	case "up", "k":
		if a.focus == focusTransactions && a.txCursor > 0 {
			a.txCursor--
		}
		if a.focus == focusBudgets && a.budgetCursor > 0 {
			a.budgetCursor--
		}
	case "down", "j":
		if a.focus == focusTransactions && a.txCursor < len(a.transactions)-1 {
			a.txCursor++
		}
		if a.focus == focusBudgets && a.budgetCursor < len(a.budgets)-1 {
			a.budgetCursor++
		}
	case "left", "h":
		if a.focus == focusTransactions && a.query.setPage(a.query.pagination.page-1) {
			return a, a.fetchTransactions()
		}
	case "right", "l":
		if a.focus == focusTransactions && a.query.setPage(a.query.pagination.page+1) {
			return a, a.fetchTransactions()
		}
	case "e":
		if a.focus == focusTransactions && len(a.transactions) > 0 {
			a.form.openEditTransaction(a.transactions[a.txCursor], a.categories)
		}
		if a.focus == focusBudgets && len(a.budgets) > 0 {
			a.form.openEditBudget(a.budgets[a.budgetCursor], a.categories)
		}
	case "d", "backspace", "delete":
		if a.focus == focusTransactions && len(a.transactions) > 0 {
			tx := a.transactions[a.txCursor]
			a.confirm = &confirmState{
				prompt: "Delete transaction \"" + tx.Description + "\"?",
				action: a.deleteTransactionCmd(tx.ID),
			}
		}
		if a.focus == focusBudgets && len(a.budgets) > 0 {
			b := a.budgets[a.budgetCursor]
			a.confirm = &confirmState{
				prompt: "Delete the " + categoryName(b.Category) + " budget for " + b.Month.Format("January 2006") + "?",
				action: a.deleteBudgetCmd(b.ID),
			}
		}
	}
	return a, nil
}
