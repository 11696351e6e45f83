package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/budgetdash/budgetdash/internal/api"
)

func (a *App) View() string {
	if a.state == viewLogin {
		return a.renderLogin()
	}
	return a.renderDashboard()
}

func (a *App) renderLogin() string {
	var b strings.Builder
	if a.registering {
		b.WriteString(titleStyle.Render("budgetdash - create account") + "\n\n")
	} else {
		b.WriteString(titleStyle.Render("budgetdash - sign in") + "\n\n")
	}
	b.WriteString(labelStyle.Render("username ") + a.loginInputs[loginFieldUsername].View() + "\n")
	b.WriteString(labelStyle.Render("password ") + a.loginInputs[loginFieldPassword].View() + "\n")
	if a.registering {
		b.WriteString(labelStyle.Render("email    ") + a.loginInputs[loginFieldEmail].View() + "\n")
	}
	if a.loggingIn {
		b.WriteString("\nworking...\n")
	}
	if a.loginErr != "" {
		b.WriteString("\n" + errorStyle.Render(a.loginErr) + "\n")
	}
	if a.loginNotice != "" {
		b.WriteString("\n" + errorStyle.Render(a.loginNotice) + "\n")
	}
	if a.status != "" {
		b.WriteString("\n" + a.status + "\n")
	}
	mode := "[ctrl+r] register"
	if a.registering {
		mode = "[ctrl+r] back to sign in"
	}
	b.WriteString("\n" + helpStyle.Render("[enter] submit  [tab] next field  "+mode+"  [ctrl+c] quit"))
	return modalStyle.Render(b.String())
}

func (a *App) renderDashboard() string {
	header := titleStyle.Render("Budget Dashboard")

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		a.renderSummary(),
		lipgloss.JoinHorizontal(lipgloss.Top, a.renderBudgets(), a.renderTransactions()),
	)

	var overlay string
	switch {
	case a.confirm != nil:
		overlay = a.renderConfirm()
	case a.form.active():
		overlay = a.renderForm()
	case a.filtering:
		overlay = a.renderFilterRow()
	}
	if overlay != "" {
		body += "\n\n" + overlay
	}

	bar := a.status
	if bar == "" {
		bar = "[tab] switch panel  [n] transaction  [b] budget  [c] category  [f] filters  [e] edit  [d] delete  [r] refresh  [L] logout  [q] quit"
	}
	return body + "\n" + statusBarStyle.Render(bar)
}

func (a *App) renderSummary() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Financial Summary") + "\n")
	switch {
	case a.summaryErr != "":
		b.WriteString(errorStyle.Render(a.summaryErr))
	case a.summary == nil:
		b.WriteString("loading...")
	default:
		s := a.summary
		balanceStyle := incomeStyle
		if s.Balance < 0 {
			balanceStyle = expenseStyle
		}
		b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s",
			labelStyle.Render("income"), incomeStyle.Render(a.money(s.TotalIncome)),
			labelStyle.Render("expenses"), expenseStyle.Render(a.money(s.TotalExpenses)),
			labelStyle.Render("balance"), balanceStyle.Render(a.money(s.Balance)),
		))
		if len(s.BudgetVsActual) > 0 {
			b.WriteString("\n" + labelStyle.Render("budget vs actual (this month)"))
			for _, row := range s.BudgetVsActual {
				b.WriteString(fmt.Sprintf("\n%-16s %10s / %-10s %s",
					truncateText(row.Category, 16), a.money(row.Actual), a.money(row.Budget), usageBar(row.Budget, row.Actual, 20)))
			}
		}
	}
	return panelStyle.Render(b.String())
}

// usageBar draws actual against budget; the overflow past the ceiling is
// drawn in the expense color. The ratio is clamped: refunds can push the
// actual below zero and overspend past the ceiling.
func usageBar(budget, actual api.Amount, width int) string {
	if budget <= 0 {
		return ""
	}
	ratio := actual.Float() / budget.Float()
	if ratio < 0 {
		ratio = 0
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if ratio > 1 {
		return bar + expenseStyle.Render(fmt.Sprintf(" +%d%%", int((ratio-1)*100)))
	}
	return bar
}

func (a *App) renderBudgets() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Budgets") + "\n")
	switch {
	case a.budgetsErr != "":
		b.WriteString(errorStyle.Render(a.budgetsErr))
	case a.loadingBudgets && len(a.budgets) == 0:
		b.WriteString("loading...")
	case len(a.budgets) == 0:
		b.WriteString("no budgets yet - press [b] to add one")
	default:
		for i, bg := range a.budgets {
			marker := " "
			if i == a.budgetCursor && a.focus == focusBudgets {
				marker = cursorMark
			}
			b.WriteString(fmt.Sprintf("%s %-14s %-9s %10s\n",
				marker, truncateText(categoryName(bg.Category), 14), bg.Month.Format("Jan 2006"), a.money(bg.Amount)))
		}
	}
	style := panelStyle
	if a.focus == focusBudgets {
		style = focusPanelStyle
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (a *App) renderTransactions() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Transactions") + "\n")
	if active := a.activeFilterLabel(); active != "" {
		b.WriteString(labelStyle.Render("filters: "+active) + "\n")
	}
	switch {
	case a.txErr != "":
		b.WriteString(errorStyle.Render(a.txErr))
	case a.loadingTx && len(a.transactions) == 0:
		b.WriteString("loading...")
	case len(a.transactions) == 0:
		b.WriteString("no transactions found")
	default:
		for i, t := range a.transactions {
			marker := " "
			if i == a.txCursor && a.focus == focusTransactions {
				marker = cursorMark
			}
			amount := a.money(t.Amount)
			if t.Category != nil && t.Category.Type == api.CategoryIncome {
				amount = incomeStyle.Render(amount)
			} else {
				amount = expenseStyle.Render(amount)
			}
			b.WriteString(fmt.Sprintf("%s %s  %-28s %-12s %10s\n",
				marker, t.Date.Format(a.cfg.UI.DateFormat), truncateText(t.Description, 28),
				truncateText(categoryName(t.Category), 12), amount))
		}
	}
	p := a.query.pagination
	b.WriteString("\n" + helpStyle.Render(fmt.Sprintf("page %d/%d (%d total)  [←/→] page", p.page, p.totalPages, p.totalCount)))

	style := panelStyle
	if a.focus == focusTransactions {
		style = focusPanelStyle
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (a *App) activeFilterLabel() string {
	f := a.query.filters
	var parts []string
	if f.startDate != "" {
		parts = append(parts, "from "+f.startDate)
	}
	if f.endDate != "" {
		parts = append(parts, "to "+f.endDate)
	}
	if f.category != "" {
		parts = append(parts, "category="+f.category)
	}
	if f.amount != "" {
		parts = append(parts, "amount="+f.amount)
	}
	return strings.Join(parts, "  ")
}

func (a *App) renderFilterRow() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Filter Transactions") + "\n\n")
	labels := []string{"start date", "end date  ", "category  ", "amount    "}
	for i, in := range a.filterInputs {
		b.WriteString(labelStyle.Render(labels[i]+" ") + in.View() + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("[enter] apply  [ctrl+x] clear  [esc] cancel"))
	return modalStyle.Render(b.String())
}

func (a *App) renderForm() string {
	f := &a.form
	var b strings.Builder

	title := map[formKind]string{formTransaction: "Transaction", formBudget: "Budget", formCategory: "Category"}[f.kind]
	if f.editing() {
		title = "Edit " + title
	} else {
		title = "Add " + title
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	switch f.kind {
	case formTransaction:
		a.writeField(&b, f, txFieldAmount, "amount     ", "amount")
		a.writeField(&b, f, txFieldDate, "date       ", "date")
		a.writeField(&b, f, txFieldDescription, "description", "description")
		a.writePicker(&b, f, txFieldCategory)
	case formBudget:
		a.writeField(&b, f, budgetFieldAmount, "amount", "amount")
		a.writeField(&b, f, budgetFieldMonth, "month ", "month")
		a.writePicker(&b, f, budgetFieldCategory)
	case formCategory:
		a.writeField(&b, f, catFieldName, "name", "name")
		marker := " "
		if f.focus == catFieldType {
			marker = cursorMark
		}
		kind := "Expense"
		if f.typeIncome {
			kind = "Income"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s\n", marker, labelStyle.Render("type"), kind, helpStyle.Render("(←/→ to change)")))
		if msg := f.fieldErrs["category_type"]; msg != "" {
			b.WriteString("  " + errorStyle.Render(msg) + "\n")
		}
	}

	if f.submitting {
		b.WriteString("\nsaving...\n")
	}
	if f.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(f.errMsg) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("[enter] save  [tab] next field  [esc] cancel"))
	return modalStyle.Render(b.String())
}

// writeField renders one labeled input plus any validation message the
// service returned for the matching payload field.
func (a *App) writeField(b *strings.Builder, f *formCoordinator, idx int, label, field string) {
	marker := " "
	if f.focus == idx {
		marker = cursorMark
	}
	b.WriteString(fmt.Sprintf("%s %s %s\n", marker, labelStyle.Render(label), f.inputs[idx].View()))
	if msg := f.fieldErrs[field]; msg != "" {
		b.WriteString("  " + errorStyle.Render(msg) + "\n")
	}
}

func (a *App) writePicker(b *strings.Builder, f *formCoordinator, idx int) {
	marker := " "
	if f.focus == idx {
		marker = cursorMark
	}
	if f.pickerLocked {
		name := "N/A"
		if f.editingBudget != nil {
			name = categoryName(f.editingBudget.Category)
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s\n", marker, labelStyle.Render("category"), name, helpStyle.Render("(fixed)")))
		return
	}
	b.WriteString(fmt.Sprintf("%s %s %s\n", marker, labelStyle.Render("category"), f.inputs[idx].View()))
	shown := f.picker.matches
	const maxShown = 5
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}
	for i, c := range shown {
		mark := "  "
		if i == f.picker.cursor {
			mark = "  " + cursorMark
		}
		b.WriteString(fmt.Sprintf("%s %s (%s)\n", mark, c.Name, c.Type.Label()))
	}
	if len(f.picker.matches) == 0 {
		b.WriteString("    " + helpStyle.Render("no matching category") + "\n")
	}
	if msg := f.fieldErrs["category_id"]; msg != "" {
		b.WriteString("  " + errorStyle.Render(msg) + "\n")
	}
}

func (a *App) renderConfirm() string {
	return modalStyle.Render(a.confirm.prompt + "\n\n" + helpStyle.Render("[y] yes  [n] no"))
}

func (a *App) money(v api.Amount) string {
	return fmt.Sprintf("%s%.2f", a.cfg.UI.CurrencySymbol, v.Float())
}

// categoryName tolerates dangling category references.
func categoryName(c *api.Category) string {
	if c == nil {
		return "N/A"
	}
	return c.Name
}

// truncateText shortens by runes so multibyte text never renders as
// broken UTF-8.
func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
