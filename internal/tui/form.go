package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/budgetdash/budgetdash/internal/api"
)

// formKind selects which entity form the modal surface is showing.
type formKind string

const (
	formNone        formKind = ""
	formTransaction formKind = "transaction"
	formBudget      formKind = "budget"
	formCategory    formKind = "category"
)

// Field order per form. The category selector is always the last field of
// the transaction and budget forms; the category form's last field is the
// income/expense toggle.
const (
	txFieldAmount = iota
	txFieldDate
	txFieldDescription
	txFieldCategory
	txFieldCount
)

const (
	budgetFieldAmount = iota
	budgetFieldMonth
	budgetFieldCategory
	budgetFieldCount
)

const (
	catFieldName = iota
	catFieldType
	catFieldCount
)

// formCoordinator is the shared edit/create workflow for all three entity
// kinds. At most one form is active; its inputs are rebuilt from scratch
// on every open so switching edit targets never leaks draft values.
type formCoordinator struct {
	kind               formKind
	editingTransaction *api.Transaction
	editingBudget      *api.Budget

	inputs []textinput.Model
	focus  int

	picker       categoryPicker
	pickerLocked bool // budget category is immutable once created

	typeIncome bool // category form toggle, defaults to expense

	errMsg     string
	fieldErrs  map[string]string
	submitting bool
}

func (f *formCoordinator) active() bool { return f.kind != formNone }

// editing reports whether the active form targets an existing entity.
func (f *formCoordinator) editing() bool {
	switch f.kind {
	case formTransaction:
		return f.editingTransaction != nil
	case formBudget:
		return f.editingBudget != nil
	}
	return false
}

func (f *formCoordinator) reset() {
	*f = formCoordinator{}
}

func (f *formCoordinator) openCreateTransaction(cats []api.Category) {
	f.reset()
	f.kind = formTransaction
	f.inputs = makeInputs("0.00", time.Now().Format("2006-01-02"), "description", "type to filter")
	f.inputs[txFieldDate].SetValue(time.Now().Format("2006-01-02"))
	f.picker = newCategoryPicker(cats)
	f.inputs[f.focus].Focus()
}

func (f *formCoordinator) openEditTransaction(tx api.Transaction, cats []api.Category) {
	f.reset()
	f.kind = formTransaction
	copied := tx
	f.editingTransaction = &copied
	f.inputs = makeInputs("0.00", "yyyy-mm-dd", "description", "type to filter")
	f.inputs[txFieldAmount].SetValue(strconv.FormatFloat(tx.Amount.Float(), 'f', 2, 64))
	f.inputs[txFieldDate].SetValue(tx.Date.String())
	f.inputs[txFieldDescription].SetValue(tx.Description)
	f.picker = newCategoryPicker(cats)
	if tx.Category != nil {
		f.picker.selectID(tx.Category.ID)
	}
	f.inputs[f.focus].Focus()
}

func (f *formCoordinator) openCreateBudget(cats []api.Category) {
	f.reset()
	f.kind = formBudget
	f.inputs = makeInputs("0.00", "yyyy-mm", "type to filter")
	f.inputs[budgetFieldMonth].SetValue(time.Now().Format("2006-01"))
	f.picker = newCategoryPicker(cats)
	f.inputs[f.focus].Focus()
}

func (f *formCoordinator) openEditBudget(b api.Budget, cats []api.Category) {
	f.reset()
	f.kind = formBudget
	copied := b
	f.editingBudget = &copied
	f.inputs = makeInputs("0.00", "yyyy-mm", "type to filter")
	f.inputs[budgetFieldAmount].SetValue(strconv.FormatFloat(b.Amount.Float(), 'f', 2, 64))
	f.inputs[budgetFieldMonth].SetValue(b.Month.Format("2006-01"))
	f.picker = newCategoryPicker(cats)
	f.pickerLocked = true
	if b.Category != nil {
		f.picker.selectID(b.Category.ID)
	}
	f.inputs[f.focus].Focus()
}

func (f *formCoordinator) openCreateCategory() {
	f.reset()
	f.kind = formCategory
	f.inputs = makeInputs("name") // the type toggle is not a text input
	f.inputs[f.focus].Focus()
}

// fail keeps the form open and surfaces the error. Field-level validation
// messages from the service take priority over the generic message.
func (f *formCoordinator) fail(err error) {
	f.submitting = false
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		f.errMsg = apiErr.Message
		f.fieldErrs = map[string]string{}
		for _, name := range apiErr.FieldNames() {
			f.fieldErrs[name] = apiErr.FieldError(name)
		}
		return
	}
	f.errMsg = "request failed - try again"
	f.fieldErrs = nil
}

// fieldCount includes non-text fields (category picker, type toggle).
func (f *formCoordinator) fieldCount() int {
	switch f.kind {
	case formTransaction:
		return txFieldCount
	case formBudget:
		return budgetFieldCount
	case formCategory:
		return catFieldCount
	}
	return 0
}

// pickerIndex returns the focus index of the category selector, -1 when
// the active form has none.
func (f *formCoordinator) pickerIndex() int {
	switch f.kind {
	case formTransaction:
		return txFieldCategory
	case formBudget:
		return budgetFieldCategory
	}
	return -1
}

func (f *formCoordinator) setFocus(focus int) {
	count := f.fieldCount()
	if count == 0 {
		return
	}
	f.focus = ((focus % count) + count) % count
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// update handles one key while the form is open. It reports whether the
// user requested submission; cancellation is handled by the caller.
func (f *formCoordinator) update(msg tea.KeyMsg) (submit bool, cmd tea.Cmd) {
	switch msg.String() {
	case "enter":
		return true, nil
	case "tab", "down":
		if f.focus == f.pickerIndex() && msg.String() == "down" {
			f.picker.move(1)
			return false, nil
		}
		f.setFocus(f.focus + 1)
		return false, nil
	case "shift+tab", "up":
		if f.focus == f.pickerIndex() && msg.String() == "up" {
			f.picker.move(-1)
			return false, nil
		}
		f.setFocus(f.focus - 1)
		return false, nil
	}

	if f.kind == formCategory && f.focus == catFieldType {
		switch msg.String() {
		case "left", "right", " ":
			f.typeIncome = !f.typeIncome
		}
		return false, nil
	}

	if f.focus == f.pickerIndex() && f.pickerLocked {
		return false, nil
	}

	if f.focus < len(f.inputs) {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		if f.focus == f.pickerIndex() {
			f.picker.setQuery(f.inputs[f.focus].Value())
		}
	}
	return false, cmd
}

// payload builders; parse failures keep the form open with a message.

func (f *formCoordinator) transactionPayload() (api.TransactionPayload, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(f.inputs[txFieldAmount].Value()), 64)
	if err != nil {
		return api.TransactionPayload{}, fmt.Errorf("enter a valid amount")
	}
	date, err := api.ParseDate(strings.TrimSpace(f.inputs[txFieldDate].Value()))
	if err != nil {
		return api.TransactionPayload{}, fmt.Errorf("enter a date as yyyy-mm-dd")
	}
	cat := f.picker.current()
	if cat == nil {
		return api.TransactionPayload{}, fmt.Errorf("select a category")
	}
	return api.TransactionPayload{
		Amount:      api.Amount(amount),
		Date:        date,
		Description: strings.TrimSpace(f.inputs[txFieldDescription].Value()),
		CategoryID:  cat.ID,
	}, nil
}

func (f *formCoordinator) budgetPayload() (api.BudgetPayload, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(f.inputs[budgetFieldAmount].Value()), 64)
	if err != nil {
		return api.BudgetPayload{}, fmt.Errorf("enter a valid amount")
	}
	if amount < 0 {
		return api.BudgetPayload{}, fmt.Errorf("budget amount cannot be negative")
	}
	month, err := parseMonth(strings.TrimSpace(f.inputs[budgetFieldMonth].Value()))
	if err != nil {
		return api.BudgetPayload{}, fmt.Errorf("enter a month as yyyy-mm")
	}
	categoryID := 0
	if f.pickerLocked && f.editingBudget != nil && f.editingBudget.Category != nil {
		categoryID = f.editingBudget.Category.ID
	} else if cat := f.picker.current(); cat != nil {
		categoryID = cat.ID
	}
	if categoryID == 0 {
		return api.BudgetPayload{}, fmt.Errorf("select a category")
	}
	return api.BudgetPayload{
		Amount:     api.Amount(amount),
		Month:      month,
		CategoryID: categoryID,
	}, nil
}

func (f *formCoordinator) categoryPayload() (api.CategoryPayload, error) {
	name := strings.TrimSpace(f.inputs[catFieldName].Value())
	if name == "" {
		return api.CategoryPayload{}, fmt.Errorf("enter a name")
	}
	kind := api.CategoryExpense
	if f.typeIncome {
		kind = api.CategoryIncome
	}
	return api.CategoryPayload{Name: name, Type: kind}, nil
}

func parseMonth(s string) (api.Date, error) {
	if d, err := api.ParseDate(s); err == nil {
		return d.FirstOfMonth(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return api.Date{}, err
	}
	return api.DateOf(t).FirstOfMonth(), nil
}

func makeInputs(placeholders ...string) []textinput.Model {
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		ti := textinput.New()
		ti.Placeholder = p
		ti.Prompt = ""
		ti.CharLimit = 120
		inputs[i] = ti
	}
	return inputs
}
