package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// CategoryType mirrors the service's two-letter category type codes.
type CategoryType string

const (
	CategoryIncome  CategoryType = "IN"
	CategoryExpense CategoryType = "EX"
)

// Label returns the human-readable name for the type code.
func (t CategoryType) Label() string {
	if t == CategoryIncome {
		return "Income"
	}
	return "Expense"
}

// Category is a user-scoped transaction category. The type is fixed at
// creation; the service offers no category delete from this client.
type Category struct {
	ID   int          `json:"id"`
	Name string       `json:"name"`
	Type CategoryType `json:"category_type"`
}

// Transaction is a single dated entry. The sign of the amount is implied
// by the category type, not by the amount itself. Category may be nil when
// the referenced category was deleted server-side.
type Transaction struct {
	ID          int       `json:"id"`
	Amount      Amount    `json:"amount"`
	Date        Date      `json:"date"`
	Description string    `json:"description"`
	Category    *Category `json:"category"`
}

// Budget is a monthly spending ceiling for one category. Month is always
// the first day of the month on the wire.
type Budget struct {
	ID       int       `json:"id"`
	Category *Category `json:"category"`
	Amount   Amount    `json:"amount"`
	Month    Date      `json:"month"`
}

// BudgetVsActual is one row of the summary comparison.
type BudgetVsActual struct {
	Category string `json:"category"`
	Budget   Amount `json:"budget"`
	Actual   Amount `json:"actual"`
}

// Summary is the server-computed financial summary for the current month.
// It is read-only and refetched wholesale; the client never derives it.
type Summary struct {
	TotalIncome    Amount           `json:"total_income"`
	TotalExpenses  Amount           `json:"total_expenses"`
	Balance        Amount           `json:"balance"`
	BudgetVsActual []BudgetVsActual `json:"budget_vs_actual"`
}

// TransactionPayload is the create/update body for a transaction.
type TransactionPayload struct {
	Amount      Amount `json:"amount"`
	Date        Date   `json:"date"`
	Description string `json:"description"`
	CategoryID  int    `json:"category_id"`
}

// BudgetPayload is the create/update body for a budget. Month is
// normalized to the first of the month before sending.
type BudgetPayload struct {
	Amount     Amount `json:"amount"`
	Month      Date   `json:"month"`
	CategoryID int    `json:"category_id"`
}

// CategoryPayload is the create body for a category.
type CategoryPayload struct {
	Name string       `json:"name"`
	Type CategoryType `json:"category_type"`
}

// Amount is a decimal money value. The service serializes decimals as
// either JSON numbers or quoted strings depending on the endpoint, so
// decoding accepts both.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("amount %q: %w", s, err)
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(a), 'f', 2, 64)), nil
}

func (a Amount) Float() float64 { return float64(a) }

const dateLayout = "2006-01-02"

// Date is a calendar day without a time component.
type Date struct {
	time.Time
}

// ParseDate parses a yyyy-mm-dd string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// FirstOfMonth returns the date normalized to day 1.
func (d Date) FirstOfMonth() Date {
	return Date{time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("date %q: %w", s, err)
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
