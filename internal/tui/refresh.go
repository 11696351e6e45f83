package tui

import tea "github.com/charmbracelet/bubbletea"

// entityKind identifies which entity collections a mutation touched.
// Panels declare the kinds they derive from and only re-fetch when a
// refresh tick overlaps their set.
type entityKind uint8

const (
	entityTransactions entityKind = 1 << iota
	entityBudgets
	entityCategories
)

const entityAll = entityTransactions | entityBudgets | entityCategories

// Panel dependency sets. The summary is derived server-side from all three
// entity kinds; the lists depend on their own kind plus categories for
// name resolution.
const (
	summaryDeps         = entityAll
	transactionListDeps = entityTransactions | entityCategories
	budgetListDeps      = entityBudgets | entityCategories
)

// refreshMsg is the "something changed, re-fetch" tick. Every successful
// mutation publishes exactly one.
type refreshMsg struct {
	kinds entityKind
}

func refreshCmd(kinds entityKind) tea.Cmd {
	return func() tea.Msg { return refreshMsg{kinds: kinds} }
}

func (k entityKind) overlaps(deps entityKind) bool {
	return k&deps != 0
}
