package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Underline(true)
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("240"))
	focusPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("63"))
	modalStyle      = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 2)
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	incomeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	expenseStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	statusBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorMark      = "▶"
)
