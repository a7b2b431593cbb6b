package view

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finwise/internal/ledger"
	"github.com/MrJamesThe3rd/finwise/internal/report"
)

type DashboardModel struct {
	CommonModel
	ledger *ledger.Ledger

	loading bool

	totals  report.Summary
	monthly []report.MonthPoint
	goals   []report.GoalStatus
}

func NewDashboardModel(led *ledger.Ledger) DashboardModel {
	return DashboardModel{ledger: led, loading: true}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.totals = msg.totals
		m.monthly = msg.monthly
		m.goals = msg.goals
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

var (
	labelStyle   = lipgloss.NewStyle().Faint(true)
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	boxStyle     = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
)

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	summary := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Summary"),
		"",
		fmt.Sprintf("%s %s", labelStyle.Render("Income:  "), incomeStyle.Render(FormatAmount(m.totals.Income))),
		fmt.Sprintf("%s %s", labelStyle.Render("Expenses:"), expenseStyle.Render(FormatAmount(m.totals.Expense))),
		fmt.Sprintf("%s %s", labelStyle.Render("Net:     "), FormatAmount(m.totals.Net())),
		fmt.Sprintf("%s %s%%", labelStyle.Render("Rate:    "), m.totals.SavingsRate().StringFixed(1)),
	))

	monthly := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{titleStyle.Render("Monthly"), ""}, m.monthlyLines()...)...,
	))

	goals := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{titleStyle.Render("Goals"), ""}, m.goalLines()...)...,
	))

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, summary, " ", monthly),
			goals,
		),
	)
}

func (m DashboardModel) monthlyLines() []string {
	lines := make([]string, 0, len(m.monthly))
	for _, p := range m.monthly {
		lines = append(lines, fmt.Sprintf("%-10s %10s %10s",
			p.Label,
			incomeStyle.Render(FormatAmount(p.Income)),
			expenseStyle.Render(FormatAmount(p.Expense)),
		))
	}

	return lines
}

const progressBarWidth = 20

func (m DashboardModel) goalLines() []string {
	if len(m.goals) == 0 {
		return []string{labelStyle.Render("No goals yet")}
	}

	lines := make([]string, 0, len(m.goals))
	for _, s := range m.goals {
		filled := int(s.Percent.Div(decimal.NewFromInt(100)).
			Mul(decimal.NewFromInt(progressBarWidth)).IntPart())
		bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)

		lines = append(lines, fmt.Sprintf("%-20s %s %s%%  (%s / %s)",
			s.Goal.Name,
			bar,
			s.Percent.StringFixed(0),
			FormatAmount(s.Goal.CurrentAmount),
			FormatAmount(s.Goal.TargetAmount),
		))
	}

	return lines
}

type dashboardLoadedMsg struct {
	totals  report.Summary
	monthly []report.MonthPoint
	goals   []report.GoalStatus
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		m.ledger.Load(ctx)

		// Oldest first so the chart labels come out in calendar order.
		txs := report.SortByDateDesc(m.ledger.Transactions())
		slices.Reverse(txs)

		return dashboardLoadedMsg{
			totals:  report.Totals(txs),
			monthly: report.MonthlySeries(txs, time.Now()),
			goals:   report.GoalProgress(m.ledger.Goals()),
		}
	}
}
