package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finwise/internal/ledger"
	"github.com/MrJamesThe3rd/finwise/internal/record"
	"github.com/MrJamesThe3rd/finwise/internal/report"
)

const pageSize = 10

type TransactionsModel struct {
	CommonModel
	ledger *ledger.Ledger

	table table.Model
	txs   []record.Transaction

	// Filter cycling
	kindFilterIdx int

	page       int
	totalPages int

	loading bool
}

func NewTransactionsModel(led *ledger.Ledger) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Category", Width: 18},
		{Title: "Amount", Width: 12},
		{Title: "Description", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(pageSize+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return TransactionsModel{
		ledger:  led,
		table:   t,
		page:    1,
		loading: true,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }
func (m TransactionsModel) ShortHelp() string {
	return "Esc: back | f: type filter | ←/→: page | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case transactionsLoadedMsg:
		m.loading = false
		m.txs = msg.txs
		m.refreshTable()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "f":
			m.kindFilterIdx = (m.kindFilterIdx + 1) % 3
			m.page = 1
			m.refreshTable()
			return m, nil
		case "left":
			if m.page > 1 {
				m.page--
				m.refreshTable()
			}
			return m, nil
		case "right":
			if m.page < m.totalPages {
				m.page++
				m.refreshTable()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	kindLabels := []string{"All", "Income", "Expense"}

	header := fmt.Sprintf(
		"Filter: [f] Type: %s | Page %d/%d",
		activeStyle(kindLabels[m.kindFilterIdx]),
		m.page, max(m.totalPages, 1),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			tableView,
		),
	)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m TransactionsModel) criteria() report.Criteria {
	switch m.kindFilterIdx {
	case 1:
		return report.Criteria{Kinds: []record.Kind{record.KindIncome}}
	case 2:
		return report.Criteria{Kinds: []record.Kind{record.KindExpense}}
	default:
		return report.Criteria{}
	}
}

func (m *TransactionsModel) refreshTable() {
	filtered := report.Filter(m.txs, m.criteria())
	items, totalPages := report.Paginate(filtered, pageSize, m.page)
	m.totalPages = totalPages

	rows := make([]table.Row, 0, len(items))
	for _, tx := range items {
		rows = append(rows, table.Row{
			FormatDate(tx.OccurredAt),
			string(tx.Kind),
			tx.Category,
			FormatAmount(tx.Amount),
			tx.Description,
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

type transactionsLoadedMsg struct {
	txs []record.Transaction
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		m.ledger.Load(ctx)

		return transactionsLoadedMsg{
			txs: report.SortByDateDesc(m.ledger.Transactions()),
		}
	}
}
