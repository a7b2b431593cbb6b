package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finwise/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/finwise/internal/config"
	"github.com/MrJamesThe3rd/finwise/internal/database"
	"github.com/MrJamesThe3rd/finwise/internal/ledger"
	"github.com/MrJamesThe3rd/finwise/internal/store/memory"
	"github.com/MrJamesThe3rd/finwise/internal/store/postgres"
)

type model struct {
	ledger *ledger.Ledger

	currentView View

	dashboardView    view.DashboardModel
	transactionsView view.TransactionsModel
	addView          view.AddModel
	goalsView        view.GoalsModel
}

type View int

const (
	ViewMenu         View = 0
	ViewDashboard    View = 1
	ViewTransactions View = 2
	ViewAdd          View = 3
	ViewGoals        View = 4
)

func newStore(cfg *config.Config) (ledger.Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		return memory.New(), nil
	case "postgres":
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}

		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}

		return postgres.New(db), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := newStore(cfg)
	if err != nil {
		slog.Error("failed to set up store", "error", err)
		os.Exit(1)
	}

	led := ledger.New(store, cfg.TUI.Owner)

	return model{
		ledger:           led,
		currentView:      ViewMenu,
		dashboardView:    view.NewDashboardModel(led),
		transactionsView: view.NewTransactionsModel(led),
		addView:          view.NewAddModel(led),
		goalsView:        view.NewGoalsModel(led),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.ledger)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.ledger)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewAdd
				m.addView = view.NewAddModel(m.ledger)

				return m, m.addView.Init()
			case "4":
				m.currentView = ViewGoals
				m.goalsView = view.NewGoalsModel(m.ledger)

				return m, m.goalsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ViewGoals:
		var newModel tea.Model
		newModel, cmd = m.goalsView.Update(msg)
		m.goalsView = newModel.(view.GoalsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"FinWise TUI\n\n" +
				"1. Dashboard\n" +
				"2. Transactions\n" +
				"3. Add Transaction\n" +
				"4. Savings Goals\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewAdd:
		return m.addView.View()
	case ViewGoals:
		return m.goalsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
