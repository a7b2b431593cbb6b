package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finwise/internal/ledger"
	"github.com/MrJamesThe3rd/finwise/internal/record"
	"github.com/MrJamesThe3rd/finwise/internal/report"
)

type goalsState int

const (
	goalsStateBrowse goalsState = iota
	goalsStateAdd
	goalsStateEdit
)

type GoalsModel struct {
	CommonModel
	ledger *ledger.Ledger

	state goalsState
	table table.Model
	goals []report.GoalStatus
	form  *huh.Form

	loading bool
	status  string

	// Form bindings
	formName     string
	formTarget   string
	formCurrent  string
	formDeadline string
}

func NewGoalsModel(led *ledger.Ledger) GoalsModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Target", Width: 12},
		{Title: "Current", Width: 12},
		{Title: "Progress", Width: 10},
		{Title: "Deadline", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
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

	return GoalsModel{ledger: led, table: t, loading: true}
}

func (m GoalsModel) Title() string { return "Savings Goals" }
func (m GoalsModel) ShortHelp() string {
	if m.state != goalsStateBrowse {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | a: add | e: edit | r: refresh"
}

func (m GoalsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case goalsLoadedMsg:
		m.loading = false
		m.goals = msg.goals
		m.refreshTable()
		return m, nil

	case goalSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}
		m.state = goalsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()
	}

	switch m.state {
	case goalsStateBrowse:
		return m.updateBrowse(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m GoalsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		case "e":
			return m.enterEditMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m GoalsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formTarget = ""
	m.formCurrent = "0"
	m.formDeadline = ""
	m.form = m.buildForm()
	m.state = goalsStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m GoalsModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.goals) {
		return m, nil
	}

	g := m.goals[idx].Goal
	m.formName = g.Name
	m.formTarget = g.TargetAmount.String()
	m.formCurrent = g.CurrentAmount.String()
	m.formDeadline = ""
	if g.Deadline != nil {
		m.formDeadline = g.Deadline.Format(time.DateOnly)
	}

	m.form = m.buildForm()
	m.state = goalsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m GoalsModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Placeholder("Emergency Fund").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("target").
				Title("Target Amount").
				Placeholder("10000").
				Value(&m.formTarget).
				Validate(validatePositiveAmount),

			huh.NewInput().
				Key("current").
				Title("Current Amount").
				Value(&m.formCurrent).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("not a valid amount")
					}
					if d.IsNegative() {
						return fmt.Errorf("cannot be negative")
					}
					return nil
				}),

			huh.NewInput().
				Key("deadline").
				Title("Deadline (optional)").
				Placeholder("2025-12-31").
				Value(&m.formDeadline).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func validatePositiveAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a valid amount")
	}
	if !d.IsPositive() {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func (m GoalsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = goalsStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m GoalsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading goals...")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state != goalsStateBrowse && m.form != nil {
		title := "Add Goal"
		if m.state == goalsStateEdit {
			title = "Edit Goal"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *GoalsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.goals))
	for _, s := range m.goals {
		deadline := ""
		if s.Goal.Deadline != nil {
			deadline = FormatDate(*s.Goal.Deadline)
		}

		rows = append(rows, table.Row{
			s.Goal.Name,
			FormatAmount(s.Goal.TargetAmount),
			FormatAmount(s.Goal.CurrentAmount),
			s.Percent.StringFixed(0) + "%",
			deadline,
		})
	}
	m.table.SetRows(rows)
}

type goalsLoadedMsg struct {
	goals []report.GoalStatus
}

func (m GoalsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		m.ledger.Load(ctx)

		return goalsLoadedMsg{goals: report.GoalProgress(m.ledger.Goals())}
	}
}

type goalSavedMsg struct {
	err error
}

func (m GoalsModel) saveCmd() tea.Cmd {
	// Read submitted values from the form itself; the Value bindings point
	// into an earlier copy of this model.
	params := record.GoalParams{
		Name:          strings.TrimSpace(m.form.GetString("name")),
		TargetAmount:  mustDecimal(m.form.GetString("target")),
		CurrentAmount: mustDecimal(m.form.GetString("current")),
	}

	if s := strings.TrimSpace(m.form.GetString("deadline")); s != "" {
		if d, err := time.Parse(time.DateOnly, s); err == nil {
			params.Deadline = &d
		}
	}

	editing := m.state == goalsStateEdit

	var id string
	if editing {
		if idx := m.table.Cursor(); idx >= 0 && idx < len(m.goals) {
			id = m.goals[idx].Goal.ID
		}
	}

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if editing {
			return goalSavedMsg{err: m.ledger.UpdateGoal(ctx, record.Goal{
				ID:            id,
				Name:          params.Name,
				TargetAmount:  params.TargetAmount,
				CurrentAmount: params.CurrentAmount,
				Deadline:      params.Deadline,
			})}
		}

		_, err := m.ledger.AddGoal(ctx, params)
		return goalSavedMsg{err: err}
	}
}

func mustDecimal(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(strings.TrimSpace(s))
	return d
}
