package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finwise/internal/ledger"
	"github.com/MrJamesThe3rd/finwise/internal/record"
)

type addState int

const (
	addStateForm addState = iota
	addStateSaving
	addStateDone
)

type AddModel struct {
	CommonModel
	ledger *ledger.Ledger

	state addState
	form  *huh.Form
	err   error
	saved record.Transaction

	// Form bindings
	formKind     string
	formCategory string
	formAmount   string
	formDate     string
	formDesc     string
}

func NewAddModel(led *ledger.Ledger) AddModel {
	m := AddModel{
		ledger:   led,
		formKind: string(record.KindExpense),
		formDate: time.Now().Format(time.DateOnly),
	}
	m.form = m.buildForm()

	return m
}

func (m AddModel) Title() string { return "Add Transaction" }
func (m AddModel) ShortHelp() string {
	if m.state == addStateDone {
		return "Enter: add another | Esc: back"
	}
	return "Navigate form | Esc: cancel"
}

func (m AddModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(record.KindExpense)),
					huh.NewOption("Income", string(record.KindIncome)),
				).
				Value(&m.formKind),

			huh.NewInput().
				Key("category").
				Title("Category").
				Placeholder("Groceries").
				Value(&m.formCategory).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("category cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("42.50").
				Value(&m.formAmount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("not a valid amount")
					}
					if !d.IsPositive() {
						return fmt.Errorf("amount must be positive")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("2024-05-01").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AddModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.form.Init())
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case addSavedMsg:
		m.state = addStateDone
		m.err = msg.err
		m.saved = msg.tx
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case addStateForm:
			if msg.Type == tea.KeyEsc {
				return m, Back
			}
		case addStateDone:
			switch msg.Type {
			case tea.KeyEsc:
				return m, Back
			case tea.KeyEnter:
				fresh := NewAddModel(m.ledger)
				return fresh, fresh.form.Init()
			}
			return m, nil
		case addStateSaving:
			return m, nil
		}
	}

	if m.state != addStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = addStateSaving
	return m, m.saveCmd()
}

func (m AddModel) View() string {
	switch m.state {
	case addStateSaving:
		return lipgloss.NewStyle().Padding(1).Render("Saving...")

	case addStateDone:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).
					Render(fmt.Sprintf("Error: %v", m.err)),
			)
		}

		header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")).
			Render("Transaction Saved")

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				header,
				"",
				fmt.Sprintf("%s  %s  %s", FormatDate(m.saved.OccurredAt), m.saved.Category, FormatAmount(m.saved.Amount)),
			),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}

type addSavedMsg struct {
	tx  record.Transaction
	err error
}

func (m AddModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		m.ledger.Load(ctx)

		return nil
	}
}

func (m AddModel) saveCmd() tea.Cmd {
	// Read submitted values from the form itself; the Value bindings point
	// into an earlier copy of this model.
	amount, _ := decimal.NewFromString(strings.TrimSpace(m.form.GetString("amount")))
	date, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.form.GetString("date")))

	params := record.CreateTransactionParams{
		Kind:        record.Kind(m.form.GetString("type")),
		Category:    strings.TrimSpace(m.form.GetString("category")),
		Amount:      amount,
		OccurredAt:  date,
		Description: strings.TrimSpace(m.form.GetString("description")),
	}

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		tx, err := m.ledger.AddTransaction(ctx, params)
		return addSavedMsg{tx: tx, err: err}
	}
}
