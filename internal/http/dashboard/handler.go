// Package dashboard serves the derived read-models: summary figures, the
// monthly chart series, the expense breakdown, and goal progress. Nothing
// here is stored; every response is recomputed from the ledger snapshot.
package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finwise/internal/http/auth"
	"github.com/MrJamesThe3rd/finwise/internal/ledger"
	"github.com/MrJamesThe3rd/finwise/internal/report"
)

type Handler struct {
	registry *ledger.Registry
}

func NewHandler(registry *ledger.Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/monthly", h.monthly)
	r.Get("/categories", h.categories)
	r.Get("/goals", h.goals)
}

type summaryResponse struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetSavings    decimal.Decimal `json:"net_savings"`
	SavingsRate   decimal.Decimal `json:"savings_rate"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	led := h.registry.Acquire(r.Context(), auth.OwnerID(r.Context()))

	totals := report.Totals(led.Transactions())

	writeJSON(w, summaryResponse{
		TotalIncome:   totals.Income,
		TotalExpenses: totals.Expense,
		NetSavings:    totals.Net(),
		SavingsRate:   totals.SavingsRate(),
	})
}

type monthPointResponse struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	led := h.registry.Acquire(r.Context(), auth.OwnerID(r.Context()))

	series := report.MonthlySeries(led.Transactions(), time.Now())

	resp := make([]monthPointResponse, len(series))
	for i, p := range series {
		resp[i] = monthPointResponse{Month: p.Label, Income: p.Income, Expense: p.Expense}
	}

	writeJSON(w, resp)
}

type categorySumResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	led := h.registry.Acquire(r.Context(), auth.OwnerID(r.Context()))

	sums := report.CategoryBreakdown(led.Transactions())

	resp := make([]categorySumResponse, len(sums))
	for i, s := range sums {
		resp[i] = categorySumResponse{Category: s.Category, Amount: s.Amount}
	}

	writeJSON(w, resp)
}

type goalProgressResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	Progress      decimal.Decimal `json:"progress"`
}

func (h *Handler) goals(w http.ResponseWriter, r *http.Request) {
	led := h.registry.Acquire(r.Context(), auth.OwnerID(r.Context()))

	statuses := report.GoalProgress(led.Goals())

	resp := make([]goalProgressResponse, len(statuses))
	for i, s := range statuses {
		resp[i] = goalProgressResponse{
			ID:            s.Goal.ID,
			Name:          s.Goal.Name,
			TargetAmount:  s.Goal.TargetAmount,
			CurrentAmount: s.Goal.CurrentAmount,
			Deadline:      s.Goal.Deadline,
			Progress:      s.Percent,
		}
	}

	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
