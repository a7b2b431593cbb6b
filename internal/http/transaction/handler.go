package transaction

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finwise/internal/http/auth"
	"github.com/MrJamesThe3rd/finwise/internal/ledger"
	"github.com/MrJamesThe3rd/finwise/internal/record"
	"github.com/MrJamesThe3rd/finwise/internal/report"
)

const pageSize = 10

type Handler struct {
	registry *ledger.Registry
}

func NewHandler(registry *ledger.Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/categories", h.categories)
}

type createTransactionRequest struct {
	Kind        record.Kind     `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := record.CreateTransactionParams{
		Kind:        req.Kind,
		Category:    req.Category,
		Amount:      req.Amount,
		OccurredAt:  req.Date,
		Description: req.Description,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	led := h.registry.Acquire(r.Context(), auth.OwnerID(r.Context()))

	tx, err := led.AddTransaction(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type listResponse struct {
	Items      []transactionResponse `json:"items"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"total_pages"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	led := h.registry.Acquire(r.Context(), auth.OwnerID(r.Context()))

	page := 1
	if s := r.URL.Query().Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}

		page = n
	}

	txs := report.SortByDateDesc(report.Filter(led.Transactions(), criteriaFromQuery(r)))
	items, totalPages := report.Paginate(txs, pageSize, page)

	w.Header().Set("Content-Type", "application/json")

	resp := listResponse{
		Items:      toResponseList(items),
		Page:       page,
		TotalPages: totalPages,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	led := h.registry.Acquire(r.Context(), auth.OwnerID(r.Context()))

	categories := report.UniqueCategories(led.Transactions())
	if categories == nil {
		categories = []string{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(categories); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// criteriaFromQuery reads the shared filter params: kind and category repeat,
// from/to are inclusive YYYY-MM-DD bounds.
func criteriaFromQuery(r *http.Request) report.Criteria {
	q := r.URL.Query()

	var c report.Criteria

	for _, k := range q["kind"] {
		c.Kinds = append(c.Kinds, record.Kind(k))
	}

	c.Categories = q["category"]

	if s := q.Get("from"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			c.From = &t
		}
	}

	if s := q.Get("to"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			// Push the bound to the end of the day so the range stays
			// inclusive for timestamps within the last day.
			t = t.Add(24*time.Hour - time.Nanosecond)
			c.To = &t
		}
	}

	return c
}
