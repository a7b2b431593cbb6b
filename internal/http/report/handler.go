package report

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finwise/internal/export"
	"github.com/MrJamesThe3rd/finwise/internal/http/auth"
	"github.com/MrJamesThe3rd/finwise/internal/ledger"
	"github.com/MrJamesThe3rd/finwise/internal/record"
	"github.com/MrJamesThe3rd/finwise/internal/report"
)

type Handler struct {
	registry *ledger.Registry
}

func NewHandler(registry *ledger.Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/export", h.export)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	led := h.registry.Acquire(r.Context(), auth.OwnerID(r.Context()))

	txs := report.SortByDateDesc(report.Filter(led.Transactions(), criteriaFromQuery(r)))
	csv := export.Report(txs)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))

	if _, err := w.Write([]byte(csv)); err != nil {
		slog.Error("failed to write report", "error", err)
	}
}

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
			t = t.Add(24*time.Hour - time.Nanosecond)
			c.To = &t
		}
	}

	return c
}
