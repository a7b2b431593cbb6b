package advisor

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finwise/internal/advisor"
	"github.com/MrJamesThe3rd/finwise/internal/http/auth"
	"github.com/MrJamesThe3rd/finwise/internal/ledger"
	"github.com/MrJamesThe3rd/finwise/internal/record"
	"github.com/MrJamesThe3rd/finwise/internal/report"
)

type Handler struct {
	registry *ledger.Registry
	client   *advisor.Client
}

func NewHandler(registry *ledger.Registry, client *advisor.Client) *Handler {
	return &Handler{registry: registry, client: client}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/advice", h.advice)
	r.Post("/chat", h.chat)
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

func (h *Handler) advice(w http.ResponseWriter, r *http.Request) {
	led := h.registry.Acquire(r.Context(), auth.OwnerID(r.Context()))

	totals := report.Totals(led.Transactions())

	advice, err := h.client.Advise(r.Context(), advisor.AdviceInput{
		Income:   totals.Income,
		Expenses: totals.Expense,
		Savings:  totals.Net(),
	})
	if err != nil {
		writeError(w, "Failed to generate advice: "+err.Error())
		return
	}

	writeJSON(w, adviceResponse{Advice: advice})
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatMessage struct {
	ID     string    `json:"id"`
	Sender string    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

type chatResponse struct {
	Reply chatMessage `json:"reply"`
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	led := h.registry.Acquire(r.Context(), auth.OwnerID(r.Context()))

	txs := led.Transactions()
	totals := report.Totals(txs)

	txsJSON, err := json.Marshal(txs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	goalsJSON, err := json.Marshal(led.Goals())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	reply, err := h.client.Chat(r.Context(), advisor.ChatInput{
		Message:          req.Message,
		TransactionsJSON: string(txsJSON),
		GoalsJSON:        string(goalsJSON),
		TotalIncome:      totals.Income,
		TotalExpenses:    totals.Expense,
		Savings:          totals.Net(),
	})
	if err != nil {
		writeError(w, "Failed to generate reply: "+err.Error())
		return
	}

	writeJSON(w, chatResponse{Reply: chatMessage{
		ID:     record.NewID(),
		Sender: "ai",
		Text:   reply,
		SentAt: time.Now(),
	}})
}

// writeError reports an advisor failure as a user-visible message, not a bare
// status text; the UI shows it inline.
func writeError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)

	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
