package advisor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finwise/internal/advisor"
	advisorhttp "github.com/MrJamesThe3rd/finwise/internal/http/advisor"
	"github.com/MrJamesThe3rd/finwise/internal/http/auth"
	"github.com/MrJamesThe3rd/finwise/internal/ledger"
	"github.com/MrJamesThe3rd/finwise/internal/record"
	"github.com/MrJamesThe3rd/finwise/internal/store/memory"
)

const owner = "user-1"

func modelServer(reply string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": reply}}}},
			},
		})
	}))
}

func newServer(store *memory.Store, modelURL string) http.Handler {
	client := advisor.NewClient(modelURL, "gemini-2.0-flash", "test-key", 5*time.Second)

	r := chi.NewRouter()
	r.Route("/advisor", advisorhttp.NewHandler(ledger.NewRegistry(store), client).Routes)

	return r
}

func doRequest(t *testing.T, handler http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req = req.WithContext(auth.WithOwnerID(context.Background(), owner))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func seed(t *testing.T, store *memory.Store) {
	t.Helper()

	doc, err := record.Transaction{
		OwnerID:     owner,
		Kind:        record.KindIncome,
		Category:    "Salary",
		Amount:      decimal.NewFromInt(5000),
		OccurredAt:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Description: "May payroll",
	}.Document()
	require.NoError(t, err)

	_, err = store.Append(context.Background(), ledger.CollectionTransactions, doc)
	require.NoError(t, err)
}

func TestAdvice(t *testing.T) {
	model := modelServer("Save more each month.")
	defer model.Close()

	store := memory.New()
	seed(t, store)

	rec := doRequest(t, newServer(store, model.URL), "/advisor/advice", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Advice string `json:"advice"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Save more each month.", got.Advice)
}

func TestAdvice_UpstreamFailure(t *testing.T) {
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer model.Close()

	rec := doRequest(t, newServer(memory.New(), model.URL), "/advisor/advice", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var got struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got.Error, "Failed to generate advice")
}

func TestChat(t *testing.T) {
	model := modelServer("Your income is 5000.")
	defer model.Close()

	store := memory.New()
	seed(t, store)

	rec := doRequest(t, newServer(store, model.URL), "/advisor/chat", `{"message": "How much do I earn?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Reply struct {
			ID     string    `json:"id"`
			Sender string    `json:"sender"`
			Text   string    `json:"text"`
			SentAt time.Time `json:"sent_at"`
		} `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.NotEmpty(t, got.Reply.ID)
	assert.Equal(t, "ai", got.Reply.Sender)
	assert.Equal(t, "Your income is 5000.", got.Reply.Text)
	assert.False(t, got.Reply.SentAt.IsZero())
}

func TestChat_EmptyMessage(t *testing.T) {
	rec := doRequest(t, newServer(memory.New(), "http://unused"), "/advisor/chat", `{"message": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_MalformedBody(t *testing.T) {
	rec := doRequest(t, newServer(memory.New(), "http://unused"), "/advisor/chat", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
