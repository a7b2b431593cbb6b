// Package advisor calls the language-model service that answers questions
// about a user's financial data. Calls are single-shot and never retried; a
// failure is surfaced to the caller as an error and the caller decides how to
// show it.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type Client struct {
	client  *http.Client
	baseURL string
	model   string
	apiKey  string
}

func NewClient(baseURL, model, apiKey string, timeout time.Duration) *Client {
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
	}
}

// AdviceInput carries the aggregate figures the advice prompt is built from.
type AdviceInput struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Savings  decimal.Decimal
}

// ChatInput carries one user message plus the financial context the model
// answers from. Transactions and goals travel as pre-marshalled JSON.
type ChatInput struct {
	Message          string
	TransactionsJSON string
	GoalsJSON        string
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	Savings          decimal.Decimal
}

const advicePrompt = `You are a personal finance advisor. Based on the user's financial data, provide personalized and actionable advice.

Income: %s
Expenses: %s
Savings: %s

Provide specific recommendations for improving their financial situation, such as budgeting tips, saving strategies, and investment options.`

const chatPrompt = `You are FinWise, a friendly and helpful AI financial chatbot. Your goal is to answer users' questions about their financial data.

IMPORTANT: Keep your answers very short, concise, and easy to understand. Use simple language. Avoid long paragraphs. Use bullet points if it makes the information clearer.

Here is the user's financial data:
- Total Income: %s
- Total Expenses: %s
- Savings: %s
- Transactions (JSON): %s
- Goals (JSON): %s

Based on this data, answer the user's question.

User's question: "%s"`

// Advise generates financial advice from the aggregate figures.
func (c *Client) Advise(ctx context.Context, in AdviceInput) (string, error) {
	prompt := fmt.Sprintf(advicePrompt, in.Income, in.Expenses, in.Savings)
	return c.generate(ctx, prompt)
}

// Chat answers one user message in the context of their records.
func (c *Client) Chat(ctx context.Context, in ChatInput) (string, error) {
	prompt := fmt.Sprintf(chatPrompt,
		in.TotalIncome, in.TotalExpenses, in.Savings,
		in.TransactionsJSON, in.GoalsJSON, in.Message)

	return c.generate(ctx, prompt)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, msg)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty model response")
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}
