package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finwise/internal/record"
)

type transactionResponse struct {
	ID          string          `json:"id"`
	Kind        record.Kind     `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

func toResponse(tx record.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Kind:        tx.Kind,
		Category:    tx.Category,
		Amount:      tx.Amount,
		Date:        tx.OccurredAt,
		Description: tx.Description,
	}
}

func toResponseList(txs []record.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
