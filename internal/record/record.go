package record

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewID returns a fresh opaque record identifier for client-generated IDs
// (chat messages and the like); store-backed records get their IDs from the
// store on append.
func NewID() string {
	return uuid.NewString()
}

// Kind represents the direction of a transaction (income or expense).
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is a single income or expense entry. The sign is carried by
// Kind; Amount is always a positive magnitude. Transactions are immutable
// once created.
type Transaction struct {
	ID          string
	OwnerID     string
	Kind        Kind
	Category    string
	Amount      decimal.Decimal
	OccurredAt  time.Time
	Description string
}

// Goal is a savings goal. CurrentAmount may exceed TargetAmount; progress
// display clamps, the stored value does not.
type Goal struct {
	ID            string
	OwnerID       string
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
}
