package record

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Document is a record as the persistence collaborator sees it: an owner
// scope plus an opaque JSON body. The store assigns IDs on append.
type Document struct {
	ID      string
	OwnerID string
	Body    json.RawMessage
}

// wireDate decodes a date field from either representation the store may
// return. Encoding always produces the RFC 3339 form; the wrapper never
// survives past this codec.
type wireDate struct {
	value any
}

func (d *wireDate) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '{' {
		var ts Timestamp
		if err := json.Unmarshal(b, &ts); err != nil {
			return fmt.Errorf("decoding timestamp wrapper: %w", err)
		}

		d.value = ts

		return nil
	}

	var t time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return fmt.Errorf("decoding date: %w", err)
	}

	d.value = t

	return nil
}

func (d wireDate) MarshalJSON() ([]byte, error) {
	t, ok := NormalizeDate(d.value)
	if !ok {
		return []byte("null"), nil
	}

	return json.Marshal(t)
}

func (d wireDate) time() time.Time {
	t, _ := NormalizeDate(d.value)
	return t
}

type wireTransaction struct {
	Kind        Kind            `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        wireDate        `json:"date"`
	Description string          `json:"description"`
}

type wireGoal struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      *wireDate       `json:"deadline,omitempty"`
}

// Document encodes the transaction into its store representation.
func (t Transaction) Document() (Document, error) {
	body, err := json.Marshal(wireTransaction{
		Kind:        t.Kind,
		Category:    t.Category,
		Amount:      t.Amount,
		Date:        wireDate{value: t.OccurredAt},
		Description: t.Description,
	})
	if err != nil {
		return Document{}, fmt.Errorf("encoding transaction: %w", err)
	}

	return Document{ID: t.ID, OwnerID: t.OwnerID, Body: body}, nil
}

// TransactionFromDocument decodes a stored transaction, normalizing the date
// to the canonical in-memory representation.
func TransactionFromDocument(doc Document) (Transaction, error) {
	var w wireTransaction
	if err := json.Unmarshal(doc.Body, &w); err != nil {
		return Transaction{}, fmt.Errorf("decoding transaction %s: %w", doc.ID, err)
	}

	return Transaction{
		ID:          doc.ID,
		OwnerID:     doc.OwnerID,
		Kind:        w.Kind,
		Category:    w.Category,
		Amount:      w.Amount,
		OccurredAt:  w.Date.time(),
		Description: w.Description,
	}, nil
}

// Document encodes the goal into its store representation. An absent deadline
// is omitted rather than encoded as null.
func (g Goal) Document() (Document, error) {
	w := wireGoal{
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
	}
	if g.Deadline != nil {
		w.Deadline = &wireDate{value: *g.Deadline}
	}

	body, err := json.Marshal(w)
	if err != nil {
		return Document{}, fmt.Errorf("encoding goal: %w", err)
	}

	return Document{ID: g.ID, OwnerID: g.OwnerID, Body: body}, nil
}

// GoalFromDocument decodes a stored goal.
func GoalFromDocument(doc Document) (Goal, error) {
	var w wireGoal
	if err := json.Unmarshal(doc.Body, &w); err != nil {
		return Goal{}, fmt.Errorf("decoding goal %s: %w", doc.ID, err)
	}

	g := Goal{
		ID:            doc.ID,
		OwnerID:       doc.OwnerID,
		Name:          w.Name,
		TargetAmount:  w.TargetAmount,
		CurrentAmount: w.CurrentAmount,
	}

	if w.Deadline != nil {
		if t, ok := NormalizeDate(w.Deadline.value); ok {
			g.Deadline = &t
		}
	}

	return g, nil
}
