// Package ledger owns the authoritative in-memory record set for one owner
// and reconciles it with the persistence collaborator. Mutations are
// confirm-then-apply: memory changes only after the store acknowledges.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/finwise/internal/record"
)

const (
	CollectionTransactions = "transactions"
	CollectionGoals        = "goals"
)

var (
	ErrNotReady = errors.New("ledger is not ready")
	ErrNoOwner  = errors.New("owner identity is required")

	// ErrNotFound is returned by Store implementations when an update names
	// a document that does not exist.
	ErrNotFound = errors.New("document not found")
)

//go:generate mockgen -source=ledger.go -destination=store_mock.go -package=ledger
type Store interface {
	List(ctx context.Context, collection, ownerID string) ([]record.Document, error)
	Append(ctx context.Context, collection string, doc record.Document) (string, error)
	Update(ctx context.Context, collection, id string, doc record.Document) error
}

// State is the ledger lifecycle: Uninitialized -> Loading -> Ready.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

type Ledger struct {
	store   Store
	ownerID string

	mu           sync.Mutex
	state        State
	transactions []record.Transaction
	goals        []record.Goal
}

func New(store Store, ownerID string) *Ledger {
	return &Ledger{store: store, ownerID: ownerID}
}

// Load fetches both collections concurrently and transitions to Ready once
// both settle. A failed collection is logged and defaults to empty; Ready is
// always reached so callers are never blocked on a fetch failure. Calling
// Load on an already loading or loaded ledger is a no-op.
func (l *Ledger) Load(ctx context.Context) {
	l.mu.Lock()
	if l.state != StateUninitialized {
		l.mu.Unlock()
		return
	}

	l.state = StateLoading
	l.mu.Unlock()

	var (
		txs   []record.Transaction
		goals []record.Goal
	)

	var g errgroup.Group

	g.Go(func() error {
		docs, err := l.store.List(ctx, CollectionTransactions, l.ownerID)
		if err != nil {
			slog.Error("loading transactions failed", "owner", l.ownerID, "error", err)
			return nil
		}

		txs = decodeAll(docs, record.TransactionFromDocument)

		return nil
	})

	g.Go(func() error {
		docs, err := l.store.List(ctx, CollectionGoals, l.ownerID)
		if err != nil {
			slog.Error("loading goals failed", "owner", l.ownerID, "error", err)
			return nil
		}

		goals = decodeAll(docs, record.GoalFromDocument)

		return nil
	})

	_ = g.Wait()

	l.mu.Lock()
	l.transactions = txs
	l.goals = goals
	l.state = StateReady
	l.mu.Unlock()
}

// decodeAll drops undecodable documents instead of failing the collection; a
// single corrupt record must not empty the whole view.
func decodeAll[T any](docs []record.Document, decode func(record.Document) (T, error)) []T {
	out := make([]T, 0, len(docs))

	for _, doc := range docs {
		v, err := decode(doc)
		if err != nil {
			slog.Error("skipping undecodable document", "id", doc.ID, "error", err)
			continue
		}

		out = append(out, v)
	}

	return out
}

func (l *Ledger) ready() error {
	if l.ownerID == "" {
		return ErrNoOwner
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateReady {
		return ErrNotReady
	}

	return nil
}

// AddTransaction appends the transaction to the store and, only after the
// store has assigned an ID, prepends it to memory. On failure the error is
// returned and memory keeps the last known-good state.
func (l *Ledger) AddTransaction(ctx context.Context, params record.CreateTransactionParams) (record.Transaction, error) {
	if err := l.ready(); err != nil {
		return record.Transaction{}, err
	}

	tx := record.Transaction{
		OwnerID:     l.ownerID,
		Kind:        params.Kind,
		Category:    params.Category,
		Amount:      params.Amount,
		OccurredAt:  params.OccurredAt,
		Description: params.Description,
	}

	doc, err := tx.Document()
	if err != nil {
		return record.Transaction{}, err
	}

	id, err := l.store.Append(ctx, CollectionTransactions, doc)
	if err != nil {
		return record.Transaction{}, fmt.Errorf("appending transaction: %w", err)
	}

	tx.ID = id

	l.mu.Lock()
	l.transactions = append([]record.Transaction{tx}, l.transactions...)
	l.mu.Unlock()

	return tx, nil
}

// AddGoal is the goal analogue of AddTransaction; new goals go to the end of
// the list.
func (l *Ledger) AddGoal(ctx context.Context, params record.GoalParams) (record.Goal, error) {
	if err := l.ready(); err != nil {
		return record.Goal{}, err
	}

	goal := record.Goal{
		OwnerID:       l.ownerID,
		Name:          params.Name,
		TargetAmount:  params.TargetAmount,
		CurrentAmount: params.CurrentAmount,
		Deadline:      params.Deadline,
	}

	doc, err := goal.Document()
	if err != nil {
		return record.Goal{}, err
	}

	id, err := l.store.Append(ctx, CollectionGoals, doc)
	if err != nil {
		return record.Goal{}, fmt.Errorf("appending goal: %w", err)
	}

	goal.ID = id

	l.mu.Lock()
	l.goals = append(l.goals, goal)
	l.mu.Unlock()

	return goal, nil
}

// UpdateGoal writes the full goal record to the store and then replaces the
// matching in-memory entry. An ID that is unknown to memory leaves the list
// unchanged without an error.
func (l *Ledger) UpdateGoal(ctx context.Context, goal record.Goal) error {
	if err := l.ready(); err != nil {
		return err
	}

	goal.OwnerID = l.ownerID

	doc, err := goal.Document()
	if err != nil {
		return err
	}

	if err := l.store.Update(ctx, CollectionGoals, goal.ID, doc); err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}

	l.mu.Lock()
	for i := range l.goals {
		if l.goals[i].ID == goal.ID {
			l.goals[i] = goal
			break
		}
	}
	l.mu.Unlock()

	return nil
}

// Transactions returns a snapshot of the in-memory transaction list.
func (l *Ledger) Transactions() []record.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.transactions)
}

// Goals returns a snapshot of the in-memory goal list.
func (l *Ledger) Goals() []record.Goal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.goals)
}

func (l *Ledger) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state
}
