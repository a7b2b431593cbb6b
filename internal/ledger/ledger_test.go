package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finwise/internal/ledger"
	"github.com/MrJamesThe3rd/finwise/internal/record"
)

const owner = "user-1"

func txDoc(t *testing.T, id, category string, amount int64) record.Document {
	t.Helper()

	doc, err := record.Transaction{
		ID:          id,
		OwnerID:     owner,
		Kind:        record.KindExpense,
		Category:    category,
		Amount:      decimal.NewFromInt(amount),
		OccurredAt:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Description: category,
	}.Document()
	require.NoError(t, err)

	return doc
}

func goalDoc(t *testing.T, id, name string, target int64) record.Document {
	t.Helper()

	doc, err := record.Goal{
		ID:            id,
		OwnerID:       owner,
		Name:          name,
		TargetAmount:  decimal.NewFromInt(target),
		CurrentAmount: decimal.Zero,
	}.Document()
	require.NoError(t, err)

	return doc
}

func loadedLedger(t *testing.T, store *ledger.MockStore, txDocs, goalDocs []record.Document) *ledger.Ledger {
	t.Helper()

	store.EXPECT().List(gomock.Any(), ledger.CollectionTransactions, owner).Return(txDocs, nil)
	store.EXPECT().List(gomock.Any(), ledger.CollectionGoals, owner).Return(goalDocs, nil)

	l := ledger.New(store, owner)
	l.Load(context.Background())
	require.Equal(t, ledger.StateReady, l.State())

	return l
}

func TestLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := ledger.NewMockStore(ctrl)

	l := loadedLedger(t, store,
		[]record.Document{txDoc(t, "t1", "Rent", 900)},
		[]record.Document{goalDoc(t, "g1", "Fund", 1000)},
	)

	txs := l.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, "t1", txs[0].ID)
	assert.Equal(t, "Rent", txs[0].Category)

	goals := l.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, "Fund", goals[0].Name)
}

func TestLoad_PartialFailureStillReachesReady(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := ledger.NewMockStore(ctrl)

	store.EXPECT().List(gomock.Any(), ledger.CollectionTransactions, owner).
		Return(nil, errors.New("backend down"))
	store.EXPECT().List(gomock.Any(), ledger.CollectionGoals, owner).
		Return([]record.Document{goalDoc(t, "g1", "Fund", 1000)}, nil)

	l := ledger.New(store, owner)
	l.Load(context.Background())

	assert.Equal(t, ledger.StateReady, l.State())
	assert.Empty(t, l.Transactions())
	assert.Len(t, l.Goals(), 1)
}

func TestLoad_SkipsUndecodableDocuments(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := ledger.NewMockStore(ctrl)

	corrupt := record.Document{ID: "bad", OwnerID: owner, Body: []byte(`{"amount": {}}`)}

	l := loadedLedger(t, store,
		[]record.Document{corrupt, txDoc(t, "t1", "Rent", 900)},
		nil,
	)

	txs := l.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, "t1", txs[0].ID)
}

func TestLoad_SecondCallIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := ledger.NewMockStore(ctrl)

	l := loadedLedger(t, store, nil, nil)

	// No further List expectations: a second Load must not touch the store.
	l.Load(context.Background())
	assert.Equal(t, ledger.StateReady, l.State())
}

func TestAddTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := ledger.NewMockStore(ctrl)

	l := loadedLedger(t, store, []record.Document{txDoc(t, "t1", "Rent", 900)}, nil)

	store.EXPECT().Append(gomock.Any(), ledger.CollectionTransactions, gomock.Any()).
		Return("t2", nil)

	tx, err := l.AddTransaction(context.Background(), record.CreateTransactionParams{
		Kind:        record.KindExpense,
		Category:    "Groceries",
		Amount:      decimal.NewFromInt(120),
		OccurredAt:  time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		Description: "Weekly shop",
	})
	require.NoError(t, err)
	assert.Equal(t, "t2", tx.ID)
	assert.Equal(t, owner, tx.OwnerID)

	// Newest entry goes to the front.
	txs := l.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, "t2", txs[0].ID)
	assert.Equal(t, "t1", txs[1].ID)
}

func TestAddTransaction_StoreFailureLeavesMemoryUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := ledger.NewMockStore(ctrl)

	l := loadedLedger(t, store, []record.Document{txDoc(t, "t1", "Rent", 900)}, nil)

	store.EXPECT().Append(gomock.Any(), ledger.CollectionTransactions, gomock.Any()).
		Return("", errors.New("write failed"))

	_, err := l.AddTransaction(context.Background(), record.CreateTransactionParams{
		Kind:        record.KindExpense,
		Category:    "Groceries",
		Amount:      decimal.NewFromInt(120),
		OccurredAt:  time.Now(),
		Description: "Weekly shop",
	})
	require.Error(t, err)

	assert.Len(t, l.Transactions(), 1)
}

func TestAddTransaction_NotReady(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := ledger.NewMockStore(ctrl)

	l := ledger.New(store, owner)

	_, err := l.AddTransaction(context.Background(), record.CreateTransactionParams{})
	assert.ErrorIs(t, err, ledger.ErrNotReady)
}

func TestAddTransaction_NoOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := ledger.NewMockStore(ctrl)

	l := ledger.New(store, "")

	_, err := l.AddTransaction(context.Background(), record.CreateTransactionParams{})
	assert.ErrorIs(t, err, ledger.ErrNoOwner)
}

func TestAddGoal(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := ledger.NewMockStore(ctrl)

	l := loadedLedger(t, store, nil, []record.Document{goalDoc(t, "g1", "Fund", 1000)})

	store.EXPECT().Append(gomock.Any(), ledger.CollectionGoals, gomock.Any()).
		Return("g2", nil)

	goal, err := l.AddGoal(context.Background(), record.GoalParams{
		Name:         "Car",
		TargetAmount: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	assert.Equal(t, "g2", goal.ID)

	// Goals append at the end, unlike transactions.
	goals := l.Goals()
	require.Len(t, goals, 2)
	assert.Equal(t, "g1", goals[0].ID)
	assert.Equal(t, "g2", goals[1].ID)
}

func TestUpdateGoal(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := ledger.NewMockStore(ctrl)

	l := loadedLedger(t, store, nil, []record.Document{goalDoc(t, "g1", "Fund", 1000)})

	store.EXPECT().Update(gomock.Any(), ledger.CollectionGoals, "g1", gomock.Any()).
		Return(nil)

	err := l.UpdateGoal(context.Background(), record.Goal{
		ID:            "g1",
		Name:          "Emergency Fund",
		TargetAmount:  decimal.NewFromInt(2000),
		CurrentAmount: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	goals := l.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, "Emergency Fund", goals[0].Name)
	assert.True(t, goals[0].TargetAmount.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, owner, goals[0].OwnerID)
}

func TestUpdateGoal_UnknownIDLeavesListUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := ledger.NewMockStore(ctrl)

	l := loadedLedger(t, store, nil, []record.Document{goalDoc(t, "g1", "Fund", 1000)})

	store.EXPECT().Update(gomock.Any(), ledger.CollectionGoals, "ghost", gomock.Any()).
		Return(nil)

	err := l.UpdateGoal(context.Background(), record.Goal{
		ID:           "ghost",
		Name:         "Nothing",
		TargetAmount: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	goals := l.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, "Fund", goals[0].Name)
}

func TestUpdateGoal_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := ledger.NewMockStore(ctrl)

	l := loadedLedger(t, store, nil, []record.Document{goalDoc(t, "g1", "Fund", 1000)})

	store.EXPECT().Update(gomock.Any(), ledger.CollectionGoals, "g1", gomock.Any()).
		Return(ledger.ErrNotFound)

	err := l.UpdateGoal(context.Background(), record.Goal{
		ID:           "g1",
		Name:         "Renamed",
		TargetAmount: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	assert.Equal(t, "Fund", l.Goals()[0].Name)
}

func TestSnapshotsAreCopies(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := ledger.NewMockStore(ctrl)

	l := loadedLedger(t, store, []record.Document{txDoc(t, "t1", "Rent", 900)}, nil)

	snapshot := l.Transactions()
	snapshot[0].Category = "Tampered"

	assert.Equal(t, "Rent", l.Transactions()[0].Category)
}
