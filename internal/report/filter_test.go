package report_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finwise/internal/record"
	"github.com/MrJamesThe3rd/finwise/internal/report"
)

func TestFilter_EmptyCriteriaMatchesAll(t *testing.T) {
	txs := []record.Transaction{
		tx(record.KindIncome, "Salary", 1000, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		tx(record.KindExpense, "Rent", 400, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	}

	got := report.Filter(txs, report.Criteria{})
	assert.Equal(t, txs, got)
}

func TestFilter(t *testing.T) {
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	txs := []record.Transaction{
		tx(record.KindIncome, "Salary", 1000, jan),
		tx(record.KindExpense, "Rent", 400, feb),
		tx(record.KindExpense, "Groceries", 120, mar),
	}

	t.Run("ByKind", func(t *testing.T) {
		got := report.Filter(txs, report.Criteria{Kinds: []record.Kind{record.KindExpense}})
		require.Len(t, got, 2)
		assert.Equal(t, "Rent", got[0].Category)
		assert.Equal(t, "Groceries", got[1].Category)
	})

	t.Run("ByCategory", func(t *testing.T) {
		got := report.Filter(txs, report.Criteria{Categories: []string{"Salary", "Rent"}})
		require.Len(t, got, 2)
	})

	t.Run("DateRangeIsInclusive", func(t *testing.T) {
		got := report.Filter(txs, report.Criteria{From: &jan, To: &feb})
		require.Len(t, got, 2)
		assert.Equal(t, "Salary", got[0].Category)
		assert.Equal(t, "Rent", got[1].Category)
	})

	t.Run("Conjunction", func(t *testing.T) {
		got := report.Filter(txs, report.Criteria{
			Kinds: []record.Kind{record.KindExpense},
			From:  &mar,
		})
		require.Len(t, got, 1)
		assert.Equal(t, "Groceries", got[0].Category)
	})

	t.Run("NoMatch", func(t *testing.T) {
		got := report.Filter(txs, report.Criteria{Categories: []string{"Travel"}})
		assert.Empty(t, got)
	})
}

func TestSortByDateDesc(t *testing.T) {
	first := tx(record.KindExpense, "A", 1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	second := tx(record.KindExpense, "B", 2, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	tiedOne := tx(record.KindExpense, "C", 3, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	tiedTwo := tx(record.KindExpense, "D", 4, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	in := []record.Transaction{first, tiedOne, second, tiedTwo}

	got := report.SortByDateDesc(in)
	require.Len(t, got, 4)

	// Newest first; the two same-date entries keep their input order.
	assert.Equal(t, "C", got[0].Category)
	assert.Equal(t, "D", got[1].Category)
	assert.Equal(t, "B", got[2].Category)
	assert.Equal(t, "A", got[3].Category)

	// Input untouched.
	assert.Equal(t, "A", in[0].Category)
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	t.Run("FullPage", func(t *testing.T) {
		page, total := report.Paginate(items, 10, 1)
		assert.Equal(t, 3, total)
		require.Len(t, page, 10)
		assert.Equal(t, 0, page[0])
	})

	t.Run("PartialLastPage", func(t *testing.T) {
		page, total := report.Paginate(items, 10, 3)
		assert.Equal(t, 3, total)
		require.Len(t, page, 3)
		assert.Equal(t, 20, page[0])
	})

	t.Run("OutOfRangeIsEmpty", func(t *testing.T) {
		for _, n := range []int{0, -1, 4, 99} {
			t.Run(fmt.Sprintf("Page%d", n), func(t *testing.T) {
				page, total := report.Paginate(items, 10, n)
				assert.Equal(t, 3, total)
				assert.Empty(t, page)
			})
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		page, total := report.Paginate([]int{}, 10, 1)
		assert.Equal(t, 0, total)
		assert.Empty(t, page)
	})
}

func TestUniqueCategories(t *testing.T) {
	date := time.Now()

	txs := []record.Transaction{
		tx(record.KindExpense, "Rent", 1, date),
		tx(record.KindExpense, "Groceries", 1, date),
		tx(record.KindExpense, "Rent", 1, date),
		tx(record.KindIncome, "Salary", 1, date),
	}

	assert.Equal(t, []string{"Rent", "Groceries", "Salary"}, report.UniqueCategories(txs))
}
