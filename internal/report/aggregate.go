// Package report computes derived read-models from the in-memory record set.
// Every function is pure and total: empty input yields zero values, never an
// error, and inputs are never mutated.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finwise/internal/record"
)

var hundred = decimal.NewFromInt(100)

// Summary holds the income/expense totals of a transaction set.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Totals sums amounts partitioned by kind in a single pass.
func Totals(txs []record.Transaction) Summary {
	var s Summary

	for _, t := range txs {
		switch t.Kind {
		case record.KindIncome:
			s.Income = s.Income.Add(t.Amount)
		case record.KindExpense:
			s.Expense = s.Expense.Add(t.Amount)
		}
	}

	return s
}

// Net returns income minus expenses. It may be negative.
func (s Summary) Net() decimal.Decimal {
	return s.Income.Sub(s.Expense)
}

// SavingsRate returns net savings as a percentage of income, or zero when
// there is no income. The zero-income guard is deliberate: a fresh account
// must report 0%, not fault on division.
func (s Summary) SavingsRate() decimal.Decimal {
	if !s.Income.IsPositive() {
		return decimal.Zero
	}

	return s.Net().Div(s.Income).Mul(hundred)
}

// MonthPoint is one entry of the income-vs-expense chart series.
type MonthPoint struct {
	Label   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// MonthlySeries groups transactions by the human month name of their date.
// Labels appear in first-occurrence order of the input, and the same calendar
// month of different years shares one bucket; callers wanting chronological
// order must pre-sort the input. When the input is empty the series falls
// back to the trailing six calendar months ending at now, all zero, so chart
// rendering never sees an empty series.
func MonthlySeries(txs []record.Transaction, now time.Time) []MonthPoint {
	if len(txs) == 0 {
		return emptySeries(now)
	}

	index := make(map[string]int, 12)

	var series []MonthPoint

	for _, t := range txs {
		label := t.OccurredAt.Month().String()

		i, ok := index[label]
		if !ok {
			i = len(series)
			index[label] = i
			series = append(series, MonthPoint{Label: label})
		}

		switch t.Kind {
		case record.KindIncome:
			series[i].Income = series[i].Income.Add(t.Amount)
		case record.KindExpense:
			series[i].Expense = series[i].Expense.Add(t.Amount)
		}
	}

	return series
}

func emptySeries(now time.Time) []MonthPoint {
	// Anchor on the first of the month so day-of-month overflow cannot skip
	// a month when stepping backwards.
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	series := make([]MonthPoint, 6)
	for i := range series {
		series[i].Label = first.AddDate(0, i-5, 0).Month().String()
	}

	return series
}

// CategorySum is one slice of the expense breakdown.
type CategorySum struct {
	Category string
	Amount   decimal.Decimal
}

// CategoryBreakdown sums expense amounts per category. Income entries are
// excluded; categories keep the first-occurrence order of the input.
func CategoryBreakdown(txs []record.Transaction) []CategorySum {
	index := make(map[string]int)

	var sums []CategorySum

	for _, t := range txs {
		if t.Kind != record.KindExpense {
			continue
		}

		i, ok := index[t.Category]
		if !ok {
			i = len(sums)
			index[t.Category] = i
			sums = append(sums, CategorySum{Category: t.Category})
		}

		sums[i].Amount = sums[i].Amount.Add(t.Amount)
	}

	return sums
}

// GoalStatus pairs a goal with its display progress.
type GoalStatus struct {
	Goal    record.Goal
	Percent decimal.Decimal
}

// GoalProgress computes clamped progress percentages, order-preserving.
// Callers guarantee TargetAmount > 0; that invariant is enforced at the
// validation boundary, not here.
func GoalProgress(goals []record.Goal) []GoalStatus {
	statuses := make([]GoalStatus, len(goals))

	for i, g := range goals {
		p := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
		if p.GreaterThan(hundred) {
			p = hundred
		}

		statuses[i] = GoalStatus{Goal: g, Percent: p}
	}

	return statuses
}
