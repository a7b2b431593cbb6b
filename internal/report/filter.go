package report

import (
	"slices"
	"time"

	"github.com/MrJamesThe3rd/finwise/internal/record"
)

// Criteria narrows a transaction list. Empty kind/category sets match all
// (inclusive default, not match-none); nil From/To disables that bound and a
// present range is inclusive on both ends.
type Criteria struct {
	Kinds      []record.Kind
	Categories []string
	From       *time.Time
	To         *time.Time
}

func (c Criteria) matches(t record.Transaction) bool {
	if len(c.Kinds) > 0 && !slices.Contains(c.Kinds, t.Kind) {
		return false
	}

	if len(c.Categories) > 0 && !slices.Contains(c.Categories, t.Category) {
		return false
	}

	if c.From != nil && t.OccurredAt.Before(*c.From) {
		return false
	}

	if c.To != nil && t.OccurredAt.After(*c.To) {
		return false
	}

	return true
}

// Filter returns the subsequence of transactions matching the criteria.
func Filter(txs []record.Transaction, c Criteria) []record.Transaction {
	out := make([]record.Transaction, 0, len(txs))

	for _, t := range txs {
		if c.matches(t) {
			out = append(out, t)
		}
	}

	return out
}

// SortByDateDesc returns a copy sorted newest-first. The sort is stable, so
// same-date entries keep their relative order.
func SortByDateDesc(txs []record.Transaction) []record.Transaction {
	out := slices.Clone(txs)
	slices.SortStableFunc(out, func(a, b record.Transaction) int {
		return b.OccurredAt.Compare(a.OccurredAt)
	})

	return out
}

// Paginate slices one page out of items. An out-of-range page yields an empty
// slice rather than clamping; callers guard their next/previous controls.
func Paginate[T any](items []T, pageSize, page int) ([]T, int) {
	if pageSize <= 0 {
		return nil, 0
	}

	totalPages := (len(items) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if page < 1 || start >= len(items) {
		return []T{}, totalPages
	}

	end := min(start+pageSize, len(items))

	return items[start:end], totalPages
}

// UniqueCategories lists each category once, in first-occurrence order.
func UniqueCategories(txs []record.Transaction) []string {
	seen := make(map[string]struct{})

	var out []string

	for _, t := range txs {
		if _, ok := seen[t.Category]; ok {
			continue
		}

		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}

	return out
}
