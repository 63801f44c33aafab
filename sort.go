package household

import (
	"fmt"
	"slices"

	"github.com/etnz/household/date"
)

// Order is a sort direction.
type Order int

const (
	Ascending Order = iota
	Descending
)

// ParseOrder parses "asc" or "desc".
func ParseOrder(s string) (Order, error) {
	switch s {
	case "asc", "ascending", "":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown sort order %q, want asc or desc", s)
}

// SortByDate returns a copy of items sorted by the date returned by when.
// The sort is stable: records with the same date keep their relative order
// in both directions.
func SortByDate[T any](items []T, when func(T) date.Date, order Order) []T {
	return sortBy(items, func(a, b T) int { return when(a).Compare(when(b)) }, order)
}

// SortByAmount returns a copy of items sorted by the money returned by
// amount. The sort is stable.
func SortByAmount[T any](items []T, amount func(T) Money, order Order) []T {
	return sortBy(items, func(a, b T) int { return amount(a).Compare(amount(b)) }, order)
}

func sortBy[T any](items []T, cmp func(a, b T) int, order Order) []T {
	sorted := slices.Clone(items)
	if order == Descending {
		slices.SortStableFunc(sorted, func(a, b T) int { return cmp(b, a) })
	} else {
		slices.SortStableFunc(sorted, cmp)
	}
	return sorted
}

// Filter returns the items for which keep returns true, in order.
func Filter[T any](items []T, keep func(T) bool) []T {
	var kept []T
	for _, item := range items {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	return kept
}

// FilterBy keeps the items whose field exactly matches value.
func FilterBy[T any](items []T, field func(T) string, value string) []T {
	return Filter(items, func(item T) bool { return field(item) == value })
}
