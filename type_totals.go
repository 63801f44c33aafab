package household

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Totals sums money per currency. There are no exchange rates in a
// household database so amounts in different currencies are never mixed.
//
// The zero value is an empty, ready to use Totals.
type Totals map[string]Money

// Add adds m to the total of its currency and returns the receiver,
// allocating it if needed.
func (t Totals) Add(m Money) Totals {
	if t == nil {
		t = make(Totals)
	}
	t[m.cur] = t.Get(m.cur).Add(m)
	return t
}

// Sub subtracts m from the total of its currency.
func (t Totals) Sub(m Money) Totals { return t.Add(m.Neg()) }

// Merge adds every total of u into t.
func (t Totals) Merge(u Totals) Totals {
	for _, c := range u.Currencies() {
		t = t.Add(u[c])
	}
	return t
}

// Get returns the total in that currency, zero if there is none.
func (t Totals) Get(currency string) Money {
	if m, ok := t[currency]; ok {
		return m
	}
	return Money{value: decimal.Zero, cur: currency}
}

// Currencies returns the currencies in use, sorted.
func (t Totals) Currencies() []string {
	curs := make([]string, 0, len(t))
	for c := range t {
		curs = append(curs, c)
	}
	slices.Sort(curs)
	return curs
}

// IsZero reports whether every total is zero.
func (t Totals) IsZero() bool {
	for _, m := range t {
		if !m.IsZero() {
			return false
		}
	}
	return true
}

// String joins the totals, in currency order.
func (t Totals) String() string {
	if len(t) == 0 {
		return "0"
	}
	parts := make([]string, 0, len(t))
	for _, c := range t.Currencies() {
		parts = append(parts, t[c].String())
	}
	return strings.Join(parts, " + ")
}
