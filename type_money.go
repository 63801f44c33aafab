package household

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money from a numeric value and a currency code.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ParseMoney parses a decimal amount like "1234.50" in the given currency.
func ParseMoney(amount, currency string) (Money, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return Money{value: v, cur: currency}, nil
}

// functions that requires the full currency

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// fraction returns the number of fractional digits of the currency (0 for JPY).
func (m Money) fraction() int {
	if m.cur == "" {
		return 2
	}
	return m.currency().Fraction
}

// String returns the string representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// Simple wrapper around money.Money

func (m Money) Currency() string                { return m.cur }
func (m Money) Amount() decimal.Decimal         { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(amount Money) bool      { return m.value.LessThan(amount.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) Compare(n Money) int             { return m.value.Cmp(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(n Quantity) Money            { return Money{value: m.value.Mul(n.value), cur: m.cur} }
func (m Money) Div(n Quantity) Money            { return Money{value: m.value.Div(n.value), cur: m.cur} }
func (m Money) In(currency string) Money        { return Money{value: m.value, cur: currency} }
func (m Money) AsFloat() float64                { return m.value.InexactFloat64() }
func (m Money) Round() Money                    { return Money{value: m.value.Round(int32(m.fraction())), cur: m.cur} }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// sameCurrency reports whether m and n can be added. The "" currency matches
// any other.
func sameCurrency(m, n Money) bool { return m.cur == "" || n.cur == "" || m.cur == n.cur }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON encodes the money as {"currency":..., "amount":...}, rounded to
// the currency fraction.
func (m Money) MarshalJSON() ([]byte, error) {
	var w objectWriter
	w.setNonZero("currency", m.cur)
	w.set("amount", m.value.Round(int32(m.fraction())))
	return w.MarshalJSON()
}

// validCurrency reports whether code is a currency known to go-money.
func validCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}
