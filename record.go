package household

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind names a collection of records.
type Kind string

const (
	KindAccount  Kind = "account"
	KindBudget   Kind = "budget"
	KindExpense  Kind = "expense"
	KindDebt     Kind = "debt" // interpersonal debts
	KindLoan     Kind = "loan" // financial debts
	KindProperty Kind = "property"
	KindGroup    Kind = "group"
	KindAsset    Kind = "asset"
)

// Kinds lists every kind, in the order collections are persisted.
var Kinds = []Kind{KindAccount, KindBudget, KindExpense, KindDebt, KindLoan, KindProperty, KindGroup, KindAsset}

// Plural returns the collection name of the kind.
func (k Kind) Plural() string {
	switch k {
	case KindProperty:
		return "properties"
	default:
		return string(k) + "s"
	}
}

// ParseKind accepts a kind name in its singular or plural form.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if s == string(k) || s == k.Plural() {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}

// Record is implemented by every stored record type.
type Record interface {
	Kind() Kind
	// Key returns the record identifier.
	Key() string
	// Currency returns the currency shared by the record's money fields.
	Currency() string
}

// entry is the closed set of record types a Store holds.
type entry[T any] interface {
	Account | Budget | Expense | InterpersonalDebt | FinancialDebt | Property | AssetGroup | InvestmentAsset
	Record
	withKey(id string) T
}

// patch merges a partial update into a record.
type patch[T any] interface {
	apply(T) T
}

// set copies *v into dst when v is not nil.
func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// patchMoney replaces the amount and/or the currency of m.
func patchMoney(m Money, amount *decimal.Decimal, currency *string) Money {
	if amount != nil {
		m.value = *amount
	}
	if currency != nil {
		m.cur = *currency
	}
	return m
}
