package household

import (
	"fmt"
	"slices"
)

// Snapshot is an immutable view of the store's collections. Each record
// collection is kept in insertion order.
//
// All derived values (emergency fund, allocations, totals) are computed from
// a Snapshot on demand, they are never stored.
type Snapshot struct {
	version    uint64
	accounts   []Account
	budgets    []Budget
	expenses   []Expense
	debts      []InterpersonalDebt
	loans      []FinancialDebt
	properties []Property
	groups     []AssetGroup
	assets     []InvestmentAsset
}

// clone returns a shallow copy: collections are shared until modified.
func (s *Snapshot) clone() *Snapshot {
	c := *s
	return &c
}

// appendRecord adds r with identifier id to its collection.
func (s *Snapshot) appendRecord(r Record, id string) error {
	switch v := r.(type) {
	case Account:
		s.accounts = append(s.accounts, v.withKey(id))
	case Budget:
		s.budgets = append(s.budgets, v.withKey(id))
	case Expense:
		s.expenses = append(s.expenses, v.withKey(id))
	case InterpersonalDebt:
		s.debts = append(s.debts, v.withKey(id))
	case FinancialDebt:
		s.loans = append(s.loans, v.withKey(id))
	case Property:
		s.properties = append(s.properties, v.withKey(id))
	case AssetGroup:
		s.groups = append(s.groups, v.withKey(id))
	case InvestmentAsset:
		s.assets = append(s.assets, v.withKey(id))
	default:
		return fmt.Errorf("unsupported record type %T", r)
	}
	return nil
}

// Version increases with every mutation of the store.
func (s *Snapshot) Version() uint64 { return s.version }

// Accessors return copies so callers cannot alter the snapshot.

func (s *Snapshot) Accounts() []Account                      { return slices.Clone(s.accounts) }
func (s *Snapshot) Budgets() []Budget                        { return slices.Clone(s.budgets) }
func (s *Snapshot) Expenses() []Expense                      { return slices.Clone(s.expenses) }
func (s *Snapshot) Debts() []InterpersonalDebt               { return slices.Clone(s.debts) }
func (s *Snapshot) Loans() []FinancialDebt                   { return slices.Clone(s.loans) }
func (s *Snapshot) Properties() []Property                   { return slices.Clone(s.properties) }
func (s *Snapshot) Groups() []AssetGroup                     { return slices.Clone(s.groups) }
func (s *Snapshot) Assets() []InvestmentAsset                { return slices.Clone(s.assets) }
func (s *Snapshot) Account(id string) (Account, bool)        { return find(s.accounts, id) }
func (s *Snapshot) Budget(id string) (Budget, bool)          { return find(s.budgets, id) }
func (s *Snapshot) Expense(id string) (Expense, bool)        { return find(s.expenses, id) }
func (s *Snapshot) Debt(id string) (InterpersonalDebt, bool) { return find(s.debts, id) }
func (s *Snapshot) Loan(id string) (FinancialDebt, bool)     { return find(s.loans, id) }
func (s *Snapshot) Property(id string) (Property, bool)      { return find(s.properties, id) }
func (s *Snapshot) Group(id string) (AssetGroup, bool)       { return find(s.groups, id) }
func (s *Snapshot) Asset(id string) (InvestmentAsset, bool)  { return find(s.assets, id) }

func find[T Record](items []T, id string) (T, bool) {
	if i := indexOf(items, id); i >= 0 {
		return items[i], true
	}
	var zero T
	return zero, false
}

// Records returns every record, collection by collection in Kinds order.
func (s *Snapshot) Records() []Record {
	var all []Record
	all = appendAll(all, s.accounts)
	all = appendAll(all, s.budgets)
	all = appendAll(all, s.expenses)
	all = appendAll(all, s.debts)
	all = appendAll(all, s.loans)
	all = appendAll(all, s.properties)
	all = appendAll(all, s.groups)
	all = appendAll(all, s.assets)
	return all
}

// RecordsOf returns the records of one kind.
func (s *Snapshot) RecordsOf(kind Kind) []Record {
	switch kind {
	case KindAccount:
		return appendAll(nil, s.accounts)
	case KindBudget:
		return appendAll(nil, s.budgets)
	case KindExpense:
		return appendAll(nil, s.expenses)
	case KindDebt:
		return appendAll(nil, s.debts)
	case KindLoan:
		return appendAll(nil, s.loans)
	case KindProperty:
		return appendAll(nil, s.properties)
	case KindGroup:
		return appendAll(nil, s.groups)
	case KindAsset:
		return appendAll(nil, s.assets)
	}
	return nil
}

func appendAll[T Record](all []Record, items []T) []Record {
	for _, r := range items {
		all = append(all, r)
	}
	return all
}

// Len returns the number of records of that kind.
func (s *Snapshot) Len(kind Kind) int {
	switch kind {
	case KindAccount:
		return len(s.accounts)
	case KindBudget:
		return len(s.budgets)
	case KindExpense:
		return len(s.expenses)
	case KindDebt:
		return len(s.debts)
	case KindLoan:
		return len(s.loans)
	case KindProperty:
		return len(s.properties)
	case KindGroup:
		return len(s.groups)
	case KindAsset:
		return len(s.assets)
	}
	return 0
}
