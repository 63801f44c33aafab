package household

import (
	"slices"

	"github.com/etnz/household/date"
	"github.com/shopspring/decimal"
)

// GainLoss returns current - cost and its ratio to cost in percent. The
// percentage is 0 when cost is not positive. Amounts in different currencies
// cannot be compared: the gain is then zero.
func GainLoss(current, cost Money) (Money, Percent) {
	if !sameCurrency(current, cost) {
		return Money{value: decimal.Zero, cur: current.cur}, 0
	}
	gain := current.Sub(cost)
	if !cost.IsPositive() {
		return gain, 0
	}
	return gain, ratio(gain.value, cost.value)
}

// EmergencyFund sums the balances of all savings accounts, per currency.
func (s *Snapshot) EmergencyFund() Totals {
	var t Totals
	for _, a := range s.accounts {
		if a.IsEmergencyFund() {
			t = t.Add(a.Balance)
		}
	}
	return t
}

// DisplayBalance is the balance shown for an account: savings accounts show
// the emergency fund of their currency instead of their own balance.
func (s *Snapshot) DisplayBalance(a Account) Money {
	if a.IsEmergencyFund() {
		return s.EmergencyFund().Get(a.Currency())
	}
	return a.Balance
}

// BudgetTotals sums allocations and spendings of all budgets.
func (s *Snapshot) BudgetTotals() (allocated, spent Totals) {
	for _, b := range s.budgets {
		allocated = allocated.Add(b.Allocated)
		spent = spent.Add(b.Spent.In(b.Currency()))
	}
	return allocated, spent
}

// CategorySpending is the total spent in a category.
type CategorySpending struct {
	Category string
	Total    Totals
	Count    int
	// Budget is the budget with the same category, if any.
	Budget *Budget
}

// Spending sums the expenses within r by category, sorted by category. The
// zero Range selects every expense.
func (s *Snapshot) Spending(r date.Range) []CategorySpending {
	index := make(map[string]int)
	var res []CategorySpending
	for _, e := range s.expenses {
		if !r.IsZero() && !r.Contains(e.Date) {
			continue
		}
		i, ok := index[e.Category]
		if !ok {
			i = len(res)
			index[e.Category] = i
			res = append(res, CategorySpending{Category: e.Category})
		}
		res[i].Total = res[i].Total.Add(e.Amount)
		res[i].Count++
	}
	for i := range res {
		if j := slices.IndexFunc(s.budgets, func(b Budget) bool { return b.Category == res[i].Category }); j >= 0 {
			b := s.budgets[j]
			res[i].Budget = &b
		}
	}
	slices.SortFunc(res, func(a, b CategorySpending) int {
		switch {
		case a.Category < b.Category:
			return -1
		case a.Category > b.Category:
			return 1
		}
		return 0
	})
	return res
}

// ActiveDebts returns the interpersonal debts not settled yet.
func (s *Snapshot) ActiveDebts() []InterpersonalDebt {
	return Filter(s.debts, func(d InterpersonalDebt) bool { return !d.Settled })
}

// SettledDebts returns the interpersonal debts already settled.
func (s *Snapshot) SettledDebts() []InterpersonalDebt {
	return Filter(s.debts, func(d InterpersonalDebt) bool { return d.Settled })
}

// DebtBalance sums the active interpersonal debts: what others owe me, what I
// owe them and the net position (owed - owe).
func (s *Snapshot) DebtBalance() (owed, owe, net Totals) {
	for _, d := range s.ActiveDebts() {
		switch d.Type {
		case Owed:
			owed = owed.Add(d.Amount)
		case Owe:
			owe = owe.Add(d.Amount)
		}
		net = net.Add(d.Signed())
	}
	return owed, owe, net
}

// Liabilities sums the financial debts and their monthly payments.
func (s *Snapshot) Liabilities() (amount, monthly Totals) {
	for _, l := range s.loans {
		amount = amount.Add(l.Amount)
		monthly = monthly.Add(l.MonthlyPayment)
	}
	return amount, monthly
}

// Share is the part of one asset in its group.
type Share struct {
	Asset   InvestmentAsset
	Value   Money
	Percent Percent
}

// Allocation returns the share of each asset of a group in the group's total
// current value. Each share is computed independently, they may not sum to
// exactly 100. The "" group holds the assets without a known group.
//
// Groups are expected to hold assets in a single currency; values are summed
// as plain amounts.
func (s *Snapshot) Allocation(groupID string) []Share {
	assets := FilterBy(s.assets, AssetGroupID, groupID)
	if groupID == "" {
		assets = Filter(s.assets, s.ungrouped)
	}
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.CurrentValue().value)
	}
	shares := make([]Share, 0, len(assets))
	for _, a := range assets {
		v := a.CurrentValue()
		shares = append(shares, Share{Asset: a, Value: v, Percent: ratio(v.value, total)})
	}
	return shares
}

// ungrouped reports whether a references no known group.
func (s *Snapshot) ungrouped(a InvestmentAsset) bool {
	_, ok := s.Group(a.GroupID)
	return a.GroupID == "" || !ok
}

// GroupSummary aggregates the assets of a group.
type GroupSummary struct {
	Group  AssetGroup
	Assets int
	Value  Totals
	Cost   Totals
	// Share is the group's part of the whole portfolio value.
	Share Percent
}

// GainLoss returns the unrealized gain of the group.
func (g GroupSummary) GainLoss() Totals {
	gain := Totals{}.Merge(g.Value)
	for _, c := range g.Cost.Currencies() {
		gain = gain.Sub(g.Cost[c])
	}
	return gain
}

// Portfolio summarizes every asset group, in group order, followed by the
// ungrouped assets when there are any. Assets referencing an unknown group
// are reported as ungrouped.
func (s *Snapshot) Portfolio() []GroupSummary {
	known := make(map[string]bool, len(s.groups))
	summaries := make([]GroupSummary, 0, len(s.groups)+1)
	for _, g := range s.groups {
		known[g.ID] = true
		summaries = append(summaries, GroupSummary{Group: g})
	}
	ungrouped := GroupSummary{Group: AssetGroup{Name: "Ungrouped"}}

	total := decimal.Zero
	values := make([]decimal.Decimal, len(summaries)+1)
	for _, a := range s.assets {
		i := len(summaries) // ungrouped
		if known[a.GroupID] {
			i = slices.IndexFunc(summaries, func(g GroupSummary) bool { return g.Group.ID == a.GroupID })
		}
		sum := &ungrouped
		if i < len(summaries) {
			sum = &summaries[i]
		}
		sum.Assets++
		sum.Value = sum.Value.Add(a.CurrentValue())
		sum.Cost = sum.Cost.Add(a.PurchaseValue())
		values[i] = values[i].Add(a.CurrentValue().value)
		total = total.Add(a.CurrentValue().value)
	}
	for i := range summaries {
		summaries[i].Share = ratio(values[i], total)
	}
	if ungrouped.Assets > 0 {
		ungrouped.Share = ratio(values[len(summaries)], total)
		summaries = append(summaries, ungrouped)
	}
	return summaries
}

// NetWorth is everything owned minus everything owed, per currency:
// non-credit account balances, properties, investments and active debts owed
// to me, minus credit balances, financial debts and active debts I owe.
//
// Savings accounts count with their own balance, their sum being the
// emergency fund.
func (s *Snapshot) NetWorth() Totals {
	var t Totals
	for _, a := range s.accounts {
		if a.Type == Credit {
			t = t.Sub(a.Balance)
			continue
		}
		t = t.Add(a.Balance)
	}
	for _, p := range s.properties {
		t = t.Add(p.CurrentValue)
	}
	for _, a := range s.assets {
		t = t.Add(a.CurrentValue())
	}
	for _, l := range s.loans {
		t = t.Sub(l.Amount)
	}
	_, _, net := s.DebtBalance()
	return t.Merge(net)
}
