package household

import (
	"testing"

	"github.com/etnz/household/date"
	"github.com/shopspring/decimal"
)

func TestBudget_Metrics(t *testing.T) {
	tests := []struct {
		name      string
		allocated float64
		spent     float64
		remaining float64
		pct       Percent
		exceeded  bool
	}{
		{"partially used", 500, 375, 125, 75, false},
		{"overspent", 200, 250, -50, 125, true},
		{"no allocation", 0, 30, -30, 0, true},
		{"unused", 100, 0, 100, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Budget{Category: "Food", Allocated: M(tt.allocated, "USD"), Spent: M(tt.spent, "USD")}
			if got := b.Remaining(); !got.Equal(M(tt.remaining, "USD")) {
				t.Errorf("Remaining() = %v, want %v", got, tt.remaining)
			}
			if got := b.Percentage(); !got.Equal(tt.pct) {
				t.Errorf("Percentage() = %v, want %v", got, tt.pct)
			}
			if got := b.Exceeded(); got != tt.exceeded {
				t.Errorf("Exceeded() = %v, want %v", got, tt.exceeded)
			}
		})
	}
}

func TestInvestmentAsset_Values(t *testing.T) {
	a := InvestmentAsset{Name: "ACME", Quantity: Q(10), CurrentPrice: M(5, "USD"), PurchasePrice: M(4, "USD")}
	if got := a.CurrentValue(); !got.Equal(M(50, "USD")) {
		t.Errorf("CurrentValue() = %v, want 50", got)
	}
	if got := a.PurchaseValue(); !got.Equal(M(40, "USD")) {
		t.Errorf("PurchaseValue() = %v, want 40", got)
	}
	if got := a.GainLoss(); !got.Equal(M(10, "USD")) {
		t.Errorf("GainLoss() = %v, want 10", got)
	}
	if got := a.GainLossPercentage(); !got.Equal(25) {
		t.Errorf("GainLossPercentage() = %v, want 25", got)
	}

	free := InvestmentAsset{Quantity: Q(3), CurrentPrice: M(2, "USD"), PurchasePrice: M(0, "USD")}
	if got := free.GainLossPercentage(); got != 0 {
		t.Errorf("GainLossPercentage() with zero cost = %v, want 0", got)
	}
}

func TestProperty_GainLoss(t *testing.T) {
	p := Property{Name: "Flat", CurrentValue: M(240000, "EUR"), PurchasePrice: M(200000, "EUR")}
	if got := p.GainLoss(); !got.Equal(M(40000, "EUR")) {
		t.Errorf("GainLoss() = %v, want 40000", got)
	}
	if got := p.GainLossPercentage(); !got.Equal(20) {
		t.Errorf("GainLossPercentage() = %v, want 20", got)
	}
	p.PurchasePrice = M(0, "EUR")
	if got := p.GainLossPercentage(); got != 0 {
		t.Errorf("GainLossPercentage() with zero purchase = %v, want 0", got)
	}
}

func TestSnapshot_EmergencyFund(t *testing.T) {
	s := newTestStore(t)
	s.AddAccount(Account{Name: "Checking", Type: Checking, Balance: M(1000, "USD")})
	sa := s.AddAccount(Account{Name: "Savings A", Type: Savings, Balance: M(3000, "USD")})
	s.AddAccount(Account{Name: "Savings B", Type: Savings, Balance: M(1500, "USD")})
	s.AddAccount(Account{Name: "Card", Type: Credit, Balance: M(200, "USD")})

	if got := s.Snapshot().EmergencyFund().Get("USD"); !got.Equal(M(4500, "USD")) {
		t.Errorf("EmergencyFund() = %v, want 4500", got)
	}

	// changing a savings balance by delta changes the fund by delta.
	if err := s.UpdateAccount(sa, AccountPatch{Balance: ptr(decimal.NewFromInt(3250))}); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().EmergencyFund().Get("USD"); !got.Equal(M(4750, "USD")) {
		t.Errorf("EmergencyFund() after update = %v, want 4750", got)
	}

	snap := s.Snapshot()
	for _, a := range snap.Accounts() {
		want := a.Balance
		if a.Type == Savings {
			want = M(4750, "USD")
		}
		if got := snap.DisplayBalance(a); !got.Equal(want) {
			t.Errorf("DisplayBalance(%s) = %v, want %v", a.Name, got, want)
		}
	}

	if got := snap.EmergencyFund(); got.Get("EUR").IsZero() != true {
		t.Errorf("EmergencyFund() in EUR = %v, want 0", got.Get("EUR"))
	}
}

func TestSnapshot_Allocation(t *testing.T) {
	s := newTestStore(t)
	g := s.AddGroup(AssetGroup{Name: "Stocks"})
	for _, v := range []int{100, 200, 300} {
		s.AddAsset(InvestmentAsset{GroupID: g, Quantity: Q(1), CurrentPrice: M(v, "USD"), PurchasePrice: M(v, "USD")})
	}
	s.AddAsset(InvestmentAsset{Name: "loose", Quantity: Q(2), CurrentPrice: M(50, "USD")})

	shares := s.Snapshot().Allocation(g)
	want := []Percent{16.6667, 33.3333, 50}
	if len(shares) != len(want) {
		t.Fatalf("Allocation() returned %d shares, want %d", len(shares), len(want))
	}
	for i, sh := range shares {
		if !sh.Percent.Equal(want[i]) {
			t.Errorf("share[%d] = %v, want %v", i, sh.Percent, want[i])
		}
	}

	loose := s.Snapshot().Allocation("")
	if len(loose) != 1 || !loose[0].Percent.Equal(100) {
		t.Errorf("Allocation(\"\") = %+v, want the single ungrouped asset at 100%%", loose)
	}

	if got := s.Snapshot().Allocation("unknown"); len(got) != 0 {
		t.Errorf("Allocation(unknown) = %+v, want none", got)
	}

	empty := newTestStore(t)
	eg := empty.AddGroup(AssetGroup{Name: "Empty"})
	empty.AddAsset(InvestmentAsset{GroupID: eg, Quantity: Q(1), CurrentPrice: M(0, "USD")})
	for _, sh := range empty.Snapshot().Allocation(eg) {
		if sh.Percent != 0 {
			t.Errorf("zero valued group share = %v, want 0", sh.Percent)
		}
	}
}

func TestSnapshot_Portfolio(t *testing.T) {
	s := newTestStore(t)
	g := s.AddGroup(AssetGroup{Name: "Stocks"})
	s.AddGroup(AssetGroup{Name: "Bonds"})
	s.AddAsset(InvestmentAsset{GroupID: g, Quantity: Q(10), CurrentPrice: M(5, "USD"), PurchasePrice: M(4, "USD")})
	s.AddAsset(InvestmentAsset{GroupID: "gone", Quantity: Q(1), CurrentPrice: M(50, "USD"), PurchasePrice: M(60, "USD")})

	p := s.Snapshot().Portfolio()
	if len(p) != 3 {
		t.Fatalf("Portfolio() has %d groups, want 3", len(p))
	}
	if p[0].Assets != 1 || !p[0].Value.Get("USD").Equal(M(50, "USD")) || !p[0].Share.Equal(50) {
		t.Errorf("Stocks = %+v", p[0])
	}
	if got := p[0].GainLoss().Get("USD"); !got.Equal(M(10, "USD")) {
		t.Errorf("Stocks GainLoss() = %v, want 10", got)
	}
	if p[1].Assets != 0 || p[1].Share != 0 {
		t.Errorf("Bonds = %+v", p[1])
	}
	if p[2].Group.Name != "Ungrouped" || p[2].Assets != 1 || !p[2].Share.Equal(50) {
		t.Errorf("Ungrouped = %+v", p[2])
	}
	if got := p[2].GainLoss().Get("USD"); !got.Equal(M(-10, "USD")) {
		t.Errorf("Ungrouped GainLoss() = %v, want -10", got)
	}
}

func TestSnapshot_Debts(t *testing.T) {
	s := newTestStore(t)
	s.AddDebt(InterpersonalDebt{Name: "Ann", Amount: M(30, "EUR"), Type: Owed})
	s.AddDebt(InterpersonalDebt{Name: "Bob", Amount: M(12, "EUR"), Type: Owe})
	s.AddDebt(InterpersonalDebt{Name: "Cid", Amount: M(99, "EUR"), Type: Owed, Settled: true})

	snap := s.Snapshot()
	if got := len(snap.ActiveDebts()); got != 2 {
		t.Errorf("ActiveDebts() = %d, want 2", got)
	}
	if got := len(snap.SettledDebts()); got != 1 {
		t.Errorf("SettledDebts() = %d, want 1", got)
	}
	owed, owe, net := snap.DebtBalance()
	if !owed.Get("EUR").Equal(M(30, "EUR")) || !owe.Get("EUR").Equal(M(12, "EUR")) || !net.Get("EUR").Equal(M(18, "EUR")) {
		t.Errorf("DebtBalance() = %v, %v, %v; want 30, 12, 18", owed, owe, net)
	}
}

func TestSnapshot_Spending(t *testing.T) {
	s := newTestStore(t)
	s.AddBudget(Budget{Category: "Food", Allocated: M(400, "EUR"), Spent: M(0, "EUR")})
	s.AddExpense(Expense{Amount: M(20, "EUR"), Category: "Food", Date: date.New(2025, 1, 10)})
	s.AddExpense(Expense{Amount: M(15, "EUR"), Category: "Fun", Date: date.New(2025, 1, 12)})
	s.AddExpense(Expense{Amount: M(5, "EUR"), Category: "Food", Date: date.New(2025, 2, 1)})

	all := s.Snapshot().Spending(date.Range{})
	if len(all) != 2 || all[0].Category != "Food" || all[0].Count != 2 || !all[0].Total.Get("EUR").Equal(M(25, "EUR")) {
		t.Errorf("Spending(all) = %+v", all)
	}
	if all[0].Budget == nil || all[1].Budget != nil {
		t.Errorf("Spending(all) budgets = %v, %v", all[0].Budget, all[1].Budget)
	}

	jan, err := date.ParseRange("2025-01")
	if err != nil {
		t.Fatal(err)
	}
	got := s.Snapshot().Spending(jan)
	if len(got) != 2 || !got[0].Total.Get("EUR").Equal(M(20, "EUR")) {
		t.Errorf("Spending(2025-01) = %+v", got)
	}
}

func TestSnapshot_NetWorth(t *testing.T) {
	s := newTestStore(t)
	s.AddAccount(Account{Type: Checking, Balance: M(1000, "EUR")})
	s.AddAccount(Account{Type: Savings, Balance: M(2000, "EUR")})
	s.AddAccount(Account{Type: Credit, Balance: M(300, "EUR")})
	s.AddProperty(Property{CurrentValue: M(100000, "EUR"), PurchasePrice: M(90000, "EUR")})
	s.AddAsset(InvestmentAsset{Quantity: Q(2), CurrentPrice: M(50, "EUR"), PurchasePrice: M(40, "EUR")})
	s.AddLoan(FinancialDebt{Amount: M(80000, "EUR"), MonthlyPayment: M(700, "EUR")})
	s.AddDebt(InterpersonalDebt{Amount: M(40, "EUR"), Type: Owe})
	s.AddAccount(Account{Type: Checking, Balance: M(10, "USD")})

	nw := s.Snapshot().NetWorth()
	// 1000 + 2000 - 300 + 100000 + 100 - 80000 - 40
	if got := nw.Get("EUR"); !got.Equal(M(22760, "EUR")) {
		t.Errorf("NetWorth() EUR = %v, want 22760", got)
	}
	if got := nw.Get("USD"); !got.Equal(M(10, "USD")) {
		t.Errorf("NetWorth() USD = %v, want 10", got)
	}

	amount, monthly := s.Snapshot().Liabilities()
	if !amount.Get("EUR").Equal(M(80000, "EUR")) || !monthly.Get("EUR").Equal(M(700, "EUR")) {
		t.Errorf("Liabilities() = %v, %v", amount, monthly)
	}
}

func TestTotals(t *testing.T) {
	var tot Totals
	tot = tot.Add(M(10, "EUR")).Add(M(5, "USD")).Sub(M(3, "EUR"))
	if got := tot.Currencies(); len(got) != 2 || got[0] != "EUR" || got[1] != "USD" {
		t.Errorf("Currencies() = %v", got)
	}
	if !tot.Get("EUR").Equal(M(7, "EUR")) {
		t.Errorf("Get(EUR) = %v, want 7", tot.Get("EUR"))
	}
	if !tot.Get("GBP").IsZero() {
		t.Errorf("Get(GBP) = %v, want 0", tot.Get("GBP"))
	}
	if tot.IsZero() {
		t.Error("IsZero() = true")
	}
	if !(Totals{}).IsZero() {
		t.Error("empty IsZero() = false")
	}
}

func TestSnapshot_BudgetTotals(t *testing.T) {
	s := newTestStore(t)
	s.AddBudget(Budget{Category: "Food", Allocated: M(500, "EUR"), Spent: M(375, "EUR")})
	s.AddBudget(Budget{Category: "Fun", Allocated: M(100, "EUR"), Spent: M(120, "EUR")})
	s.AddBudget(Budget{Category: "Rent", Allocated: M(900, "USD"), Spent: M(900, "USD")})

	allocated, spent := s.Snapshot().BudgetTotals()
	tests := []struct {
		name string
		got  Money
		want Money
	}{
		{"allocated EUR", allocated.Get("EUR"), M(600, "EUR")},
		{"spent EUR", spent.Get("EUR"), M(495, "EUR")},
		{"allocated USD", allocated.Get("USD"), M(900, "USD")},
		{"spent USD", spent.Get("USD"), M(900, "USD")},
	}
	for _, tt := range tests {
		if !tt.got.Equal(tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	empty, _ := newTestStore(t).Snapshot().BudgetTotals()
	if !empty.IsZero() {
		t.Errorf("BudgetTotals() of an empty store = %v, want zero", empty)
	}
}

func TestMixedCurrencyRecords(t *testing.T) {
	s := newTestStore(t)
	s.AddBudget(Budget{Category: "Food", Allocated: M(500, "EUR"), Spent: M(375, "USD")})
	s.AddProperty(Property{Name: "Flat", CurrentValue: M(300000, "EUR"), PurchasePrice: M(250000, "USD")})
	s.AddAsset(InvestmentAsset{Name: "ACME", Quantity: Q(10), CurrentPrice: M(5, "EUR"), PurchasePrice: M(4, "USD")})
	snap := s.Snapshot()

	// every amount of a record is read in the record currency.
	b := snap.Budgets()[0]
	if got := b.Remaining(); !got.Equal(M(125, "EUR")) {
		t.Errorf("Budget.Remaining() = %v, want 125 EUR", got)
	}
	p := snap.Properties()[0]
	if got := p.GainLoss(); !got.Equal(M(50000, "EUR")) {
		t.Errorf("Property.GainLoss() = %v, want 50000 EUR", got)
	}
	if got := p.GainLossPercentage(); got != 20 {
		t.Errorf("Property.GainLossPercentage() = %v, want 20", got)
	}
	a := snap.Assets()[0]
	if got := a.GainLoss(); !got.Equal(M(10, "EUR")) {
		t.Errorf("InvestmentAsset.GainLoss() = %v, want 10 EUR", got)
	}
	if _, spent := snap.BudgetTotals(); !spent.Get("EUR").Equal(M(375, "EUR")) || !spent.Get("USD").IsZero() {
		t.Errorf("BudgetTotals() spent = %v, want 375 EUR", spent)
	}
	// aggregates over such records must not panic either.
	snap.NetWorth()
	snap.Portfolio()
}

func TestGainLoss_Currencies(t *testing.T) {
	tests := []struct {
		current, cost Money
		gain          Money
		pct           Percent
	}{
		{M(150, "EUR"), M(100, "EUR"), M(50, "EUR"), 50},
		{M(150, "EUR"), M(100, "USD"), M(0, "EUR"), 0},
		{M(150, "EUR"), M(100, ""), M(50, "EUR"), 50},
	}
	for _, tt := range tests {
		gain, pct := GainLoss(tt.current, tt.cost)
		if !gain.Equal(tt.gain) || pct != tt.pct {
			t.Errorf("GainLoss(%v, %v) = %v, %v; want %v, %v", tt.current, tt.cost, gain, pct, tt.gain, tt.pct)
		}
	}
}
