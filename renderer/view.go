package renderer

import (
	"github.com/etnz/household"
	"github.com/etnz/household/date"
	"golang.org/x/text/language"
)

// Options configures the dashboard rendering.
type Options struct {
	Language language.Tag
	// Currency is used to display empty totals.
	Currency string
	// Period selects the expenses and spending shown.
	Period date.Range
	// Sections restricts the rendering to the named sections, all if empty.
	Sections []string
}

// Section names.
const (
	SectionAccounts   = "accounts"
	SectionBudgets    = "budgets"
	SectionExpenses   = "expenses"
	SectionDebts      = "debts"
	SectionLoans      = "loans"
	SectionProperties = "properties"
	SectionPortfolio  = "portfolio"
)

// AllSections lists the dashboard sections in display order.
var AllSections = []string{SectionAccounts, SectionBudgets, SectionExpenses, SectionDebts, SectionLoans, SectionProperties, SectionPortfolio}

type dashboard struct {
	Period        string
	NetWorth      string
	EmergencyFund string
	Show          map[string]bool

	Accounts []accountRow

	Budgets        []budgetRow
	BudgetAlloc    string
	BudgetSpent    string
	Spending       []spendingRow
	Expenses       []expenseRow
	ExpensesTotal  string
	ActiveDebts    []debtRow
	SettledDebts   []debtRow
	DebtOwed       string
	DebtOwe        string
	DebtNet        string
	Loans          []loanRow
	LoansTotal     string
	LoansMonthly   string
	Properties     []propertyRow
	PropertyValue  string
	PropertyGain   string
	Groups         []groupRow
	PortfolioValue string
}

type accountRow struct {
	Name, Type, Balance string
	EmergencyFund       bool
}

type budgetRow struct {
	Category, Allocated, Spent, Remaining, Percentage string
	Exceeded                                          bool
}

type spendingRow struct {
	Category, Total, Budget string
	Count                   int
}

type expenseRow struct{ Date, Category, Description, Amount string }

type debtRow struct{ Date, Name, Direction, Amount, Description string }

type loanRow struct{ Name, Type, Amount, Rate, Monthly string }

type propertyRow struct{ Name, Type, Current, Purchase, GainLoss, GainLossPct string }

type groupRow struct {
	Name, Color, Value, GainLoss, Share string
	Assets                              int
	Shares                              []shareRow
}

type shareRow struct{ Name, Quantity, Price, Value, GainLoss, GainLossPct, Percent string }

// newDashboard computes every displayed value from the snapshot.
func newDashboard(s *household.Snapshot, opts Options) *dashboard {
	lang := opts.Language
	cur := func(m household.Money) string { return household.FormatCurrency(m, lang) }
	tot := func(t household.Totals) string { return household.FormatTotals(t, opts.Currency, lang) }
	pct := func(p household.Percent) string { return household.FormatNumber(float64(p), 2, lang) + "%" }

	d := &dashboard{
		Period:        "all time",
		NetWorth:      tot(s.NetWorth()),
		EmergencyFund: tot(s.EmergencyFund()),
		Show:          make(map[string]bool),
	}
	if !opts.Period.IsZero() {
		d.Period = opts.Period.Identifier()
	}
	sections := opts.Sections
	if len(sections) == 0 {
		sections = AllSections
	}
	for _, name := range sections {
		d.Show[name] = true
	}

	for _, a := range s.Accounts() {
		d.Accounts = append(d.Accounts, accountRow{
			Name:          a.Name,
			Type:          string(a.Type),
			Balance:       cur(s.DisplayBalance(a)),
			EmergencyFund: a.IsEmergencyFund(),
		})
	}

	for _, b := range s.Budgets() {
		d.Budgets = append(d.Budgets, budgetRow{
			Category:   b.Category,
			Allocated:  cur(b.Allocated),
			Spent:      cur(b.Spent),
			Remaining:  cur(b.Remaining()),
			Percentage: pct(b.Percentage()),
			Exceeded:   b.Exceeded(),
		})
	}
	alloc, spent := s.BudgetTotals()
	d.BudgetAlloc, d.BudgetSpent = tot(alloc), tot(spent)

	for _, sp := range s.Spending(opts.Period) {
		row := spendingRow{Category: sp.Category, Total: tot(sp.Total), Count: sp.Count, Budget: "-"}
		if sp.Budget != nil {
			row.Budget = cur(sp.Budget.Allocated)
		}
		d.Spending = append(d.Spending, row)
	}

	inPeriod := household.Filter(s.Expenses(), func(e household.Expense) bool {
		return opts.Period.IsZero() || opts.Period.Contains(e.Date)
	})
	var expensesTotal household.Totals
	for _, e := range household.SortByDate(inPeriod, household.ExpenseDate, household.Descending) {
		d.Expenses = append(d.Expenses, expenseRow{
			Date:        e.Date.String(),
			Category:    e.Category,
			Description: e.Description,
			Amount:      cur(e.Amount),
		})
		expensesTotal = expensesTotal.Add(e.Amount)
	}
	d.ExpensesTotal = tot(expensesTotal)

	debtRows := func(debts []household.InterpersonalDebt) []debtRow {
		var rows []debtRow
		for _, debt := range household.SortByDate(debts, household.DebtDate, household.Descending) {
			direction := "owes me"
			if debt.Type == household.Owe {
				direction = "I owe"
			}
			rows = append(rows, debtRow{
				Date:        debt.Date.String(),
				Name:        debt.Name,
				Direction:   direction,
				Amount:      cur(debt.Amount),
				Description: debt.Description,
			})
		}
		return rows
	}
	d.ActiveDebts = debtRows(s.ActiveDebts())
	d.SettledDebts = debtRows(s.SettledDebts())
	owed, owe, net := s.DebtBalance()
	d.DebtOwed, d.DebtOwe, d.DebtNet = tot(owed), tot(owe), tot(net)

	for _, l := range s.Loans() {
		d.Loans = append(d.Loans, loanRow{
			Name:    l.Name,
			Type:    string(l.Type),
			Amount:  cur(l.Amount),
			Rate:    pct(l.InterestRate),
			Monthly: cur(l.MonthlyPayment),
		})
	}
	amount, monthly := s.Liabilities()
	d.LoansTotal, d.LoansMonthly = tot(amount), tot(monthly)

	var propValue, propGain household.Totals
	for _, p := range s.Properties() {
		d.Properties = append(d.Properties, propertyRow{
			Name:        p.Name,
			Type:        p.Type,
			Current:     cur(p.CurrentValue),
			Purchase:    cur(p.PurchasePrice),
			GainLoss:    cur(p.GainLoss()),
			GainLossPct: pct(p.GainLossPercentage()),
		})
		propValue = propValue.Add(p.CurrentValue)
		propGain = propGain.Add(p.GainLoss())
	}
	d.PropertyValue, d.PropertyGain = tot(propValue), tot(propGain)

	var portfolio household.Totals
	for _, g := range s.Portfolio() {
		row := groupRow{
			Name:     g.Group.Name,
			Color:    g.Group.Color,
			Value:    tot(g.Value),
			GainLoss: tot(g.GainLoss()),
			Share:    pct(g.Share),
			Assets:   g.Assets,
		}
		for _, sh := range s.Allocation(g.Group.ID) {
			a := sh.Asset
			row.Shares = append(row.Shares, shareRow{
				Name:        a.Name,
				Quantity:    a.Quantity.String(),
				Price:       cur(a.CurrentPrice),
				Value:       cur(sh.Value),
				GainLoss:    cur(a.GainLoss()),
				GainLossPct: pct(a.GainLossPercentage()),
				Percent:     pct(sh.Percent),
			})
		}
		portfolio = portfolio.Merge(g.Value)
		d.Groups = append(d.Groups, row)
	}
	d.PortfolioValue = tot(portfolio)
	return d
}
