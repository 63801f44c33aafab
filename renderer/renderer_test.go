package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/household"
	"github.com/etnz/household/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/language"
)

func testSnapshot(t *testing.T) *household.Snapshot {
	t.Helper()
	s, err := household.NewStore()
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	s.AddAccount(household.Account{Name: "Main", Type: household.Checking, Balance: household.M(1200, "USD")})
	s.AddAccount(household.Account{Name: "Rainy day", Type: household.Savings, Balance: household.M(3000, "USD")})
	s.AddBudget(household.Budget{Category: "Food", Allocated: household.M(500, "USD"), Spent: household.M(375, "USD")})
	s.AddExpense(household.Expense{Amount: household.M(42.5, "USD"), Category: "Food", Description: "Groceries", Date: date.New(2025, 3, 14)})
	s.AddExpense(household.Expense{Amount: household.M(12, "USD"), Category: "Food", Description: "Bakery", Date: date.New(2025, 4, 2)})
	s.AddDebt(household.InterpersonalDebt{Name: "Alex", Amount: household.M(20, "USD"), Type: household.Owed, Date: date.New(2025, 3, 1)})
	g := s.AddGroup(household.AssetGroup{Name: "Stocks"})
	s.AddAsset(household.InvestmentAsset{Name: "ACME", GroupID: g, Quantity: household.Q(10), CurrentPrice: household.M(5, "USD"), PurchasePrice: household.M(4, "USD")})
	return s.Snapshot()
}

// headings returns the text of every heading of the markdown document.
func headings(t *testing.T, md string) []string {
	t.Helper()
	source := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))
	var res []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			res = append(res, string(h.Lines().Value(source)))
		}
		return ast.WalkContinue, nil
	})
	return res
}

// tableCount counts the tables in the markdown document.
func tableCount(md string) int {
	source := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))
	count := 0
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if _, ok := n.(*extast.Table); ok && entering {
			count++
		}
		return ast.WalkContinue, nil
	})
	return count
}

func TestDashboard(t *testing.T) {
	md := Dashboard(testSnapshot(t), Options{Language: language.English, Currency: "USD"})

	want := []string{"Household Dashboard (all time)", "Accounts", "Budgets", "Expenses", "Debts", "Loans", "Properties", "Portfolio", "Stocks"}
	got := headings(t, md)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Dashboard() headings = %q, want %q", got, want)
	}

	for _, s := range []string{
		"**Net worth**: $4,270.00", // 1200 + 3000 + 50 + 20
		"**Emergency fund**: $3,000.00",
		"(emergency fund)",
		"75.00%",
		"$125.00",
		"Groceries",
		"owes me",
		"No loans.",
		"No properties.",
		"$50.00",
		"100.00%",
	} {
		if !strings.Contains(md, s) {
			t.Errorf("Dashboard() does not contain %q:\n%s", s, md)
		}
	}
	if n := tableCount(md); n < 6 {
		t.Errorf("Dashboard() has %d tables, want at least 6", n)
	}
}

func TestDashboard_Period(t *testing.T) {
	r, err := date.ParseRange("2025-03")
	if err != nil {
		t.Fatal(err)
	}
	md := Dashboard(testSnapshot(t), Options{Language: language.English, Currency: "USD", Period: r})
	if !strings.Contains(md, "Groceries") {
		t.Errorf("Dashboard() for %v misses the March expense", r)
	}
	if strings.Contains(md, "Bakery") {
		t.Errorf("Dashboard() for %v shows an April expense", r)
	}
}

func TestDashboard_Sections(t *testing.T) {
	md := Dashboard(testSnapshot(t), Options{Language: language.English, Sections: []string{SectionBudgets}})
	got := headings(t, md)
	want := []string{"Household Dashboard (all time)", "Budgets"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Dashboard() headings = %q, want %q", got, want)
	}
}

func TestSection(t *testing.T) {
	md, err := Section(testSnapshot(t), SectionPortfolio, Options{Language: language.English})
	if err != nil {
		t.Fatalf("Section() failed: %v", err)
	}
	if got := headings(t, md); len(got) != 2 || got[0] != "Portfolio" {
		t.Errorf("Section() headings = %q, want Portfolio first", got)
	}
	if _, err := Section(testSnapshot(t), "nope", Options{}); err == nil {
		t.Error("Section(nope) succeeded, want an error")
	}
}

func TestDashboard_Empty(t *testing.T) {
	s, _ := household.NewStore()
	md := Dashboard(s.Snapshot(), Options{Language: language.English, Currency: "EUR"})
	for _, s := range []string{"No accounts.", "No budgets.", "No expenses.", "No debts.", "No investments."} {
		if !strings.Contains(md, s) {
			t.Errorf("Dashboard() does not contain %q", s)
		}
	}
}
