// Package export writes a household snapshot as an xlsx workbook.
package export

import (
	"fmt"
	"io"

	"github.com/etnz/household"
	"github.com/xuri/excelize/v2"
)

// sheet is one worksheet: a header row followed by one row per record.
type sheet struct {
	name    string
	headers []string
	rows    [][]any
}

// Sheets returns the worksheet names in workbook order.
func Sheets() []string {
	names := []string{"Summary"}
	for _, k := range household.Kinds {
		names = append(names, title(k))
	}
	return names
}

func title(k household.Kind) string {
	p := k.Plural()
	return string(p[0]-'a'+'A') + p[1:]
}

func amount(m household.Money) float64 { return m.Round().AsFloat() }

// Workbook builds the workbook: a summary sheet then one sheet per
// collection. Amounts are numbers, their currency is in its own column.
func Workbook(s *household.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	sheets := []sheet{summary(s)}
	sheets = append(sheets, collections(s)...)

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sh.name, err)
		}
		header := make([]any, len(sh.headers))
		for j, h := range sh.headers {
			header[j] = h
		}
		if err := f.SetSheetRow(sh.name, "A1", &header); err != nil {
			return nil, err
		}
		for j, row := range sh.rows {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
				return nil, fmt.Errorf("write %s row %d: %w", sh.name, j+2, err)
			}
		}
		last, _ := excelize.ColumnNumberToName(len(sh.headers))
		if err := f.SetColWidth(sh.name, "A", last, 16); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write writes the workbook of the snapshot to w.
func Write(w io.Writer, s *household.Snapshot) error {
	f, err := Workbook(s)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func summary(s *household.Snapshot) sheet {
	sh := sheet{name: "Summary", headers: []string{"Metric", "Currency", "Amount"}}
	add := func(metric string, t household.Totals) {
		for _, c := range t.Currencies() {
			sh.rows = append(sh.rows, []any{metric, c, amount(t[c])})
		}
	}
	add("Net worth", s.NetWorth())
	add("Emergency fund", s.EmergencyFund())
	allocated, spent := s.BudgetTotals()
	add("Budget allocated", allocated)
	add("Budget spent", spent)
	owed, owe, _ := s.DebtBalance()
	add("Owed to me", owed)
	add("I owe", owe)
	loans, monthly := s.Liabilities()
	add("Loans", loans)
	add("Monthly payments", monthly)
	return sh
}

func collections(s *household.Snapshot) []sheet {
	accounts := sheet{name: title(household.KindAccount), headers: []string{"ID", "Name", "Type", "Currency", "Balance"}}
	for _, a := range s.Accounts() {
		accounts.rows = append(accounts.rows, []any{a.ID, a.Name, string(a.Type), a.Currency(), amount(a.Balance)})
	}

	budgets := sheet{name: title(household.KindBudget), headers: []string{"ID", "Category", "Currency", "Allocated", "Spent", "Remaining", "Used %"}}
	for _, b := range s.Budgets() {
		budgets.rows = append(budgets.rows, []any{b.ID, b.Category, b.Currency(), amount(b.Allocated), amount(b.Spent), amount(b.Remaining()), float64(b.Percentage())})
	}

	expenses := sheet{name: title(household.KindExpense), headers: []string{"ID", "Date", "Category", "Description", "Currency", "Amount"}}
	for _, e := range s.Expenses() {
		expenses.rows = append(expenses.rows, []any{e.ID, e.Date.String(), e.Category, e.Description, e.Currency(), amount(e.Amount)})
	}

	debts := sheet{name: title(household.KindDebt), headers: []string{"ID", "Date", "Person", "Type", "Description", "Currency", "Amount", "Settled"}}
	for _, d := range s.Debts() {
		debts.rows = append(debts.rows, []any{d.ID, d.Date.String(), d.Name, string(d.Type), d.Description, d.Currency(), amount(d.Amount), d.Settled})
	}

	loans := sheet{name: title(household.KindLoan), headers: []string{"ID", "Name", "Type", "Currency", "Amount", "Interest %", "Monthly payment"}}
	for _, l := range s.Loans() {
		loans.rows = append(loans.rows, []any{l.ID, l.Name, string(l.Type), l.Currency(), amount(l.Amount), float64(l.InterestRate), amount(l.MonthlyPayment)})
	}

	properties := sheet{name: title(household.KindProperty), headers: []string{"ID", "Name", "Type", "Purchase date", "Currency", "Current value", "Purchase price", "Gain/Loss", "Gain/Loss %"}}
	for _, p := range s.Properties() {
		properties.rows = append(properties.rows, []any{p.ID, p.Name, p.Type, p.PurchaseDate.String(), p.Currency(), amount(p.CurrentValue), amount(p.PurchasePrice), amount(p.GainLoss()), float64(p.GainLossPercentage())})
	}

	groups := sheet{name: title(household.KindGroup), headers: []string{"ID", "Name", "Color", "Description"}}
	for _, g := range s.Groups() {
		groups.rows = append(groups.rows, []any{g.ID, g.Name, g.Color, g.Description})
	}

	assets := sheet{name: title(household.KindAsset), headers: []string{"ID", "Name", "Type", "Group", "Risk", "Quantity", "Currency", "Price", "Purchase price", "Value", "Gain/Loss", "Gain/Loss %"}}
	for _, a := range s.Assets() {
		group := ""
		if g, ok := s.Group(a.GroupID); ok {
			group = g.Name
		}
		assets.rows = append(assets.rows, []any{
			a.ID, a.Name, a.Type, group, string(a.Risk), a.Quantity.AsFloat(), a.Currency(),
			amount(a.CurrentPrice), amount(a.PurchasePrice), amount(a.CurrentValue()), amount(a.GainLoss()), float64(a.GainLossPercentage()),
		})
	}

	return []sheet{accounts, budgets, expenses, debts, loans, properties, groups, assets}
}
