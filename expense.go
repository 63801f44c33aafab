package household

import (
	"github.com/etnz/household/date"
	"github.com/shopspring/decimal"
)

// Expense is money spent on a given day, usually in a budgeted category.
type Expense struct {
	ID          string
	Amount      Money  `validate:"iso4217"`
	Category    string `validate:"required"`
	Description string
	Date        date.Date `validate:"required"`
}

func (e Expense) Kind() Kind                { return KindExpense }
func (e Expense) Key() string               { return e.ID }
func (e Expense) Currency() string          { return e.Amount.Currency() }
func (e Expense) withKey(id string) Expense { e.ID = id; return e }

func (e Expense) MarshalJSON() ([]byte, error) {
	w := recordObject(e)
	w.set("date", e.Date)
	w.set("category", e.Category)
	w.setNonZero("description", e.Description)
	w.set("currency", e.Currency())
	w.set("amount", e.Amount.value)
	return w.MarshalJSON()
}

// ExpenseCategory returns the category of an expense, for FilterBy.
func ExpenseCategory(e Expense) string { return e.Category }

// ExpenseDate returns the date of an expense, for SortByDate.
func ExpenseDate(e Expense) date.Date { return e.Date }

// ExpenseAmount returns the amount of an expense, for SortByAmount.
func ExpenseAmount(e Expense) Money { return e.Amount }

// ExpensePatch lists the expense fields to update; nil fields are left untouched.
type ExpensePatch struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *date.Date       `json:"date,omitempty"`
}

func (p ExpensePatch) apply(e Expense) Expense {
	e.Amount = patchMoney(e.Amount, p.Amount, p.Currency)
	set(&e.Category, p.Category)
	set(&e.Description, p.Description)
	set(&e.Date, p.Date)
	return e
}
