package household

import "github.com/shopspring/decimal"

// LoanType classifies financial debts.
type LoanType string

const (
	Mortgage   LoanType = "mortgage"
	Auto       LoanType = "auto"
	Personal   LoanType = "personal"
	CreditCard LoanType = "credit_card"
)

// FinancialDebt is a debt owed to a financial institution. It only records
// flat figures, no amortization schedule is derived from them.
type FinancialDebt struct {
	ID             string
	Name           string   `validate:"required"`
	Type           LoanType `validate:"oneof=mortgage auto personal credit_card"`
	Amount         Money    `validate:"iso4217"`
	InterestRate   Percent  `validate:"gte=0"`
	MonthlyPayment Money    `validate:"iso4217"`
}

func (l FinancialDebt) Kind() Kind                      { return KindLoan }
func (l FinancialDebt) Key() string                     { return l.ID }
func (l FinancialDebt) Currency() string                { return l.Amount.Currency() }
func (l FinancialDebt) withKey(id string) FinancialDebt { l.ID = id; return l }

func (l FinancialDebt) MarshalJSON() ([]byte, error) {
	w := recordObject(l)
	w.set("name", l.Name)
	w.set("type", l.Type)
	w.set("currency", l.Currency())
	w.set("amount", l.Amount.value)
	w.set("interestRate", float64(l.InterestRate))
	w.set("monthlyPayment", l.MonthlyPayment.value)
	return w.MarshalJSON()
}

// LoanAmount returns the outstanding amount of a loan, for SortByAmount.
func LoanAmount(l FinancialDebt) Money { return l.Amount }

// LoanPatch lists the financial debt fields to update; nil fields are left untouched.
type LoanPatch struct {
	Name           *string          `json:"name,omitempty"`
	Type           *LoanType        `json:"type,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	Currency       *string          `json:"currency,omitempty"`
	InterestRate   *Percent         `json:"interestRate,omitempty"`
	MonthlyPayment *decimal.Decimal `json:"monthlyPayment,omitempty"`
}

func (p LoanPatch) apply(l FinancialDebt) FinancialDebt {
	set(&l.Name, p.Name)
	set(&l.Type, p.Type)
	l.Amount = patchMoney(l.Amount, p.Amount, p.Currency)
	set(&l.InterestRate, p.InterestRate)
	l.MonthlyPayment = patchMoney(l.MonthlyPayment, p.MonthlyPayment, p.Currency)
	return l
}
