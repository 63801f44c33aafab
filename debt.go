package household

import (
	"github.com/etnz/household/date"
	"github.com/shopspring/decimal"
)

// DebtType tells who owes whom in an interpersonal debt.
type DebtType string

const (
	Owe  DebtType = "owe"  // I owe the counterparty
	Owed DebtType = "owed" // the counterparty owes me
)

// InterpersonalDebt is money lent to or borrowed from a person.
//
// Settled debts are kept for history but excluded from active totals.
type InterpersonalDebt struct {
	ID string
	// Name is the counterparty.
	Name        string   `validate:"required"`
	Amount      Money    `validate:"iso4217"`
	Type        DebtType `validate:"oneof=owe owed"`
	Description string
	Date        date.Date `validate:"required"`
	Settled     bool
}

func (d InterpersonalDebt) Kind() Kind                          { return KindDebt }
func (d InterpersonalDebt) Key() string                         { return d.ID }
func (d InterpersonalDebt) Currency() string                    { return d.Amount.Currency() }
func (d InterpersonalDebt) withKey(id string) InterpersonalDebt { d.ID = id; return d }

// Signed returns the amount from my point of view: positive when owed to me.
func (d InterpersonalDebt) Signed() Money {
	if d.Type == Owe {
		return d.Amount.Neg()
	}
	return d.Amount
}

func (d InterpersonalDebt) MarshalJSON() ([]byte, error) {
	w := recordObject(d)
	w.set("date", d.Date)
	w.set("name", d.Name)
	w.set("type", d.Type)
	w.setNonZero("description", d.Description)
	w.set("currency", d.Currency())
	w.set("amount", d.Amount.value)
	w.setNonZero("settled", d.Settled)
	return w.MarshalJSON()
}

// DebtDate returns the date of a debt, for SortByDate.
func DebtDate(d InterpersonalDebt) date.Date { return d.Date }

// DebtAmount returns the amount of a debt, for SortByAmount.
func DebtAmount(d InterpersonalDebt) Money { return d.Amount }

// DebtPatch lists the interpersonal debt fields to update; nil fields are left untouched.
type DebtPatch struct {
	Name        *string          `json:"name,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
	Type        *DebtType        `json:"type,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *date.Date       `json:"date,omitempty"`
	Settled     *bool            `json:"settled,omitempty"`
}

func (p DebtPatch) apply(d InterpersonalDebt) InterpersonalDebt {
	set(&d.Name, p.Name)
	d.Amount = patchMoney(d.Amount, p.Amount, p.Currency)
	set(&d.Type, p.Type)
	set(&d.Description, p.Description)
	set(&d.Date, p.Date)
	set(&d.Settled, p.Settled)
	return d
}
