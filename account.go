package household

import "github.com/shopspring/decimal"

// AccountType distinguishes checking, savings and credit accounts.
type AccountType string

const (
	Checking AccountType = "checking"
	Savings  AccountType = "savings" // the emergency fund source
	Credit   AccountType = "credit"
)

// Account is a bank account.
type Account struct {
	ID      string
	Name    string      `validate:"required"`
	Type    AccountType `validate:"oneof=checking savings credit"`
	Balance Money       `validate:"iso4217"`
}

func (a Account) Kind() Kind                { return KindAccount }
func (a Account) Key() string               { return a.ID }
func (a Account) Currency() string          { return a.Balance.Currency() }
func (a Account) withKey(id string) Account { a.ID = id; return a }

// IsEmergencyFund reports whether the account feeds the emergency fund.
func (a Account) IsEmergencyFund() bool { return a.Type == Savings }

func (a Account) MarshalJSON() ([]byte, error) {
	w := recordObject(a)
	w.set("name", a.Name)
	w.set("type", a.Type)
	w.set("currency", a.Currency())
	w.set("balance", a.Balance.value)
	return w.MarshalJSON()
}

// AccountPatch lists the account fields to update; nil fields are left untouched.
type AccountPatch struct {
	Name     *string          `json:"name,omitempty"`
	Type     *AccountType     `json:"type,omitempty"`
	Balance  *decimal.Decimal `json:"balance,omitempty"`
	Currency *string          `json:"currency,omitempty"`
}

func (p AccountPatch) apply(a Account) Account {
	set(&a.Name, p.Name)
	set(&a.Type, p.Type)
	a.Balance = patchMoney(a.Balance, p.Balance, p.Currency)
	return a
}
