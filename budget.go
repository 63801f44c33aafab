package household

import "github.com/shopspring/decimal"

// Budget is a spending allowance for a category.
type Budget struct {
	ID        string
	Category  string `validate:"required"`
	Allocated Money  `validate:"iso4217"`
	Spent     Money  `validate:"iso4217"`
}

func (b Budget) Kind() Kind               { return KindBudget }
func (b Budget) Key() string              { return b.ID }
func (b Budget) Currency() string         { return b.Allocated.Currency() }
func (b Budget) withKey(id string) Budget { b.ID = id; return b }

// Remaining is the allocated amount not spent yet; negative when over budget.
// Spent is read in the budget currency.
func (b Budget) Remaining() Money { return b.Allocated.Sub(b.Spent.In(b.Currency())) }

// Percentage is the share of the allocation already spent, 0 when nothing
// was allocated.
func (b Budget) Percentage() Percent { return ratio(b.Spent.value, b.Allocated.value) }

// Exceeded reports whether more than the allocation was spent.
func (b Budget) Exceeded() bool { return b.Spent.GreaterThan(b.Allocated) }

func (b Budget) MarshalJSON() ([]byte, error) {
	w := recordObject(b)
	w.set("category", b.Category)
	w.set("currency", b.Currency())
	w.set("allocated", b.Allocated.value)
	w.set("spent", b.Spent.value)
	return w.MarshalJSON()
}

// BudgetPatch lists the budget fields to update; nil fields are left untouched.
type BudgetPatch struct {
	Category  *string          `json:"category,omitempty"`
	Allocated *decimal.Decimal `json:"allocated,omitempty"`
	Spent     *decimal.Decimal `json:"spent,omitempty"`
	Currency  *string          `json:"currency,omitempty"`
}

func (p BudgetPatch) apply(b Budget) Budget {
	set(&b.Category, p.Category)
	b.Allocated = patchMoney(b.Allocated, p.Allocated, p.Currency)
	b.Spent = patchMoney(b.Spent, p.Spent, p.Currency)
	return b
}
