package household

import (
	"github.com/etnz/household/date"
	"github.com/shopspring/decimal"
)

// Property is a real-world asset such as a house or a car.
type Property struct {
	ID            string
	Name          string `validate:"required"`
	Type          string
	CurrentValue  Money `validate:"iso4217"`
	PurchasePrice Money `validate:"iso4217"`
	PurchaseDate  date.Date
	Description   string
}

func (p Property) Kind() Kind                 { return KindProperty }
func (p Property) Key() string                { return p.ID }
func (p Property) Currency() string           { return p.CurrentValue.Currency() }
func (p Property) withKey(id string) Property { p.ID = id; return p }

// GainLoss is the current value minus the purchase price.
func (p Property) GainLoss() Money {
	g, _ := GainLoss(p.CurrentValue, p.PurchasePrice.In(p.Currency()))
	return g
}

// GainLossPercentage is the gain relative to the purchase price, 0 when
// the purchase price is not positive.
func (p Property) GainLossPercentage() Percent {
	_, pct := GainLoss(p.CurrentValue, p.PurchasePrice.In(p.Currency()))
	return pct
}

func (p Property) MarshalJSON() ([]byte, error) {
	w := recordObject(p)
	w.set("name", p.Name)
	w.setNonZero("type", p.Type)
	w.set("currency", p.Currency())
	w.set("currentValue", p.CurrentValue.value)
	w.set("purchasePrice", p.PurchasePrice.value)
	w.setNonZero("purchaseDate", p.PurchaseDate.String())
	w.setNonZero("description", p.Description)
	return w.MarshalJSON()
}

// PropertyPatch lists the property fields to update; nil fields are left untouched.
type PropertyPatch struct {
	Name          *string          `json:"name,omitempty"`
	Type          *string          `json:"type,omitempty"`
	Currency      *string          `json:"currency,omitempty"`
	CurrentValue  *decimal.Decimal `json:"currentValue,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice,omitempty"`
	PurchaseDate  *date.Date       `json:"purchaseDate,omitempty"`
	Description   *string          `json:"description,omitempty"`
}

func (pp PropertyPatch) apply(p Property) Property {
	set(&p.Name, pp.Name)
	set(&p.Type, pp.Type)
	p.CurrentValue = patchMoney(p.CurrentValue, pp.CurrentValue, pp.Currency)
	p.PurchasePrice = patchMoney(p.PurchasePrice, pp.PurchasePrice, pp.Currency)
	set(&p.PurchaseDate, pp.PurchaseDate)
	set(&p.Description, pp.Description)
	return p
}
