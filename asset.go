package household

import (
	"github.com/etnz/household/date"
	"github.com/shopspring/decimal"
)

// AssetGroup is a named, colored bucket clustering investment assets for
// allocation charts.
type AssetGroup struct {
	ID          string
	Name        string `validate:"required"`
	Color       string `validate:"omitempty,hexcolor"`
	Description string
}

func (g AssetGroup) Kind() Kind                   { return KindGroup }
func (g AssetGroup) Key() string                  { return g.ID }
func (g AssetGroup) Currency() string             { return "" }
func (g AssetGroup) withKey(id string) AssetGroup { g.ID = id; return g }

func (g AssetGroup) MarshalJSON() ([]byte, error) {
	w := recordObject(g)
	w.set("name", g.Name)
	w.setNonZero("color", g.Color)
	w.setNonZero("description", g.Description)
	return w.MarshalJSON()
}

// GroupPatch lists the asset group fields to update; nil fields are left untouched.
type GroupPatch struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p GroupPatch) apply(g AssetGroup) AssetGroup {
	set(&g.Name, p.Name)
	set(&g.Color, p.Color)
	set(&g.Description, p.Description)
	return g
}

// RiskLevel is the investor's own risk assessment of an asset.
type RiskLevel string

const (
	LowRisk    RiskLevel = "low"
	MediumRisk RiskLevel = "medium"
	HighRisk   RiskLevel = "high"
)

// InvestmentAsset is a position held in a security, fund or any asset
// priced per unit.
//
// Only per-unit prices and the quantity are stored, the aggregate values are
// always derived.
type InvestmentAsset struct {
	ID            string
	Name          string `validate:"required"`
	Type          string
	GroupID       string
	Quantity      Quantity  `validate:"gte=0"`
	CurrentPrice  Money     `validate:"iso4217"`
	PurchasePrice Money     `validate:"iso4217"`
	Risk          RiskLevel `validate:"omitempty,oneof=low medium high"`
	PurchaseDate  date.Date
	Reason        string
}

func (a InvestmentAsset) Kind() Kind                        { return KindAsset }
func (a InvestmentAsset) Key() string                       { return a.ID }
func (a InvestmentAsset) Currency() string                  { return a.CurrentPrice.Currency() }
func (a InvestmentAsset) withKey(id string) InvestmentAsset { a.ID = id; return a }

// CurrentValue is the current price per unit times the quantity.
func (a InvestmentAsset) CurrentValue() Money { return a.CurrentPrice.Mul(a.Quantity) }

// PurchaseValue is the purchase price per unit times the quantity, in the
// asset currency.
func (a InvestmentAsset) PurchaseValue() Money {
	return a.PurchasePrice.In(a.Currency()).Mul(a.Quantity)
}

// GainLoss is the current value minus the purchase value.
func (a InvestmentAsset) GainLoss() Money {
	g, _ := GainLoss(a.CurrentValue(), a.PurchaseValue())
	return g
}

// GainLossPercentage is the gain relative to the purchase value.
func (a InvestmentAsset) GainLossPercentage() Percent {
	_, pct := GainLoss(a.CurrentValue(), a.PurchaseValue())
	return pct
}

func (a InvestmentAsset) MarshalJSON() ([]byte, error) {
	w := recordObject(a)
	w.set("name", a.Name)
	w.setNonZero("type", a.Type)
	w.setNonZero("groupId", a.GroupID)
	w.set("quantity", a.Quantity)
	w.set("currency", a.Currency())
	w.set("currentPricePerUnit", a.CurrentPrice.value)
	w.set("purchasePricePerUnit", a.PurchasePrice.value)
	w.setNonZero("riskLevel", a.Risk)
	w.setNonZero("purchaseDate", a.PurchaseDate.String())
	w.setNonZero("reason", a.Reason)
	return w.MarshalJSON()
}

// AssetGroupID returns the group of an asset, for FilterBy.
func AssetGroupID(a InvestmentAsset) string { return a.GroupID }

// AssetValue returns the current value of an asset, for SortByAmount.
func AssetValue(a InvestmentAsset) Money { return a.CurrentValue() }

// AssetPatch lists the investment asset fields to update; nil fields are left untouched.
type AssetPatch struct {
	Name          *string          `json:"name,omitempty"`
	Type          *string          `json:"type,omitempty"`
	GroupID       *string          `json:"groupId,omitempty"`
	Quantity      *Quantity        `json:"quantity,omitempty"`
	Currency      *string          `json:"currency,omitempty"`
	CurrentPrice  *decimal.Decimal `json:"currentPricePerUnit,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchasePricePerUnit,omitempty"`
	Risk          *RiskLevel       `json:"riskLevel,omitempty"`
	PurchaseDate  *date.Date       `json:"purchaseDate,omitempty"`
	Reason        *string          `json:"reason,omitempty"`
}

func (p AssetPatch) apply(a InvestmentAsset) InvestmentAsset {
	set(&a.Name, p.Name)
	set(&a.Type, p.Type)
	set(&a.GroupID, p.GroupID)
	set(&a.Quantity, p.Quantity)
	a.CurrentPrice = patchMoney(a.CurrentPrice, p.CurrentPrice, p.Currency)
	a.PurchasePrice = patchMoney(a.PurchasePrice, p.PurchasePrice, p.Currency)
	set(&a.Risk, p.Risk)
	set(&a.PurchaseDate, p.PurchaseDate)
	set(&a.Reason, p.Reason)
	return a
}
