package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/household"
	"github.com/etnz/household/date"
	"github.com/shopspring/decimal"
)

type fieldType int

const (
	textField fieldType = iota
	numberField
	dateField
	boolField
)

// field is a record member settable from the command line.
type field struct {
	flag  string // command line flag name
	key   string // JSON member
	typ   fieldType
	usage string
}

// fields lists, per kind, the members add-<kind> and update-<kind> accept.
// The currency is common to every kind.
var fields = map[household.Kind][]field{
	household.KindAccount: {
		{"name", "name", textField, "Account name."},
		{"type", "type", textField, "Account type: checking, savings or credit."},
		{"balance", "balance", numberField, "Current balance."},
	},
	household.KindBudget: {
		{"category", "category", textField, "Budget category."},
		{"allocated", "allocated", numberField, "Allocated amount."},
		{"spent", "spent", numberField, "Amount spent so far."},
	},
	household.KindExpense: {
		{"amount", "amount", numberField, "Amount spent."},
		{"category", "category", textField, "Category, conventionally a budget category."},
		{"desc", "description", textField, "Description."},
		{"d", "date", dateField, "Date of the expense. Defaults to today when adding."},
	},
	household.KindDebt: {
		{"name", "name", textField, "Counterparty name."},
		{"amount", "amount", numberField, "Amount."},
		{"type", "type", textField, "owe (I owe them) or owed (they owe me)."},
		{"desc", "description", textField, "Description."},
		{"d", "date", dateField, "Date of the debt. Defaults to today when adding."},
		{"settled", "settled", boolField, "Whether the debt is settled."},
	},
	household.KindLoan: {
		{"name", "name", textField, "Loan name."},
		{"type", "type", textField, "Loan type: mortgage, auto, personal or credit_card."},
		{"amount", "amount", numberField, "Outstanding amount."},
		{"rate", "interestRate", numberField, "Annual interest rate, in percent."},
		{"monthly", "monthlyPayment", numberField, "Monthly payment."},
	},
	household.KindProperty: {
		{"name", "name", textField, "Property name."},
		{"type", "type", textField, "Property type, e.g. house or car."},
		{"value", "currentValue", numberField, "Current value."},
		{"price", "purchasePrice", numberField, "Purchase price."},
		{"d", "purchaseDate", dateField, "Purchase date."},
		{"desc", "description", textField, "Description."},
	},
	household.KindGroup: {
		{"name", "name", textField, "Group name."},
		{"color", "color", textField, "Display color, e.g. #3b82f6."},
		{"desc", "description", textField, "Description."},
	},
	household.KindAsset: {
		{"name", "name", textField, "Asset name."},
		{"type", "type", textField, "Asset type, e.g. stock or etf."},
		{"group", "groupId", textField, "Identifier of the asset group."},
		{"quantity", "quantity", numberField, "Number of units held."},
		{"price", "currentPricePerUnit", numberField, "Current price of one unit."},
		{"cost", "purchasePricePerUnit", numberField, "Purchase price of one unit."},
		{"risk", "riskLevel", textField, "Risk level: low, medium or high."},
		{"d", "purchaseDate", dateField, "Purchase date."},
		{"reason", "reason", textField, "Reason for the investment."},
	},
}

// currencyField is accepted by every kind.
var currencyField = field{"c", "currency", textField, "Currency of the amounts, e.g. EUR."}

// recordFlags collects the record members set on the command line.
type recordFlags struct {
	kind   household.Kind
	values map[string]any // JSON member -> value
}

func newRecordFlags(kind household.Kind) *recordFlags {
	return &recordFlags{kind: kind, values: make(map[string]any)}
}

// fieldValue is the flag.Value of a single field.
type fieldValue struct {
	f      field
	values map[string]any
}

func (v fieldValue) String() string {
	if v.values == nil {
		return ""
	}
	if x, ok := v.values[v.f.key]; ok {
		return fmt.Sprint(x)
	}
	return ""
}

func (v fieldValue) Set(s string) error {
	switch v.f.typ {
	case numberField:
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		v.values[v.f.key] = json.Number(d.String())
	case dateField:
		d, err := date.Parse(s)
		if err != nil {
			return err
		}
		v.values[v.f.key] = d
	case boolField:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", s)
		}
		v.values[v.f.key] = b
	default:
		v.values[v.f.key] = s
	}
	return nil
}

// IsBoolFlag lets boolean fields be set with a bare -flag.
func (v fieldValue) IsBoolFlag() bool { return v.f.typ == boolField }

// SetFlags declares one flag per field of the kind.
func (r *recordFlags) SetFlags(f *flag.FlagSet) {
	for _, x := range append([]field{currencyField}, fields[r.kind]...) {
		f.Var(fieldValue{f: x, values: r.values}, x.flag, x.usage)
	}
}

// has reports whether the member has been set.
func (r *recordFlags) has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// JSON returns the members set, as a JSON object.
func (r *recordFlags) JSON() ([]byte, error) {
	return json.Marshal(r.values)
}

// usage returns the flags synopsis of a kind.
func usage(kind household.Kind) string {
	var b strings.Builder
	for _, x := range append([]field{currencyField}, fields[kind]...) {
		fmt.Fprintf(&b, " [-%s <%s>]", x.flag, x.key)
	}
	return b.String()
}
