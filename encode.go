package household

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/etnz/household/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// baseCmd holds the fields every encoded record shares.
type baseCmd struct {
	Kind     Kind   `json:"kind"`
	ID       string `json:"id"`
	Currency string `json:"currency"`
}

func (b baseCmd) money(v decimal.Decimal) Money { return M(v, b.Currency) }

// unitPricedAsset is the current shape of an encoded investment asset.
type unitPricedAsset struct {
	CurrentPricePerUnit  *decimal.Decimal `json:"currentPricePerUnit"`
	PurchasePricePerUnit *decimal.Decimal `json:"purchasePricePerUnit"`
}

// legacyAsset is the shape written before per-unit prices existed: it
// stores aggregate values for the whole position.
type legacyAsset struct {
	Value         decimal.Decimal `json:"value"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
}

// normalize converts legacy aggregates into per-unit prices. A zero quantity
// becomes a single unit so that the aggregate value is preserved.
func (l legacyAsset) normalize(q Quantity) (current, purchase decimal.Decimal, quantity Quantity) {
	if q.IsZero() {
		q = Q(1)
	}
	return l.Value.Div(q.value), l.PurchasePrice.Div(q.value), q
}

// DecodeRecord decodes a single JSON record, as written by EncodeRecord.
func DecodeRecord(line []byte) (Record, error) {
	var base baseCmd
	if err := json.Unmarshal(line, &base); err != nil {
		return nil, fmt.Errorf("could not identify record in %q: %w", string(line), err)
	}
	return decodeKind(base, line)
}

// DecodeRecordOf decodes a JSON object holding the fields of a record of
// that kind. Any "kind" or "id" member is ignored: the record has no
// identifier yet.
func DecodeRecordOf(kind Kind, data []byte) (Record, error) {
	var base baseCmd
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", kind, err)
	}
	base.Kind, base.ID = kind, ""
	return decodeKind(base, data)
}

// decodeKind decodes the fields specific to the kind of base.
func decodeKind(base baseCmd, line []byte) (Record, error) {
	switch base.Kind {
	case KindAccount:
		var temp struct {
			Name    string          `json:"name"`
			Type    AccountType     `json:"type"`
			Balance decimal.Decimal `json:"balance"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		return Account{ID: base.ID, Name: temp.Name, Type: temp.Type, Balance: base.money(temp.Balance)}, nil

	case KindBudget:
		var temp struct {
			Category  string          `json:"category"`
			Allocated decimal.Decimal `json:"allocated"`
			Spent     decimal.Decimal `json:"spent"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		return Budget{
			ID:        base.ID,
			Category:  temp.Category,
			Allocated: base.money(temp.Allocated),
			Spent:     base.money(temp.Spent),
		}, nil

	case KindExpense:
		var temp struct {
			Amount      decimal.Decimal `json:"amount"`
			Category    string          `json:"category"`
			Description string          `json:"description"`
			Date        date.Date       `json:"date"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		return Expense{
			ID:          base.ID,
			Amount:      base.money(temp.Amount),
			Category:    temp.Category,
			Description: temp.Description,
			Date:        temp.Date,
		}, nil

	case KindDebt:
		var temp struct {
			Name        string          `json:"name"`
			Amount      decimal.Decimal `json:"amount"`
			Type        DebtType        `json:"type"`
			Description string          `json:"description"`
			Date        date.Date       `json:"date"`
			Settled     bool            `json:"settled"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		return InterpersonalDebt{
			ID:          base.ID,
			Name:        temp.Name,
			Amount:      base.money(temp.Amount),
			Type:        temp.Type,
			Description: temp.Description,
			Date:        temp.Date,
			Settled:     temp.Settled,
		}, nil

	case KindLoan:
		var temp struct {
			Name           string          `json:"name"`
			Type           LoanType        `json:"type"`
			Amount         decimal.Decimal `json:"amount"`
			InterestRate   float64         `json:"interestRate"`
			MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		return FinancialDebt{
			ID:             base.ID,
			Name:           temp.Name,
			Type:           temp.Type,
			Amount:         base.money(temp.Amount),
			InterestRate:   Percent(temp.InterestRate),
			MonthlyPayment: base.money(temp.MonthlyPayment),
		}, nil

	case KindProperty:
		var temp struct {
			Name          string          `json:"name"`
			Type          string          `json:"type"`
			CurrentValue  decimal.Decimal `json:"currentValue"`
			PurchasePrice decimal.Decimal `json:"purchasePrice"`
			PurchaseDate  date.Date       `json:"purchaseDate"`
			Description   string          `json:"description"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		return Property{
			ID:            base.ID,
			Name:          temp.Name,
			Type:          temp.Type,
			CurrentValue:  base.money(temp.CurrentValue),
			PurchasePrice: base.money(temp.PurchasePrice),
			PurchaseDate:  temp.PurchaseDate,
			Description:   temp.Description,
		}, nil

	case KindGroup:
		var temp struct {
			Name        string `json:"name"`
			Color       string `json:"color"`
			Description string `json:"description"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		return AssetGroup{ID: base.ID, Name: temp.Name, Color: temp.Color, Description: temp.Description}, nil

	case KindAsset:
		return decodeAsset(base, line)
	}
	return nil, fmt.Errorf("unknown record kind %q", base.Kind)
}

// decodeAsset reads both asset shapes and returns the canonical, per-unit
// priced, record.
func decodeAsset(base baseCmd, line []byte) (Record, error) {
	var temp struct {
		unitPricedAsset
		legacyAsset
		Name         string    `json:"name"`
		Type         string    `json:"type"`
		GroupID      string    `json:"groupId"`
		Quantity     Quantity  `json:"quantity"`
		Risk         RiskLevel `json:"riskLevel"`
		PurchaseDate date.Date `json:"purchaseDate"`
		Reason       string    `json:"reason"`
	}
	if err := json.Unmarshal(line, &temp); err != nil {
		return nil, err
	}
	a := InvestmentAsset{
		ID:           base.ID,
		Name:         temp.Name,
		Type:         temp.Type,
		GroupID:      temp.GroupID,
		Quantity:     temp.Quantity,
		Risk:         temp.Risk,
		PurchaseDate: temp.PurchaseDate,
		Reason:       temp.Reason,
	}
	switch current, purchase := temp.CurrentPricePerUnit, temp.PurchasePricePerUnit; {
	case current != nil && purchase != nil:
		a.CurrentPrice = base.money(*current)
		a.PurchasePrice = base.money(*purchase)
		return a, nil
	case current != nil:
		return nil, errors.New("asset has a currentPricePerUnit but no purchasePricePerUnit")
	case purchase != nil:
		return nil, errors.New("asset has a purchasePricePerUnit but no currentPricePerUnit")
	}
	current, purchase, q := temp.legacyAsset.normalize(temp.Quantity)
	a.CurrentPrice, a.PurchasePrice, a.Quantity = base.money(current), base.money(purchase), q
	return a, nil
}

// EncodeRecord writes a single record as one JSON line.
func EncodeRecord(w io.Writer, r Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal %s %q: %w", r.Kind(), r.Key(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write %s %q: %w", r.Kind(), r.Key(), err)
	}
	return nil
}

// DecodeStore reads a JSONL stream of records and returns a store holding
// them in file order. Legacy asset records are converted to the current
// shape.
func DecodeStore(r io.Reader) (*Store, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}
		rec, err := DecodeRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return NewStore(records...)
}

// EncodeStore writes every record of the snapshot in JSONL format,
// collection by collection, each in insertion order.
func EncodeStore(w io.Writer, s *Snapshot) error {
	for _, r := range s.Records() {
		if err := EncodeRecord(w, r); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON encodes the snapshot as one object with one array per
// collection, e.g. {"accounts":[...],"budgets":[...]}.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var w objectWriter
	for _, k := range Kinds {
		records := s.RecordsOf(k)
		if records == nil {
			records = []Record{}
		}
		w.set(k.Plural(), records)
	}
	return w.MarshalJSON()
}
