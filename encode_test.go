package household

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/etnz/household/date"
)

func TestEncodeRecord(t *testing.T) {
	var b bytes.Buffer
	a := Account{ID: "a1", Name: "Main", Type: Checking, Balance: M(1200.5, "USD")}
	if err := EncodeRecord(&b, a); err != nil {
		t.Fatal(err)
	}
	want := `{"kind":"account","id":"a1","name":"Main","type":"checking","currency":"USD","balance":1200.5}` + "\n"
	if got := b.String(); got != want {
		t.Errorf("EncodeRecord() = %s, want %s", got, want)
	}
}

func TestEncodeDecodeStore(t *testing.T) {
	s := newTestStore(t)
	s.AddAccount(Account{Name: "Main", Type: Savings, Balance: M(3000, "EUR")})
	s.AddBudget(Budget{Category: "Food", Allocated: M(500, "EUR"), Spent: M(375, "EUR")})
	s.AddExpense(Expense{Amount: M(42.5, "EUR"), Category: "Food", Description: "Groceries", Date: date.New(2025, 3, 14)})
	s.AddDebt(InterpersonalDebt{Name: "Ann", Amount: M(20, "EUR"), Type: Owed, Date: date.New(2025, 3, 1), Settled: true})
	s.AddLoan(FinancialDebt{Name: "Car", Type: Auto, Amount: M(9000, "EUR"), InterestRate: 3.5, MonthlyPayment: M(300, "EUR")})
	s.AddProperty(Property{Name: "Flat", Type: "apartment", CurrentValue: M(250000, "EUR"), PurchasePrice: M(200000, "EUR"), PurchaseDate: date.New(2019, 6, 1)})
	g := s.AddGroup(AssetGroup{Name: "Stocks", Color: "#336699"})
	s.AddAsset(InvestmentAsset{Name: "ACME", GroupID: g, Quantity: Q(10), CurrentPrice: M(5, "EUR"), PurchasePrice: M(4, "EUR"), Risk: HighRisk})

	var b bytes.Buffer
	if err := EncodeStore(&b, s.Snapshot()); err != nil {
		t.Fatalf("EncodeStore() failed: %v", err)
	}
	if got := strings.Count(b.String(), "\n"); got != 8 {
		t.Errorf("EncodeStore() wrote %d lines, want 8", got)
	}

	decoded, err := DecodeStore(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("DecodeStore() failed: %v", err)
	}

	var again bytes.Buffer
	if err := EncodeStore(&again, decoded.Snapshot()); err != nil {
		t.Fatal(err)
	}
	if again.String() != b.String() {
		t.Errorf("decode/encode is not stable:\n%s\nvs\n%s", b.String(), again.String())
	}

	d := decoded.Snapshot().Debts()[0]
	if !d.Settled || d.Date != date.New(2025, 3, 1) || !d.Amount.Equal(M(20, "EUR")) {
		t.Errorf("decoded debt = %+v", d)
	}
	a := decoded.Snapshot().Assets()[0]
	if a.GroupID != g || !a.CurrentValue().Equal(M(50, "EUR")) || a.Risk != HighRisk {
		t.Errorf("decoded asset = %+v", a)
	}
}

func TestDecodeRecord_LegacyAsset(t *testing.T) {
	tests := []struct {
		name         string
		line         string
		quantity     Quantity
		currentUnit  Money
		purchaseUnit Money
	}{
		{
			name:         "aggregates are divided by quantity",
			line:         `{"kind":"asset","id":"x","name":"ACME","quantity":10,"currency":"USD","value":50,"purchasePrice":40}`,
			quantity:     Q(10),
			currentUnit:  M(5, "USD"),
			purchaseUnit: M(4, "USD"),
		},
		{
			name:         "zero quantity is a single unit",
			line:         `{"kind":"asset","id":"x","name":"Gold","quantity":0,"currency":"USD","value":1200,"purchasePrice":1000}`,
			quantity:     Q(1),
			currentUnit:  M(1200, "USD"),
			purchaseUnit: M(1000, "USD"),
		},
		{
			name:         "unit priced shape is kept",
			line:         `{"kind":"asset","id":"x","name":"ACME","quantity":10,"currency":"USD","currentPricePerUnit":5,"purchasePricePerUnit":4}`,
			quantity:     Q(10),
			currentUnit:  M(5, "USD"),
			purchaseUnit: M(4, "USD"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := DecodeRecord([]byte(tt.line))
			if err != nil {
				t.Fatalf("DecodeRecord() failed: %v", err)
			}
			a := r.(InvestmentAsset)
			if !a.Quantity.Equal(tt.quantity) {
				t.Errorf("Quantity = %v, want %v", a.Quantity, tt.quantity)
			}
			if !a.CurrentPrice.Equal(tt.currentUnit) || !a.PurchasePrice.Equal(tt.purchaseUnit) {
				t.Errorf("prices = %v, %v; want %v, %v", a.CurrentPrice, a.PurchasePrice, tt.currentUnit, tt.purchaseUnit)
			}
			// re-encoding writes the unit priced shape.
			data, err := json.Marshal(a)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), `"currentPricePerUnit"`) || strings.Contains(string(data), `"value"`) {
				t.Errorf("re-encoded asset = %s", data)
			}
		})
	}
}

func TestDecodeRecord_HalfUnitPricedAsset(t *testing.T) {
	for _, line := range []string{
		`{"kind":"asset","id":"x","name":"ACME","quantity":10,"currency":"EUR","currentPricePerUnit":5}`,
		`{"kind":"asset","id":"x","name":"ACME","quantity":10,"currency":"EUR","purchasePricePerUnit":4}`,
		`{"kind":"asset","id":"x","name":"ACME","quantity":10,"currency":"EUR","currentPricePerUnit":5,"value":50,"purchasePrice":40}`,
	} {
		if r, err := DecodeRecord([]byte(line)); err == nil {
			t.Errorf("DecodeRecord(%s) = %+v, want an error", line, r)
		}
	}
}

func TestDecodeStore_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown kind", "\n{\"kind\":\"boat\",\"id\":\"x\"}\n", "line 2"},
		{"invalid json", `{"kind":`, "line 1"},
		{"duplicate ids", "{\"kind\":\"group\",\"id\":\"g\"}\n{\"kind\":\"group\",\"id\":\"g\"}\n", "duplicate"},
		{"invalid date", `{"kind":"expense","id":"e","date":"2025-13-01"}`, "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeStore(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("DecodeStore() succeeded, want an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("DecodeStore() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestSnapshot_MarshalJSON(t *testing.T) {
	s := newTestStore(t)
	s.AddGroup(AssetGroup{Name: "Stocks"})
	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var got map[string][]map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid snapshot json %s: %v", data, err)
	}
	if len(got) != len(Kinds) {
		t.Errorf("snapshot has %d collections, want %d", len(got), len(Kinds))
	}
	if len(got["groups"]) != 1 || got["groups"][0]["name"] != "Stocks" {
		t.Errorf("groups = %v", got["groups"])
	}
	if got["properties"] == nil || len(got["properties"]) != 0 {
		t.Errorf("properties = %v, want an empty list", got["properties"])
	}
}

func TestDecodeRecordOf(t *testing.T) {
	r, err := DecodeRecordOf(KindBudget, []byte(`{"id":"ignored","category":"Food","currency":"EUR","allocated":500,"spent":375}`))
	if err != nil {
		t.Fatalf("DecodeRecordOf() failed: %v", err)
	}
	b, ok := r.(Budget)
	if !ok {
		t.Fatalf("DecodeRecordOf() = %T, want Budget", r)
	}
	if b.ID != "" || b.Category != "Food" || !b.Remaining().Equal(M(125, "EUR")) {
		t.Errorf("DecodeRecordOf() = %+v", b)
	}
	if _, err := DecodeRecordOf(KindBudget, []byte(`[]`)); err == nil {
		t.Error("DecodeRecordOf([]) succeeded")
	}
}
