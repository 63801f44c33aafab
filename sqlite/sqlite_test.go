package sqlite

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/etnz/household"
	"github.com/etnz/household/date"
)

func openTempDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "household.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTempDB(t)

	s, err := household.NewStore()
	if err != nil {
		t.Fatal(err)
	}
	s.AddAccount(household.Account{Name: "Main", Type: household.Checking, Balance: household.M(1200, "EUR")})
	s.AddAccount(household.Account{Name: "Rainy day", Type: household.Savings, Balance: household.M(800, "EUR")})
	s.AddExpense(household.Expense{Amount: household.M(9.99, "EUR"), Category: "Fun", Date: date.New(2025, 5, 4)})
	g := s.AddGroup(household.AssetGroup{Name: "ETF"})
	s.AddAsset(household.InvestmentAsset{Name: "World", GroupID: g, Quantity: household.Q(3), CurrentPrice: household.M(100, "EUR"), PurchasePrice: household.M(90, "EUR")})

	if err := db.Save(ctx, s.Snapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if n, err := db.Count(ctx, household.KindAccount); err != nil || n != 2 {
		t.Fatalf("count accounts = %d, %v; want 2", n, err)
	}

	loaded, err := db.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var want, got bytes.Buffer
	if err := household.EncodeStore(&want, s.Snapshot()); err != nil {
		t.Fatal(err)
	}
	if err := household.EncodeStore(&got, loaded.Snapshot()); err != nil {
		t.Fatal(err)
	}
	if got.String() != want.String() {
		t.Fatalf("loaded records differ:\n%s\nwant\n%s", got.String(), want.String())
	}
}

func TestSaveReplacesContent(t *testing.T) {
	ctx := context.Background()
	db := openTempDB(t)

	s, _ := household.NewStore()
	id := s.AddBudget(household.Budget{Category: "Food", Allocated: household.M(100, "USD"), Spent: household.M(0, "USD")})
	if err := db.Save(ctx, s.Snapshot()); err != nil {
		t.Fatal(err)
	}
	s.DeleteBudget(id)
	if err := db.Save(ctx, s.Snapshot()); err != nil {
		t.Fatal(err)
	}
	if n, err := db.Count(ctx, household.KindBudget); err != nil || n != 0 {
		t.Fatalf("count budgets = %d, %v; want 0", n, err)
	}
}
