package store

import (
	"testing"
	"time"

	"github.com/cherryapp/cherry/internal/database"
	"github.com/cherryapp/cherry/internal/model"
)

func setupPurchaseTestDB(t *testing.T) (*PurchaseStore, *model.User) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	user, err := NewUserStore(db).Create("alice@example.com", "password123")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewPurchaseStore(db), user
}

func TestPurchaseCreateAndList(t *testing.T) {
	ps, user := setupPurchaseTestDB(t)

	older := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	if _, err := ps.Create(user.ID, "Market run", 120.50, 14, older, ""); err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	latest, err := ps.Create(user.ID, "Butcher", 45.00, 3, newer, "beef")
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}

	purchases, err := ps.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list purchases: %v", err)
	}
	if len(purchases) != 2 {
		t.Fatalf("got %d purchases, want 2", len(purchases))
	}
	// Most recent first
	if purchases[0].ID != latest.ID {
		t.Errorf("first purchase = %d, want %d", purchases[0].ID, latest.ID)
	}
	if purchases[0].TotalAmount != 45.00 || purchases[0].ItemCount != 3 {
		t.Errorf("purchase fields not stored: %+v", purchases[0])
	}
}

func TestPurchaseDelete(t *testing.T) {
	ps, user := setupPurchaseTestDB(t)

	p, _ := ps.Create(user.ID, "Market run", 50, 5, time.Now().UTC(), "")
	if err := ps.Delete(p.ID); err != nil {
		t.Fatalf("delete purchase: %v", err)
	}

	got, err := ps.GetByID(p.ID)
	if err != nil {
		t.Fatalf("get deleted: %v", err)
	}
	if got != nil {
		t.Error("purchase survived delete")
	}
}

func TestPurchaseSumForRange(t *testing.T) {
	ps, user := setupPurchaseTestDB(t)

	inMonth := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)
	nextMonth := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	ps.Create(user.ID, "A", 100, 1, inMonth, "")
	ps.Create(user.ID, "B", 50, 1, lastDay, "")
	ps.Create(user.ID, "C", 999, 1, nextMonth, "")

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	sum, err := ps.SumForRange(user.ID, from, to)
	if err != nil {
		t.Fatalf("sum for range: %v", err)
	}
	if sum != 150 {
		t.Errorf("sum = %v, want 150", sum)
	}
}

func TestFinancialSettings(t *testing.T) {
	ps, user := setupPurchaseTestDB(t)

	// No row yet: zero-value default, not an error
	settings, err := ps.GetSettings(user.ID)
	if err != nil {
		t.Fatalf("get default settings: %v", err)
	}
	if settings.MonthlyBudget != 0 {
		t.Errorf("default budget = %v, want 0", settings.MonthlyBudget)
	}

	if _, err := ps.SetBudget(user.ID, 800); err != nil {
		t.Fatalf("set budget: %v", err)
	}
	// Upsert, not insert-twice
	updated, err := ps.SetBudget(user.ID, 950)
	if err != nil {
		t.Fatalf("update budget: %v", err)
	}
	if updated.MonthlyBudget != 950 {
		t.Errorf("budget = %v, want 950", updated.MonthlyBudget)
	}

	settings, err = ps.GetSettings(user.ID)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings.MonthlyBudget != 950 {
		t.Errorf("stored budget = %v, want 950", settings.MonthlyBudget)
	}
}
