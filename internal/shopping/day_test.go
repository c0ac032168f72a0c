package shopping

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/cherryapp/cherry/internal/database"
	"github.com/cherryapp/cherry/internal/model"
	"github.com/cherryapp/cherry/internal/store"
)

type dayFixture struct {
	svc      *Service
	lists    *store.ListStore
	pantry   *store.PantryStore
	products *store.ProductStore
	user     *model.User
}

func setupDayTest(t *testing.T) *dayFixture {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	user, err := store.NewUserStore(db).Create("alice@example.com", "password123")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	lists := store.NewListStore(db)
	pantry := store.NewPantryStore(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &dayFixture{
		svc:      NewService(db, lists, pantry, logger),
		lists:    lists,
		pantry:   pantry,
		products: store.NewProductStore(db),
		user:     user,
	}
}

func TestDayWithoutCurrentList(t *testing.T) {
	f := setupDayTest(t)

	day, err := f.svc.Day(f.user.ID)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if day.List != nil {
		t.Errorf("expected nil list, got %v", day.List)
	}
	if len(day.Items) != 0 {
		t.Errorf("expected no items, got %d", len(day.Items))
	}
	if day.Progress != 0 || day.TotalSpent != 0 {
		t.Errorf("progress/spent = %v/%v, want 0/0", day.Progress, day.TotalSpent)
	}
}

func TestDayExcludesLowStockAlreadyOnList(t *testing.T) {
	f := setupDayTest(t)

	rice, _ := f.products.Create(f.user.ID, "Rice", "Pantry", 1)
	beans, _ := f.products.Create(f.user.ID, "Beans", "Pantry", 1)

	// Both at or below threshold
	if _, err := f.pantry.Create(f.user.ID, rice.ID, 0, "kg", nil, 1, ""); err != nil {
		t.Fatalf("create pantry rice: %v", err)
	}
	if _, err := f.pantry.Create(f.user.ID, beans.ID, 1, "un", nil, 1, ""); err != nil {
		t.Fatalf("create pantry beans: %v", err)
	}

	list, err := f.lists.Create(f.user.ID, "Weekly", "", true)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if _, err := f.lists.CreateItem(list.ID, rice.ID, 2, ""); err != nil {
		t.Fatalf("create item: %v", err)
	}

	day, err := f.svc.Day(f.user.ID)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if day.List == nil || day.List.ID != list.ID {
		t.Fatalf("day list = %v, want %d", day.List, list.ID)
	}
	if len(day.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(day.Items))
	}
	// Rice is on the list, so only beans shows as a shortage
	if len(day.LowStock) != 1 {
		t.Fatalf("got %d low-stock items, want 1", len(day.LowStock))
	}
	if day.LowStock[0].ProductID != beans.ID {
		t.Errorf("low stock product = %d, want %d", day.LowStock[0].ProductID, beans.ID)
	}
}

func TestAddPantryItemRequiresCurrentList(t *testing.T) {
	f := setupDayTest(t)

	rice, _ := f.products.Create(f.user.ID, "Rice", "Pantry", 1)
	item, _ := f.pantry.Create(f.user.ID, rice.ID, 0, "kg", nil, 1, "")

	if _, err := f.svc.AddPantryItem(f.user.ID, item.ID); !errors.Is(err, ErrNoCurrentList) {
		t.Fatalf("err = %v, want ErrNoCurrentList", err)
	}

	list, _ := f.lists.Create(f.user.ID, "Weekly", "", true)
	created, err := f.svc.AddPantryItem(f.user.ID, item.ID)
	if err != nil {
		t.Fatalf("add pantry item: %v", err)
	}
	if created.ListID != list.ID || created.ProductID != rice.ID {
		t.Errorf("item on list %d for product %d, want %d/%d", created.ListID, created.ProductID, list.ID, rice.ID)
	}
	if created.Quantity != 1 {
		t.Errorf("quantity = %v, want 1", created.Quantity)
	}
}

func TestCompleteRefusesWithoutPurchases(t *testing.T) {
	f := setupDayTest(t)

	rice, _ := f.products.Create(f.user.ID, "Rice", "Pantry", 1)
	list, _ := f.lists.Create(f.user.ID, "Weekly", "", true)
	item, _ := f.lists.CreateItem(list.ID, rice.ID, 2, "")

	if _, err := f.svc.Complete(f.user.ID); !errors.Is(err, ErrNoPurchasedItems) {
		t.Fatalf("err = %v, want ErrNoPurchasedItems", err)
	}

	// Nothing was written
	got, err := f.lists.GetItemByID(item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got == nil {
		t.Error("pending item removed by refused completion")
	}
	pantryRow, err := f.pantry.GetByProduct(f.user.ID, rice.ID)
	if err != nil {
		t.Fatalf("get pantry: %v", err)
	}
	if pantryRow != nil {
		t.Error("refused completion created a pantry row")
	}
}

func TestCompleteMigratesPurchasedItems(t *testing.T) {
	f := setupDayTest(t)

	rice, _ := f.products.Create(f.user.ID, "Rice", "Pantry", 1)
	beans, _ := f.products.Create(f.user.ID, "Beans", "Pantry", 1)

	// Rice already has a pantry row with stock 5
	if _, err := f.pantry.Create(f.user.ID, rice.ID, 5, "kg", nil, 2, ""); err != nil {
		t.Fatalf("create pantry rice: %v", err)
	}

	list, _ := f.lists.Create(f.user.ID, "Weekly", "", true)
	riceItem, _ := f.lists.CreateItem(list.ID, rice.ID, 2, "")
	beansItem, _ := f.lists.CreateItem(list.ID, beans.ID, 3, "")
	pending, _ := f.lists.CreateItem(list.ID, rice.ID, 1, "")

	if _, err := f.lists.TogglePurchased(riceItem.ID); err != nil {
		t.Fatalf("toggle rice: %v", err)
	}
	if _, err := f.lists.TogglePurchased(beansItem.ID); err != nil {
		t.Fatalf("toggle beans: %v", err)
	}

	migrated, err := f.svc.Complete(f.user.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if migrated != 2 {
		t.Errorf("migrated = %d, want 2", migrated)
	}

	// Existing pantry row restocked: 5 + 2
	riceRow, _ := f.pantry.GetByProduct(f.user.ID, rice.ID)
	if riceRow == nil || riceRow.Quantity != 7 {
		t.Errorf("rice pantry quantity = %v, want 7", riceRow)
	}
	if riceRow.Unit != "kg" || riceRow.LowStockThreshold != 2 {
		t.Errorf("restock changed unit/threshold: %q/%v", riceRow.Unit, riceRow.LowStockThreshold)
	}

	// New pantry row created with defaults
	beansRow, _ := f.pantry.GetByProduct(f.user.ID, beans.ID)
	if beansRow == nil || beansRow.Quantity != 3 {
		t.Fatalf("beans pantry row = %v, want quantity 3", beansRow)
	}
	if beansRow.Unit != "un" || beansRow.LowStockThreshold != 1 {
		t.Errorf("beans defaults = %q/%v, want un/1", beansRow.Unit, beansRow.LowStockThreshold)
	}

	// Purchased items removed, pending item untouched
	if got, _ := f.lists.GetItemByID(riceItem.ID); got != nil {
		t.Error("purchased rice item still on list")
	}
	if got, _ := f.lists.GetItemByID(beansItem.ID); got != nil {
		t.Error("purchased beans item still on list")
	}
	if got, _ := f.lists.GetItemByID(pending.ID); got == nil {
		t.Error("pending item removed by completion")
	}
}
