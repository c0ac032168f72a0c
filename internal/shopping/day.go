package shopping

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cherryapp/cherry/internal/model"
	"github.com/cherryapp/cherry/internal/pantry"
	"github.com/cherryapp/cherry/internal/store"
)

var (
	// ErrNoCurrentList is returned when an operation needs a current list
	// and the user has none flagged.
	ErrNoCurrentList = errors.New("no current list")

	// ErrNoPurchasedItems refuses completion of a shopping day on which
	// nothing has been marked purchased.
	ErrNoPurchasedItems = errors.New("no purchased items")
)

// Defaults applied when completion creates a pantry row for a product the
// pantry has never seen.
const (
	defaultUnit      = "un"
	defaultThreshold = 1
)

// Service implements the shopping-day workflow: assembling the day view from
// the current list and pantry shortages, and migrating purchased quantities
// into pantry stock on completion.
type Service struct {
	db          *sql.DB
	listStore   *store.ListStore
	pantryStore *store.PantryStore
	logger      *slog.Logger
}

func NewService(db *sql.DB, ls *store.ListStore, ps *store.PantryStore, logger *slog.Logger) *Service {
	return &Service{db: db, listStore: ls, pantryStore: ps, logger: logger}
}

// Day is everything the shopping-day screen shows: the current list and its
// items, pantry items at or below their low-stock threshold that are not
// already on the list, and the derived progress numbers.
type Day struct {
	List       *model.List             `json:"list"`
	Items      []model.ListItemDetail  `json:"items"`
	LowStock   []pantry.ItemWithStatus `json:"low_stock"`
	Progress   float64                 `json:"progress"`
	TotalSpent float64                 `json:"total_spent"`
}

// Day assembles the shopping-day view for a user. A missing current list is
// a valid state: the returned Day has a nil List and no items.
func (s *Service) Day(userID int64) (*Day, error) {
	day := &Day{}

	list, err := s.listStore.GetCurrent(userID)
	if err != nil {
		return nil, err
	}
	day.List = list

	onList := make(map[int64]bool)
	if list != nil {
		items, err := s.listStore.ListItemDetails(list.ID)
		if err != nil {
			return nil, err
		}
		day.Items = items
		for _, item := range items {
			onList[item.ProductID] = true
		}
	}

	pantryItems, err := s.pantryStore.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for _, item := range pantryItems {
		if item.Quantity > item.LowStockThreshold {
			continue
		}
		if onList[item.ProductID] {
			continue
		}
		day.LowStock = append(day.LowStock, pantry.ItemWithStatus{
			PantryItemDetail: item,
			Status:           pantry.StockStatus(item.PantryItem, now),
		})
	}

	day.Progress = Progress(day.Items)
	day.TotalSpent = TotalSpent(day.Items)
	return day, nil
}

// AddPantryItem puts a low-stock pantry product on the current list with
// quantity 1. Fails with ErrNoCurrentList when no list is flagged current.
func (s *Service) AddPantryItem(userID, pantryItemID int64) (*model.ListItem, error) {
	list, err := s.listStore.GetCurrent(userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrNoCurrentList
	}

	item, err := s.pantryStore.GetByID(pantryItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.UserID != userID {
		return nil, fmt.Errorf("pantry item %d not found", pantryItemID)
	}

	return s.listStore.CreateItem(list.ID, item.ProductID, 1, "")
}

// Complete finalizes the shopping day: each purchased item's quantity is
// added to the matching pantry row (created with defaults when absent), and
// the purchased items are removed from the list. The whole migration runs in
// one transaction, so a failure partway leaves list and pantry untouched.
// Returns the number of items migrated.
func (s *Service) Complete(userID int64) (int, error) {
	list, err := s.listStore.GetCurrent(userID)
	if err != nil {
		return 0, err
	}
	if list == nil {
		return 0, ErrNoCurrentList
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(
		`SELECT product_id, quantity FROM list_items WHERE list_id = ? AND is_purchased = 1`,
		list.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("load purchased items: %w", err)
	}

	type purchased struct {
		productID int64
		quantity  float64
	}
	var items []purchased
	for rows.Next() {
		var p purchased
		if err := rows.Scan(&p.productID, &p.quantity); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan purchased item: %w", err)
		}
		items = append(items, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("purchased items: %w", err)
	}

	if len(items) == 0 {
		return 0, ErrNoPurchasedItems
	}

	for _, item := range items {
		var pantryID int64
		var qty float64
		err := tx.QueryRow(
			`SELECT id, quantity FROM pantry_items WHERE user_id = ? AND product_id = ?`,
			userID, item.productID,
		).Scan(&pantryID, &qty)

		switch {
		case err == sql.ErrNoRows:
			_, err = tx.Exec(
				`INSERT INTO pantry_items (user_id, product_id, quantity, unit, low_stock_threshold)
				 VALUES (?, ?, ?, ?, ?)`,
				userID, item.productID, item.quantity, defaultUnit, defaultThreshold,
			)
			if err != nil {
				return 0, fmt.Errorf("insert pantry item: %w", err)
			}
		case err != nil:
			return 0, fmt.Errorf("find pantry item: %w", err)
		default:
			_, err = tx.Exec(
				`UPDATE pantry_items SET quantity = ?, updated_at = datetime('now') WHERE id = ?`,
				qty+item.quantity, pantryID,
			)
			if err != nil {
				return 0, fmt.Errorf("restock pantry item: %w", err)
			}
		}
	}

	if _, err := tx.Exec(
		`DELETE FROM list_items WHERE list_id = ? AND is_purchased = 1`,
		list.ID,
	); err != nil {
		return 0, fmt.Errorf("clear purchased items: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	s.logger.Info("shopping day completed", "user_id", userID, "list_id", list.ID, "migrated", len(items))
	return len(items), nil
}
