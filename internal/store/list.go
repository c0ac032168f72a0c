package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cherryapp/cherry/internal/model"
)

type ListStore struct {
	db *sql.DB
}

func NewListStore(db *sql.DB) *ListStore {
	return &ListStore{db: db}
}

func scanList(scanner interface{ Scan(...any) error }) (*model.List, error) {
	var l model.List
	var isCurrent int
	var completedAt sql.NullTime

	err := scanner.Scan(
		&l.ID, &l.UserID, &l.Name, &l.Notes, &l.Status,
		&isCurrent, &completedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.IsCurrent = isCurrent != 0
	if completedAt.Valid {
		l.CompletedAt = &completedAt.Time
	}
	return &l, nil
}

const listCols = `id, user_id, name, notes, status, is_current, completed_at, created_at, updated_at`

// Create inserts a list. When isCurrent is set, the insert and the demotion
// of every other list run in one transaction so the one-current-list
// invariant holds at every commit point.
func (s *ListStore) Create(userID int64, name, notes string, isCurrent bool) (*model.List, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if isCurrent {
		if _, err := tx.Exec(`UPDATE lists SET is_current = 0 WHERE user_id = ?`, userID); err != nil {
			return nil, fmt.Errorf("demote current lists: %w", err)
		}
	}

	result, err := tx.Exec(
		`INSERT INTO lists (user_id, name, notes, status, is_current) VALUES (?, ?, ?, ?, ?)`,
		userID, name, notes, model.ListStatusActive, boolToInt(isCurrent),
	)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

func (s *ListStore) GetByID(id int64) (*model.List, error) {
	row := s.db.QueryRow(`SELECT `+listCols+` FROM lists WHERE id = ?`, id)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return l, nil
}

// GetCurrent returns the user's current list, or nil when none is flagged.
func (s *ListStore) GetCurrent(userID int64) (*model.List, error) {
	row := s.db.QueryRow(`SELECT `+listCols+` FROM lists WHERE user_id = ? AND is_current = 1`, userID)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get current list: %w", err)
	}
	return l, nil
}

// ListSummaries returns the user's lists with item counts, newest first.
func (s *ListStore) ListSummaries(userID int64) ([]model.ListSummary, error) {
	rows, err := s.db.Query(
		`SELECT l.id, l.user_id, l.name, l.notes, l.status, l.is_current, l.completed_at, l.created_at, l.updated_at,
		        COUNT(li.id), COALESCE(SUM(li.is_purchased), 0)
		 FROM lists l
		 LEFT JOIN list_items li ON li.list_id = l.id
		 WHERE l.user_id = ?
		 GROUP BY l.id
		 ORDER BY l.updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()

	var summaries []model.ListSummary
	for rows.Next() {
		var sum model.ListSummary
		var isCurrent int
		var completedAt sql.NullTime
		err := rows.Scan(
			&sum.ID, &sum.UserID, &sum.Name, &sum.Notes, &sum.Status,
			&isCurrent, &completedAt, &sum.CreatedAt, &sum.UpdatedAt,
			&sum.ItemCount, &sum.PurchasedCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan list summary: %w", err)
		}
		sum.IsCurrent = isCurrent != 0
		if completedAt.Valid {
			sum.CompletedAt = &completedAt.Time
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// SetCurrent flags the given list as current and every other list of the
// user as not current in a single statement, so there is no window with
// zero or two current lists.
func (s *ListStore) SetCurrent(userID, listID int64) error {
	_, err := s.db.Exec(
		`UPDATE lists SET is_current = (CASE WHEN id = ? THEN 1 ELSE 0 END), updated_at = datetime('now')
		 WHERE user_id = ?`,
		listID, userID,
	)
	if err != nil {
		return fmt.Errorf("set current list: %w", err)
	}
	return nil
}

// Archive marks a list archived and clears its current flag.
func (s *ListStore) Archive(id int64) error {
	_, err := s.db.Exec(
		`UPDATE lists SET status = ?, is_current = 0, updated_at = datetime('now') WHERE id = ?`,
		model.ListStatusArchived, id,
	)
	if err != nil {
		return fmt.Errorf("archive list: %w", err)
	}
	return nil
}

func (s *ListStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

// --- Item methods ---

func scanListItem(scanner interface{ Scan(...any) error }) (*model.ListItem, error) {
	var item model.ListItem
	var purchased int
	var price sql.NullFloat64
	var purchasedAt sql.NullTime

	err := scanner.Scan(
		&item.ID, &item.ListID, &item.ProductID, &item.Quantity,
		&purchased, &price, &item.Notes, &purchasedAt, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.IsPurchased = purchased != 0
	if price.Valid {
		item.Price = &price.Float64
	}
	if purchasedAt.Valid {
		item.PurchasedAt = &purchasedAt.Time
	}
	return &item, nil
}

const listItemCols = `id, list_id, product_id, quantity, is_purchased, price, notes, purchased_at, created_at`

func (s *ListStore) CreateItem(listID, productID int64, quantity float64, notes string) (*model.ListItem, error) {
	result, err := s.db.Exec(
		`INSERT INTO list_items (list_id, product_id, quantity, notes) VALUES (?, ?, ?, ?)`,
		listID, productID, quantity, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert list item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetItemByID(id)
}

func (s *ListStore) GetItemByID(id int64) (*model.ListItem, error) {
	row := s.db.QueryRow(`SELECT `+listItemCols+` FROM list_items WHERE id = ?`, id)
	item, err := scanListItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list item: %w", err)
	}
	return item, nil
}

// ListItemDetails returns a list's items joined with product and list names,
// unpurchased first.
func (s *ListStore) ListItemDetails(listID int64) ([]model.ListItemDetail, error) {
	rows, err := s.db.Query(
		`SELECT li.id, li.list_id, li.product_id, li.quantity, li.is_purchased, li.price, li.notes, li.purchased_at, li.created_at,
		        p.name, p.category, l.name
		 FROM list_items li
		 JOIN products p ON p.id = li.product_id
		 JOIN lists l ON l.id = li.list_id
		 WHERE li.list_id = ?
		 ORDER BY li.is_purchased ASC, li.created_at ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list item details: %w", err)
	}
	defer rows.Close()

	var items []model.ListItemDetail
	for rows.Next() {
		var d model.ListItemDetail
		var purchased int
		var price sql.NullFloat64
		var purchasedAt sql.NullTime
		err := rows.Scan(
			&d.ID, &d.ListID, &d.ProductID, &d.Quantity, &purchased,
			&price, &d.Notes, &purchasedAt, &d.CreatedAt,
			&d.ProductName, &d.ProductCategory, &d.ListName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan list item detail: %w", err)
		}
		d.IsPurchased = purchased != 0
		if price.Valid {
			d.Price = &price.Float64
		}
		if purchasedAt.Valid {
			d.PurchasedAt = &purchasedAt.Time
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (s *ListStore) UpdateItem(id int64, quantity float64, notes string) (*model.ListItem, error) {
	_, err := s.db.Exec(
		`UPDATE list_items SET quantity = ?, notes = ? WHERE id = ?`,
		quantity, notes, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update list item: %w", err)
	}
	return s.GetItemByID(id)
}

func (s *ListStore) DeleteItem(id int64) error {
	_, err := s.db.Exec(`DELETE FROM list_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete list item: %w", err)
	}
	return nil
}

// TogglePurchased flips the purchased flag, stamping purchased_at on
// purchase and clearing it again when unpurchased.
func (s *ListStore) TogglePurchased(id int64) (*model.ListItem, error) {
	item, err := s.GetItemByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	if item.IsPurchased {
		_, err = s.db.Exec(
			`UPDATE list_items SET is_purchased = 0, purchased_at = NULL WHERE id = ?`,
			id,
		)
	} else {
		_, err = s.db.Exec(
			`UPDATE list_items SET is_purchased = 1, purchased_at = ? WHERE id = ?`,
			time.Now().UTC(), id,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle purchased: %w", err)
	}
	return s.GetItemByID(id)
}

// SetPrice records the price paid for an item.
func (s *ListStore) SetPrice(id int64, price float64) (*model.ListItem, error) {
	_, err := s.db.Exec(`UPDATE list_items SET price = ? WHERE id = ?`, price, id)
	if err != nil {
		return nil, fmt.Errorf("set price: %w", err)
	}
	return s.GetItemByID(id)
}
