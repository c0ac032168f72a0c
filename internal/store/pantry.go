package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cherryapp/cherry/internal/model"
)

type PantryStore struct {
	db *sql.DB
}

func NewPantryStore(db *sql.DB) *PantryStore {
	return &PantryStore{db: db}
}

func scanPantryItem(scanner interface{ Scan(...any) error }) (*model.PantryItem, error) {
	var item model.PantryItem
	var expiry sql.NullTime

	err := scanner.Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.Unit,
		&expiry, &item.LowStockThreshold, &item.Notes, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if expiry.Valid {
		item.ExpiryDate = &expiry.Time
	}
	return &item, nil
}

const pantryItemCols = `id, user_id, product_id, quantity, unit, expiry_date, low_stock_threshold, notes, created_at, updated_at`

func (s *PantryStore) Create(userID, productID int64, quantity float64, unit string, expiry *time.Time, threshold float64, notes string) (*model.PantryItem, error) {
	var expiryVal sql.NullTime
	if expiry != nil {
		expiryVal = sql.NullTime{Time: *expiry, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO pantry_items (user_id, product_id, quantity, unit, expiry_date, low_stock_threshold, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, productID, quantity, unit, expiryVal, threshold, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert pantry item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *PantryStore) GetByID(id int64) (*model.PantryItem, error) {
	row := s.db.QueryRow(`SELECT `+pantryItemCols+` FROM pantry_items WHERE id = ?`, id)
	item, err := scanPantryItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pantry item: %w", err)
	}
	return item, nil
}

// GetByProduct returns the user's pantry row for a product, or nil.
func (s *PantryStore) GetByProduct(userID, productID int64) (*model.PantryItem, error) {
	row := s.db.QueryRow(
		`SELECT `+pantryItemCols+` FROM pantry_items WHERE user_id = ? AND product_id = ?`,
		userID, productID,
	)
	item, err := scanPantryItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pantry item by product: %w", err)
	}
	return item, nil
}

// ListByUser returns the user's pantry joined with products, most recently
// updated first.
func (s *PantryStore) ListByUser(userID int64) ([]model.PantryItemDetail, error) {
	rows, err := s.db.Query(
		`SELECT pi.id, pi.user_id, pi.product_id, pi.quantity, pi.unit, pi.expiry_date, pi.low_stock_threshold, pi.notes, pi.created_at, pi.updated_at,
		        p.name, p.category
		 FROM pantry_items pi
		 JOIN products p ON p.id = pi.product_id
		 WHERE pi.user_id = ?
		 ORDER BY pi.updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list pantry items: %w", err)
	}
	defer rows.Close()

	var items []model.PantryItemDetail
	for rows.Next() {
		var d model.PantryItemDetail
		var expiry sql.NullTime
		err := rows.Scan(
			&d.ID, &d.UserID, &d.ProductID, &d.Quantity, &d.Unit,
			&expiry, &d.LowStockThreshold, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
			&d.ProductName, &d.ProductCategory,
		)
		if err != nil {
			return nil, fmt.Errorf("scan pantry item: %w", err)
		}
		if expiry.Valid {
			d.ExpiryDate = &expiry.Time
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// SetQuantity sets the stored quantity directly (consume/restock edits).
func (s *PantryStore) SetQuantity(id int64, quantity float64) (*model.PantryItem, error) {
	_, err := s.db.Exec(
		`UPDATE pantry_items SET quantity = ?, updated_at = datetime('now') WHERE id = ?`,
		quantity, id,
	)
	if err != nil {
		return nil, fmt.Errorf("set pantry quantity: %w", err)
	}
	return s.GetByID(id)
}

func (s *PantryStore) Update(id int64, quantity float64, unit string, expiry *time.Time, threshold float64, notes string) (*model.PantryItem, error) {
	var expiryVal sql.NullTime
	if expiry != nil {
		expiryVal = sql.NullTime{Time: *expiry, Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE pantry_items SET quantity = ?, unit = ?, expiry_date = ?, low_stock_threshold = ?, notes = ?, updated_at = datetime('now')
		 WHERE id = ?`,
		quantity, unit, expiryVal, threshold, notes, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update pantry item: %w", err)
	}
	return s.GetByID(id)
}

func (s *PantryStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM pantry_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete pantry item: %w", err)
	}
	return nil
}
