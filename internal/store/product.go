package store

import (
	"database/sql"
	"fmt"

	"github.com/cherryapp/cherry/internal/model"
)

type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

func scanProduct(scanner interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	err := scanner.Scan(&p.ID, &p.UserID, &p.Name, &p.Category, &p.DefaultQuantity, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const productCols = `id, user_id, name, category, default_quantity, created_at`

func (s *ProductStore) Create(userID int64, name, category string, defaultQuantity float64) (*model.Product, error) {
	result, err := s.db.Exec(
		`INSERT INTO products (user_id, name, category, default_quantity) VALUES (?, ?, ?, ?)`,
		userID, name, category, defaultQuantity,
	)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ProductStore) GetByID(id int64) (*model.Product, error) {
	row := s.db.QueryRow(`SELECT `+productCols+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListByUser returns the user's products ordered by name, as offered in the
// pantry-add and list-add pickers.
func (s *ProductStore) ListByUser(userID int64) ([]model.Product, error) {
	rows, err := s.db.Query(
		`SELECT `+productCols+` FROM products WHERE user_id = ? ORDER BY name ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *ProductStore) Update(id int64, name, category string, defaultQuantity float64) (*model.Product, error) {
	_, err := s.db.Exec(
		`UPDATE products SET name = ?, category = ?, default_quantity = ? WHERE id = ?`,
		name, category, defaultQuantity, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return s.GetByID(id)
}
