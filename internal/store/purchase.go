package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cherryapp/cherry/internal/model"
)

type PurchaseStore struct {
	db *sql.DB
}

func NewPurchaseStore(db *sql.DB) *PurchaseStore {
	return &PurchaseStore{db: db}
}

func scanPurchase(scanner interface{ Scan(...any) error }) (*model.Purchase, error) {
	var p model.Purchase
	err := scanner.Scan(
		&p.ID, &p.UserID, &p.Name, &p.TotalAmount, &p.ItemCount,
		&p.PurchaseDate, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const purchaseCols = `id, user_id, name, total_amount, item_count, purchase_date, notes, created_at`

func (s *PurchaseStore) Create(userID int64, name string, totalAmount float64, itemCount int, purchaseDate time.Time, notes string) (*model.Purchase, error) {
	result, err := s.db.Exec(
		`INSERT INTO purchases (user_id, name, total_amount, item_count, purchase_date, notes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, name, totalAmount, itemCount, purchaseDate.UTC(), notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert purchase: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *PurchaseStore) GetByID(id int64) (*model.Purchase, error) {
	row := s.db.QueryRow(`SELECT `+purchaseCols+` FROM purchases WHERE id = ?`, id)
	p, err := scanPurchase(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

func (s *PurchaseStore) ListByUser(userID int64) ([]model.Purchase, error) {
	rows, err := s.db.Query(
		`SELECT `+purchaseCols+` FROM purchases WHERE user_id = ? ORDER BY purchase_date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []model.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, *p)
	}
	return purchases, rows.Err()
}

func (s *PurchaseStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM purchases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}

// SumForRange totals purchases whose purchase_date falls in [from, to).
func (s *PurchaseStore) SumForRange(userID int64, from, to time.Time) (float64, error) {
	var total float64
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(total_amount), 0) FROM purchases
		 WHERE user_id = ? AND purchase_date >= ? AND purchase_date < ?`,
		userID, from.UTC(), to.UTC(),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum purchases: %w", err)
	}
	return total, nil
}

// --- Financial settings ---

// GetSettings returns the user's budget settings, defaulting to a zero
// budget when no row exists yet.
func (s *PurchaseStore) GetSettings(userID int64) (*model.FinancialSettings, error) {
	row := s.db.QueryRow(
		`SELECT id, user_id, monthly_budget, updated_at FROM financial_settings WHERE user_id = ?`,
		userID,
	)
	var fs model.FinancialSettings
	err := row.Scan(&fs.ID, &fs.UserID, &fs.MonthlyBudget, &fs.UpdatedAt)
	if err == sql.ErrNoRows {
		return &model.FinancialSettings{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get financial settings: %w", err)
	}
	return &fs, nil
}

// SetBudget upserts the user's monthly budget.
func (s *PurchaseStore) SetBudget(userID int64, monthlyBudget float64) (*model.FinancialSettings, error) {
	_, err := s.db.Exec(
		`INSERT INTO financial_settings (user_id, monthly_budget) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET monthly_budget = excluded.monthly_budget, updated_at = datetime('now')`,
		userID, monthlyBudget,
	)
	if err != nil {
		return nil, fmt.Errorf("set budget: %w", err)
	}
	return s.GetSettings(userID)
}
