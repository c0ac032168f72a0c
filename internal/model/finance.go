package model

import "time"

type Purchase struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	TotalAmount  float64   `json:"total_amount"`
	ItemCount    int       `json:"item_count"`
	PurchaseDate time.Time `json:"purchase_date"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

type FinancialSettings struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	MonthlyBudget float64   `json:"monthly_budget"`
	UpdatedAt     time.Time `json:"updated_at"`
}
