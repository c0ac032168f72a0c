package model

import "time"

type PantryItem struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"user_id"`
	ProductID         int64      `json:"product_id"`
	Quantity          float64    `json:"quantity"`
	Unit              string     `json:"unit"`
	ExpiryDate        *time.Time `json:"expiry_date"`
	LowStockThreshold float64    `json:"low_stock_threshold"`
	Notes             string     `json:"notes"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PantryItemDetail is a PantryItem joined with its product.
type PantryItemDetail struct {
	PantryItem
	ProductName     string `json:"product_name"`
	ProductCategory string `json:"product_category"`
}
