package model

import "time"

// List statuses.
const (
	ListStatusActive    = "active"
	ListStatusArchived  = "archived"
	ListStatusCompleted = "completed"
)

type List struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Name        string     `json:"name"`
	Notes       string     `json:"notes"`
	Status      string     `json:"status"`
	IsCurrent   bool       `json:"is_current"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ListSummary is a List plus item counts for the lists screen.
type ListSummary struct {
	List
	ItemCount      int `json:"item_count"`
	PurchasedCount int `json:"purchased_count"`
}

type ListItem struct {
	ID          int64      `json:"id"`
	ListID      int64      `json:"list_id"`
	ProductID   int64      `json:"product_id"`
	Quantity    float64    `json:"quantity"`
	IsPurchased bool       `json:"is_purchased"`
	Price       *float64   `json:"price"`
	Notes       string     `json:"notes"`
	PurchasedAt *time.Time `json:"purchased_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ListItemDetail is a ListItem joined with its product and list names,
// as shown on the shopping-day screen.
type ListItemDetail struct {
	ListItem
	ProductName     string `json:"product_name"`
	ProductCategory string `json:"product_category"`
	ListName        string `json:"list_name"`
}
