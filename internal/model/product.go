package model

import "time"

type Product struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	DefaultQuantity float64   `json:"default_quantity"`
	CreatedAt       time.Time `json:"created_at"`
}
