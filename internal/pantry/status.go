package pantry

import (
	"time"

	"github.com/cherryapp/cherry/internal/model"
)

type Status string

const (
	StatusSufficient Status = "sufficient"
	StatusLow        Status = "low"
	StatusOut        Status = "out"
	StatusExpired    Status = "expired"
)

// ItemWithStatus is a pantry item annotated with its computed stock status.
type ItemWithStatus struct {
	model.PantryItemDetail
	Status Status `json:"status"`
}

// StockStatus computes the status of a pantry item at the given instant.
// Expiry wins over quantity: an expired item is expired no matter how much
// of it is left.
func StockStatus(item model.PantryItem, now time.Time) Status {
	if item.ExpiryDate != nil && item.ExpiryDate.Before(now) {
		return StatusExpired
	}
	if item.Quantity <= 0 {
		return StatusOut
	}
	if item.Quantity <= item.LowStockThreshold {
		return StatusLow
	}
	return StatusSufficient
}

// NeedsAttention reports whether the status should appear in the alerts
// panel and in the replenishment suggestions.
func NeedsAttention(s Status) bool {
	return s != StatusSufficient
}

// Annotate attaches statuses to a batch of pantry items.
func Annotate(items []model.PantryItemDetail, now time.Time) []ItemWithStatus {
	annotated := make([]ItemWithStatus, 0, len(items))
	for _, item := range items {
		annotated = append(annotated, ItemWithStatus{
			PantryItemDetail: item,
			Status:           StockStatus(item.PantryItem, now),
		})
	}
	return annotated
}
