package shopping

import "github.com/cherryapp/cherry/internal/model"

// View modes for the shopping-day screen.
type ViewMode string

const (
	ViewCurrent ViewMode = "current"
	ViewPantry  ViewMode = "pantry"
	ViewBoth    ViewMode = "both"
)

// Status filters over list items.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterPending   StatusFilter = "pending"
	FilterPurchased StatusFilter = "purchased"
)

// FilterItems applies a status filter to list items. It never mutates stored
// state; the filters are display-only predicates.
func FilterItems(items []model.ListItemDetail, f StatusFilter) []model.ListItemDetail {
	switch f {
	case FilterPending:
		return filter(items, func(i model.ListItemDetail) bool { return !i.IsPurchased })
	case FilterPurchased:
		return filter(items, func(i model.ListItemDetail) bool { return i.IsPurchased })
	default:
		return items
	}
}

func filter(items []model.ListItemDetail, keep func(model.ListItemDetail) bool) []model.ListItemDetail {
	out := make([]model.ListItemDetail, 0, len(items))
	for _, i := range items {
		if keep(i) {
			out = append(out, i)
		}
	}
	return out
}

// Progress returns the purchased percentage of a list, 0 for an empty list.
func Progress(items []model.ListItemDetail) float64 {
	if len(items) == 0 {
		return 0
	}
	purchased := 0
	for _, i := range items {
		if i.IsPurchased {
			purchased++
		}
	}
	return float64(purchased) / float64(len(items)) * 100
}

// TotalSpent sums the recorded prices of purchased items.
func TotalSpent(items []model.ListItemDetail) float64 {
	var total float64
	for _, i := range items {
		if i.IsPurchased && i.Price != nil {
			total += *i.Price
		}
	}
	return total
}
