package pantry

import (
	"testing"
	"time"

	"github.com/cherryapp/cherry/internal/model"
)

func TestStockStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	nextWeek := now.Add(7 * 24 * time.Hour)

	tests := []struct {
		name      string
		quantity  float64
		threshold float64
		expiry    *time.Time
		want      Status
	}{
		{"plenty", 10, 3, nil, StatusSufficient},
		{"just above threshold", 3.5, 3, nil, StatusSufficient},
		{"at threshold", 3, 3, nil, StatusLow},
		{"below threshold", 2, 3, nil, StatusLow},
		{"zero quantity", 0, 3, nil, StatusOut},
		{"negative quantity", -1, 3, nil, StatusOut},
		{"expired beats quantity", 10, 3, &yesterday, StatusExpired},
		{"expired and empty", 0, 3, &yesterday, StatusExpired},
		{"future expiry is fine", 10, 3, &nextWeek, StatusSufficient},
		{"future expiry but low", 2, 3, &nextWeek, StatusLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := model.PantryItem{
				Quantity:          tt.quantity,
				LowStockThreshold: tt.threshold,
				ExpiryDate:        tt.expiry,
			}
			if got := StockStatus(item, now); got != tt.want {
				t.Errorf("StockStatus = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNeedsAttention(t *testing.T) {
	if NeedsAttention(StatusSufficient) {
		t.Error("sufficient should not need attention")
	}
	for _, s := range []Status{StatusLow, StatusOut, StatusExpired} {
		if !NeedsAttention(s) {
			t.Errorf("%q should need attention", s)
		}
	}
}

func TestAnnotate(t *testing.T) {
	now := time.Now()
	items := []model.PantryItemDetail{
		{PantryItem: model.PantryItem{Quantity: 2, LowStockThreshold: 3}, ProductName: "Rice"},
		{PantryItem: model.PantryItem{Quantity: 5, LowStockThreshold: 3}, ProductName: "Beans"},
	}

	annotated := Annotate(items, now)
	if len(annotated) != 2 {
		t.Fatalf("expected 2 items, got %d", len(annotated))
	}
	if annotated[0].Status != StatusLow {
		t.Errorf("rice status = %q, want low", annotated[0].Status)
	}
	if annotated[1].Status != StatusSufficient {
		t.Errorf("beans status = %q, want sufficient", annotated[1].Status)
	}
}
