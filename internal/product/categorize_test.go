package product

import "testing"

func TestCategorizeExactMatch(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"milk", "Dairy"},
		{"chicken", "Meat & Seafood"},
		{"bread", "Bakery"},
		{"rice", "Pantry"},
		{"ice cream", "Frozen"},
		{"coffee", "Beverages"},
		{"chips", "Snacks"},
		{"paper towels", "Household"},
		{"shampoo", "Personal Care"},
		{"apple", "Produce"},
	}
	for _, tt := range tests {
		if got := Categorize(tt.input); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizeSubstringMatch(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"frozen peas", "Frozen"},
		{"laundry detergent", "Household"},
		{"whole milk", "Dairy"},
		{"chicken thighs", "Meat & Seafood"},
		{"strawberries", "Produce"},
		{"tomato sauce", "Pantry"},
	}
	for _, tt := range tests {
		if got := Categorize(tt.input); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizeCaseAndWhitespace(t *testing.T) {
	if got := Categorize("  MILK  "); got != "Dairy" {
		t.Errorf("Categorize with case/whitespace = %q, want Dairy", got)
	}
}

func TestCategorizeFallback(t *testing.T) {
	if got := Categorize("mystery item"); got != "Other" {
		t.Errorf("Categorize fallback = %q, want Other", got)
	}
	if got := Categorize(""); got != "Other" {
		t.Errorf("Categorize empty = %q, want Other", got)
	}
}
