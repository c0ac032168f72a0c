package product

import "strings"

// Categorize returns a category for a product created ad hoc from the
// pantry-add or list-add flows, based on its name. Exact match first, then
// substring match, falling back to "Other".
func Categorize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "Other"
	}

	if cat, ok := exactMatch[name]; ok {
		return cat
	}

	for _, entry := range substringMatches {
		if strings.Contains(name, entry.keyword) {
			return entry.category
		}
	}

	return "Other"
}

var exactMatch = map[string]string{
	"apple":    "Produce",
	"apples":   "Produce",
	"banana":   "Produce",
	"bananas":  "Produce",
	"tomato":   "Produce",
	"tomatoes": "Produce",
	"potato":   "Produce",
	"potatoes": "Produce",
	"onion":    "Produce",
	"onions":   "Produce",
	"garlic":   "Produce",
	"lettuce":  "Produce",
	"carrot":   "Produce",
	"carrots":  "Produce",

	"milk":   "Dairy",
	"butter": "Dairy",
	"cheese": "Dairy",
	"yogurt": "Dairy",
	"cream":  "Dairy",
	"eggs":   "Dairy",

	"chicken": "Meat & Seafood",
	"beef":    "Meat & Seafood",
	"pork":    "Meat & Seafood",
	"fish":    "Meat & Seafood",
	"shrimp":  "Meat & Seafood",

	"bread":    "Bakery",
	"bagels":   "Bakery",
	"tortilla": "Bakery",

	"rice":  "Pantry",
	"beans": "Pantry",
	"pasta": "Pantry",
	"flour": "Pantry",
	"sugar": "Pantry",
	"salt":  "Pantry",
	"oil":   "Pantry",

	"ice cream": "Frozen",

	"coffee": "Beverages",
	"tea":    "Beverages",
	"juice":  "Beverages",
	"soda":   "Beverages",
	"water":  "Beverages",

	"chips":    "Snacks",
	"crackers": "Snacks",
	"cookies":  "Snacks",

	"paper towels": "Household",
	"toilet paper": "Household",
	"dish soap":    "Household",
	"trash bags":   "Household",
	"sponges":      "Household",

	"shampoo":    "Personal Care",
	"toothpaste": "Personal Care",
	"soap":       "Personal Care",
	"deodorant":  "Personal Care",
}

var substringMatches = []struct {
	keyword  string
	category string
}{
	{"frozen", "Frozen"},
	{"detergent", "Household"},
	{"cleaner", "Household"},
	{"lotion", "Personal Care"},
	{"yogurt", "Dairy"},
	{"cheese", "Dairy"},
	{"milk", "Dairy"},
	{"chicken", "Meat & Seafood"},
	{"beef", "Meat & Seafood"},
	{"salmon", "Meat & Seafood"},
	{"bread", "Bakery"},
	{"sauce", "Pantry"},
	{"cereal", "Pantry"},
	{"juice", "Beverages"},
	{"berr", "Produce"},
	{"pepper", "Produce"},
}
