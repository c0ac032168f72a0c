package finance

import "time"

// NearLimitThreshold is the budget percentage at or above which the finance
// screen shows the near-limit warning.
const NearLimitThreshold = 80.0

// Summary is the finance screen's month-at-a-glance view.
type Summary struct {
	MonthSpend    float64 `json:"month_spend"`
	MonthlyBudget float64 `json:"monthly_budget"`
	Percent       float64 `json:"percent"`
	NearLimit     bool    `json:"near_limit"`
}

// MonthRange returns the [start, end) bounds of the calendar month
// containing t, in UTC.
func MonthRange(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// BudgetPercent returns spend as a percentage of budget, or 0 when no budget
// is set.
func BudgetPercent(spend, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	return spend / budget * 100
}

// Summarize builds the month summary from the month's spend and the
// configured budget.
func Summarize(spend, budget float64) Summary {
	percent := BudgetPercent(spend, budget)
	return Summary{
		MonthSpend:    spend,
		MonthlyBudget: budget,
		Percent:       percent,
		NearLimit:     budget > 0 && percent >= NearLimitThreshold,
	}
}
