package budget

import (
	"fmt"
	"strings"

	"github.com/dailyspends/dailyspends/pkg/expense"
	"github.com/dailyspends/dailyspends/pkg/limits"
)

type CategorySummary struct {
	Category expense.Category
	Total    float64
	Adjusted float64
	Exceeded bool
	// Ratio is Adjusted divided by the limit, 0 without a limit.
	Ratio float64
	// Progress is Ratio clamped to [0, 1].
	Progress float64
}

type Summary struct {
	Month      expense.Month
	Period     Period
	Limit      float64
	Categories []CategorySummary
	Total      float64
	Adjusted   float64
	Exceeded   bool
	Ratio      float64
	Progress   float64
}

// Aggregate sums the known categories of records, adjusts the sums for period and compares
// them with the period's limit. A limit of 0 never flags anything. Unknown category keys
// are ignored.
func Aggregate(records []expense.Record, month expense.Month, period Period, l limits.Limits) Summary {
	totals := make(map[expense.Category]float64, len(expense.Categories))
	for _, record := range records {
		for _, category := range expense.Categories {
			totals[category] += record.Amounts[category]
		}
	}

	limit := period.Limit(l)
	summary := Summary{
		Month:      month,
		Period:     period,
		Limit:      limit,
		Categories: make([]CategorySummary, 0, len(expense.Categories)),
	}
	for _, category := range expense.Categories {
		total := totals[category]
		adjusted := period.Adjust(total, month)
		ratio, progress := ratios(adjusted, limit)
		summary.Categories = append(summary.Categories, CategorySummary{
			Category: category,
			Total:    total,
			Adjusted: adjusted,
			Exceeded: exceeded(adjusted, limit),
			Ratio:    ratio,
			Progress: progress,
		})
		summary.Total += total
	}
	summary.Adjusted = period.Adjust(summary.Total, month)
	summary.Exceeded = exceeded(summary.Adjusted, limit)
	summary.Ratio, summary.Progress = ratios(summary.Adjusted, limit)
	return summary
}

func exceeded(adjusted, limit float64) bool {
	return limit > 0 && adjusted > limit
}

func ratios(adjusted, limit float64) (ratio float64, progress float64) {
	if limit <= 0 {
		return 0, 0
	}
	ratio = adjusted / limit
	return ratio, min(max(ratio, 0), 1)
}

// Category returns the summary of one category, the zero value for unknown ones.
func (s Summary) Category(category expense.Category) CategorySummary {
	for _, c := range s.Categories {
		if c.Category == category {
			return c
		}
	}
	return CategorySummary{Category: category}
}

// Alerts lists one message per exceeded category followed by the overall message.
func (s Summary) Alerts() []string {
	period := strings.ToLower(string(s.Period))
	alerts := make([]string, 0)
	for _, c := range s.Categories {
		if c.Exceeded {
			alerts = append(alerts, fmt.Sprintf("You have exceeded your %s budget for %s!", period, c.Category))
		}
	}
	if s.Exceeded {
		alerts = append(alerts, fmt.Sprintf("You have exceeded your %s budget limit!", period))
	}
	return alerts
}
