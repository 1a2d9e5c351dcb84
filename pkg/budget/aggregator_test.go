package budget

import (
	"testing"
	"time"

	"github.com/dailyspends/dailyspends/pkg/expense"
	"github.com/dailyspends/dailyspends/pkg/limits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var january = expense.Month{Year: 2025, Month: time.January}

func records(amounts ...map[expense.Category]float64) []expense.Record {
	result := make([]expense.Record, 0, len(amounts))
	for i, a := range amounts {
		result = append(result, expense.Record{Day: i + 1, Amounts: a})
	}
	return result
}

func TestAggregate(t *testing.T) {
	t.Run("should return zero totals and no flags for empty records", func(t *testing.T) {
		for _, period := range Periods {
			summary := Aggregate(nil, january, period, limits.Limits{Daily: 10, Monthly: 10, Yearly: 10})

			assert.Equal(t, 0.0, summary.Total)
			assert.Equal(t, 0.0, summary.Adjusted)
			assert.False(t, summary.Exceeded)
			require.Len(t, summary.Categories, 4)
			for _, c := range summary.Categories {
				assert.Equal(t, 0.0, c.Total)
				assert.False(t, c.Exceeded)
			}
			assert.Empty(t, summary.Alerts())
		}
	})

	t.Run("should never flag with zero limits", func(t *testing.T) {
		recs := records(map[expense.Category]float64{expense.Grocery: 1e6, expense.Travel: 5})

		for _, period := range Periods {
			summary := Aggregate(recs, january, period, limits.Limits{})

			assert.False(t, summary.Exceeded)
			assert.Equal(t, 0.0, summary.Ratio)
			assert.Equal(t, 0.0, summary.Progress)
			for _, c := range summary.Categories {
				assert.False(t, c.Exceeded)
			}
		}
	})

	t.Run("should be idempotent", func(t *testing.T) {
		recs := records(
			map[expense.Category]float64{expense.Grocery: 12.3, expense.Savings: 40},
			map[expense.Category]float64{expense.Travel: 7.7},
		)
		l := limits.Limits{Daily: 2}

		assert.Equal(t, Aggregate(recs, january, Daily, l), Aggregate(recs, january, Daily, l))
	})

	t.Run("should divide by days of the month for daily period", func(t *testing.T) {
		recs := records(
			map[expense.Category]float64{expense.Grocery: 1000, expense.Travel: 100},
			map[expense.Category]float64{expense.Miscellaneous: 2000},
		)

		summary := Aggregate(recs, january, Daily, limits.Limits{})

		assert.Equal(t, 3100.0, summary.Total)
		assert.Equal(t, 100.0, summary.Adjusted)
	})

	t.Run("should use calendar days for february", func(t *testing.T) {
		recs := records(map[expense.Category]float64{expense.Grocery: 280})

		summary := Aggregate(recs, expense.Month{Year: 2025, Month: time.February}, Daily, limits.Limits{})

		assert.Equal(t, 10.0, summary.Adjusted)
	})

	t.Run("should divide by twelve for monthly period", func(t *testing.T) {
		recs := records(map[expense.Category]float64{expense.Savings: 1200})

		summary := Aggregate(recs, january, Monthly, limits.Limits{})

		assert.Equal(t, 100.0, summary.Adjusted)
		assert.Equal(t, 100.0, summary.Category(expense.Savings).Adjusted)
	})

	t.Run("should keep total for yearly period", func(t *testing.T) {
		recs := records(map[expense.Category]float64{expense.Travel: 500})

		summary := Aggregate(recs, january, Yearly, limits.Limits{})

		assert.Equal(t, 500.0, summary.Adjusted)
	})

	t.Run("should flag only strictly greater than the limit", func(t *testing.T) {
		over := Aggregate(records(map[expense.Category]float64{expense.Grocery: 1600}), january, Daily, limits.Limits{Daily: 50})
		equal := Aggregate(records(map[expense.Category]float64{expense.Grocery: 1550}), january, Daily, limits.Limits{Daily: 50})

		assert.InDelta(t, 51.6129, over.Adjusted, 0.0001)
		assert.True(t, over.Exceeded)
		assert.True(t, over.Category(expense.Grocery).Exceeded)
		assert.Equal(t, 50.0, equal.Adjusted)
		assert.False(t, equal.Exceeded)
		assert.False(t, equal.Category(expense.Grocery).Exceeded)
	})

	t.Run("should use the limit of the period", func(t *testing.T) {
		recs := records(map[expense.Category]float64{expense.Grocery: 1200})
		l := limits.Limits{Daily: 1000, Monthly: 50, Yearly: 5000}

		assert.False(t, Aggregate(recs, january, Daily, l).Exceeded)
		assert.True(t, Aggregate(recs, january, Monthly, l).Exceeded)
		assert.False(t, Aggregate(recs, january, Yearly, l).Exceeded)
	})

	t.Run("should ignore unknown category keys", func(t *testing.T) {
		recs := records(map[expense.Category]float64{expense.Grocery: 10, "Unknown": 999})

		summary := Aggregate(recs, january, Yearly, limits.Limits{})

		assert.Equal(t, 10.0, summary.Category(expense.Grocery).Total)
		assert.Equal(t, 0.0, summary.Category(expense.Travel).Total)
		assert.Equal(t, 0.0, summary.Category(expense.Miscellaneous).Total)
		assert.Equal(t, 0.0, summary.Category(expense.Savings).Total)
		assert.Equal(t, 10.0, summary.Total)
		for _, c := range summary.Categories {
			assert.NotEqual(t, expense.Category("Unknown"), c.Category)
		}
	})

	t.Run("should expose clamped and unclamped progress", func(t *testing.T) {
		recs := records(map[expense.Category]float64{expense.Grocery: 300, expense.Travel: 50})

		summary := Aggregate(recs, january, Yearly, limits.Limits{Yearly: 200})

		assert.Equal(t, 1.75, summary.Ratio)
		assert.Equal(t, 1.0, summary.Progress)
		assert.Equal(t, 1.5, summary.Category(expense.Grocery).Ratio)
		assert.Equal(t, 1.0, summary.Category(expense.Grocery).Progress)
		assert.Equal(t, 0.25, summary.Category(expense.Travel).Ratio)
		assert.Equal(t, 0.25, summary.Category(expense.Travel).Progress)
	})
}

func TestSummary_Alerts(t *testing.T) {
	recs := records(map[expense.Category]float64{expense.Grocery: 300, expense.Travel: 50})

	summary := Aggregate(recs, january, Yearly, limits.Limits{Yearly: 200})

	assert.Equal(t, []string{
		"You have exceeded your yearly budget for Grocery!",
		"You have exceeded your yearly budget limit!",
	}, summary.Alerts())
}

func TestParsePeriod(t *testing.T) {
	period, err := ParsePeriod("monthly")
	require.NoError(t, err)
	assert.Equal(t, Monthly, period)

	_, err = ParsePeriod("weekly")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
