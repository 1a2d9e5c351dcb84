package budget

import (
	"testing"

	"github.com/dailyspends/dailyspends/pkg/expense"
	"github.com/dailyspends/dailyspends/pkg/limits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvSummaryRendererImpl_RenderSummary(t *testing.T) {
	// given
	summary := Aggregate(records(
		map[expense.Category]float64{expense.Grocery: 1240, expense.Savings: 310},
	), january, Daily, limits.Limits{Daily: 40})
	renderer := NewCsvSummaryRenderer()

	// when
	csv, err := renderer.RenderSummary(summary)

	// then
	require.NoError(t, err)
	want := "January 2025,Total,Daily,Limit,Progress,Exceeded\n" +
		"Grocery,1240.00,40.00,40.00,100.0%,false\n" +
		"Travel,0.00,0.00,40.00,0.0%,false\n" +
		"Miscellaneous,0.00,0.00,40.00,0.0%,false\n" +
		"Savings,310.00,10.00,40.00,25.0%,false\n" +
		"SUM,1550.00,50.00,40.00,125.0%,true\n"
	assert.Equal(t, want, csv)
}
