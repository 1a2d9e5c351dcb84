package budget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dailyspends/dailyspends/pkg/expense"
	"github.com/dailyspends/dailyspends/pkg/limits"
)

var ErrInvalidPeriod = errors.New("invalid period")

// Period selects which limit applies and how a month's total is adjusted before comparing.
type Period string

const (
	Daily   Period = "Daily"
	Monthly Period = "Monthly"
	Yearly  Period = "Yearly"
)

var Periods = []Period{Daily, Monthly, Yearly}

func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// Adjust converts a month's raw total into the figure compared with the period's limit.
// Monthly divides by 12 and Yearly keeps the month total as is; both treat one month as the basis for the year.
func (p Period) Adjust(total float64, month expense.Month) float64 {
	switch p {
	case Daily:
		return total / float64(month.DaysIn())
	case Monthly:
		return total / 12
	default:
		return total
	}
}

// Limit picks the threshold of the period.
func (p Period) Limit(l limits.Limits) float64 {
	switch p {
	case Daily:
		return l.Daily
	case Monthly:
		return l.Monthly
	case Yearly:
		return l.Yearly
	default:
		return 0
	}
}
