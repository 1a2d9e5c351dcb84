package expense

import (
	"errors"
	"fmt"
	"math"
)

var ErrRecordNotFound = errors.New("expense record not found")
var ErrInvalidRecord = errors.New("invalid expense record")
var ErrInvalidDay = errors.New("invalid day")
var ErrInvalidMonth = errors.New("invalid month")

// Record is one day's entry. Amounts may carry keys outside Categories when loaded from the
// store; consumers only read the known ones.
type Record struct {
	Day        int
	Amounts    map[Category]float64
	Notes      string
	ReceiptRef string
}

// Total sums the amounts of the known categories.
func (r Record) Total() float64 {
	total := 0.0
	for _, category := range Categories {
		total += r.Amounts[category]
	}
	return total
}

// Validate checks the record before it is stored for the given month.
func (r Record) Validate(month Month) error {
	if !month.Valid() {
		return fmt.Errorf("%w: %d-%d", ErrInvalidMonth, month.Year, month.Month)
	}
	if r.Day < 1 || r.Day > month.DaysIn() {
		return fmt.Errorf("%w: %d not in 1..%d for %s", ErrInvalidDay, r.Day, month.DaysIn(), month.Label())
	}
	for category, amount := range r.Amounts {
		if !category.IsKnown() {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidRecord, category)
		}
		if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return fmt.Errorf("%w: invalid amount %v for %s", ErrInvalidRecord, amount, category)
		}
	}
	return nil
}
