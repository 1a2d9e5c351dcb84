package limits

import (
	"math"
	"strconv"
	"strings"
)

// Limits are the per user thresholds. Zero means no limit is configured for that period.
type Limits struct {
	Daily   float64
	Monthly float64
	Yearly  float64
}

// ParseLimit turns user input into a limit. Input that is empty, not a number, negative or
// not finite becomes 0 instead of an error.
func ParseLimit(input string) float64 {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0
	}
	return value
}

func ParseLimits(daily, monthly, yearly string) Limits {
	return Limits{
		Daily:   ParseLimit(daily),
		Monthly: ParseLimit(monthly),
		Yearly:  ParseLimit(yearly),
	}
}

// Normalize applies the same substitution to numeric input.
func (l Limits) Normalize() Limits {
	return Limits{
		Daily:   normalize(l.Daily),
		Monthly: normalize(l.Monthly),
		Yearly:  normalize(l.Yearly),
	}
}

func normalize(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0
	}
	return value
}
