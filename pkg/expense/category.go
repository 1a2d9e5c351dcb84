package expense

import (
	"fmt"
	"strings"
)

type Category string

const (
	Grocery       Category = "Grocery"
	Travel        Category = "Travel"
	Miscellaneous Category = "Miscellaneous"
	Savings       Category = "Savings"
)

// Categories lists the fixed expense buckets in display order.
var Categories = []Category{Grocery, Travel, Miscellaneous, Savings}

func (c Category) IsKnown() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, known := range Categories {
		if strings.EqualFold(string(known), strings.TrimSpace(s)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrInvalidRecord, s)
}

// Color is the display color of the category.
func (c Category) Color() string {
	switch c {
	case Grocery:
		return "green"
	case Travel:
		return "blue"
	case Miscellaneous:
		return "orange"
	case Savings:
		return "purple"
	default:
		return "gray"
	}
}
