package limits

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"50", 50},
		{" 12.5 ", 12.5},
		{"12,5", 12.5},
		{"0", 0},
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"-5", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1.2.3", 0},
	}
	for _, tt := range tests {
		t.Run("should parse "+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLimit(tt.input))
		})
	}
}

func TestParseLimits(t *testing.T) {
	t.Run("should substitute invalid inputs independently", func(t *testing.T) {
		limits := ParseLimits("abc", "300", "-5")

		assert.Equal(t, Limits{Daily: 0, Monthly: 300, Yearly: 0}, limits)
	})
}

func TestLimits_Normalize(t *testing.T) {
	limits := Limits{Daily: -1, Monthly: math.NaN(), Yearly: 1000}.Normalize()

	assert.Equal(t, Limits{Daily: 0, Monthly: 0, Yearly: 1000}, limits)
}
