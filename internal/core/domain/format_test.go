package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	a, b := 0.1, 0.2

	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"integer", 42, "42"},
		{"negative", -2, "-2"},
		{"fraction", 10.5, "10.5"},
		{"shortest round trip", a + b, "0.30000000000000004"},
		{"zero", 0, "0"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"small fixed", 0.000001, "0.000001"},
		{"small exponent", 1.5e-7, "1.5e-7"},
		{"large fixed", 1.2345678901234568e20, "123456789012345680000"},
		{"large exponent", 1e21, "1e+21"},
		{"negative large exponent", -2.5e22, "-2.5e+22"},
		{"tiny exponent", 5e-324, "5e-324"},
		{"nan", math.NaN(), "NaN"},
		{"infinity", math.Inf(1), "Infinity"},
		{"negative infinity", math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatNumber(tt.value))
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "42", Success(42).String())
	a, b := 0.1, 0.2
	assert.Equal(t, "0.30000000000000004", Success(a+b).String())
	assert.Equal(t, "Cannot divide by zero", Failure(ErrDivisionByZero).String())
	assert.Equal(t, "Invalid number: abc", Failure(NewInvalidNumber("abc")).String())
}
