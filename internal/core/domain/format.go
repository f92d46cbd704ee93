package domain

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders v the way a result is shown in the buffer: the
// shortest decimal that round-trips, switching to exponent form for
// magnitudes >= 1e21 or < 1e-6.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		// Covers negative zero.
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + sign + digits
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
