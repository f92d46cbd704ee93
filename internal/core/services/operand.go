package services

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/abacus/internal/core/domain"
)

const infinity = "Infinity"

// ParseOperand parses one side of an expression.
// A trailing '%' divides the value by 100. Parsing is permissive: the longest
// numeric prefix is used and anything after it is ignored. An InvalidNumber
// error carries the text with the '%' removed.
func ParseOperand(text string) (float64, error) {
	numStr, isPercent := strings.CutSuffix(text, "%")

	value, ok := parseFloatPrefix(numStr)
	if !ok {
		return 0, domain.NewInvalidNumber(numStr)
	}

	if isPercent {
		return value / 100, nil
	}
	return value, nil
}

// parseFloatPrefix parses the longest leading decimal literal of s:
// optional sign, Infinity or digits with at most one '.', optional exponent.
// It reports false when s has no numeric prefix.
func parseFloatPrefix(s string) (float64, bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	if strings.HasPrefix(s[i:], infinity) {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}

	value, err := strconv.ParseFloat(s[:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return value, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
