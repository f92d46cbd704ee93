package domain

// Control tokens understood by an input session.
const (
	TokenClear     = "AC"
	TokenBackspace = "⌫"
	TokenEvaluate  = "="
)

// NormalizeToken maps adapter-friendly aliases onto keypad tokens.
// Tokens without an alias are returned unchanged.
func NormalizeToken(t string) string {
	switch t {
	case "backspace", "DEL", "del", "bs":
		return TokenBackspace
	case "ac", "clear", "C":
		return TokenClear
	case "enter", "eval":
		return TokenEvaluate
	case "x", "X", "×":
		return "*"
	case "÷":
		return "/"
	default:
		return t
	}
}

// Keypad is the button grid, row by row.
var Keypad = [][]string{
	{TokenClear, TokenBackspace, "%", "/"},
	{"7", "8", "9", "*"},
	{"4", "5", "6", "-"},
	{"1", "2", "3", "+"},
	{"0", "00", ".", TokenEvaluate},
}

// KeypadTokens returns every keypad token in row order.
func KeypadTokens() []string {
	var out []string
	for _, row := range Keypad {
		out = append(out, row...)
	}
	return out
}

// IsKeypadToken reports whether t is a button on the keypad.
func IsKeypadToken(t string) bool {
	for _, row := range Keypad {
		for _, b := range row {
			if b == t {
				return true
			}
		}
	}
	return false
}
