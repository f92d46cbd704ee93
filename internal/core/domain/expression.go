package domain

// Operator is one of the four binary operators.
type Operator byte

// Supported operators.
const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
)

// IsOperator reports whether c is a binary operator symbol.
func IsOperator(c byte) bool {
	switch Operator(c) {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	default:
		return false
	}
}

// String returns the operator symbol.
func (o Operator) String() string {
	return string(rune(o))
}

// Apply computes left o right.
// Division checks for an exactly-zero divisor before dividing.
func (o Operator) Apply(left, right float64) (float64, error) {
	switch o {
	case OpAdd:
		return left + right, nil
	case OpSub:
		return left - right, nil
	case OpMul:
		return left * right, nil
	case OpDiv:
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		return left / right, nil
	default:
		return 0, ErrInvalidOperator
	}
}

// Expression is a buffer split around its single operator.
type Expression struct {
	Left     string
	Operator Operator
	Right    string
}

// String reassembles the expression.
func (e Expression) String() string {
	return e.Left + e.Operator.String() + e.Right
}
