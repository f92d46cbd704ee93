package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from evaluation failures, which are reported as *EvalError.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSessionNotFound indicates an unknown or closed session id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrRateLimited indicates the caller exceeded the configured request rate.
	ErrRateLimited = errors.New("rate limited")
)

// Evaluation errors, one per ErrorKind. They match any *EvalError of the
// same kind under errors.Is, so InvalidNumber matches regardless of text.
var (
	ErrEmptyExpression         = &EvalError{Kind: KindEmptyExpression}
	ErrMultipleOperators       = &EvalError{Kind: KindMultipleOperators}
	ErrNoOperatorFound         = &EvalError{Kind: KindNoOperatorFound}
	ErrInvalidOperatorPosition = &EvalError{Kind: KindInvalidOperatorPosition}
	ErrInvalidNumber           = &EvalError{Kind: KindInvalidNumber}
	ErrDivisionByZero          = &EvalError{Kind: KindDivisionByZero}
	ErrInvalidOperator         = &EvalError{Kind: KindInvalidOperator}
)

// ErrorKind classifies why an expression could not be evaluated.
type ErrorKind int

// Evaluation error kinds.
const (
	// KindNone means no error.
	KindNone ErrorKind = iota
	// KindEmptyExpression: buffer empty or all whitespace.
	KindEmptyExpression
	// KindMultipleOperators: more than one operator outside the leading sign.
	KindMultipleOperators
	// KindNoOperatorFound: no binary operator at all.
	KindNoOperatorFound
	// KindInvalidOperatorPosition: operator at the first or last index.
	KindInvalidOperatorPosition
	// KindInvalidNumber: an operand failed numeric parsing.
	KindInvalidNumber
	// KindDivisionByZero: right operand of / is exactly zero.
	KindDivisionByZero
	// KindInvalidOperator: unrecognised operator symbol at apply time.
	KindInvalidOperator
)

// String returns the snake_case identifier used in JSON output.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindEmptyExpression:
		return "empty_expression"
	case KindMultipleOperators:
		return "multiple_operators"
	case KindNoOperatorFound:
		return "no_operator_found"
	case KindInvalidOperatorPosition:
		return "invalid_operator_position"
	case KindInvalidNumber:
		return "invalid_number"
	case KindDivisionByZero:
		return "division_by_zero"
	case KindInvalidOperator:
		return "invalid_operator"
	default:
		return "unknown"
	}
}

// ClearsBuffer reports whether a failure of this kind resets the input buffer.
// An empty expression leaves the buffer untouched; every other failure clears it.
func (k ErrorKind) ClearsBuffer() bool {
	return k != KindNone && k != KindEmptyExpression
}

// EvalError is the typed failure of an evaluation.
type EvalError struct {
	Kind ErrorKind

	// Text is the offending operand for KindInvalidNumber.
	Text string
}

// Error returns the message shown next to the buffer.
func (e *EvalError) Error() string {
	switch e.Kind {
	case KindEmptyExpression:
		return "Empty expression"
	case KindMultipleOperators:
		return "Multiple operators detected"
	case KindNoOperatorFound:
		return "No operator found"
	case KindInvalidOperatorPosition:
		return "Invalid operator position"
	case KindInvalidNumber:
		return "Invalid number: " + e.Text
	case KindDivisionByZero:
		return "Cannot divide by zero"
	case KindInvalidOperator:
		return "Invalid operator"
	case KindNone:
		return "no error"
	default:
		return "Calculation error"
	}
}

// Is matches another *EvalError of the same kind.
func (e *EvalError) Is(target error) bool {
	var t *EvalError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// NewInvalidNumber returns an InvalidNumber error for the given operand text.
func NewInvalidNumber(text string) *EvalError {
	return &EvalError{Kind: KindInvalidNumber, Text: text}
}

// KindOf returns the ErrorKind carried by err, or KindNone.
func KindOf(err error) ErrorKind {
	var e *EvalError
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}
