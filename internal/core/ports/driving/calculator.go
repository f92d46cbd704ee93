package driving

import "github.com/custodia-labs/abacus/internal/core/domain"

// CalculatorService evaluates two-operand expressions.
type CalculatorService interface {
	// Evaluate parses and computes the buffer.
	// It never panics and never returns both a value and an error.
	Evaluate(buffer string) domain.Outcome
}
