package services

import (
	"errors"
	"strings"
	"unicode"

	"github.com/custodia-labs/abacus/internal/core/domain"
	"github.com/custodia-labs/abacus/internal/core/ports/driving"
	"github.com/custodia-labs/abacus/internal/logger"
)

// Ensure Evaluator implements the interface.
var _ driving.CalculatorService = (*Evaluator)(nil)

// Evaluator evaluates "NUMBER OPERATOR NUMBER" expressions.
// It holds no state and is safe for concurrent use.
type Evaluator struct{}

// NewEvaluator creates a new evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate parses buffer and applies its operator to both operands.
func (e *Evaluator) Evaluate(buffer string) domain.Outcome {
	expr, err := ParseExpression(buffer)
	if err != nil {
		return e.fail(buffer, err)
	}

	left, err := ParseOperand(expr.Left)
	if err != nil {
		return e.fail(buffer, err)
	}
	right, err := ParseOperand(expr.Right)
	if err != nil {
		return e.fail(buffer, err)
	}

	value, err := expr.Operator.Apply(left, right)
	if err != nil {
		return e.fail(buffer, err)
	}

	logger.Debug("evaluate %q = %s", expr.String(), domain.FormatNumber(value))
	return domain.Success(value)
}

func (e *Evaluator) fail(buffer string, err error) domain.Outcome {
	var evalErr *domain.EvalError
	if !errors.As(err, &evalErr) {
		evalErr = domain.ErrInvalidOperator
	}
	logger.Debug("evaluate %q failed: %s", buffer, evalErr.Kind)
	return domain.Failure(evalErr)
}

// ParseExpression strips whitespace from buffer and splits it around its
// single binary operator. A '-' at index 0 is a sign, not an operator.
func ParseExpression(buffer string) (domain.Expression, error) {
	expr := stripWhitespace(buffer)
	if expr == "" {
		return domain.Expression{}, domain.ErrEmptyExpression
	}

	opIndex := -1
	found := false
	for i := 0; i < len(expr); i++ {
		if i == 0 && expr[i] == '-' {
			continue
		}
		if !domain.IsOperator(expr[i]) {
			continue
		}
		if found {
			return domain.Expression{}, domain.ErrMultipleOperators
		}
		opIndex = i
		found = true
	}

	if !found {
		return domain.Expression{}, domain.ErrNoOperatorFound
	}
	if opIndex == 0 || opIndex == len(expr)-1 {
		return domain.Expression{}, domain.ErrInvalidOperatorPosition
	}

	return domain.Expression{
		Left:     expr[:opIndex],
		Operator: domain.Operator(expr[opIndex]),
		Right:    expr[opIndex+1:],
	}, nil
}

// stripWhitespace removes every whitespace rune, including the BOM.
// U+0085 (NEL) is not whitespace here and is kept.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\u0085' {
			return r
		}
		if unicode.IsSpace(r) || r == '\uFEFF' {
			return -1
		}
		return r
	}, s)
}
