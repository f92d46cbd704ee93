package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrSessionNotFound", ErrSessionNotFound},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrEmptyExpression", ErrEmptyExpression},
		{"ErrMultipleOperators", ErrMultipleOperators},
		{"ErrNoOperatorFound", ErrNoOperatorFound},
		{"ErrInvalidOperatorPosition", ErrInvalidOperatorPosition},
		{"ErrInvalidNumber", ErrInvalidNumber},
		{"ErrDivisionByZero", ErrDivisionByZero},
		{"ErrInvalidOperator", ErrInvalidOperator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestEvalError_Messages(t *testing.T) {
	tests := []struct {
		err      *EvalError
		expected string
	}{
		{ErrEmptyExpression, "Empty expression"},
		{ErrMultipleOperators, "Multiple operators detected"},
		{ErrNoOperatorFound, "No operator found"},
		{ErrInvalidOperatorPosition, "Invalid operator position"},
		{NewInvalidNumber("abc"), "Invalid number: abc"},
		{ErrDivisionByZero, "Cannot divide by zero"},
		{ErrInvalidOperator, "Invalid operator"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestEvalError_IsMatchesKind(t *testing.T) {
	err := NewInvalidNumber("x1")

	assert.True(t, errors.Is(err, ErrInvalidNumber))
	assert.False(t, errors.Is(err, ErrDivisionByZero))
	assert.False(t, errors.Is(err, ErrInvalidInput))

	wrapped := fmt.Errorf("evaluating: %w", ErrDivisionByZero)
	assert.True(t, errors.Is(wrapped, ErrDivisionByZero))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindDivisionByZero, KindOf(ErrDivisionByZero))
	assert.Equal(t, KindInvalidNumber, KindOf(fmt.Errorf("wrap: %w", NewInvalidNumber("a"))))
	assert.Equal(t, KindNone, KindOf(ErrSessionNotFound))
	assert.Equal(t, KindNone, KindOf(nil))
}

func TestErrorKind_ClearsBuffer(t *testing.T) {
	assert.False(t, KindNone.ClearsBuffer())
	assert.False(t, KindEmptyExpression.ClearsBuffer())

	for _, k := range []ErrorKind{
		KindMultipleOperators, KindNoOperatorFound, KindInvalidOperatorPosition,
		KindInvalidNumber, KindDivisionByZero, KindInvalidOperator,
	} {
		assert.True(t, k.ClearsBuffer(), k.String())
	}
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "none", KindNone.String())
	assert.Equal(t, "division_by_zero", KindDivisionByZero.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
}
