package services

import (
	"unicode/utf8"

	"github.com/custodia-labs/abacus/internal/core/domain"
	"github.com/custodia-labs/abacus/internal/core/ports/driving"
)

// InputSession owns one input buffer and dispatches keypad tokens to it.
// It is not safe for concurrent use; SessionManager serialises access.
type InputSession struct {
	calc   driving.CalculatorService
	buffer string
	err    *domain.EvalError
}

// NewInputSession creates an empty session.
// If calc is nil, a default Evaluator is used.
func NewInputSession(calc driving.CalculatorService) *InputSession {
	if calc == nil {
		calc = NewEvaluator()
	}
	return &InputSession{calc: calc}
}

// RestoreInputSession recreates a session from its stored state.
func RestoreInputSession(calc driving.CalculatorService, state domain.SessionState) *InputSession {
	s := NewInputSession(calc)
	s.buffer = state.Buffer
	s.err = state.Err
	return s
}

// Press handles one token and returns the resulting display.
// Any press clears the previous error message first.
func (s *InputSession) Press(token string) domain.Display {
	s.err = nil

	switch token {
	case domain.TokenClear:
		s.buffer = ""
	case domain.TokenBackspace:
		if s.buffer != "" {
			_, size := utf8.DecodeLastRuneInString(s.buffer)
			s.buffer = s.buffer[:len(s.buffer)-size]
		}
	case domain.TokenEvaluate:
		s.evaluate()
	default:
		s.buffer += token
	}

	return s.Display()
}

// evaluate runs the calculator on the buffer. A failure clears the buffer
// unless the expression was empty.
func (s *InputSession) evaluate() {
	out := s.calc.Evaluate(s.buffer)
	if out.OK() {
		s.buffer = domain.FormatNumber(out.Value)
		return
	}

	s.err = out.Err
	if out.Kind().ClearsBuffer() {
		s.buffer = ""
	}
}

// Buffer returns the current input text.
func (s *InputSession) Buffer() string {
	return s.buffer
}

// Err returns the last evaluation error, or nil.
func (s *InputSession) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// Display returns what the session currently shows.
func (s *InputSession) Display() domain.Display {
	return domain.SessionState{Buffer: s.buffer, Err: s.err}.Display()
}

// saveTo copies the buffer and error into state.
func (s *InputSession) saveTo(state *domain.SessionState) {
	state.Buffer = s.buffer
	state.Err = s.err
}

// Reset clears the buffer and any error.
func (s *InputSession) Reset() {
	s.buffer = ""
	s.err = nil
}
