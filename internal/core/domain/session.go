package domain

import "time"

// SessionState is the stored form of an input session.
// It lives in memory only; sessions are never persisted across runs.
type SessionState struct {
	// ID uniquely identifies the session.
	ID string

	// Buffer is the raw input text.
	Buffer string

	// Err is the failure of the last evaluation, nil when none.
	Err *EvalError

	// CreatedAt is when the session was opened.
	CreatedAt time.Time

	// UpdatedAt is when the session last handled a token.
	UpdatedAt time.Time
}

// Display returns what the session currently shows.
func (s SessionState) Display() Display {
	d := Display{Buffer: s.Buffer}
	if s.Err != nil {
		d.Error = s.Err.Error()
		d.Kind = s.Err.Kind
	}
	return d
}
