package domain

// Outcome is the result of evaluating an expression.
// Exactly one of Value (when Err is nil) or Err is meaningful.
type Outcome struct {
	// Value is the computed result. Zero when Err is set.
	Value float64

	// Err is the evaluation failure, nil on success.
	Err *EvalError
}

// Success returns a successful outcome.
func Success(v float64) Outcome {
	return Outcome{Value: v}
}

// Failure returns a failed outcome.
func Failure(err *EvalError) Outcome {
	return Outcome{Err: err}
}

// OK reports whether the evaluation succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Kind returns the error kind, KindNone on success.
func (o Outcome) Kind() ErrorKind {
	if o.Err == nil {
		return KindNone
	}
	return o.Err.Kind
}

// Error returns the failure as an error, or nil.
// It avoids the typed-nil pitfall of returning o.Err directly.
func (o Outcome) Error() error {
	if o.Err == nil {
		return nil
	}
	return o.Err
}

// Display is what an input session shows after handling a token.
type Display struct {
	// Buffer is the current input text.
	Buffer string `json:"buffer"`

	// Error is the message shown alongside the buffer, empty when none.
	Error string `json:"error,omitempty"`

	// Kind classifies Error.
	Kind ErrorKind `json:"-"`
}

// HasError reports whether an error message is shown.
func (d Display) HasError() bool {
	return d.Error != ""
}

// String renders the value with FormatNumber, or the error message.
func (o Outcome) String() string {
	if o.Err != nil {
		return o.Err.Error()
	}
	return FormatNumber(o.Value)
}
