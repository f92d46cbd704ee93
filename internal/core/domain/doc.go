// Package domain defines the core types for abacus.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Expression: a buffer split around its single operator
//   - Outcome: the success or typed failure of an evaluation
//   - EvalError: a failure carrying its ErrorKind
//   - Display: what an input session shows after a token
//   - AppSettings: theme and MCP limits
//   - ReaperConfig: when idle sessions are closed
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
