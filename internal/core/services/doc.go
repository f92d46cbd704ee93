// Package services implements the driving port interfaces.
// Services contain the core logic and orchestrate
// calls to driven ports (adapters).
//
// The Evaluator and InputSession are pure: no I/O, no goroutines.
package services
