package lean

import "github.com/SCKelemen/lean/engine"

// The driver-level error kinds are defined in engine (StepBudgetExceededError,
// InterruptedError, UnificationFailureError, PluginExhaustedError,
// ChoiceExhaustedError); Unify propagates them unchanged rather than
// wrapping them in a root-package-specific type, per spec.md §7's "Plugin /
// choice / type-checker errors — propagated unchanged".
//
// These aliases let a caller write lean.UnificationFailureError instead of
// reaching into the engine package directly, the same way the teacher's
// root package re-exports engine.Exception-flavored errors under package
// prolog.
type (
	StepBudgetExceededError = engine.StepBudgetExceededError
	InterruptedError        = engine.InterruptedError
	UnificationFailureError = engine.UnificationFailureError
	PluginExhaustedError    = engine.PluginExhaustedError
	ChoiceExhaustedError    = engine.ChoiceExhaustedError
)
