package engine

import (
	"fmt"

	"github.com/SCKelemen/lean/justification"
)

// StepBudgetExceededError is returned, whatever Config.UseExceptions says,
// when the driver's step counter passes Config.MaxSteps. It is never retried: the caller asked for a bound and
// the bound was hit.
type StepBudgetExceededError struct {
	MaxSteps int
}

func (e *StepBudgetExceededError) Error() string {
	return fmt.Sprintf("unifier.max_steps exceeded (limit %d)", e.MaxSteps)
}

// InterruptedError wraps the context error observed at the once-per-constraint
// cancellation check (spec.md §5).
type InterruptedError struct {
	Cause error
}

func (e *InterruptedError) Error() string { return fmt.Sprintf("unification interrupted: %v", e.Cause) }
func (e *InterruptedError) Unwrap() error { return e.Cause }

// UnificationFailureError is surfaced when UseExceptions is set and the
// search exhausts every backtracking alternative: it carries the final
// conflict justification so the caller can explain what went wrong.
type UnificationFailureError struct {
	Conflict justification.Justification
}

func (e *UnificationFailureError) Error() string {
	if e.Conflict == nil {
		return "unification failed: no solution"
	}
	return fmt.Sprintf("unification failed: %s", e.Conflict)
}

// PluginExhaustedError reports that a plugin's alternative sequence for a
// constraint was empty on the first pull — spec.md §4.5 treats this as an
// immediate conflict rather than a distinct error kind, but the engine
// still needs a justification-bearing value to set as the conflict.
type PluginExhaustedError struct {
	Constraint Constraint
}

func (e *PluginExhaustedError) Error() string {
	return fmt.Sprintf("plugin produced no alternatives for %s", e.Constraint)
}

// ChoiceExhaustedError is PluginExhaustedError's choice-constraint
// counterpart.
type ChoiceExhaustedError struct {
	Constraint Constraint
}

func (e *ChoiceExhaustedError) Error() string {
	return fmt.Sprintf("choice generator produced no alternatives for %s", e.Constraint)
}
