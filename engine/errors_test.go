package engine

import (
	"errors"
	"testing"

	"github.com/SCKelemen/lean/justification"
	"github.com/stretchr/testify/assert"
)

func TestStepBudgetExceededError(t *testing.T) {
	err := &StepBudgetExceededError{MaxSteps: 64}
	assert.Contains(t, err.Error(), "64")
}

func TestInterruptedErrorUnwraps(t *testing.T) {
	cause := errors.New("context canceled")
	err := &InterruptedError{Cause: cause}
	assert.Contains(t, err.Error(), cause.Error())
	assert.ErrorIs(t, err, cause)
}

func TestUnificationFailureError(t *testing.T) {
	j := justification.Assumption{Idx: 3}
	err := &UnificationFailureError{Conflict: j}
	assert.Contains(t, err.Error(), j.String())
}

func TestPluginExhaustedError(t *testing.T) {
	c := EqConstraint(mvar("a"), mvar("b"), nil)
	err := &PluginExhaustedError{Constraint: c}
	assert.Contains(t, err.Error(), c.String())
}

func TestChoiceExhaustedError(t *testing.T) {
	c := EqConstraint(mvar("a"), mvar("b"), nil)
	err := &ChoiceExhaustedError{Constraint: c}
	assert.Contains(t, err.Error(), c.String())
}
