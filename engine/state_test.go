package engine

import (
	"context"
	"testing"

	"github.com/SCKelemen/lean/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineNextSolvesASingleSimpleConstraint(t *testing.T) {
	m := mvar("m")
	x := local(1, "x")
	e := newTestEngine(nil, nil, nil, EqConstraint(term.FoldApp(m, x), x, nil))

	sub, ok, err := e.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	v, _, assigned := sub.TermOf(m)
	require.True(t, assigned)
	assert.Equal(t, &term.Lambda{Name: "x", Body: term.BVar{Idx: 0}}, v)
}

func TestEngineNextReportsExhaustionAfterFirstSolution(t *testing.T) {
	e := newTestEngine(nil, nil, nil, EqConstraint(local(1, "x"), local(1, "x"), nil))

	_, ok, err := e.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = e.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEngineNextReturnsUnificationFailureError(t *testing.T) {
	e := newTestEngine(nil, nil, nil, EqConstraint(local(1, "x"), local(2, "y"), nil))

	_, ok, err := e.Next(context.Background())
	assert.False(t, ok)
	assert.Error(t, err)
	var uf *UnificationFailureError
	assert.ErrorAs(t, err, &uf)
}

func TestEngineNextWithoutExceptionsReturnsNoError(t *testing.T) {
	e := New(nil, &counterNames{}, &stubChecker{}, nil, nil,
		[]Constraint{EqConstraint(local(1, "x"), local(2, "y"), nil)},
		NewConfig(WithExceptions(false)))

	_, ok, err := e.Next(context.Background())
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestEngineNextRespectsStepBudget(t *testing.T) {
	e := New(nil, &counterNames{}, &stubChecker{}, nil, nil,
		[]Constraint{EqConstraint(local(1, "x"), local(2, "y"), nil)},
		NewConfig(WithMaxSteps(0)))

	_, _, err := e.Next(context.Background())
	var budget *StepBudgetExceededError
	assert.ErrorAs(t, err, &budget)
}

func TestEngineNextRespectsContextCancellation(t *testing.T) {
	e := newTestEngine(nil, nil, nil, EqConstraint(local(1, "x"), local(2, "y"), nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := e.Next(ctx)
	var interrupted *InterruptedError
	assert.ErrorAs(t, err, &interrupted)
}
