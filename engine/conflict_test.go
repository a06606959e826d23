package engine

import (
	"context"
	"testing"

	"github.com/SCKelemen/lean/justification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConflictNilConflictIsTriviallyTrue(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	assert.True(t, e.resolveConflict(context.Background()))
}

func TestResolveConflictEmptyStackFails(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	e.conflict = justification.Assumption{Idx: 0}
	assert.False(t, e.resolveConflict(context.Background()))
}

func TestResolveConflictSkipsUnrelatedFrame(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	unrelated := &Frame{AssumptionIdx: 5}
	e.stack = e.stack.Push(unrelated)
	e.conflict = justification.Assumption{Idx: 99}

	assert.False(t, e.resolveConflict(context.Background()))
	assert.True(t, e.stack.Empty(), "an unrelated frame is popped, not retried")
}

func TestResolveConflictTriesNextAlternativeOnMatchingFrame(t *testing.T) {
	m := mvar("m")
	e := newTestEngine(nil, nil, nil)
	snap := e.snapshot()
	frame := &Frame{
		Kind:          FrameKindHigherOrder,
		snap:          snap,
		AssumptionIdx: 0,
		Alternatives: []alternative{
			{assign: []Assignment{{TermMVar: m, Term: local(1, "x")}}},
		},
	}
	e.stack = e.stack.Push(frame)
	e.conflict = justification.Assumption{Idx: 0}

	ok := e.resolveConflict(context.Background())
	require.True(t, ok)
	assert.Nil(t, e.conflict)
	assert.True(t, e.sub.IsTermAssigned(m))
	assert.False(t, e.stack.Empty(), "the frame stays on the stack until its own alternatives run out")
}

func TestResolveConflictPopsExhaustedFrameAndKeepsWalking(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	inner := &Frame{AssumptionIdx: 1}
	outer := &Frame{
		AssumptionIdx: 0,
		Alternatives: []alternative{
			{assign: []Assignment{{TermMVar: mvar("m"), Term: local(1, "x")}}},
		},
	}
	e.stack = e.stack.Push(outer).Push(inner)
	e.conflict = justification.Composite1(justification.Assumption{Idx: 0}, justification.Assumption{Idx: 1})

	ok := e.resolveConflict(context.Background())
	require.True(t, ok)
	frame, has := e.stack.Top()
	require.True(t, has)
	assert.Same(t, outer, frame)
}

func TestResolveConflictExhaustsEntireStack(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	e.stack = e.stack.Push(&Frame{AssumptionIdx: 0}).Push(&Frame{AssumptionIdx: 1})
	e.conflict = justification.Composite1(justification.Assumption{Idx: 0}, justification.Assumption{Idx: 1})

	assert.False(t, e.resolveConflict(context.Background()))
	assert.True(t, e.stack.Empty())
}

func TestResolveConflictRetryPopsThenPushesChecker(t *testing.T) {
	tc := &stubChecker{}
	m := mvar("m")
	e := newTestEngine(tc, nil, nil)
	snap := e.snapshot()
	frame := &Frame{
		Kind:          FrameKindHigherOrder,
		snap:          snap,
		AssumptionIdx: 0,
		Alternatives: []alternative{
			{assign: []Assignment{{TermMVar: m, Term: local(1, "x")}}},
		},
	}
	e.stack = e.stack.Push(frame)
	e.conflict = justification.Assumption{Idx: 0}

	require.True(t, e.resolveConflict(context.Background()))
	assert.Equal(t, 1, tc.pops, "the abandoned branch's checkpoint is popped before retrying")
	assert.Equal(t, 1, tc.pushes, "the retried alternative gets its own fresh checkpoint")
}

func TestResolveConflictExhaustedFramePopsCheckerOnce(t *testing.T) {
	tc := &stubChecker{}
	e := newTestEngine(tc, nil, nil)
	e.stack = e.stack.Push(&Frame{AssumptionIdx: 0}).Push(&Frame{AssumptionIdx: 1})
	e.conflict = justification.Composite1(justification.Assumption{Idx: 0}, justification.Assumption{Idx: 1})

	assert.False(t, e.resolveConflict(context.Background()))
	assert.Equal(t, 2, tc.pops, "both exhausted frames pop their checkpoint on the way out")
	assert.Equal(t, 0, tc.pushes)
}
