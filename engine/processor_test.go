package engine

import (
	"context"
	"testing"

	"github.com/SCKelemen/lean/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEqEqualTermsNoOp(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	err := e.processEq(context.Background(), EqConstraint(local(1, "x"), local(1, "x"), nil))
	require.NoError(t, err)
	assert.Nil(t, e.conflict)
}

func TestProcessEqMetaFreeUnequalConflicts(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	err := e.processEq(context.Background(), EqConstraint(local(1, "x"), local(2, "y"), nil))
	require.NoError(t, err)
	assert.NotNil(t, e.conflict)
}

func TestProcessEqPatternRuleAssigns(t *testing.T) {
	m := mvar("m")
	x := local(1, "x")
	e := newTestEngine(nil, nil, nil)
	err := e.processEq(context.Background(), EqConstraint(term.FoldApp(m, x), x, nil))
	require.NoError(t, err)
	assert.True(t, e.sub.IsTermAssigned(m))
}

func TestProcessEqFlexFlexDefersToVeryDelayed(t *testing.T) {
	// Neither side is a simple pattern (?m applied only to distinct
	// locals): a non-local argument on each side rules out PatternRule,
	// so both remain meta-headed after WHNF and the pair defers.
	m1, m2 := mvar("m1"), mvar("m2")
	lhs := term.FoldApp(m1, term.Const{Name: "c1"})
	rhs := term.FoldApp(m2, term.Const{Name: "c2"})
	e := newTestEngine(nil, nil, nil)
	err := e.processEq(context.Background(), EqConstraint(lhs, rhs, nil))
	require.NoError(t, err)
	assert.Nil(t, e.conflict)
	entries := e.queue.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, PriorityVeryDelayed, entries[0].Priority)
}

func TestProcessEqWHNFChangeDelegatesToIsDefEq(t *testing.T) {
	reduced := term.Const{Name: "reduced"}
	m := mvar("m")
	unreducedHead := func(arg term.Term) term.Term { return &term.App{Fn: term.Const{Name: "unreduced"}, Arg: arg} }
	reducedHead := func(arg term.Term) term.Term { return &term.App{Fn: reduced, Arg: arg} }

	e := newTestEngine(&stubChecker{
		whnf: func(_ context.Context, tm term.Term) (term.Term, error) {
			if app, ok := tm.(*term.App); ok {
				if c, ok := app.Fn.(term.Const); ok && c.Name == "unreduced" {
					return reducedHead(app.Arg), nil
				}
			}
			return tm, nil
		},
	}, nil, nil)

	err := e.processEq(context.Background(), EqConstraint(unreducedHead(m), reducedHead(m), nil))
	require.NoError(t, err)
	assert.Nil(t, e.conflict)
}

func TestProcessEqRigidRigidWithNoWHNFProgressRunsPlugin(t *testing.T) {
	called := false
	plugin := &stubPlugin{alts: []PluginAlternative{{}}}
	e := newTestEngine(&stubChecker{
		isDefEq: func(context.Context, term.Term, term.Term, ConstraintSink) (bool, error) {
			called = true
			return true, nil
		},
	}, plugin, nil)

	lhs := &term.App{Fn: term.Const{Name: "a"}, Arg: mvar("m")}
	rhs := &term.App{Fn: term.Const{Name: "b"}, Arg: mvar("m")}
	err := e.processEq(context.Background(), EqConstraint(lhs, rhs, nil))
	require.NoError(t, err)
	assert.False(t, called, "plugin path should not call IsDefEq itself; that's runPlugin's job via the alternative's own constraints")
	assert.Nil(t, e.conflict)
}

func TestProcessLevelEqPeelsSuccessors(t *testing.T) {
	u := &term.LMVar{Name: "u"}
	e := newTestEngine(nil, nil, nil)
	err := e.processLevelEq(context.Background(), LevelEqConstraint(term.LSucc{Of: u}, term.LSucc{Of: term.LZero{}}, nil))
	require.NoError(t, err)
	assert.True(t, e.sub.IsLevelAssigned(u))
}

func TestProcessLevelEqMetaFreeUnequalConflicts(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	err := e.processLevelEq(context.Background(), LevelEqConstraint(term.LZero{}, term.LParam{Name: "p"}, nil))
	require.NoError(t, err)
	assert.NotNil(t, e.conflict)
}

func TestProcessLevelEqUnsupportedDefersDelayed(t *testing.T) {
	u := &term.LMVar{Name: "u"}
	e := newTestEngine(nil, nil, nil)
	err := e.processLevelEq(context.Background(), LevelEqConstraint(u, term.LMax{A: u, B: term.LParam{Name: "p"}}, nil))
	require.NoError(t, err)
	assert.Nil(t, e.conflict)
	entries := e.queue.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, PriorityDelayed, entries[0].Priority)
}
