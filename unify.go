// Package lean is the public façade over the higher-order unification
// engine (package engine): it plays the role package prolog plays over
// engine.VM, wiring construction-time options, request-scoped logging, and
// the pull-driven Solutions iterator on top of the engine's driver loop.
package lean

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/SCKelemen/lean/engine"
	"github.com/SCKelemen/lean/term"
)

// Unify wraps the engine's driver loop (spec.md §6's
// unify(env, constraints[], name_gen, plugin, use_exception, max_steps))
// into a lazily pulled Solutions sequence. choice may be nil if no
// Constraint submitted is a Choice constraint.
//
// Every call is tagged with a fresh request UUID threaded through the
// returned context's logging fields (engine.RequestID), so a long-running
// backtracking search can be correlated across log lines the way the
// teacher's engine.VM correlates trace lines per query.
func Unify(
	ctx context.Context,
	env engine.Environment,
	constraints []engine.Constraint,
	names engine.NameGenerator,
	plugin engine.Plugin,
	choice engine.ChoiceGenerator,
	tc engine.TypeChecker,
	opts ...engine.Option,
) (*Solutions, context.Context) {
	reqID := uuid.NewString()
	ctx = engine.WithRequestID(ctx, reqID)
	logrus.WithFields(logrus.Fields{
		"request_id":  reqID,
		"constraints": len(constraints),
	}).Debug("unify: starting")

	cfg := engine.NewConfig(opts...)
	eng := engine.New(env, names, tc, plugin, choice, constraints, cfg)
	return &Solutions{eng: eng, ctx: ctx}, ctx
}

// UnifyPair is the convenience form spec.md §6 names for a single (lhs,
// rhs) pair: it first asks the type checker whether the two sides are
// already definitionally equal (short-circuiting the engine entirely on
// success), then falls back to the simple side-effect-free unifier before
// ever constructing an Engine, since neither of those two cheap checks
// needs the full case-split machinery.
func UnifyPair(
	ctx context.Context,
	env engine.Environment,
	names engine.NameGenerator,
	plugin engine.Plugin,
	choice engine.ChoiceGenerator,
	tc engine.TypeChecker,
	lhs, rhs term.Term,
	opts ...engine.Option,
) (*Solutions, context.Context, error) {
	if tc != nil {
		eq, err := tc.IsDefEq(ctx, lhs, rhs, nil)
		if err != nil {
			return nil, ctx, err
		}
		if eq {
			s, ctx := Unify(ctx, env, nil, names, plugin, choice, tc, opts...)
			return s, ctx, nil
		}
	}

	if status, _ := engine.UnifySimple(engine.Substitution{}, lhs, rhs, nil); status == engine.SimpleSolved {
		s, ctx := Unify(ctx, env, nil, names, plugin, choice, tc, opts...)
		return s, ctx, nil
	}

	s, ctx := Unify(ctx, env, []engine.Constraint{engine.EqConstraint(lhs, rhs, nil)}, names, plugin, choice, tc, opts...)
	return s, ctx, nil
}
