package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/SCKelemen/lean/justification"
	"github.com/SCKelemen/lean/term"
)

// processEntry is spec.md §4.2's per-constraint entry point: conflict
// rejection, step-budget/interrupt checks, then dispatch by kind.
func (e *Engine) processEntry(ctx context.Context, entry ConstraintEntry) error {
	if e.conflict != nil {
		return nil
	}
	fields := fieldsForConstraint(entry.Cidx, entry.Priority, entry.Constraint)
	if err := checkInterrupt(ctx); err != nil {
		logrus.WithFields(fields).WithField("steps", e.steps).Warn("engine: interrupted")
		return &InterruptedError{Cause: err}
	}
	e.steps++
	if e.steps > e.cfg.MaxSteps {
		logrus.WithFields(fields).WithField("steps", e.steps).Warn("engine: step budget exceeded")
		return &StepBudgetExceededError{MaxSteps: e.cfg.MaxSteps}
	}

	logrus.WithFields(fields).WithField("steps", e.steps).Debug("engine: dispatch")

	c := entry.Constraint
	switch c.Kind {
	case ConstraintKindChoice:
		return e.processChoice(ctx, c)
	case ConstraintKindLevelEq:
		return e.processLevelEq(ctx, c)
	default:
		return e.processEq(ctx, c)
	}
}

// processEq implements spec.md §4.2's process_eq_constraint.
func (e *Engine) processEq(ctx context.Context, c Constraint) error {
	lr := e.sub.InstantiateMVars(c.LHS)
	rr := e.sub.InstantiateMVars(c.RHS)
	lhs, rhs := lr.Term, rr.Term
	j := justification.Composite1(c.Just, justification.Composite1(lr.Just, rr.Just))

	if term.Equals(lhs, rhs) {
		return nil
	}
	if !term.ContainsAnyMeta(lhs) && !term.ContainsAnyMeta(rhs) {
		e.conflict = justification.Composite1(justification.Leaf{Payload: c}, j)
		return nil
	}
	if m, value, status := PatternRule(lhs, rhs); status != SimpleUnsupported {
		if status == SimpleFailed {
			e.conflict = justification.Composite1(justification.Leaf{Payload: c}, j)
			return nil
		}
		return e.assignTerm(ctx, m, value, j)
	}

	lhs2, err := e.tc.WHNF(ctx, lhs)
	if err != nil {
		return err
	}
	rhs2, err := e.tc.WHNF(ctx, rhs)
	if err != nil {
		return err
	}

	if !term.Equals(lhs2, lhs) || !term.Equals(rhs2, rhs) {
		ok, err := e.tc.IsDefEq(ctx, lhs2, rhs2, e.sink())
		if err != nil {
			return err
		}
		if !ok {
			e.conflict = justification.Composite1(justification.Leaf{Payload: c}, j)
		}
		return nil
	}

	mMeta, mArgs, mIsMeta := term.IsMeta(lhs2)
	rMeta, rArgs, rIsMeta := term.IsMeta(rhs2)
	switch {
	case mIsMeta && rIsMeta:
		e.enqueueVeryDelayed(EqConstraint(lhs2, rhs2, j))
		return nil
	case mIsMeta:
		return e.solveFlexRigid(ctx, mMeta, mArgs, rhs2, j)
	case rIsMeta:
		return e.solveFlexRigid(ctx, rMeta, rArgs, lhs2, j)
	default:
		return e.runPlugin(ctx, EqConstraint(lhs2, rhs2, j))
	}
}

// processLevelEq implements spec.md §4.2's process_level_eq_constraint:
// the same shape as processEq, with normalize + successor-peeling in place
// of WHNF and no flex-rigid solver (the level sub-unifier has none; it
// relies on delayed re-processing, per spec.md §9's open question).
func (e *Engine) processLevelEq(ctx context.Context, c Constraint) error {
	lr := e.sub.InstantiateLevelMVars(c.LLHS)
	rr := e.sub.InstantiateLevelMVars(c.LRHS)
	lhs, rhs := term.Normalize(lr.Level), term.Normalize(rr.Level)
	j := justification.Composite1(c.Just, justification.Composite1(lr.Just, rr.Just))

	if term.LevelEquals(lhs, rhs) {
		return nil
	}
	if !term.LevelContainsAnyMeta(lhs) && !term.LevelContainsAnyMeta(rhs) {
		e.conflict = justification.Composite1(justification.Leaf{Payload: c}, j)
		return nil
	}

	for {
		lo, lok := term.SuccOf(lhs)
		ro, rok := term.SuccOf(rhs)
		if !lok || !rok {
			break
		}
		lhs, rhs = lo, ro
	}

	if m, value, status := LevelPatternRule(lhs, rhs); status != SimpleUnsupported {
		if status == SimpleFailed {
			e.conflict = justification.Composite1(justification.Leaf{Payload: c}, j)
			return nil
		}
		return e.assignLevel(ctx, m, value, j)
	}

	e.enqueueDelayed(LevelEqConstraint(lhs, rhs, j))
	return nil
}
