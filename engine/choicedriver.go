package engine

import (
	"context"

	"github.com/SCKelemen/lean/justification"
)

// processChoice implements spec.md §4.5's choice half: a Constraint tagged
// ConstraintKindChoice names its own generator (falling back to the
// engine-wide one), which is asked for alternatives exactly once per
// constraint — the same single-call, first-applied/rest-framed shape as
// runPlugin.
func (e *Engine) processChoice(ctx context.Context, c Constraint) error {
	gen := c.Generator
	if gen == nil {
		gen = e.choice
	}
	if gen == nil {
		e.conflict = justification.Composite1(justification.Leaf{Payload: &ChoiceExhaustedError{Constraint: c}}, c.Just)
		return nil
	}
	alts, err := gen.Alternatives(ctx, c)
	if err != nil {
		return err
	}
	if len(alts) == 0 {
		e.conflict = justification.Composite1(justification.Leaf{Payload: &ChoiceExhaustedError{Constraint: c}}, c.Just)
		return nil
	}

	toAlternative := func(a ChoiceAlternative) alternative {
		return alternative{assign: a.Assign, residual: a.Residual, just: a.Just}
	}

	if len(alts) == 1 {
		return e.applyAlternative(ctx, withJust(toAlternative(alts[0]), c.Just), e.freshAssumption())
	}

	snap := e.snapshot()
	assumption := e.freshAssumption()
	frame := &Frame{
		Kind:          FrameKindChoice,
		snap:          snap,
		AssumptionIdx: assumption,
		Constraint:    c,
	}
	for _, a := range alts[1:] {
		frame.Alternatives = append(frame.Alternatives, withJust(toAlternative(a), c.Just))
	}
	return e.installFrame(ctx, frame, withJust(toAlternative(alts[0]), c.Just), assumption)
}
