package engine

import (
	"context"

	"github.com/SCKelemen/lean/justification"
)

// runPlugin implements spec.md §4.5's plugin half: a rigid-rigid Eq the
// processor and the type checker's WHNF loop both failed to close is handed
// to the host Plugin. With no alternatives, the constraint is a conflict.
// With one, it's applied directly. With more, the first is applied under a
// fresh assumption and the rest become a FrameKindPlugin case-split frame.
func (e *Engine) runPlugin(ctx context.Context, c Constraint) error {
	if e.plugin == nil {
		e.conflict = justification.Composite1(justification.Leaf{Payload: &PluginExhaustedError{Constraint: c}}, c.Just)
		return nil
	}
	alts, err := e.plugin.Alternatives(ctx, c)
	if err != nil {
		return err
	}
	if len(alts) == 0 {
		e.conflict = justification.Composite1(justification.Leaf{Payload: &PluginExhaustedError{Constraint: c}}, c.Just)
		return nil
	}

	toAlternative := func(a PluginAlternative) alternative {
		return alternative{assign: a.Assign, residual: a.Residual, just: a.Just}
	}

	if len(alts) == 1 {
		return e.applyAlternative(ctx, withJust(toAlternative(alts[0]), c.Just), e.freshAssumption())
	}

	snap := e.snapshot()
	assumption := e.freshAssumption()
	frame := &Frame{
		Kind:          FrameKindPlugin,
		snap:          snap,
		AssumptionIdx: assumption,
		Constraint:    c,
	}
	for _, a := range alts[1:] {
		frame.Alternatives = append(frame.Alternatives, withJust(toAlternative(a), c.Just))
	}
	return e.installFrame(ctx, frame, withJust(toAlternative(alts[0]), c.Just), assumption)
}

func withJust(a alternative, j justification.Justification) alternative {
	a.just = justification.Composite1(a.just, j)
	return a
}
