package engine

import (
	"context"

	"github.com/SCKelemen/lean/justification"
	"github.com/SCKelemen/lean/term"
)

// sink returns the ConstraintSink the engine passes into every TypeChecker
// call: anything the checker pushes back (spec.md §9's mutually-recursive
// callback) goes through enqueueConstraint exactly like a fresh user
// constraint.
func (e *Engine) sink() ConstraintSink {
	return func(c Constraint) { e.enqueueConstraint(c) }
}

// assignTerm implements spec.md §4.3: write (v, j) into the substitution,
// check v's inferred type against ?m's declared type through the type
// checker, then re-awaken every constraint indexed under ?m.
func (e *Engine) assignTerm(ctx context.Context, m *term.MVar, v term.Term, j justification.Justification) error {
	e.sub = e.sub.AssignTerm(m, v, j)
	if m.Type != nil {
		ty, err := e.tc.Infer(ctx, v)
		if err != nil {
			return err
		}
		if ty != nil {
			ok, err := e.tc.IsDefEq(ctx, ty, m.Type, e.sink())
			if err != nil {
				return err
			}
			if !ok {
				e.conflict = justification.Composite1(justification.Leaf{Payload: EqConstraint(ty, m.Type, nil)}, j)
				return nil
			}
		}
	}
	return e.reawaken(ctx, e.occ.TermMVarOccurrences(m.Name))
}

// assignLevel is assignTerm's level counterpart; universe metavariables
// carry no declared type to check against.
func (e *Engine) assignLevel(ctx context.Context, m *term.LMVar, v term.Level, j justification.Justification) error {
	e.sub = e.sub.AssignLevel(m, v, j)
	return e.reawaken(ctx, e.occ.LevelMVarOccurrences(m.Name))
}

// reawaken dequeues and reprocesses every still-queued constraint named by
// idxs, in order, stopping early (without error) the moment a conflict is
// set — the caller's own loop (processEntry's caller in state.go) is
// responsible for noticing e.conflict and invoking conflict resolution.
func (e *Engine) reawaken(ctx context.Context, idxs []cidx) error {
	for _, idx := range idxs {
		entry, ok := e.queue.Get(idx)
		if !ok {
			continue
		}
		e.queue = e.queue.Remove(idx)
		if err := e.processEntry(ctx, entry); err != nil {
			return err
		}
		if e.conflict != nil {
			return nil
		}
	}
	return nil
}
