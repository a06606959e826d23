package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/SCKelemen/lean/justification"
	"github.com/SCKelemen/lean/term"
)

// Engine is the mutable driver state spec.md §3 describes: everything a
// single unify() call threads through the search. Substitution, Queue, and
// OccurrenceIndex are persistent values, so a case-split frame snapshot is
// just copying these three fields; the Engine struct itself is not
// persistent and is never shared across goroutines.
type Engine struct {
	cfg Config

	env    Environment
	names  NameGenerator
	tc     TypeChecker
	plugin Plugin
	choice ChoiceGenerator

	sub   Substitution
	queue Queue
	occ   OccurrenceIndex
	stack Stack

	conflict       justification.Justification
	err            error
	nextAssumption int
	steps          int
	firstSolution  bool
}

// New builds an Engine primed with the given constraints already enqueued
// through enqueueConstraint (normal priority, or very-delayed for a Choice
// constraint with Delayed set), mirroring spec.md §6's unify(env, constraints[],
// name_gen, plugin, ...) entry point. choice may be nil if the caller never
// submits Choice constraints.
func New(env Environment, names NameGenerator, tc TypeChecker, plugin Plugin, choice ChoiceGenerator, constraints []Constraint, cfg Config) *Engine {
	e := &Engine{
		cfg:           cfg,
		env:           env,
		names:         names,
		tc:            tc,
		plugin:        plugin,
		choice:        choice,
		firstSolution: true,
	}
	for _, c := range constraints {
		e.enqueueConstraint(c)
	}
	return e
}

// enqueueConstraint implements spec.md §4.2's dispatch rule for freshly
// submitted constraints: a Choice constraint's Delayed flag picks its
// initial priority band (normal or very-delayed); every other kind starts
// at normal priority.
func (e *Engine) enqueueConstraint(c Constraint) cidx {
	if c.Kind == ConstraintKindChoice && c.Delayed {
		return e.enqueueVeryDelayed(c)
	}
	return e.enqueueNormal(c)
}

func (e *Engine) enqueueNormal(c Constraint) cidx {
	idx := e.enqueueAt(c, PriorityNormal)
	return idx
}

func (e *Engine) enqueueDelayed(c Constraint) cidx {
	return e.enqueueAt(c, PriorityDelayed)
}

func (e *Engine) enqueueVeryDelayed(c Constraint) cidx {
	return e.enqueueAt(c, PriorityVeryDelayed)
}

func (e *Engine) enqueueAt(c Constraint, p Priority) cidx {
	var q Queue
	var idx cidx
	switch p {
	case PriorityDelayed:
		q, idx = e.queue.PushDelayed(c)
	case PriorityVeryDelayed:
		q, idx = e.queue.PushVeryDelayed(c)
	default:
		q, idx = e.queue.Push(c)
	}
	e.queue = q
	e.recordOccurrences(idx, c)
	return idx
}

// recordOccurrences implements the invariant 2 bookkeeping side of
// enqueueing: every unassigned metavariable mentioned by an Eq/LevelEq
// constraint's current (not necessarily instantiated) shape is indexed
// under its cidx. Choice constraints are opaque payloads and are not
// indexed; they are driven by their own frame machinery (choicedriver.go),
// not by metavariable re-awakening.
func (e *Engine) recordOccurrences(idx cidx, c Constraint) {
	switch c.Kind {
	case ConstraintKindEq:
		for _, m := range termMetasIn(c.LHS, c.RHS) {
			e.occ = e.occ.RecordTermMVar(m.Name, idx)
		}
	case ConstraintKindLevelEq:
		for _, m := range levelMetasIn(c.LLHS, c.LRHS) {
			e.occ = e.occ.RecordLevelMVar(m.Name, idx)
		}
	}
}

func termMetasIn(ts ...term.Term) []*term.MVar {
	var acc []*term.MVar
	for _, t := range ts {
		acc = termMetasWalk(t, acc)
	}
	return acc
}

func termMetasWalk(t term.Term, acc []*term.MVar) []*term.MVar {
	switch t := t.(type) {
	case *term.MVar:
		for _, seen := range acc {
			if seen.Equal(t) {
				return acc
			}
		}
		return append(acc, t)
	case *term.App:
		return termMetasWalk(t.Arg, termMetasWalk(t.Fn, acc))
	case *term.Lambda:
		return termMetasWalk(t.Body, termMetasWalk(t.Domain, acc))
	case *term.Pi:
		return termMetasWalk(t.Body, termMetasWalk(t.Domain, acc))
	case *term.Macro:
		for _, c := range t.Children {
			acc = termMetasWalk(c, acc)
		}
		return acc
	default:
		return acc
	}
}

func levelMetasIn(ls ...term.Level) []*term.LMVar {
	var acc []*term.LMVar
	for _, l := range ls {
		acc = term.LevelMetas(l, acc)
	}
	return acc
}

// freshAssumption mints a fresh assumption index for a newly installed
// case-split branch.
func (e *Engine) freshAssumption() int {
	idx := e.nextAssumption
	e.nextAssumption++
	return idx
}

func (e *Engine) snapshot() snapshot {
	return snapshot{sub: e.sub, queue: e.queue, termOcc: e.occ}
}

func (e *Engine) restore(s snapshot) {
	e.sub, e.queue, e.occ = s.sub, s.queue, s.termOcc
}

// Next implements spec.md §4.7's next(): the single step function the
// public Solutions sequence (../solutions.go) pulls on. It returns
// (substitution, true, nil) for a solution, (_, false, nil) when the
// sequence is exhausted without error, or a non-nil error for a fatal
// condition (step budget, interrupt, or — if UseExceptions — final
// unification failure).
func (e *Engine) Next(ctx context.Context) (Substitution, bool, error) {
	if e.conflict != nil {
		return e.fail()
	}
	if !e.stack.Empty() {
		e.conflict = e.compositeConflictOverLiveAssumptions()
		if !e.resolveConflict(ctx) {
			if e.err != nil {
				err := e.err
				e.err = nil
				return Substitution{}, false, err
			}
			return e.fail()
		}
	} else if e.firstSolution {
		e.firstSolution = false
	} else {
		return Substitution{}, false, nil
	}

	for {
		entry, rest, ok := e.queue.PopMin()
		if !ok {
			return e.sub, true, nil
		}
		e.queue = rest
		logrus.WithFields(fieldsForConstraint(entry.Cidx, entry.Priority, entry.Constraint)).Debug("engine: dequeue")
		if err := e.processEntry(ctx, entry); err != nil {
			return Substitution{}, false, err
		}
		if e.conflict != nil {
			if !e.resolveConflict(ctx) {
				if e.err != nil {
					err := e.err
					e.err = nil
					return Substitution{}, false, err
				}
				return e.fail()
			}
		}
	}
}

func (e *Engine) fail() (Substitution, bool, error) {
	j := e.conflict
	e.conflict = nil
	if e.cfg.UseExceptions {
		return Substitution{}, false, &UnificationFailureError{Conflict: j}
	}
	return Substitution{}, false, nil
}

// compositeConflictOverLiveAssumptions synthesizes the conflict spec.md
// §4.7 step 2 describes: "a composite conflict over all live assumption
// indices", so that conflict resolution is forced to try the next
// alternative of every still-open frame exactly as if each had failed.
func (e *Engine) compositeConflictOverLiveAssumptions() justification.Justification {
	var j justification.Justification
	for _, idx := range e.stack.AssumptionIndices() {
		j = justification.Composite1(j, justification.Assumption{Idx: idx})
	}
	return j
}
