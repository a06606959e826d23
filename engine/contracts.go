// Package engine implements the higher-order unification engine: a
// constraint processor that interleaves pattern unification with
// Huet-style flex-rigid branching, plugin- and choice-point backtracking,
// and a best-effort universe-level sub-unifier. The engine never builds
// terms or decides definitional equality on its own — it consumes those
// facts from a host-supplied TypeChecker and reports back only the
// substitutions it commits to.
package engine

import (
	"context"

	"github.com/SCKelemen/lean/justification"
	"github.com/SCKelemen/lean/term"
)

// NameGenerator mints fresh metavariable and local-constant names during
// imitation and projection branching. A host typically backs this with a
// monotonic counter or a UUID source; see cmd/leanunify for the former.
type NameGenerator interface {
	FreshMVarName(hint string) string
	FreshLocalID() uint64
}

// ConstraintSink receives constraints that a TypeChecker call produces as a
// side effect of deciding definitional equality (e.g. deferred universe
// constraints, or a residual equation the checker could not discharge
// itself). The engine passes its own sink into every TypeChecker call
// rather than have TypeChecker hold a reference constructed before the
// engine exists.
type ConstraintSink func(Constraint)

// TypeChecker is the opaque external collaborator the engine defers to for
// everything term-shaped: inference, definitional equality, and weak-head
// normalization. The engine treats it as a black box with an undo log —
// Push/Pop bracket a case-split branch so the checker's own state (elaborated
// metavariable assignments, delayed checks, ...) rolls back in lockstep with
// the engine's own substitution.
type TypeChecker interface {
	Infer(ctx context.Context, t term.Term) (term.Term, error)
	IsDefEq(ctx context.Context, a, b term.Term, sink ConstraintSink) (bool, error)
	WHNF(ctx context.Context, t term.Term) (term.Term, error)
	Push(ctx context.Context) error
	Pop(ctx context.Context) error
}

// Environment exposes the global declarations (constants, their types and
// unfoldings). New stores it on the Engine; no engine code calls its
// methods, and imitation of a Const head does not consult it.
type Environment interface {
	ConstType(name string) (term.Term, bool)
	ConstValue(name string) (term.Term, bool)
}

// Plugin supplies alternatives for a rigid-rigid Eq constraint the
// processor could not solve on its own (spec.md §4.5): host-defined
// unification hooks (e.g. coercions, unit-decidable instance resolution)
// that don't fit pattern unification or flex-rigid branching. Alternatives
// is called once per constraint; the returned slice is stored in the
// case-split frame, which hands out the remaining entries in order.
type Plugin interface {
	Alternatives(ctx context.Context, c Constraint) ([]PluginAlternative, error)
}

// PluginAlternative is one branch a Plugin offers for a plugin constraint:
// committing to it means applying Assign and enqueueing Residual.
type PluginAlternative struct {
	Assign   []Assignment
	Residual []Constraint
	Just     justification.Justification
}

// ChoiceGenerator supplies alternatives for a Constraint tagged
// ConstraintKindChoice: open-ended search points the host wants the engine's
// backtracking machinery to drive (e.g. "try these instances in order").
type ChoiceGenerator interface {
	Alternatives(ctx context.Context, c Constraint) ([]ChoiceAlternative, error)
}

// ChoiceAlternative is one branch a ChoiceGenerator offers.
type ChoiceAlternative struct {
	Assign   []Assignment
	Residual []Constraint
	Just     justification.Justification
}

// Assignment pairs a metavariable with the term or level it is bound to.
// Exactly one of Term/Level is set, matching the metavariable's kind.
type Assignment struct {
	TermMVar  *term.MVar
	Term      term.Term
	LevelMVar *term.LMVar
	Level     term.Level
	Just      justification.Justification
}
