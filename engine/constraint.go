package engine

import (
	"fmt"

	"github.com/SCKelemen/lean/justification"
	"github.com/SCKelemen/lean/term"
)

// ConstraintKind discriminates the shape of a Constraint's payload,
// matching spec.md §3's tagged variant exactly: Eq, LevelEq, Choice. A
// plugin is never itself a queued constraint kind — it is invoked
// procedurally against a rigid-rigid Eq the processor could not solve
// (§4.5), not enqueued as its own variant.
type ConstraintKind uint8

const (
	ConstraintKindEq ConstraintKind = iota
	ConstraintKindLevelEq
	ConstraintKindChoice
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintKindEq:
		return "eq"
	case ConstraintKindLevelEq:
		return "level_eq"
	case ConstraintKindChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// Constraint is one unit of unification work: a term equation, a level
// equation, or a choice point.
type Constraint struct {
	Kind ConstraintKind

	// ConstraintKindEq
	LHS, RHS term.Term

	// ConstraintKindLevelEq
	LLHS, LRHS term.Level

	// ConstraintKindChoice: Meta is the target metavariable (as a term),
	// Delayed picks the initial priority band, and Generator is consulted
	// lazily the first time this constraint reaches the front of the queue.
	Meta      term.Term
	Delayed   bool
	Generator ChoiceGenerator

	Just justification.Justification
}

func EqConstraint(lhs, rhs term.Term, just justification.Justification) Constraint {
	return Constraint{Kind: ConstraintKindEq, LHS: lhs, RHS: rhs, Just: just}
}

func LevelEqConstraint(lhs, rhs term.Level, just justification.Justification) Constraint {
	return Constraint{Kind: ConstraintKindLevelEq, LLHS: lhs, LRHS: rhs, Just: just}
}

func ChoiceConstraint(meta term.Term, gen ChoiceGenerator, delayed bool, just justification.Justification) Constraint {
	return Constraint{Kind: ConstraintKindChoice, Meta: meta, Generator: gen, Delayed: delayed, Just: just}
}

func (c Constraint) String() string {
	switch c.Kind {
	case ConstraintKindEq:
		return fmt.Sprintf("%s =?= %s", c.LHS, c.RHS)
	case ConstraintKindLevelEq:
		return fmt.Sprintf("%s =?= %s", c.LLHS, c.LRHS)
	default:
		return fmt.Sprintf("choice(%s)", c.Meta)
	}
}

// Priority partitions the constraint space into three bands, matching
// spec.md's "normal / delayed / very-delayed" classes. Constraints within a
// band are still ordered by cidx; the band only decides which queue segment
// the processor drains first.
type Priority int

const (
	// PriorityNormal constraints are ready to attempt immediately.
	PriorityNormal Priority = 0
	// PriorityDelayed constraints wait for at least one more metavariable
	// to be solved before another attempt is worthwhile (e.g. a max/imax
	// level equation the level sub-unifier cannot peel). Range chosen to
	// leave the normal band plenty of headroom.
	PriorityDelayed Priority = 1 << 28
	// PriorityVeryDelayed constraints are speculative fallbacks (e.g. a
	// flex-flex pairing re-queued after every other constraint has
	// stabilized) that should only be reconsidered once nothing else in
	// the queue can make progress.
	PriorityVeryDelayed Priority = 1 << 30
)

// cidx is a monotonically increasing constraint sequence number. It breaks
// ties within a priority band (FIFO within band) and is what Assignment
// re-awakening and the occurrence index key on.
type cidx = int

// ConstraintEntry is a Constraint as stored in the queue: tagged with its
// cidx and the priority band it was enqueued at. Re-awakening does not
// change an entry's band: reawaken (assign.go) removes the entry from the
// queue and processes it at once.
type ConstraintEntry struct {
	Cidx       cidx
	Priority   Priority
	Constraint Constraint
}
