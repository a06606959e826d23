package engine

import (
	"context"

	"github.com/SCKelemen/lean/justification"
)

// FrameKind distinguishes the three case-split frame variants spec.md §3
// names: plugin, choice, and higher-order (flex-rigid projection/imitation
// branch alternatives).
type FrameKind uint8

const (
	FrameKindPlugin FrameKind = iota
	FrameKindChoice
	FrameKindHigherOrder
)

// snapshot is the engine state a case-split frame captures at install time
// and restores verbatim when a later alternative is tried. It deliberately
// holds value types (Substitution, Queue, OccurrenceIndex are all
// persistent), so capturing one is the plain struct assignment in
// Engine.snapshot (state.go) — no deep copy required.
type snapshot struct {
	sub       Substitution
	queue     Queue
	termOcc   OccurrenceIndex
	checkTick int
}

// alternative is one branch a case-split frame can still offer: the
// constraints to install and the justification to compose with a fresh
// assumption tag.
type alternative struct {
	assign   []Assignment
	residual []Constraint
	just     justification.Justification
}

// Frame is a single case-split stack entry (spec.md §4.5, §4.6). Alternatives
// is the *remaining* (not-yet-tried) list; the one the frame is currently
// running is not stored here because by the time a conflict walks the
// stack, what matters is only what is left to try.
type Frame struct {
	Kind FrameKind

	snap snapshot

	AssumptionIdx int
	Constraint    Constraint
	Alternatives  []alternative

	// AccumulatedFailure composes every justification returned by a
	// branch of this frame that has already failed, so that when the
	// frame itself gives up, the outer conflict records everything that
	// was tried (spec.md §4.6).
	AccumulatedFailure justification.Justification
}

// Next pulls the next untried alternative off the frame, returning ok=false
// once none remain.
func (f *Frame) Next() (alternative, bool) {
	if len(f.Alternatives) == 0 {
		return alternative{}, false
	}
	a := f.Alternatives[0]
	f.Alternatives = f.Alternatives[1:]
	return a, true
}

// FoldFailure folds j into the frame's accumulated failed-branch
// justification (spec.md §4.6).
func (f *Frame) FoldFailure(j justification.Justification) {
	f.AccumulatedFailure = justification.Composite1(f.AccumulatedFailure, j)
}

// Stack is the case-split stack: a plain slice used top-first (index
// len-1 is top), walked top-to-bottom by conflict resolution.
type Stack []*Frame

func (s Stack) Top() (*Frame, bool) {
	if len(s) == 0 {
		return nil, false
	}
	return s[len(s)-1], true
}

func (s Stack) Push(f *Frame) Stack { return append(s, f) }

func (s Stack) Pop() Stack {
	if len(s) == 0 {
		return s
	}
	return s[:len(s)-1]
}

func (s Stack) Empty() bool { return len(s) == 0 }

// AssumptionIndices lists every live assumption index on the stack, used by
// the driver (state.go) to synthesize a composite "give me another
// solution" conflict when the caller pulls again after a success.
func (s Stack) AssumptionIndices() []int {
	idxs := make([]int, len(s))
	for i, f := range s {
		idxs[i] = f.AssumptionIdx
	}
	return idxs
}

// pushChecker and popChecker bracket a case-split frame's install and
// restore with the type checker's own checkpointing (spec.md §9: push/pop
// paired with case-split install/restore). Both are nil-safe since a host
// whose constraints never need checker-backed defeq checking can run the
// engine without a TypeChecker at all.
func (e *Engine) pushChecker(ctx context.Context) error {
	if e.tc == nil {
		return nil
	}
	return e.tc.Push(ctx)
}

func (e *Engine) popChecker(ctx context.Context) error {
	if e.tc == nil {
		return nil
	}
	return e.tc.Pop(ctx)
}

// installFrame pushes a freshly built case-split frame onto the stack under
// a matching checker push, then applies its first alternative. This is the
// common tail of flexrigid.go's solveFlexRigid, plugindriver.go's
// runPlugin, and choicedriver.go's processChoice once each has decided it
// has more than one branch to offer.
func (e *Engine) installFrame(ctx context.Context, frame *Frame, first alternative, assumption int) error {
	if err := e.pushChecker(ctx); err != nil {
		return err
	}
	e.stack = e.stack.Push(frame)
	return e.applyAlternative(ctx, first, assumption)
}
