package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/SCKelemen/lean/justification"
)

// resolveConflict implements spec.md §4.6: walk the case-split stack
// top-to-bottom looking for a frame whose assumption the current conflict
// actually depends on. The first such frame either offers another
// alternative (restore its snapshot, mint a fresh assumption, apply it) or
// is exhausted (fold the conflict into its accumulated failure, pop it, and
// keep walking with that accumulated failure as the new conflict). A frame
// the conflict doesn't depend on is popped without trying its remaining
// alternatives, and the walk goes on with the conflict unchanged. If an
// applied alternative sets a new conflict, the walk resolves that one too.
// Returns false once the stack is exhausted with no resolution.
func (e *Engine) resolveConflict(ctx context.Context) bool {
	for {
		if e.conflict == nil {
			return true
		}
		frame, ok := e.stack.Top()
		if !ok {
			return false
		}
		logrus.WithFields(fieldsForFrame(frame)).Debug("engine: conflict")
		if !justification.DependsOn(e.conflict, frame.AssumptionIdx) {
			// This frame is not implicated; nothing above it on the stack
			// can be either, since stack order is install order and a
			// conflict only ever names assumptions live at the time it
			// arose. Its own choice was never at fault, so pop it without
			// trying its other alternatives and carry the conflict on
			// unchanged.
			e.stack = e.stack.Pop()
			if err := e.popChecker(ctx); err != nil {
				e.conflict = nil
				e.err = err
				return false
			}
			continue
		}

		next, ok := frame.Next()
		if !ok {
			j := e.conflict
			frame.FoldFailure(j)
			e.conflict = frame.AccumulatedFailure
			e.stack = e.stack.Pop()
			logrus.WithFields(fieldsForFrame(frame)).Debug("engine: frame exhausted")
			if err := e.popChecker(ctx); err != nil {
				e.conflict = nil
				e.err = err
				return false
			}
			continue
		}

		logrus.WithFields(fieldsForFrame(frame)).Debug("engine: backtrack")
		e.restore(frame.snap)
		frame.FoldFailure(e.conflict)
		e.conflict = nil
		if err := e.popChecker(ctx); err != nil {
			e.err = err
			return false
		}
		if err := e.pushChecker(ctx); err != nil {
			e.err = err
			return false
		}
		assumption := e.freshAssumption()
		frame.AssumptionIdx = assumption
		if err := e.applyAlternative(ctx, next, assumption); err != nil {
			e.conflict = nil
			e.err = err
			return false
		}
	}
}
