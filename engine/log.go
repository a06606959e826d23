package engine

import "github.com/sirupsen/logrus"

// fieldsForConstraint builds the structured logging fields the driver loop
// attaches to every dequeue/process/conflict trace line, mirroring the
// teacher's per-instruction logrus.WithFields calls in its dispatch loop.
func fieldsForConstraint(idx cidx, p Priority, c Constraint) logrus.Fields {
	return logrus.Fields{
		"cidx":     idx,
		"priority": p,
		"kind":     c.Kind.String(),
		"c":        c.String(),
	}
}

func fieldsForFrame(f *Frame) logrus.Fields {
	kind := "plugin"
	switch f.Kind {
	case FrameKindChoice:
		kind = "choice"
	case FrameKindHigherOrder:
		kind = "higher_order"
	}
	return logrus.Fields{
		"frame_kind":     kind,
		"assumption_idx": f.AssumptionIdx,
		"alternatives":   len(f.Alternatives),
	}
}
