package engine

import (
	"github.com/SCKelemen/lean/justification"
	"github.com/SCKelemen/lean/term"
)

// SimpleStatus is the three-way result of the side-effect-free simple
// unifier (spec.md §4.1).
type SimpleStatus uint8

const (
	SimpleSolved SimpleStatus = iota
	SimpleFailed
	SimpleUnsupported
)

// UnifySimple attempts pattern unification of lhs and rhs with no access to
// the type checker, occurrence index, or case-split machinery: it either
// fully solves the equation, proves it can never hold, or declines.
func UnifySimple(s Substitution, lhs, rhs term.Term, j justification.Justification) (SimpleStatus, Substitution) {
	if term.Equals(lhs, rhs) {
		return SimpleSolved, s
	}
	if !term.ContainsAnyMeta(lhs) && !term.ContainsAnyMeta(rhs) {
		return SimpleFailed, s
	}
	m, value, status := PatternRule(lhs, rhs)
	if status == SimpleSolved {
		return SimpleSolved, s.AssignTerm(m, value, j)
	}
	return status, s
}

// PatternRule is the pure core of spec.md §4.1 rules 3-4: it tries lhs,
// then rhs, as a simple-meta pattern and reports the candidate assignment
// without touching any Substitution. process_eq_constraint (processor.go)
// uses this directly so that a successful match goes through the full
// assign() machinery (§4.3: type check + re-awakening) rather than a bare
// AssignTerm.
func PatternRule(lhs, rhs term.Term) (m *term.MVar, value term.Term, status SimpleStatus) {
	if m, locals, ok := term.IsSimpleMeta(lhs); ok {
		return matchSimpleMeta(m, locals, rhs)
	}
	if m, locals, ok := term.IsSimpleMeta(rhs); ok {
		return matchSimpleMeta(m, locals, lhs)
	}
	return nil, nil, SimpleUnsupported
}

func matchSimpleMeta(m *term.MVar, locals []*term.Local, rhs term.Term) (*term.MVar, term.Term, SimpleStatus) {
	if term.ContainsMeta(rhs, m) {
		return m, nil, SimpleFailed
	}
	for _, l := range term.FreeLocals(rhs, nil) {
		if !containsLocal(locals, l) {
			return m, nil, SimpleFailed
		}
	}
	return m, term.Abstract(locals, rhs), SimpleSolved
}

func containsLocal(locals []*term.Local, l *term.Local) bool {
	for _, seen := range locals {
		if seen.Equal(l) {
			return true
		}
	}
	return false
}

// UnifySimpleLevel is the level-universe counterpart of UnifySimple (spec.md
// §4.1's "level case"): equality, then successor-peeling in lockstep, then
// the same meta rule with strict-occurs distinguishing Failed from
// Unsupported.
func UnifySimpleLevel(s Substitution, lhs, rhs term.Level, j justification.Justification) (SimpleStatus, Substitution) {
	if term.LevelEquals(lhs, rhs) {
		return SimpleSolved, s
	}
	if !term.LevelContainsAnyMeta(lhs) && !term.LevelContainsAnyMeta(rhs) {
		return SimpleFailed, s
	}
	if lo, lok := term.SuccOf(lhs); lok {
		if ro, rok := term.SuccOf(rhs); rok {
			return UnifySimpleLevel(s, lo, ro, j)
		}
	}
	m, value, status := LevelPatternRule(lhs, rhs)
	if status == SimpleSolved {
		return SimpleSolved, s.AssignLevel(m, value, j)
	}
	return status, s
}

// LevelPatternRule is PatternRule's level counterpart, again pure so
// process_level_eq_constraint can route a match through the engine's full
// level-assign path.
func LevelPatternRule(lhs, rhs term.Level) (m *term.LMVar, value term.Level, status SimpleStatus) {
	if m, ok := lhs.(*term.LMVar); ok {
		return matchSimpleLevelMeta(m, rhs)
	}
	if m, ok := rhs.(*term.LMVar); ok {
		return matchSimpleLevelMeta(m, lhs)
	}
	return nil, nil, SimpleUnsupported
}

func matchSimpleLevelMeta(m *term.LMVar, rhs term.Level) (*term.LMVar, term.Level, SimpleStatus) {
	if isPureSuccChainTo(rhs, m) {
		return m, nil, SimpleFailed
	}
	if term.LevelContainsMeta(rhs, m) {
		return m, nil, SimpleUnsupported
	}
	return m, rhs, SimpleSolved
}

// isPureSuccChainTo reports whether l is exactly succ(succ(...(m))) —
// spec.md's "occurs in the other side strictly (under a succ)", the one
// shape where assigning m to l is unconditionally circular rather than
// merely undecided (e.g. m occurring inside a max arm, where the other arm
// might dominate).
func isPureSuccChainTo(l term.Level, m *term.LMVar) bool {
	switch l := l.(type) {
	case *term.LMVar:
		return l.Equal(m)
	case term.LSucc:
		return isPureSuccChainTo(l.Of, m)
	default:
		return false
	}
}
