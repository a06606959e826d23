package engine

import (
	"github.com/SCKelemen/lean/internal/rbtree"
	"github.com/SCKelemen/lean/justification"
	"github.com/SCKelemen/lean/term"
)

type assignedTerm struct {
	value term.Term
	just  justification.Justification
}

type assignedLevel struct {
	value term.Level
	just  justification.Justification
}

// Substitution is the engine's persistent metavariable store: a mapping
// from metavariable name to (value, justification), spec.md §3. It is a
// plain immutable value: every mutating-looking method returns a new
// Substitution that shares the unaffected half of the tree with its
// parent, via rbtree.Map's copy-on-write Snapshot. Case-split frames close
// over a Substitution value directly instead of needing an explicit
// checkpoint/restore pair.
type Substitution struct {
	terms  rbtree.Map[string, assignedTerm]
	levels rbtree.Map[string, assignedLevel]
}

// AssignTerm returns a Substitution identical to s except that mv now maps
// to (t, j). Re-assigning an already-assigned metavariable overwrites
// silently; neither this method nor assignTerm (assign.go) checks for a
// prior assignment.
func (s Substitution) AssignTerm(mv *term.MVar, t term.Term, j justification.Justification) Substitution {
	next := s.terms.Snapshot()
	next.Set(mv.Name, assignedTerm{value: t, just: j})
	return Substitution{terms: next, levels: s.levels}
}

func (s Substitution) AssignLevel(mv *term.LMVar, l term.Level, j justification.Justification) Substitution {
	next := s.levels.Snapshot()
	next.Set(mv.Name, assignedLevel{value: l, just: j})
	return Substitution{terms: s.terms, levels: next}
}

func (s Substitution) TermOf(mv *term.MVar) (term.Term, justification.Justification, bool) {
	a, ok := s.terms.Get(mv.Name)
	return a.value, a.just, ok
}

func (s Substitution) LevelOf(mv *term.LMVar) (term.Level, justification.Justification, bool) {
	a, ok := s.levels.Get(mv.Name)
	return a.value, a.just, ok
}

func (s Substitution) IsTermAssigned(mv *term.MVar) bool {
	_, _, ok := s.TermOf(mv)
	return ok
}

func (s Substitution) IsLevelAssigned(mv *term.LMVar) bool {
	_, _, ok := s.LevelOf(mv)
	return ok
}

// AssignedTermNames lists every metavariable name this substitution has a
// term assignment for, in key order. A host scanning a solution out of the
// engine (lean.Solutions.Scan) uses this to enumerate what to read, since
// the substitution itself has no notion of "the metavariables the caller
// cares about" — only of what has been assigned.
func (s Substitution) AssignedTermNames() []string {
	var names []string
	s.terms.ForEach(func(k string, _ assignedTerm) {
		names = append(names, k)
	})
	return names
}

// InstantiateResult is instantiate_metavars' return shape (spec.md §3):
// the substituted term, a justification composed from every assignment
// consulted along the way, and every metavariable still unassigned that
// was encountered. The occurrence index is not fed from this set:
// enqueueing records occurrences from the constraint's own shape
// (recordOccurrences in state.go).
type InstantiateResult struct {
	Term        term.Term
	Level       term.Level
	Just        justification.Justification
	Unassigned  []*term.MVar
	LevelsUnset []*term.LMVar
}

// InstantiateMVars replaces every assigned metavariable in t with its
// substitution value, recursing into the result so chains of assignments
// (m1 := f(m2), m2 := a) resolve in one pass, and reports what it saw.
func (s Substitution) InstantiateMVars(t term.Term) InstantiateResult {
	var r InstantiateResult
	r.Term = s.instantiate(t, &r)
	return r
}

func (s Substitution) instantiate(t term.Term, r *InstantiateResult) term.Term {
	switch t := t.(type) {
	case *term.MVar:
		v, j, ok := s.TermOf(t)
		if !ok {
			r.Unassigned = append(r.Unassigned, t)
			return t
		}
		r.Just = justification.Composite1(r.Just, j)
		return s.instantiate(v, r)
	case *term.App:
		return &term.App{Fn: s.instantiate(t.Fn, r), Arg: s.instantiate(t.Arg, r)}
	case *term.Lambda:
		return &term.Lambda{Name: t.Name, Info: t.Info, Domain: s.instantiate(t.Domain, r), Body: s.instantiate(t.Body, r)}
	case *term.Pi:
		return &term.Pi{Name: t.Name, Info: t.Info, Domain: s.instantiate(t.Domain, r), Body: s.instantiate(t.Body, r)}
	case term.Sort:
		return term.Sort{Level: s.instantiateLevel(t.Level, r)}
	case term.Const:
		if len(t.Levels) == 0 {
			return t
		}
		levels := make([]term.Level, len(t.Levels))
		for i, l := range t.Levels {
			levels[i] = s.instantiateLevel(l, r)
		}
		return term.Const{Name: t.Name, Levels: levels}
	case *term.Local:
		if t.Type == nil {
			return t
		}
		return &term.Local{ID: t.ID, Name: t.Name, Type: s.instantiate(t.Type, r)}
	case *term.Macro:
		children := make([]term.Term, len(t.Children))
		for i, c := range t.Children {
			children[i] = s.instantiate(c, r)
		}
		return &term.Macro{Tag: t.Tag, Children: children}
	default:
		return t
	}
}

// InstantiateLevelMVars is InstantiateMVars' level-universe counterpart.
func (s Substitution) InstantiateLevelMVars(l term.Level) InstantiateResult {
	var r InstantiateResult
	r.Level = s.instantiateLevel(l, &r)
	return r
}

func (s Substitution) instantiateLevel(l term.Level, r *InstantiateResult) term.Level {
	switch l := l.(type) {
	case *term.LMVar:
		v, j, ok := s.LevelOf(l)
		if !ok {
			r.LevelsUnset = append(r.LevelsUnset, l)
			return l
		}
		r.Just = justification.Composite1(r.Just, j)
		return s.instantiateLevel(v, r)
	case term.LSucc:
		return term.LSucc{Of: s.instantiateLevel(l.Of, r)}
	case term.LMax:
		return term.LMax{A: s.instantiateLevel(l.A, r), B: s.instantiateLevel(l.B, r)}
	case term.LIMax:
		return term.LIMax{A: s.instantiateLevel(l.A, r), B: s.instantiateLevel(l.B, r)}
	default:
		return l
	}
}
