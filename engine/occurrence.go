package engine

import "github.com/SCKelemen/lean/internal/rbtree"

// intSet is a persistent set of cidx values, built on the same tree as
// everything else so it snapshots for free alongside the structures that
// reference it.
type intSet struct {
	tree rbtree.Map[cidx, struct{}]
}

func (s intSet) add(idx cidx) intSet {
	next := s.tree.Snapshot()
	next.Set(idx, struct{}{})
	return intSet{tree: next}
}

func (s intSet) values() []cidx {
	var out []cidx
	s.tree.ForEach(func(idx cidx, _ struct{}) { out = append(out, idx) })
	return out
}

// OccurrenceIndex maps a metavariable name to the set of constraint cidxs
// that mention it, so assigning that metavariable (assign.go) can find
// exactly which delayed constraints to re-awaken instead of rescanning the
// whole queue (spec.md §3, §4.3).
type OccurrenceIndex struct {
	byTermMVar  rbtree.Map[string, intSet]
	byLevelMVar rbtree.Map[string, intSet]
}

func (o OccurrenceIndex) RecordTermMVar(name string, idx cidx) OccurrenceIndex {
	set, _ := o.byTermMVar.Get(name)
	next := o.byTermMVar.Snapshot()
	next.Set(name, set.add(idx))
	return OccurrenceIndex{byTermMVar: next, byLevelMVar: o.byLevelMVar}
}

func (o OccurrenceIndex) RecordLevelMVar(name string, idx cidx) OccurrenceIndex {
	set, _ := o.byLevelMVar.Get(name)
	next := o.byLevelMVar.Snapshot()
	next.Set(name, set.add(idx))
	return OccurrenceIndex{byTermMVar: o.byTermMVar, byLevelMVar: next}
}

func (o OccurrenceIndex) TermMVarOccurrences(name string) []cidx {
	set, ok := o.byTermMVar.Get(name)
	if !ok {
		return nil
	}
	return set.values()
}

func (o OccurrenceIndex) LevelMVarOccurrences(name string) []cidx {
	set, ok := o.byLevelMVar.Get(name)
	if !ok {
		return nil
	}
	return set.values()
}
