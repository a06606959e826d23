package engine

import (
	"sort"

	"github.com/SCKelemen/lean/internal/rbtree"
)

// Queue is the persistent constraint queue (spec.md §3). Entries are keyed
// by cidx alone in the underlying tree; the (priority, cidx) ordering that
// decides which entry PopMin returns is a plain sort over a ForEach walk.
type Queue struct {
	tree rbtree.Map[cidx, ConstraintEntry]
	next cidx
}

// Push enqueues c at normal priority, minting a fresh cidx.
func (q Queue) Push(c Constraint) (Queue, cidx) {
	return q.pushAt(c, PriorityNormal)
}

// PushDelayed enqueues c directly into the delayed band, e.g. a level
// equation the level sub-unifier cannot peel yet (processLevelEq).
func (q Queue) PushDelayed(c Constraint) (Queue, cidx) {
	return q.pushAt(c, PriorityDelayed)
}

// PushVeryDelayed enqueues c into the speculative fallback band.
func (q Queue) PushVeryDelayed(c Constraint) (Queue, cidx) {
	return q.pushAt(c, PriorityVeryDelayed)
}

func (q Queue) pushAt(c Constraint, p Priority) (Queue, cidx) {
	idx := q.next
	next := q.tree.Snapshot()
	next.Set(idx, ConstraintEntry{Cidx: idx, Priority: p, Constraint: c})
	return Queue{tree: next, next: idx + 1}, idx
}

// Get looks up idx without removing it.
func (q Queue) Get(idx cidx) (ConstraintEntry, bool) {
	return q.tree.Get(idx)
}

// Remove drops idx from the queue (spec.md §4.3 dequeues an entry once it
// is attempted; a successful attempt never re-enqueues it).
func (q Queue) Remove(idx cidx) Queue {
	entries := q.entriesInOrder()
	next := Queue{next: q.next}
	for _, e := range entries {
		if e.Cidx == idx {
			continue
		}
		next, _ = next.pushExisting(e)
	}
	return next
}

func (q Queue) pushExisting(e ConstraintEntry) (Queue, cidx) {
	next := q.tree.Snapshot()
	next.Set(e.Cidx, e)
	return Queue{tree: next, next: q.next}, e.Cidx
}

// PopMin removes and returns the lowest (priority band, then cidx) entry.
func (q Queue) PopMin() (ConstraintEntry, Queue, bool) {
	entries := q.entriesInOrder()
	if len(entries) == 0 {
		return ConstraintEntry{}, q, false
	}
	head := entries[0]
	return head, q.Remove(head.Cidx), true
}

func (q Queue) entriesInOrder() []ConstraintEntry {
	var entries []ConstraintEntry
	q.tree.ForEach(func(_ cidx, e ConstraintEntry) {
		entries = append(entries, e)
	})
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority < entries[j].Priority
		}
		return entries[i].Cidx < entries[j].Cidx
	})
	return entries
}

// Entries exposes the queue contents in (priority, cidx) order, for
// diagnostics and tests.
func (q Queue) Entries() []ConstraintEntry { return q.entriesInOrder() }

func (q Queue) Len() int {
	n := 0
	q.tree.ForEach(func(cidx, ConstraintEntry) { n++ })
	return n
}
