// Package term is a reference implementation of the typed lambda-calculus
// term and universe-level representation the unification engine operates
// over. It is a plain, non-hash-consed tree; a production host is
// expected to supply its own hash-consed representation implementing the
// same shape predicates the engine pattern-matches on (see UnfoldApp,
// IsSimpleMeta, Abstract).
package term

import "fmt"

// Term is a node of the dependently typed lambda calculus the engine
// unifies over. The concrete implementations are the closed set of
// variants: BVar, Local, Const, Sort, Lambda, Pi, App, MVar, Macro.
type Term interface {
	fmt.Stringer
	isTerm()
}

// BinderInfo annotates how a Pi/Lambda binder should be treated by a
// downstream elaborator. The unifier is indifferent to it but preserves
// it through abstraction and instantiation.
type BinderInfo uint8

const (
	BinderDefault BinderInfo = iota
	BinderImplicit
	BinderStrictImplicit
	BinderInstImplicit
)

// BVar is a bound variable referred to by de Bruijn index (0 = innermost
// enclosing binder).
type BVar struct {
	Idx int
}

func (BVar) isTerm()          {}
func (v BVar) String() string { return fmt.Sprintf("#%d", v.Idx) }

// Local is a named, typed local constant. Two locals denote the same
// variable iff they share an ID; Name is a display hint only.
type Local struct {
	ID   uint64
	Name string
	Type Term
}

func (*Local) isTerm()          {}
func (l *Local) String() string { return l.Name }

// Equal compares locals by identity, not by display name.
func (l *Local) Equal(o *Local) bool { return l != nil && o != nil && l.ID == o.ID }

// Const is a reference to a global declaration, instantiated at a list of
// universe levels.
type Const struct {
	Name   string
	Levels []Level
}

func (Const) isTerm()          {}
func (c Const) String() string { return c.Name }

// Sort is a universe Sort(Level).
type Sort struct {
	Level Level
}

func (Sort) isTerm()          {}
func (s Sort) String() string { return fmt.Sprintf("Sort(%s)", s.Level) }

// Macro is an opaque extension node: a tag plus a list of typed children.
// The engine knows nothing about Tag's semantics beyond shape-matching it
// for imitation.
type Macro struct {
	Tag      string
	Children []Term
}

func (*Macro) isTerm()          {}
func (m *Macro) String() string { return fmt.Sprintf("macro[%s]%v", m.Tag, m.Children) }
