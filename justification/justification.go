// Package justification implements the dependency-proof objects the
// unification engine attaches to every assignment and conflict. A
// Justification records which backtracking assumptions a fact depends
// on, so the conflict resolver (engine §4.6) can find the innermost
// case-split responsible for a failure instead of always unwinding to
// the top of the stack.
package justification

import "fmt"

// Justification is an immutable proof-of-dependency tree. Leaves are
// either caller-supplied (Leaf) or synthesized assumption tags
// (Assumption); Composite combines two justifications into one that
// depends on the union of what each depends on.
type Justification interface {
	fmt.Stringer
	// DependsOn reports whether j transitively refers to the given
	// backtracking assumption index.
	DependsOn(assumptionIdx int) bool
}

// Leaf wraps an arbitrary caller-supplied payload — typically the
// original user constraint that produced a fact — as a justification
// leaf that depends on no backtracking assumption.
type Leaf struct {
	Payload any
}

func (l Leaf) DependsOn(int) bool { return false }
func (l Leaf) String() string     { return fmt.Sprintf("leaf(%v)", l.Payload) }

// Assumption is a justification leaf minted fresh on each case-split
// branch. depends_on identifies the responsible backtracking point by
// comparing against this tag.
type Assumption struct {
	Idx int
}

func (a Assumption) DependsOn(idx int) bool { return a.Idx == idx }
func (a Assumption) String() string         { return fmt.Sprintf("assumption(%d)", a.Idx) }

// Composite combines two justifications (mk_composite1 in the spec).
type Composite struct {
	A, B Justification
}

// Composite1 is the constructor spec.md §3 names mk_composite1; nil
// operands are treated as "no justification" and elided, which keeps
// chains from growing when one side is trivial.
func Composite1(a, b Justification) Justification {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return Composite{A: a, B: b}
	}
}

func (c Composite) DependsOn(idx int) bool {
	return (c.A != nil && c.A.DependsOn(idx)) || (c.B != nil && c.B.DependsOn(idx))
}

func (c Composite) String() string { return fmt.Sprintf("(%s ∘ %s)", c.A, c.B) }

// DependsOn is a nil-safe convenience wrapping Justification.DependsOn:
// a nil justification depends on nothing.
func DependsOn(j Justification, assumptionIdx int) bool {
	return j != nil && j.DependsOn(assumptionIdx)
}

// AssumptionIndices collects every Assumption tag transitively reachable
// from j, for diagnostics (e.g. rendering a conflict trace).
func AssumptionIndices(j Justification) []int {
	var acc []int
	var walk func(Justification)
	walk = func(j Justification) {
		switch j := j.(type) {
		case nil:
			return
		case Assumption:
			acc = append(acc, j.Idx)
		case Composite:
			walk(j.A)
			walk(j.B)
		}
	}
	walk(j)
	return acc
}
