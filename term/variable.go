package term

// MVar is a term metavariable, written ?m in the spec, of a declared
// Type. It is a placeholder to be determined by unification.
type MVar struct {
	Name string
	Type Term
}

func (*MVar) isTerm()          {}
func (m *MVar) String() string { return "?" + m.Name }

// Equal compares metavariables by name: names are assumed globally
// unique, minted by an external NameGenerator.
func (m *MVar) Equal(o *MVar) bool { return m != nil && o != nil && m.Name == o.Name }

// IsMeta reports whether t's head is a term metavariable, i.e. t is of
// the form ?m a1 .. an for some n >= 0.
func IsMeta(t Term) (*MVar, []Term, bool) {
	head, args := UnfoldApp(t)
	m, ok := head.(*MVar)
	return m, args, ok
}

// IsSimpleMeta reports whether t is ?m applied to zero or more
// pairwise-distinct local constants: the pattern fragment the simple
// unifier (§4.1) can solve unitarily.
func IsSimpleMeta(t Term) (*MVar, []*Local, bool) {
	m, args, ok := IsMeta(t)
	if !ok {
		return nil, nil, false
	}
	locals := make([]*Local, 0, len(args))
	for _, a := range args {
		l, ok := a.(*Local)
		if !ok {
			return nil, nil, false
		}
		for _, seen := range locals {
			if seen.Equal(l) {
				return nil, nil, false
			}
		}
		locals = append(locals, l)
	}
	return m, locals, true
}
