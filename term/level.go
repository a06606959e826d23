package term

import "fmt"

// Level is a universe level: zero, successor, max, imax, a named
// parameter, or a universe metavariable.
type Level interface {
	fmt.Stringer
	isLevel()
}

// LZero is the bottom universe level.
type LZero struct{}

func (LZero) isLevel()        {}
func (LZero) String() string { return "0" }

// LSucc is level+1.
type LSucc struct {
	Of Level
}

func (LSucc) isLevel()          {}
func (s LSucc) String() string { return fmt.Sprintf("succ(%s)", s.Of) }

// LMax is the pointwise maximum of two levels.
type LMax struct {
	A, B Level
}

func (LMax) isLevel()          {}
func (m LMax) String() string { return fmt.Sprintf("max(%s, %s)", m.A, m.B) }

// LIMax is the "impredicative max": imax(a, b) is 0 if b is 0, else
// max(a, b). The constructor itself carries no such reduction; Normalize
// reduces only the b = 0 case (and imax(a, a) to a), leaving every other
// imax node in place.
type LIMax struct {
	A, B Level
}

func (LIMax) isLevel()          {}
func (m LIMax) String() string { return fmt.Sprintf("imax(%s, %s)", m.A, m.B) }

// LParam is a named universe parameter, rigid with respect to
// unification.
type LParam struct {
	Name string
}

func (LParam) isLevel()          {}
func (p LParam) String() string { return p.Name }

// LMVar is a universe metavariable.
type LMVar struct {
	Name string
}

func (*LMVar) isLevel()          {}
func (m *LMVar) String() string { return "?" + m.Name }

// Equal compares level metavariables by name.
func (m *LMVar) Equal(o *LMVar) bool { return m != nil && o != nil && m.Name == o.Name }

// SuccOf reports whether l's outermost constructor is succ, returning
// its operand.
func SuccOf(l Level) (Level, bool) {
	s, ok := l.(LSucc)
	if !ok {
		return nil, false
	}
	return s.Of, true
}

// IsSucc is a boolean-only convenience over SuccOf.
func IsSucc(l Level) bool {
	_, ok := SuccOf(l)
	return ok
}

// Normalize puts a level in a canonical form: succ is normalized under its
// operand; max(a, b) drops a zero operand and collapses max(a, a) to a;
// imax(a, 0) collapses to 0 and imax(a, a) to a; any other max or imax
// keeps its normalized operands; LZero/LParam/LMVar are left as-is. This
// mirrors a kernel-level normal form,
// not full level arithmetic (no Presburger-style decision procedure).
func Normalize(l Level) Level {
	switch l := l.(type) {
	case LSucc:
		return LSucc{Of: Normalize(l.Of)}
	case LMax:
		a, b := Normalize(l.A), Normalize(l.B)
		if LevelEquals(a, b) {
			return a
		}
		if _, ok := a.(LZero); ok {
			return b
		}
		if _, ok := b.(LZero); ok {
			return a
		}
		return LMax{A: a, B: b}
	case LIMax:
		b := Normalize(l.B)
		if _, ok := b.(LZero); ok {
			return LZero{}
		}
		a := Normalize(l.A)
		if LevelEquals(a, b) {
			return a
		}
		return LIMax{A: a, B: b}
	default:
		return l
	}
}

// LevelEquals is syntactic equality after normalization.
func LevelEquals(a, b Level) bool {
	return levelEqualRaw(Normalize(a), Normalize(b))
}

func levelEqualRaw(a, b Level) bool {
	switch a := a.(type) {
	case LZero:
		_, ok := b.(LZero)
		return ok
	case LSucc:
		bs, ok := b.(LSucc)
		return ok && levelEqualRaw(a.Of, bs.Of)
	case LMax:
		bm, ok := b.(LMax)
		return ok && levelEqualRaw(a.A, bm.A) && levelEqualRaw(a.B, bm.B)
	case LIMax:
		bm, ok := b.(LIMax)
		return ok && levelEqualRaw(a.A, bm.A) && levelEqualRaw(a.B, bm.B)
	case LParam:
		bp, ok := b.(LParam)
		return ok && a.Name == bp.Name
	case *LMVar:
		bv, ok := b.(*LMVar)
		return ok && a.Equal(bv)
	default:
		return false
	}
}

// LevelContainsMeta reports whether m occurs anywhere in l.
func LevelContainsMeta(l Level, m *LMVar) bool {
	switch l := l.(type) {
	case LSucc:
		return LevelContainsMeta(l.Of, m)
	case LMax:
		return LevelContainsMeta(l.A, m) || LevelContainsMeta(l.B, m)
	case LIMax:
		return LevelContainsMeta(l.A, m) || LevelContainsMeta(l.B, m)
	case *LMVar:
		return l.Equal(m)
	default:
		return false
	}
}

// LevelContainsAnyMeta reports whether any universe metavariable occurs
// anywhere in l.
func LevelContainsAnyMeta(l Level) bool {
	switch l := l.(type) {
	case LSucc:
		return LevelContainsAnyMeta(l.Of)
	case LMax:
		return LevelContainsAnyMeta(l.A) || LevelContainsAnyMeta(l.B)
	case LIMax:
		return LevelContainsAnyMeta(l.A) || LevelContainsAnyMeta(l.B)
	case *LMVar:
		return true
	default:
		return false
	}
}

// LevelMetas appends every universe metavariable occurring in l to acc.
func LevelMetas(l Level, acc []*LMVar) []*LMVar {
	switch l := l.(type) {
	case LSucc:
		return LevelMetas(l.Of, acc)
	case LMax:
		return LevelMetas(l.B, LevelMetas(l.A, acc))
	case LIMax:
		return LevelMetas(l.B, LevelMetas(l.A, acc))
	case *LMVar:
		for _, seen := range acc {
			if seen.Equal(l) {
				return acc
			}
		}
		return append(acc, l)
	default:
		return acc
	}
}
