package engine

import (
	"context"

	"github.com/SCKelemen/lean/justification"
	"github.com/SCKelemen/lean/term"
)

// branch is one projection or imitation candidate before it has been given
// an assumption: body is what ?m's λ-abstraction will wrap (Abstract turns
// free occurrences of locals into the right de Bruijn indices), residual is
// whatever side constraints the branch incurs.
type branch struct {
	body     term.Term
	residual []Constraint
}

// solveFlexRigid implements spec.md §4.4: given ?m a1…aₙ ≡ t with t not a
// metavariable application, build every projection and imitation branch,
// then either apply the single branch directly, apply the first of several
// under a fresh assumption and push a higher-order case-split frame for
// the rest, or set conflict if none apply.
func (e *Engine) solveFlexRigid(ctx context.Context, m *term.MVar, args []term.Term, t term.Term, j justification.Justification) error {
	locals, _ := unfoldPiContext(m.Type, len(args))

	var branches []branch
	branches = append(branches, e.projections(locals, args, t)...)
	if b, ok := e.imitation(locals, t); ok {
		branches = append(branches, b)
	}

	if len(branches) == 0 {
		e.conflict = justification.Composite1(justification.Leaf{Payload: EqConstraint(term.FoldApp(m, args...), t, j)}, j)
		return nil
	}

	toAlternative := func(b branch) alternative {
		return alternative{
			assign:   []Assignment{{TermMVar: m, Term: term.Abstract(locals, b.body)}},
			residual: b.residual,
		}
	}

	if len(branches) == 1 {
		return e.applyAlternative(ctx, toAlternative(branches[0]), e.freshAssumption())
	}

	snap := e.snapshot()
	assumption := e.freshAssumption()
	frame := &Frame{
		Kind:          FrameKindHigherOrder,
		snap:          snap,
		AssumptionIdx: assumption,
		Constraint:    EqConstraint(term.FoldApp(m, args...), t, j),
	}
	for _, b := range branches[1:] {
		frame.Alternatives = append(frame.Alternatives, toAlternative(b))
	}
	return e.installFrame(ctx, frame, toAlternative(branches[0]), assumption)
}

// applyAlternative commits to one case-split branch: every Assignment is
// written through assignTerm/assignLevel (re-awakening occurrences) and
// every residual constraint is enqueued at normal priority, all under the
// same fresh-assumption justification.
func (e *Engine) applyAlternative(ctx context.Context, alt alternative, assumptionIdx int) error {
	assumption := justification.Assumption{Idx: assumptionIdx}
	base := justification.Composite1(alt.just, assumption)
	for _, a := range alt.assign {
		j := justification.Composite1(a.Just, base)
		var err error
		switch {
		case a.TermMVar != nil:
			err = e.assignTerm(ctx, a.TermMVar, a.Term, j)
		case a.LevelMVar != nil:
			err = e.assignLevel(ctx, a.LevelMVar, a.Level, j)
		}
		if err != nil {
			return err
		}
		if e.conflict != nil {
			return nil
		}
	}
	for _, rc := range alt.residual {
		rc.Just = justification.Composite1(rc.Just, base)
		e.enqueueNormal(rc)
	}
	return nil
}

// unfoldPiContext mints n fresh local constants typed by the first n
// binders of ty (?m's declared Π-type), returning them alongside the
// instantiated codomain (unused by callers today, but kept since every
// caller of projections/imitation needs the locals, not the codomain).
func unfoldPiContext(ty term.Term, n int) ([]*term.Local, term.Term) {
	locals := make([]*term.Local, 0, n)
	for i := 0; i < n; i++ {
		pi, ok := ty.(*term.Pi)
		if !ok {
			break
		}
		l := &term.Local{ID: freshAnonID(), Name: pi.Name, Type: pi.Domain}
		locals = append(locals, l)
		ty = term.Instantiate1(pi.Body, l)
	}
	return locals, ty
}

var anonIDCounter uint64

// freshAnonID mints an identity for a locally-scoped fresh constant.
// unfoldPiContext runs before any Engine method call sees the goroutine's
// NameGenerator, since the decomposition of ?m's Π-type is pure.
func freshAnonID() uint64 {
	anonIDCounter++
	return anonIDCounter
}

func localsAsTerms(locals []*term.Local) []term.Term {
	ts := make([]term.Term, len(locals))
	for i, l := range locals {
		ts[i] = l
	}
	return ts
}

// projections builds spec.md §4.4's projection branches: one per argument
// index whose shape matches either the "both non-local" rule or the
// "local equal to rigid side" rule. The !is_local(marg) && !is_local(rhs)
// condition is preserved verbatim per spec.md §9's open question.
func (e *Engine) projections(locals []*term.Local, args []term.Term, t term.Term) []branch {
	var out []branch
	tIsLocal := isLocalTerm(t)
	for k := 0; k < len(args) && k < len(locals); k++ {
		ak := args[k]
		switch {
		case !isLocalTerm(ak) && !tIsLocal:
			out = append(out, branch{
				body:     locals[k],
				residual: []Constraint{EqConstraint(ak, t, nil)},
			})
		case isLocalTerm(ak) && term.Equals(ak, t):
			out = append(out, branch{body: locals[k]})
		}
	}
	return out
}

func isLocalTerm(t term.Term) bool {
	_, ok := t.(*term.Local)
	return ok
}

// imitation builds spec.md §4.4's single imitation branch for t's shape,
// or reports ok=false for a Local rhs (imitating it would let a bound
// variable escape its scope) or any shape with no imitation rule.
func (e *Engine) imitation(locals []*term.Local, t term.Term) (branch, bool) {
	switch t := t.(type) {
	case *term.Local:
		return branch{}, false
	case term.Sort, term.Const:
		return branch{body: t}, true
	case *term.App:
		f, us := term.UnfoldApp(t)
		return e.imitateApp(locals, f, us), true
	case *term.Pi:
		return e.imitateBinder(locals, t.Name, t.Domain, t.Body, false), true
	case *term.Lambda:
		return e.imitateBinder(locals, t.Name, t.Domain, t.Body, true), true
	case *term.Macro:
		return e.imitateMacro(locals, t), true
	default:
		return branch{}, false
	}
}

// auxMeta mints a fresh metavariable over locals whose declared type is
// itself a fresh Π(locals). Sort(u) — spec.md §4.4's literal description
// of an imitation auxiliary meta's type.
func (e *Engine) auxMeta(locals []*term.Local, hint string) *term.MVar {
	u := &term.LMVar{Name: e.names.FreshMVarName(hint + ".u")}
	codomain := term.AbstractPi(locals, term.Sort{Level: u})
	ty := term.AbstractPi(locals, codomain)
	return &term.MVar{Name: e.names.FreshMVarName(hint), Type: ty}
}

func (e *Engine) imitateApp(locals []*term.Local, f term.Term, us []term.Term) branch {
	localTerms := localsAsTerms(locals)
	applied := make([]term.Term, len(us))
	var residual []Constraint
	for i, u := range us {
		a := e.auxMeta(locals, "imitate.arg")
		applied[i] = term.FoldApp(a, localTerms...)
		residual = append(residual, EqConstraint(applied[i], u, nil))
	}
	return branch{body: term.FoldApp(f, applied...), residual: residual}
}

func (e *Engine) imitateMacro(locals []*term.Local, m *term.Macro) branch {
	localTerms := localsAsTerms(locals)
	children := make([]term.Term, len(m.Children))
	var residual []Constraint
	for i, c := range m.Children {
		a := e.auxMeta(locals, "imitate.child")
		children[i] = term.FoldApp(a, localTerms...)
		residual = append(residual, EqConstraint(children[i], c, nil))
	}
	return branch{body: &term.Macro{Tag: m.Tag, Children: children}, residual: residual}
}

// imitateBinder handles t = Πy:D.R or t = λy:D.R: a fresh local y' extends
// the abstraction context before the body is auxiliary-meta-applied, per
// spec.md §4.4.
func (e *Engine) imitateBinder(locals []*term.Local, name string, domain, body term.Term, isLambda bool) branch {
	localTerms := localsAsTerms(locals)

	domainMeta := e.auxMeta(locals, "imitate.dom")
	domainApplied := term.FoldApp(domainMeta, localTerms...)
	domainResidual := EqConstraint(domainApplied, domain, nil)

	y := &term.Local{ID: freshAnonID(), Name: name, Type: domainApplied}
	extended := append(append([]*term.Local{}, locals...), y)

	bodyMeta := e.auxMeta(extended, "imitate.body")
	bodyArgs := append(append([]term.Term{}, localTerms...), y)
	bodyApplied := term.FoldApp(bodyMeta, bodyArgs...)
	bodyResidual := EqConstraint(bodyApplied, body, nil)

	var newBinder term.Term
	if isLambda {
		newBinder = &term.Lambda{Name: name, Domain: domainApplied, Body: term.Abstract([]*term.Local{y}, bodyApplied)}
	} else {
		newBinder = &term.Pi{Name: name, Domain: domainApplied, Body: term.Abstract([]*term.Local{y}, bodyApplied)}
	}

	return branch{body: newBinder, residual: []Constraint{domainResidual, bodyResidual}}
}
