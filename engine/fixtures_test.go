package engine

import (
	"context"

	"github.com/SCKelemen/lean/term"
)

// counterNames is the NameGenerator every test in this package shares:
// FreshMVarName returns the hint unchanged and FreshLocalID counts up from
// 1, which keeps expectations reproducible.
type counterNames struct {
	mvars  int
	locals uint64
}

func (n *counterNames) FreshMVarName(hint string) string {
	n.mvars++
	return hint
}

func (n *counterNames) FreshLocalID() uint64 {
	n.locals++
	return n.locals
}

// stubChecker is a TypeChecker whose behavior each test configures by
// field; the zero value infers no type (nil), reduces nothing, and decides
// IsDefEq by structural equality, which is the right default for tests
// that are only exercising the constraint-processing shape, not
// type-checking itself.
type stubChecker struct {
	whnf    func(context.Context, term.Term) (term.Term, error)
	isDefEq func(context.Context, term.Term, term.Term, ConstraintSink) (bool, error)
	infer   func(context.Context, term.Term) (term.Term, error)

	pushes, pops int
}

func (c *stubChecker) Infer(ctx context.Context, t term.Term) (term.Term, error) {
	if c.infer != nil {
		return c.infer(ctx, t)
	}
	return nil, nil
}

func (c *stubChecker) IsDefEq(ctx context.Context, a, b term.Term, sink ConstraintSink) (bool, error) {
	if c.isDefEq != nil {
		return c.isDefEq(ctx, a, b, sink)
	}
	return term.Equals(a, b), nil
}

func (c *stubChecker) WHNF(ctx context.Context, t term.Term) (term.Term, error) {
	if c.whnf != nil {
		return c.whnf(ctx, t)
	}
	return t, nil
}

func (c *stubChecker) Push(context.Context) error { c.pushes++; return nil }
func (c *stubChecker) Pop(context.Context) error  { c.pops++; return nil }

// stubPlugin returns a fixed list of alternatives (or an error), ignoring
// the constraint it is asked about.
type stubPlugin struct {
	alts []PluginAlternative
	err  error
}

func (p *stubPlugin) Alternatives(context.Context, Constraint) ([]PluginAlternative, error) {
	return p.alts, p.err
}

// stubChoice mirrors stubPlugin for ChoiceGenerator.
type stubChoice struct {
	alts []ChoiceAlternative
	err  error
}

func (c *stubChoice) Alternatives(context.Context, Constraint) ([]ChoiceAlternative, error) {
	return c.alts, c.err
}

// local is a convenience constructor for an untyped local constant in
// tests that don't care about dependent typing.
func local(id uint64, name string) *term.Local {
	return &term.Local{ID: id, Name: name}
}

func mvar(name string) *term.MVar {
	return &term.MVar{Name: name}
}

// newTestEngine builds an Engine with the given constraints already
// enqueued, a stub checker (or the supplied one), and the given plugin and
// choice generator (either may be nil).
func newTestEngine(tc TypeChecker, plugin Plugin, choice ChoiceGenerator, constraints ...Constraint) *Engine {
	if tc == nil {
		tc = &stubChecker{}
	}
	return New(nil, &counterNames{}, tc, plugin, choice, constraints, NewConfig())
}
