package main

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/SCKelemen/lean/engine"
	"github.com/SCKelemen/lean/term"
)

// toyChecker is the minimal TypeChecker this demo wires the engine to: it
// never infers a real type (elaboration is out of scope for a constraint
// REPL) and decides definitional equality by plain structural equality.
// Its WHNF returns its argument unchanged, so processEq's WHNF-delegation
// path is never taken with this checker.
type toyChecker struct{}

func (toyChecker) Infer(ctx context.Context, t term.Term) (term.Term, error) { return nil, nil }

func (toyChecker) IsDefEq(ctx context.Context, a, b term.Term, sink engine.ConstraintSink) (bool, error) {
	return term.Equals(a, b), nil
}

func (toyChecker) WHNF(ctx context.Context, t term.Term) (term.Term, error) { return t, nil }

func (toyChecker) Push(ctx context.Context) error { return nil }
func (toyChecker) Pop(ctx context.Context) error   { return nil }

// toyEnv is an empty global environment: the demo script language has no
// way to declare a global constant's definition, only locals and
// metavariables, so ConstType/ConstValue always decline.
type toyEnv struct{}

func (toyEnv) ConstType(name string) (term.Term, bool)  { return nil, false }
func (toyEnv) ConstValue(name string) (term.Term, bool) { return nil, false }

// counterNames mints fresh metavariable/local names and IDs from a single
// atomic counter, playing the NameGenerator role the imitation/projection
// branches need for fresh auxiliary metavariables beyond the ones a
// script declares directly.
type counterNames struct {
	n atomic.Uint64
}

func (g *counterNames) FreshMVarName(hint string) string {
	return hint + "$" + strconv.FormatUint(g.n.Add(1), 10)
}

func (g *counterNames) FreshLocalID() uint64 {
	return g.n.Add(1)
}

// noPlugin reports no alternatives for every rigid-rigid constraint it is
// asked about: this demo has no host-defined coercion or instance search
// to offer, so a stuck rigid-rigid pair is always a genuine conflict.
type noPlugin struct{}

func (noPlugin) Alternatives(ctx context.Context, c engine.Constraint) ([]engine.PluginAlternative, error) {
	return nil, nil
}
