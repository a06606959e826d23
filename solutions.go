package lean

import (
	"context"
	"fmt"
	"reflect"

	"github.com/SCKelemen/lean/engine"
	"github.com/SCKelemen/lean/term"
)

// Solutions is the pull-driven result of a Unify call: every call to Next
// advances the engine's search exactly as far as the next solution (or
// exhaustion), mirroring the teacher's own Solutions.Next/Scan/Err shape
// over a single constraint-solving run instead of over a Prolog query.
//
// Unlike the teacher's Solutions, there is no goroutine/channel bridge: the
// teacher needs one because a Prolog query's Promise/Force recursion can
// only be paused by running it on its own goroutine and blocking on a
// channel handoff. This engine's driver loop (engine.Engine.Next) already
// returns control to its caller after each unit of work, so Next can call
// straight through without a bridge.
type Solutions struct {
	eng *engine.Engine
	ctx context.Context

	cur engine.Substitution
	err error
}

// Next prepares the next solution for reading with Scan. It returns true if
// it finds another solution, or false if the search is exhausted or an
// error occurred (check Err).
func (s *Solutions) Next() bool {
	if s.err != nil {
		return false
	}
	sub, ok, err := s.eng.Next(s.ctx)
	if err != nil {
		s.err = err
		return false
	}
	if !ok {
		return false
	}
	s.cur = sub
	return true
}

// Scan copies the current solution's term-metavariable assignments into
// out, keyed by metavariable name. out must be a map whose key type holds a
// string and whose element type holds a term.Term (map[string]term.Term or
// map[string]interface{}); any other kind is rejected with an error, and a
// map of incompatible types makes the copy panic. Level assignments are not
// copied.
func (s *Solutions) Scan(out interface{}) error {
	o := reflect.ValueOf(out)
	if o.Kind() != reflect.Map {
		return fmt.Errorf("invalid kind: %s", o.Kind())
	}
	for _, name := range s.cur.AssignedTermNames() {
		mv := &term.MVar{Name: name}
		v, _, ok := s.cur.TermOf(mv)
		if !ok {
			continue
		}
		o.SetMapIndex(reflect.ValueOf(name), reflect.ValueOf(v))
	}
	return nil
}

// Err returns the error that ended the sequence, if any.
func (s *Solutions) Err() error {
	return s.err
}

// Close clears the current solution and any stored error and returns nil.
// The engine holds no external resources; Close does not stop the search,
// and a later Next still asks the engine for another solution. It exists
// to match the pull-iterator shape callers expect from the teacher's
// Solutions.
func (s *Solutions) Close() error {
	s.err = nil
	s.cur = engine.Substitution{}
	return nil
}
