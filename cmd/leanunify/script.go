package main

import (
	"fmt"
	"strings"

	"github.com/SCKelemen/lean/term"
)

// maxMetaArity bounds how many arguments a metavariable may be applied to
// in a script: since the toy language never declares a metavariable's
// type explicitly, each one is minted with a Pi chain of this many
// non-dependent Sort(0) domains — enough for any constraint this demo is
// meant to exercise, at the cost of not modeling a metavariable's real
// dependent type the way a host elaborator would.
const maxMetaArity = 8

// session holds everything a script's statements accumulate: the locals
// and metavariables seen so far (so repeated names denote the same
// variable) and the constraints collected for the final solve.
type session struct {
	locals      map[string]*term.Local
	metas       map[string]*term.MVar
	constraints []term.Term // pairs flattened as [lhs, rhs, lhs, rhs, ...]
	nextLocalID uint64
}

func newSession() *session {
	return &session{locals: map[string]*term.Local{}, metas: map[string]*term.MVar{}}
}

func (s *session) local(name string) *term.Local {
	if l, ok := s.locals[name]; ok {
		return l
	}
	s.nextLocalID++
	l := &term.Local{ID: s.nextLocalID, Name: name, Type: term.Sort{Level: term.LZero{}}}
	s.locals[name] = l
	return l
}

func (s *session) meta(name string) *term.MVar {
	if m, ok := s.metas[name]; ok {
		return m
	}
	m := &term.MVar{Name: name, Type: metaVarType()}
	s.metas[name] = m
	return m
}

func metaVarType() term.Term {
	t := term.Term(term.Sort{Level: term.LZero{}})
	for i := 0; i < maxMetaArity; i++ {
		t = &term.Pi{Name: "_", Domain: term.Sort{Level: term.LZero{}}, Body: t}
	}
	return t
}

// runLine interprets one line of the toy constraint script:
//
//	local a b c        declare fresh local constants
//	<expr> = <expr>    add an equality constraint between two applications
//
// Blank lines and lines starting with # are ignored.
func (s *session) runLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	if rest, ok := cutPrefix(line, "local "); ok {
		for _, name := range strings.Fields(rest) {
			s.local(name)
		}
		return nil
	}
	lhsSrc, rhsSrc, ok := strings.Cut(line, "=")
	if !ok {
		return fmt.Errorf("unrecognized statement: %q", line)
	}
	lhs, err := s.parseExpr(lhsSrc)
	if err != nil {
		return fmt.Errorf("lhs: %w", err)
	}
	rhs, err := s.parseExpr(rhsSrc)
	if err != nil {
		return fmt.Errorf("rhs: %w", err)
	}
	s.constraints = append(s.constraints, lhs, rhs)
	return nil
}

func cutPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}
	return s[len(prefix):], true
}

// parseExpr parses a whitespace-separated, left-associative application
// chain, with parentheses for grouping: `f x (g y)`. Identifiers prefixed
// with `?` denote metavariables; identifiers already declared via `local`
// denote that local; anything else is a nullary global constant.
func (s *session) parseExpr(src string) (term.Term, error) {
	p := &exprParser{s: s, toks: tokenize(src)}
	t, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("unexpected trailing input at %q", strings.Join(p.toks[p.pos:], " "))
	}
	return t, nil
}

func tokenize(src string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range src {
		switch r {
		case '(', ')':
			flush()
			toks = append(toks, string(r))
		case ' ', '\t':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

type exprParser struct {
	s    *session
	toks []string
	pos  int
}

func (p *exprParser) parseApp() (term.Term, error) {
	head, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.pos < len(p.toks) && p.toks[p.pos] != ")" {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		head = &term.App{Fn: head, Arg: arg}
	}
	return head, nil
}

func (p *exprParser) parseAtom() (term.Term, error) {
	if p.pos >= len(p.toks) {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	tok := p.toks[p.pos]
	switch tok {
	case "(":
		p.pos++
		t, err := p.parseApp()
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.toks) || p.toks[p.pos] != ")" {
			return nil, fmt.Errorf("expected )")
		}
		p.pos++
		return t, nil
	case ")":
		return nil, fmt.Errorf("unexpected )")
	}
	p.pos++
	if strings.HasPrefix(tok, "?") {
		return p.s.meta(tok[1:]), nil
	}
	if l, ok := p.s.locals[tok]; ok {
		return l, nil
	}
	return term.Const{Name: tok}, nil
}
