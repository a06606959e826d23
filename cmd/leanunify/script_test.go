package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SCKelemen/lean/term"
)

func TestSessionParseExprConstApplication(t *testing.T) {
	s := newSession()
	got, err := s.parseExpr("f a b")
	require.NoError(t, err)
	assert.Equal(t, term.FoldApp(term.Const{Name: "f"}, term.Const{Name: "a"}, term.Const{Name: "b"}), got)
}

func TestSessionParseExprParenthesizedGrouping(t *testing.T) {
	s := newSession()
	got, err := s.parseExpr("f (g a)")
	require.NoError(t, err)
	want := &term.App{Fn: term.Const{Name: "f"}, Arg: &term.App{Fn: term.Const{Name: "g"}, Arg: term.Const{Name: "a"}}}
	assert.Equal(t, want, got)
}

func TestSessionParseExprMetavarAndLocalReuse(t *testing.T) {
	s := newSession()
	s.local("x")

	got1, err := s.parseExpr("?m x")
	require.NoError(t, err)
	got2, err := s.parseExpr("?m x")
	require.NoError(t, err)
	assert.Same(t, s.metas["m"], got1.(*term.App).Fn)
	assert.Equal(t, got1, got2, "repeated references to the same name must resolve to the same variable")
}

func TestSessionRunLineLocalDeclaresThenExprResolves(t *testing.T) {
	s := newSession()
	require.NoError(t, s.runLine("local x y"))
	require.NoError(t, s.runLine("?m x y = x"))
	require.Len(t, s.constraints, 2)
	assert.Equal(t, s.locals["x"], s.constraints[1])
}

func TestSessionRunLineIgnoresBlankAndComments(t *testing.T) {
	s := newSession()
	require.NoError(t, s.runLine(""))
	require.NoError(t, s.runLine("  # a comment"))
	assert.Empty(t, s.constraints)
}

func TestSessionParseExprRejectsUnmatchedParen(t *testing.T) {
	s := newSession()
	_, err := s.parseExpr("f (g a")
	assert.Error(t, err)
}

func TestSessionRunLineRejectsStatementWithoutEquals(t *testing.T) {
	s := newSession()
	err := s.runLine("f a b")
	assert.Error(t, err)
}
