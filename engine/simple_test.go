package engine

import (
	"testing"

	"github.com/SCKelemen/lean/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifySimpleEqualTermsSolveWithoutAssignment(t *testing.T) {
	var s Substitution
	status, s2 := UnifySimple(s, local(1, "x"), local(1, "x"), nil)
	assert.Equal(t, SimpleSolved, status)
	assert.Equal(t, s, s2)
}

func TestUnifySimpleBothMetaFreeButUnequalFails(t *testing.T) {
	var s Substitution
	status, _ := UnifySimple(s, local(1, "x"), local(2, "y"), nil)
	assert.Equal(t, SimpleFailed, status)
}

func TestUnifySimplePatternAssigns(t *testing.T) {
	var s Substitution
	m := &term.MVar{Name: "m"}
	x := local(1, "x")
	pattern := term.FoldApp(m, x)

	status, s2 := UnifySimple(s, pattern, x, nil)
	require.Equal(t, SimpleSolved, status)
	v, _, ok := s2.TermOf(m)
	require.True(t, ok)
	assert.Equal(t, &term.Lambda{Name: "x", Body: term.BVar{Idx: 0}}, v)
}

func TestPatternRuleFailsOnOccursCheck(t *testing.T) {
	m := &term.MVar{Name: "m"}
	x := local(1, "x")
	pattern := term.FoldApp(m, x)

	_, _, status := PatternRule(pattern, &term.App{Fn: m, Arg: x})
	assert.Equal(t, SimpleFailed, status)
}

func TestPatternRuleFailsWhenRHSMentionsAnUnboundLocal(t *testing.T) {
	m := &term.MVar{Name: "m"}
	x := local(1, "x")
	y := local(2, "y")
	pattern := term.FoldApp(m, x)

	_, _, status := PatternRule(pattern, y)
	assert.Equal(t, SimpleFailed, status)
}

func TestPatternRuleUnsupportedWhenNeitherSideIsASimpleMeta(t *testing.T) {
	_, _, status := PatternRule(local(1, "x"), local(2, "y"))
	assert.Equal(t, SimpleUnsupported, status)
}

func TestUnifySimpleLevelPeelsSucc(t *testing.T) {
	var s Substitution
	u := &term.LMVar{Name: "u"}
	lhs := term.LSucc{Of: u}
	rhs := term.LSucc{Of: term.LZero{}}

	status, s2 := UnifySimpleLevel(s, lhs, rhs, nil)
	require.Equal(t, SimpleSolved, status)
	v, _, ok := s2.LevelOf(u)
	require.True(t, ok)
	assert.Equal(t, term.LZero{}, v)
}

func TestUnifySimpleLevelPureSuccChainFails(t *testing.T) {
	var s Substitution
	u := &term.LMVar{Name: "u"}
	status, _ := UnifySimpleLevel(s, u, term.LSucc{Of: u}, nil)
	assert.Equal(t, SimpleFailed, status)
}

func TestLevelPatternRuleUnsupportedWhenMetaOccursNonCircularly(t *testing.T) {
	u := &term.LMVar{Name: "u"}
	_, _, status := LevelPatternRule(u, term.LMax{A: u, B: term.LZero{}})
	assert.Equal(t, SimpleUnsupported, status)
}

func TestLevelPatternRuleUnsupportedWhenNeitherSideIsAMeta(t *testing.T) {
	_, _, status := LevelPatternRule(term.LZero{}, term.LParam{Name: "p"})
	assert.Equal(t, SimpleUnsupported, status)
}
