package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pddl-lang/pddl/runtime/lexer"
	"github.com/pddl-lang/pddl/runtime/parser"
)

func buildTestProblem(t *testing.T, input string) *Problem {
	t.Helper()
	tree, err := parser.ParseString(input)
	require.NoError(t, err)
	p, err := BuildProblem(tree, lexer.NewLineIndex([]byte(input)))
	require.NoError(t, err)
	return p
}

func TestBuildProblem(t *testing.T) {
	p := buildTestProblem(t, `(define (problem p1)
  (:domain blocks)
  (:requirements :strips)
  (:objects a b - block c)
  (:init (on a b) (clear c))
  (:goal (and (on b a)))
  (:metric minimize (total-cost)))`)

	assert.Equal(t, "p1", p.Name())
	assert.Equal(t, "blocks", p.DomainName())
	assert.Equal(t, []string{":strips"}, p.Requirements())

	assert.Equal(t, []string{"a", "b", "block", "c"}, p.Objects().Names())
	assert.Empty(t, cmp.Diff([]TypeEdge{
		{Child: "a", Parent: "block"},
		{Child: "b", Parent: "block"},
	}, p.Objects().Edges()))

	require.NotNil(t, p.Init())
	assert.Equal(t, "(:init (on a b) (clear c))", p.Init().Text(p.Tree()))

	require.NotNil(t, p.Goal())
	assert.Equal(t, "(and (on b a))", p.Goal().Text(p.Tree()))

	require.NotNil(t, p.Metric())
	assert.Equal(t, "(:metric minimize (total-cost))", p.Metric().Text(p.Tree()))

	assert.Empty(t, p.Warnings())
}

func TestBuildProblemMissingSections(t *testing.T) {
	p := buildTestProblem(t, "(define (problem p1))")

	assert.Equal(t, "p1", p.Name())
	assert.Equal(t, "", p.DomainName())
	assert.Empty(t, p.Objects().Names())
	assert.Nil(t, p.Init())
	assert.Nil(t, p.Goal())
	assert.Nil(t, p.Metric())
	assert.Empty(t, p.Constraints())
}

func TestBuildProblemMissingDefine(t *testing.T) {
	tree, err := parser.ParseString("(problem p1)")
	require.NoError(t, err)

	_, err = BuildProblem(tree, lexer.NewLineIndex([]byte("(problem p1)")))
	assert.ErrorIs(t, err, ErrMissingDefine)
}

func TestProblemConstraints(t *testing.T) {
	p := buildTestProblem(t,
		"(define (problem p1) (:constraints (and (name g1 (at end (on a b))) (after g1 g2))))")

	cons := p.Constraints()
	require.Len(t, cons, 2)
	assert.Equal(t, ConstraintNamed, cons[0].Kind)
	assert.Equal(t, "g1", cons[0].Name)
	assert.Equal(t, ConstraintAfter, cons[1].Kind)
}

func TestProblemUnknownSectionWarning(t *testing.T) {
	p := buildTestProblem(t, "(define (problem p1) (:objcts a b))")

	require.Len(t, p.Warnings(), 1)
	assert.Equal(t, "unknown section :objcts", p.Warnings()[0].Message)
	assert.Equal(t, "did you mean :objects?", p.Warnings()[0].Suggestion)
}
