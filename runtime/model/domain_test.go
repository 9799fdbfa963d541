package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pddl-lang/pddl/runtime/lexer"
	"github.com/pddl-lang/pddl/runtime/parser"
)

func buildTestDomain(t *testing.T, input string) *Domain {
	t.Helper()
	tree, err := parser.ParseString(input)
	require.NoError(t, err)
	d, err := BuildDomain(tree, lexer.NewLineIndex([]byte(input)))
	require.NoError(t, err)
	return d
}

const blocksDomain = `; a small blocks world
(define (domain blocks)
  (:requirements :strips :typing)
  (:types block table - object)
  (:constants b1 b2 - block)
  (:predicates
    (on ?x - block ?y - block)
    (clear ?x - block))
  (:functions (total-cost))
  (:action move
    :parameters (?b - block ?from ?to)
    :precondition (and (clear ?b))
    :effect (and (on ?b ?to))))`

func TestBuildDomain(t *testing.T) {
	d := buildTestDomain(t, blocksDomain)

	assert.Equal(t, "blocks", d.Name())
	assert.Equal(t, []string{":strips", ":typing"}, d.Requirements())

	assert.Equal(t, []string{"block", "table", "object"}, d.Types())
	assert.Empty(t, cmp.Diff([]TypeEdge{
		{Child: "block", Parent: "object"},
		{Child: "table", Parent: "object"},
	}, d.TypeGraph().Edges()))

	assert.Equal(t, []string{"b1", "b2", "block"}, d.Constants().Names())
	assert.Equal(t, []string{"block"}, d.Constants().ParentsOf("b1"))

	require.Len(t, d.Predicates(), 2)
	assert.Equal(t, "on", d.Predicates()[0].Name)
	assert.Empty(t, cmp.Diff([]Parameter{
		{Name: "x", Type: "block"},
		{Name: "y", Type: "block"},
	}, d.Predicates()[0].Parameters))
	assert.Equal(t, "clear", d.Predicates()[1].Name)

	require.Len(t, d.Functions(), 1)
	assert.Equal(t, "total-cost", d.Functions()[0].Name)

	require.Len(t, d.Actions(), 1)
	assert.Equal(t, "move", d.Actions()[0].Name)

	assert.Empty(t, d.Warnings())
}

func TestBuildDomainMissingDefine(t *testing.T) {
	tree, err := parser.ParseString("(domain blocks)")
	require.NoError(t, err)

	_, err = BuildDomain(tree, lexer.NewLineIndex([]byte("(domain blocks)")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingDefine)
}

// Everything short of a missing define is tolerated: empty documents,
// missing names, sections in any state of typing.
func TestBuildDomainTolerance(t *testing.T) {
	inputs := []string{
		"(define)",
		"(define (domain))",
		"(define (domain d) (:types",
		"(define (domain d) ())",
	}
	for _, input := range inputs {
		tree, err := parser.ParseString(input)
		require.NoError(t, err)
		d, err := BuildDomain(tree, lexer.NewLineIndex([]byte(input)))
		require.NoError(t, err, "input %q", input)
		require.NotNil(t, d)
	}
}

func TestRepeatedSectionsMerge(t *testing.T) {
	d := buildTestDomain(t,
		"(define (domain d) (:types a - t) (:types b - t))")

	assert.Empty(t, cmp.Diff([]TypeEdge{
		{Child: "a", Parent: "t"},
		{Child: "b", Parent: "t"},
	}, d.TypeGraph().Edges()))
	assert.Equal(t, []string{"a", "t", "b"}, d.Types())
}

func TestUnknownSectionWarning(t *testing.T) {
	d := buildTestDomain(t, "(define (domain d) (:prediates (on ?x)))")

	require.Len(t, d.Warnings(), 1)
	w := d.Warnings()[0]
	assert.Equal(t, "unknown section :prediates", w.Message)
	assert.Equal(t, "did you mean :predicates?", w.Suggestion)
	assert.Equal(t, lexer.Position{Line: 1, Column: 21}, w.Range.Start)

	// The misspelled section contributed nothing to the model
	assert.Empty(t, d.Predicates())
}

func TestBuildDispatch(t *testing.T) {
	t.Run("domain document", func(t *testing.T) {
		input := "(define (domain d))"
		tree, err := parser.ParseString(input)
		require.NoError(t, err)

		d, p, err := Build(tree, lexer.NewLineIndex([]byte(input)))
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Nil(t, p)
	})

	t.Run("problem document", func(t *testing.T) {
		input := "(define (problem p1) (:domain d))"
		tree, err := parser.ParseString(input)
		require.NoError(t, err)

		d, p, err := Build(tree, lexer.NewLineIndex([]byte(input)))
		require.NoError(t, err)
		assert.Nil(t, d)
		require.NotNil(t, p)
		assert.Equal(t, "p1", p.Name())
	})

	t.Run("missing define", func(t *testing.T) {
		tree, err := parser.ParseString("nothing here")
		require.NoError(t, err)

		_, _, err = Build(tree, lexer.NewLineIndex([]byte("nothing here")))
		assert.ErrorIs(t, err, ErrMissingDefine)
	})
}
