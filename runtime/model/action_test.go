package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionExtraction(t *testing.T) {
	d := buildTestDomain(t, `(define (domain d)
  (:action a1
    :parameters (?p - t1)
    :precondition (p)
    :effect (q)))`)

	require.Len(t, d.Actions(), 1)
	a := d.Actions()[0]

	assert.Equal(t, ActionInstant, a.Kind)
	assert.Equal(t, "a1", a.Name)
	assert.Empty(t, cmp.Diff([]Parameter{{Name: "p", Type: "t1"}}, a.Parameters))

	require.NotNil(t, a.Precondition)
	assert.Equal(t, "(p)", a.Precondition.Text(d.Tree()))
	require.NotNil(t, a.Effect)
	assert.Equal(t, "(q)", a.Effect.Text(d.Tree()))

	assert.Nil(t, a.Duration)
	assert.Nil(t, a.Condition)
}

func TestDurativeActionExtraction(t *testing.T) {
	d := buildTestDomain(t, `(define (domain d)
  (:durative-action move
    :parameters (?r ?from ?to - loc)
    :duration (= ?duration 1)
    :condition (at start (p))
    :effect (at end (q))))`)

	require.Len(t, d.Actions(), 1)
	a := d.Actions()[0]

	assert.Equal(t, ActionDurative, a.Kind)
	assert.Equal(t, "move", a.Name)
	assert.Empty(t, cmp.Diff([]Parameter{
		{Name: "r"},
		{Name: "from", Type: "loc"},
		{Name: "to", Type: "loc"},
	}, a.Parameters))

	require.NotNil(t, a.Duration)
	assert.Equal(t, "(= ?duration 1)", a.Duration.Text(d.Tree()))
	require.NotNil(t, a.Condition)
	assert.Equal(t, "(at start (p))", a.Condition.Text(d.Tree()))
	require.NotNil(t, a.Effect)
	assert.Equal(t, "(at end (q))", a.Effect.Text(d.Tree()))

	assert.Nil(t, a.Precondition)
}

// Half-typed constructs still extract: missing pieces stay unset rather
// than failing the build.
func TestActionMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, a *Action)
	}{
		{
			name:  "name only",
			input: "(define (domain d) (:action a1))",
			check: func(t *testing.T, a *Action) {
				assert.Equal(t, "a1", a.Name)
				assert.Nil(t, a.Parameters)
				assert.Nil(t, a.Precondition)
				assert.Nil(t, a.Effect)
			},
		},
		{
			name:  "no name yet",
			input: "(define (domain d) (:action))",
			check: func(t *testing.T, a *Action) {
				assert.Equal(t, "", a.Name)
			},
		},
		{
			name:  "empty parameter list",
			input: "(define (domain d) (:action a1 :parameters ()))",
			check: func(t *testing.T, a *Action) {
				assert.Nil(t, a.Parameters)
			},
		},
		{
			name:  "clause keyword without body",
			input: "(define (domain d) (:action a1 :effect))",
			check: func(t *testing.T, a *Action) {
				assert.Nil(t, a.Effect)
			},
		},
		{
			name:  "unclosed construct mid-typing",
			input: "(define (domain d) (:action a1 :parameters (?p",
			check: func(t *testing.T, a *Action) {
				assert.Equal(t, "a1", a.Name)
				assert.Empty(t, cmp.Diff([]Parameter{{Name: "p"}}, a.Parameters))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := buildTestDomain(t, tt.input)
			require.Len(t, d.Actions(), 1)
			tt.check(t, d.Actions()[0])
		})
	}
}

func TestActionDocumentation(t *testing.T) {
	d := buildTestDomain(t, `(define (domain d)
  ; picks up a block
  ; from the table
  (:action pick-up)
  (:action undocumented))`)

	require.Len(t, d.Actions(), 2)
	assert.Equal(t, []string{"picks up a block", "from the table"}, d.Actions()[0].Documentation)
	assert.Nil(t, d.Actions()[1].Documentation)
}

func TestProcessAndEvent(t *testing.T) {
	d := buildTestDomain(t, `(define (domain d)
  (:process flow :parameters (?b) :effect (increase (level ?b) 1))
  (:event tick))`)

	require.Len(t, d.Processes(), 1)
	proc := d.Processes()[0]
	assert.Equal(t, "flow", proc.Name)
	assert.Empty(t, cmp.Diff([]Parameter{{Name: "b"}}, proc.Parameters))
	require.NotNil(t, proc.Effect)
	assert.Equal(t, "(increase (level ?b) 1)", proc.Effect.Text(d.Tree()))

	require.Len(t, d.Events(), 1)
	assert.Equal(t, "tick", d.Events()[0].Name)
}
