package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivedExtraction(t *testing.T) {
	d := buildTestDomain(t, `(define (domain d)
  (:derived (above ?x ?y)
    (or (on ?x ?y) (exists (?z) (and (on ?x ?z) (above ?z ?y))))))`)

	require.Len(t, d.Derived(), 1)
	dv := d.Derived()[0]

	assert.Equal(t, "above", dv.Name)
	assert.Empty(t, cmp.Diff([]Parameter{{Name: "x"}, {Name: "y"}}, dv.Parameters))

	require.NotNil(t, dv.Condition)
	assert.Equal(t,
		"(or (on ?x ?y) (exists (?z) (and (on ?x ?z) (above ?z ?y))))",
		dv.Condition.Text(d.Tree()))
}

func TestDerivedWithoutCondition(t *testing.T) {
	d := buildTestDomain(t, "(define (domain d) (:derived (lit ?x)))")

	require.Len(t, d.Derived(), 1)
	dv := d.Derived()[0]
	assert.Equal(t, "lit", dv.Name)
	assert.Nil(t, dv.Condition)
}

// Headless :derived sections are filtered, not fatal: the user has not
// typed the declaration yet.
func TestDerivedFiltered(t *testing.T) {
	inputs := []string{
		"(define (domain d) (:derived))",
		"(define (domain d) (:derived ()))",
	}
	for _, input := range inputs {
		d := buildTestDomain(t, input)
		assert.Empty(t, d.Derived(), "input %q", input)
	}
}
