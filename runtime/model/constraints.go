package model

import (
	"github.com/pddl-lang/pddl/runtime/lexer"
	"github.com/pddl-lang/pddl/runtime/parser"
)

// ConstraintKind distinguishes the constraint variants.
type ConstraintKind int

const (
	// ConstraintPlain wraps a raw node whose head is not recognized.
	ConstraintPlain ConstraintKind = iota
	// ConstraintNamed is a name + condition pair: (name p1 (at end (clear))).
	ConstraintNamed
	// ConstraintAfter orders two named conditions.
	ConstraintAfter
	// ConstraintStrictlyAfter is the strict ordering variant of after.
	ConstraintStrictlyAfter
)

// Constraint is one extracted :constraints entry.
type Constraint struct {
	Kind  ConstraintKind
	Node  parser.NodeID
	Range Range

	// Named variant
	Name      string
	Condition *Clause

	// After variants: both sides are named-condition constraints, each
	// carrying a bare name, a nested condition, or both
	Predecessor *Constraint
	Successor   *Constraint
}

// constraint head spellings; sometime-after and friends are bracketed
// operators, these are plain barewords.
const (
	headNamed           = "name"
	headStateSatisfying = "state-satisfying"
	headAfter           = "after"
	headStrictlyAfter   = "strictly-after"
	headAnd             = "and"
)

// ParseConstraints extracts all constraints from one :constraints section
// bracket. An implicit top-level (and ...) is flattened transparently;
// non-bracket children are skipped rather than failing the section.
func ParseConstraints(tree *parser.SyntaxTree, id parser.NodeID, resolver PositionResolver) []*Constraint {
	body := id
	if kw, ok := keywordChild(tree, id, ":constraints"); ok {
		body = kw
	}

	var out []*Constraint
	for _, child := range bracketChildren(tree, body) {
		out = append(out, parseConstraint(tree, child, resolver)...)
	}
	return out
}

// parseConstraint extracts one constraint node, flattening "and".
func parseConstraint(tree *parser.SyntaxTree, id parser.NodeID, resolver PositionResolver) []*Constraint {
	switch headName(tree, id) {
	case headAnd:
		var out []*Constraint
		for _, child := range bracketChildren(tree, id) {
			out = append(out, parseConstraint(tree, child, resolver)...)
		}
		return out

	case headNamed, headStateSatisfying:
		return []*Constraint{parseNamedConstraint(tree, id, resolver)}

	case headAfter:
		return []*Constraint{parseAfterConstraint(tree, id, ConstraintAfter, resolver)}

	case headStrictlyAfter:
		return []*Constraint{parseAfterConstraint(tree, id, ConstraintStrictlyAfter, resolver)}

	default:
		return []*Constraint{{
			Kind:  ConstraintPlain,
			Node:  id,
			Range: resolveRange(tree, resolver, id),
		}}
	}
}

// parseNamedConstraint reads (name <id> <condition>). The name is the
// bareword after the head, the condition the first nested bracket; either
// may be missing on half-typed input.
func parseNamedConstraint(tree *parser.SyntaxTree, id parser.NodeID, resolver PositionResolver) *Constraint {
	c := &Constraint{
		Kind:  ConstraintNamed,
		Node:  id,
		Range: resolveRange(tree, resolver, id),
	}

	barewords := tree.ChildrenOfKind(id, func(tok lexer.Token) bool {
		return tok.Type == lexer.OTHER
	})

	// For a plain-bracket head the first bareword is the head itself
	nameIdx := 0
	if tree.Node(id).Token.Type != lexer.OPERATOR {
		nameIdx = 1
	}
	if nameIdx < len(barewords) {
		c.Name = string(tree.Node(barewords[nameIdx]).Token.Text)
	}

	if body, ok := firstBracketChild(tree, id); ok {
		c.Condition = newClause(tree, resolver, body)
	}

	return c
}

// parseAfterConstraint reads (after <goal> <goal>) where each goal is
// either a bare constraint name or a nested condition.
func parseAfterConstraint(tree *parser.SyntaxTree, id parser.NodeID, kind ConstraintKind, resolver PositionResolver) *Constraint {
	c := &Constraint{
		Kind:  kind,
		Node:  id,
		Range: resolveRange(tree, resolver, id),
	}

	goals := afterGoals(tree, id, resolver)
	if len(goals) > 0 {
		c.Predecessor = goals[0]
	}
	if len(goals) > 1 {
		c.Successor = goals[1]
	}
	return c
}

// afterGoals collects the sub-goals of an after constraint in source
// order, skipping the head bareword of a plain-bracket node.
func afterGoals(tree *parser.SyntaxTree, id parser.NodeID, resolver PositionResolver) []*Constraint {
	skipHead := tree.Node(id).Token.Type != lexer.OPERATOR

	var out []*Constraint
	for _, child := range tree.Node(id).Children {
		tok := tree.Node(child).Token
		switch {
		case tok.Type == lexer.OTHER:
			if skipHead {
				skipHead = false
				continue
			}
			out = append(out, &Constraint{
				Kind:  ConstraintNamed,
				Node:  child,
				Range: resolveRange(tree, resolver, child),
				Name:  string(tok.Text),
			})
		case parser.IsBracket(tok.Type):
			out = append(out, &Constraint{
				Kind:      ConstraintNamed,
				Node:      child,
				Range:     resolveRange(tree, resolver, child),
				Condition: newClause(tree, resolver, child),
			})
		}
	}
	return out
}
