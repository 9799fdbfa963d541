package model

import (
	"github.com/pddl-lang/pddl/runtime/lexer"
	"github.com/pddl-lang/pddl/runtime/parser"
)

// ActionKind distinguishes the action variants.
type ActionKind int

const (
	ActionInstant ActionKind = iota
	ActionDurative
)

// Action is one extracted :action, :durative-action, :process or :event
// construct. Every field besides Node and Range is optional: extraction
// never fails on a missing name, parameter list or clause, so tooling can
// operate on half-typed constructs.
//
// Instant actions carry Precondition/Effect; durative actions carry
// Duration/Condition/Effect.
type Action struct {
	Kind          ActionKind
	Name          string // empty when the name is not yet typed
	Parameters    []Parameter
	Precondition  *Clause
	Condition     *Clause
	Duration      *Clause
	Effect        *Clause
	Node          parser.NodeID
	Range         Range
	Documentation []string
}

// ParseAction extracts an instant action from one bracket node whose head
// keyword is sectionKeyword (":action", ":process" or ":event").
func ParseAction(tree *parser.SyntaxTree, id parser.NodeID, sectionKeyword string, resolver PositionResolver) *Action {
	a := &Action{
		Kind:          ActionInstant,
		Node:          id,
		Range:         resolveRange(tree, resolver, id),
		Documentation: precedingComments(tree, id),
	}

	a.Name = constructName(tree, id, sectionKeyword)
	a.Parameters = constructParameters(tree, id)
	a.Precondition = keywordClause(tree, id, ":precondition", resolver)
	a.Effect = keywordClause(tree, id, ":effect", resolver)

	return a
}

// ParseDurativeAction extracts a durative action from one :durative-action
// bracket node.
func ParseDurativeAction(tree *parser.SyntaxTree, id parser.NodeID, resolver PositionResolver) *Action {
	a := &Action{
		Kind:          ActionDurative,
		Node:          id,
		Range:         resolveRange(tree, resolver, id),
		Documentation: precedingComments(tree, id),
	}

	a.Name = constructName(tree, id, ":durative-action")
	a.Parameters = constructParameters(tree, id)
	a.Duration = keywordClause(tree, id, ":duration", resolver)
	a.Condition = keywordClause(tree, id, ":condition", resolver)
	a.Effect = keywordClause(tree, id, ":effect", resolver)

	return a
}

// constructName locates the construct's name: the first bareword child of
// the head keyword node. The builder nests tokens under the most recent
// keyword, so "(:action a1 ...)" places "a1" under ":action".
func constructName(tree *parser.SyntaxTree, id parser.NodeID, sectionKeyword string) string {
	head, ok := keywordChild(tree, id, sectionKeyword)
	if !ok {
		return ""
	}
	name, _ := firstBareword(tree, head)
	return name
}

// constructParameters decodes the :parameters clause into a typed list.
// Missing clause means no parameters, not an error.
func constructParameters(tree *parser.SyntaxTree, id parser.NodeID) []Parameter {
	kw, ok := keywordChild(tree, id, ":parameters")
	if !ok {
		return nil
	}
	list, ok := firstBracketChild(tree, kw)
	if !ok {
		return nil
	}
	return parseParameters(subtreeLeafTokens(tree, list))
}

// keywordClause locates a keyword section inside the construct and returns
// its first bracket child as a clause reference, nil when either is absent.
func keywordClause(tree *parser.SyntaxTree, id parser.NodeID, keyword string, resolver PositionResolver) *Clause {
	kw, ok := keywordChild(tree, id, keyword)
	if !ok {
		return nil
	}
	body, ok := firstBracketChild(tree, kw)
	if !ok {
		return nil
	}
	return newClause(tree, resolver, body)
}

// parseVariable extracts a predicate or function declaration from one
// bracket node like "(at ?x ?l)". The name comes from the operator
// spelling when the bracket consumed one, otherwise from the first
// bareword child.
func parseVariable(tree *parser.SyntaxTree, id parser.NodeID, resolver PositionResolver) (Variable, bool) {
	v := Variable{
		Node:          id,
		Range:         resolveRange(tree, resolver, id),
		Documentation: precedingComments(tree, id),
	}

	tok := tree.Node(id).Token
	if tok.Type == lexer.OPERATOR {
		v.Name = tok.OperatorName()
	} else if name, ok := firstBareword(tree, id); ok {
		v.Name = name
	} else {
		return Variable{}, false
	}

	v.Parameters = parseParameters(subtreeLeafTokens(tree, id))
	return v, true
}
