package model

import (
	"github.com/pddl-lang/pddl/runtime/parser"
)

// Derived is one :derived predicate/function: a declaration head plus the
// condition its value is computed from.
type Derived struct {
	Variable
	Condition *Clause
}

// ParseDerived extracts a derived predicate from one :derived bracket
// node:
//
//	(:derived (inverted ?x ?y) (above ?y ?x))
//
// The head s-expression yields name and parameters, the remaining nested
// expression the condition. Returns ok=false when there is no head to
// name the construct; such entries are filtered from the section rather
// than failing it.
func ParseDerived(tree *parser.SyntaxTree, id parser.NodeID, resolver PositionResolver) (*Derived, bool) {
	kw, ok := keywordChild(tree, id, ":derived")
	if !ok {
		return nil, false
	}

	brackets := bracketChildren(tree, kw)
	if len(brackets) == 0 {
		return nil, false
	}

	head, ok := parseVariable(tree, brackets[0], resolver)
	if !ok {
		return nil, false
	}

	d := &Derived{Variable: head}
	d.Node = id
	d.Range = resolveRange(tree, resolver, id)
	d.Documentation = precedingComments(tree, id)

	if len(brackets) > 1 {
		d.Condition = newClause(tree, resolver, brackets[1])
	}

	return d, true
}
