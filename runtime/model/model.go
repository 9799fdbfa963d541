// Package model extracts typed domain and problem models from a PDDL
// syntax tree.
//
// Extraction is tolerant by design: the single fatal condition is a missing
// (define ...) head. Every other absence - sections, names, clauses -
// yields an empty collection or an unset field so editor tooling can keep
// operating on partially typed text. Models are built fresh per call and
// hold read-only references into the tree they were built from; callers own
// caching and invalidation.
package model

import (
	"strings"

	"github.com/pddl-lang/pddl/runtime/lexer"
	"github.com/pddl-lang/pddl/runtime/parser"
)

// PositionResolver maps byte offsets to line/column positions and back.
// The surrounding editor layer owns the implementation; lexer.LineIndex is
// the in-repo default.
type PositionResolver interface {
	PositionAt(offset int) lexer.Position
	OffsetAt(pos lexer.Position) int
}

// Range is a resolved source span, usable for highlighting and navigation.
type Range struct {
	Start       lexer.Position
	End         lexer.Position
	StartOffset int
	EndOffset   int
}

// Parameter is one typed parameter, e.g. "?b" of type "block". Type is
// empty when the parameter carries no declaration.
type Parameter struct {
	Name string
	Type string
}

// Variable is a named, parameterized declaration: a predicate, function,
// or derived predicate head.
type Variable struct {
	Name          string
	Parameters    []Parameter
	Node          parser.NodeID
	Range         Range
	Documentation []string
}

// Clause is a reference to one condition/effect/duration expression in the
// syntax tree. It is a view, not a copy.
type Clause struct {
	Node  parser.NodeID
	Range Range
}

// Text returns the clause's source text from the tree it was built from.
func (c *Clause) Text(tree *parser.SyntaxTree) string {
	return tree.Text(c.Node)
}

// resolveRange computes the display range of a node.
func resolveRange(tree *parser.SyntaxTree, resolver PositionResolver, id parser.NodeID) Range {
	start, end := tree.Start(id), tree.End(id)
	return Range{
		Start:       resolver.PositionAt(start),
		End:         resolver.PositionAt(end),
		StartOffset: start,
		EndOffset:   end,
	}
}

func newClause(tree *parser.SyntaxTree, resolver PositionResolver, id parser.NodeID) *Clause {
	return &Clause{Node: id, Range: resolveRange(tree, resolver, id)}
}

// headName returns the word naming a bracket node: the operator spelling
// for OPERATOR nodes, otherwise the first bareword child. Empty when the
// node is anonymous.
func headName(tree *parser.SyntaxTree, id parser.NodeID) string {
	tok := tree.Node(id).Token
	if tok.Type == lexer.OPERATOR {
		return strings.ToLower(tok.OperatorName())
	}
	if name, ok := firstBareword(tree, id); ok {
		return strings.ToLower(name)
	}
	return ""
}

// firstBareword returns the text of the node's first OTHER child.
func firstBareword(tree *parser.SyntaxTree, id parser.NodeID) (string, bool) {
	child, ok := tree.FirstChildOfKind(id, func(tok lexer.Token) bool {
		return tok.Type == lexer.OTHER
	})
	if !ok {
		return "", false
	}
	return string(tree.Node(child).Token.Text), true
}

// bracketChildren returns the node's direct bracket children in source order.
func bracketChildren(tree *parser.SyntaxTree, id parser.NodeID) []parser.NodeID {
	return tree.ChildrenOfKind(id, func(tok lexer.Token) bool {
		return parser.IsBracket(tok.Type)
	})
}

// firstBracketChild returns the node's first bracket child.
func firstBracketChild(tree *parser.SyntaxTree, id parser.NodeID) (parser.NodeID, bool) {
	return tree.FirstChildOfKind(id, func(tok lexer.Token) bool {
		return parser.IsBracket(tok.Type)
	})
}

// keywordChild returns the node's first KEYWORD child with the given
// spelling (":parameters", ":effect", ...), case-insensitive.
func keywordChild(tree *parser.SyntaxTree, id parser.NodeID, keyword string) (parser.NodeID, bool) {
	return tree.FirstChildOfKind(id, func(tok lexer.Token) bool {
		return tok.Type == lexer.KEYWORD && strings.EqualFold(string(tok.Text), keyword)
	})
}

// leafTokens returns the node's direct child tokens, skipping whitespace
// and comments. The flat sequence feeds the dash-grouping parsers.
func leafTokens(tree *parser.SyntaxTree, id parser.NodeID) []lexer.Token {
	var out []lexer.Token
	for _, child := range tree.Node(id).Children {
		tok := tree.Node(child).Token
		switch tok.Type {
		case lexer.WHITESPACE, lexer.COMMENT:
			continue
		}
		out = append(out, tok)
	}
	return out
}

// subtreeLeafTokens returns all leaf tokens in the node's subtree, skipping
// whitespace and comments, in source order.
func subtreeLeafTokens(tree *parser.SyntaxTree, id parser.NodeID) []lexer.Token {
	var out []lexer.Token
	var walk func(parser.NodeID)
	walk = func(cur parser.NodeID) {
		for _, child := range tree.Node(cur).Children {
			tok := tree.Node(child).Token
			switch tok.Type {
			case lexer.WHITESPACE, lexer.COMMENT:
				continue
			}
			out = append(out, tok)
			walk(child)
		}
	}
	walk(id)
	return out
}

// precedingComments collects the comment block immediately preceding a
// node: a backward scan over whitespace and comment siblings, stopped by
// anything else. This is a documentation heuristic over siblings, not a
// grammar rule. Returned in source order, with the leading ';' run and
// surrounding space trimmed.
func precedingComments(tree *parser.SyntaxTree, id parser.NodeID) []string {
	siblings, idx := tree.Siblings(id)
	if idx < 0 {
		return nil
	}

	var reversed []string
scan:
	for i := idx - 1; i >= 0; i-- {
		tok := tree.Node(siblings[i]).Token
		switch tok.Type {
		case lexer.WHITESPACE:
			continue
		case lexer.COMMENT:
			reversed = append(reversed, trimCommentMarker(string(tok.Text)))
		default:
			break scan
		}
	}

	if len(reversed) == 0 {
		return nil
	}
	out := make([]string, len(reversed))
	for i, line := range reversed {
		out[len(reversed)-1-i] = line
	}
	return out
}

func trimCommentMarker(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, ";"))
}
