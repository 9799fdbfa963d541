package parser

import (
	"bytes"

	"github.com/pddl-lang/pddl/core/invariant"
	"github.com/pddl-lang/pddl/runtime/lexer"
)

// NodeID addresses a node in the tree's arena. Parent links are IDs rather
// than pointers, so the tree has no reference cycles.
type NodeID int32

// NoNode is the null node ID (the document root's parent).
const NoNode NodeID = -1

// Node is one syntax tree node wrapping a single token.
//
// Container-capable nodes (DOCUMENT, OPERATOR, LPAREN, KEYWORD) own an
// ordered child list. Bracket nodes (OPERATOR, LPAREN) additionally hold
// their matched close token once one is found; keyword nodes close
// implicitly and never hold one. Every other kind is a leaf.
type Node struct {
	Token    lexer.Token
	Parent   NodeID
	Children []NodeID
	Close    *lexer.Token // matched close bracket, bracket nodes only
}

// IsBracket reports whether a token type opens a bracket pair.
func IsBracket(tt lexer.TokenType) bool {
	return tt == lexer.OPERATOR || tt == lexer.LPAREN
}

// IsContainer reports whether a token type may own children.
func IsContainer(tt lexer.TokenType) bool {
	return IsBracket(tt) || tt == lexer.KEYWORD || tt == lexer.DOCUMENT
}

// SyntaxTree is the parse result: an arena of nodes under a single
// synthetic document root, plus the close-bracket tokens that had no
// matching open bracket. Immutable after Parse; all queries are read-only.
type SyntaxTree struct {
	Source    []byte
	Offending []lexer.Token // stray close brackets, recovered not fatal

	nodes []Node
}

// Root returns the document root's ID. The root always exists.
func (t *SyntaxTree) Root() NodeID { return 0 }

// Len returns the number of nodes in the arena.
func (t *SyntaxTree) Len() int { return len(t.nodes) }

// Node returns the node for an ID. The pointer is only valid for reading;
// the tree is immutable after construction.
func (t *SyntaxTree) Node(id NodeID) *Node {
	invariant.InRange(int(id), 0, len(t.nodes)-1, "node id")
	return &t.nodes[id]
}

// Start returns the byte offset where the node's range begins.
func (t *SyntaxTree) Start(id NodeID) int {
	if id == t.Root() {
		return 0
	}
	return t.Node(id).Token.Start
}

// End returns the byte offset where the node's range ends: through the
// matched close bracket, or through the last child when unmatched. The
// root always spans the whole source.
func (t *SyntaxTree) End(id NodeID) int {
	if id == t.Root() {
		return len(t.Source)
	}
	n := t.Node(id)
	if n.Close != nil {
		return n.Close.End
	}
	end := n.Token.End
	if len(n.Children) > 0 {
		if last := t.End(n.Children[len(n.Children)-1]); last > end {
			end = last
		}
	}
	return end
}

// Contains reports whether the node's range contains the offset. Both
// boundaries are inclusive so that every offset in [0, len(source)]
// resolves to some node.
func (t *SyntaxTree) Contains(id NodeID, offset int) bool {
	return t.Start(id) <= offset && offset <= t.End(id)
}

// Text returns the full source text of the node's range, including its own
// delimiters and matched close bracket.
func (t *SyntaxTree) Text(id NodeID) string {
	return string(t.Source[t.Start(id):t.End(id)])
}

// NodeAt resolves the deepest node containing the offset: it recurses into
// the first child whose range contains the offset and falls back to the
// node itself once no child fits. Leaf-level hits resolve via the fallback.
func (t *SyntaxTree) NodeAt(offset int) NodeID {
	id := t.Root()
	for {
		descended := false
		for _, child := range t.Node(id).Children {
			if t.Contains(child, offset) {
				id = child
				descended = true
				break
			}
		}
		if !descended {
			return id
		}
	}
}

// FirstChildOfKind returns the first direct child whose token satisfies the
// predicate.
func (t *SyntaxTree) FirstChildOfKind(id NodeID, pred func(lexer.Token) bool) (NodeID, bool) {
	for _, child := range t.Node(id).Children {
		if pred(t.Node(child).Token) {
			return child, true
		}
	}
	return NoNode, false
}

// ChildrenOfKind returns all direct children whose token satisfies the
// predicate, in source order.
func (t *SyntaxTree) ChildrenOfKind(id NodeID, pred func(lexer.Token) bool) []NodeID {
	var out []NodeID
	for _, child := range t.Node(id).Children {
		if pred(t.Node(child).Token) {
			out = append(out, child)
		}
	}
	return out
}

// KeywordSections returns the node's direct children that form a section
// with the given keyword spelling, case-insensitive: keyword children
// spelled name, and bracket children whose first keyword child is spelled
// name. Repeated sections are legal mid-edit, so all matches are returned
// in source order.
func (t *SyntaxTree) KeywordSections(id NodeID, name string) []NodeID {
	isHead := func(tok lexer.Token) bool {
		return tok.Type == lexer.KEYWORD && foldEqual(tok.Text, name)
	}

	var out []NodeID
	for _, child := range t.Node(id).Children {
		tok := t.Node(child).Token
		switch {
		case isHead(tok):
			out = append(out, child)
		case IsBracket(tok.Type):
			if _, ok := t.FirstChildOfKind(child, isHead); ok {
				out = append(out, child)
			}
		}
	}
	return out
}

// foldEqual compares a token text against an ASCII spelling, ignoring case.
func foldEqual(text []byte, name string) bool {
	if len(text) != len(name) {
		return false
	}
	for i := 0; i < len(name); i++ {
		a, b := text[i], name[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

// AncestorsOfKind returns the node's ancestors whose token type is one of
// the given types, nearest first. The document root is never included.
func (t *SyntaxTree) AncestorsOfKind(id NodeID, types ...lexer.TokenType) []NodeID {
	var out []NodeID
	for cur := t.Node(id).Parent; cur != NoNode && cur != t.Root(); cur = t.Node(cur).Parent {
		tt := t.Node(cur).Token.Type
		for _, want := range types {
			if tt == want {
				out = append(out, cur)
				break
			}
		}
	}
	return out
}

// NestedText returns the text covered by the node's descendants, excluding
// the node's own opening token and matched close bracket.
func (t *SyntaxTree) NestedText(id NodeID) string {
	innerEnd := t.End(id)
	if n := t.Node(id); n.Close != nil {
		innerEnd = n.Close.Start
	}
	innerStart := t.Node(id).Token.End
	if id == t.Root() {
		innerStart = 0
	}
	if innerStart >= innerEnd {
		return ""
	}
	return string(t.Source[innerStart:innerEnd])
}

// NonCommentText returns the node's full text with comment sub-ranges
// elided.
func (t *SyntaxTree) NonCommentText(id NodeID) string {
	var buf bytes.Buffer
	t.appendNonComment(&buf, id)
	return buf.String()
}

func (t *SyntaxTree) appendNonComment(buf *bytes.Buffer, id NodeID) {
	n := t.Node(id)
	if n.Token.Type == lexer.COMMENT {
		return
	}
	buf.Write(n.Token.Text)
	for _, child := range n.Children {
		t.appendNonComment(buf, child)
	}
	if n.Close != nil {
		buf.Write(n.Close.Text)
	}
}

// Siblings returns the parent's child list and this node's index in it.
// The root has no siblings and reports index -1.
func (t *SyntaxTree) Siblings(id NodeID) ([]NodeID, int) {
	parent := t.Node(id).Parent
	if parent == NoNode {
		return nil, -1
	}
	siblings := t.Node(parent).Children
	for i, sib := range siblings {
		if sib == id {
			return siblings, i
		}
	}
	return siblings, -1
}
