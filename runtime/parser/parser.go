// Package parser builds an error-tolerant concrete syntax tree over PDDL
// source text.
//
// The builder never rejects input: the user is usually mid-typing, so
// unmatched close brackets are recorded and skipped, unclosed brackets stay
// open to the end of input, and every byte of the source remains reachable
// through the tree.
package parser

import (
	"github.com/pddl-lang/pddl/core/invariant"
	"github.com/pddl-lang/pddl/runtime/lexer"
)

// ParserOpt represents a parser configuration option
type ParserOpt func(*ParserConfig)

// ParserConfig holds parser configuration
type ParserConfig struct {
	cutoff int
}

// WithCutoff bounds the parse: tokens starting past the offset are never
// scanned, so a parse at the cursor does not pay for the whole document.
func WithCutoff(offset int) ParserOpt {
	return func(c *ParserConfig) {
		c.cutoff = offset
	}
}

// Parse tokenizes source and builds its syntax tree. The returned tree is
// immutable and freshly owned; the only failure is a negative cutoff.
func Parse(source []byte, opts ...ParserOpt) (*SyntaxTree, error) {
	config := &ParserConfig{cutoff: len(source)}
	for _, opt := range opts {
		opt(config)
	}

	b := &builder{
		tree: &SyntaxTree{
			Source: source,
			// Heuristic: one node per ~4 bytes of source
			nodes: make([]Node, 0, len(source)/4+1),
		},
	}

	// Synthetic document root owns everything
	b.tree.nodes = append(b.tree.nodes, Node{
		Token:  lexer.Token{Type: lexer.DOCUMENT},
		Parent: NoNode,
	})
	b.cursor = b.tree.Root()

	if err := lexer.Tokenize(source, config.cutoff, b.onToken); err != nil {
		return nil, err
	}

	invariant.Postcondition(b.tree.Len() > 0, "tree must keep its document root")
	return b.tree, nil
}

// ParseString is a convenience wrapper for tests.
func ParseString(input string, opts ...ParserOpt) (*SyntaxTree, error) {
	return Parse([]byte(input), opts...)
}

// builder holds the single-writer build cursor: the most recently opened
// node. Local to one Parse call, never shared.
type builder struct {
	tree   *SyntaxTree
	cursor NodeID
}

// onToken attaches one token to the tree.
func (b *builder) onToken(tok lexer.Token) {
	// Leaves never own children: any follow-up token first closes a leaf
	// cursor back to its parent
	if !IsContainer(b.kind(b.cursor)) {
		b.cursor = b.parent(b.cursor)
	}

	switch tok.Type {
	case lexer.KEYWORD:
		// A keyword implicitly ends the previous keyword section at the
		// same level without requiring a closing bracket
		for b.kind(b.cursor) == lexer.KEYWORD {
			b.cursor = b.parent(b.cursor)
		}
		b.cursor = b.attach(tok)

	case lexer.RPAREN:
		b.closeBracket(tok)

	default:
		// Open brackets descend; leaf kinds become the cursor too and are
		// closed by whatever token follows
		b.cursor = b.attach(tok)
	}
}

// closeBracket walks upward from the cursor for an open bracket to match,
// implicitly closing keyword and leaf nodes along the way. A close bracket
// with no open bracket above the cursor is recorded as offending; malformed
// input never aborts the build.
func (b *builder) closeBracket(tok lexer.Token) {
	for walk := b.cursor; walk != NoNode; walk = b.tree.Node(walk).Parent {
		n := b.tree.Node(walk)
		if IsBracket(n.Token.Type) && n.Close == nil {
			closeTok := tok
			n.Close = &closeTok
			b.cursor = n.Parent
			return
		}
	}
	b.tree.Offending = append(b.tree.Offending, tok)
}

// attach adds a token as a new child node of the cursor and returns its ID.
func (b *builder) attach(tok lexer.Token) NodeID {
	id := NodeID(len(b.tree.nodes))
	b.tree.nodes = append(b.tree.nodes, Node{
		Token:  tok,
		Parent: b.cursor,
	})
	parent := b.tree.Node(b.cursor)
	parent.Children = append(parent.Children, id)
	return id
}

func (b *builder) kind(id NodeID) lexer.TokenType {
	return b.tree.Node(id).Token.Type
}

func (b *builder) parent(id NodeID) NodeID {
	p := b.tree.Node(id).Parent
	// The document root is a container, so only non-root nodes are ever
	// closed back to their parent
	invariant.Invariant(p != NoNode, "cannot close past the document root")
	return p
}
