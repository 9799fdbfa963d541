package model

import "github.com/pddl-lang/pddl/runtime/lexer"

// TypeEdge is one child -> parent edge in a type or object inheritance
// graph.
type TypeEdge struct {
	Child  string
	Parent string
}

// InheritanceGraph is the directed type/object graph of a :types,
// :constants or :objects section. Names declared without a parent carry no
// edge; no implicit root is invented for them.
type InheritanceGraph struct {
	edges []TypeEdge
	names []string
}

// ParseTypeList parses a flat dash-grouped token run like
//
//	a b - parent c - other orphan
//
// into edges {a->parent, b->parent, c->other} with "orphan" edgeless.
// Whitespace and comment tokens are skipped; the parse never fails.
func ParseTypeList(tokens []lexer.Token) *InheritanceGraph {
	g := &InheritanceGraph{}
	var pending []string
	expectParent := false

	for _, tok := range tokens {
		switch tok.Type {
		case lexer.DASH:
			if len(pending) > 0 {
				expectParent = true
			}
		case lexer.OTHER:
			name := string(tok.Text)
			if expectParent {
				for _, child := range pending {
					g.edges = append(g.edges, TypeEdge{Child: child, Parent: name})
				}
				g.addName(name)
				pending = pending[:0]
				expectParent = false
			} else {
				g.addName(name)
				pending = append(pending, name)
			}
		}
		// Everything else (whitespace, comments, stray tokens) is skipped
	}

	return g
}

func (g *InheritanceGraph) addName(name string) {
	for _, existing := range g.names {
		if existing == name {
			return
		}
	}
	g.names = append(g.names, name)
}

// Edges returns the child -> parent edge set in declaration order.
func (g *InheritanceGraph) Edges() []TypeEdge {
	return g.edges
}

// Names returns every declared name in declaration order, including
// parents and edgeless orphans.
func (g *InheritanceGraph) Names() []string {
	return g.names
}

// Has reports whether a name was declared anywhere in the section.
func (g *InheritanceGraph) Has(name string) bool {
	for _, existing := range g.names {
		if existing == name {
			return true
		}
	}
	return false
}

// ParentsOf returns the declared parents of a name, in declaration order.
func (g *InheritanceGraph) ParentsOf(name string) []string {
	var out []string
	for _, e := range g.edges {
		if e.Child == name {
			out = append(out, e.Parent)
		}
	}
	return out
}

// ChildrenOf returns the declared children of a name, in declaration order.
func (g *InheritanceGraph) ChildrenOf(name string) []string {
	var out []string
	for _, e := range g.edges {
		if e.Parent == name {
			out = append(out, e.Child)
		}
	}
	return out
}

// parseParameters applies the same dash-grouping rule scoped to ?name
// tokens: "?a ?b - loc ?c" declares a and b of type loc and c untyped.
func parseParameters(tokens []lexer.Token) []Parameter {
	var out []Parameter
	var pending []int // indices into out awaiting a type
	expectType := false

	for _, tok := range tokens {
		switch tok.Type {
		case lexer.PARAMETER:
			out = append(out, Parameter{Name: string(tok.Text[1:])})
			pending = append(pending, len(out)-1)
		case lexer.DASH:
			if len(pending) > 0 {
				expectType = true
			}
		case lexer.OTHER:
			if expectType {
				typeName := string(tok.Text)
				for _, idx := range pending {
					out[idx].Type = typeName
				}
				pending = pending[:0]
				expectType = false
			}
		}
	}

	return out
}
