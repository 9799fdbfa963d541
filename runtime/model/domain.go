package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pddl-lang/pddl/runtime/lexer"
	"github.com/pddl-lang/pddl/runtime/parser"
)

// ErrMissingDefine is the one fatal extraction error: without a
// (define ...) head no model can be produced at all.
var ErrMissingDefine = errors.New("missing (define ...) element")

// Domain is the aggregate model of one PDDL domain document. Built fresh
// per call and replaced wholesale on reparse; holds read-only references
// into the tree it was built from.
type Domain struct {
	name string
	node parser.NodeID
	rng  Range
	tree *parser.SyntaxTree

	requirements []string
	types        *InheritanceGraph
	constants    *InheritanceGraph
	predicates   []Variable
	functions    []Variable
	derived      []*Derived
	actions      []*Action
	processes    []*Action
	events       []*Action
	constraints  []*Constraint
	warnings     []Warning
}

// Name returns the declared domain name, empty when not yet typed.
func (d *Domain) Name() string { return d.name }

// Node returns the (define ...) node the model was extracted from.
func (d *Domain) Node() parser.NodeID { return d.node }

// Range returns the source range of the whole domain document.
func (d *Domain) Range() Range { return d.rng }

// Tree returns the syntax tree the model references into.
func (d *Domain) Tree() *parser.SyntaxTree { return d.tree }

// Requirements returns the declared :requirements keywords, colons
// included, in source order.
func (d *Domain) Requirements() []string { return d.requirements }

// Types returns the declared type names in source order.
func (d *Domain) Types() []string { return d.types.Names() }

// TypeGraph returns the type inheritance graph.
func (d *Domain) TypeGraph() *InheritanceGraph { return d.types }

// Constants returns the constants graph (names grouped by type).
func (d *Domain) Constants() *InheritanceGraph { return d.constants }

// Predicates returns the declared predicates in source order.
func (d *Domain) Predicates() []Variable { return d.predicates }

// Functions returns the declared functions in source order.
func (d *Domain) Functions() []Variable { return d.functions }

// Derived returns the derived predicates in source order.
func (d *Domain) Derived() []*Derived { return d.derived }

// Actions returns the instant and durative actions in source order.
func (d *Domain) Actions() []*Action { return d.actions }

// Processes returns the :process constructs in source order.
func (d *Domain) Processes() []*Action { return d.processes }

// Events returns the :event constructs in source order.
func (d *Domain) Events() []*Action { return d.events }

// Constraints returns the :constraints entries in source order.
func (d *Domain) Constraints() []*Constraint { return d.constraints }

// Warnings returns non-fatal findings such as unknown section keywords.
func (d *Domain) Warnings() []Warning { return d.warnings }

// BuildDomain extracts a domain model from a parsed document. The only
// fatal condition is a missing (define ...) head; every missing section is
// an empty collection.
func BuildDomain(tree *parser.SyntaxTree, resolver PositionResolver) (*Domain, error) {
	define, ok := findDefine(tree)
	if !ok {
		return nil, fmt.Errorf("building domain model: %w", ErrMissingDefine)
	}

	d := &Domain{
		node:      define,
		rng:       resolveRange(tree, resolver, define),
		tree:      tree,
		types:     &InheritanceGraph{},
		constants: &InheritanceGraph{},
	}

	if head, ok := operatorChild(tree, define, "domain"); ok {
		d.name, _ = firstBareword(tree, head)
	}

	for _, section := range bracketChildren(tree, define) {
		d.addSection(tree, section, resolver)
	}

	return d, nil
}

// addSection dispatches one top-level bracket of the define body to its
// structural parser. Bracket nodes without a section keyword (such as the
// (domain ...) head itself) are skipped.
func (d *Domain) addSection(tree *parser.SyntaxTree, section parser.NodeID, resolver PositionResolver) {
	kw, ok := firstKeyword(tree, section)
	if !ok {
		return
	}

	switch strings.ToLower(string(tree.Node(kw).Token.Text)) {
	case ":requirements":
		d.requirements = append(d.requirements, requirementNames(tree, section)...)

	case ":types":
		d.types = mergeGraphs(d.types, ParseTypeList(leafTokens(tree, kw)))

	case ":constants":
		d.constants = mergeGraphs(d.constants, ParseTypeList(leafTokens(tree, kw)))

	case ":predicates":
		for _, decl := range bracketChildren(tree, kw) {
			if v, ok := parseVariable(tree, decl, resolver); ok {
				d.predicates = append(d.predicates, v)
			}
		}

	case ":functions":
		for _, decl := range bracketChildren(tree, kw) {
			if v, ok := parseVariable(tree, decl, resolver); ok {
				d.functions = append(d.functions, v)
			}
		}

	case ":derived":
		if dv, ok := ParseDerived(tree, section, resolver); ok {
			d.derived = append(d.derived, dv)
		}

	case ":action":
		d.actions = append(d.actions, ParseAction(tree, section, ":action", resolver))

	case ":durative-action":
		d.actions = append(d.actions, ParseDurativeAction(tree, section, resolver))

	case ":process":
		d.processes = append(d.processes, ParseAction(tree, section, ":process", resolver))

	case ":event":
		d.events = append(d.events, ParseAction(tree, section, ":event", resolver))

	case ":constraints":
		d.constraints = append(d.constraints, ParseConstraints(tree, section, resolver)...)

	default:
		d.warnings = append(d.warnings, unknownSectionWarning(tree, kw, domainSectionKeywords, resolver))
	}
}

// Build extracts whichever model the document declares: a problem when the
// define body carries a (problem ...) head, otherwise a domain. Exactly one
// of the results is non-nil on success.
func Build(tree *parser.SyntaxTree, resolver PositionResolver) (*Domain, *Problem, error) {
	define, ok := findDefine(tree)
	if !ok {
		return nil, nil, fmt.Errorf("building model: %w", ErrMissingDefine)
	}

	if _, isProblem := operatorChild(tree, define, "problem"); isProblem {
		p, err := BuildProblem(tree, resolver)
		return nil, p, err
	}
	d, err := BuildDomain(tree, resolver)
	return d, nil, err
}

// findDefine locates the top-level (define ...) bracket.
func findDefine(tree *parser.SyntaxTree) (parser.NodeID, bool) {
	return tree.FirstChildOfKind(tree.Root(), func(tok lexer.Token) bool {
		return tok.Type == lexer.OPERATOR && strings.EqualFold(tok.OperatorName(), "define")
	})
}

// operatorChild returns the node's first OPERATOR child with the given
// spelling, e.g. the (domain ...) head inside (define ...).
func operatorChild(tree *parser.SyntaxTree, id parser.NodeID, name string) (parser.NodeID, bool) {
	return tree.FirstChildOfKind(id, func(tok lexer.Token) bool {
		return tok.Type == lexer.OPERATOR && strings.EqualFold(tok.OperatorName(), name)
	})
}

// firstKeyword returns the node's first KEYWORD child: the section head of
// brackets like (:action ...).
func firstKeyword(tree *parser.SyntaxTree, id parser.NodeID) (parser.NodeID, bool) {
	return tree.FirstChildOfKind(id, func(tok lexer.Token) bool {
		return tok.Type == lexer.KEYWORD
	})
}

// requirementNames collects the requirement keywords of a :requirements
// section. Each requirement is itself a keyword node: the builder closes
// the previous keyword when the next begins, so they sit as siblings after
// the section head.
func requirementNames(tree *parser.SyntaxTree, section parser.NodeID) []string {
	keywords := tree.ChildrenOfKind(section, func(tok lexer.Token) bool {
		return tok.Type == lexer.KEYWORD
	})
	if len(keywords) == 0 {
		return nil
	}

	var out []string
	for _, kw := range keywords[1:] {
		out = append(out, string(tree.Node(kw).Token.Text))
	}
	return out
}

// mergeGraphs concatenates two inheritance graphs; repeated sections are
// legal mid-edit.
func mergeGraphs(dst, src *InheritanceGraph) *InheritanceGraph {
	dst.edges = append(dst.edges, src.edges...)
	for _, name := range src.names {
		dst.addName(name)
	}
	return dst
}

func unknownSectionWarning(tree *parser.SyntaxTree, kw parser.NodeID, known []string, resolver PositionResolver) Warning {
	name := string(tree.Node(kw).Token.Text)
	w := Warning{
		Message: fmt.Sprintf("unknown section %s", name),
		Range:   resolveRange(tree, resolver, kw),
	}
	if match := closestSection(name, known); match != "" && !strings.EqualFold(match, name) {
		w.Suggestion = fmt.Sprintf("did you mean %s?", match)
	}
	return w
}
