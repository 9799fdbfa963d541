package model

import (
	"fmt"
	"strings"

	"github.com/pddl-lang/pddl/runtime/parser"
)

// Problem is the aggregate model of one PDDL problem document: objects,
// initial state and goal for a named domain.
type Problem struct {
	name string
	node parser.NodeID
	rng  Range
	tree *parser.SyntaxTree

	domainName   string
	requirements []string
	objects      *InheritanceGraph
	init         *Clause
	goal         *Clause
	metric       *Clause
	constraints  []*Constraint
	warnings     []Warning
}

// Name returns the declared problem name, empty when not yet typed.
func (p *Problem) Name() string { return p.name }

// Node returns the (define ...) node the model was extracted from.
func (p *Problem) Node() parser.NodeID { return p.node }

// Range returns the source range of the whole problem document.
func (p *Problem) Range() Range { return p.rng }

// Tree returns the syntax tree the model references into.
func (p *Problem) Tree() *parser.SyntaxTree { return p.tree }

// DomainName returns the :domain reference, empty when absent.
func (p *Problem) DomainName() string { return p.domainName }

// Requirements returns the declared :requirements keywords.
func (p *Problem) Requirements() []string { return p.requirements }

// Objects returns the object graph of the :objects section.
func (p *Problem) Objects() *InheritanceGraph { return p.objects }

// Init returns the :init section as a clause reference, nil when absent.
func (p *Problem) Init() *Clause { return p.init }

// Goal returns the goal expression, nil when absent.
func (p *Problem) Goal() *Clause { return p.goal }

// Metric returns the :metric section as a clause reference, nil when absent.
func (p *Problem) Metric() *Clause { return p.metric }

// Constraints returns the :constraints entries in source order.
func (p *Problem) Constraints() []*Constraint { return p.constraints }

// Warnings returns non-fatal findings such as unknown section keywords.
func (p *Problem) Warnings() []Warning { return p.warnings }

// BuildProblem extracts a problem model from a parsed document. Mirrors
// BuildDomain: fatal only without (define ...), tolerant everywhere else.
func BuildProblem(tree *parser.SyntaxTree, resolver PositionResolver) (*Problem, error) {
	define, ok := findDefine(tree)
	if !ok {
		return nil, fmt.Errorf("building problem model: %w", ErrMissingDefine)
	}

	p := &Problem{
		node:    define,
		rng:     resolveRange(tree, resolver, define),
		tree:    tree,
		objects: &InheritanceGraph{},
	}

	if head, ok := operatorChild(tree, define, "problem"); ok {
		p.name, _ = firstBareword(tree, head)
	}

	for _, section := range bracketChildren(tree, define) {
		p.addSection(tree, section, resolver)
	}

	return p, nil
}

func (p *Problem) addSection(tree *parser.SyntaxTree, section parser.NodeID, resolver PositionResolver) {
	kw, ok := firstKeyword(tree, section)
	if !ok {
		return
	}

	switch strings.ToLower(string(tree.Node(kw).Token.Text)) {
	case ":domain":
		p.domainName, _ = firstBareword(tree, kw)

	case ":requirements":
		p.requirements = append(p.requirements, requirementNames(tree, section)...)

	case ":objects":
		p.objects = mergeGraphs(p.objects, ParseTypeList(leafTokens(tree, kw)))

	case ":init":
		p.init = newClause(tree, resolver, section)

	case ":goal":
		if body, ok := firstBracketChild(tree, kw); ok {
			p.goal = newClause(tree, resolver, body)
		}

	case ":metric":
		p.metric = newClause(tree, resolver, section)

	case ":constraints":
		p.constraints = append(p.constraints, ParseConstraints(tree, section, resolver)...)

	default:
		p.warnings = append(p.warnings, unknownSectionWarning(tree, kw, problemSectionKeywords, resolver))
	}
}
