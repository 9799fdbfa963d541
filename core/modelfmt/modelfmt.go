// Package modelfmt serializes extracted domain models into a compact,
// deterministic binary snapshot.
//
// Callers own model caching and invalidation; a snapshot plus its hash
// lets them skip re-extraction when a document has not changed. Identical
// models always produce identical bytes and therefore identical hashes.
//
// Layout: MAGIC(4) | VERSION(2, LE) | FLAGS(2, LE) | BODY_LEN(4, LE) | BODY
// where BODY is the Snapshot in deterministic CBOR. The file hash is
// BLAKE2b-256 over the complete encoding.
package modelfmt

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/pddl-lang/pddl/runtime/model"
)

const (
	// Magic is the file magic number (4 bytes)
	Magic = "PDDL"

	// Version is the format version (uint16, little-endian).
	// Breaking changes increment major, additions increment minor.
	Version uint16 = 0x0001
)

// Flags is a bitmask for optional features. No flags are defined yet; the
// field is reserved so readers can reject snapshots they cannot handle.
type Flags uint16

// Snapshot is the serialized shape of a domain model: declarations only,
// no syntax tree references.
type Snapshot struct {
	Name         string      `cbor:"1,keyasint"`
	Requirements []string    `cbor:"2,keyasint,omitempty"`
	Types        []TypeEdge  `cbor:"3,keyasint,omitempty"`
	Constants    []TypeEdge  `cbor:"4,keyasint,omitempty"`
	Predicates   []Signature `cbor:"5,keyasint,omitempty"`
	Functions    []Signature `cbor:"6,keyasint,omitempty"`
	Actions      []ActionSig `cbor:"7,keyasint,omitempty"`
}

// TypeEdge is one child -> parent edge; Parent is empty for orphans.
type TypeEdge struct {
	Child  string `cbor:"1,keyasint"`
	Parent string `cbor:"2,keyasint,omitempty"`
}

// Signature is a predicate or function head.
type Signature struct {
	Name   string  `cbor:"1,keyasint"`
	Params []Param `cbor:"2,keyasint,omitempty"`
}

// Param is one typed parameter; Type is empty when undeclared.
type Param struct {
	Name string `cbor:"1,keyasint"`
	Type string `cbor:"2,keyasint,omitempty"`
}

// ActionSig is an action summary: name, shape and parameters.
type ActionSig struct {
	Name     string  `cbor:"1,keyasint"`
	Durative bool    `cbor:"2,keyasint,omitempty"`
	Params   []Param `cbor:"3,keyasint,omitempty"`
}

// FromDomain flattens a domain model into its snapshot shape.
func FromDomain(d *model.Domain) *Snapshot {
	s := &Snapshot{
		Name:         d.Name(),
		Requirements: d.Requirements(),
	}

	s.Types = convertEdges(d.TypeGraph())
	s.Constants = convertEdges(d.Constants())

	for _, p := range d.Predicates() {
		s.Predicates = append(s.Predicates, signature(p))
	}
	for _, f := range d.Functions() {
		s.Functions = append(s.Functions, signature(f))
	}

	for _, a := range d.Actions() {
		s.Actions = append(s.Actions, ActionSig{
			Name:     a.Name,
			Durative: a.Kind == model.ActionDurative,
			Params:   convertParams(a.Parameters),
		})
	}

	return s
}

// convertEdges flattens a graph into edges, one edgeless entry per orphan
// so the snapshot preserves every declared name.
func convertEdges(g *model.InheritanceGraph) []TypeEdge {
	var out []TypeEdge
	seen := make(map[string]bool)
	for _, e := range g.Edges() {
		out = append(out, TypeEdge{Child: e.Child, Parent: e.Parent})
		seen[e.Child] = true
	}
	for _, name := range g.Names() {
		if !seen[name] {
			out = append(out, TypeEdge{Child: name})
		}
	}
	return out
}

func signature(v model.Variable) Signature {
	return Signature{Name: v.Name, Params: convertParams(v.Parameters)}
}

func convertParams(params []model.Parameter) []Param {
	var out []Param
	for _, p := range params {
		out = append(out, Param{Name: p.Name, Type: p.Type})
	}
	return out
}

// encMode is the deterministic CBOR encoder shared by all writes.
var encMode cbor.EncMode

func init() {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	encMode = em
}
