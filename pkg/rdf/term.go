package rdf

import (
	"bytes"
	"fmt"
)

// NodeType represents the type of an RDF node
type NodeType byte

const (
	NodeTypeInvalid NodeType = iota
	NodeTypeIRI
	NodeTypeLiteral
	NodeTypeBlank
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeIRI:
		return "iri"
	case NodeTypeLiteral:
		return "literal"
	case NodeTypeBlank:
		return "blank"
	default:
		return "invalid"
	}
}

// Term is one of IRITerm, LiteralTerm or BlankTerm
type Term interface {
	Type() NodeType
	String() string
	Equal(other Term) bool
}

// IRITerm represents an IRI. The IRI is stored as given; no normalization is applied.
type IRITerm struct {
	IRI string
}

func NewIRI(iri string) IRITerm {
	return IRITerm{IRI: iri}
}

func (t IRITerm) Type() NodeType {
	return NodeTypeIRI
}

func (t IRITerm) String() string {
	return fmt.Sprintf("<%s>", t.IRI)
}

func (t IRITerm) Equal(other Term) bool {
	if o, ok := other.(IRITerm); ok {
		return t.IRI == o.IRI
	}
	return false
}

// LiteralTerm represents a typed literal as raw bytes plus a datatype tag.
// The tag is assigned by a Datatypes registry; see Serialize and Deserialize.
type LiteralTerm struct {
	Bytes    []byte
	Datatype DatatypeID
}

func (t LiteralTerm) Type() NodeType {
	return NodeTypeLiteral
}

func (t LiteralTerm) String() string {
	return fmt.Sprintf("\"%x\"^^#%d", t.Bytes, t.Datatype)
}

func (t LiteralTerm) Equal(other Term) bool {
	if o, ok := other.(LiteralTerm); ok {
		return t.Datatype == o.Datatype && bytes.Equal(t.Bytes, o.Bytes)
	}
	return false
}

// BlankTerm represents an anonymous node.
//
// Blank terms carry no label, so every blank term is equal to every other
// blank term and all blank nodes intern to a single vertex.
type BlankTerm struct{}

func (t BlankTerm) Type() NodeType {
	return NodeTypeBlank
}

func (t BlankTerm) String() string {
	return "_:"
}

func (t BlankTerm) Equal(other Term) bool {
	_, ok := other.(BlankTerm)
	return ok
}

// Node is a subject or object position of a triple. The type tag always
// matches the stored term because the only way to build a Node is NewNode.
type Node struct {
	typ  NodeType
	term Term
}

// NewNode wraps a term, deriving the type tag from it
func NewNode(term Term) Node {
	switch t := term.(type) {
	case IRITerm:
		return Node{typ: NodeTypeIRI, term: t}
	case LiteralTerm:
		return Node{typ: NodeTypeLiteral, term: t}
	case BlankTerm:
		return Node{typ: NodeTypeBlank, term: t}
	default:
		return Node{}
	}
}

func NewIRINode(iri string) Node {
	return NewNode(NewIRI(iri))
}

func NewLiteralNode(lit LiteralTerm) Node {
	return NewNode(lit)
}

func NewBlankNode() Node {
	return NewNode(BlankTerm{})
}

func (n Node) Type() NodeType {
	return n.typ
}

// Term returns the wrapped term, or nil for the zero Node
func (n Node) Term() Term {
	return n.term
}

// IRI returns the IRI term if n holds one
func (n Node) IRI() (IRITerm, bool) {
	t, ok := n.term.(IRITerm)
	return t, ok
}

// Literal returns the literal term if n holds one
func (n Node) Literal() (LiteralTerm, bool) {
	t, ok := n.term.(LiteralTerm)
	return t, ok
}

func (n Node) IsBlank() bool {
	return n.typ == NodeTypeBlank
}

func (n Node) IsValid() bool {
	return n.typ != NodeTypeInvalid && n.term != nil
}

func (n Node) String() string {
	if n.term == nil {
		return "INVALID"
	}
	return n.term.String()
}

// Equal reports whether both nodes hold equal terms of the same type
func (n Node) Equal(other Node) bool {
	if n.typ != other.typ {
		return false
	}
	if n.term == nil || other.term == nil {
		return n.term == nil && other.term == nil
	}
	return n.term.Equal(other.term)
}

// Predicate is the edge label of a triple. RDF restricts predicates to IRIs.
type Predicate struct {
	IRI IRITerm
}

func NewPredicate(iri string) Predicate {
	return Predicate{IRI: NewIRI(iri)}
}

func (p Predicate) String() string {
	return p.IRI.String()
}

func (p Predicate) Equal(other Predicate) bool {
	return p.IRI.IRI == other.IRI.IRI
}
