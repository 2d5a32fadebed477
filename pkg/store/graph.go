package store

import (
	"github.com/aleksaelezovic/rdfstore/pkg/rdf"
)

// Arc is one end of a labeled edge: the edge type and the vertex on the other side
type Arc struct {
	EdgeType uint64
	Vertex   uint64
}

// Graph is the interned directed graph a QuadStore drives. Vertices and edge
// types are deduplicated by value equality and keep their ID for the life of
// the graph. Lookups on an unknown vertex or edge type return an error; a
// known vertex without arcs returns an empty slice.
type Graph interface {
	// InsertVertex returns the ID of value, assigning a new one if needed
	InsertVertex(value rdf.Node) (uint64, error)

	// RegisterEdgeType returns the ID of value, assigning a new one if needed
	RegisterEdgeType(value rdf.Predicate) (uint64, error)

	// InsertEdge adds the arc src --edgeType--> dst
	InsertEdge(src, edgeType, dst uint64) error

	// Neighbours returns every outgoing arc of src
	Neighbours(src uint64) ([]Arc, error)

	// NeighboursByType returns the targets of src's outgoing arcs labeled edgeType
	NeighboursByType(src, edgeType uint64) ([]uint64, error)

	// IncomingEdges returns every incoming arc of dst; Arc.Vertex is the source
	IncomingEdges(dst uint64) ([]Arc, error)

	// IncomingEdgesByType returns the sources of dst's incoming arcs labeled edgeType
	IncomingEdgesByType(dst, edgeType uint64) ([]uint64, error)
}

// Resolver is implemented by graphs that can map IDs back to values and find
// the ID of a value without interning it
type Resolver interface {
	Vertex(id uint64) (rdf.Node, error)
	EdgeType(id uint64) (rdf.Predicate, error)
	FindVertex(value rdf.Node) (uint64, bool, error)
	FindEdgeType(value rdf.Predicate) (uint64, bool, error)
}
