package graph

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/aleksaelezovic/rdfstore/pkg/rdf"
	"github.com/aleksaelezovic/rdfstore/pkg/store"
)

var (
	ErrVertexNotFound   = errors.New("vertex not found")
	ErrEdgeTypeNotFound = errors.New("edge type not found")
	ErrInvalidVertex    = errors.New("invalid vertex value")
)

// adjacency maps a vertex to its arcs grouped by edge type
type adjacency map[uint64]map[uint64]*roaring64.Bitmap

func (a adjacency) add(from, edgeType, to uint64) {
	byType, ok := a[from]
	if !ok {
		byType = make(map[uint64]*roaring64.Bitmap)
		a[from] = byType
	}
	set, ok := byType[edgeType]
	if !ok {
		set = roaring64.New()
		byType[edgeType] = set
	}
	set.Add(to)
}

// arcs returns every arc of v ordered by edge type, then vertex
func (a adjacency) arcs(v uint64) []store.Arc {
	byType := a[v]
	out := make([]store.Arc, 0)
	for _, edgeType := range slices.Sorted(maps.Keys(byType)) {
		it := byType[edgeType].Iterator()
		for it.HasNext() {
			out = append(out, store.Arc{EdgeType: edgeType, Vertex: it.Next()})
		}
	}
	return out
}

func (a adjacency) arcsByType(v, edgeType uint64) []uint64 {
	set, ok := a[v][edgeType]
	if !ok {
		return []uint64{}
	}
	return set.ToArray()
}

// Memory is an in-process Graph. Vertices and edge types are interned by
// value; arcs are kept in roaring bitmaps in both directions.
type Memory struct {
	vertices  *Interner[rdf.Node]
	edgeTypes *Interner[rdf.Predicate]
	forward   adjacency
	reverse   adjacency
	edges     uint64
}

var (
	_ store.Graph    = (*Memory)(nil)
	_ store.Resolver = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{
		vertices:  NewInterner[rdf.Node](),
		edgeTypes: NewInterner[rdf.Predicate](),
		forward:   make(adjacency),
		reverse:   make(adjacency),
	}
}

func (g *Memory) InsertVertex(value rdf.Node) (uint64, error) {
	if !value.IsValid() {
		return 0, ErrInvalidVertex
	}
	id, _ := g.vertices.Intern(value)
	return id, nil
}

func (g *Memory) RegisterEdgeType(value rdf.Predicate) (uint64, error) {
	id, _ := g.edgeTypes.Intern(value)
	return id, nil
}

func (g *Memory) InsertEdge(src, edgeType, dst uint64) error {
	if err := g.checkVertex(src); err != nil {
		return err
	}
	if err := g.checkVertex(dst); err != nil {
		return err
	}
	if err := g.checkEdgeType(edgeType); err != nil {
		return err
	}

	set, ok := g.forward[src][edgeType]
	if ok && set.Contains(dst) {
		return nil
	}
	g.forward.add(src, edgeType, dst)
	g.reverse.add(dst, edgeType, src)
	g.edges++
	return nil
}

func (g *Memory) Neighbours(src uint64) ([]store.Arc, error) {
	if err := g.checkVertex(src); err != nil {
		return nil, err
	}
	return g.forward.arcs(src), nil
}

func (g *Memory) NeighboursByType(src, edgeType uint64) ([]uint64, error) {
	if err := g.checkVertex(src); err != nil {
		return nil, err
	}
	if err := g.checkEdgeType(edgeType); err != nil {
		return nil, err
	}
	return g.forward.arcsByType(src, edgeType), nil
}

func (g *Memory) IncomingEdges(dst uint64) ([]store.Arc, error) {
	if err := g.checkVertex(dst); err != nil {
		return nil, err
	}
	return g.reverse.arcs(dst), nil
}

func (g *Memory) IncomingEdgesByType(dst, edgeType uint64) ([]uint64, error) {
	if err := g.checkVertex(dst); err != nil {
		return nil, err
	}
	if err := g.checkEdgeType(edgeType); err != nil {
		return nil, err
	}
	return g.reverse.arcsByType(dst, edgeType), nil
}

func (g *Memory) Vertex(id uint64) (rdf.Node, error) {
	v, ok := g.vertices.Value(id)
	if !ok {
		return rdf.Node{}, fmt.Errorf("%w: %d", ErrVertexNotFound, id)
	}
	return v, nil
}

func (g *Memory) EdgeType(id uint64) (rdf.Predicate, error) {
	p, ok := g.edgeTypes.Value(id)
	if !ok {
		return rdf.Predicate{}, fmt.Errorf("%w: %d", ErrEdgeTypeNotFound, id)
	}
	return p, nil
}

func (g *Memory) FindVertex(value rdf.Node) (uint64, bool, error) {
	id, ok := g.vertices.Find(value)
	return id, ok, nil
}

func (g *Memory) FindEdgeType(value rdf.Predicate) (uint64, bool, error) {
	id, ok := g.edgeTypes.Find(value)
	return id, ok, nil
}

// Stats reports the number of vertices, edge types and distinct arcs
func (g *Memory) Stats() (vertices, edgeTypes int, edges uint64) {
	return g.vertices.Len(), g.edgeTypes.Len(), g.edges
}

func (g *Memory) checkVertex(id uint64) error {
	if id >= uint64(g.vertices.Len()) {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, id)
	}
	return nil
}

func (g *Memory) checkEdgeType(id uint64) error {
	if id >= uint64(g.edgeTypes.Len()) {
		return fmt.Errorf("%w: %d", ErrEdgeTypeNotFound, id)
	}
	return nil
}
