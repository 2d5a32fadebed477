package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleksaelezovic/rdfstore/internal/storage"
	"github.com/aleksaelezovic/rdfstore/pkg/rdf"
	"github.com/aleksaelezovic/rdfstore/pkg/store"
)

type testGraph interface {
	store.Graph
	store.Resolver
}

func graphs(t *testing.T) map[string]func(t *testing.T) testGraph {
	return map[string]func(t *testing.T) testGraph{
		"memory": func(t *testing.T) testGraph { return NewMemory() },
		"kv": func(t *testing.T) testGraph {
			s, err := storage.NewBadgerStorage("")
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return NewKV(s)
		},
	}
}

func forEachGraph(t *testing.T, fn func(t *testing.T, g testGraph)) {
	for name, build := range graphs(t) {
		t.Run(name, func(t *testing.T) {
			fn(t, build(t))
		})
	}
}

func TestInsertVertex_Idempotent(t *testing.T) {
	forEachGraph(t, func(t *testing.T, g testGraph) {
		alice := rdf.NewIRINode("http://example.org/alice")
		bob := rdf.NewIRINode("http://example.org/bob")

		a1, err := g.InsertVertex(alice)
		require.NoError(t, err)
		b, err := g.InsertVertex(bob)
		require.NoError(t, err)
		a2, err := g.InsertVertex(rdf.NewIRINode("http://example.org/alice"))
		require.NoError(t, err)

		assert.Equal(t, uint64(0), a1)
		assert.Equal(t, uint64(1), b)
		assert.Equal(t, a1, a2)

		id, ok, err := g.FindVertex(bob)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, b, id)

		_, ok, err = g.FindVertex(rdf.NewIRINode("http://example.org/carol"))
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := g.Vertex(a1)
		require.NoError(t, err)
		assert.True(t, alice.Equal(got))
	})
}

func TestInsertVertex_Invalid(t *testing.T) {
	forEachGraph(t, func(t *testing.T, g testGraph) {
		_, err := g.InsertVertex(rdf.Node{})
		assert.ErrorIs(t, err, ErrInvalidVertex)
	})
}

func TestVertexKindsDoNotCollide(t *testing.T) {
	forEachGraph(t, func(t *testing.T, g testGraph) {
		iri, err := g.InsertVertex(rdf.NewIRINode("x"))
		require.NoError(t, err)
		lit, err := g.InsertVertex(rdf.NewLiteralNode(rdf.LiteralTerm{Bytes: []byte("x"), Datatype: rdf.DatatypeString}))
		require.NoError(t, err)
		other, err := g.InsertVertex(rdf.NewLiteralNode(rdf.LiteralTerm{Bytes: []byte("x"), Datatype: 99}))
		require.NoError(t, err)
		blank, err := g.InsertVertex(rdf.NewBlankNode())
		require.NoError(t, err)

		assert.ElementsMatch(t, []uint64{0, 1, 2, 3}, []uint64{iri, lit, other, blank})
	})
}

func TestEdgeTypes(t *testing.T) {
	forEachGraph(t, func(t *testing.T, g testGraph) {
		name := rdf.NewPredicate("http://xmlns.com/foaf/0.1/name")
		p1, err := g.RegisterEdgeType(name)
		require.NoError(t, err)
		p2, err := g.RegisterEdgeType(rdf.NewPredicate("http://xmlns.com/foaf/0.1/age"))
		require.NoError(t, err)
		p3, err := g.RegisterEdgeType(name)
		require.NoError(t, err)

		assert.Equal(t, p1, p3)
		assert.NotEqual(t, p1, p2)

		got, err := g.EdgeType(p2)
		require.NoError(t, err)
		assert.Equal(t, "http://xmlns.com/foaf/0.1/age", got.IRI.IRI)

		id, ok, err := g.FindEdgeType(name)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, p1, id)

		_, err = g.EdgeType(17)
		assert.ErrorIs(t, err, ErrEdgeTypeNotFound)
	})
}

func TestArcs(t *testing.T) {
	forEachGraph(t, func(t *testing.T, g testGraph) {
		ids := make([]uint64, 4)
		for i, iri := range []string{"a", "b", "c", "d"} {
			id, err := g.InsertVertex(rdf.NewIRINode(iri))
			require.NoError(t, err)
			ids[i] = id
		}
		knows, err := g.RegisterEdgeType(rdf.NewPredicate("knows"))
		require.NoError(t, err)
		likes, err := g.RegisterEdgeType(rdf.NewPredicate("likes"))
		require.NoError(t, err)

		a, b, c, d := ids[0], ids[1], ids[2], ids[3]
		require.NoError(t, g.InsertEdge(a, likes, c))
		require.NoError(t, g.InsertEdge(a, knows, c))
		require.NoError(t, g.InsertEdge(a, knows, b))
		require.NoError(t, g.InsertEdge(a, knows, b)) // duplicate
		require.NoError(t, g.InsertEdge(b, knows, c))

		out, err := g.Neighbours(a)
		require.NoError(t, err)
		assert.Equal(t, []store.Arc{
			{EdgeType: knows, Vertex: b},
			{EdgeType: knows, Vertex: c},
			{EdgeType: likes, Vertex: c},
		}, out)

		targets, err := g.NeighboursByType(a, knows)
		require.NoError(t, err)
		assert.Equal(t, []uint64{b, c}, targets)

		in, err := g.IncomingEdges(c)
		require.NoError(t, err)
		assert.Equal(t, []store.Arc{
			{EdgeType: knows, Vertex: a},
			{EdgeType: knows, Vertex: b},
			{EdgeType: likes, Vertex: a},
		}, in)

		sources, err := g.IncomingEdgesByType(c, likes)
		require.NoError(t, err)
		assert.Equal(t, []uint64{a}, sources)

		// Known vertex, no arcs.
		out, err = g.Neighbours(d)
		require.NoError(t, err)
		assert.Empty(t, out)
		targets, err = g.NeighboursByType(d, knows)
		require.NoError(t, err)
		assert.Empty(t, targets)
	})
}

func TestArcs_UnknownIDs(t *testing.T) {
	forEachGraph(t, func(t *testing.T, g testGraph) {
		v, err := g.InsertVertex(rdf.NewIRINode("a"))
		require.NoError(t, err)
		p, err := g.RegisterEdgeType(rdf.NewPredicate("p"))
		require.NoError(t, err)

		assert.ErrorIs(t, g.InsertEdge(v, p, 9), ErrVertexNotFound)
		assert.ErrorIs(t, g.InsertEdge(9, p, v), ErrVertexNotFound)
		assert.ErrorIs(t, g.InsertEdge(v, 9, v), ErrEdgeTypeNotFound)

		_, err = g.Neighbours(9)
		assert.ErrorIs(t, err, ErrVertexNotFound)
		_, err = g.NeighboursByType(v, 9)
		assert.ErrorIs(t, err, ErrEdgeTypeNotFound)
		_, err = g.IncomingEdges(9)
		assert.ErrorIs(t, err, ErrVertexNotFound)
		_, err = g.IncomingEdgesByType(9, p)
		assert.ErrorIs(t, err, ErrVertexNotFound)
		_, err = g.Vertex(9)
		assert.ErrorIs(t, err, ErrVertexNotFound)
	})
}

func TestBlankNodesShareOneVertex(t *testing.T) {
	forEachGraph(t, func(t *testing.T, g testGraph) {
		b1, err := g.InsertVertex(rdf.NewBlankNode())
		require.NoError(t, err)
		b2, err := g.InsertVertex(rdf.NewBlankNode())
		require.NoError(t, err)
		assert.Equal(t, b1, b2)
	})
}
