package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleksaelezovic/rdfstore/internal/encoding"
	"github.com/aleksaelezovic/rdfstore/internal/storage"
	"github.com/aleksaelezovic/rdfstore/pkg/rdf"
)

func TestKV_HashCollisionDetected(t *testing.T) {
	s, err := storage.NewBadgerStorage("")
	require.NoError(t, err)
	defer s.Close()
	g := NewKV(s)

	alice := rdf.NewIRINode("http://example.org/alice")
	id, err := g.InsertVertex(alice)
	require.NoError(t, err)

	// Replace the stored value so the index entry for alice points at a
	// different node, as a colliding hash would.
	txn, err := s.Begin(true)
	require.NoError(t, err)
	require.NoError(t, txn.Set(storage.TableVertices, encoding.EncodeID(id), []byte{byte(rdf.NodeTypeIRI), 'x'}))
	require.NoError(t, txn.Commit())

	_, err = g.InsertVertex(alice)
	assert.ErrorIs(t, err, ErrHashCollision)
	_, _, err = g.FindVertex(alice)
	assert.ErrorIs(t, err, ErrHashCollision)
}

func TestKV_Persistent(t *testing.T) {
	dir := t.TempDir()

	s, err := storage.NewBadgerStorage(dir)
	require.NoError(t, err)
	g := NewKV(s)
	a, err := g.InsertVertex(rdf.NewIRINode("a"))
	require.NoError(t, err)
	b, err := g.InsertVertex(rdf.NewIRINode("b"))
	require.NoError(t, err)
	p, err := g.RegisterEdgeType(rdf.NewPredicate("p"))
	require.NoError(t, err)
	require.NoError(t, g.InsertEdge(a, p, b))
	require.NoError(t, s.Close())

	s, err = storage.NewBadgerStorage(dir)
	require.NoError(t, err)
	defer s.Close()
	g = NewKV(s)

	// Counters survive, so the next vertex gets a fresh ID.
	c, err := g.InsertVertex(rdf.NewIRINode("c"))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), c)

	targets, err := g.NeighboursByType(a, p)
	require.NoError(t, err)
	assert.Equal(t, []uint64{b}, targets)
}
