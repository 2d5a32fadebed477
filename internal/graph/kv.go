package graph

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/aleksaelezovic/rdfstore/internal/encoding"
	"github.com/aleksaelezovic/rdfstore/internal/storage"
	"github.com/aleksaelezovic/rdfstore/pkg/rdf"
	"github.com/aleksaelezovic/rdfstore/pkg/store"
)

// ErrHashCollision means two distinct values share an index hash
var ErrHashCollision = errors.New("hash collision in term index")

var (
	counterVertices  = []byte("vertices")
	counterEdgeTypes = []byte("edge_types")
)

// KV is a Graph kept in a storage.Storage. Every call runs in its own
// transaction.
type KV struct {
	storage storage.Storage
	encoder *encoding.TermEncoder
	decoder *encoding.TermDecoder
}

var (
	_ store.Graph    = (*KV)(nil)
	_ store.Resolver = (*KV)(nil)
)

func NewKV(s storage.Storage) *KV {
	return &KV{
		storage: s,
		encoder: encoding.NewTermEncoder(),
		decoder: encoding.NewTermDecoder(),
	}
}

// interned describes one value/ID keyspace pair
type interned struct {
	index   storage.Table
	values  storage.Table
	counter []byte
}

var (
	vertexSpace   = interned{storage.TableVertexIndex, storage.TableVertices, counterVertices}
	edgeTypeSpace = interned{storage.TableEdgeTypeIndex, storage.TableEdgeTypes, counterEdgeTypes}
)

func (g *KV) InsertVertex(value rdf.Node) (uint64, error) {
	encoded, err := g.encoder.EncodeNode(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidVertex, err)
	}
	return g.intern(vertexSpace, encoded)
}

func (g *KV) RegisterEdgeType(value rdf.Predicate) (uint64, error) {
	return g.intern(edgeTypeSpace, g.encoder.EncodePredicate(value))
}

func (g *KV) intern(space interned, encoded []byte) (uint64, error) {
	txn, err := g.storage.Begin(true)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer txn.Rollback()

	id, found, err := g.find(txn, space, encoded)
	if err != nil || found {
		return id, err
	}

	id, err = nextID(txn, space.counter)
	if err != nil {
		return 0, err
	}
	hash := g.encoder.Hash128(encoded)
	if err := txn.Set(space.index, hash[:], encoding.EncodeID(id)); err != nil {
		return 0, err
	}
	if err := txn.Set(space.values, encoding.EncodeID(id), encoded); err != nil {
		return 0, err
	}
	if err := txn.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return id, nil
}

// find looks encoded up in the hash index and confirms the stored value
func (g *KV) find(txn storage.Transaction, space interned, encoded []byte) (uint64, bool, error) {
	hash := g.encoder.Hash128(encoded)
	raw, err := txn.Get(space.index, hash[:])
	if errors.Is(err, storage.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	id, err := encoding.DecodeID(raw)
	if err != nil {
		return 0, false, err
	}
	stored, err := txn.Get(space.values, raw)
	if err != nil {
		return 0, false, fmt.Errorf("index entry %d has no value: %w", id, err)
	}
	if !bytes.Equal(stored, encoded) {
		return 0, false, fmt.Errorf("%w: id %d", ErrHashCollision, id)
	}
	return id, true, nil
}

// nextID returns the current value of a counter and increments it
func nextID(txn storage.Transaction, name []byte) (uint64, error) {
	var next uint64
	raw, err := txn.Get(storage.TableCounters, name)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return 0, err
	default:
		if next, err = encoding.DecodeID(raw); err != nil {
			return 0, fmt.Errorf("counter %s: %w", name, err)
		}
	}
	if err := txn.Set(storage.TableCounters, name, encoding.EncodeID(next+1)); err != nil {
		return 0, err
	}
	return next, nil
}

func (g *KV) InsertEdge(src, edgeType, dst uint64) error {
	txn, err := g.storage.Begin(true)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer txn.Rollback()

	if err := checkExists(txn, storage.TableVertices, src, ErrVertexNotFound); err != nil {
		return err
	}
	if err := checkExists(txn, storage.TableVertices, dst, ErrVertexNotFound); err != nil {
		return err
	}
	if err := checkExists(txn, storage.TableEdgeTypes, edgeType, ErrEdgeTypeNotFound); err != nil {
		return err
	}

	if err := txn.Set(storage.TableSPO, encoding.ArcKey(src, edgeType, dst), nil); err != nil {
		return err
	}
	if err := txn.Set(storage.TableOPS, encoding.ArcKey(dst, edgeType, src), nil); err != nil {
		return err
	}
	return txn.Commit()
}

func (g *KV) Neighbours(src uint64) ([]store.Arc, error) {
	return g.arcs(storage.TableSPO, src)
}

func (g *KV) NeighboursByType(src, edgeType uint64) ([]uint64, error) {
	return g.arcsByType(storage.TableSPO, src, edgeType)
}

func (g *KV) IncomingEdges(dst uint64) ([]store.Arc, error) {
	return g.arcs(storage.TableOPS, dst)
}

func (g *KV) IncomingEdgesByType(dst, edgeType uint64) ([]uint64, error) {
	return g.arcsByType(storage.TableOPS, dst, edgeType)
}

func (g *KV) arcs(table storage.Table, v uint64) ([]store.Arc, error) {
	txn, err := g.storage.Begin(false)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer txn.Rollback()

	if err := checkExists(txn, storage.TableVertices, v, ErrVertexNotFound); err != nil {
		return nil, err
	}

	out := make([]store.Arc, 0)
	err = scanArcs(txn, table, encoding.ArcPrefix(v), func(edgeType, other uint64) {
		out = append(out, store.Arc{EdgeType: edgeType, Vertex: other})
	})
	return out, err
}

func (g *KV) arcsByType(table storage.Table, v, edgeType uint64) ([]uint64, error) {
	txn, err := g.storage.Begin(false)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer txn.Rollback()

	if err := checkExists(txn, storage.TableVertices, v, ErrVertexNotFound); err != nil {
		return nil, err
	}
	if err := checkExists(txn, storage.TableEdgeTypes, edgeType, ErrEdgeTypeNotFound); err != nil {
		return nil, err
	}

	out := make([]uint64, 0)
	err = scanArcs(txn, table, encoding.ArcTypePrefix(v, edgeType), func(_, other uint64) {
		out = append(out, other)
	})
	return out, err
}

func scanArcs(txn storage.Transaction, table storage.Table, prefix []byte, fn func(edgeType, other uint64)) error {
	it, err := txn.Scan(table, prefix)
	if err != nil {
		return err
	}
	defer it.Close()

	for it.Next() {
		_, edgeType, other, err := encoding.DecodeArcKey(it.Key())
		if err != nil {
			return err
		}
		fn(edgeType, other)
	}
	return nil
}

func checkExists(txn storage.Transaction, table storage.Table, id uint64, notFound error) error {
	_, err := txn.Get(table, encoding.EncodeID(id))
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %d", notFound, id)
	}
	return err
}

func (g *KV) Vertex(id uint64) (rdf.Node, error) {
	raw, err := g.value(storage.TableVertices, id, ErrVertexNotFound)
	if err != nil {
		return rdf.Node{}, err
	}
	return g.decoder.DecodeNode(raw)
}

func (g *KV) EdgeType(id uint64) (rdf.Predicate, error) {
	raw, err := g.value(storage.TableEdgeTypes, id, ErrEdgeTypeNotFound)
	if err != nil {
		return rdf.Predicate{}, err
	}
	return g.decoder.DecodePredicate(raw), nil
}

func (g *KV) value(table storage.Table, id uint64, notFound error) ([]byte, error) {
	txn, err := g.storage.Begin(false)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer txn.Rollback()

	raw, err := txn.Get(table, encoding.EncodeID(id))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", notFound, id)
	}
	return raw, err
}

func (g *KV) FindVertex(value rdf.Node) (uint64, bool, error) {
	encoded, err := g.encoder.EncodeNode(value)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrInvalidVertex, err)
	}
	return g.lookup(vertexSpace, encoded)
}

func (g *KV) FindEdgeType(value rdf.Predicate) (uint64, bool, error) {
	return g.lookup(edgeTypeSpace, g.encoder.EncodePredicate(value))
}

func (g *KV) lookup(space interned, encoded []byte) (uint64, bool, error) {
	txn, err := g.storage.Begin(false)
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer txn.Rollback()
	return g.find(txn, space, encoded)
}
