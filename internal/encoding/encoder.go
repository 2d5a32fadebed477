// Package encoding converts terms and graph IDs to the byte keys and values
// kept in storage.
package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/aleksaelezovic/rdfstore/pkg/rdf"
)

const (
	// IDSize is the width of an encoded vertex or edge type ID
	IDSize = 8

	// ArcKeySize is the width of a from|type|to arc key
	ArcKeySize = 3 * IDSize

	// HashSize is the width of a term index key
	HashSize = 16
)

// TermEncoder handles encoding of RDF terms
type TermEncoder struct{}

func NewTermEncoder() *TermEncoder {
	return &TermEncoder{}
}

// Hash128 computes a 128-bit xxhash3 hash of b
func (e *TermEncoder) Hash128(b []byte) [HashSize]byte {
	hash := xxh3.Hash128(b)
	var result [HashSize]byte
	binary.BigEndian.PutUint64(result[0:8], hash.Hi)
	binary.BigEndian.PutUint64(result[8:16], hash.Lo)
	return result
}

// EncodeNode returns the stored form of a node: the node type byte, then the
// IRI for IRIs, or a uvarint datatype ID followed by the literal bytes.
// Blank nodes have no payload.
func (e *TermEncoder) EncodeNode(n rdf.Node) ([]byte, error) {
	switch t := n.Term().(type) {
	case rdf.IRITerm:
		buf := make([]byte, 0, 1+len(t.IRI))
		buf = append(buf, byte(rdf.NodeTypeIRI))
		return append(buf, t.IRI...), nil
	case rdf.LiteralTerm:
		buf := make([]byte, 0, 1+binary.MaxVarintLen64+len(t.Bytes))
		buf = append(buf, byte(rdf.NodeTypeLiteral))
		buf = binary.AppendUvarint(buf, uint64(t.Datatype))
		return append(buf, t.Bytes...), nil
	case rdf.BlankTerm:
		return []byte{byte(rdf.NodeTypeBlank)}, nil
	default:
		return nil, fmt.Errorf("cannot encode node of type %s", n.Type())
	}
}

// EncodePredicate returns the stored form of a predicate, its IRI bytes
func (e *TermEncoder) EncodePredicate(p rdf.Predicate) []byte {
	return []byte(p.IRI.IRI)
}

// EncodeID encodes an ID big-endian so byte order matches numeric order
func EncodeID(id uint64) []byte {
	return binary.BigEndian.AppendUint64(make([]byte, 0, IDSize), id)
}

// ArcKey encodes from|edgeType|to
func ArcKey(from, edgeType, to uint64) []byte {
	key := make([]byte, 0, ArcKeySize)
	key = binary.BigEndian.AppendUint64(key, from)
	key = binary.BigEndian.AppendUint64(key, edgeType)
	return binary.BigEndian.AppendUint64(key, to)
}

// ArcPrefix selects every arc key starting at from
func ArcPrefix(from uint64) []byte {
	return EncodeID(from)
}

// ArcTypePrefix selects every arc key starting at from with the given edge type
func ArcTypePrefix(from, edgeType uint64) []byte {
	key := make([]byte, 0, 2*IDSize)
	key = binary.BigEndian.AppendUint64(key, from)
	return binary.BigEndian.AppendUint64(key, edgeType)
}
