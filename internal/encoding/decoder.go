package encoding

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/aleksaelezovic/rdfstore/pkg/rdf"
)

var ErrMalformed = errors.New("malformed encoded value")

// TermDecoder handles decoding of stored terms
type TermDecoder struct{}

func NewTermDecoder() *TermDecoder {
	return &TermDecoder{}
}

// DecodeNode reverses TermEncoder.EncodeNode
func (d *TermDecoder) DecodeNode(b []byte) (rdf.Node, error) {
	if len(b) == 0 {
		return rdf.Node{}, fmt.Errorf("%w: empty node", ErrMalformed)
	}

	switch rdf.NodeType(b[0]) {
	case rdf.NodeTypeIRI:
		return rdf.NewIRINode(string(b[1:])), nil
	case rdf.NodeTypeLiteral:
		datatype, n := binary.Uvarint(b[1:])
		if n <= 0 {
			return rdf.Node{}, fmt.Errorf("%w: literal datatype", ErrMalformed)
		}
		payload := b[1+n:]
		lit := rdf.LiteralTerm{
			Bytes:    append(make([]byte, 0, len(payload)), payload...),
			Datatype: rdf.DatatypeID(datatype),
		}
		return rdf.NewLiteralNode(lit), nil
	case rdf.NodeTypeBlank:
		if len(b) != 1 {
			return rdf.Node{}, fmt.Errorf("%w: blank node with payload", ErrMalformed)
		}
		return rdf.NewBlankNode(), nil
	default:
		return rdf.Node{}, fmt.Errorf("%w: node type %d", ErrMalformed, b[0])
	}
}

// DecodePredicate reverses TermEncoder.EncodePredicate
func (d *TermDecoder) DecodePredicate(b []byte) rdf.Predicate {
	return rdf.NewPredicate(string(b))
}

func DecodeID(b []byte) (uint64, error) {
	if len(b) != IDSize {
		return 0, fmt.Errorf("%w: id of %d bytes", ErrMalformed, len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

// DecodeArcKey splits an arc key into from, edge type and to
func DecodeArcKey(key []byte) (from, edgeType, to uint64, err error) {
	if len(key) != ArcKeySize {
		return 0, 0, 0, fmt.Errorf("%w: arc key of %d bytes", ErrMalformed, len(key))
	}
	from = binary.BigEndian.Uint64(key[0:8])
	edgeType = binary.BigEndian.Uint64(key[8:16])
	to = binary.BigEndian.Uint64(key[16:24])
	return from, edgeType, to, nil
}
