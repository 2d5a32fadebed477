package rdf

import (
	"github.com/zeebo/xxh3"
)

const (
	// hashMixConstant is the 32-bit golden ratio used by the mixing step
	hashMixConstant = 0x9e3779b9

	// blankHash is the hash of every blank node
	blankHash = 0x9e3779b97f4a7c15

	// zeroHashSentinel replaces a computed hash of 0, which hash tables may use as "empty"
	zeroHashSentinel = 1
)

// mixHash folds h into acc
func mixHash(acc, h uint64) uint64 {
	return acc ^ (h + hashMixConstant + (acc << 6) + (acc >> 2))
}

func nonZero(h uint64) uint64 {
	if h == 0 {
		return zeroHashSentinel
	}
	return h
}

func hashString(s string) uint64 {
	return xxh3.HashString(s)
}

// hashBytes folds every byte into an accumulator seeded by the first byte
func hashBytes(b []byte) uint64 {
	if len(b) == 0 {
		return 0
	}
	acc := uint64(b[0])
	for _, c := range b[1:] {
		acc = mixHash(acc, uint64(c))
	}
	return acc
}

// Hash returns a nonzero hash consistent with Equal
func (t IRITerm) Hash() uint64 {
	return nonZero(hashString(t.IRI))
}

// Hash returns a nonzero hash of the literal bytes
func (t LiteralTerm) Hash() uint64 {
	return nonZero(hashBytes(t.Bytes))
}

// Hash returns the same nonzero constant for every blank term
func (t BlankTerm) Hash() uint64 {
	return blankHash
}

// Hash returns a nonzero hash consistent with Equal
func (n Node) Hash() uint64 {
	switch t := n.term.(type) {
	case IRITerm:
		return t.Hash()
	case LiteralTerm:
		return t.Hash()
	case BlankTerm:
		return t.Hash()
	default:
		return zeroHashSentinel
	}
}

// Hash returns a nonzero hash consistent with Equal
func (p Predicate) Hash() uint64 {
	h := hashString(p.IRI.IRI)
	return nonZero(mixHash(h, h))
}
