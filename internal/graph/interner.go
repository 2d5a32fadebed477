// Package graph implements the interned directed graph behind a QuadStore.
package graph

// Hashable values can be interned. Equal values must hash alike.
type Hashable[T any] interface {
	Hash() uint64
	Equal(other T) bool
}

// Interner assigns dense IDs starting at 0 to distinct values. Values are
// bucketed by hash and confirmed with Equal, so colliding hashes still get
// separate IDs.
type Interner[T Hashable[T]] struct {
	values  []T
	buckets map[uint64][]uint64
}

func NewInterner[T Hashable[T]]() *Interner[T] {
	return &Interner[T]{buckets: make(map[uint64][]uint64)}
}

// Intern returns the ID of v and whether it was newly assigned
func (in *Interner[T]) Intern(v T) (uint64, bool) {
	h := v.Hash()
	if id, ok := in.find(h, v); ok {
		return id, false
	}
	id := uint64(len(in.values))
	in.values = append(in.values, v)
	in.buckets[h] = append(in.buckets[h], id)
	return id, true
}

// Find returns the ID of v without interning it
func (in *Interner[T]) Find(v T) (uint64, bool) {
	return in.find(v.Hash(), v)
}

func (in *Interner[T]) find(h uint64, v T) (uint64, bool) {
	for _, id := range in.buckets[h] {
		if in.values[id].Equal(v) {
			return id, true
		}
	}
	return 0, false
}

// Value returns the value interned under id
func (in *Interner[T]) Value(id uint64) (T, bool) {
	if id >= uint64(len(in.values)) {
		var zero T
		return zero, false
	}
	return in.values[id], true
}

func (in *Interner[T]) Len() int {
	return len(in.values)
}
