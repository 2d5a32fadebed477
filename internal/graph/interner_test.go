package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constHash collides on purpose
type constHash string

func (c constHash) Hash() uint64               { return 42 }
func (c constHash) Equal(other constHash) bool { return c == other }

func TestInterner_DenseIDs(t *testing.T) {
	in := NewInterner[constHash]()

	a, fresh := in.Intern("a")
	assert.True(t, fresh)
	b, fresh := in.Intern("b")
	assert.True(t, fresh)
	again, fresh := in.Intern("a")
	assert.False(t, fresh)

	assert.Equal(t, uint64(0), a)
	assert.Equal(t, uint64(1), b)
	assert.Equal(t, a, again)
	assert.Equal(t, 2, in.Len())
}

func TestInterner_CollidingHashes(t *testing.T) {
	in := NewInterner[constHash]()
	for _, s := range []constHash{"x", "y", "z"} {
		in.Intern(s)
	}

	id, ok := in.Find("y")
	require.True(t, ok)
	v, ok := in.Value(id)
	require.True(t, ok)
	assert.Equal(t, constHash("y"), v)

	_, ok = in.Find("w")
	assert.False(t, ok)
	_, ok = in.Value(3)
	assert.False(t, ok)
}
