package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDatatypes(t *testing.T) {
	d := DefaultDatatypes()
	assert.Equal(t, 14, d.Len())

	id, ok := IDOf[string](d)
	require.True(t, ok)
	assert.Equal(t, DatatypeString, id)

	iri, ok := d.IRI(DatatypeDouble)
	require.True(t, ok)
	assert.Equal(t, XSDDouble, iri)

	id, ok = d.Lookup(XSDUnsignedLong)
	require.True(t, ok)
	assert.Equal(t, DatatypeUnsignedLong, id)
}

func TestRegister_Conflicts(t *testing.T) {
	d := NewDatatypes()
	require.NoError(t, Register[uint64](d, 2, XSDUnsignedLong))

	// Same binding again is fine.
	require.NoError(t, Register[uint64](d, 2, XSDUnsignedLong))

	assert.ErrorIs(t, Register[uint64](d, 3, XSDUnsignedLong), ErrDatatypeConflict, "type rebound to another id")
	assert.ErrorIs(t, Register[string](d, 2, XSDString), ErrDatatypeConflict, "id reused")
	assert.ErrorIs(t, Register[int64](d, 4, XSDUnsignedLong), ErrDatatypeConflict, "iri reused")

	assert.Equal(t, 1, d.Len())
}

func TestRegister_WithoutIRI(t *testing.T) {
	d := NewDatatypes()
	require.NoError(t, Register[int](d, 1, ""))
	require.NoError(t, Register[string](d, 2, ""))

	_, ok := d.IRI(1)
	assert.False(t, ok)

	// Mirrors the application-chosen IDs of a hand-rolled registry.
	id, ok := IDOf[int](d)
	require.True(t, ok)
	assert.Equal(t, DatatypeID(1), id)
}
