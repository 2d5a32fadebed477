package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *BadgerStorage {
	t.Helper()
	s, err := NewBadgerStorage("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSetGetAcrossTransactions(t *testing.T) {
	s := openMemory(t)

	txn, err := s.Begin(true)
	require.NoError(t, err)
	require.NoError(t, txn.Set(TableVertices, []byte{0, 1}, []byte("alice")))
	require.NoError(t, txn.Commit())

	txn, err = s.Begin(false)
	require.NoError(t, err)
	defer txn.Rollback()

	v, err := txn.Get(TableVertices, []byte{0, 1})
	require.NoError(t, err)
	assert.Equal(t, []byte("alice"), v)

	// Same key in another table is a different entry.
	_, err = txn.Get(TableEdgeTypes, []byte{0, 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadOnlyTransaction(t *testing.T) {
	s := openMemory(t)

	txn, err := s.Begin(false)
	require.NoError(t, err)
	defer txn.Rollback()

	assert.ErrorIs(t, txn.Set(TableCounters, []byte("x"), []byte{1}), ErrTransactionRO)
	assert.ErrorIs(t, txn.Delete(TableCounters, []byte("x")), ErrTransactionRO)
	assert.NoError(t, txn.Commit())
}

func TestRollbackDiscardsWrites(t *testing.T) {
	s := openMemory(t)

	txn, err := s.Begin(true)
	require.NoError(t, err)
	require.NoError(t, txn.Set(TableCounters, []byte("n"), []byte{7}))
	require.NoError(t, txn.Rollback())

	txn, err = s.Begin(false)
	require.NoError(t, err)
	defer txn.Rollback()
	_, err = txn.Get(TableCounters, []byte("n"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScanPrefixOrdered(t *testing.T) {
	s := openMemory(t)

	txn, err := s.Begin(true)
	require.NoError(t, err)
	keys := [][]byte{
		{1, 3}, {1, 1}, {2, 0}, {1, 2}, {0, 9},
	}
	for _, k := range keys {
		require.NoError(t, txn.Set(TableSPO, k, []byte{k[1]}))
	}
	// Neighbouring table must not leak into the scan.
	require.NoError(t, txn.Set(TableOPS, []byte{1, 0}, nil))
	require.NoError(t, txn.Commit())

	txn, err = s.Begin(false)
	require.NoError(t, err)
	defer txn.Rollback()

	it, err := txn.Scan(TableSPO, []byte{1})
	require.NoError(t, err)
	defer it.Close()

	var got [][]byte
	var vals []byte
	for it.Next() {
		got = append(got, it.Key())
		v, err := it.Value()
		require.NoError(t, err)
		vals = append(vals, v...)
	}
	assert.Equal(t, [][]byte{{1, 1}, {1, 2}, {1, 3}}, got)
	assert.Equal(t, []byte{1, 2, 3}, vals)

	_, err = it.Value()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScanWholeTable(t *testing.T) {
	s := openMemory(t)

	txn, err := s.Begin(true)
	require.NoError(t, err)
	require.NoError(t, txn.Set(TableOPS, []byte{5}, nil))
	require.NoError(t, txn.Set(TableOPS, []byte{4}, nil))
	require.NoError(t, txn.Set(TableSPO, []byte{3}, nil))
	require.NoError(t, txn.Commit())

	txn, err = s.Begin(false)
	require.NoError(t, err)
	defer txn.Rollback()

	it, err := txn.Scan(TableOPS, nil)
	require.NoError(t, err)
	defer it.Close()

	n := 0
	for it.Next() {
		n++
	}
	assert.Equal(t, 2, n)
}

func TestOnDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := NewBadgerStorage(dir)
	require.NoError(t, err)
	txn, err := s.Begin(true)
	require.NoError(t, err)
	require.NoError(t, txn.Set(TableCounters, []byte("vertex"), []byte{3}))
	require.NoError(t, txn.Commit())
	require.NoError(t, s.Sync())
	require.NoError(t, s.Close())

	s, err = NewBadgerStorage(dir)
	require.NoError(t, err)
	defer s.Close()

	txn, err = s.Begin(false)
	require.NoError(t, err)
	defer txn.Rollback()
	v, err := txn.Get(TableCounters, []byte("vertex"))
	require.NoError(t, err)
	assert.Equal(t, []byte{3}, v)
}
