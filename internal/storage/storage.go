// Package storage is the key/value layer under the persistent graph.
package storage

import (
	"errors"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrTransactionRO = errors.New("transaction is read-only")
)

// Storage is the interface for the underlying key-value store
type Storage interface {
	// Begin starts a new transaction
	Begin(writable bool) (Transaction, error)

	// Close closes the storage
	Close() error

	// Sync flushes writes to disk
	Sync() error
}

// Transaction represents a database transaction with snapshot isolation
type Transaction interface {
	Get(table Table, key []byte) ([]byte, error)
	Set(table Table, key, value []byte) error
	Delete(table Table, key []byte) error

	// Scan iterates over keys of table starting with prefix, in key order.
	// A nil prefix scans the whole table.
	Scan(table Table, prefix []byte) (Iterator, error)

	Commit() error

	// Rollback discards the transaction. It is safe to call after Commit.
	Rollback() error
}

// Iterator iterates over key-value pairs
type Iterator interface {
	// Next advances to the next item
	Next() bool

	// Key returns the current key without the table prefix
	Key() []byte

	// Value returns a copy of the current value
	Value() ([]byte, error)

	Close() error
}

// Table is a logical keyspace inside the store
type Table byte

const (
	// Vertex hash -> vertex ID
	TableVertexIndex Table = iota

	// Vertex ID -> encoded node
	TableVertices

	// Edge type hash -> edge type ID
	TableEdgeTypeIndex

	// Edge type ID -> encoded predicate
	TableEdgeTypes

	// Name -> uint64 counter
	TableCounters

	// Arc indexes: src|type|dst and dst|type|src
	TableSPO
	TableOPS

	TableCount
)

func (t Table) String() string {
	switch t {
	case TableVertexIndex:
		return "vertex_index"
	case TableVertices:
		return "vertices"
	case TableEdgeTypeIndex:
		return "edge_type_index"
	case TableEdgeTypes:
		return "edge_types"
	case TableCounters:
		return "counters"
	case TableSPO:
		return "spo"
	case TableOPS:
		return "ops"
	default:
		return "unknown"
	}
}

// PrefixKey adds a table prefix to a key
func PrefixKey(table Table, key []byte) []byte {
	result := make([]byte, 1+len(key))
	result[0] = byte(table)
	copy(result[1:], key)
	return result
}
