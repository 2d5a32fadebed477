// Package loader feeds N-Quads documents into a QuadStore.
package loader

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/aleksaelezovic/rdfstore/internal/nquads"
	"github.com/aleksaelezovic/rdfstore/pkg/rdf"
	"github.com/aleksaelezovic/rdfstore/pkg/store"
)

// DefaultNamespace is the namespace of the default graph
const DefaultNamespace uint64 = 0

// Namespaces maps graph labels to namespace IDs. The default graph (empty
// label) is DefaultNamespace; named graphs get 1, 2, ... in first-seen order.
type Namespaces struct {
	ids map[string]uint64
}

func NewNamespaces() *Namespaces {
	return &Namespaces{ids: map[string]uint64{"": DefaultNamespace}}
}

// ID returns the namespace of label, assigning one if it is new
func (n *Namespaces) ID(label string) uint64 {
	if id, ok := n.ids[label]; ok {
		return id
	}
	id := uint64(len(n.ids))
	n.ids[label] = id
	return id
}

// Lookup returns the namespace of label without assigning one
func (n *Namespaces) Lookup(label string) (uint64, bool) {
	id, ok := n.ids[label]
	return id, ok
}

// Labels returns every known graph label ordered by namespace ID
func (n *Namespaces) Labels() []string {
	return slices.SortedFunc(maps.Keys(n.ids), func(a, b string) int {
		return cmp.Compare(n.ids[a], n.ids[b])
	})
}

type Result struct {
	Triples []store.Triple
}

// Load parses r as N-Quads and inserts every statement into st. Nothing is
// inserted when the document does not parse.
func Load(r io.Reader, st *store.QuadStore, ns *Namespaces, datatypes *rdf.Datatypes) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read input: %w", err)
	}

	parsed, err := nquads.NewParser(string(data), datatypes).Parse()
	if err != nil {
		return Result{}, fmt.Errorf("parse: %w", err)
	}

	statements := make([]store.Statement, 0, len(parsed))
	for _, p := range parsed {
		statements = append(statements, store.Statement{
			Namespace: ns.ID(p.Graph),
			Subject:   p.Subject,
			Predicate: p.Predicate,
			Object:    p.Object,
		})
	}

	triples, err := st.InsertTriples(statements)
	return Result{Triples: triples}, err
}
