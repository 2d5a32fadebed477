package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleksaelezovic/rdfstore/internal/config"
	"github.com/aleksaelezovic/rdfstore/internal/loader"
)

func newTestApp(t *testing.T, backend string) *App {
	t.Helper()
	color.NoColor = true

	cfg := config.Default()
	cfg.Backend = backend
	cfg.Metrics.Enabled = true

	var logs bytes.Buffer
	a, err := NewApp(cfg, &logs)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestRunDemo(t *testing.T) {
	for _, backend := range []string{config.BackendMemory, config.BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			a := newTestApp(t, backend)

			var out bytes.Buffer
			require.NoError(t, runDemo(&out, a))

			s := out.String()
			assert.Contains(t, s, "inserted 9 triples")
			assert.Contains(t, s, `"Amartya Datta Gupta"`)
			assert.Contains(t, s, "XMLSchema#unsignedLong")
			assert.Contains(t, s, "<iri://database/employees/003>")
			assert.Contains(t, s, "under-specified query filter")

			var metrics bytes.Buffer
			require.NoError(t, a.WriteMetrics(&metrics))
			assert.Contains(t, metrics.String(), "rdfstore_triples_inserted_total 9")
		})
	}
}

const doc = `PREFIX ex: <http://example.org/>
ex:alice ex:knows ex:bob .
ex:bob ex:knows ex:carol <http://example.org/g1> .
`

func TestRunLoad(t *testing.T) {
	a := newTestApp(t, config.BackendMemory)

	var out bytes.Buffer
	err := runLoad(&out, a, strings.NewReader(doc), termQuery{subject: "http://example.org/alice"})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "loaded 2 triples into 2 namespaces")
	assert.Contains(t, s, "<http://example.org/bob>")
	assert.Contains(t, s, "_1 rows_")
}

func TestRunLoad_UnknownTerm(t *testing.T) {
	a := newTestApp(t, config.BackendMemory)

	var out bytes.Buffer
	err := runLoad(&out, a, strings.NewReader(doc), termQuery{object: "http://example.org/dave"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "no results")
}

func TestBuildFilter(t *testing.T) {
	a := newTestApp(t, config.BackendMemory)
	ns := loader.NewNamespaces()
	_, err := loader.Load(strings.NewReader(doc), a.Store, ns, a.Datatypes)
	require.NoError(t, err)

	filter, err := buildFilter(a.Store, ns, termQuery{
		predicate: "http://example.org/knows",
		object:    "http://example.org/carol",
		graph:     "http://example.org/g1",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), filter.Namespace)
	assert.Nil(t, filter.Subject)
	require.NotNil(t, filter.Predicate)
	require.NotNil(t, filter.Object)

	triples, err := a.Store.Query(filter)
	require.NoError(t, err)
	require.Len(t, triples, 1)
	assert.Equal(t, uint64(1), triples[0].Namespace)

	_, err = buildFilter(a.Store, ns, termQuery{subject: "http://example.org/alice", graph: "http://example.org/g9"})
	assert.ErrorIs(t, err, errUnknownTerm)
}

func TestNewApp_BadLogLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "loud"
	_, err := NewApp(cfg, &bytes.Buffer{})
	assert.Error(t, err)
}
