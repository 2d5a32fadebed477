package store

import (
	"fmt"
	"log/slog"

	"github.com/aleksaelezovic/rdfstore/internal/metrics"
	"github.com/aleksaelezovic/rdfstore/pkg/rdf"
)

// Triple is a namespaced triple of interned IDs. It is only meaningful
// together with the store that produced the IDs.
type Triple struct {
	Namespace uint64
	Subject   uint64
	Predicate uint64
	Object    uint64
}

func (t Triple) String() string {
	return fmt.Sprintf("%d: %d %d %d", t.Namespace, t.Subject, t.Predicate, t.Object)
}

// Statement is a triple of terms to insert into a namespace
type Statement struct {
	Namespace uint64
	Subject   rdf.Node
	Predicate rdf.Predicate
	Object    rdf.Node
}

// QuadStore interns RDF terms into a Graph and answers single-pattern queries.
// It is not safe for concurrent use.
type QuadStore struct {
	graph   Graph
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a QuadStore
type Option func(*QuadStore)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *QuadStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records inserts and queries in m
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *QuadStore) {
		s.metrics = m
	}
}

// NewQuadStore creates a store on top of graph
func NewQuadStore(graph Graph, opts ...Option) *QuadStore {
	s := &QuadStore{
		graph:  graph,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Graph returns the underlying graph
func (s *QuadStore) Graph() Graph {
	return s.graph
}

// InsertTriple interns subject, predicate and object and links them with one arc
func (s *QuadStore) InsertTriple(namespace uint64, subject rdf.Node, predicate rdf.Predicate, object rdf.Node) (Triple, error) {
	t, err := s.insertTriple(namespace, subject, predicate, object)
	if err != nil {
		code, _ := CodeOf(err)
		s.logger.Warn("insert failed",
			"namespace", namespace,
			"subject", subject.String(),
			"predicate", predicate.String(),
			"object", object.String(),
			"code", code.String(),
			"error", err,
		)
		s.metrics.InsertFailed(code.String())
		return Triple{}, err
	}

	s.logger.Debug("triple inserted",
		"namespace", t.Namespace,
		"subject", t.Subject,
		"predicate", t.Predicate,
		"object", t.Object,
	)
	s.metrics.TripleInserted()
	return t, nil
}

func (s *QuadStore) insertTriple(namespace uint64, subject rdf.Node, predicate rdf.Predicate, object rdf.Node) (Triple, error) {
	subID, err := s.graph.InsertVertex(subject)
	if err != nil {
		return Triple{}, newError(CodeFailureToInsertSubject, err)
	}

	objID, err := s.graph.InsertVertex(object)
	if err != nil {
		return Triple{}, newError(CodeFailureToInsertObject, err)
	}

	predID, err := s.graph.RegisterEdgeType(predicate)
	if err != nil {
		return Triple{}, newError(CodeFailureToInsertPredicate, err)
	}

	if err := s.graph.InsertEdge(subID, predID, objID); err != nil {
		return Triple{}, newError(CodeFailureToInsertTriple, err)
	}

	return Triple{
		Namespace: namespace,
		Subject:   subID,
		Predicate: predID,
		Object:    objID,
	}, nil
}

// InsertTriples inserts statements in order and stops at the first failure,
// returning the triples inserted before it
func (s *QuadStore) InsertTriples(statements []Statement) ([]Triple, error) {
	triples := make([]Triple, 0, len(statements))
	for i, st := range statements {
		t, err := s.InsertTriple(st.Namespace, st.Subject, st.Predicate, st.Object)
		if err != nil {
			return triples, fmt.Errorf("statement %d: %w", i, err)
		}
		triples = append(triples, t)
	}
	return triples, nil
}

// Resolve maps the IDs of t back to terms
func (s *QuadStore) Resolve(t Triple) (rdf.Node, rdf.Predicate, rdf.Node, error) {
	r, ok := s.graph.(Resolver)
	if !ok {
		return rdf.Node{}, rdf.Predicate{}, rdf.Node{}, ErrResolveUnsupported
	}

	subject, err := r.Vertex(t.Subject)
	if err != nil {
		return rdf.Node{}, rdf.Predicate{}, rdf.Node{}, newError(CodeNonExistentSubject, err)
	}
	predicate, err := r.EdgeType(t.Predicate)
	if err != nil {
		return rdf.Node{}, rdf.Predicate{}, rdf.Node{}, newError(CodeNonExistentPredicate, err)
	}
	object, err := r.Vertex(t.Object)
	if err != nil {
		return rdf.Node{}, rdf.Predicate{}, rdf.Node{}, newError(CodeNonExistentObject, err)
	}
	return subject, predicate, object, nil
}

// LookupNode returns the ID of an already interned node
func (s *QuadStore) LookupNode(node rdf.Node) (uint64, bool, error) {
	r, ok := s.graph.(Resolver)
	if !ok {
		return 0, false, ErrResolveUnsupported
	}
	return r.FindVertex(node)
}

// LookupPredicate returns the ID of an already registered predicate
func (s *QuadStore) LookupPredicate(predicate rdf.Predicate) (uint64, bool, error) {
	r, ok := s.graph.(Resolver)
	if !ok {
		return 0, false, ErrResolveUnsupported
	}
	return r.FindEdgeType(predicate)
}
