package store

import (
	"slices"
)

// QueryFilter is a triple pattern within one namespace. A nil ID is unbound.
// At least one of Subject and Object must be bound.
type QueryFilter struct {
	Namespace uint64
	Subject   *uint64
	Predicate *uint64
	Object    *uint64
}

// ID returns a pointer to id, for building filters
func ID(id uint64) *uint64 {
	return &id
}

// Pattern names which positions of a filter are bound
type Pattern byte

const (
	PatternUnderSpecified Pattern = iota
	PatternSPO
	PatternS
	PatternSP
	PatternPO
	PatternSO
	PatternO
)

func (p Pattern) String() string {
	switch p {
	case PatternSPO:
		return "spo"
	case PatternS:
		return "s"
	case PatternSP:
		return "sp"
	case PatternPO:
		return "po"
	case PatternSO:
		return "so"
	case PatternO:
		return "o"
	default:
		return "under-specified"
	}
}

// Pattern chooses the lookup strategy based on which positions are bound
func (f QueryFilter) Pattern() Pattern {
	sBound := f.Subject != nil
	pBound := f.Predicate != nil
	oBound := f.Object != nil

	switch {
	case sBound && pBound && oBound:
		return PatternSPO
	case sBound && pBound:
		return PatternSP
	case sBound && oBound:
		return PatternSO
	case sBound:
		return PatternS
	case pBound && oBound:
		return PatternPO
	case oBound:
		return PatternO
	default:
		// Nothing bound, or only the predicate.
		return PatternUnderSpecified
	}
}

// Query returns every triple matching filter. Each result carries the
// filter's namespace. No match is an empty result, except for a fully bound
// filter, which fails with ErrTripleNotFound.
func (s *QuadStore) Query(filter QueryFilter) ([]Triple, error) {
	pattern := filter.Pattern()

	triples, err := s.query(filter, pattern)
	if err != nil {
		code, _ := CodeOf(err)
		s.logger.Warn("query failed",
			"namespace", filter.Namespace,
			"pattern", pattern.String(),
			"code", code.String(),
			"error", err,
		)
		s.metrics.QueryFailed(pattern.String(), code.String())
		return nil, err
	}

	s.logger.Debug("query completed",
		"namespace", filter.Namespace,
		"pattern", pattern.String(),
		"results", len(triples),
	)
	s.metrics.QueryServed(pattern.String(), len(triples))
	return triples, nil
}

func (s *QuadStore) query(f QueryFilter, pattern Pattern) ([]Triple, error) {
	switch pattern {
	case PatternSPO:
		return s.querySPO(f.Namespace, *f.Subject, *f.Predicate, *f.Object)
	case PatternS:
		return s.queryS(f.Namespace, *f.Subject)
	case PatternSP:
		return s.querySP(f.Namespace, *f.Subject, *f.Predicate)
	case PatternPO:
		return s.queryPO(f.Namespace, *f.Predicate, *f.Object)
	case PatternSO:
		return s.querySO(f.Namespace, *f.Subject, *f.Object)
	case PatternO:
		return s.queryO(f.Namespace, *f.Object)
	default:
		return nil, newError(CodeUnderSpecifiedQueryFilter, nil)
	}
}

// querySPO checks for one exact triple
func (s *QuadStore) querySPO(ns, sub, pred, obj uint64) ([]Triple, error) {
	targets, err := s.graph.NeighboursByType(sub, pred)
	if err != nil {
		return nil, newError(CodeTripleNotFound, err)
	}
	if !slices.Contains(targets, obj) {
		return nil, newError(CodeTripleNotFound, nil)
	}
	return []Triple{{Namespace: ns, Subject: sub, Predicate: pred, Object: obj}}, nil
}

// queryS returns every outgoing arc of the subject
func (s *QuadStore) queryS(ns, sub uint64) ([]Triple, error) {
	arcs, err := s.graph.Neighbours(sub)
	if err != nil {
		return nil, newError(CodeSubjectNotFound, err)
	}
	triples := make([]Triple, 0, len(arcs))
	for _, arc := range arcs {
		triples = append(triples, Triple{Namespace: ns, Subject: sub, Predicate: arc.EdgeType, Object: arc.Vertex})
	}
	return triples, nil
}

// querySP returns the subject's arcs labeled pred
func (s *QuadStore) querySP(ns, sub, pred uint64) ([]Triple, error) {
	targets, err := s.graph.NeighboursByType(sub, pred)
	if err != nil {
		return nil, newError(CodeSubjectNotFound, err)
	}
	triples := make([]Triple, 0, len(targets))
	for _, obj := range targets {
		triples = append(triples, Triple{Namespace: ns, Subject: sub, Predicate: pred, Object: obj})
	}
	return triples, nil
}

// queryPO walks the object's incoming arcs labeled pred
func (s *QuadStore) queryPO(ns, pred, obj uint64) ([]Triple, error) {
	sources, err := s.graph.IncomingEdgesByType(obj, pred)
	if err != nil {
		return nil, newError(CodeObjectNotFound, err)
	}
	triples := make([]Triple, 0, len(sources))
	for _, sub := range sources {
		triples = append(triples, Triple{Namespace: ns, Subject: sub, Predicate: pred, Object: obj})
	}
	return triples, nil
}

// querySO scans the subject's outgoing arcs for ones ending at obj
func (s *QuadStore) querySO(ns, sub, obj uint64) ([]Triple, error) {
	arcs, err := s.graph.Neighbours(sub)
	if err != nil {
		return nil, newError(CodeSubjectNotFound, err)
	}
	var triples []Triple
	for _, arc := range arcs {
		if arc.Vertex == obj {
			triples = append(triples, Triple{Namespace: ns, Subject: sub, Predicate: arc.EdgeType, Object: obj})
		}
	}
	if triples == nil {
		triples = []Triple{}
	}
	return triples, nil
}

// queryO returns every incoming arc of the object
func (s *QuadStore) queryO(ns, obj uint64) ([]Triple, error) {
	arcs, err := s.graph.IncomingEdges(obj)
	if err != nil {
		return nil, newError(CodeObjectNotFound, err)
	}
	triples := make([]Triple, 0, len(arcs))
	for _, arc := range arcs {
		triples = append(triples, Triple{Namespace: ns, Subject: arc.Vertex, Predicate: arc.EdgeType, Object: obj})
	}
	return triples, nil
}
