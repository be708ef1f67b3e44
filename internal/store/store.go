// Package store provides the in-memory backend for the scene graph.
package store

import (
	"sync"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
)

// Memory is a mutex-guarded graph.Store. Edges are indexed in both
// directions so cycle checks can walk predecessors directly instead of
// materialising a predecessor map on every AddEdge.
type Memory[K comparable, T any] struct {
	mu         sync.RWMutex
	vertices   map[K]T
	properties map[K]*graph.VertexProperties
	out        map[K]map[K]graph.Edge[K] // source -> target
	in         map[K]map[K]graph.Edge[K] // target -> source
}

func NewMemory[K comparable, T any]() *Memory[K, T] {
	return &Memory[K, T]{
		vertices:   make(map[K]T),
		properties: make(map[K]*graph.VertexProperties),
		out:        make(map[K]map[K]graph.Edge[K]),
		in:         make(map[K]map[K]graph.Edge[K]),
	}
}

func (s *Memory[K, T]) AddVertex(k K, value T, properties graph.VertexProperties) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vertices[k]; ok {
		return graph.ErrVertexAlreadyExists
	}

	s.vertices[k] = value
	s.properties[k] = &properties

	return nil
}

func (s *Memory[K, T]) Vertex(k K) (T, graph.VertexProperties, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.vertices[k]
	if !ok {
		return value, graph.VertexProperties{}, graph.ErrVertexNotFound
	}

	return value, *s.properties[k], nil
}

func (s *Memory[K, T]) RemoveVertex(k K) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vertices[k]; !ok {
		return graph.ErrVertexNotFound
	}
	if len(s.in[k]) > 0 || len(s.out[k]) > 0 {
		return graph.ErrVertexHasEdges
	}

	delete(s.in, k)
	delete(s.out, k)
	delete(s.vertices, k)
	delete(s.properties, k)

	return nil
}

func (s *Memory[K, T]) ListVertices() ([]K, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hashes := make([]K, 0, len(s.vertices))
	for k := range s.vertices {
		hashes = append(hashes, k)
	}

	return hashes, nil
}

func (s *Memory[K, T]) VertexCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.vertices), nil
}

func (s *Memory[K, T]) AddEdge(source, target K, edge graph.Edge[K]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index(s.out, source, target, edge)
	index(s.in, target, source, edge)

	return nil
}

func (s *Memory[K, T]) UpdateEdge(source, target K, edge graph.Edge[K]) error {
	if _, err := s.Edge(source, target); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.out[source][target] = edge
	s.in[target][source] = edge

	return nil
}

func (s *Memory[K, T]) RemoveEdge(source, target K) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.out[source], target)
	delete(s.in[target], source)

	return nil
}

func (s *Memory[K, T]) Edge(source, target K) (graph.Edge[K], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edge, ok := s.out[source][target]
	if !ok {
		return graph.Edge[K]{}, graph.ErrEdgeNotFound
	}

	return edge, nil
}

func (s *Memory[K, T]) ListEdges() ([]graph.Edge[K], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges := make([]graph.Edge[K], 0)
	for _, targets := range s.out {
		for _, edge := range targets {
			edges = append(edges, edge)
		}
	}

	return edges, nil
}

// CreatesCycle reports whether an edge from source to target would close a
// cycle. It walks the in-edge index upwards from source looking for target,
// which avoids the predecessor map the generic implementation allocates on
// every call.
func (s *Memory[K, T]) CreatesCycle(source, target K) (bool, error) {
	if _, _, err := s.Vertex(source); err != nil {
		return false, errors.Wrapf(err, "could not get vertex %v", source)
	}
	if _, _, err := s.Vertex(target); err != nil {
		return false, errors.Wrapf(err, "could not get vertex %v", target)
	}
	if source == target {
		return true, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stack := []K{source}
	visited := make(map[K]struct{})

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := visited[current]; ok {
			continue
		}
		// target being an ancestor of source means the new edge closes a loop
		if current == target {
			return true, nil
		}
		visited[current] = struct{}{}

		for predecessor := range s.in[current] {
			stack = append(stack, predecessor)
		}
	}

	return false, nil
}

func index[K comparable](edges map[K]map[K]graph.Edge[K], from, to K, edge graph.Edge[K]) {
	if _, ok := edges[from]; !ok {
		edges[from] = make(map[K]graph.Edge[K])
	}
	edges[from][to] = edge
}

var _ graph.Store[int64, any] = (*Memory[int64, any])(nil)
