// Package scene provides a directed acyclic scene graph. Nodes carry
// arbitrary payloads and are addressed by dense int64 identifiers handed out
// at insertion. Edges are weighted and rejected when they would connect a
// node to itself or close a cycle. Traversal, pathfinding and a DOT exporter
// are built on top.
package scene

import (
	"sort"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/glasskit/glasskit/internal/store"
)

// Node pairs a payload with the identifier the graph assigned to it.
type Node[T any] struct {
	ID   int64
	Data T
}

// Graph is a weighted directed acyclic graph of Node values. It is not safe
// for concurrent mutation.
type Graph[T any] struct {
	g      graph.Graph[int64, *Node[T]]
	nextID int64
}

func New[T any]() *Graph[T] {
	return &Graph[T]{
		g: graph.NewWithStore(
			func(n *Node[T]) int64 { return n.ID },
			store.NewMemory[int64, *Node[T]](),
			graph.Directed(),
			graph.Weighted(),
			graph.PreventCycles(),
		),
	}
}

// AddNode inserts data as a new node and returns its identifier. Identifiers
// are assigned sequentially starting at zero and are never reused.
func (g *Graph[T]) AddNode(data T) int64 {
	id := g.nextID
	g.nextID++

	// identifiers are unique by construction, the insert cannot collide
	_ = g.g.AddVertex(&Node[T]{ID: id, Data: data})

	return id
}

// Node returns the payload stored under id.
func (g *Graph[T]) Node(id int64) (T, error) {
	node, err := g.g.Vertex(id)
	if err != nil {
		var zero T
		return zero, errors.Wrapf(ErrNodeNotFound, "%d", id)
	}

	return node.Data, nil
}

// SetNode replaces the payload stored under id.
func (g *Graph[T]) SetNode(id int64, data T) error {
	node, err := g.g.Vertex(id)
	if err != nil {
		return errors.Wrapf(ErrNodeNotFound, "%d", id)
	}
	node.Data = data

	return nil
}

// Len returns the number of nodes.
func (g *Graph[T]) Len() int {
	order, err := g.g.Order()
	if err != nil {
		return 0
	}

	return order
}

// AddEdge connects from to to with the given weight. Self loops, duplicate
// edges and edges that would close a cycle are rejected.
func (g *Graph[T]) AddEdge(from, to int64, weight int) error {
	if from == to {
		return errors.Wrapf(ErrSelfLoop, "%d", from)
	}
	for _, id := range []int64{from, to} {
		if _, err := g.g.Vertex(id); err != nil {
			return errors.Wrapf(ErrNodeNotFound, "%d", id)
		}
	}

	err := g.g.AddEdge(from, to, graph.EdgeWeight(weight))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, graph.ErrEdgeAlreadyExists):
		return errors.Wrapf(ErrEdgeExists, "%d -> %d", from, to)
	case errors.Is(err, graph.ErrEdgeCreatesCycle):
		return errors.Wrapf(ErrCycle, "%d -> %d", from, to)
	}

	return errors.Wrapf(err, "unable to add edge %d -> %d", from, to)
}

// EdgeWeight returns the weight of the edge from from to to.
func (g *Graph[T]) EdgeWeight(from, to int64) (int, error) {
	edge, err := g.g.Edge(from, to)
	if err != nil {
		return 0, errors.Wrapf(ErrEdgeNotFound, "%d -> %d", from, to)
	}

	return edge.Properties.Weight, nil
}

// Neighbors returns the targets of all out-edges of id in ascending order.
func (g *Graph[T]) Neighbors(id int64) ([]int64, error) {
	if _, err := g.g.Vertex(id); err != nil {
		return nil, errors.Wrapf(ErrNodeNotFound, "%d", id)
	}

	adjacency, err := g.g.AdjacencyMap()
	if err != nil {
		return nil, errors.Wrap(err, "unable to build adjacency map")
	}

	ids := make([]int64, 0, len(adjacency[id]))
	for neighbor := range adjacency[id] {
		ids = append(ids, neighbor)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}

// BFS returns the nodes reachable from start in breadth-first order,
// start included.
func (g *Graph[T]) BFS(start int64) ([]int64, error) {
	if _, err := g.g.Vertex(start); err != nil {
		return nil, errors.Wrapf(ErrNodeNotFound, "%d", start)
	}

	var order []int64
	if err := graph.BFS(g.g, start, func(id int64) bool {
		order = append(order, id)
		return false
	}); err != nil {
		return nil, errors.Wrapf(err, "unable to walk from %d", start)
	}

	return order, nil
}

// DFS returns the nodes reachable from start in depth-first order,
// start included.
func (g *Graph[T]) DFS(start int64) ([]int64, error) {
	if _, err := g.g.Vertex(start); err != nil {
		return nil, errors.Wrapf(ErrNodeNotFound, "%d", start)
	}

	var order []int64
	if err := graph.DFS(g.g, start, func(id int64) bool {
		order = append(order, id)
		return false
	}); err != nil {
		return nil, errors.Wrapf(err, "unable to walk from %d", start)
	}

	return order, nil
}

// FindPath returns the cheapest path from from to to, both endpoints
// included, honoring edge weights.
func (g *Graph[T]) FindPath(from, to int64) ([]int64, error) {
	for _, id := range []int64{from, to} {
		if _, err := g.g.Vertex(id); err != nil {
			return nil, errors.Wrapf(ErrNodeNotFound, "%d", id)
		}
	}

	path, err := graph.ShortestPath(g.g, from, to)
	if err != nil {
		if errors.Is(err, graph.ErrTargetNotReachable) {
			return nil, errors.Wrapf(ErrNoPath, "%d -> %d", from, to)
		}
		return nil, errors.Wrapf(err, "unable to find path %d -> %d", from, to)
	}

	return path, nil
}
