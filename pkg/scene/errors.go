package scene

import "github.com/pkg/errors"

var (
	ErrNodeNotFound = errors.New("node is not in the graph")
	ErrEdgeNotFound = errors.New("edge is not in the graph")
	ErrEdgeExists   = errors.New("edge is already in the graph")
	ErrSelfLoop     = errors.New("edge connects a node to itself")
	ErrCycle        = errors.New("edge would create a cycle")
	ErrNoPath       = errors.New("no path between the nodes")
)
