package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasskit/glasskit/pkg/scene"
)

func buildChain(t *testing.T, length int) (*scene.Graph[string], []int64) {
	t.Helper()

	g := scene.New[string]()
	ids := make([]int64, length)
	for i := range ids {
		ids[i] = g.AddNode("node")
	}
	for i := 0; i < length-1; i++ {
		require.NoError(t, g.AddEdge(ids[i], ids[i+1], 1))
	}

	return g, ids
}

func TestAddNode(t *testing.T) {
	t.Parallel()

	g := scene.New[string]()
	root := g.AddNode("root")
	child := g.AddNode("child")

	assert.Equal(t, int64(0), root)
	assert.Equal(t, int64(1), child)
	assert.Equal(t, 2, g.Len())

	data, err := g.Node(root)
	require.NoError(t, err)
	assert.Equal(t, "root", data)
}

func TestNodeNotFound(t *testing.T) {
	t.Parallel()

	g := scene.New[string]()

	_, err := g.Node(42)
	require.Error(t, err)
	assert.ErrorIs(t, err, scene.ErrNodeNotFound)
}

func TestSetNode(t *testing.T) {
	t.Parallel()

	g := scene.New[string]()
	id := g.AddNode("before")

	require.NoError(t, g.SetNode(id, "after"))

	data, err := g.Node(id)
	require.NoError(t, err)
	assert.Equal(t, "after", data)

	err = g.SetNode(42, "nowhere")
	require.Error(t, err)
	assert.ErrorIs(t, err, scene.ErrNodeNotFound)
}

func TestAddEdge(t *testing.T) {
	t.Parallel()

	g := scene.New[string]()
	a := g.AddNode("a")
	b := g.AddNode("b")

	require.NoError(t, g.AddEdge(a, b, 3))

	weight, err := g.EdgeWeight(a, b)
	require.NoError(t, err)
	assert.Equal(t, 3, weight)

	_, err = g.EdgeWeight(b, a)
	require.Error(t, err)
	assert.ErrorIs(t, err, scene.ErrEdgeNotFound)
}

func TestAddEdgeDuplicate(t *testing.T) {
	t.Parallel()

	g := scene.New[string]()
	a := g.AddNode("a")
	b := g.AddNode("b")

	require.NoError(t, g.AddEdge(a, b, 1))

	err := g.AddEdge(a, b, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, scene.ErrEdgeExists)
}

func TestAddEdgeSelfLoop(t *testing.T) {
	t.Parallel()

	g := scene.New[string]()
	a := g.AddNode("a")

	err := g.AddEdge(a, a, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, scene.ErrSelfLoop)
}

func TestAddEdgeMissingNode(t *testing.T) {
	t.Parallel()

	g := scene.New[string]()
	a := g.AddNode("a")

	err := g.AddEdge(a, 42, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, scene.ErrNodeNotFound)
}

func TestAddEdgeCycle(t *testing.T) {
	t.Parallel()

	g, ids := buildChain(t, 3)

	err := g.AddEdge(ids[2], ids[0], 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, scene.ErrCycle)
}

func TestNeighbors(t *testing.T) {
	t.Parallel()

	g := scene.New[string]()
	root := g.AddNode("root")
	left := g.AddNode("left")
	right := g.AddNode("right")
	require.NoError(t, g.AddEdge(root, right, 1))
	require.NoError(t, g.AddEdge(root, left, 1))

	neighbors, err := g.Neighbors(root)
	require.NoError(t, err)
	assert.Equal(t, []int64{left, right}, neighbors)

	neighbors, err = g.Neighbors(left)
	require.NoError(t, err)
	assert.Empty(t, neighbors)

	_, err = g.Neighbors(42)
	require.Error(t, err)
	assert.ErrorIs(t, err, scene.ErrNodeNotFound)
}

func TestBFSChain(t *testing.T) {
	t.Parallel()

	g, ids := buildChain(t, 4)

	order, err := g.BFS(ids[0])
	require.NoError(t, err)
	assert.Equal(t, ids, order)
}

func TestBFSDiamond(t *testing.T) {
	t.Parallel()

	g := scene.New[string]()
	top := g.AddNode("top")
	left := g.AddNode("left")
	right := g.AddNode("right")
	bottom := g.AddNode("bottom")
	require.NoError(t, g.AddEdge(top, left, 1))
	require.NoError(t, g.AddEdge(top, right, 1))
	require.NoError(t, g.AddEdge(left, bottom, 1))
	require.NoError(t, g.AddEdge(right, bottom, 1))

	order, err := g.BFS(top)
	require.NoError(t, err)
	require.Len(t, order, 4)
	assert.Equal(t, top, order[0])
	assert.Equal(t, bottom, order[3])
	assert.ElementsMatch(t, []int64{left, right}, order[1:3])
}

func TestBFSUnreachableExcluded(t *testing.T) {
	t.Parallel()

	g, ids := buildChain(t, 2)
	island := g.AddNode("island")

	order, err := g.BFS(ids[0])
	require.NoError(t, err)
	assert.Equal(t, ids, order)
	assert.NotContains(t, order, island)
}

func TestDFSChain(t *testing.T) {
	t.Parallel()

	g, ids := buildChain(t, 4)

	order, err := g.DFS(ids[0])
	require.NoError(t, err)
	assert.Equal(t, ids, order)
}

func TestDFSMissingStart(t *testing.T) {
	t.Parallel()

	g := scene.New[string]()

	_, err := g.DFS(42)
	require.Error(t, err)
	assert.ErrorIs(t, err, scene.ErrNodeNotFound)
}

func TestFindPath(t *testing.T) {
	t.Parallel()

	// cheap detour through mid beats the heavy direct edge
	g := scene.New[string]()
	start := g.AddNode("start")
	mid := g.AddNode("mid")
	slow := g.AddNode("slow")
	goal := g.AddNode("goal")
	require.NoError(t, g.AddEdge(start, mid, 1))
	require.NoError(t, g.AddEdge(mid, goal, 1))
	require.NoError(t, g.AddEdge(start, slow, 5))
	require.NoError(t, g.AddEdge(slow, goal, 5))

	path, err := g.FindPath(start, goal)
	require.NoError(t, err)
	assert.Equal(t, []int64{start, mid, goal}, path)
}

func TestFindPathNoPath(t *testing.T) {
	t.Parallel()

	g, ids := buildChain(t, 2)

	_, err := g.FindPath(ids[1], ids[0])
	require.Error(t, err)
	assert.ErrorIs(t, err, scene.ErrNoPath)
}

func TestFindPathMissingNode(t *testing.T) {
	t.Parallel()

	g := scene.New[string]()
	a := g.AddNode("a")

	_, err := g.FindPath(a, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, scene.ErrNodeNotFound)
}
