package scene_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasskit/glasskit/pkg/scene"
)

func TestWriteDOT(t *testing.T) {
	t.Parallel()

	g := scene.New[string]()
	root := g.AddNode("root")
	child := g.AddNode("child")
	require.NoError(t, g.AddEdge(root, child, 1))

	var sb strings.Builder
	require.NoError(t, g.WriteDOT(&sb, scene.DOTLabel(func(_ int64, data string) string {
		return data
	})))

	expected := `strict digraph {
	"0" [ label="root" ];
	"0" -> "1" [ weight=1 ];
	"1" [ label="child" ];
}
`
	assert.Equal(t, expected, sb.String())
}

func TestWriteDOTDefaultLabels(t *testing.T) {
	t.Parallel()

	g := scene.New[string]()
	g.AddNode("anything")

	var sb strings.Builder
	require.NoError(t, g.WriteDOT(&sb))

	assert.Contains(t, sb.String(), `"0" [ label="0" ];`)
}

func TestWriteDOTHeat(t *testing.T) {
	t.Parallel()

	g := scene.New[string]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	c := g.AddNode("c")
	d := g.AddNode("d")
	require.NoError(t, g.AddEdge(a, b, 1))
	require.NoError(t, g.AddEdge(a, c, 5))
	require.NoError(t, g.AddEdge(b, d, 10))

	var sb strings.Builder
	require.NoError(t, g.WriteDOT(&sb, scene.DOTHeat[string]()))

	out := strings.ToLower(sb.String())
	// heaviest edge is pure red, lightest pure blue
	assert.Contains(t, out, `"1" -> "3" [ color="#f00000", weight=10 ];`)
	assert.Contains(t, out, `"0" -> "1" [ color="#0000f0", weight=1 ];`)
}

func TestExportDOT(t *testing.T) {
	t.Parallel()

	g := scene.New[string]()
	g.AddNode("only")

	name := t.TempDir() + "/scene.dot"
	require.NoError(t, g.ExportDOT(name))

	var sb strings.Builder
	require.NoError(t, g.WriteDOT(&sb))
	assert.FileExists(t, name)
}
