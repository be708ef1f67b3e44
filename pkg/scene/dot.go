package scene

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/template"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint
)

//nolint:lll //this is a template
const dotTemplate = `strict digraph {
{{- range $s := .Statements}}
{{- if .Target}}
	"{{.Source}}" -> "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}}weight={{.EdgeWeight}} ];
{{- else}}
	"{{.Source}}" [ label="{{.Label}}" ];
{{- end}}
{{- end}}
}
`

type description struct {
	Statements []statement
}

type statement struct {
	Source         string
	Target         string
	Label          string
	EdgeWeight     int
	EdgeAttributes map[string]string
}

type dotConfig[T any] struct {
	label func(id int64, data T) string
	heat  bool
}

type DOTOption[T any] func(*dotConfig[T])

// DOTLabel overrides the node label, which defaults to the node identifier.
func DOTLabel[T any](label func(id int64, data T) string) DOTOption[T] {
	return func(cfg *dotConfig[T]) {
		cfg.label = label
	}
}

// DOTHeat colours every edge on a red-to-blue scale, heaviest edge red.
func DOTHeat[T any]() DOTOption[T] {
	return func(cfg *dotConfig[T]) {
		cfg.heat = true
	}
}

const maxRGB = 240

// WriteDOT renders the graph as graphviz DOT. Output is deterministic,
// nodes and edges are emitted in ascending identifier order.
func (g *Graph[T]) WriteDOT(wrt io.Writer, opts ...DOTOption[T]) error {
	cfg := dotConfig[T]{
		label: func(id int64, _ T) string { return fmt.Sprintf("%d", id) },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	desc, err := g.generateDOT(&cfg)
	if err != nil {
		return errors.Wrap(err, "unable to generate DOT description")
	}

	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

// ExportDOT renders the graph as graphviz DOT into the named file.
func (g *Graph[T]) ExportDOT(name string, opts ...DOTOption[T]) error {
	file, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", name)
	}
	defer file.Close()

	return g.WriteDOT(file, opts...)
}

func (g *Graph[T]) generateDOT(cfg *dotConfig[T]) (description, error) {
	desc := description{
		Statements: make([]statement, 0),
	}

	adjacencyMap, err := g.g.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	heat := map[int]string{}
	if cfg.heat {
		heat, err = g.heatColours(adjacencyMap)
		if err != nil {
			return desc, errors.Wrap(err, "unable to compute heat colours")
		}
	}

	ids := make([]int64, 0, len(adjacencyMap))
	for id := range adjacencyMap {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		node, err := g.g.Vertex(id)
		if err != nil {
			return desc, errors.Wrapf(err, "unable to get vertex %d", id)
		}

		desc.Statements = append(desc.Statements, statement{
			Source: fmt.Sprintf("%d", id),
			Label:  cfg.label(id, node.Data),
		})

		targets := make([]int64, 0, len(adjacencyMap[id]))
		for target := range adjacencyMap[id] {
			targets = append(targets, target)
		}
		sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

		for _, target := range targets {
			edge := adjacencyMap[id][target]

			attributes := make(map[string]string)
			if colour, ok := heat[edge.Properties.Weight]; ok {
				attributes["color"] = colour
			}

			desc.Statements = append(desc.Statements, statement{
				Source:         fmt.Sprintf("%d", id),
				Target:         fmt.Sprintf("%d", target),
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: attributes,
			})
		}
	}

	return desc, nil
}

func (g *Graph[T]) heatColours(adjacencyMap map[int64]map[int64]graph.Edge[int64]) (map[int]string, error) {
	weights := make([]int, 0)
	seen := make(map[int]struct{})

	for _, adjacencies := range adjacencyMap {
		for _, edge := range adjacencies {
			if _, ok := seen[edge.Properties.Weight]; ok {
				continue
			}
			seen[edge.Properties.Weight] = struct{}{}
			weights = append(weights, edge.Properties.Weight)
		}
	}

	colours := make(map[int]string, len(weights))
	if len(weights) == 0 {
		return colours, nil
	}

	sort.Sort(sort.Reverse(sort.IntSlice(weights)))
	maxValue := weights[0]
	minValue := weights[len(weights)-1]

	for _, weight := range weights {
		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(weight-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := -maxRGB*fraction + maxRGB

		colour, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return nil, errors.Wrap(err, "unable to get colour")
		}

		colours[weight] = colour.ToHEX().String()
	}

	return colours, nil
}
