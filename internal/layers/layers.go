// Package layers partitions files and components into the five fixed
// architectural tiers for display.
package layers

import (
	"archmap/internal/classify"
	"archmap/internal/component"
	"archmap/internal/depgraph"
)

// Group holds the files and components assigned to one layer.
type Group struct {
	Layer      classify.Layer `json:"layer"`
	Files      []string       `json:"files"`
	Components []string       `json:"components"`
}

// Partition filters files and components by their layer field. It is a
// pure partition with no computation beyond filtering; all five layers
// are always present, in fixed order, even when empty.
func Partition(graph *depgraph.Graph, grouping *component.Grouping) []*Group {
	groups := make([]*Group, 0, 5)
	for _, layer := range classify.Layers() {
		g := &Group{
			Layer:      layer,
			Files:      []string{},
			Components: []string{},
		}
		for _, node := range graph.Nodes {
			if node.Layer == layer {
				g.Files = append(g.Files, node.Path)
			}
		}
		for _, comp := range grouping.Components {
			if comp.Layer == layer {
				g.Components = append(g.Components, comp.ID)
			}
		}
		groups = append(groups, g)
	}
	return groups
}
