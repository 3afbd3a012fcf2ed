// Package metrics computes scalar architecture scores from the built
// graph. The five values are independent computations over the same
// graph; none depends on another metric's result.
package metrics

import (
	"math"

	"archmap/internal/component"
	"archmap/internal/depgraph"
)

// Metrics holds the five architecture scores. Modularity, cohesion and
// coupling are bounded to [0,1]; complexity and depth are unbounded
// non-negative.
type Metrics struct {
	Modularity float64 `json:"modularity"`
	Cohesion   float64 `json:"cohesion"`
	Coupling   float64 `json:"coupling"`
	Complexity float64 `json:"complexity"`
	Depth      int     `json:"depth"`
}

// Compute derives all five scores.
func Compute(graph *depgraph.Graph, grouping *component.Grouping, conns []*component.Connection) *Metrics {
	m := &Metrics{}

	fileCount := len(graph.Nodes)
	componentCount := len(grouping.Components)
	edgeCount := graph.EdgeCount()

	if fileCount > 0 {
		avgDeps := float64(edgeCount) / float64(fileCount)
		m.Modularity = clamp01(1 - avgDeps/20)
	}

	if componentCount > 0 {
		avgFiles := float64(fileCount) / float64(componentCount)
		m.Cohesion = clamp01(avgFiles / 10)
	}

	if componentCount >= 2 {
		interComponent := 0
		for _, c := range conns {
			if grouping.Component(c.Target) != nil {
				interComponent++
			}
		}
		maxPairs := componentCount * (componentCount - 1)
		m.Coupling = clamp01(float64(interComponent) / float64(maxPairs))
	}

	m.Complexity = math.Log10(float64(edgeCount)+1) * 10

	m.Depth = maxChainDepth(graph)

	return m
}

// maxChainDepth returns the longest dependency chain length over all
// files.
func maxChainDepth(graph *depgraph.Graph) int {
	best := 0
	for _, node := range graph.Nodes {
		if d := chainDepth(graph, node.ID); d > best {
			best = d
		}
	}
	return best
}

// chainDepth computes the longest chain starting at one file with an
// explicit stack instead of recursion. A per-descent visited set stops
// cycles: a node revisited in the current descent contributes depth 0
// from that point rather than recursing forever.
func chainDepth(graph *depgraph.Graph, startID string) int {
	type frame struct {
		id   string
		next int
		best int
	}

	visited := map[string]bool{startID: true}
	stack := []frame{{id: startID}}

	for {
		f := &stack[len(stack)-1]
		node := graph.Node(f.id)

		descended := false
		for f.next < len(node.Dependencies) {
			dep := node.Dependencies[f.next]
			f.next++
			if visited[dep] || graph.Node(dep) == nil {
				continue
			}
			visited[dep] = true
			stack = append(stack, frame{id: dep})
			descended = true
			break
		}
		if descended {
			continue
		}

		depth := f.best + 1
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return depth
		}
		parent := &stack[len(stack)-1]
		if depth > parent.best {
			parent.best = depth
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
