// Package flow discovers canonical request/response paths by chaining
// typed component connections.
package flow

import (
	"fmt"

	"archmap/internal/classify"
	"archmap/internal/component"
)

// Path is one discovered chain of component ids with a human label.
type Path struct {
	Label      string   `json:"label"`
	Components []string `json:"components"`
}

// Detect finds two canonical shapes: API route -> service -> infra
// component, and presentation component -> API route. Every qualifying
// chain is recorded, not just the first per starting node.
func Detect(grouping *component.Grouping, conns []*component.Connection) []*Path {
	outgoing := make(map[string][]*component.Connection)
	for _, c := range conns {
		outgoing[c.Source] = append(outgoing[c.Source], c)
	}

	var paths []*Path

	for _, c := range conns {
		from := grouping.Component(c.Source)
		to := grouping.Component(c.Target)
		if from == nil || to == nil {
			continue
		}

		// API route -> service -> infrastructure.
		if from.Role == classify.RoleAPIRoute && to.Role == classify.RoleService {
			for _, next := range outgoing[to.ID] {
				infra := grouping.Component(next.Target)
				if infra == nil || infra.Layer != classify.LayerInfrastructure {
					continue
				}
				paths = append(paths, &Path{
					Label:      fmt.Sprintf("Request flow: %s -> %s -> %s", from.Name, to.Name, infra.Name),
					Components: []string{from.ID, to.ID, infra.ID},
				})
			}
		}

		// Presentation component -> API route.
		if from.Layer == classify.LayerPresentation && to.Role == classify.RoleAPIRoute {
			paths = append(paths, &Path{
				Label:      fmt.Sprintf("Data fetch: %s -> %s", from.Name, to.Name),
				Components: []string{from.ID, to.ID},
			})
		}
	}

	return paths
}
