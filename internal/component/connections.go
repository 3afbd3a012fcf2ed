package component

import (
	"sort"

	"archmap/internal/classify"
	"archmap/internal/depgraph"
	"archmap/internal/manifest"
)

// ConnectionType labels the relationship carried by a connection.
type ConnectionType string

const (
	ConnImports  ConnectionType = "imports"
	ConnCalls    ConnectionType = "calls"
	ConnRenders  ConnectionType = "renders"
	ConnUses     ConnectionType = "uses"
	ConnExtends  ConnectionType = "extends"
	ConnDataFlow ConnectionType = "data-flow"
)

// Connection is a directed, weighted edge between two component ids, or
// between a component and an external-service pseudo-component. Weight
// counts the underlying file-level import edges; connections are
// deduplicated by (source, target) with weight accumulation.
type Connection struct {
	Source string         `json:"source"`
	Target string         `json:"target"`
	Type   ConnectionType `json:"type"`
	Weight int            `json:"weight"`

	// Label carries the external service category for connections
	// targeting an external service.
	Label string `json:"label,omitempty"`
}

// ExternalServiceID is the pseudo-component id used as connection
// target for a detected external service.
func ExternalServiceID(svc *manifest.ExternalService) string {
	return "external:" + svc.Name
}

// BuildConnections derives component-level connections from the
// file-level graph plus external-service connections from external
// imports. The two paths are disjoint: external services are never
// components with files.
func BuildConnections(graph *depgraph.Graph, grouping *Grouping, tables *manifest.Tables) []*Connection {
	index := make(map[string]*Connection)

	for _, node := range graph.Nodes {
		from := grouping.ComponentFor(node.Path)
		if from == nil {
			continue
		}

		for _, depID := range node.Dependencies {
			to := grouping.ComponentFor(depID)
			if to == nil || to.ID == from.ID {
				continue
			}
			key := from.ID + "\x00" + to.ID
			if conn, ok := index[key]; ok {
				conn.Weight++
				continue
			}
			index[key] = &Connection{
				Source: from.ID,
				Target: to.ID,
				Type:   inferType(from, to),
				Weight: 1,
			}
		}

		for _, imp := range node.Imports {
			if !imp.IsExternal {
				continue
			}
			svc, ok := tables.MatchService(imp.Source)
			if !ok {
				continue
			}
			target := ExternalServiceID(svc)
			key := from.ID + "\x00" + target
			if conn, ok := index[key]; ok {
				conn.Weight++
				continue
			}
			index[key] = &Connection{
				Source: from.ID,
				Target: target,
				Type:   ConnUses,
				Weight: 1,
				Label:  svc.Category,
			}
		}
	}

	conns := make([]*Connection, 0, len(index))
	for _, c := range index {
		conns = append(conns, c)
	}
	sort.Slice(conns, func(i, j int) bool {
		if conns[i].Source != conns[j].Source {
			return conns[i].Source < conns[j].Source
		}
		return conns[i].Target < conns[j].Target
	})
	return conns
}

// inferType picks a connection type from the endpoint layers:
// presentation→presentation renders, application→domain calls,
// anything targeting infrastructure uses, and imports otherwise.
func inferType(from, to *Component) ConnectionType {
	switch {
	case from.Layer == classify.LayerPresentation && to.Layer == classify.LayerPresentation:
		return ConnRenders
	case from.Layer == classify.LayerApplication && to.Layer == classify.LayerDomain:
		return ConnCalls
	case to.Layer == classify.LayerInfrastructure:
		return ConnUses
	default:
		return ConnImports
	}
}
