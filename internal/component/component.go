// Package component clusters files into named architecture components
// and derives the weighted, typed connections between them.
package component

import (
	"sort"
	"strings"

	"archmap/internal/classify"
	"archmap/internal/depgraph"
	"archmap/internal/routes"
)

// Component is a named cluster of files sharing a role and directory
// convention. Dependencies holds other component ids, never file ids.
type Component struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Role  classify.Role  `json:"type"`
	Layer classify.Layer `json:"layer"`

	Files        []string `json:"files"`
	Dependencies []string `json:"dependencies,omitempty"`

	// Endpoints is derived for API-route components only.
	Endpoints []string `json:"endpoints,omitempty"`
}

// Grouping is the result of clustering a graph's files.
type Grouping struct {
	Components []*Component

	byID   map[string]*Component
	byFile map[string]*Component
}

// ComponentFor returns the component owning a file path, or nil.
func (g *Grouping) ComponentFor(filePath string) *Component {
	return g.byFile[filePath]
}

// Component returns a component by id, or nil.
func (g *Grouping) Component(id string) *Component {
	return g.byID[id]
}

// Group clusters the graph's files into components. Each file maps to a
// group key derived from its role plus a directory discriminator; a
// component is created on first sight of a key and collects every
// subsequent file with the same key.
func Group(graph *depgraph.Graph) *Grouping {
	g := &Grouping{
		byID:   make(map[string]*Component),
		byFile: make(map[string]*Component),
	}

	for _, node := range graph.Nodes {
		id, name := groupKey(node)
		comp, ok := g.byID[id]
		if !ok {
			comp = &Component{
				ID:    id,
				Name:  name,
				Role:  node.Role,
				Layer: node.Layer,
			}
			g.byID[id] = comp
			g.Components = append(g.Components, comp)
		}
		comp.Files = append(comp.Files, node.Path)
		g.byFile[node.Path] = comp
	}

	g.aggregateDependencies(graph)
	g.deriveEndpoints()

	sort.Slice(g.Components, func(i, j int) bool { return g.Components[i].ID < g.Components[j].ID })
	return g
}

// aggregateDependencies resolves each file-level dependency to the
// component owning the target and collects the distinct component ids,
// excluding self-references.
func (g *Grouping) aggregateDependencies(graph *depgraph.Graph) {
	for _, comp := range g.byID {
		deps := make(map[string]bool)
		for _, filePath := range comp.Files {
			node := graph.Node(filePath)
			if node == nil {
				continue
			}
			for _, depID := range node.Dependencies {
				target := g.byFile[depID]
				if target == nil || target.ID == comp.ID {
					continue
				}
				deps[target.ID] = true
			}
		}
		comp.Dependencies = sortedKeys(deps)
	}
}

// deriveEndpoints fills the endpoint list of API-route components from
// their file paths.
func (g *Grouping) deriveEndpoints() {
	for _, comp := range g.byID {
		if comp.Role != classify.RoleAPIRoute {
			continue
		}
		comp.Endpoints = routes.Scan(comp.Files)
	}
}

// groupKey maps a file to its component id and display name.
func groupKey(node *depgraph.FileNode) (string, string) {
	p := node.Path

	switch node.Role {
	case classify.RoleAPIRoute:
		if seg := segmentAfter(p, "app/api/"); seg != "" && !strings.Contains(seg, ".") {
			return "api/" + seg, seg + " API"
		}
		if seg := segmentAfter(p, "pages/api/"); seg != "" {
			seg = strings.TrimSuffix(seg, pathExt(seg))
			return "api/" + seg, seg + " API"
		}
		return "api", "API"
	case classify.RoleComponent:
		if seg := segmentAfter(p, "components/"); seg != "" && !strings.Contains(seg, ".") {
			return "components/" + seg, seg + " components"
		}
		return "components", "components"
	case classify.RoleService:
		for _, root := range []string{"services/", "lib/"} {
			if seg := segmentAfter(p, root); seg != "" && !strings.Contains(seg, ".") {
				return "services/" + seg, seg + " services"
			}
		}
		return "services", "services"
	case classify.RolePage:
		return "pages", "pages"
	case classify.RoleHook:
		return "hooks", "hooks"
	case classify.RoleStore:
		return "stores", "state stores"
	case classify.RoleDatabase:
		return "database", "database"
	case classify.RoleType:
		return "types", "types"
	case classify.RoleConfig:
		return "config", "config"
	case classify.RoleMiddleware:
		return "middleware", "middleware"
	default:
		if seg := segmentAfter(p, "lib/"); seg != "" && !strings.Contains(seg, ".") {
			return "lib/" + seg, seg + " lib"
		}
		return "utils", "utilities"
	}
}

// segmentAfter returns the first path segment following the marker.
func segmentAfter(p, marker string) string {
	idx := strings.Index(p, marker)
	if idx < 0 {
		return ""
	}
	rest := p[idx+len(marker):]
	if slash := strings.Index(rest, "/"); slash >= 0 {
		return rest[:slash]
	}
	return rest
}

func pathExt(s string) string {
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		return s[idx:]
	}
	return ""
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
