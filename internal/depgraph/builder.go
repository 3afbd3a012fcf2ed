package depgraph

import (
	"log/slog"
	"sort"
	"strings"
)

// candidateSuffixes is the fixed list tried, in order, when linking an
// import whose specifier omits the extension.
var candidateSuffixes = []string{
	".ts", ".tsx", ".js", ".jsx", "/index.ts", "/index.tsx", "/index.js",
}

// Graph holds the file nodes of one analysis run, in deterministic
// path order.
type Graph struct {
	Nodes []*FileNode `json:"nodes"`

	byID map[string]*FileNode
}

// NewGraph builds a graph over the given nodes, sorted by path.
func NewGraph(nodes []*FileNode) *Graph {
	sorted := make([]*FileNode, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	byID := make(map[string]*FileNode, len(sorted))
	for _, n := range sorted {
		byID[n.ID] = n
	}
	return &Graph{Nodes: sorted, byID: byID}
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *FileNode {
	return g.byID[id]
}

// EdgeCount returns the number of dependency edges in the graph.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, n := range g.Nodes {
		total += len(n.Dependencies)
	}
	return total
}

// Builder links resolved imports into dependency edges.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a graph builder.
func NewBuilder(logger *slog.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build wires dependency edges between the graph's nodes. For every
// import carrying a resolved path it tries the candidate suffixes in
// order and links the first node found. Unresolvable imports are
// skipped silently; they are not errors. Self-edges are never created
// and insertion is idempotent.
func (b *Builder) Build(g *Graph) {
	lookup := buildPathLookup(g.Nodes)

	linked, skipped := 0, 0
	for _, node := range g.Nodes {
		for _, imp := range node.Imports {
			if imp.Resolved == "" {
				continue
			}

			target := findTarget(lookup, imp.Resolved)
			if target == nil {
				skipped++
				continue
			}
			if target.ID == node.ID {
				continue
			}

			addEdge(node, target)
			linked++
		}
	}

	// Keep adjacency lists in deterministic order for serialization.
	for _, node := range g.Nodes {
		sort.Strings(node.Dependencies)
		sort.Strings(node.Dependents)
	}

	b.logger.Debug("dependency graph built",
		"nodes", len(g.Nodes),
		"edges", linked,
		"unresolved", skipped,
	)
}

// pathLookup indexes nodes by path. The stripped index (extension
// removed) is a fallback only: it must never shadow the candidate
// suffix order, so it is kept apart from the exact index.
type pathLookup struct {
	exact    map[string]*FileNode
	stripped map[string]*FileNode
}

func buildPathLookup(nodes []*FileNode) *pathLookup {
	lookup := &pathLookup{
		exact:    make(map[string]*FileNode, len(nodes)),
		stripped: make(map[string]*FileNode, len(nodes)),
	}
	for _, node := range nodes {
		lookup.exact[node.Path] = node
		if idx := strings.LastIndex(node.Path, "."); idx > 0 && !strings.Contains(node.Path[idx:], "/") {
			key := node.Path[:idx]
			if _, exists := lookup.stripped[key]; !exists {
				lookup.stripped[key] = node
			}
		}
	}
	return lookup
}

// findTarget tries the resolved path as written, then the candidate
// suffixes in their fixed order, and only then the extension-stripped
// index, so a sibling with an off-list extension can never win over a
// candidate match.
func findTarget(lookup *pathLookup, resolved string) *FileNode {
	if node, ok := lookup.exact[resolved]; ok {
		return node
	}
	for _, suffix := range candidateSuffixes {
		if node, ok := lookup.exact[resolved+suffix]; ok {
			return node
		}
	}
	return lookup.stripped[resolved]
}

// addEdge inserts A→B into both adjacency lists, keeping them free of
// duplicates.
func addEdge(from, to *FileNode) {
	if !containsID(from.Dependencies, to.ID) {
		from.Dependencies = append(from.Dependencies, to.ID)
	}
	if !containsID(to.Dependents, from.ID) {
		to.Dependents = append(to.Dependents, from.ID)
	}
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
