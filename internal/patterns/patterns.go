// Package patterns recognizes architecture and design patterns, and
// anti-patterns, over the built graph and component grouping.
package patterns

import (
	"sort"
	"strings"

	"archmap/internal/classify"
	"archmap/internal/component"
	"archmap/internal/depgraph"
)

// Kind distinguishes the pattern families.
type Kind string

const (
	KindArchitecture Kind = "architecture"
	KindDesign       Kind = "design"
	KindAntiPattern  Kind = "anti-pattern"
)

// godDependencyThreshold is the strict dependency-count bound above
// which a file is flagged as a god component.
const godDependencyThreshold = 15

// Pattern is one recognized pattern with the files implicating it.
type Pattern struct {
	Name       string   `json:"name"`
	Kind       Kind     `json:"kind"`
	Files      []string `json:"files,omitempty"`
	Confidence float64  `json:"confidence"`
}

// Detect evaluates the fixed predicate list. Predicates are
// independent: several patterns commonly co-occur, and the absence of
// one never suppresses another.
func Detect(graph *depgraph.Graph, grouping *component.Grouping, framework string) []*Pattern {
	var found []*Pattern

	if p := detectRoutingConvention(graph, framework); p != nil {
		found = append(found, p)
	}
	if p := detectFeatureOrganization(grouping); p != nil {
		found = append(found, p)
	}
	if p := detectServiceLayer(grouping); p != nil {
		found = append(found, p)
	}
	if p := detectCentralizedState(grouping); p != nil {
		found = append(found, p)
	}
	if p := detectCustomHooks(graph); p != nil {
		found = append(found, p)
	}
	if p := detectCircularDependencies(graph); p != nil {
		found = append(found, p)
	}
	if p := detectGodComponents(graph); p != nil {
		found = append(found, p)
	}

	return found
}

// detectRoutingConvention reports the framework routing convention in
// use. Confidence is fixed per pattern, not computed.
func detectRoutingConvention(graph *depgraph.Graph, framework string) *Pattern {
	if framework != "nextjs" {
		return nil
	}
	var appFiles, pagesFiles []string
	for _, node := range graph.Nodes {
		switch {
		case strings.Contains(node.Path, "app/") && (node.Role == classify.RolePage || node.Role == classify.RoleAPIRoute):
			appFiles = append(appFiles, node.Path)
		case strings.Contains(node.Path, "pages/"):
			pagesFiles = append(pagesFiles, node.Path)
		}
	}
	if len(appFiles) > 0 {
		return &Pattern{Name: "Next.js App Router", Kind: KindArchitecture, Files: appFiles, Confidence: 0.95}
	}
	if len(pagesFiles) > 0 {
		return &Pattern{Name: "Next.js Pages Router", Kind: KindArchitecture, Files: pagesFiles, Confidence: 0.9}
	}
	return nil
}

// detectFeatureOrganization fires when more than 5 distinct top-level
// component directory groupings exist.
func detectFeatureOrganization(grouping *component.Grouping) *Pattern {
	var dirs []string
	for _, comp := range grouping.Components {
		if strings.HasPrefix(comp.ID, "components/") {
			dirs = append(dirs, comp.ID)
		}
	}
	if len(dirs) <= 5 {
		return nil
	}
	return &Pattern{Name: "Feature-Based Organization", Kind: KindArchitecture, Files: nil, Confidence: 0.8}
}

func detectServiceLayer(grouping *component.Grouping) *Pattern {
	var files []string
	for _, comp := range grouping.Components {
		if comp.Role == classify.RoleService {
			files = append(files, comp.Files...)
		}
	}
	if len(files) == 0 {
		return nil
	}
	sort.Strings(files)
	return &Pattern{Name: "Service Layer", Kind: KindDesign, Files: files, Confidence: 0.85}
}

func detectCentralizedState(grouping *component.Grouping) *Pattern {
	var files []string
	for _, comp := range grouping.Components {
		if comp.Role == classify.RoleStore {
			files = append(files, comp.Files...)
		}
	}
	if len(files) == 0 {
		return nil
	}
	sort.Strings(files)
	return &Pattern{Name: "Centralized State Management", Kind: KindDesign, Files: files, Confidence: 0.85}
}

// detectCustomHooks fires when more than 3 files classify as hooks.
func detectCustomHooks(graph *depgraph.Graph) *Pattern {
	var files []string
	for _, node := range graph.Nodes {
		if node.Role == classify.RoleHook {
			files = append(files, node.Path)
		}
	}
	if len(files) <= 3 {
		return nil
	}
	return &Pattern{Name: "Custom Hooks", Kind: KindDesign, Files: files, Confidence: 0.8}
}

// detectCircularDependencies runs a depth-first search with an explicit
// stack and a visited/on-stack color pair. A node re-encountered while
// still on the recursion stack participates in a cycle. Detection is
// deterministic, so confidence is fixed at 1.0.
func detectCircularDependencies(graph *depgraph.Graph) *Pattern {
	const (
		white = 0 // unvisited
		gray  = 1 // on the recursion stack
		black = 2 // fully explored
	)

	color := make(map[string]int, len(graph.Nodes))
	cycleFiles := make(map[string]bool)

	type frame struct {
		id   string
		next int
	}

	for _, start := range graph.Nodes {
		if color[start.ID] != white {
			continue
		}

		stack := []frame{{id: start.ID}}
		color[start.ID] = gray

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			node := graph.Node(f.id)

			if f.next < len(node.Dependencies) {
				dep := node.Dependencies[f.next]
				f.next++

				switch color[dep] {
				case gray:
					// Mark every node on the stack segment that closes
					// the cycle, from dep up to the current frame.
					for i := len(stack) - 1; i >= 0; i-- {
						cycleFiles[stack[i].id] = true
						if stack[i].id == dep {
							break
						}
					}
				case white:
					color[dep] = gray
					stack = append(stack, frame{id: dep})
				}
				continue
			}

			color[f.id] = black
			stack = stack[:len(stack)-1]
		}
	}

	if len(cycleFiles) == 0 {
		return nil
	}

	files := make([]string, 0, len(cycleFiles))
	for f := range cycleFiles {
		files = append(files, f)
	}
	sort.Strings(files)
	return &Pattern{Name: "Circular Dependencies", Kind: KindAntiPattern, Files: files, Confidence: 1.0}
}

// detectGodComponents flags files whose dependency count strictly
// exceeds the threshold.
func detectGodComponents(graph *depgraph.Graph) *Pattern {
	var files []string
	for _, node := range graph.Nodes {
		if len(node.Dependencies) > godDependencyThreshold {
			files = append(files, node.Path)
		}
	}
	if len(files) == 0 {
		return nil
	}
	return &Pattern{Name: "God Components", Kind: KindAntiPattern, Files: files, Confidence: 0.9}
}
