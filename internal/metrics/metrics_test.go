package metrics

import (
	"fmt"
	"math"
	"testing"

	"archmap/internal/classify"
	"archmap/internal/component"
	"archmap/internal/depgraph"
	"archmap/internal/logging"
	"archmap/internal/manifest"
	"archmap/internal/source"
)

func node(filePath string, imports ...source.ImportInfo) *depgraph.FileNode {
	role, layer := classify.Classify(filePath, nil)
	return depgraph.NewFileNode(filePath, role, layer, &source.ParseResult{Imports: imports})
}

func relImport(spec, fromPath string) source.ImportInfo {
	resolved, _ := source.Resolve(spec, fromPath, source.DefaultRootAlias)
	return source.ImportInfo{Source: spec, Resolved: resolved}
}

func analyze(t *testing.T, nodes ...*depgraph.FileNode) (*depgraph.Graph, *component.Grouping, []*component.Connection) {
	t.Helper()
	g := depgraph.NewGraph(nodes)
	depgraph.NewBuilder(logging.Discard()).Build(g)
	grouping := component.Group(g)

	tables, err := manifest.LoadTables()
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	return g, grouping, component.BuildConnections(g, grouping, tables)
}

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestComputeSingleFile(t *testing.T) {
	m := Compute(analyze(t, node("src/utils/format.ts")))

	if m.Modularity != 1 {
		t.Errorf("Modularity = %v, want 1 (no dependencies)", m.Modularity)
	}
	if !approx(m.Cohesion, 0.1) {
		t.Errorf("Cohesion = %v, want 0.1 (1 file / 1 component / 10)", m.Cohesion)
	}
	if m.Coupling != 0 {
		t.Errorf("Coupling = %v, want 0 with fewer than 2 components", m.Coupling)
	}
	if m.Complexity != 0 {
		t.Errorf("Complexity = %v, want 0 (log10(1)*10)", m.Complexity)
	}
	if m.Depth != 1 {
		t.Errorf("Depth = %v, want 1", m.Depth)
	}
}

func TestComputeChainDepth(t *testing.T) {
	// a -> b -> c is a chain of 3 files.
	m := Compute(analyze(t,
		node("src/a.ts", relImport("./b", "src/a.ts")),
		node("src/b.ts", relImport("./c", "src/b.ts")),
		node("src/c.ts"),
	))

	if m.Depth != 3 {
		t.Errorf("Depth = %d, want 3", m.Depth)
	}
	if !approx(m.Complexity, math.Log10(3)*10) {
		t.Errorf("Complexity = %v, want log10(2+1)*10", m.Complexity)
	}
}

func TestComputeDepthTerminatesOnCycle(t *testing.T) {
	m := Compute(analyze(t,
		node("src/a.ts", relImport("./b", "src/a.ts")),
		node("src/b.ts", relImport("./a", "src/b.ts")),
	))

	// Each descent counts every node at most once.
	if m.Depth != 2 {
		t.Errorf("Depth = %d, want 2", m.Depth)
	}
}

func TestComputeCoupling(t *testing.T) {
	// Two components, one inter-component connection: 1/(2*1) = 0.5.
	m := Compute(analyze(t,
		node("src/hooks/useCart.ts", relImport("../services/cart", "src/hooks/useCart.ts")),
		node("src/services/cart.ts"),
	))

	if !approx(m.Coupling, 0.5) {
		t.Errorf("Coupling = %v, want 0.5", m.Coupling)
	}
}

func TestComputeCouplingIgnoresExternalServices(t *testing.T) {
	// The external-service connection has no component target, so it
	// does not count toward coupling.
	m := Compute(analyze(t,
		node("src/services/billing.ts",
			source.ImportInfo{Source: "stripe", IsExternal: true},
		),
		node("src/hooks/useCart.ts"),
	))

	if m.Coupling != 0 {
		t.Errorf("Coupling = %v, want 0", m.Coupling)
	}
}

func TestComputeBounds(t *testing.T) {
	// A dense graph keeps the bounded metrics inside [0,1].
	var nodes []*depgraph.FileNode
	for i := 0; i < 5; i++ {
		var imports []source.ImportInfo
		for j := 0; j < 5; j++ {
			if i == j {
				continue
			}
			imports = append(imports, relImport(fmt.Sprintf("./f%d", j), "src/x.ts"))
		}
		nodes = append(nodes, node(fmt.Sprintf("src/f%d.ts", i), imports...))
	}
	m := Compute(analyze(t, nodes...))

	for name, v := range map[string]float64{
		"Modularity": m.Modularity,
		"Cohesion":   m.Cohesion,
		"Coupling":   m.Coupling,
	} {
		if v < 0 || v > 1 {
			t.Errorf("%s = %v, outside [0,1]", name, v)
		}
	}
	if m.Complexity < 0 {
		t.Errorf("Complexity = %v, negative", m.Complexity)
	}
	if m.Depth < 1 {
		t.Errorf("Depth = %v, want >= 1", m.Depth)
	}
}

func TestComputeEmptyGraph(t *testing.T) {
	m := Compute(analyze(t))

	if m.Modularity != 0 || m.Cohesion != 0 || m.Coupling != 0 || m.Complexity != 0 || m.Depth != 0 {
		t.Errorf("empty graph metrics = %+v, want zero values", m)
	}
}
