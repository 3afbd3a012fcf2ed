package component

import (
	"reflect"
	"testing"

	"archmap/internal/classify"
	"archmap/internal/depgraph"
	"archmap/internal/logging"
	"archmap/internal/source"
)

func node(filePath string, imports ...source.ImportInfo) *depgraph.FileNode {
	role, layer := classify.Classify(filePath, nil)
	return depgraph.NewFileNode(filePath, role, layer, &source.ParseResult{Imports: imports})
}

func relImport(spec, fromPath string) source.ImportInfo {
	resolved, _ := source.Resolve(spec, fromPath, source.DefaultRootAlias)
	return source.ImportInfo{Source: spec, Resolved: resolved, IsRelative: true}
}

func buildGraph(t *testing.T, nodes ...*depgraph.FileNode) *depgraph.Graph {
	t.Helper()
	g := depgraph.NewGraph(nodes)
	depgraph.NewBuilder(logging.Discard()).Build(g)
	return g
}

func TestGroupByDirectory(t *testing.T) {
	g := buildGraph(t,
		node("src/components/cart/CartList.tsx"),
		node("src/components/cart/CartItem.tsx"),
		node("src/components/checkout/Form.tsx"),
		node("app/api/users/route.ts"),
		node("app/api/users/[id]/route.ts"),
		node("src/hooks/useCart.ts"),
	)

	grouping := Group(g)

	cart := grouping.Component("components/cart")
	if cart == nil {
		t.Fatal("missing components/cart")
	}
	if len(cart.Files) != 2 {
		t.Errorf("cart.Files = %v", cart.Files)
	}
	if cart.Name != "cart components" {
		t.Errorf("cart.Name = %q", cart.Name)
	}

	if grouping.Component("components/checkout") == nil {
		t.Error("missing components/checkout")
	}

	users := grouping.Component("api/users")
	if users == nil {
		t.Fatal("missing api/users")
	}
	if len(users.Files) != 2 {
		t.Errorf("users.Files = %v", users.Files)
	}
	want := []string{"/api/users", "/api/users/[id]"}
	if !reflect.DeepEqual(users.Endpoints, want) {
		t.Errorf("users.Endpoints = %v, want %v", users.Endpoints, want)
	}

	hooks := grouping.Component("hooks")
	if hooks == nil || hooks.Role != classify.RoleHook {
		t.Errorf("hooks component = %+v", hooks)
	}
}

func TestGroupComponentsOrdered(t *testing.T) {
	g := buildGraph(t,
		node("src/hooks/useCart.ts"),
		node("app/api/users/route.ts"),
		node("src/components/cart/CartList.tsx"),
	)

	grouping := Group(g)
	for i := 1; i < len(grouping.Components); i++ {
		if grouping.Components[i-1].ID >= grouping.Components[i].ID {
			t.Errorf("components out of order: %s before %s",
				grouping.Components[i-1].ID, grouping.Components[i].ID)
		}
	}
}

func TestAggregateDependencies(t *testing.T) {
	g := buildGraph(t,
		node("src/components/cart/CartList.tsx",
			relImport("../../hooks/useCart", "src/components/cart/CartList.tsx"),
			relImport("./CartItem", "src/components/cart/CartList.tsx"),
		),
		node("src/components/cart/CartItem.tsx"),
		node("src/hooks/useCart.ts",
			relImport("../services/cart", "src/hooks/useCart.ts"),
		),
		node("src/services/cart.ts"),
	)

	grouping := Group(g)

	cart := grouping.Component("components/cart")
	// The intra-component CartItem edge is excluded.
	if !reflect.DeepEqual(cart.Dependencies, []string{"hooks"}) {
		t.Errorf("cart.Dependencies = %v, want [hooks]", cart.Dependencies)
	}

	hooks := grouping.Component("hooks")
	if !reflect.DeepEqual(hooks.Dependencies, []string{"services"}) {
		t.Errorf("hooks.Dependencies = %v, want [services]", hooks.Dependencies)
	}
}

func TestComponentFor(t *testing.T) {
	g := buildGraph(t, node("src/components/cart/CartList.tsx"))
	grouping := Group(g)

	comp := grouping.ComponentFor("src/components/cart/CartList.tsx")
	if comp == nil || comp.ID != "components/cart" {
		t.Errorf("ComponentFor = %+v", comp)
	}
	if grouping.ComponentFor("no/such/file.ts") != nil {
		t.Error("expected nil for unknown file")
	}
}

func TestGroupKeyFallbacks(t *testing.T) {
	g := buildGraph(t,
		node("src/lib/stripe/client.ts"),
		node("src/utils/format.ts"),
		node("pages/api/checkout.ts"),
	)
	grouping := Group(g)

	if grouping.Component("lib/stripe") == nil {
		t.Error("missing lib/stripe grouping")
	}
	if grouping.Component("utils") == nil {
		t.Error("missing utils grouping")
	}

	checkout := grouping.Component("api/checkout")
	if checkout == nil {
		t.Fatal("missing api/checkout")
	}
	if !reflect.DeepEqual(checkout.Endpoints, []string{"/api/checkout"}) {
		t.Errorf("checkout.Endpoints = %v", checkout.Endpoints)
	}
}
