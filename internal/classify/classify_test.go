package classify

import (
	"testing"

	"archmap/internal/source"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path  string
		role  Role
		layer Layer
	}{
		{"app/api/users/route.ts", RoleAPIRoute, LayerApplication},
		{"pages/api/checkout.ts", RoleAPIRoute, LayerApplication},
		{"src/middleware.ts", RoleMiddleware, LayerApplication},
		{"app/dashboard/page.tsx", RolePage, LayerPresentation},
		{"app/layout.tsx", RolePage, LayerPresentation},
		{"pages/about.tsx", RolePage, LayerPresentation},
		{"prisma/schema.prisma", RoleDatabase, LayerInfrastructure},
		{"src/db/client.ts", RoleDatabase, LayerInfrastructure},
		{"src/stores/cart.ts", RoleStore, LayerApplication},
		{"src/state/userStore.ts", RoleStore, LayerApplication},
		{"src/hooks/useCart.ts", RoleHook, LayerApplication},
		{"src/useDebounce.ts", RoleHook, LayerApplication},
		{"src/services/billing.ts", RoleService, LayerDomain},
		{"src/payment.service.ts", RoleService, LayerDomain},
		{"src/components/Button.tsx", RoleComponent, LayerPresentation},
		{"src/ui/Card.tsx", RoleComponent, LayerPresentation},
		{"src/types/user.ts", RoleType, LayerShared},
		{"src/global.d.ts", RoleType, LayerShared},
		{"next.config.js", RoleConfig, LayerShared},
		{"src/utils/format.ts", RoleUtility, LayerShared},
		{"src/random.ts", RoleUtility, LayerShared},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			role, layer := Classify(tt.path, nil)
			if role != tt.role || layer != tt.layer {
				t.Errorf("Classify(%q) = (%s, %s), want (%s, %s)", tt.path, role, layer, tt.role, tt.layer)
			}
		})
	}
}

func TestClassifyRuleOrder(t *testing.T) {
	// An API route inside a components-like tree is still an API route:
	// the cascade runs in a fixed order and the first match wins.
	role, _ := Classify("app/api/components/route.ts", nil)
	if role != RoleAPIRoute {
		t.Errorf("role = %s, want %s", role, RoleAPIRoute)
	}

	// A page under pages/api/ is an API route, not a page.
	role, _ = Classify("pages/api/users.ts", nil)
	if role != RoleAPIRoute {
		t.Errorf("role = %s, want %s", role, RoleAPIRoute)
	}
}

func TestClassifyParserFallback(t *testing.T) {
	// No path rule matches; the parser's JSX signal decides.
	role, layer := Classify("src/App.tsx", &source.ParseResult{IsComponent: true})
	if role != RoleComponent || layer != LayerPresentation {
		t.Errorf("got (%s, %s), want (component, presentation)", role, layer)
	}

	// Same path with no signals falls back to shared utility.
	role, layer = Classify("src/App.tsx", &source.ParseResult{})
	if role != RoleUtility || layer != LayerShared {
		t.Errorf("got (%s, %s), want (utility, shared)", role, layer)
	}
}

func TestLayersOrder(t *testing.T) {
	want := []Layer{LayerPresentation, LayerApplication, LayerDomain, LayerInfrastructure, LayerShared}
	got := Layers()
	if len(got) != len(want) {
		t.Fatalf("Layers() returned %d entries", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Layers()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
