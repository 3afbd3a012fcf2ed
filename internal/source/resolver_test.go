package source

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		fromPath string
		want     string
		wantOK   bool
	}{
		{"sibling", "./utils", "src/components/Button.tsx", "src/components/utils", true},
		{"parent", "../lib/api", "src/components/Button.tsx", "src/lib/api", true},
		{"same dir explicit", "./b", "a.ts", "b", true},
		{"nested descent", "./forms/Input", "src/components/index.ts", "src/components/forms/Input", true},
		{"escapes root", "../../shared", "src/a.ts", "", false},
		{"escapes root from top", "../x", "a.ts", "", false},
		{"root alias", "@/lib/db", "src/deep/nested/file.ts", "lib/db", true},
		{"root alias at root", "@/config", "app/page.tsx", "config", true},
		{"bare package", "react", "src/App.tsx", "", false},
		{"scoped package", "@prisma/client", "src/db.ts", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.spec, tt.fromPath, DefaultRootAlias)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q, %q) ok = %v, want %v", tt.spec, tt.fromPath, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.spec, tt.fromPath, got, tt.want)
			}
		})
	}
}

func TestResolveCustomAlias(t *testing.T) {
	got, ok := Resolve("~/lib/db", "src/a.ts", "~/")
	if !ok || got != "lib/db" {
		t.Errorf("Resolve with custom alias = (%q, %v), want (%q, true)", got, ok, "lib/db")
	}

	// With a custom alias, "@/" specifiers are external packages.
	if !IsExternal("@/lib/db", "~/") {
		t.Error("expected @/ specifier to be external under a ~/ alias")
	}
}

func TestIsExternal(t *testing.T) {
	tests := []struct {
		spec string
		want bool
	}{
		{"react", true},
		{"@tanstack/react-query", true},
		{"./local", false},
		{"../up", false},
		{"@/aliased", false},
	}
	for _, tt := range tests {
		if got := IsExternal(tt.spec, DefaultRootAlias); got != tt.want {
			t.Errorf("IsExternal(%q) = %v, want %v", tt.spec, got, tt.want)
		}
	}
}
