// Package classify assigns each source file a structural role and an
// architectural layer from path conventions and parser output.
package classify

import (
	"path"
	"strings"

	"archmap/internal/source"
)

// Role is the structural role of a file.
type Role string

const (
	RolePage       Role = "page"
	RoleAPIRoute   Role = "api-route"
	RoleComponent  Role = "component"
	RoleHook       Role = "hook"
	RoleService    Role = "service"
	RoleUtility    Role = "utility"
	RoleType       Role = "type"
	RoleConfig     Role = "config"
	RoleMiddleware Role = "middleware"
	RoleDatabase   Role = "database"
	RoleStore      Role = "store"
)

// Layer is one of the five fixed architectural tiers.
type Layer string

const (
	LayerPresentation   Layer = "presentation"
	LayerApplication    Layer = "application"
	LayerDomain         Layer = "domain"
	LayerInfrastructure Layer = "infrastructure"
	LayerShared         Layer = "shared"
)

// Layers enumerates the five layers in display order.
func Layers() []Layer {
	return []Layer{
		LayerPresentation,
		LayerApplication,
		LayerDomain,
		LayerInfrastructure,
		LayerShared,
	}
}

// rule is one entry in the ordered classification cascade.
type rule struct {
	match func(p pathFacts) bool
	role  Role
	layer Layer
}

// pathFacts caches the path-derived signals the rules test against.
type pathFacts struct {
	path string // normalized, forward slashes, lowercased dirs preserved
	base string // file name
	stem string // file name without extension
}

// rules is the fixed cascade. First match wins; ordering is load-bearing
// (an API route path beats a component directory even when both match).
var rules = []rule{
	{matchAPIRoute, RoleAPIRoute, LayerApplication},
	{matchMiddleware, RoleMiddleware, LayerApplication},
	{matchPage, RolePage, LayerPresentation},
	{matchDatabase, RoleDatabase, LayerInfrastructure},
	{matchStore, RoleStore, LayerApplication},
	{matchHook, RoleHook, LayerApplication},
	{matchService, RoleService, LayerDomain},
	{matchComponent, RoleComponent, LayerPresentation},
	{matchTypes, RoleType, LayerShared},
	{matchConfig, RoleConfig, LayerShared},
	{matchUtility, RoleUtility, LayerShared},
}

// Classify assigns a role and layer to a file. The path rules run in a
// fixed order; when none matches, parser signals decide, and the final
// fallback is a generic shared utility.
func Classify(filePath string, parsed *source.ParseResult) (Role, Layer) {
	facts := newPathFacts(filePath)

	for _, r := range rules {
		if r.match(facts) {
			return r.role, r.layer
		}
	}

	if parsed != nil && parsed.IsComponent {
		return RoleComponent, LayerPresentation
	}

	return RoleUtility, LayerShared
}

// ClassifyLayer exposes the layer half of the cascade for callers that
// only need the tier of a single path.
func ClassifyLayer(filePath string) Layer {
	_, layer := Classify(filePath, nil)
	return layer
}

func newPathFacts(filePath string) pathFacts {
	p := strings.ReplaceAll(filePath, "\\", "/")
	base := path.Base(p)
	stem := strings.TrimSuffix(base, path.Ext(base))
	return pathFacts{path: p, base: base, stem: stem}
}

func (f pathFacts) inDir(dir string) bool {
	return strings.Contains(f.path, dir+"/") || strings.HasPrefix(f.path, dir+"/")
}

func matchAPIRoute(f pathFacts) bool {
	if strings.Contains(f.path, "app/api/") || strings.Contains(f.path, "pages/api/") {
		return true
	}
	return f.stem == "route" && strings.Contains(f.path, "/api/")
}

func matchMiddleware(f pathFacts) bool {
	return f.stem == "middleware" || f.inDir("middleware")
}

func matchPage(f pathFacts) bool {
	if f.stem == "page" || f.stem == "layout" {
		return true
	}
	return f.inDir("pages") && !strings.Contains(f.path, "pages/api/")
}

func matchDatabase(f pathFacts) bool {
	for _, dir := range []string{"db", "database", "prisma", "models", "repositories"} {
		if f.inDir(dir) {
			return true
		}
	}
	return strings.Contains(f.stem, "schema") || f.stem == "db"
}

func matchStore(f pathFacts) bool {
	if f.inDir("store") || f.inDir("stores") {
		return true
	}
	return strings.HasSuffix(f.stem, "Store") || strings.HasSuffix(f.stem, "-store")
}

func matchHook(f pathFacts) bool {
	if f.inDir("hooks") {
		return true
	}
	return strings.HasPrefix(f.stem, "use") && len(f.stem) > 3 && f.stem[3] >= 'A' && f.stem[3] <= 'Z'
}

func matchService(f pathFacts) bool {
	if f.inDir("services") {
		return true
	}
	return strings.HasSuffix(f.stem, "Service") || strings.HasSuffix(f.stem, "-service") ||
		strings.HasSuffix(f.stem, ".service")
}

func matchComponent(f pathFacts) bool {
	return f.inDir("components") || f.inDir("ui")
}

func matchTypes(f pathFacts) bool {
	if strings.HasSuffix(f.base, ".d.ts") {
		return true
	}
	return f.inDir("types") || f.stem == "types" || f.inDir("interfaces")
}

func matchConfig(f pathFacts) bool {
	if f.inDir("config") {
		return true
	}
	return strings.Contains(f.base, ".config.") || strings.HasSuffix(f.stem, "config")
}

func matchUtility(f pathFacts) bool {
	return f.inDir("utils") || f.inDir("util") || f.inDir("lib") || f.inDir("helpers")
}
