// Package manifest models the dependency manifest of an analyzed
// project and the static lookup tables driving framework and external
// service detection.
package manifest

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var tablesYAML []byte

// Manifest is the dependency manifest supplied with an analysis run.
// Missing maps are treated as empty; a manifest is never an error.
type Manifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Has reports whether the package appears in either dependency map.
func (m Manifest) Has(pkg string) bool {
	if _, ok := m.Dependencies[pkg]; ok {
		return true
	}
	_, ok := m.DevDependencies[pkg]
	return ok
}

// FrameworkSignature maps a signature package to a framework tag.
type FrameworkSignature struct {
	Package   string `yaml:"package"`
	Framework string `yaml:"framework"`
}

// ExternalService describes one entry of the external-service table: a
// third-party dependency modeled as a dependency-only pseudo-component
// with no owned files.
type ExternalService struct {
	Package  string `yaml:"package" json:"package"`
	Name     string `yaml:"name" json:"name"`
	Kind     string `yaml:"kind" json:"kind"`
	Category string `yaml:"category" json:"category"`
}

// Tables holds the immutable detection tables. They are loaded once at
// process start and injected into the analyzer, which keeps the
// analyzer a pure function of (files, manifest, tables).
type Tables struct {
	Frameworks []FrameworkSignature `yaml:"frameworks"`
	Services   []ExternalService    `yaml:"services"`

	servicesByPackage map[string]*ExternalService
}

// LoadTables parses the embedded detection tables.
func LoadTables() (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(tablesYAML, &t); err != nil {
		return nil, fmt.Errorf("failed to load detection tables: %w", err)
	}

	t.servicesByPackage = make(map[string]*ExternalService, len(t.Services))
	for i := range t.Services {
		t.servicesByPackage[t.Services[i].Package] = &t.Services[i]
	}
	return &t, nil
}

// DetectFramework returns the framework tag for the first signature
// package present in the manifest, or "unknown".
func (t *Tables) DetectFramework(m Manifest) string {
	for _, sig := range t.Frameworks {
		if m.Has(sig.Package) {
			return sig.Framework
		}
	}
	return "unknown"
}

// MatchService resolves an import source to an external-service table
// entry. Subpath imports ("stripe/webhooks") match their root package.
func (t *Tables) MatchService(importSource string) (*ExternalService, bool) {
	if svc, ok := t.servicesByPackage[importSource]; ok {
		return svc, true
	}
	// Try the package root of a subpath import. Scoped packages keep
	// their first two segments.
	parts := strings.Split(importSource, "/")
	root := parts[0]
	if strings.HasPrefix(importSource, "@") && len(parts) >= 2 {
		root = parts[0] + "/" + parts[1]
	}
	if root != importSource {
		if svc, ok := t.servicesByPackage[root]; ok {
			return svc, true
		}
	}
	return nil, false
}

// DetectServices returns the external services whose packages appear in
// the manifest, in table order.
func (t *Tables) DetectServices(m Manifest) []ExternalService {
	var found []ExternalService
	seen := make(map[string]bool)
	for _, svc := range t.Services {
		if m.Has(svc.Package) && !seen[svc.Name] {
			seen[svc.Name] = true
			found = append(found, svc)
		}
	}
	return found
}
