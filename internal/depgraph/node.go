// Package depgraph materializes the file-level dependency graph from
// parse results, with bidirectional edge maintenance.
package depgraph

import (
	"path"
	"strings"

	"archmap/internal/classify"
	"archmap/internal/source"
)

// FileNode is one file in the dependency graph. Edges are held as id
// strings, not pointers, so the graph serializes without cycles.
//
// Dependencies and Dependents are kept symmetric: for any edge A→B,
// B.Dependents contains A and A.Dependencies contains B. Dependents is
// an inverse index maintained on insertion, not computed separately.
type FileNode struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	Name string `json:"name"`

	Role  classify.Role  `json:"type"`
	Layer classify.Layer `json:"layer"`

	Imports []source.ImportInfo `json:"imports,omitempty"`
	Exports []source.ExportInfo `json:"exports,omitempty"`

	Dependencies []string `json:"dependencies,omitempty"`
	Dependents   []string `json:"dependents,omitempty"`

	Lines            int      `json:"lines"`
	HasDefaultExport bool     `json:"hasDefaultExport"`
	IsComponent      bool     `json:"isComponent"`
	UsesHooks        bool     `json:"usesHooks"`
	HTTPMethods      []string `json:"httpMethods,omitempty"`
	StateLibs        []string `json:"stateLibs,omitempty"`
	Degraded         bool     `json:"degraded,omitempty"`
}

// NewFileNode builds a node from a classified parse result. Node ids
// are the project-relative path, which keeps them stable across runs.
func NewFileNode(filePath string, role classify.Role, layer classify.Layer, parsed *source.ParseResult) *FileNode {
	name := path.Base(filePath)
	name = strings.TrimSuffix(name, path.Ext(name))

	return &FileNode{
		ID:               filePath,
		Path:             filePath,
		Name:             name,
		Role:             role,
		Layer:            layer,
		Imports:          parsed.Imports,
		Exports:          parsed.Exports,
		Lines:            parsed.Lines,
		HasDefaultExport: parsed.HasDefaultExport(),
		IsComponent:      parsed.IsComponent,
		UsesHooks:        parsed.UsesHooks,
		HTTPMethods:      parsed.HTTPMethods,
		StateLibs:        parsed.StateLibs,
		Degraded:         parsed.Degraded,
	}
}
