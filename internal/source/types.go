// Package source provides the parser front-end for the analysis pipeline.
// It turns raw JS/TS file text into a flat ParseResult and resolves import
// specifiers to project-relative paths.
package source

// ImportInfo describes a single import statement found in a file.
type ImportInfo struct {
	// Source is the raw module specifier as written in the file.
	Source string `json:"source"`

	// Resolved is the project-relative path the specifier points at,
	// before extension probing. Empty for external packages and
	// specifiers that could not be resolved textually.
	Resolved string `json:"resolved,omitempty"`

	// Specifiers lists the imported names (default import, named
	// imports, namespace alias).
	Specifiers []string `json:"specifiers,omitempty"`

	// IsExternal is true when the specifier is neither relative nor
	// aliased to the project root. An external import never carries a
	// resolved path.
	IsExternal bool `json:"isExternal"`

	// IsRelative is true for specifiers starting with "." or "..".
	IsRelative bool `json:"isRelative"`

	// IsDynamic is true for import(...) call forms.
	IsDynamic bool `json:"isDynamic"`
}

// ExportKind classifies an exported declaration.
type ExportKind string

const (
	ExportFunction ExportKind = "function"
	ExportClass    ExportKind = "class"
	ExportVariable ExportKind = "variable"
	ExportType     ExportKind = "type"
	ExportDefault  ExportKind = "default"
)

// ExportInfo describes a single exported name.
type ExportInfo struct {
	Name    string     `json:"name"`
	Kind    ExportKind `json:"kind"`
	IsAsync bool       `json:"isAsync,omitempty"`
}

// ParseResult is the flat summary extracted from one file.
// A degraded result (parse failure) has empty facts but a correct line
// count; the pipeline continues with it rather than aborting the run.
type ParseResult struct {
	Imports []ImportInfo `json:"imports,omitempty"`
	Exports []ExportInfo `json:"exports,omitempty"`

	// IsComponent is true when the file contains JSX element or
	// fragment syntax.
	IsComponent bool `json:"isComponent"`

	// UsesHooks is true when the file imports a hook-like identifier
	// (^use[A-Z]) or one of the core react hooks.
	UsesHooks bool `json:"usesHooks"`

	// HTTPMethods lists exports named exactly after an HTTP verb,
	// whether declared as functions or variables.
	HTTPMethods []string `json:"httpMethods,omitempty"`

	// StateLibs lists the state-management libraries referenced by
	// import source.
	StateLibs []string `json:"stateLibs,omitempty"`

	// Calls lists the names of called functions, in encounter order.
	Calls []string `json:"calls,omitempty"`

	// Lines is the number of lines in the file.
	Lines int `json:"lines"`

	// Degraded is true when parsing failed and the facts above are
	// empty defaults.
	Degraded bool `json:"degraded,omitempty"`
}

// HasDefaultExport reports whether the file has a default export.
func (r *ParseResult) HasDefaultExport() bool {
	for _, e := range r.Exports {
		if e.Kind == ExportDefault {
			return true
		}
	}
	return false
}

// httpVerbs is the fixed set of export names recorded as API methods.
var httpVerbs = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "OPTIONS": true, "HEAD": true,
}

// stateLibFragments is the fixed set of store-library name fragments
// matched against import sources.
var stateLibFragments = []string{
	"redux", "zustand", "mobx", "recoil", "jotai", "valtio", "xstate", "pinia", "vuex",
}

// coreHooks are the react hooks that mark a file as hook-using even
// though their names are matched against the core package only.
var coreHooks = map[string]bool{
	"useState": true, "useEffect": true, "useContext": true,
}

// reactCorePackage is the UI-framework package the core hooks come from.
const reactCorePackage = "react"
