package source

import (
	"path"
	"strings"
)

// DefaultRootAlias is the specifier prefix that maps to the project root.
const DefaultRootAlias = "@/"

// Resolve resolves an import specifier to a project-relative path.
//
// Specifiers starting with "." are resolved by walking the importing
// file's directory and applying "." and ".." segments textually; no
// filesystem probing happens here. Specifiers starting with the root
// alias map to a path relative to the project root. Everything else is
// an external package and resolves to "".
//
// Resolution to an actual file happens later in the graph builder,
// which tries a fixed list of extension and index suffixes, because
// import statements omit extensions.
func Resolve(spec, fromPath, rootAlias string) (string, bool) {
	if rootAlias == "" {
		rootAlias = DefaultRootAlias
	}

	if strings.HasPrefix(spec, ".") {
		dir := path.Dir(fromPath)
		resolved := path.Clean(path.Join(dir, spec))
		// Imports that escape the project root stay unresolved.
		if strings.HasPrefix(resolved, "..") {
			return "", false
		}
		return resolved, true
	}

	if strings.HasPrefix(spec, rootAlias) {
		return path.Clean(strings.TrimPrefix(spec, rootAlias)), true
	}

	return "", false
}

// IsRelative reports whether a specifier is a relative import.
func IsRelative(spec string) bool {
	return strings.HasPrefix(spec, ".")
}

// IsExternal reports whether a specifier refers to an external package
// rather than a relative or root-aliased local path.
func IsExternal(spec, rootAlias string) bool {
	if rootAlias == "" {
		rootAlias = DefaultRootAlias
	}
	return !strings.HasPrefix(spec, ".") && !strings.HasPrefix(spec, rootAlias)
}
