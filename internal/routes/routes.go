// Package routes extracts API endpoint paths from file paths alone,
// without parsing file contents. It backs both the component grouper's
// endpoint derivation and the standalone route scanner entry point.
package routes

import (
	"path"
	"sort"
	"strings"
)

const (
	// appRouteRoot marks the app-router API subtree.
	appRouteRoot = "app/api/"
	// pagesRouteRoot marks the pages-router API subtree.
	pagesRouteRoot = "pages/api/"
	// routeFileStem is the trailing route-file marker of app-router routes.
	routeFileStem = "route"
)

// EndpointFromPath derives the endpoint served by a route file, or ""
// when the path is not a route file. "app/api/users/[id]/route.ts"
// yields "/api/users/[id]"; "pages/api/users.ts" yields "/api/users".
func EndpointFromPath(filePath string) string {
	p := strings.ReplaceAll(filePath, "\\", "/")

	if idx := strings.Index(p, appRouteRoot); idx >= 0 {
		rest := p[idx+len(appRouteRoot):]
		base := path.Base(rest)
		if strings.TrimSuffix(base, path.Ext(base)) != routeFileStem {
			return ""
		}
		segment := path.Dir(rest)
		if segment == "." {
			return "/api"
		}
		return "/api/" + segment
	}

	if idx := strings.Index(p, pagesRouteRoot); idx >= 0 {
		rest := p[idx+len(pagesRouteRoot):]
		rest = strings.TrimSuffix(rest, path.Ext(rest))
		rest = strings.TrimSuffix(rest, "/index")
		if rest == "" || rest == "index" {
			return "/api"
		}
		return "/api/" + rest
	}

	return ""
}

// Scan collects the distinct endpoints found in a set of file paths,
// sorted lexicographically.
func Scan(filePaths []string) []string {
	seen := make(map[string]bool)
	var endpoints []string
	for _, p := range filePaths {
		if ep := EndpointFromPath(p); ep != "" && !seen[ep] {
			seen[ep] = true
			endpoints = append(endpoints, ep)
		}
	}
	sort.Strings(endpoints)
	return endpoints
}
