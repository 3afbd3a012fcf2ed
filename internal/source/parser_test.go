//go:build cgo

package source

import (
	"context"
	"testing"

	"archmap/internal/logging"
)

func newTestParser() *Parser {
	return NewParser(DefaultRootAlias, logging.Discard())
}

func TestParseFileImports(t *testing.T) {
	content := `import React from 'react'
import { useState, useEffect } from 'react'
import * as api from './api/client'
import { db } from '@/lib/db'
export { helper } from '../shared/helpers'
`
	res := newTestParser().ParseFile(context.Background(), "src/components/App.tsx", content)

	if len(res.Imports) != 5 {
		t.Fatalf("expected 5 imports, got %d: %+v", len(res.Imports), res.Imports)
	}

	first := res.Imports[0]
	if first.Source != "react" || !first.IsExternal || first.IsRelative {
		t.Errorf("unexpected react import: %+v", first)
	}
	if len(first.Specifiers) != 1 || first.Specifiers[0] != "React" {
		t.Errorf("expected default specifier React, got %v", first.Specifiers)
	}

	ns := res.Imports[2]
	if ns.Resolved != "src/components/api/client" {
		t.Errorf("relative import resolved to %q", ns.Resolved)
	}
	if len(ns.Specifiers) != 1 || ns.Specifiers[0] != "api" {
		t.Errorf("expected namespace specifier api, got %v", ns.Specifiers)
	}

	aliased := res.Imports[3]
	if aliased.Resolved != "lib/db" || aliased.IsExternal {
		t.Errorf("unexpected aliased import: %+v", aliased)
	}

	// Re-export creates an import edge too.
	reexport := res.Imports[4]
	if reexport.Source != "../shared/helpers" || reexport.Resolved != "src/shared/helpers" {
		t.Errorf("unexpected re-export import: %+v", reexport)
	}

	if !res.UsesHooks {
		t.Error("expected UsesHooks from useState/useEffect specifiers")
	}
}

func TestParseFileDynamicImportAndRequire(t *testing.T) {
	content := `const Chart = import('./Chart')
const legacy = require('./legacy/module')
`
	res := newTestParser().ParseFile(context.Background(), "src/widgets/index.js", content)

	if len(res.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d: %+v", len(res.Imports), res.Imports)
	}

	dyn := res.Imports[0]
	if !dyn.IsDynamic {
		t.Error("expected dynamic import flag")
	}
	if len(dyn.Specifiers) != 1 || dyn.Specifiers[0] != "dynamic" {
		t.Errorf("expected synthetic dynamic specifier, got %v", dyn.Specifiers)
	}
	if dyn.Resolved != "src/widgets/Chart" {
		t.Errorf("dynamic import resolved to %q", dyn.Resolved)
	}

	req := res.Imports[1]
	if req.IsDynamic || req.Resolved != "src/widgets/legacy/module" {
		t.Errorf("unexpected require import: %+v", req)
	}
}

func TestParseFileExports(t *testing.T) {
	content := `export function listUsers() { return [] }
export async function createUser(data) { return data }
export const MAX_USERS = 100
export const fetchUsers = async () => []
export class UserRepository {}
export default function App() { return null }
`
	res := newTestParser().ParseFile(context.Background(), "src/users.ts", content)

	byName := make(map[string]ExportInfo)
	for _, e := range res.Exports {
		byName[e.Name] = e
	}

	if e := byName["listUsers"]; e.Kind != ExportFunction || e.IsAsync {
		t.Errorf("listUsers = %+v", e)
	}
	if e := byName["createUser"]; e.Kind != ExportFunction || !e.IsAsync {
		t.Errorf("createUser = %+v", e)
	}
	if e := byName["MAX_USERS"]; e.Kind != ExportVariable || e.IsAsync {
		t.Errorf("MAX_USERS = %+v", e)
	}
	if e := byName["fetchUsers"]; !e.IsAsync {
		t.Errorf("fetchUsers = %+v", e)
	}
	if e := byName["UserRepository"]; e.Kind != ExportClass {
		t.Errorf("UserRepository = %+v", e)
	}
	if e := byName["App"]; e.Kind != ExportDefault {
		t.Errorf("App = %+v", e)
	}
	if !res.HasDefaultExport() {
		t.Error("expected a default export")
	}
}

func TestParseFileHTTPMethods(t *testing.T) {
	content := `import { db } from '@/lib/db'

export async function GET(request) {
	return db.users.findMany()
}

export async function POST(request) {
	return db.users.create(await request.json())
}
`
	res := newTestParser().ParseFile(context.Background(), "app/api/users/route.ts", content)

	if len(res.HTTPMethods) != 2 || res.HTTPMethods[0] != "GET" || res.HTTPMethods[1] != "POST" {
		t.Errorf("HTTPMethods = %v, want [GET POST]", res.HTTPMethods)
	}
}

func TestParseFileJSXComponent(t *testing.T) {
	content := `import { useCart } from '../hooks/useCart'

export default function Cart() {
	const { items } = useCart()
	return <div>{items.length}</div>
}
`
	res := newTestParser().ParseFile(context.Background(), "src/components/Cart.tsx", content)

	if !res.IsComponent {
		t.Error("expected IsComponent from JSX")
	}
	if !res.UsesHooks {
		t.Error("expected UsesHooks from useCart specifier")
	}
}

func TestParseFileStateLibs(t *testing.T) {
	content := `import { create } from 'zustand'

export const useCartStore = create((set) => ({ items: [] }))
`
	res := newTestParser().ParseFile(context.Background(), "src/stores/cart.ts", content)

	if len(res.StateLibs) != 1 || res.StateLibs[0] != "zustand" {
		t.Errorf("StateLibs = %v, want [zustand]", res.StateLibs)
	}
}

func TestParseFileNeverFails(t *testing.T) {
	res := newTestParser().ParseFile(context.Background(), "src/broken.ts", "const = = {{{")
	if res == nil {
		t.Fatal("expected a result for unparseable input")
	}
	if res.Lines != 1 {
		t.Errorf("Lines = %d, want 1", res.Lines)
	}
}

func TestCountLines(t *testing.T) {
	if n := countLines("a\nb\nc"); n != 3 {
		t.Errorf("countLines = %d, want 3", n)
	}
	if n := countLines(""); n != 1 {
		t.Errorf("countLines empty = %d, want 1", n)
	}
}
