package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// hookNamePattern matches hook-like identifiers (useState, useCart, ...).
var hookNamePattern = regexp.MustCompile(`^use[A-Z]`)

// Parser extracts flat per-file summaries from JS/TS source text using
// tree-sitter. Each ParseFile call creates its own tree-sitter parser
// instance, so a Parser is safe for concurrent use across files.
type Parser struct {
	rootAlias string
	logger    *slog.Logger
}

// NewParser creates a parser. rootAlias is the specifier prefix mapped
// to the project root (default "@/").
func NewParser(rootAlias string, logger *slog.Logger) *Parser {
	if rootAlias == "" {
		rootAlias = DefaultRootAlias
	}
	return &Parser{rootAlias: rootAlias, logger: logger}
}

// ParseFile parses one file's text and returns its summary. It never
// fails: a parse error is logged as a warning and yields a degraded
// result with empty facts and the correct line count.
func (p *Parser) ParseFile(ctx context.Context, path, content string) *ParseResult {
	res := &ParseResult{Lines: countLines(content)}

	root, err := parseTree(ctx, []byte(content), languageForPath(path))
	if err != nil {
		p.logger.Warn("parse failed, continuing with degraded result",
			"path", path,
			"error", err.Error(),
		)
		res.Degraded = true
		return res
	}

	ex := &extractor{
		source:    []byte(content),
		filePath:  path,
		rootAlias: p.rootAlias,
		result:    res,
	}
	ex.walk(root)

	return res
}

// parseTree parses source bytes with the given grammar and returns the
// AST root node.
func parseTree(ctx context.Context, source []byte, lang *sitter.Language) (*sitter.Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parse produced no tree")
	}
	return root, nil
}

// languageForPath picks the tree-sitter grammar for a file extension.
func languageForPath(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsx":
		return tsx.GetLanguage()
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	default:
		// .js, .jsx, .mjs, .cjs; the JS grammar handles JSX.
		return javascript.GetLanguage()
	}
}

func countLines(content string) int {
	return len(strings.Split(content, "\n"))
}

// extractor accumulates facts into a ParseResult while walking the AST.
type extractor struct {
	source    []byte
	filePath  string
	rootAlias string
	result    *ParseResult
}

func (ex *extractor) walk(node *sitter.Node) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "import_statement":
		ex.handleImport(node)
	case "export_statement":
		ex.handleExport(node)
	case "call_expression":
		ex.handleCall(node)
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		ex.result.IsComponent = true
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		ex.walk(node.Child(i))
	}
}

func (ex *extractor) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(ex.source[node.StartByte():node.EndByte()])
}

// handleImport records a static import statement.
func (ex *extractor) handleImport(node *sitter.Node) {
	srcNode := node.ChildByFieldName("source")
	if srcNode == nil {
		return
	}
	src := stripQuotes(ex.text(srcNode))
	if src == "" {
		return
	}

	var specs []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || child.Type() != "import_clause" {
			continue
		}
		specs = append(specs, ex.clauseSpecifiers(child)...)
	}

	ex.addImport(src, specs, false)
}

// clauseSpecifiers collects the imported names from an import clause:
// default import, namespace alias, and named imports.
func (ex *extractor) clauseSpecifiers(clause *sitter.Node) []string {
	var specs []string
	for i := 0; i < int(clause.ChildCount()); i++ {
		child := clause.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "identifier":
			specs = append(specs, ex.text(child))
		case "namespace_import":
			for j := 0; j < int(child.ChildCount()); j++ {
				if inner := child.Child(j); inner != nil && inner.Type() == "identifier" {
					specs = append(specs, ex.text(inner))
				}
			}
		case "named_imports":
			for j := 0; j < int(child.ChildCount()); j++ {
				spec := child.Child(j)
				if spec == nil || spec.Type() != "import_specifier" {
					continue
				}
				name := spec.ChildByFieldName("name")
				if name != nil {
					specs = append(specs, ex.text(name))
				}
			}
		}
	}
	return specs
}

// handleExport records exported names and any re-export import edge.
func (ex *extractor) handleExport(node *sitter.Node) {
	// export ... from "x" also creates an import edge.
	if srcNode := node.ChildByFieldName("source"); srcNode != nil {
		if src := stripQuotes(ex.text(srcNode)); src != "" {
			ex.addImport(src, nil, false)
		}
	}

	isDefault := false
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child != nil && child.Type() == "default" {
			isDefault = true
			break
		}
	}

	decl := node.ChildByFieldName("declaration")
	if decl != nil {
		ex.handleExportedDeclaration(decl, isDefault)
		return
	}

	// export { a, b as c } — names only, kinds unknown.
	recorded := false
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || child.Type() != "export_clause" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			spec := child.Child(j)
			if spec == nil || spec.Type() != "export_specifier" {
				continue
			}
			name := spec.ChildByFieldName("alias")
			if name == nil {
				name = spec.ChildByFieldName("name")
			}
			if name != nil {
				ex.addExport(ex.text(name), ExportVariable, false)
				recorded = true
			}
		}
	}

	// export default <expression>
	if isDefault && !recorded {
		ex.addExport("default", ExportDefault, false)
	}
}

func (ex *extractor) handleExportedDeclaration(decl *sitter.Node, isDefault bool) {
	switch decl.Type() {
	case "function_declaration", "generator_function_declaration":
		name := ex.text(decl.ChildByFieldName("name"))
		kind := ExportFunction
		if isDefault {
			kind = ExportDefault
		}
		ex.addExport(name, kind, hasAsyncKeyword(decl, ex.source))

	case "class_declaration", "abstract_class_declaration":
		name := ex.text(decl.ChildByFieldName("name"))
		kind := ExportClass
		if isDefault {
			kind = ExportDefault
		}
		ex.addExport(name, kind, false)

	case "lexical_declaration", "variable_declaration":
		for i := 0; i < int(decl.ChildCount()); i++ {
			d := decl.Child(i)
			if d == nil || d.Type() != "variable_declarator" {
				continue
			}
			name := ex.text(d.ChildByFieldName("name"))
			async := false
			if value := d.ChildByFieldName("value"); value != nil {
				async = hasAsyncKeyword(value, ex.source)
			}
			ex.addExport(name, ExportVariable, async)
		}

	case "type_alias_declaration", "interface_declaration", "enum_declaration":
		ex.addExport(ex.text(decl.ChildByFieldName("name")), ExportType, false)

	default:
		if isDefault {
			ex.addExport("default", ExportDefault, false)
		}
	}
}

// handleCall records dynamic imports, require calls, and called names.
func (ex *extractor) handleCall(node *sitter.Node) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return
	}

	switch fn.Type() {
	case "import":
		// Dynamic import: recorded with a synthetic "dynamic" specifier.
		if src := ex.firstStringArgument(node); src != "" {
			ex.addImport(src, []string{"dynamic"}, true)
		}
		return
	case "identifier":
		name := ex.text(fn)
		if name == "require" {
			if src := ex.firstStringArgument(node); src != "" {
				ex.addImport(src, nil, false)
			}
			return
		}
		ex.result.Calls = append(ex.result.Calls, name)
	case "member_expression":
		if prop := fn.ChildByFieldName("property"); prop != nil {
			ex.result.Calls = append(ex.result.Calls, ex.text(prop))
		}
	}
}

func (ex *extractor) firstStringArgument(call *sitter.Node) string {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return ""
	}
	for i := 0; i < int(args.ChildCount()); i++ {
		arg := args.Child(i)
		if arg != nil && arg.Type() == "string" {
			return stripQuotes(ex.text(arg))
		}
	}
	return ""
}

func (ex *extractor) addImport(src string, specs []string, dynamic bool) {
	external := IsExternal(src, ex.rootAlias)

	info := ImportInfo{
		Source:     src,
		Specifiers: specs,
		IsExternal: external,
		IsRelative: IsRelative(src),
		IsDynamic:  dynamic,
	}
	if !external {
		info.Resolved, _ = Resolve(src, ex.filePath, ex.rootAlias)
	}
	ex.result.Imports = append(ex.result.Imports, info)

	for _, fragment := range stateLibFragments {
		if strings.Contains(src, fragment) {
			ex.result.StateLibs = appendUnique(ex.result.StateLibs, fragment)
		}
	}

	for _, spec := range specs {
		if hookNamePattern.MatchString(spec) {
			ex.result.UsesHooks = true
		}
		if src == reactCorePackage && coreHooks[spec] {
			ex.result.UsesHooks = true
		}
	}
}

func (ex *extractor) addExport(name string, kind ExportKind, async bool) {
	if name == "" {
		return
	}
	ex.result.Exports = append(ex.result.Exports, ExportInfo{
		Name:    name,
		Kind:    kind,
		IsAsync: async,
	})
	if httpVerbs[name] {
		ex.result.HTTPMethods = appendUnique(ex.result.HTTPMethods, name)
	}
}

// hasAsyncKeyword reports whether a function-like node starts with the
// async keyword.
func hasAsyncKeyword(node *sitter.Node, source []byte) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "async" {
			return true
		}
		// The async keyword can only appear before the parameter list.
		if child.Type() == "formal_parameters" || child.Type() == "statement_block" {
			break
		}
	}
	return strings.HasPrefix(strings.TrimSpace(string(source[node.StartByte():node.EndByte()])), "async ")
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		first := s[0]
		if (first == '"' || first == '\'' || first == '`') && s[len(s)-1] == first {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
