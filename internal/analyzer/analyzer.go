// Package analyzer orchestrates the architecture reverse-engineering
// pipeline: parse, classify, build the dependency graph, group
// components, derive connections, layers, data flows, patterns, and
// metrics. Each Analyze call is a pure function of its inputs; no state
// is carried across runs.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"archmap/internal/cerrors"
	"archmap/internal/classify"
	"archmap/internal/component"
	"archmap/internal/config"
	"archmap/internal/depgraph"
	"archmap/internal/flow"
	"archmap/internal/layers"
	"archmap/internal/manifest"
	"archmap/internal/metrics"
	"archmap/internal/patterns"
	"archmap/internal/routes"
	"archmap/internal/source"
)

// SourceFile is one entry of the project file listing. Kind is "file"
// or "folder"; non-file entries are ignored, not errored.
type SourceFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Kind    string `json:"kind"`
}

// Summary carries the aggregate counts of an analysis.
type Summary struct {
	FileCount            int `json:"fileCount"`
	ComponentCount       int `json:"componentCount"`
	ConnectionCount      int `json:"connectionCount"`
	ExternalServiceCount int `json:"externalServiceCount"`
	TotalLines           int `json:"totalLines"`
}

// Analysis is the root aggregate returned by Analyze. It is immutable
// once produced and fully JSON-serializable: graph edges are id
// strings, never live pointers.
type Analysis struct {
	Project   string `json:"project"`
	Framework string `json:"framework"`

	Files            []*depgraph.FileNode       `json:"files"`
	Components       []*component.Component     `json:"components"`
	Connections      []*component.Connection    `json:"connections"`
	ExternalServices []manifest.ExternalService `json:"externalServices,omitempty"`
	Layers           []*layers.Group            `json:"layers"`
	DataFlows        []*flow.Path               `json:"dataFlows,omitempty"`
	Patterns         []*patterns.Pattern        `json:"patterns,omitempty"`
	Metrics          *metrics.Metrics           `json:"metrics"`
	Summary          Summary                    `json:"summary"`
}

// Analyzer runs the pipeline. It holds only immutable configuration
// and the injected detection tables, so it is safe for concurrent use.
type Analyzer struct {
	cfg    *config.Config
	tables *manifest.Tables
	parser *source.Parser
	logger *slog.Logger
}

// New creates an analyzer with the given detection tables.
func New(cfg *config.Config, tables *manifest.Tables, logger *slog.Logger) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Analyzer{
		cfg:    cfg,
		tables: tables,
		parser: source.NewParser(cfg.Source.RootAlias, logger),
		logger: logger,
	}
}

// Analyze reconstructs the layered architecture model of a project
// from its file listing and dependency manifest.
//
// Per-file parse failures degrade to empty facts and never abort the
// run; only a structurally invalid call does.
func (a *Analyzer) Analyze(ctx context.Context, projectName string, files []SourceFile, m manifest.Manifest) (*Analysis, error) {
	start := time.Now()

	if files == nil {
		return nil, cerrors.New(cerrors.InvalidInput, "files must not be nil")
	}
	if m.Dependencies == nil {
		m.Dependencies = map[string]string{}
	}
	if m.DevDependencies == nil {
		m.DevDependencies = map[string]string{}
	}

	sources := a.filterSources(files)

	a.logger.Info("starting analysis",
		"project", projectName,
		"files", len(sources),
		"skipped", len(files)-len(sources),
	)

	parsed, err := a.parseAll(ctx, sources)
	if err != nil {
		return nil, err
	}

	nodes := make([]*depgraph.FileNode, len(sources))
	for i, sf := range sources {
		role, layer := classify.Classify(sf.Path, parsed[i])
		nodes[i] = depgraph.NewFileNode(sf.Path, role, layer, parsed[i])
	}

	// Hard barrier: every file must be parsed and classified before
	// any edge is resolved, since the builder needs the complete
	// path index.
	graph := depgraph.NewGraph(nodes)
	depgraph.NewBuilder(a.logger).Build(graph)

	grouping := component.Group(graph)
	conns := component.BuildConnections(graph, grouping, a.tables)
	layerGroups := layers.Partition(graph, grouping)
	flows := flow.Detect(grouping, conns)

	framework := a.tables.DetectFramework(m)
	detected := patterns.Detect(graph, grouping, framework)
	scores := metrics.Compute(graph, grouping, conns)
	services := a.tables.DetectServices(m)

	totalLines := 0
	for _, n := range graph.Nodes {
		totalLines += n.Lines
	}

	analysis := &Analysis{
		Project:          projectName,
		Framework:        framework,
		Files:            graph.Nodes,
		Components:       grouping.Components,
		Connections:      conns,
		ExternalServices: services,
		Layers:           layerGroups,
		DataFlows:        flows,
		Patterns:         detected,
		Metrics:          scores,
		Summary: Summary{
			FileCount:            len(graph.Nodes),
			ComponentCount:       len(grouping.Components),
			ConnectionCount:      len(conns),
			ExternalServiceCount: len(services),
			TotalLines:           totalLines,
		},
	}

	a.logger.Info("analysis completed",
		"project", projectName,
		"durationMs", time.Since(start).Milliseconds(),
		"components", len(grouping.Components),
		"connections", len(conns),
		"patterns", len(detected),
	)

	return analysis, nil
}

// filterSources keeps source files only: kind "file", a known source
// extension, and no ignored path fragment.
func (a *Analyzer) filterSources(files []SourceFile) []SourceFile {
	var kept []SourceFile
	for _, f := range files {
		if f.Kind != "" && f.Kind != "file" {
			continue
		}
		if !a.isSourcePath(f.Path) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

func (a *Analyzer) isSourcePath(p string) bool {
	normalized := strings.ReplaceAll(p, "\\", "/")
	for _, segment := range strings.Split(path.Dir(normalized), "/") {
		for _, fragment := range a.cfg.Source.IgnoreFragments {
			if segment == fragment {
				return false
			}
		}
	}
	ext := path.Ext(normalized)
	for _, allowed := range a.cfg.Source.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// parseAll parses every file, bounded-parallel. Files share no mutable
// state during parsing, so the fan-out is safe; results land in a
// preallocated slice indexed by position.
func (a *Analyzer) parseAll(ctx context.Context, sources []SourceFile) ([]*source.ParseResult, error) {
	results := make([]*source.ParseResult, len(sources))

	workers := a.cfg.Parser.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range sources {
		g.Go(func() error {
			results[i] = a.parser.ParseFile(ctx, sources[i].Path, sources[i].Content)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parse stage failed: %w", err)
	}
	return results, nil
}

// AnalyzeImports exposes the parser's import extraction alone, for
// callers that want per-file import data without the full pipeline.
func (a *Analyzer) AnalyzeImports(ctx context.Context, filePath, content string) []source.ImportInfo {
	return a.parser.ParseFile(ctx, filePath, content).Imports
}

// ClassifyLayer exposes layer classification of a single path alone.
func (a *Analyzer) ClassifyLayer(filePath string) classify.Layer {
	return classify.ClassifyLayer(filePath)
}

// ScanRoutes extracts API endpoint paths from file paths alone, with
// no parsing.
func (a *Analyzer) ScanRoutes(filePaths []string) []string {
	return routes.Scan(filePaths)
}
