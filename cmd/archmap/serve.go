package main

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"archmap/internal/analyzer"
	"archmap/internal/classify"
	"archmap/internal/manifest"
	"archmap/internal/output"
	"archmap/internal/project"
	"archmap/internal/routes"
	"archmap/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an MCP server over stdio",
	Long: `Expose analysis as MCP tools over stdin/stdout so that editor
agents can query project architecture without shelling out.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	tables, err := manifest.LoadTables()
	if err != nil {
		return err
	}
	an := analyzer.New(cfg, tables, logger)

	mcpServer := server.NewMCPServer(
		"archmap",
		version.Version,
		server.WithToolCapabilities(false),
	)

	analyzeTool := mcp.NewTool("analyze_project",
		mcp.WithDescription("Analyze a JavaScript/TypeScript project and return its architecture: components, connections, layers, data flows, patterns, and metrics"),
		mcp.WithString("dir",
			mcp.Required(),
			mcp.Description("Project root directory to analyze"),
		),
		mcp.WithString("name",
			mcp.Description("Project name override (default: from package.json or directory name)"),
		),
	)
	mcpServer.AddTool(analyzeTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, err := request.RequireString("dir")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		files, m, name, err := project.Load(dir, cfg, logger)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load project: %v", err)), nil
		}
		if override := request.GetString("name", ""); override != "" {
			name = override
		}

		analysis, err := an.Analyze(ctx, name, files, m)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
		}

		encoded, err := output.Encode(analysis)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode analysis: %v", err)), nil
		}
		return mcp.NewToolResultText(string(encoded)), nil
	})

	routesTool := mcp.NewTool("scan_routes",
		mcp.WithDescription("List API endpoints in a project from file paths alone"),
		mcp.WithString("dir",
			mcp.Required(),
			mcp.Description("Project root directory to scan"),
		),
	)
	mcpServer.AddTool(routesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, err := request.RequireString("dir")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		paths, err := collectPaths(dir, cfg.Source.IgnoreFragments)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to walk %s: %v", dir, err)), nil
		}

		encoded, err := output.Encode(routes.Scan(paths))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode routes: %v", err)), nil
		}
		return mcp.NewToolResultText(string(encoded)), nil
	})

	classifyTool := mcp.NewTool("classify_file",
		mcp.WithDescription("Classify a file path into an architectural role and layer"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path to classify, relative to the project root"),
		),
	)
	mcpServer.AddTool(classifyTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, err := request.RequireString("path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		role, layer := classify.Classify(p, nil)
		encoded, err := output.Encode(classification{Path: p, Role: role, Layer: layer})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode classification: %v", err)), nil
		}
		return mcp.NewToolResultText(string(encoded)), nil
	})

	logger.Info("starting MCP server", "version", version.Version)
	return server.ServeStdio(mcpServer)
}

func collectPaths(root string, ignoreFragments []string) ([]string, error) {
	ignored := make(map[string]bool)
	for _, fragment := range ignoreFragments {
		ignored[fragment] = true
	}

	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && ignored[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			rel = p
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
