// Package project loads a project directory into the analyzer's input
// shape: the file listing and the dependency manifest. The engine
// itself never touches the filesystem; this is the CLI-side collector.
package project

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"archmap/internal/analyzer"
	"archmap/internal/config"
	"archmap/internal/manifest"
)

// Load walks root and returns the source file listing, the parsed
// manifest, and the project name. A missing or unreadable package.json
// yields an empty manifest, never an error.
func Load(root string, cfg *config.Config, logger *slog.Logger) ([]analyzer.SourceFile, manifest.Manifest, string, error) {
	ignored := make(map[string]bool, len(cfg.Source.IgnoreFragments))
	for _, fragment := range cfg.Source.IgnoreFragments {
		ignored[fragment] = true
	}

	extensions := make(map[string]bool, len(cfg.Source.Extensions))
	for _, ext := range cfg.Source.Extensions {
		extensions[ext] = true
	}

	// Non-nil even when empty: the analyzer treats a nil listing as a
	// contract violation, but an empty project is a valid input.
	files := []analyzer.SourceFile{}
	skipped := 0

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
		if !extensions[filepath.Ext(p)] {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > int64(cfg.Source.MaxFileSizeBytes) {
			logger.Debug("skipping oversized file", "path", p, "size", info.Size())
			skipped++
			return nil
		}

		content, err := os.ReadFile(p)
		if err != nil {
			logger.Warn("failed to read file, skipping", "path", p, "error", err.Error())
			skipped++
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		files = append(files, analyzer.SourceFile{
			Path:    filepath.ToSlash(rel),
			Content: string(content),
			Kind:    "file",
		})
		return nil
	})
	if err != nil {
		return nil, manifest.Manifest{}, "", fmt.Errorf("failed to walk project: %w", err)
	}

	m, name := loadManifest(root, logger)
	if name == "" {
		name = filepath.Base(mustAbs(root))
	}

	logger.Debug("project loaded", "files", len(files), "skipped", skipped)
	return files, m, name, nil
}

// loadManifest reads package.json, returning the dependency maps and
// the declared project name.
func loadManifest(root string, logger *slog.Logger) (manifest.Manifest, string) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return manifest.Manifest{}, ""
	}

	var pkg struct {
		Name            string            `json:"name"`
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		logger.Warn("malformed package.json, proceeding without manifest", "error", err.Error())
		return manifest.Manifest{}, ""
	}

	return manifest.Manifest{
		Dependencies:    pkg.Dependencies,
		DevDependencies: pkg.DevDependencies,
	}, strings.TrimSpace(pkg.Name)
}

func mustAbs(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
