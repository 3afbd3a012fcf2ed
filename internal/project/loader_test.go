package project

import (
	"os"
	"path/filepath"
	"testing"

	"archmap/internal/config"
	"archmap/internal/logging"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"shop","dependencies":{"next":"14.0.0"}}`)
	writeFile(t, root, "app/page.tsx", "export default function Page() { return null }")
	writeFile(t, root, "src/lib/db.ts", "export const db = {}")
	writeFile(t, root, "styles/main.css", "body {}")
	writeFile(t, root, "node_modules/react/index.js", "module.exports = {}")

	files, m, name, err := Load(root, config.Default(), logging.Discard())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if name != "shop" {
		t.Errorf("name = %q, want shop", name)
	}
	if !m.Has("next") {
		t.Error("manifest missing next")
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %+v", len(files), files)
	}
	for _, f := range files {
		if filepath.IsAbs(f.Path) || f.Path != filepath.ToSlash(f.Path) {
			t.Errorf("path not relative slash-normalized: %q", f.Path)
		}
		if f.Kind != "file" {
			t.Errorf("kind = %q", f.Kind)
		}
	}
}

func TestLoadNoManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.ts", "export {}")

	files, m, name, err := Load(root, config.Default(), logging.Discard())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("files = %d", len(files))
	}
	if len(m.Dependencies) != 0 {
		t.Errorf("manifest = %+v, want empty", m)
	}
	// Name falls back to the directory name.
	if name == "" {
		t.Error("name empty")
	}
}

func TestLoadMalformedManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{not json`)
	writeFile(t, root, "index.ts", "export {}")

	if _, _, _, err := Load(root, config.Default(), logging.Discard()); err != nil {
		t.Fatalf("malformed package.json should not error: %v", err)
	}
}

func TestLoadEmptyProject(t *testing.T) {
	files, _, _, err := Load(t.TempDir(), config.Default(), logging.Discard())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if files == nil {
		t.Fatal("files must be non-nil for an empty project")
	}
}

func TestLoadOversizedFileSkipped(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Source.MaxFileSizeBytes = 10
	writeFile(t, root, "big.ts", "export const blob = '0123456789abcdef'")
	writeFile(t, root, "small.ts", "export {}")

	files, _, _, err := Load(root, cfg, logging.Discard())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(files) != 1 || files[0].Path != "small.ts" {
		t.Errorf("files = %+v, want only small.ts", files)
	}
}
