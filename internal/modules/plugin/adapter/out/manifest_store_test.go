package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	pluginout "studylog/internal/modules/plugin/adapter/out"
)

func writeManifests(t *testing.T, stateDir, raw string) {
	t.Helper()
	dir := filepath.Join(stateDir, "plugins")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "plugins.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write plugins.json: %v", err)
	}
}

func TestFileManifestStoreLoadMissingReturnsEmpty(t *testing.T) {
	t.Parallel()
	manifests, err := pluginout.NewFileManifestStore(t.TempDir()).Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected empty manifests, got %d", len(manifests))
	}
}

func TestFileManifestStoreResolvesRelativeBinary(t *testing.T) {
	t.Parallel()
	stateDir := t.TempDir()
	writeManifests(t, stateDir, `[{
  "name": "weekly-digest",
  "version": "1.0.0",
  "binary": "plugins/weekly-digest",
  "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
  "enabled": true,
  "capabilities": ["report"]
}]`)
	manifests, err := pluginout.NewFileManifestStore(stateDir).Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 || manifests[0].Binary != filepath.Join(stateDir, "plugins", "weekly-digest") {
		t.Fatalf("unexpected manifests %+v", manifests)
	}
}

func TestFileManifestStoreRejectsUnknownField(t *testing.T) {
	t.Parallel()
	stateDir := t.TempDir()
	writeManifests(t, stateDir, `[{"name": "p", "version": "1", "binary": "/tmp/p", "sha256": "", "enabled": true, "capabilities": ["report"], "tty": true}]`)
	if _, err := pluginout.NewFileManifestStore(stateDir).Load(context.Background()); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestFileManifestStoreReadsYAMLRegistry(t *testing.T) {
	t.Parallel()
	stateDir := t.TempDir()
	dir := filepath.Join(stateDir, "plugins")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	raw := "- name: weekly-digest\n  version: 1.0.0\n  binary: /opt/weekly-digest\n  sha256: " +
		"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb\n  enabled: false\n  capabilities: [report]\n"
	if err := os.WriteFile(filepath.Join(dir, "plugins.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write plugins.yaml: %v", err)
	}
	manifests, err := pluginout.NewFileManifestStore(stateDir).Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 || manifests[0].Enabled || manifests[0].Binary != "/opt/weekly-digest" || manifests[0].Capabilities[0] != "report" {
		t.Fatalf("unexpected manifests %+v", manifests)
	}
}

func TestFileManifestStoreRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	stateDir := t.TempDir()
	writeManifests(t, stateDir, `[{"name": "p", "version": "1", "binary": "/tmp/p", "sha256": "", "enabled": true, "capabilities": ["report"]},
{"name": "p", "version": "2", "binary": "/tmp/p2", "sha256": "", "enabled": true, "capabilities": ["report"]}]`)
	if _, err := pluginout.NewFileManifestStore(stateDir).Load(context.Background()); err == nil {
		t.Fatalf("expected duplicate plugin error")
	}
}
