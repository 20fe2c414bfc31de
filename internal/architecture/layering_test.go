package architecture_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

const modulePrefix = "studylog/internal/modules/"

// forbidden lists, per layer, the same-module layers it must not import.
var forbidden = map[string][]string{
	"domain":      {"dto", "port/in", "port/out", "service", "usecase", "adapter/in", "adapter/out"},
	"dto":         {"service", "usecase", "adapter/in", "adapter/out"},
	"port/in":     {"service", "usecase", "adapter/in", "adapter/out"},
	"port/out":    {"service", "usecase", "adapter/in", "adapter/out"},
	"service":     {"usecase", "adapter/in", "adapter/out"},
	"usecase":     {"adapter/in", "adapter/out"},
	"adapter/in":  {"domain", "port/out", "service", "usecase", "adapter/out"},
	"adapter/out": {"adapter/in", "usecase"},
}

var layers = []string{"adapter/in", "adapter/out", "port/in", "port/out", "usecase", "service", "domain", "dto"}

// splitModulePath turns studylog/internal/modules/stats/port/in into
// ("stats", "port/in").
func splitModulePath(importPath string) (module, layer string) {
	rest, ok := strings.CutPrefix(importPath, modulePrefix)
	if !ok {
		return "", ""
	}
	module, sub, _ := strings.Cut(rest, "/")
	for _, l := range layers {
		if sub == l || strings.HasPrefix(sub, l+"/") {
			return module, l
		}
	}
	return module, sub
}

func publicLayer(layer string) bool { return layer == "port/in" || layer == "dto" }

type goFile struct {
	path    string
	imports []string
}

func parseTree(t *testing.T, root string) []goFile {
	t.Helper()
	fset := token.NewFileSet()
	var files []goFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
			return err
		}
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		f := goFile{path: filepath.ToSlash(path)}
		for _, imp := range node.Imports {
			f.imports = append(f.imports, strings.Trim(imp.Path.Value, `"`))
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return files
}

func TestModuleLayerImports(t *testing.T) {
	t.Parallel()
	for _, f := range parseTree(t, filepath.Join("..", "modules")) {
		owner, layer := splitModulePath(modulePrefix + strings.TrimPrefix(f.path, "../modules/"))
		if _, known := forbidden[layer]; !known {
			continue
		}
		for _, imp := range f.imports {
			module, target := splitModulePath(imp)
			switch {
			case module == "":
			case module != owner && !publicLayer(target):
				t.Errorf("%s imports %s: other modules are reachable only through port/in and dto", f.path, imp)
			case module == owner && slices.Contains(forbidden[layer], target):
				t.Errorf("%s (%s) must not import %s", f.path, layer, imp)
			}
		}
	}
}

func TestUIImportsOnlyInboundPorts(t *testing.T) {
	t.Parallel()
	for _, f := range parseTree(t, filepath.Join("..", "ui")) {
		for _, imp := range f.imports {
			if module, layer := splitModulePath(imp); module != "" && !publicLayer(layer) {
				t.Errorf("%s imports %s: the TUI talks to modules through port/in and dto", f.path, imp)
			}
		}
	}
}

func TestSplitModulePath(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in, module, layer string
	}{
		{"studylog/internal/modules/stats/port/in", "stats", "port/in"},
		{"studylog/internal/modules/session/adapter/out", "session", "adapter/out"},
		{"studylog/internal/modules/goal/domain", "goal", "domain"},
		{"studylog/internal/platform/clock", "", ""},
	}
	for _, tc := range cases {
		module, layer := splitModulePath(tc.in)
		if module != tc.module || layer != tc.layer {
			t.Errorf("splitModulePath(%q) = %q, %q", tc.in, module, layer)
		}
	}
}
