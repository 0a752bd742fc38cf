package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modulePath = "github.com/leapstack-labs/leapsoql"

// TestPackageLayering pins the pipeline order: token < core < parser and
// format < soqltype < builder. Public packages never reach into internal/.
func TestPackageLayering(t *testing.T) {
	tests := []struct {
		dir      string
		allowed  []string
		external []string
	}{
		{dir: "../token"},
		{dir: ".", allowed: []string{"pkg/token"}},
		{dir: "../parser", allowed: []string{"pkg/token", "pkg/core"}},
		{dir: "../format", allowed: []string{"pkg/token", "pkg/core"}},
		{
			dir:      "../soqltype",
			allowed:  []string{"pkg/core", "pkg/format"},
			external: []string{"golang.org/x/text/currency"},
		},
		{
			dir:     "../builder",
			allowed: []string{"pkg/token", "pkg/core", "pkg/parser", "pkg/format", "pkg/soqltype"},
		},
	}

	for _, tt := range tests {
		name := filepath.Base(tt.dir)
		if tt.dir == "." {
			name = "core"
		}
		t.Run(name, func(t *testing.T) {
			allowed := make(map[string]bool)
			for _, p := range tt.allowed {
				allowed[modulePath+"/"+p] = true
			}
			for _, p := range tt.external {
				allowed[p] = true
			}

			for file, imports := range packageImports(t, tt.dir) {
				for _, imp := range imports {
					if !strings.Contains(imp, ".") {
						continue
					}
					assert.NotContains(t, imp, "/internal/", "%s imports an internal package", file)
					assert.True(t, allowed[imp], "%s imports forbidden package %s", file, imp)
				}
			}
		})
	}
}

// packageImports returns the import paths of every non-test Go file in dir.
func packageImports(t *testing.T, dir string) map[string][]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	fset := token.NewFileSet()
	out := make(map[string][]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ImportsOnly)
		require.NoError(t, err, name)
		for _, imp := range f.Imports {
			out[name] = append(out[name], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return out
}
