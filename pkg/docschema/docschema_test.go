package docschema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gnana997/docspec/pkg/parser"
	"github.com/gnana997/docspec/pkg/project"
)

// newTestGenerator writes the given files into a temp directory, loads them
// into a project, and returns a generator plus the entry file path. The
// entry file is "entry.ts".
func newTestGenerator(t *testing.T, cfg Config, files map[string]string) (*Generator, string) {
	t.Helper()

	dir := t.TempDir()
	for name, src := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}

	pm := parser.NewManager(nil)
	t.Cleanup(func() { pm.Close() })

	projCfg := project.Config{
		SourceFilesPaths: []string{filepath.Join(dir, "**", "*.ts")},
	}
	loader, err := project.NewLoader(pm, projCfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { loader.Close() })

	entry := filepath.Join(dir, "entry.ts")
	proj, err := loader.Load(entry, projCfg)
	require.NoError(t, err)

	return New(proj, pm, cfg, nil), entry
}

// generateSchema is a helper that runs a full extraction for the fixture.
func generateSchema(t *testing.T, cfg Config, files map[string]string) *Result {
	t.Helper()

	g, entry := newTestGenerator(t, cfg, files)
	result, err := g.Generate(entry)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

// propertyNames extracts the names of an object schema's data entries.
func propertyNames(t *testing.T, s Schema) []string {
	t.Helper()

	obj, ok := s.(ObjectSchema)
	require.True(t, ok, "expected ObjectSchema, got %T", s)

	var names []string
	for _, p := range obj.Data {
		names = append(names, p.Name)
	}
	return names
}

// propertyByName finds one property entry of an object schema.
func propertyByName(t *testing.T, s Schema, name string) PropertyEntry {
	t.Helper()

	obj, ok := s.(ObjectSchema)
	require.True(t, ok, "expected ObjectSchema, got %T", s)
	for _, p := range obj.Data {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("no property named %q", name)
	return PropertyEntry{}
}
