package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "1"
entry: src/index.ts
source_files:
  - "src/**/*.ts"
output: docs/schema.json
format: json
strict_declaration_order: true
default_type_map:
  style:
    type: CSSProperties
    tags:
      - name: description
        value: Inline style overrides.
excluded_type_names:
  - Omit
  - Pick
`), 0o644))

	cfg, err := loadProjectConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "src/index.ts", cfg.Entry)
	assert.Equal(t, []string{"src/**/*.ts"}, cfg.SourceFiles)
	assert.Equal(t, "docs/schema.json", cfg.Output)
	assert.True(t, cfg.StrictDeclarationOrder)
	assert.False(t, cfg.StrictComments)

	style, ok := cfg.DefaultTypeMap["style"]
	require.True(t, ok)
	assert.Equal(t, "CSSProperties", style.Type)
	require.Len(t, style.Tags, 1)
	assert.Equal(t, "description", style.Tags[0].Name)

	assert.Equal(t, []string{"Omit", "Pick"}, cfg.ExcludedTypeNames)
}

func TestLoadProjectConfig_ExplicitPathMustExist(t *testing.T) {
	_, err := loadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadProjectConfig_DefaultPathMayBeAbsent(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := loadProjectConfig("")
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoadProjectConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entry: [unclosed"), 0o644))

	_, err := loadProjectConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}
