package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/docspec/pkg/docschema"
)

// defaultConfigPath is consulted when --config is not given.
const defaultConfigPath = ".docspec/config.yaml"

// ProjectConfig holds the contents of .docspec/config.yaml.
type ProjectConfig struct {
	Version string `yaml:"version"`
	// Entry is the file whose documented declarations are extracted.
	Entry string `yaml:"entry"`
	// SourceFiles are glob patterns of additional resolvable files.
	SourceFiles []string `yaml:"source_files"`
	// Output is the schema destination; empty writes to stdout.
	Output string `yaml:"output"`
	// Format selects json (default) or yaml encoding.
	Format string `yaml:"format"`

	StrictComments         bool `yaml:"strict_comments"`
	StrictDeclarationOrder bool `yaml:"strict_declaration_order"`

	// DefaultTypeMap supplies schemas for properties documented by
	// convention (style, className, ...).
	DefaultTypeMap map[string]docschema.DefaultEntry `yaml:"default_type_map"`

	// ExcludedTypeNames overrides the built-in structural-utility skip set.
	ExcludedTypeNames []string `yaml:"excluded_type_names"`
}

// loadProjectConfig reads the YAML config. A missing file at the default
// path is not an error; an explicitly requested path must exist.
func loadProjectConfig(path string) (*ProjectConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return &ProjectConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}
