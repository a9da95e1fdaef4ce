// Package project loads parsed source files into an analysis project: the
// set of files whose declarations are resolvable during schema extraction,
// indexed for name lookup.
package project

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/docspec/pkg/parser"
	"github.com/gnana997/docspec/pkg/util"
)

// Config controls project loading.
type Config struct {
	// SourceFilesPaths are doublestar glob patterns of additional files to
	// make resolvable for cross-references, relative to the working
	// directory (absolute patterns work too).
	SourceFilesPaths []string

	// MaxCachedFiles bounds the mmap file cache. 0 applies the default.
	MaxCachedFiles int
}

// SourceFile is one parsed file in the project.
type SourceFile struct {
	Path   string
	Source []byte
	Decls  []*Declaration

	tree *ts.Tree
	hash string
}

// Loader parses files into projects. Parsed trees are cached by content
// hash, so repeated loads (watch mode) skip re-parsing unchanged files.
//
// Projects returned by Load reference trees owned by the loader's cache and
// must not be used after Close. Loads are expected to run sequentially;
// the cache itself is safe for concurrent access.
type Loader struct {
	pm     *parser.Manager
	fc     *util.FileCache
	cache  *lru.Cache[string, *SourceFile]
	logger *slog.Logger
}

// parsedFileCacheSize bounds how many parsed files the loader retains
// between loads. Evicted entries close their trees.
const parsedFileCacheSize = 4096

// NewLoader creates a project loader.
func NewLoader(pm *parser.Manager, cfg Config, logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cache, err := lru.NewWithEvict[string, *SourceFile](parsedFileCacheSize, func(_ string, sf *SourceFile) {
		if sf.tree != nil {
			sf.tree.Close()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create parse cache: %w", err)
	}

	return &Loader{
		pm:     pm,
		fc:     util.NewFileCache(cfg.MaxCachedFiles, logger),
		cache:  cache,
		logger: logger,
	}, nil
}

// Load builds a Project from the entry file plus all files matching the
// configured glob patterns. A missing or unparseable entry file is not an
// error here: the project simply does not contain it, and the engine
// reports absence.
func (l *Loader) Load(entryPath string, cfg Config) (*Project, error) {
	paths, err := expandGlobs(entryPath, cfg.SourceFilesPaths)
	if err != nil {
		return nil, err
	}

	p := &Project{
		files: make(map[string]*SourceFile, len(paths)),
		index: make(map[string][]*Declaration),
	}

	for _, path := range paths {
		sf, err := l.loadFile(path)
		if err != nil {
			l.logger.Warn("skipping file", "file", path, "error", err)
			continue
		}
		p.files[sf.Path] = sf
		p.order = append(p.order, sf.Path)
		for _, d := range sf.Decls {
			p.index[d.Name] = append(p.index[d.Name], d)
		}
	}

	l.logger.Debug("project loaded",
		"files", len(p.files),
		"declarations", len(p.index))

	return p, nil
}

// loadFile reads and parses one file, reusing a cached parse when the
// content hash is unchanged.
func (l *Loader) loadFile(path string) (*SourceFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	source, err := l.fc.Get(abs)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(source)
	hash := hex.EncodeToString(sum[:])

	if sf, ok := l.cache.Get(abs); ok && sf.hash == hash {
		return sf, nil
	}

	tree, err := l.pm.ParseFile(source, abs)
	if err != nil {
		return nil, err
	}

	sf := &SourceFile{
		Path:   abs,
		Source: source,
		Decls:  collectDeclarations(tree.RootNode(), source, abs),
		tree:   tree,
		hash:   hash,
	}
	l.cache.Add(abs, sf)
	return sf, nil
}

// Close releases all cached parse trees and unmaps source files.
// Projects produced by this loader become invalid.
func (l *Loader) Close() error {
	l.cache.Purge()
	return l.fc.Close()
}

// expandGlobs resolves the entry path plus glob patterns into a
// deduplicated, deterministic path list (entry first, rest sorted).
func expandGlobs(entryPath string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			paths = append(paths, abs)
		}
	}

	if entryPath != "" {
		add(entryPath)
	}

	var matched []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid source files pattern: %s", pattern)
		}
		hits, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to expand pattern %s: %w", pattern, err)
		}
		matched = append(matched, hits...)
	}
	sort.Strings(matched)
	for _, m := range matched {
		if parser.DetectLanguage(m) != parser.LanguageUnknown {
			add(m)
		}
	}

	return paths, nil
}

// Project is a loaded analysis project: parsed source files plus a
// name-indexed view of their top-level declarations. It implements the
// type-resolution capability the schema engine depends on.
type Project struct {
	files map[string]*SourceFile
	order []string
	index map[string][]*Declaration
}

// DeclarationsInFile returns the top-level declarations of one file in
// source order. The second result is false when the file is not part of
// the project.
func (p *Project) DeclarationsInFile(path string) ([]*Declaration, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sf, ok := p.files[abs]
	if !ok {
		return nil, false
	}
	return sf.Decls, true
}

// LookupType returns the backing declaration for a type name. When several
// files declare the same name, the declaration from the earliest-loaded
// file wins (entry file first, then sorted source files).
func (p *Project) LookupType(name string) (*Declaration, bool) {
	decls := p.index[name]
	if len(decls) == 0 {
		return nil, false
	}
	best := decls[0]
	bestRank := p.rank(best.FilePath)
	for _, d := range decls[1:] {
		if r := p.rank(d.FilePath); r < bestRank {
			best, bestRank = d, r
		}
	}
	return best, true
}

func (p *Project) rank(path string) int {
	for i, f := range p.order {
		if f == path {
			return i
		}
	}
	return len(p.order)
}

// Files returns the project's file paths in load order.
func (p *Project) Files() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}
