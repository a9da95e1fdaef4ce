package docschema

import (
	"log/slog"
	"sort"

	"github.com/gnana997/docspec/pkg/parser"
	"github.com/gnana997/docspec/pkg/project"
)

// Generator runs schema extraction over an analysis project. One Generator
// may serve many Generate calls; every call uses a fresh visited set and
// accumulator, so outputs are independent and repeatable.
type Generator struct {
	res           Resolver
	pm            *parser.Manager
	cfg           Config
	logger        *slog.Logger
	excluded      map[string]bool
	linkFormatter LinkFormatter
}

// New creates a Generator over the given resolution capability. The parser
// manager is used only for scratch parses during linkification.
func New(res Resolver, pm *parser.Manager, cfg Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	names := cfg.ExcludedTypeNames
	if names == nil {
		names = DefaultExcludedTypeNames()
	}
	excluded := make(map[string]bool, len(names))
	for _, n := range names {
		excluded[n] = true
	}

	lf := cfg.LinkFormatter
	if lf == nil {
		lf = DefaultLinkFormatter
	}

	return &Generator{
		res:           res,
		pm:            pm,
		cfg:           cfg,
		logger:        logger,
		excluded:      excluded,
		linkFormatter: lf,
	}
}

// Generate extracts the documentation schema for every titled top-level
// declaration of the entry file. Returns (nil, nil) when the entry file is
// not part of the project; callers must check for absence.
//
// Top-level entries come first, sorted by source line (stable). Nested type
// schemas discovered along the way are appended after them, or interleaved
// as discovered when strict declaration order is configured.
func (g *Generator) Generate(entryPath string) (*Result, error) {
	decls, ok := g.res.DeclarationsInFile(entryPath)
	if !ok {
		g.logger.Debug("entry file not in project", "file", entryPath)
		return nil, nil
	}

	type candidate struct {
		decl  *project.Declaration
		title string
		tags  []Tag
	}
	var candidates []candidate
	for _, d := range decls {
		switch d.Kind {
		case project.KindInterface, project.KindTypeAlias, project.KindFunction:
		default:
			continue
		}
		info := parseDoc(d.Doc)
		if info.Title == "" {
			continue
		}
		candidates = append(candidates, candidate{decl: d, title: info.Title, tags: info.Tags})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].decl.Line < candidates[j].decl.Line
	})

	// Per-invocation state: discarded when Generate returns.
	visited := make(visitedSet)
	acc := newAccumulator()

	result := &Result{}
	flushed := 0

	for _, c := range candidates {
		// The declaration's own name resolves as a link target, never as a
		// nested schema of a sibling.
		visited[c.decl.Name] = true

		schema := g.buildDeclaration(c.decl, c.tags, acc, visited)
		result.Entries = append(result.Entries, SchemaEntry{Title: c.title, Schema: schema})

		if g.cfg.StrictDeclarationOrder {
			result.Entries = append(result.Entries, acc.entries[flushed:]...)
			flushed = len(acc.entries)
		}
	}

	result.Entries = append(result.Entries, acc.entries[flushed:]...)

	g.logger.Debug("schema generated",
		"file", entryPath,
		"declarations", len(candidates),
		"nested", len(acc.entries),
		"entries", len(result.Entries))

	return result, nil
}
