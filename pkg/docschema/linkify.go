package docschema

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/docspec/pkg/format"
	"github.com/gnana997/docspec/pkg/parser"
)

// scratchPrefix turns a bare type expression into a parseable alias
// declaration for the throwaway linkification parse.
const scratchPrefix = "type __docspec__ = "

// identSpan is one identifier occurrence inside the rendered type text.
type identSpan struct {
	start, end int
	name       string
}

// linkify re-renders a type expression as a single line, substituting every
// identifier that matches a visited type's name with a [name](link) token.
//
// The expression is parsed as an isolated scratch fragment, never through
// the analysis project, so linkification cannot pollute resolution state.
// Exactly one substitution pass runs; link labels are not re-processed.
func (g *Generator) linkify(typeText string, acc *accumulator, visited visitedSet) string {
	text := format.SingleLine(typeText)
	if text == "" || len(visited) == 0 {
		return text
	}

	spans := g.identifierSpans(text, visited)

	// Substitute right-to-left so earlier offsets stay valid.
	for i := len(spans) - 1; i >= 0; i-- {
		span := spans[i]
		link := g.linkFor(span.name, acc)
		if link == "" {
			continue
		}
		text = text[:span.start] + "[" + span.name + "](" + link + ")" + text[span.end:]
	}
	return text
}

// identifierSpans parses the rendered text and returns the offsets of every
// identifier token whose text exactly matches a visited type name.
func (g *Generator) identifierSpans(text string, visited visitedSet) []identSpan {
	source := []byte(scratchPrefix + text + ";")
	tree, err := g.pm.Parse(source, parser.LanguageTypeScript, false)
	if err != nil {
		g.logger.Debug("scratch parse failed, leaving type text unlinked", "error", err)
		return nil
	}
	defer tree.Close()

	var spans []identSpan
	collectIdentifierSpans(tree.RootNode(), source, visited, &spans)

	// Keep only spans inside the original expression.
	filtered := spans[:0]
	for _, s := range spans {
		start := s.start - len(scratchPrefix)
		end := s.end - len(scratchPrefix)
		if start >= 0 && end <= len(text) {
			filtered = append(filtered, identSpan{start: start, end: end, name: s.name})
		}
	}
	return filtered
}

func collectIdentifierSpans(node *ts.Node, source []byte, visited visitedSet, spans *[]identSpan) {
	if node == nil {
		return
	}
	kind := node.Kind()
	if kind == "type_identifier" || kind == "identifier" {
		name := node.Utf8Text(source)
		if visited[name] {
			*spans = append(*spans, identSpan{
				start: int(node.StartByte()),
				end:   int(node.EndByte()),
				name:  name,
			})
		}
		return
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		collectIdentifierSpans(node.Child(i), source, visited, spans)
	}
}

// linkFor requests a link for one visited type. Nested types link by name
// only; titled top-level declarations link with their title and source path.
func (g *Generator) linkFor(name string, acc *accumulator) string {
	if acc.byName[name] {
		return g.linkFormatter(LinkRef{TypeName: name})
	}

	decl, ok := g.res.LookupType(name)
	if !ok {
		return ""
	}
	info := parseDoc(decl.Doc)
	if info.Title == "" {
		return ""
	}
	return g.linkFormatter(LinkRef{
		TypeName:       name,
		Title:          info.Title,
		DefinitionPath: decl.FilePath,
	})
}
