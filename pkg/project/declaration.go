package project

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Kind identifies the syntactic kind of a top-level declaration.
type Kind string

const (
	KindInterface Kind = "interface"
	KindTypeAlias Kind = "type_alias"
	KindFunction  Kind = "function"
	KindEnum      Kind = "enum"
)

// Declaration is one top-level declaration found in a project file, together
// with its attached documentation comment. The underlying AST node stays
// valid for the lifetime of the loader that produced the project.
type Declaration struct {
	Name     string
	Kind     Kind
	FilePath string
	// External marks declarations that live under a third-party boundary
	// (node_modules). They are opaque leaves for schema extraction.
	External bool
	// Line is the 1-based source line of the declaration.
	Line uint
	// Doc is the raw documentation comment preceding the declaration,
	// including its comment markers. Empty when undocumented.
	Doc string

	node   *ts.Node
	source []byte
}

// Node returns the declaration's AST node (export wrapper stripped).
func (d *Declaration) Node() *ts.Node { return d.node }

// Source returns the full source of the declaring file.
func (d *Declaration) Source() []byte { return d.source }

// Text returns the declaration's verbatim source text.
func (d *Declaration) Text() string { return d.node.Utf8Text(d.source) }

// IsExternalPath reports whether a file path crosses the third-party
// boundary. Types declared there are never resolved into nested schemas.
func IsExternalPath(path string) bool {
	p := strings.ReplaceAll(path, "\\", "/")
	return strings.Contains(p, "/node_modules/") || strings.HasPrefix(p, "node_modules/")
}

// declarationKind maps a tree-sitter node kind to a declaration Kind.
// Returns "" for nodes that are not candidate declarations.
func declarationKind(nodeKind string) Kind {
	switch nodeKind {
	case "interface_declaration":
		return KindInterface
	case "type_alias_declaration":
		return KindTypeAlias
	case "function_declaration", "function_signature":
		return KindFunction
	case "enum_declaration":
		return KindEnum
	default:
		return ""
	}
}

// collectDeclarations walks the top level of a parsed file and returns all
// candidate declarations with their preceding documentation comments.
//
// Declarations wrapped in `export ...` or `declare ...` statements are
// unwrapped; the doc comment attaches to the outermost statement.
func collectDeclarations(root *ts.Node, source []byte, filePath string) []*Declaration {
	var decls []*Declaration
	external := IsExternalPath(filePath)

	var lastComment *ts.Node
	for i := uint(0); i < uint(root.ChildCount()); i++ {
		child := root.Child(i)
		kind := child.Kind()

		if kind == "comment" {
			lastComment = child
			continue
		}

		decl := unwrapDeclaration(child)
		if decl != nil {
			if dk := declarationKind(decl.Kind()); dk != "" {
				name := declarationName(decl, source)
				if name != "" {
					doc := attachedDoc(lastComment, child, source)
					decls = append(decls, &Declaration{
						Name:     name,
						Kind:     dk,
						FilePath: filePath,
						External: external,
						Line:     uint(child.StartPosition().Row) + 1,
						Doc:      doc,
						node:     decl,
						source:   source,
					})
				}
			}
		}

		lastComment = nil
	}

	return decls
}

// unwrapDeclaration strips export_statement and ambient_declaration wrappers
// and returns the inner declaration node, or the node itself.
func unwrapDeclaration(node *ts.Node) *ts.Node {
	kind := node.Kind()
	if kind == "export_statement" || kind == "ambient_declaration" {
		for i := uint(0); i < uint(node.ChildCount()); i++ {
			child := node.Child(i)
			if declarationKind(child.Kind()) != "" {
				return child
			}
			// declare inside export: export declare interface ...
			if child.Kind() == "ambient_declaration" {
				if inner := unwrapDeclaration(child); inner != nil && declarationKind(inner.Kind()) != "" {
					return inner
				}
			}
		}
		return nil
	}
	return node
}

// declarationName returns the declared identifier, or "" if absent.
func declarationName(decl *ts.Node, source []byte) string {
	name := decl.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return name.Utf8Text(source)
}

// attachedDoc returns the comment's text when it directly precedes the
// statement (at most one blank line between them). A detached comment
// further up the file does not document the declaration.
func attachedDoc(comment, stmt *ts.Node, source []byte) string {
	if comment == nil {
		return ""
	}
	gap := int(stmt.StartPosition().Row) - int(comment.EndPosition().Row)
	if gap < 0 || gap > 2 {
		return ""
	}
	return comment.Utf8Text(source)
}
