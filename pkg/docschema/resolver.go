package docschema

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/docspec/pkg/format"
	"github.com/gnana997/docspec/pkg/project"
)

// visitedSet records type names already resolved during one generate call.
// A name enters the set exactly once, strictly before its own descendants
// are explored, which bounds the walk on cyclic type graphs.
type visitedSet map[string]bool

// accumulator collects nested type schemas in discovery order, deduplicated
// by name.
type accumulator struct {
	entries []SchemaEntry
	byName  map[string]bool
}

func newAccumulator() *accumulator {
	return &accumulator{byName: make(map[string]bool)}
}

func (a *accumulator) add(name string, schema *NestedTypeSchema) {
	if a.byName[name] {
		return
	}
	a.byName[name] = true
	a.entries = append(a.entries, SchemaEntry{Title: name, Schema: *schema})
}

// resolveMemberType walks a property's or parameter's type expression and
// accumulates nested schemas for every resolvable custom type it references.
//
// A member that itself carries a title tag is a link target elsewhere: its
// primary type is only marked visited so the linkifier substitutes it, and
// no nested schema is emitted.
func (g *Generator) resolveMemberType(memberTags []Tag, typeNode *ts.Node, source []byte, acc *accumulator, visited visitedSet) {
	if typeNode == nil {
		return
	}

	if hasTag(memberTags, TagTitle) {
		walkTypeIdentifiers(typeNode, source, func(name string) {
			visited[name] = true
		})
		return
	}

	walkTypeIdentifiers(typeNode, source, func(name string) {
		g.resolveName(name, acc, visited)
	})
}

// resolveName resolves one referenced type name into a nested schema and
// recurses into its descendants, pre-order.
func (g *Generator) resolveName(name string, acc *accumulator, visited visitedSet) {
	if visited[name] || g.excluded[name] {
		return
	}

	decl, ok := g.res.LookupType(name)
	if !ok || decl.External {
		// Unresolvable or third-party types stay opaque leaves.
		return
	}

	info := parseDoc(decl.Doc)
	if info.Title != "" {
		// Titled declarations render as link targets, not nested schemas.
		visited[name] = true
		return
	}

	if !resolvableKind(decl) {
		return
	}

	// Visit before descending so self-referential and mutually referential
	// types terminate.
	visited[name] = true

	tags := info.Tags
	if !hasTag(tags, TagTitle) {
		tags = append(tags, Tag{Name: TagTitle, Value: name})
	}
	acc.add(name, &NestedTypeSchema{
		Tags:         tags,
		Data:         format.Declaration(decl.Text()),
		IsNestedType: true,
	})

	g.resolveDescendants(decl, acc, visited)
}

// resolvableKind reports whether a declaration is structurally one of:
// interface, enum, union, intersection, or an alias to one of these.
func resolvableKind(decl *project.Declaration) bool {
	switch decl.Kind {
	case project.KindInterface, project.KindEnum:
		return true
	case project.KindTypeAlias:
		value := aliasValue(decl.Node())
		if value == nil {
			return false
		}
		switch value.Kind() {
		case "union_type", "intersection_type", "object_type", "type_identifier":
			return true
		}
	}
	return false
}

// resolveDescendants recurses into a resolved declaration: union and
// intersection members, or interface/object properties.
func (g *Generator) resolveDescendants(decl *project.Declaration, acc *accumulator, visited visitedSet) {
	source := decl.Source()

	switch decl.Kind {
	case project.KindInterface:
		g.resolveBodyProperties(interfaceBody(decl.Node()), source, acc, visited)

	case project.KindTypeAlias:
		value := aliasValue(decl.Node())
		if value == nil {
			return
		}
		switch value.Kind() {
		case "union_type":
			for _, m := range flattenUnion(value) {
				walkTypeIdentifiers(m, source, func(name string) {
					g.resolveName(name, acc, visited)
				})
			}
		case "intersection_type":
			for _, m := range flattenIntersection(value) {
				if m.Kind() == "object_type" {
					g.resolveBodyProperties(m, source, acc, visited)
					continue
				}
				walkTypeIdentifiers(m, source, func(name string) {
					g.resolveName(name, acc, visited)
				})
			}
		case "object_type":
			g.resolveBodyProperties(value, source, acc, visited)
		case "type_identifier":
			// Alias chain: type X = Y follows through to Y.
			g.resolveName(value.Utf8Text(source), acc, visited)
		}
	}
}

// resolveBodyProperties resolves the type of each property in an interface
// body or object type.
func (g *Generator) resolveBodyProperties(body *ts.Node, source []byte, acc *accumulator, visited visitedSet) {
	if body == nil {
		return
	}
	for i := uint(0); i < uint(body.ChildCount()); i++ {
		child := body.Child(i)
		if child.Kind() != "property_signature" {
			continue
		}
		if typeNode := typeOfMember(child); typeNode != nil {
			walkTypeIdentifiers(typeNode, source, func(name string) {
				g.resolveName(name, acc, visited)
			})
		}
	}
}
