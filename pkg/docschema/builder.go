package docschema

import (
	"sort"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/docspec/pkg/project"
)

// buildDeclaration composes the schema for one documented top-level
// declaration. Dispatch is a closed choice, in precedence order: function
// shape, interface without inheritance (notExtends tag), then the default
// interface/type-alias shape.
func (g *Generator) buildDeclaration(decl *project.Declaration, declTags []Tag, acc *accumulator, visited visitedSet) Schema {
	if fn := functionShapeNode(decl); fn != nil {
		return g.buildFunctionSchema(decl, declTags, fn, acc, visited)
	}
	return g.buildObjectSchema(decl, declTags, acc, visited)
}

// buildFunctionSchema extracts parameters and the rendered return type.
func (g *Generator) buildFunctionSchema(decl *project.Declaration, declTags []Tag, fn *ts.Node, acc *accumulator, visited visitedSet) Schema {
	source := decl.Source()
	schema := FunctionSchema{Tags: declTags, Returns: "void"}

	if params := fn.ChildByFieldName("parameters"); params != nil {
		var doc string
		for i := uint(0); i < uint(params.ChildCount()); i++ {
			child := params.Child(i)
			switch child.Kind() {
			case "comment":
				doc = child.Utf8Text(source)
			case "required_parameter", "optional_parameter":
				if entry, ok := g.buildParameter(child, doc, source, acc, visited); ok {
					schema.Params = append(schema.Params, entry)
				}
				doc = ""
			}
		}
	}

	if rt := returnTypeNode(fn); rt != nil {
		walkTypeIdentifiers(rt, source, func(name string) {
			g.resolveName(name, acc, visited)
		})
		schema.Returns = g.linkify(rt.Utf8Text(source), acc, visited)
	}

	if g.cfg.PropertySorter != nil {
		sorter := g.cfg.PropertySorter
		sort.SliceStable(schema.Params, func(i, j int) bool {
			return sorter(schema.Params[i], schema.Params[j])
		})
	}

	return schema
}

// buildParameter builds one parameter entry. Parameters that do not match
// the identifier[?]: type shape are silently skipped.
func (g *Generator) buildParameter(param *ts.Node, doc string, source []byte, acc *accumulator, visited visitedSet) (PropertyEntry, bool) {
	m, ok := parseParameter(param.Utf8Text(source))
	if !ok {
		return PropertyEntry{}, false
	}

	tags := symbolTags(doc, g.cfg.StrictComment)

	initializer := m.Initializer
	if initializer == "" {
		if v := tagValue(tags, tagDefault); v != "" {
			initializer = v
		} else if v := tagValue(tags, tagDefaultValue); v != "" {
			initializer = v
		}
	}

	g.resolveMemberType(tags, typeOfMember(param), source, acc, visited)

	return PropertyEntry{
		Name:        m.Name,
		Type:        g.linkify(m.TypeText, acc, visited),
		IsOptional:  m.Optional || param.Kind() == "optional_parameter",
		Tags:        tags,
		Initializer: initializer,
	}, true
}

// buildObjectSchema extracts the property entries of an interface or type
// alias. Inherited members are included unless the declaration opts out
// with the notExtends tag.
func (g *Generator) buildObjectSchema(decl *project.Declaration, declTags []Tag, acc *accumulator, visited visitedSet) Schema {
	ownOnly := hasTag(declTags, TagNotExtends)

	guard := map[string]bool{decl.Name: true}
	props := g.collectProperties(decl, ownOnly, guard)

	schema := ObjectSchema{Tags: declTags}
	for _, ps := range props {
		if entry, ok := g.buildProperty(ps, acc, visited); ok {
			schema.Data = append(schema.Data, entry)
		}
	}

	if g.cfg.PropertySorter != nil {
		sorter := g.cfg.PropertySorter
		sort.SliceStable(schema.Data, func(i, j int) bool {
			return sorter(schema.Data[i], schema.Data[j])
		})
	}

	return schema
}

// buildProperty builds one property entry. Self-documenting properties
// (description or remarks tag, possibly promoted) are fully resolved;
// otherwise the default-type map supplies the entry wholesale, and
// properties absent from it are dropped.
func (g *Generator) buildProperty(ps propertySource, acc *accumulator, visited visitedSet) (PropertyEntry, bool) {
	tags := symbolTags(ps.doc, g.cfg.StrictComment)

	if hasTag(tags, TagDescription) || hasTag(tags, TagRemarks) || hasTag(tags, TagTitle) {
		g.resolveMemberType(tags, typeOfMember(ps.node), ps.source, acc, visited)
		return PropertyEntry{
			Name:       ps.m.Name,
			Type:       g.linkify(ps.m.TypeText, acc, visited),
			IsOptional: ps.m.Optional,
			Tags:       tags,
		}, true
	}

	if def, ok := g.cfg.DefaultTypeMap[ps.m.Name]; ok {
		return PropertyEntry{
			Name:       ps.m.Name,
			Type:       def.Type,
			IsOptional: ps.m.Optional,
			Tags:       def.Tags,
		}, true
	}

	return PropertyEntry{}, false
}

// propertySource is one parseable property signature with its preceding
// documentation comment.
type propertySource struct {
	m      member
	doc    string
	node   *ts.Node
	source []byte
}

// collectProperties returns the properties visible on a declaration, own
// properties first in source order, then inherited ones (depth-first along
// extends clauses) excluding overridden names. The guard set breaks
// inheritance cycles.
func (g *Generator) collectProperties(decl *project.Declaration, ownOnly bool, guard map[string]bool) []propertySource {
	source := decl.Source()
	var props []propertySource
	seen := make(map[string]bool)

	appendBody := func(body *ts.Node) {
		for _, ps := range bodyProperties(body, source) {
			if !seen[ps.m.Name] {
				seen[ps.m.Name] = true
				props = append(props, ps)
			}
		}
	}

	appendBase := func(name string) {
		if ownOnly || guard[name] {
			return
		}
		guard[name] = true
		base, ok := g.res.LookupType(name)
		if !ok || base.External {
			return
		}
		for _, ps := range g.collectProperties(base, false, guard) {
			if !seen[ps.m.Name] {
				seen[ps.m.Name] = true
				props = append(props, ps)
			}
		}
	}

	switch decl.Kind {
	case project.KindInterface:
		appendBody(interfaceBody(decl.Node()))
		for _, base := range extendsBaseNames(decl.Node(), source) {
			appendBase(base)
		}

	case project.KindTypeAlias:
		value := aliasValue(decl.Node())
		if value == nil {
			break
		}
		switch value.Kind() {
		case "object_type":
			appendBody(value)
		case "intersection_type":
			for _, m := range flattenIntersection(value) {
				switch m.Kind() {
				case "object_type":
					appendBody(m)
				case "type_identifier":
					appendBase(m.Utf8Text(source))
				}
			}
		}
	}

	return props
}

// bodyProperties parses the property signatures of an interface body or
// object type, attaching each one's preceding comment.
func bodyProperties(body *ts.Node, source []byte) []propertySource {
	if body == nil {
		return nil
	}

	var props []propertySource
	var doc string
	for i := uint(0); i < uint(body.ChildCount()); i++ {
		child := body.Child(i)
		switch child.Kind() {
		case "comment":
			doc = child.Utf8Text(source)
		case "property_signature":
			if m, ok := parseMember(child.Utf8Text(source)); ok {
				props = append(props, propertySource{m: m, doc: doc, node: child, source: source})
			}
			doc = ""
		default:
			// Method signatures, index signatures, punctuation: a pending
			// comment does not document the next property.
			if child.IsNamed() {
				doc = ""
			}
		}
	}
	return props
}
