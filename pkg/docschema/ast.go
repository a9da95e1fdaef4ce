package docschema

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/docspec/pkg/project"
)

// findChildByKind returns the first direct child of the given kind.
func findChildByKind(node *ts.Node, kind string) *ts.Node {
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// interfaceBody returns the member container of an interface declaration.
// Grammar versions differ between interface_body and object_type.
func interfaceBody(decl *ts.Node) *ts.Node {
	if body := decl.ChildByFieldName("body"); body != nil {
		return body
	}
	if body := findChildByKind(decl, "interface_body"); body != nil {
		return body
	}
	return findChildByKind(decl, "object_type")
}

// aliasValue returns the aliased type expression of a type_alias_declaration.
func aliasValue(decl *ts.Node) *ts.Node {
	return decl.ChildByFieldName("value")
}

// typeOfMember returns the type node of a property_signature or parameter,
// unwrapping the type_annotation (": T") wrapper.
func typeOfMember(node *ts.Node) *ts.Node {
	anno := node.ChildByFieldName("type")
	if anno == nil {
		return nil
	}
	for i := uint(0); i < uint(anno.ChildCount()); i++ {
		child := anno.Child(i)
		if child.Kind() != ":" {
			return child
		}
	}
	return nil
}

// returnTypeNode returns the return-type node of a function declaration,
// function signature, or function_type.
func returnTypeNode(fn *ts.Node) *ts.Node {
	if rt := fn.ChildByFieldName("return_type"); rt != nil {
		if rt.Kind() == "type_annotation" {
			for i := uint(0); i < uint(rt.ChildCount()); i++ {
				child := rt.Child(i)
				if child.Kind() != ":" {
					return child
				}
			}
			return nil
		}
		return rt
	}
	return nil
}

// walkTypeIdentifiers invokes fn for every type identifier inside node, in
// pre-order. Qualified names (ns.Type) are skipped: they cross a module
// boundary the project cannot resolve by bare name.
func walkTypeIdentifiers(node *ts.Node, source []byte, fn func(name string)) {
	if node == nil {
		return
	}
	kind := node.Kind()
	if kind == "nested_type_identifier" || kind == "member_expression" {
		return
	}
	if kind == "type_identifier" {
		fn(node.Utf8Text(source))
		return
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		walkTypeIdentifiers(node.Child(i), source, fn)
	}
}

// extendsBaseNames returns the base type names of an interface's extends
// clause. Generic bases contribute their head name (Base<T> -> Base).
func extendsBaseNames(decl *ts.Node, source []byte) []string {
	var clause *ts.Node
	for i := uint(0); i < uint(decl.ChildCount()); i++ {
		child := decl.Child(i)
		if k := child.Kind(); k == "extends_type_clause" || k == "extends_clause" {
			clause = child
			break
		}
	}
	if clause == nil {
		return nil
	}

	var names []string
	for i := uint(0); i < uint(clause.ChildCount()); i++ {
		child := clause.Child(i)
		switch child.Kind() {
		case "type_identifier":
			names = append(names, child.Utf8Text(source))
		case "generic_type":
			if name := child.ChildByFieldName("name"); name != nil && name.Kind() == "type_identifier" {
				names = append(names, name.Utf8Text(source))
			}
		}
	}
	return names
}

// flattenIntersection returns the member type nodes of an intersection_type,
// flattening the left-recursive binary tree tree-sitter builds.
func flattenIntersection(node *ts.Node) []*ts.Node {
	return flattenBinaryType(node, "intersection_type", "&")
}

// flattenUnion returns the member type nodes of a union_type.
func flattenUnion(node *ts.Node) []*ts.Node {
	return flattenBinaryType(node, "union_type", "|")
}

func flattenBinaryType(node *ts.Node, kind, op string) []*ts.Node {
	if node == nil {
		return nil
	}
	if node.Kind() != kind {
		return []*ts.Node{node}
	}
	var members []*ts.Node
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Kind() == op {
			continue
		}
		members = append(members, flattenBinaryType(child, kind, op)...)
	}
	return members
}

// functionShapeNode returns the node carrying parameters and return type
// when the declaration is function-shaped: the declaration itself for
// function declarations/signatures, the aliased function_type for aliases.
// Returns nil for non-function declarations.
func functionShapeNode(decl *project.Declaration) *ts.Node {
	switch decl.Kind {
	case project.KindFunction:
		return decl.Node()
	case project.KindTypeAlias:
		if value := aliasValue(decl.Node()); value != nil && value.Kind() == "function_type" {
			return value
		}
	}
	return nil
}
