// Package docschema extracts a structured documentation schema from
// annotated TypeScript declarations: interfaces, type aliases, and function
// signatures carrying a title documentation tag. Referenced custom types are
// resolved recursively into nested schemas, and type expressions are
// rendered with cross-references converted into hyperlinks.
package docschema

import "github.com/gnana997/docspec/pkg/project"

// Tag is one documentation tag extracted from a comment block.
type Tag struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// PropertyEntry describes one property of an interface/type alias or one
// parameter of a function.
type PropertyEntry struct {
	Name string `json:"name" yaml:"name"`
	// Type is the rendered type-expression text, single-line, with
	// resolved custom types substituted by link tokens.
	Type       string `json:"type" yaml:"type"`
	IsOptional bool   `json:"isOptional" yaml:"isOptional"`
	Tags       []Tag  `json:"tags" yaml:"tags"`
	// Initializer is the parameter's default-value text, from an inline
	// initializer or a default/defaultValue tag. Empty for properties.
	Initializer string `json:"initializerText,omitempty" yaml:"initializerText,omitempty"`
}

// Schema is the closed set of schema shapes stored per entry:
// ObjectSchema, FunctionSchema, or NestedTypeSchema.
type Schema interface {
	isSchema()
}

// ObjectSchema is the schema of a documented interface or type alias.
type ObjectSchema struct {
	Tags []Tag           `json:"tags" yaml:"tags"`
	Data []PropertyEntry `json:"data" yaml:"data"`
}

// FunctionSchema is the schema of a documented function declaration or a
// type alias to a function type.
type FunctionSchema struct {
	Tags    []Tag           `json:"tags" yaml:"tags"`
	Params  []PropertyEntry `json:"params" yaml:"params"`
	Returns string          `json:"returns" yaml:"returns"`
}

// NestedTypeSchema is the schema of a custom type referenced by a documented
// declaration without being documented itself. Data holds the formatted
// declaration source text.
type NestedTypeSchema struct {
	Tags         []Tag  `json:"tags" yaml:"tags"`
	Data         string `json:"data" yaml:"data"`
	IsNestedType bool   `json:"isNestedType" yaml:"isNestedType"`
}

func (ObjectSchema) isSchema()     {}
func (FunctionSchema) isSchema()   {}
func (NestedTypeSchema) isSchema() {}

// SchemaEntry pairs a schema with its unique title.
type SchemaEntry struct {
	Title  string `json:"title" yaml:"title"`
	Schema Schema `json:"schema" yaml:"schema"`
}

// Result holds the generated schema in build order.
type Result struct {
	Entries []SchemaEntry
}

// Map returns the schema keyed by title. Later entries overwrite earlier
// ones on title collision.
func (r *Result) Map() map[string]Schema {
	out := make(map[string]Schema, len(r.Entries))
	for _, e := range r.Entries {
		out[e.Title] = e.Schema
	}
	return out
}

// LinkRef describes a resolved type reference handed to the link formatter.
type LinkRef struct {
	// TypeName is the referenced type's symbol name.
	TypeName string
	// Title is the value of the declaration's title tag, when the target
	// is a documented top-level declaration rather than a nested type.
	Title string
	// DefinitionPath is the source file declaring the type, when known.
	DefinitionPath string
}

// LinkFormatter maps a resolved type reference to a hyperlink. Returning ""
// leaves the identifier as plain text.
type LinkFormatter func(ref LinkRef) string

// DefaultEntry is a fallback schema for properties documented by convention
// rather than per-declaration (universal props like style or className).
type DefaultEntry struct {
	Type string `json:"type" yaml:"type"`
	Tags []Tag  `json:"tags" yaml:"tags"`
}

// Config carries the engine options.
type Config struct {
	// DefaultTypeMap supplies schemas for undocumented properties by name.
	// Properties with neither documentation nor a map entry are dropped.
	DefaultTypeMap map[string]DefaultEntry

	// StrictComment disables promotion of plain description text into the
	// description tag names when resolving property/parameter docs.
	StrictComment bool

	// PropertySorter, when set, orders each declaration's properties or
	// parameters (stable). Declaration order is kept otherwise.
	PropertySorter func(a, b PropertyEntry) bool

	// LinkFormatter renders hyperlinks for resolved type references.
	// Nil falls back to DefaultLinkFormatter.
	LinkFormatter LinkFormatter

	// StrictDeclarationOrder interleaves nested schemas as discovered
	// instead of appending them after all top-level entries.
	StrictDeclarationOrder bool

	// ExcludedTypeNames are structural/utility type names never treated as
	// documentable nested types. Nil applies DefaultExcludedTypeNames.
	ExcludedTypeNames []string
}

// Resolver is the analysis-project capability the engine depends on:
// declaration listing per file and type lookup by name. *project.Project
// implements it.
type Resolver interface {
	DeclarationsInFile(path string) ([]*project.Declaration, bool)
	LookupType(name string) (*project.Declaration, bool)
}
