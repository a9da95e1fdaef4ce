package docschema

import "strings"

// DefaultLinkFormatter renders in-page anchor links from type names, the
// shape documentation site generators expect (#typename). The title and
// definition path of documented declarations are ignored here; callers with
// multi-page output supply their own formatter.
func DefaultLinkFormatter(ref LinkRef) string {
	return "#" + strings.ToLower(ref.TypeName)
}

// DefaultExcludedTypeNames returns the structural/utility type names that
// carry no independent documentation meaning and are never resolved into
// nested schemas. The set is configurable via Config.ExcludedTypeNames.
func DefaultExcludedTypeNames() []string {
	return []string{
		"Omit",
		"Pick",
		"Partial",
		"Required",
		"Readonly",
		"Exclude",
		"Extract",
		"Record",
		"NonNullable",
		"ReturnType",
		"Parameters",
	}
}
