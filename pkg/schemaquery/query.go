// Package schemaquery provides read-only query methods over a generated
// documentation schema. It backs the MCP server tools.
package schemaquery

import (
	"sort"
	"strings"

	"github.com/gnana997/docspec/pkg/docschema"
)

// EntryInfo is a lightweight listing of one schema entry.
type EntryInfo struct {
	Title string `json:"title"`
	Shape string `json:"shape"` // "object", "function", or "nested"
}

// QueryService answers lookups against one generated schema.
type QueryService struct {
	result  *docschema.Result
	byTitle map[string]docschema.Schema
}

// New creates a QueryService from a generation result.
func New(result *docschema.Result) *QueryService {
	return &QueryService{
		result:  result,
		byTitle: result.Map(),
	}
}

// List returns all entries in build order.
func (q *QueryService) List() []EntryInfo {
	infos := make([]EntryInfo, 0, len(q.result.Entries))
	for _, e := range q.result.Entries {
		infos = append(infos, EntryInfo{Title: e.Title, Shape: shapeOf(e.Schema)})
	}
	return infos
}

// Get returns the schema stored under a title.
func (q *QueryService) Get(title string) (docschema.Schema, bool) {
	s, ok := q.byTitle[title]
	return s, ok
}

// Search returns entries whose title, tag values, or property names match
// the keyword, case-insensitively. Results are sorted by title.
func (q *QueryService) Search(keyword string) []EntryInfo {
	keyword = strings.ToLower(keyword)
	var hits []EntryInfo

	for title, schema := range q.byTitle {
		if matches(title, schema, keyword) {
			hits = append(hits, EntryInfo{Title: title, Shape: shapeOf(schema)})
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Title < hits[j].Title })
	return hits
}

func matches(title string, schema docschema.Schema, keyword string) bool {
	if keyword == "" {
		return true
	}
	if strings.Contains(strings.ToLower(title), keyword) {
		return true
	}

	var tags []docschema.Tag
	var entries []docschema.PropertyEntry

	switch s := schema.(type) {
	case docschema.ObjectSchema:
		tags, entries = s.Tags, s.Data
	case docschema.FunctionSchema:
		tags, entries = s.Tags, s.Params
	case docschema.NestedTypeSchema:
		tags = s.Tags
		if strings.Contains(strings.ToLower(s.Data), keyword) {
			return true
		}
	}

	for _, t := range tags {
		if strings.Contains(strings.ToLower(t.Value), keyword) {
			return true
		}
	}
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), keyword) {
			return true
		}
	}
	return false
}

func shapeOf(schema docschema.Schema) string {
	switch schema.(type) {
	case docschema.FunctionSchema:
		return "function"
	case docschema.NestedTypeSchema:
		return "nested"
	default:
		return "object"
	}
}
