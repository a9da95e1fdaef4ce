package schemaquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/docspec/pkg/docschema"
)

func testResult() *docschema.Result {
	return &docschema.Result{
		Entries: []docschema.SchemaEntry{
			{
				Title: "Button",
				Schema: docschema.ObjectSchema{
					Tags: []docschema.Tag{{Name: "title", Value: "Button"}},
					Data: []docschema.PropertyEntry{
						{Name: "variant", Type: `"primary" | "secondary"`},
						{Name: "onClick", Type: "(event: MouseEvent) => void"},
					},
				},
			},
			{
				Title: "formatValue",
				Schema: docschema.FunctionSchema{
					Tags:    []docschema.Tag{{Name: "description", Value: "Formats a value."}},
					Params:  []docschema.PropertyEntry{{Name: "input", Type: "string"}},
					Returns: "string",
				},
			},
			{
				Title: "Status",
				Schema: docschema.NestedTypeSchema{
					Tags:         []docschema.Tag{{Name: "title", Value: "Status"}},
					Data:         `type Status = "open" | "closed";`,
					IsNestedType: true,
				},
			},
		},
	}
}

func TestList(t *testing.T) {
	q := New(testResult())

	infos := q.List()
	require.Len(t, infos, 3)
	assert.Equal(t, EntryInfo{Title: "Button", Shape: "object"}, infos[0])
	assert.Equal(t, EntryInfo{Title: "formatValue", Shape: "function"}, infos[1])
	assert.Equal(t, EntryInfo{Title: "Status", Shape: "nested"}, infos[2])
}

func TestGet(t *testing.T) {
	q := New(testResult())

	schema, ok := q.Get("Button")
	require.True(t, ok)
	obj, ok := schema.(docschema.ObjectSchema)
	require.True(t, ok)
	assert.Len(t, obj.Data, 2)

	_, ok = q.Get("Unknown")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	q := New(testResult())

	tests := []struct {
		keyword string
		titles  []string
	}{
		{"button", []string{"Button"}},
		{"onclick", []string{"Button"}},
		{"formats a", []string{"formatValue"}},
		{"closed", []string{"Status"}},
		{"no-such-thing", nil},
	}

	for _, tt := range tests {
		var titles []string
		for _, hit := range q.Search(tt.keyword) {
			titles = append(titles, hit.Title)
		}
		assert.Equal(t, tt.titles, titles, "keyword %q", tt.keyword)
	}
}

func TestSearch_EmptyKeywordReturnsAll(t *testing.T) {
	q := New(testResult())

	hits := q.Search("")
	require.Len(t, hits, 3)
	assert.Equal(t, "Button", hits[0].Title, "results are sorted by title")
	assert.Equal(t, "Status", hits[1].Title)
	assert.Equal(t, "formatValue", hits[2].Title)
}
