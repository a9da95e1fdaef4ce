package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"src/index.ts", LanguageTypeScript},
		{"src/Component.tsx", LanguageTypeScript},
		{"src/module.mts", LanguageTypeScript},
		{"src/module.cts", LanguageTypeScript},
		{"src/index.js", LanguageJavaScript},
		{"src/Component.jsx", LanguageJavaScript},
		{"src/module.mjs", LanguageJavaScript},
		{"src/module.cjs", LanguageJavaScript},
		{"SRC/INDEX.TS", LanguageTypeScript},
		{"readme.md", LanguageUnknown},
		{"Makefile", LanguageUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLanguage(tt.path), "path %s", tt.path)
	}
}

func TestIsTSXFile(t *testing.T) {
	assert.True(t, IsTSXFile("a/b/Component.tsx"))
	assert.True(t, IsTSXFile("Component.TSX"))
	assert.False(t, IsTSXFile("a/b/index.ts"))
	assert.False(t, IsTSXFile("a/b/index.jsx"))
}

func TestManager_ParseTypeScript(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	tree, err := m.Parse([]byte("interface A { a: string; }"), LanguageTypeScript, false)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, "program", root.Kind())
	assert.False(t, root.HasError())
}

func TestManager_ParseTSX(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	tree, err := m.Parse([]byte("const x = <div>hello</div>;"), LanguageTypeScript, true)
	require.NoError(t, err)
	defer tree.Close()

	assert.False(t, tree.RootNode().HasError())
}

func TestManager_ParseUnknownLanguage(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	_, err := m.Parse([]byte("x"), LanguageUnknown, false)
	require.Error(t, err)
}

func TestManager_ParseFile(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	tree, err := m.ParseFile([]byte("const x = 1;"), "src/index.js")
	require.NoError(t, err)
	tree.Close()

	_, err = m.ParseFile([]byte("x"), "notes.txt")
	require.Error(t, err)
}

func TestManager_BrokenInputStillReturnsTree(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	tree, err := m.Parse([]byte("interface { { {"), LanguageTypeScript, false)
	require.NoError(t, err, "partial trees are returned, not rejected")
	defer tree.Close()

	assert.True(t, tree.RootNode().HasError())
}

func TestManager_Stats(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	for i := 0; i < 3; i++ {
		tree, err := m.Parse([]byte("const x = 1;"), LanguageJavaScript, false)
		require.NoError(t, err)
		tree.Close()
	}

	stats := m.Stats()
	assert.Equal(t, 3, stats.ParsesCalled)
	assert.GreaterOrEqual(t, stats.ParsersCreated, 1)
	assert.LessOrEqual(t, stats.ParsersCreated, 3)
}

func TestManager_ConcurrentParses(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			tree, err := m.Parse([]byte("type T = string;"), LanguageTypeScript, false)
			if tree != nil {
				tree.Close()
			}
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}
}
