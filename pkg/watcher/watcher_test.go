package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsSourceFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entry.ts")
	require.NoError(t, os.WriteFile(path, []byte("interface A {}"), 0o644))

	changes := make(chan string, 8)
	w, err := New(func(p string) { changes <- p }, Options{DebounceMs: 20}, nil)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Watch([]string{path}))

	require.NoError(t, os.WriteFile(path, []byte("interface A { a: string; }"), 0o644))

	select {
	case changed := <-changes:
		assert.Equal(t, path, changed)
	case <-time.After(3 * time.Second):
		t.Fatal("no change callback within 3s")
	}
}

func TestWatcher_IgnoresNonSourceFiles(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "entry.ts")
	require.NoError(t, os.WriteFile(source, []byte("interface A {}"), 0o644))

	changes := make(chan string, 8)
	w, err := New(func(p string) { changes <- p }, Options{DebounceMs: 20}, nil)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Watch([]string{source}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case changed := <-changes:
		t.Fatalf("unexpected callback for %s", changed)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_DebouncesRapidWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entry.ts")
	require.NoError(t, os.WriteFile(path, []byte("interface A {}"), 0o644))

	changes := make(chan string, 32)
	w, err := New(func(p string) { changes <- p }, Options{DebounceMs: 150}, nil)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Watch([]string{path}))

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("interface A {}"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("no change callback within 3s")
	}

	select {
	case <-changes:
		t.Fatal("rapid writes produced more than one callback")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := New(func(string) {}, DefaultOptions(), nil)
	require.NoError(t, err)

	require.NoError(t, w.Watch(nil))
	require.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
