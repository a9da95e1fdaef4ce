package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// FileCache provides read access to source files using memory-mapped files.
//
// Files are mapped lazily on first access and kept mapped until Close().
// Only accessed pages are loaded into RAM, so mapping a whole source tree
// is cheap. If mmap fails for a file (e.g. special filesystems), the cache
// falls back to os.ReadFile for that file.
//
// Thread-safe: parallel reads, exclusive loads (sync.RWMutex).
type FileCache struct {
	mu       sync.RWMutex
	files    map[string]*mappedFile
	maxFiles int
	logger   *slog.Logger

	hits         int
	misses       int
	mmapFailures int
}

type mappedFile struct {
	file *os.File
	mm   mmap.MMap
	data []byte // mm, or fallback buffer when mmap failed
}

// DefaultMaxCachedFiles bounds the number of open mappings so a huge glob
// cannot exhaust file descriptors.
const DefaultMaxCachedFiles = 10000

// NewFileCache creates a file cache. maxFiles <= 0 applies the default limit.
func NewFileCache(maxFiles int, logger *slog.Logger) *FileCache {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxCachedFiles
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileCache{
		files:    make(map[string]*mappedFile),
		maxFiles: maxFiles,
		logger:   logger,
	}
}

// Get returns the file's contents, mapping it on first access.
// The returned slice is valid until Close() and must not be modified.
func (c *FileCache) Get(filePath string) ([]byte, error) {
	c.mu.RLock()
	mf, ok := c.files[filePath]
	c.mu.RUnlock()

	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return mf.data, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check: another goroutine may have loaded it.
	if mf, ok = c.files[filePath]; ok {
		c.hits++
		return mf.data, nil
	}

	if len(c.files) >= c.maxFiles {
		return nil, fmt.Errorf("file cache limit reached (%d files)", c.maxFiles)
	}

	c.misses++
	mf, err := c.load(filePath)
	if err != nil {
		return nil, err
	}
	c.files[filePath] = mf
	return mf.data, nil
}

func (c *FileCache) load(filePath string) (*mappedFile, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filePath, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", filePath, err)
	}

	// Zero-length files cannot be mapped; serve an empty buffer.
	if info.Size() == 0 {
		f.Close()
		return &mappedFile{data: []byte{}}, nil
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		c.mmapFailures++
		c.logger.Debug("mmap failed, falling back to ReadFile",
			"file", filePath, "error", err)
		f.Close()
		data, rerr := os.ReadFile(filePath)
		if rerr != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filePath, rerr)
		}
		return &mappedFile{data: data}, nil
	}

	return &mappedFile{file: f, mm: mm, data: mm}, nil
}

// Size returns the number of currently cached files.
func (c *FileCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.files)
}

// Stats returns hit/miss/fallback counters for observability.
func (c *FileCache) Stats() FileCacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return FileCacheStats{
		CachedFiles:  len(c.files),
		Hits:         c.hits,
		Misses:       c.misses,
		MmapFailures: c.mmapFailures,
	}
}

// FileCacheStats holds cache metrics.
type FileCacheStats struct {
	CachedFiles  int
	Hits         int
	Misses       int
	MmapFailures int
}

// Close unmaps all files and releases file descriptors.
// Contents returned by Get become invalid after Close.
func (c *FileCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for path, mf := range c.files {
		if mf.mm != nil {
			if err := mf.mm.Unmap(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("failed to unmap %s: %w", path, err)
			}
		}
		if mf.file != nil {
			mf.file.Close()
		}
	}
	c.files = make(map[string]*mappedFile)
	return firstErr
}
