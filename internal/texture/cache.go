package texture

import (
	"image"
	"path/filepath"
	"sync"

	"comic-lens-renderer/internal/logging"
)

// Resolver resolves a texture reference to a decoded image.
type Resolver interface {
	Resolve(name string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache. Relative names resolve against
// BaseDir.
type Cache struct {
	BaseDir string

	mu    sync.RWMutex
	items map[string]*cacheEntry
}

type cacheEntry struct {
	img *image.NRGBA // nil when the load failed
}

// NewCache creates a cache rooted at baseDir.
func NewCache(baseDir string) *Cache {
	return &Cache{
		BaseDir: baseDir,
		items:   make(map[string]*cacheEntry),
	}
}

// Resolve loads and caches a texture. Returns nil if it cannot be loaded;
// failures are cached too.
func (c *Cache) Resolve(name string) *image.NRGBA {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.BaseDir, path)
	}
	path = filepath.Clean(path)

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := Load(path)
	if err != nil {
		logging.Logger().Warn("texture unavailable", "path", path, "err", err)
	}

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img}
	c.mu.Unlock()

	return img
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
