package font

import (
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pyhub-apps/pdftext-golang/pkg/objects"
)

// Cache holds the fonts of one document, keyed by object reference. It is
// safe for concurrent use by the pages of that document.
type Cache struct {
	mu    sync.Mutex
	fonts map[string]Font
}

// NewCache creates an empty font cache
func NewCache() *Cache {
	return &Cache{fonts: make(map[string]Font)}
}

// Load returns the cached font for obj, loading it on first use. A nil
// cache loads without caching.
func (c *Cache) Load(r objects.Resolver, obj types.Object) Font {
	if c == nil {
		return Load(r, obj)
	}
	key, ok := objects.Key(obj)
	if !ok {
		return Load(r, obj)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.fonts[key]; ok {
		return f
	}
	f := Load(r, obj)
	c.fonts[key] = f
	return f
}

// Len returns the number of cached fonts
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fonts)
}
