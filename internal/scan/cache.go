package scan

import "github.com/s2tools/s2ui/pkg/dbpf"

// GraphicsCache maps resource keys to graphic entries for one scan
// generation. It is populated once during a scan and read-only afterwards;
// a reload builds a fresh cache and swaps it wholesale so readers never
// observe a half-updated mapping.
type GraphicsCache struct {
	entries map[ResourceKey]*dbpf.Entry
}

// NewGraphicsCache returns an empty cache.
func NewGraphicsCache() *GraphicsCache {
	return &GraphicsCache{entries: make(map[ResourceKey]*dbpf.Entry)}
}

func (c *GraphicsCache) put(key ResourceKey, entry *dbpf.Entry) {
	c.entries[key] = entry
}

// Get returns the graphic entry for a key, if the scan found one.
func (c *GraphicsCache) Get(key ResourceKey) (*dbpf.Entry, bool) {
	entry, ok := c.entries[key]
	return entry, ok
}

// Len returns the number of cached graphics.
func (c *GraphicsCache) Len() int {
	return len(c.entries)
}
