// Package cache provides a bounded LRU cache used by the pure-Go engine for
// glyph outlines.
//
//	c := cache.New[glyphKey, []font.Segment](4096)
//	segs := c.GetOrCreate(key, func() []font.Segment { return load(key) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
