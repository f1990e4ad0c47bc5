// Package cache provides a small generic LRU cache.
//
// texel uses it to memoise decoded history snapshots, so stepping back and
// forth over the same entries does not decode the same bytes twice.
//
//	c := cache.New[string, int](16)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation
// (it contains a mutex).
package cache
