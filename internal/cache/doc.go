// Package cache provides a generic memoization cache for resource resolution.
//
// Stacks resolve items (image paths, texture descriptors) into textures, and
// the resolution is expensive: file I/O, decoding, format conversion, GPU
// upload. Cache memoizes those results keyed by the original item.
//
//	c := cache.New[string, *Texture](0) // unbounded
//	tex, err := c.GetOrCreate(path, func() (*Texture, error) {
//	    return loadTexture(path)
//	})
//
// The default mode is unbounded: once a path resolves, it stays resolved for
// the lifetime of the cache. A positive limit turns on least-recently-used
// eviction for memory-constrained callers.
//
// # Thread Safety
//
// Cache is safe for concurrent use. It must not be copied after creation
// (it contains a mutex).
package cache
