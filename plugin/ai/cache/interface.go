// Package cache provides the cache service interface for the LLM fallback.
package cache

import "context"

// CacheService defines the cache service interface.
// Consumers: the LLM fallback delegate
type CacheService interface {
	// Get retrieves a value from cache.
	// Returns: value, whether it exists
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value in cache until the configured TTL expires.
	Set(ctx context.Context, key string, value []byte) error

	// Invalidate invalidates cache entries.
	// pattern: an exact key, or a prefix ending in * (fallback:llm:*)
	Invalidate(ctx context.Context, pattern string) error
}
