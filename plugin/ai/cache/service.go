package cache

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ServiceConfig configures the cache service.
type ServiceConfig struct {
	Capacity   int           // Maximum number of entries (default: 1000)
	DefaultTTL time.Duration // TTL for entries (default: 5 minutes)
}

// DefaultServiceConfig returns default cache service configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Capacity:   1000,
		DefaultTTL: 5 * time.Minute,
	}
}

// Service implements CacheService with LRU eviction and expiry.
type Service struct {
	lru *expirable.LRU[string, []byte]
}

// NewService creates a new cache service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Capacity <= 0 {
		cfg.Capacity = 1000
	}
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 5 * time.Minute
	}

	return &Service{
		lru: expirable.NewLRU[string, []byte](cfg.Capacity, nil, cfg.DefaultTTL),
	}
}

// Get retrieves a value from cache.
func (s *Service) Get(_ context.Context, key string) ([]byte, bool) {
	return s.lru.Get(key)
}

// Set stores a value in cache.
func (s *Service) Set(_ context.Context, key string, value []byte) error {
	s.lru.Add(key, value)
	return nil
}

// Invalidate invalidates cache entries matching the pattern.
func (s *Service) Invalidate(_ context.Context, pattern string) error {
	prefix, wildcard := strings.CutSuffix(pattern, "*")
	if !wildcard {
		s.lru.Remove(pattern)
		return nil
	}
	for _, key := range s.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.lru.Remove(key)
		}
	}
	return nil
}

// Size returns the number of entries in the cache.
func (s *Service) Size() int {
	return s.lru.Len()
}

// Clear removes all entries from the cache.
func (s *Service) Clear() {
	s.lru.Purge()
}

// Ensure Service implements CacheService
var _ CacheService = (*Service)(nil)
