package config

import "time"

// CacheConfig defines settings for the menu response cache.  The menu
// catalog is immutable for the process lifetime, so GET /v1/menu
// responses can be cached aggressively.  When Enabled is false or no
// Redis client is configured, caching is disabled.
type CacheConfig struct {
    Enabled      bool
    TTL          time.Duration // lifetime of a cache entry
    Prefix       string        // key namespace
    MaxBodyBytes int           // responses larger than this are not cached
}

// LoadCacheConfig reads the CACHE_* environment variables.
func LoadCacheConfig() CacheConfig {
    cfg := CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        TTL:          envDur("CACHE_TTL", 10*time.Minute),
        Prefix:       envStr("CACHE_PREFIX", "cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
    if cfg.TTL <= 0 {
        cfg.TTL = 10 * time.Minute
    }
    return cfg
}
