package config

import "time"

// RateLimitConfig drives the Redis-backed token bucket applied to the
// mutating guest and admin endpoints.  When Enabled is false or no
// Redis client could be created, the limiter middleware becomes a
// pass-through.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int           // bucket size per key
    RefillTokens   int           // tokens added every RefillInterval
    RefillInterval time.Duration // refill cadence
    TTL            time.Duration // idle lifetime of a bucket in Redis
    Prefix         string        // key namespace
}

// LoadRateLimitConfig reads the RATE_LIMIT_* environment variables,
// clamping nonsense values to safe minimums.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", true),
        Capacity:       envInt("RATE_LIMIT_CAPACITY", 30),
        RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
        Prefix:         envStr("RATE_LIMIT_PREFIX", "rl"),
    }
    if cfg.Capacity < 1 {
        cfg.Capacity = 1
    }
    if cfg.RefillTokens < 1 {
        cfg.RefillTokens = 1
    }
    if cfg.RefillInterval <= 0 {
        cfg.RefillInterval = time.Second
    }
    if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
        cfg.TTL = minTTL
    }
    return cfg
}
