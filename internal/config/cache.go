package config

import (
	"os"
	"strconv"
	"time"
)

// CacheConfig defines settings for the movie catalogue read-through cache.
// When Enabled is false or no Redis client is configured, every request reads
// the database.  TTL bounds how stale a catalogue may be; availability is
// always recomputed against the current clock so only the raw rows are cached.
// Prefix namespaces the keys and MaxBytes skips caching oversized payloads.
type CacheConfig struct {
	Enabled  bool
	TTL      time.Duration
	Prefix   string
	MaxBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.  Defaults
// are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:  getenv("CACHE_ENABLED", "true") == "true",
		TTL:      parseDur(getenv("CACHE_TTL", "30s")),
		Prefix:   getenv("CACHE_PREFIX", "cache"),
		MaxBytes: atoi(getenv("CACHE_MAX_BYTES", "1048576")),
	}
}

// Helper functions reused from redis.go
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
