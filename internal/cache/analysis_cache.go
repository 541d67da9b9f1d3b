package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/NikitHamal/flashy-astro-go/internal/astro"
)

// AnalysisCacheStats tracks cache performance counters.
type AnalysisCacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
}

// AnalysisCache caches completed calculations in Redis, keyed by a
// deterministic digest of the input chart.
type AnalysisCache struct {
	redis  *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	stats  AnalysisCacheStats
	prefix string
	logger *logrus.Logger
}

// NewAnalysisCache creates a Redis-backed analysis cache.
func NewAnalysisCache(redisClient *redis.Client, ttl time.Duration, logger *logrus.Logger) *AnalysisCache {
	if logger == nil {
		logger = logrus.New()
	}
	return &AnalysisCache{
		redis:  redisClient,
		ttl:    ttl,
		prefix: "ashtakavarga:",
		logger: logger,
	}
}

// CacheKey derives a stable digest for a chart and its options. Grahas are
// folded in canonical order so map iteration order never changes the key.
func CacheKey(positions astro.Positions, ascendantSign int, opts astro.Options) string {
	var b strings.Builder
	for _, graha := range astro.AllGrahas() {
		pos := positions[graha]
		fmt.Fprintf(&b, "%s:%d:%.4f|", graha, pos.Sign, pos.Degree)
	}
	fmt.Fprintf(&b, "asc:%d|shodhana:%t|kakshya:%t", ascendantSign, opts.IncludeShodhana, opts.IncludeKakshya)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Get retrieves a cached result by key.
func (c *AnalysisCache) Get(ctx context.Context, key string) (*astro.Result, bool) {
	data, err := c.redis.Get(ctx, c.prefix+key).Result()
	if err == redis.Nil {
		c.recordMiss()
		return nil, false
	}
	if err != nil {
		c.logger.WithError(err).Warn("Redis error reading analysis cache")
		c.recordMiss()
		return nil, false
	}

	var result astro.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.logger.WithError(err).Warn("Error deserializing cached analysis")
		c.recordMiss()
		return nil, false
	}

	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()
	return &result, true
}

// Set stores a result under the given key with the configured TTL.
func (c *AnalysisCache) Set(ctx context.Context, key string, result *astro.Result) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.WithError(err).Warn("Error serializing analysis for cache")
		return
	}

	if err := c.redis.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("Redis error writing analysis cache")
		return
	}

	c.mu.Lock()
	c.stats.Sets++
	c.mu.Unlock()
}

// Stats returns a snapshot of the cache counters.
func (c *AnalysisCache) Stats() AnalysisCacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Clear removes every cached analysis.
func (c *AnalysisCache) Clear(ctx context.Context) (int64, error) {
	var keys []string
	iter := c.redis.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("error scanning cache keys: %w", err)
	}

	if len(keys) == 0 {
		return 0, nil
	}

	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		return 0, fmt.Errorf("error clearing cache: %w", err)
	}

	c.logger.WithField("entries", len(keys)).Info("Cleared analysis cache")
	return int64(len(keys)), nil
}

func (c *AnalysisCache) recordMiss() {
	c.mu.Lock()
	c.stats.Misses++
	c.mu.Unlock()
}
