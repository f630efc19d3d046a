package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"doppel/internal/twin/models"
	"doppel/pkg/domain"
	"doppel/pkg/platform/sentinel"
)

var (
	cacheGetDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "doppel_cache_get_duration_ms",
		Help:    "Latency of composite cache lookups in milliseconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50},
	})
)

const (
	// Redis key prefix for cached composites
	compositeKeyPrefix = "twin:zip:"
)

// RedisStore is a Redis-backed Store. This is the production-recommended
// implementation for distributed deployments where multiple instances should
// share the cache. Entries carry no TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed composite cache.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, zip domain.ZIPCode) (*models.CompositeResult, error) {
	start := time.Now()
	defer func() {
		cacheGetDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	raw, err := s.client.Get(ctx, compositeKeyPrefix+zip.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", zip, errors.Join(sentinel.ErrUnavailable, err))
	}

	var result models.CompositeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		// A corrupt entry behaves like a miss so the pipeline recomputes and
		// overwrites it.
		return nil, sentinel.ErrNotFound
	}
	return &result, nil
}

func (s *RedisStore) Put(ctx context.Context, zip domain.ZIPCode, result *models.CompositeResult) error {
	if result == nil {
		return fmt.Errorf("composite result is required")
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode composite: %w", err)
	}
	// No expiration: the whole value is replaced on every recompute.
	if err := s.client.Set(ctx, compositeKeyPrefix+zip.String(), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", zip, errors.Join(sentinel.ErrUnavailable, err))
	}
	return nil
}
