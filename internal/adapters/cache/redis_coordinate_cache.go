package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"ps1-lightcurve-service/internal/domain"
	"ps1-lightcurve-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "coord:"

type redisEntry struct {
	RA  float64 `json:"ra"`
	Dec float64 `json:"dec"`
}

// RedisCoordinateCache keeps name -> coordinate entries in Redis with a TTL.
// Expiry is left to Redis, so Prune is a no-op.
type RedisCoordinateCache struct {
	rc  *redis.Client
	ttl time.Duration
}

func NewRedisCoordinateCache(rc *redis.Client, ttl time.Duration) *RedisCoordinateCache {
	return &RedisCoordinateCache{rc: rc, ttl: ttl}
}

func (r *RedisCoordinateCache) GetMany(
	ctx context.Context,
	names []string,
) (_ map[string]domain.Coordinate, err error) {
	defer obs.Time(ctx, "coordinate.redis.GetMany")(&err)

	if r.rc == nil {
		return nil, errors.New("coordinate cache: redis client is nil")
	}

	uniq := uniqueKeys(names)
	if len(uniq) == 0 {
		return map[string]domain.Coordinate{}, nil
	}

	keys := make([]string, len(uniq))
	for i, n := range uniq {
		keys[i] = redisKeyPrefix + n
	}

	vals, err := r.rc.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get coordinate cache: redis mget: %w", err)
	}

	out := make(map[string]domain.Coordinate, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}

		var e redisEntry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("get coordinate cache: decode %q: %w", keys[i], err)
		}
		out[uniq[i]] = domain.Coordinate{RA: e.RA, Dec: e.Dec}
	}

	recordLookups("redis", len(out), len(uniq))
	return out, nil
}

func (r *RedisCoordinateCache) PutMany(ctx context.Context, results map[string]domain.Coordinate) error {
	if r.rc == nil {
		return errors.New("coordinate cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.rc.Pipeline()
	for name, c := range results {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("insert coordinate cache: empty name key")
		}

		b, err := json.Marshal(redisEntry{RA: c.RA, Dec: c.Dec})
		if err != nil {
			return fmt.Errorf("insert coordinate cache name=%q: %w", name, err)
		}
		pipe.Set(ctx, redisKeyPrefix+name, b, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert coordinate cache: redis pipeline: %w", err)
	}
	return nil
}

func (r *RedisCoordinateCache) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	return 0, nil
}
