package helpers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"ops-dashboard/internal/metrics"
)

// CachedList serves key from redis when present and otherwise calls load,
// storing the result for ttl. A nil client or a zero ttl disables caching.
// Redis errors never fail the call.
func CachedList[T any](
	ctx context.Context,
	rdb *redis.Client,
	m *metrics.Metrics,
	key string,
	ttl time.Duration,
	load func(context.Context) ([]T, error),
) ([]T, error) {
	if rdb == nil || ttl <= 0 {
		return load(ctx)
	}

	if cached, err := rdb.Get(ctx, key).Bytes(); err == nil {
		var items []T
		if json.Unmarshal(cached, &items) == nil {
			observe(m, "hit")
			return items, nil
		}
	}
	observe(m, "miss")

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		if err := rdb.Set(ctx, key, data, ttl).Err(); err != nil {
			log.WithError(err).WithField("key", key).Debug("cache write failed")
		}
	}
	return items, nil
}

func observe(m *metrics.Metrics, result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}
