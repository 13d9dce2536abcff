package cache

import (
	"context"
	"time"

	"builderclub-backend/internal/metrics"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

// Memo caches the result of a loader per key for a fixed TTL. Failed loads
// are not cached, and concurrent misses for one key share a single load.
type Memo[T any] struct {
	name  string
	items *ttlcache.Cache[string, T]
	group singleflight.Group
}

func NewMemo[T any](name string, ttl time.Duration) *Memo[T] {
	items := ttlcache.New[string, T](
		ttlcache.WithTTL[string, T](ttl),
		ttlcache.WithDisableTouchOnHit[string, T](),
	)
	return &Memo[T]{name: name, items: items}
}

// Start runs expired-entry cleanup until Stop is called.
func (m *Memo[T]) Start() {
	go m.items.Start()
}

func (m *Memo[T]) Stop() {
	m.items.Stop()
}

func (m *Memo[T]) Get(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if item := m.items.Get(key); item != nil {
		metrics.CacheHits.WithLabelValues(m.name).Inc()
		return item.Value(), nil
	}
	metrics.CacheMisses.WithLabelValues(m.name).Inc()

	v, err, _ := m.group.Do(key, func() (interface{}, error) {
		value, err := load(ctx)
		if err != nil {
			return value, err
		}
		m.items.Set(key, value, ttlcache.DefaultTTL)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Invalidate drops a cached key so the next Get reloads it.
func (m *Memo[T]) Invalidate(key string) {
	m.items.Delete(key)
}
