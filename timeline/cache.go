package timeline

import (
	"context"
	"time"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/l"
	"golang.org/x/sync/singleflight"
)

type cacheOptions struct {
	expiration time.Duration
	logger     l.Wrapper
}

type CacheOption func(o *cacheOptions)

// CacheExpirationOption drops entries d after they were stored. Without it entries live as long
// as the cache.
func CacheExpirationOption(d time.Duration) CacheOption {
	return func(o *cacheOptions) {
		o.expiration = d
	}
}

func CacheLoggerOption(logger l.Wrapper) CacheOption {
	return func(o *cacheOptions) {
		o.logger = logger
	}
}

// Cached is a Timeline that remembers the result of every distinct query interval.
type Cached[T any] struct {
	tl     Timeline[T]
	logger l.Wrapper

	items  *cache.Cache
	flight singleflight.Group
}

// Cache wraps tl so that repeated queries with structurally equal bounds are answered from
// memory. Failed evaluations are not remembered, and concurrent misses on the same bounds share
// one evaluation.
func Cache[T any](tl Timeline[T], options ...CacheOption) *Cached[T] {
	opts := &cacheOptions{
		expiration: cache.NoExpiration,
	}

	for _, o := range options {
		o(opts)
	}

	if opts.logger == nil {
		opts.logger = l.NewNopLoggerWrapper()
	}

	cleanupInterval := time.Duration(0)
	if opts.expiration > 0 {
		cleanupInterval = opts.expiration
	}

	return &Cached[T]{
		tl:     tl,
		logger: opts.logger.WithFields(l.StringField(l.ClsKey, "timelineCache")),
		items:  cache.New(opts.expiration, cleanupInterval),
	}
}

func (impl *Cached[T]) Evaluate(ctx context.Context, bounds interval.Interval) ([]T, error) {
	key := bounds.String()

	if v, ok := impl.items.Get(key); ok {
		// nolint:forcetypeassert
		return append([]T{}, v.([]T)...), nil
	}

	// The shared evaluation outlives any single caller; each caller still stops waiting on its own
	// cancellation.
	evalCtx := context.WithoutCancel(ctx)

	ch := impl.flight.DoChan(key, func() (interface{}, error) {
		ts, e := impl.tl.Evaluate(evalCtx, bounds)
		if e != nil {
			impl.logger.WithFields(l.ErrorField(e), l.StringField("bounds", key)).Error("evaluate failed")

			return nil, e
		}

		impl.items.Set(key, ts, cache.DefaultExpiration)

		impl.logger.WithFields(l.StringField("bounds", key), l.IntField("count", len(ts))).Debug("cached")

		return ts, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}

		// nolint:forcetypeassert
		return append([]T{}, r.Val.([]T)...), nil
	}
}

// Len returns the number of remembered query intervals.
func (impl *Cached[T]) Len() int {
	return impl.items.ItemCount()
}

func (impl *Cached[T]) Flush() {
	impl.items.Flush()
}
