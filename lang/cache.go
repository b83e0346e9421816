package lang

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

// globalCache stores prepared notations keyed by the xxh3 hash of their
// source text.
var globalCache sync.Map

// state tracks the compilation of one notation.
type state struct {
	once     sync.Once
	notation string
	prepared *Prepared
	err      error
}

// cacheKey returns the cache key of notation.
func cacheKey(notation string) string {
	return strconv.FormatUint(xxh3.HashString(notation), 36)
}

// prepareCached prepares notation at most once per process, sharing the
// result (or the failure) with every later caller.
func prepareCached(ctx context.Context, notation string, o options) (*Prepared, error) {
	key := cacheKey(notation)

	entry := &state{notation: notation}
	value, cacheHit := globalCache.LoadOrStore(key, entry)

	cached, ok := value.(*state)
	if !ok {
		return nil, ErrInternal.
			With(slog.String("issue", "invalid entry type in cache"))
	}

	o.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("key", key),
		slog.Bool("cache_hit", cacheHit),
	)

	// Hash collision: the slot belongs to some other notation.
	if cached.notation != notation {
		o.logger.TraceContext(
			ctx,
			"cache bypass",
			slog.String("key", key),
			slog.String("cached", cached.notation),
		)

		return prepare(ctx, notation, o)
	}

	cached.once.Do(func() {
		cached.prepared, cached.err = prepare(ctx, notation, o)
	})

	return cached.prepared, cached.err
}

// CacheLen returns the number of notations held in the compile cache.
func CacheLen() int {
	n := 0

	globalCache.Range(func(any, any) bool {
		n++

		return true
	})

	return n
}

// ClearCache removes all cached compilations.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
