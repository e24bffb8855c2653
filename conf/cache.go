package conf

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

// cache holds parse results keyed by the 128-bit hash of their source.
// Documents are immutable, so every caller may share the cached instance.
var cache sync.Map // xxh3.Uint128 -> *cached

type cached struct {
	once sync.Once
	doc  *Document
	err  error
}

func parseCached(ctx context.Context, src string, o options) (*Document, error) {
	key := xxh3.HashString128(src)

	v, hit := cache.LoadOrStore(key, new(cached))
	c, _ := v.(*cached)

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("key", strconv.FormatUint(key.Hi, 36)+strconv.FormatUint(key.Lo, 36)),
		slog.Bool("hit", hit))

	c.once.Do(func() { c.doc, c.err = parseLogged(ctx, src, o) })

	return c.doc, c.err
}

// ClearCache discards all cached parse results.
func ClearCache() { cache.Clear() }
