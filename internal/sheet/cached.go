package sheet

import (
	"context"
	"time"

	"github.com/vpetrenko/specsheet/internal/cache"
	"github.com/vpetrenko/specsheet/internal/metrics"
	"github.com/vpetrenko/specsheet/internal/model"
)

// identified is implemented by sources with a stable store identifier.
type identified interface {
	ID() string
}

// CachedSource wraps a Source with a short-TTL record cache. Reads hit
// the upstream store only when the cached copy has expired; Append
// writes through and drops the table's cached entry so the next read
// sees the new row.
type CachedSource struct {
	upstream Source
	cache    cache.Cache
	ttl      time.Duration
	storeID  string
}

// NewCachedSource wraps upstream with the given cache and TTL.
func NewCachedSource(upstream Source, c cache.Cache, ttl time.Duration) *CachedSource {
	storeID := "source"
	if id, ok := upstream.(identified); ok {
		storeID = id.ID()
	}
	return &CachedSource{
		upstream: upstream,
		cache:    c,
		ttl:      ttl,
		storeID:  storeID,
	}
}

// Records returns the cached rows when fresh, fetching from upstream
// otherwise. Fetch errors are never cached.
func (s *CachedSource) Records(ctx context.Context, table string) ([]model.Record, error) {
	key := cache.Key(s.storeID, table)

	if records, found := s.cache.Get(key); found {
		metrics.RowCacheHits.Inc()
		return records, nil
	}
	metrics.RowCacheMisses.Inc()

	records, err := s.upstream.Records(ctx, table)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, records, s.ttl)
	return records, nil
}

// Append writes through to upstream and invalidates the table's cache
// entry.
func (s *CachedSource) Append(ctx context.Context, table string, rec model.Record) error {
	if err := s.upstream.Append(ctx, table, rec); err != nil {
		return err
	}
	s.cache.Delete(cache.Key(s.storeID, table))
	return nil
}
