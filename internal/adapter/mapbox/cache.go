package mapbox

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
	"github.com/anantsinghal-found/natgas-pricevis/internal/observability"
)

// CachedLocator wraps a CentroidLocator with an in-memory LRU cache.
type CachedLocator struct {
	inner   domain.CentroidLocator
	cache   *lru.Cache[domain.RegionCode, domain.Geo]
	metrics *observability.Metrics
}

// NewCachedLocator creates a cache decorator around a locator.
func NewCachedLocator(inner domain.CentroidLocator, maxEntries int, metrics *observability.Metrics) (*CachedLocator, error) {
	cache, err := lru.New[domain.RegionCode, domain.Geo](maxEntries)
	if err != nil {
		return nil, err
	}
	return &CachedLocator{inner: inner, cache: cache, metrics: metrics}, nil
}

func (c *CachedLocator) Locate(ctx context.Context, code domain.RegionCode) (domain.Geo, error) {
	if geo, ok := c.cache.Get(code); ok {
		c.metrics.CentroidCache.WithLabelValues("hit").Inc()
		return geo, nil
	}
	c.metrics.CentroidCache.WithLabelValues("miss").Inc()

	geo, err := c.inner.Locate(ctx, code)
	if err != nil {
		return geo, err
	}
	// Empty results stay uncached so a later load can retry them.
	if geo != (domain.Geo{}) {
		c.cache.Add(code, geo)
	}
	return geo, nil
}
