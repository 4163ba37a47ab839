package mapbox

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
)

type countingLocator struct {
	calls  int
	result domain.Geo
	err    error
}

func (m *countingLocator) Locate(_ context.Context, _ domain.RegionCode) (domain.Geo, error) {
	m.calls++
	return m.result, m.err
}

func TestCachedLocator_CacheHit(t *testing.T) {
	inner := &countingLocator{result: domain.Geo{Lat: 39, Lon: -75.5}}
	cached, err := NewCachedLocator(inner, 10, testMetrics())
	require.NoError(t, err)

	g1, err := cached.Locate(context.Background(), "DE")
	require.NoError(t, err)
	g2, err := cached.Locate(context.Background(), "DE")
	require.NoError(t, err)

	assert.Equal(t, g1, g2)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedLocator_EmptyNotCached(t *testing.T) {
	inner := &countingLocator{}
	cached, err := NewCachedLocator(inner, 10, testMetrics())
	require.NoError(t, err)

	_, _ = cached.Locate(context.Background(), "DE")
	_, _ = cached.Locate(context.Background(), "DE")

	assert.Equal(t, 2, inner.calls)
}

func TestCachedLocator_ErrorNotCached(t *testing.T) {
	inner := &countingLocator{err: errors.New("timeout")}
	cached, err := NewCachedLocator(inner, 10, testMetrics())
	require.NoError(t, err)

	_, err = cached.Locate(context.Background(), "DE")
	require.Error(t, err)

	inner.err = nil
	inner.result = domain.Geo{Lat: 39, Lon: -75.5}
	geo, err := cached.Locate(context.Background(), "DE")
	require.NoError(t, err)
	assert.Equal(t, domain.Geo{Lat: 39, Lon: -75.5}, geo)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedLocator_Eviction(t *testing.T) {
	inner := &countingLocator{result: domain.Geo{Lat: 1, Lon: 1}}
	cached, err := NewCachedLocator(inner, 2, testMetrics())
	require.NoError(t, err)

	ctx := context.Background()
	_, _ = cached.Locate(ctx, "DE")
	_, _ = cached.Locate(ctx, "RI")
	_, _ = cached.Locate(ctx, "CT") // evicts DE
	assert.Equal(t, 3, inner.calls)

	_, _ = cached.Locate(ctx, "RI")
	assert.Equal(t, 3, inner.calls)

	_, _ = cached.Locate(ctx, "DE")
	assert.Equal(t, 4, inner.calls)
}

func TestNewCachedLocator_InvalidSize(t *testing.T) {
	_, err := NewCachedLocator(&countingLocator{}, 0, testMetrics())
	assert.Error(t, err)
}
