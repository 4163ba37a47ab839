package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gasRecord(code RegionCode, v float64) JoinedRecord {
	return JoinedRecord{Region: code, Values: map[Metric]float64{MetricNaturalGas: v}}
}

func TestPlace_CrowdedWithKnownCentroid(t *testing.T) {
	l := NewLabelLayout(MetricNaturalGas)

	ps := l.Place([]JoinedRecord{gasRecord("CT", 42)})

	require.Len(t, ps, 1)
	assert.Equal(t, Geo{Lat: 44.0, Lon: -69.5}, ps[0].Anchor)
	require.NotNil(t, ps[0].Leader)
	assert.Equal(t, Geo{Lat: 41.6, Lon: -72.7}, ps[0].Leader.From)
	assert.Equal(t, ps[0].Anchor, ps[0].Leader.To)
}

func TestPlace_CrowdedWithoutCentroid(t *testing.T) {
	l := NewLabelLayout(MetricNaturalGas)

	ps := l.Place([]JoinedRecord{gasRecord("ME", 42)})

	require.Len(t, ps, 1)
	assert.Equal(t, Geo{Lat: 49.0, Lon: -62.0}, ps[0].Anchor)
	assert.Nil(t, ps[0].Leader)

	r := BuildRender(nil, ps, nil, nil, nil)
	assert.Len(t, r.Labels, 1)
	assert.Empty(t, r.Lines)
}

func TestPlace_DefaultPosition(t *testing.T) {
	l := NewLabelLayout(MetricNaturalGas)

	ps := l.Place([]JoinedRecord{gasRecord("TX", 8)})

	require.Len(t, ps, 1)
	assert.Equal(t, DefaultPositions()["TX"], ps[0].Anchor)
	assert.Nil(t, ps[0].Leader)
	assert.Equal(t, 8.0, ps[0].Value)
}

func TestPlace_SkipsNonFiniteAndMissing(t *testing.T) {
	l := NewLabelLayout(MetricNaturalGas)

	ps := l.Place([]JoinedRecord{
		gasRecord("TX", math.NaN()),
		gasRecord("CA", math.Inf(1)),
		{Region: "OH", Values: map[Metric]float64{MetricElectricity: 80}},
		gasRecord("UT", 5),
	})

	require.Len(t, ps, 1)
	assert.Equal(t, RegionCode("UT"), ps[0].Region)
}

func TestPlace_Deterministic(t *testing.T) {
	l := NewLabelLayout(MetricNaturalGas)
	a := []JoinedRecord{gasRecord("TX", 1), gasRecord("CT", 2), gasRecord("AL", 3)}
	b := []JoinedRecord{a[2], a[0], a[1]}

	assert.Equal(t, l.Place(a), l.Place(b))
	assert.Equal(t, RegionCode("AL"), l.Place(b)[0].Region)
}

func TestPositionTables(t *testing.T) {
	assert.Len(t, CrowdedLabelPositions(), 11)
	assert.Len(t, LeaderCentroids(), 10)
	assert.NotContains(t, LeaderCentroids(), RegionCode("ME"))
	assert.Len(t, DefaultPositions(), 51)
	for code := range DefaultPositions() {
		assert.True(t, IsRegion(code), code)
	}

	c := CrowdedLabelPositions()
	delete(c, "ME")
	assert.Contains(t, CrowdedLabelPositions(), RegionCode("ME"))
}

func TestMergePositions(t *testing.T) {
	base := map[RegionCode]Geo{"CT": {Lat: 1, Lon: 1}}
	merged := MergePositions(base, map[RegionCode]Geo{"CT": {Lat: 2, Lon: 2}, "ME": {Lat: 3, Lon: 3}})

	assert.Equal(t, Geo{Lat: 2, Lon: 2}, merged["CT"])
	assert.Equal(t, Geo{Lat: 3, Lon: 3}, merged["ME"])
	assert.Equal(t, Geo{Lat: 1, Lon: 1}, base["CT"])
}
