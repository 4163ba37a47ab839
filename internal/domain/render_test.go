package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRender(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	c := Classifier{Mode: ModeThreeWay, Thresholds: DefaultThresholds()}
	records := c.ClassifyAll([]JoinedRecord{
		record("CA", 39.48, 120),
		{Region: "CT", Values: map[Metric]float64{MetricNaturalGas: 20}},
		record("TX", 10, 90),
	})
	placements := NewLabelLayout(MetricNaturalGas).Place(records)
	markers := []MarkerCommand{{Region: "TX", Count: 4}}

	r := BuildRender(records, placements, markers, nil, nil)

	assert.Equal(t, fixed, r.GeneratedAt)
	require.Len(t, r.Fills, 3)
	assert.Equal(t, "CA: Gas $39.48/MWh, Elec $120.00/MWh", r.Fills[0].Hover)
	assert.Equal(t, "#2ca02c", r.Fills[0].Color)
	assert.Equal(t, "#7f7f7f", r.Fills[1].Color)
	assert.Equal(t, "#d62728", r.Fills[2].Color)
	assert.Equal(t, DefaultPositions()["TX"], r.Fills[2].Anchor)

	require.Len(t, r.Labels, 3)
	assert.Equal(t, "CA: $39.48", r.Labels[0].Text)
	require.Len(t, r.Lines, 1)
	assert.Equal(t, RegionCode("CT"), r.Lines[0].Region)
	assert.Equal(t, markers, r.Markers)
}

func TestFormatDollars_GroupsThousands(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatDollars(1234.5))
	assert.Equal(t, "$0.00", FormatDollars(0))
}

func TestPalette_Fallback(t *testing.T) {
	p := Palette{CategoryHigh: "#000000"}
	assert.Equal(t, "#000000", p.Color(CategoryHigh))
	assert.Equal(t, fallbackColor, p.Color(CategoryMixed))
}

func TestClassifierTitle(t *testing.T) {
	c := Classifier{Thresholds: DefaultThresholds()}
	assert.Equal(t,
		"Regional energy prices (two-way; electricity > $105.00/MWh, natural_gas > $30.00/MWh)",
		c.Title())
}
