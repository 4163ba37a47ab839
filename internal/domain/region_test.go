package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionCodes_RoundTrip(t *testing.T) {
	codes := RegionCodes()
	require.Len(t, codes, 51)

	r := DefaultResolver()
	for _, code := range codes {
		name, ok := RegionName(code)
		require.True(t, ok, "no name for %s", code)

		got, ok := r.Resolve(name)
		assert.True(t, ok, name)
		assert.Equal(t, code, got, name)

		got, ok = r.Resolve(name + GasLabelSuffix)
		assert.True(t, ok, name)
		assert.Equal(t, code, got, name)
	}
}

func TestResolve(t *testing.T) {
	r := DefaultResolver()

	tests := []struct {
		name   string
		label  string
		want   RegionCode
		wantOK bool
	}{
		{"bare name", "California", "CA", true},
		{"gas column", "Texas" + GasLabelSuffix, "TX", true},
		{"multi-word name", "District of Columbia" + GasLabelSuffix, "DC", true},
		{"nevada misspelling", "Nevada Natural Gas Indutrial Price (Dollars per Thousand Cubic Feet)", "NV", true},
		{"nevada misspelling without unit", "Nevada Natural Gas Indutrial Price", "NV", true},
		{"national column", NationalGasColumn, "", false},
		{"case sensitive", "california", "", false},
		{"unknown", "Puerto Rico", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.label)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_ZeroValueResolverKeepsSuffix(t *testing.T) {
	var r Resolver
	_, ok := r.Resolve("Ohio" + GasLabelSuffix)
	assert.False(t, ok)

	code, ok := r.Resolve("Ohio")
	assert.True(t, ok)
	assert.Equal(t, RegionCode("OH"), code)
}

func TestStripSuffix(t *testing.T) {
	assert.Equal(t, "Utah", StripSuffix("Utah"+GasLabelSuffix, GasLabelSuffix))
	assert.Equal(t, "Utah price", StripSuffix("Utah price", GasLabelSuffix))
	assert.Equal(t, "Utah", StripSuffix("Utah (x)", "", " (y)", " (x)"))
}

func TestIsRegion(t *testing.T) {
	assert.True(t, IsRegion("DC"))
	assert.False(t, IsRegion("PR"))
	assert.False(t, IsRegion("ca"))
}
