package domain

import (
	"sort"
	"strings"
)

// RegionCode is the two-letter postal code of one of the 51 tracked regions.
type RegionCode string

// regionNames maps the source spelling of each region to its code.
var regionNames = map[string]RegionCode{
	"Alabama": "AL", "Alaska": "AK", "Arizona": "AZ", "Arkansas": "AR", "California": "CA",
	"Colorado": "CO", "Connecticut": "CT", "Delaware": "DE", "District of Columbia": "DC",
	"Florida": "FL", "Georgia": "GA", "Hawaii": "HI", "Idaho": "ID", "Illinois": "IL",
	"Indiana": "IN", "Iowa": "IA", "Kansas": "KS", "Kentucky": "KY", "Louisiana": "LA",
	"Maine": "ME", "Maryland": "MD", "Massachusetts": "MA", "Michigan": "MI", "Minnesota": "MN",
	"Mississippi": "MS", "Missouri": "MO", "Montana": "MT", "Nebraska": "NE", "Nevada": "NV",
	"New Hampshire": "NH", "New Jersey": "NJ", "New Mexico": "NM", "New York": "NY",
	"North Carolina": "NC", "North Dakota": "ND", "Ohio": "OH", "Oklahoma": "OK", "Oregon": "OR",
	"Pennsylvania": "PA", "Rhode Island": "RI", "South Carolina": "SC", "South Dakota": "SD",
	"Tennessee": "TN", "Texas": "TX", "Utah": "UT", "Vermont": "VT", "Virginia": "VA",
	"Washington": "WA", "West Virginia": "WV", "Wisconsin": "WI", "Wyoming": "WY",
}

// codeNames is the inverse of regionNames, built once at init.
var codeNames = func() map[RegionCode]string {
	m := make(map[RegionCode]string, len(regionNames))
	for name, code := range regionNames {
		m[code] = name
	}
	return m
}()

// labelOverrides matches known malformed source labels by prefix. The EIA
// gas workbook misspells "Industrial" in the Nevada column.
var labelOverrides = []struct {
	prefix string
	code   RegionCode
}{
	{prefix: "Nevada Natural Gas Indutrial Price", code: "NV"},
}

// GasLabelSuffix is appended to every region name in the gas workbook headers.
const GasLabelSuffix = " Natural Gas Industrial Price (Dollars per Thousand Cubic Feet)"

// NationalGasColumn is the US aggregate column of the gas workbook.
const NationalGasColumn = "United States" + GasLabelSuffix

// Resolver maps free-text region labels to canonical codes. The zero value
// resolves bare region names only.
type Resolver struct {
	// Suffixes are stripped (first match wins) before the name lookup.
	Suffixes []string
}

// DefaultResolver strips the gas column suffix and otherwise accepts bare names.
func DefaultResolver() Resolver {
	return Resolver{Suffixes: []string{GasLabelSuffix}}
}

// Resolve returns the region code for label, or false when it is unknown.
func (r Resolver) Resolve(label string) (RegionCode, bool) {
	if code, ok := MatchOverride(label); ok {
		return code, true
	}
	return LookupName(StripSuffix(label, r.Suffixes...))
}

// MatchOverride checks label against the table of known malformed labels.
func MatchOverride(label string) (RegionCode, bool) {
	for _, o := range labelOverrides {
		if strings.HasPrefix(label, o.prefix) {
			return o.code, true
		}
	}
	return "", false
}

// StripSuffix removes the first of suffixes that label ends with. The label
// is returned unchanged when none match.
func StripSuffix(label string, suffixes ...string) string {
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(label, s) {
			return strings.TrimSuffix(label, s)
		}
	}
	return label
}

// LookupName does an exact, case-sensitive lookup in the region name table.
func LookupName(name string) (RegionCode, bool) {
	code, ok := regionNames[name]
	return code, ok
}

// RegionName returns the source spelling for code.
func RegionName(code RegionCode) (string, bool) {
	name, ok := codeNames[code]
	return name, ok
}

// RegionCodes returns all 51 codes in ascending order.
func RegionCodes() []RegionCode {
	codes := make([]RegionCode, 0, len(codeNames))
	for code := range codeNames {
		codes = append(codes, code)
	}
	sortCodes(codes)
	return codes
}

// IsRegion reports whether code is one of the canonical codes.
func IsRegion(code RegionCode) bool {
	_, ok := codeNames[code]
	return ok
}

func sortCodes(codes []RegionCode) {
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
}
