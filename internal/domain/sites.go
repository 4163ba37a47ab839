package domain

import (
	"fmt"
	"math"
)

// SiteMarkers sums site counts per region and returns one marker per region
// with a positive total and a known position, sorted by region code.
// Unresolved labels are skipped.
func SiteMarkers(counts []SiteCount, resolver Resolver, positions map[RegionCode]Geo) []MarkerCommand {
	totals := make(map[RegionCode]int)
	for _, c := range counts {
		code, ok := resolver.Resolve(c.RegionLabel)
		if !ok {
			continue
		}
		totals[code] += c.Companies
	}

	codes := make([]RegionCode, 0, len(totals))
	for code, n := range totals {
		if n <= 0 {
			continue
		}
		if _, ok := positions[code]; !ok {
			continue
		}
		codes = append(codes, code)
	}
	sortCodes(codes)

	markers := make([]MarkerCommand, 0, len(codes))
	for _, code := range codes {
		n := totals[code]
		markers = append(markers, MarkerCommand{
			Region: code,
			At:     positions[code],
			Count:  n,
			Radius: MarkerRadius(n),
			Text:   fmt.Sprintf("%s: %d industrial sites", code, n),
		})
	}
	return markers
}

// MarkerRadius scales marker area with the site count.
func MarkerRadius(count int) float64 {
	if count <= 0 {
		return 0
	}
	return 3 + 2*math.Sqrt(float64(count))
}
