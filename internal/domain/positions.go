package domain

var crowdedLabelPositions = map[RegionCode]Geo{
	"ME": {Lat: 49.0, Lon: -62.0},
	"NH": {Lat: 48.0, Lon: -63.5},
	"VT": {Lat: 47.0, Lon: -65.0},
	"MA": {Lat: 46.0, Lon: -66.5},
	"RI": {Lat: 45.0, Lon: -68.0},
	"CT": {Lat: 44.0, Lon: -69.5},
	"NY": {Lat: 43.0, Lon: -71.0},
	"NJ": {Lat: 42.0, Lon: -72.5},
	"DE": {Lat: 41.0, Lon: -74.0},
	"MD": {Lat: 40.0, Lon: -75.5},
	"DC": {Lat: 39.0, Lon: -77.0},
}

// Maine is intentionally missing.
var leaderCentroids = map[RegionCode]Geo{
	"CT": {Lat: 41.6, Lon: -72.7},
	"DE": {Lat: 38.9, Lon: -75.5},
	"DC": {Lat: 38.9, Lon: -77.0},
	"MD": {Lat: 39.0, Lon: -76.7},
	"MA": {Lat: 42.3, Lon: -71.8},
	"NH": {Lat: 43.7, Lon: -71.6},
	"NJ": {Lat: 40.1, Lon: -74.7},
	"RI": {Lat: 41.6, Lon: -71.5},
	"VT": {Lat: 44.0, Lon: -72.7},
	"NY": {Lat: 43.0, Lon: -75.0},
}

var defaultPositions = map[RegionCode]Geo{
	"AL": {Lat: 32.8, Lon: -86.8}, "AK": {Lat: 64.0, Lon: -152.0}, "AZ": {Lat: 34.3, Lon: -111.7},
	"AR": {Lat: 34.9, Lon: -92.4}, "CA": {Lat: 37.2, Lon: -119.5}, "CO": {Lat: 39.0, Lon: -105.5},
	"CT": {Lat: 41.6, Lon: -72.7}, "DE": {Lat: 38.9, Lon: -75.5}, "DC": {Lat: 38.9, Lon: -77.0},
	"FL": {Lat: 28.6, Lon: -82.4}, "GA": {Lat: 32.7, Lon: -83.4}, "HI": {Lat: 20.8, Lon: -156.3},
	"ID": {Lat: 44.4, Lon: -114.6}, "IL": {Lat: 40.0, Lon: -89.2}, "IN": {Lat: 39.9, Lon: -86.3},
	"IA": {Lat: 42.1, Lon: -93.5}, "KS": {Lat: 38.5, Lon: -98.4}, "KY": {Lat: 37.5, Lon: -85.3},
	"LA": {Lat: 31.1, Lon: -92.0}, "ME": {Lat: 45.4, Lon: -69.2}, "MD": {Lat: 39.0, Lon: -76.7},
	"MA": {Lat: 42.3, Lon: -71.8}, "MI": {Lat: 44.3, Lon: -85.4}, "MN": {Lat: 46.3, Lon: -94.3},
	"MS": {Lat: 32.7, Lon: -89.7}, "MO": {Lat: 38.4, Lon: -92.5}, "MT": {Lat: 47.0, Lon: -109.6},
	"NE": {Lat: 41.5, Lon: -99.8}, "NV": {Lat: 39.3, Lon: -116.6}, "NH": {Lat: 43.7, Lon: -71.6},
	"NJ": {Lat: 40.1, Lon: -74.7}, "NM": {Lat: 34.4, Lon: -106.1}, "NY": {Lat: 43.0, Lon: -75.0},
	"NC": {Lat: 35.6, Lon: -79.4}, "ND": {Lat: 47.5, Lon: -100.5}, "OH": {Lat: 40.3, Lon: -82.8},
	"OK": {Lat: 35.6, Lon: -97.5}, "OR": {Lat: 43.9, Lon: -120.6}, "PA": {Lat: 40.9, Lon: -77.8},
	"RI": {Lat: 41.6, Lon: -71.5}, "SC": {Lat: 33.9, Lon: -80.9}, "SD": {Lat: 44.4, Lon: -100.2},
	"TN": {Lat: 35.9, Lon: -86.4}, "TX": {Lat: 31.5, Lon: -99.3}, "UT": {Lat: 39.3, Lon: -111.7},
	"VT": {Lat: 44.0, Lon: -72.7}, "VA": {Lat: 37.5, Lon: -78.9}, "WA": {Lat: 47.4, Lon: -120.5},
	"WV": {Lat: 38.6, Lon: -80.6}, "WI": {Lat: 44.6, Lon: -89.9}, "WY": {Lat: 43.0, Lon: -107.6},
}

// CrowdedLabelPositions returns the staggered off-shore label anchors for
// regions too small to hold their own label.
func CrowdedLabelPositions() map[RegionCode]Geo { return MergePositions(crowdedLabelPositions, nil) }

// LeaderCentroids returns the leader line origins for crowded regions.
func LeaderCentroids() map[RegionCode]Geo { return MergePositions(leaderCentroids, nil) }

// DefaultPositions returns the approximate geographic center of every
// region, used as the default label and marker anchor.
func DefaultPositions() map[RegionCode]Geo { return MergePositions(defaultPositions, nil) }

// MergePositions returns a new map with base overlaid by overrides.
func MergePositions(base, overrides map[RegionCode]Geo) map[RegionCode]Geo {
	out := make(map[RegionCode]Geo, len(base)+len(overrides))
	for code, g := range base {
		out[code] = g
	}
	for code, g := range overrides {
		out[code] = g
	}
	return out
}
