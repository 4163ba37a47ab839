package domain

import (
	"math"
	"sort"
)

// LabelPlacement is where one region's label goes. Leader is set only for
// crowded regions whose centroid is known.
type LabelPlacement struct {
	Region RegionCode `json:"region"`
	Anchor Geo        `json:"anchor"`
	Leader *Segment   `json:"leader,omitempty"`
	Value  float64    `json:"value"`
}

// LabelLayout places one label per record using static position tables.
type LabelLayout struct {
	// Metric selects the record value written on the label.
	Metric Metric
	// Crowded maps regions to their off-region label anchor.
	Crowded map[RegionCode]Geo
	// Centroids are the leader line origins for crowded regions.
	Centroids map[RegionCode]Geo
	// Defaults are the anchors for every other region.
	Defaults map[RegionCode]Geo
}

// NewLabelLayout builds a layout over the built-in position tables.
func NewLabelLayout(metric Metric) LabelLayout {
	return LabelLayout{
		Metric:    metric,
		Crowded:   CrowdedLabelPositions(),
		Centroids: LeaderCentroids(),
		Defaults:  DefaultPositions(),
	}
}

// Place returns label placements sorted by region code. Records without a
// finite value for the layout metric get no label, and neither do
// non-crowded regions without a default anchor.
func (l LabelLayout) Place(records []JoinedRecord) []LabelPlacement {
	placements := make([]LabelPlacement, 0, len(records))
	for _, r := range records {
		v, ok := r.Values[l.Metric]
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		p, ok := l.place(r.Region, v)
		if !ok {
			continue
		}
		placements = append(placements, p)
	}
	sortPlacements(placements)
	return placements
}

func (l LabelLayout) place(code RegionCode, value float64) (LabelPlacement, bool) {
	if anchor, crowded := l.Crowded[code]; crowded {
		p := LabelPlacement{Region: code, Anchor: anchor, Value: value}
		if centroid, ok := l.Centroids[code]; ok {
			p.Leader = &Segment{From: centroid, To: anchor}
		}
		return p, true
	}
	anchor, ok := l.Defaults[code]
	if !ok {
		return LabelPlacement{}, false
	}
	return LabelPlacement{Region: code, Anchor: anchor, Value: value}, true
}

func sortPlacements(ps []LabelPlacement) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Region < ps[j].Region })
}
