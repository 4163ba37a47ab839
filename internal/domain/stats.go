package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// ErrNoValues is returned when a summary is requested over no data.
var ErrNoValues = errors.New("no values to summarize")

// DefaultHighCut is the fixed upper cluster boundary in $/MWh.
const DefaultHighCut = 50.0

// LadderStep is the spacing of the percentile ladder.
const LadderStep = 5

// PercentilePoint is one rung of the percentile ladder.
type PercentilePoint struct {
	Percentile int     `json:"percentile"`
	Value      float64 `json:"value"`
}

// Summary describes one numeric column.
type Summary struct {
	Count  int               `json:"count"`
	Min    float64           `json:"min"`
	Median float64           `json:"median"`
	Max    float64           `json:"max"`
	Q1     float64           `json:"q1"`
	Q2     float64           `json:"q2"`
	Q3     float64           `json:"q3"`
	P95    float64           `json:"p95"`
	Ladder []PercentilePoint `json:"ladder"`
}

// Summarize computes min/median/max, quartiles and the 0..100 ladder with a
// single interpolation rule, so Median, Q2 and the 50th rung are identical.
// NaN values are ignored.
func Summarize(values []float64) (Summary, error) {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return Summary{}, ErrNoValues
	}
	sort.Float64s(sorted)

	lo, err := stats.Min(sorted)
	if err != nil {
		return Summary{}, fmt.Errorf("min: %w", err)
	}
	hi, err := stats.Max(sorted)
	if err != nil {
		return Summary{}, fmt.Errorf("max: %w", err)
	}

	ladder := make([]PercentilePoint, 0, 100/LadderStep+1)
	for p := 0; p <= 100; p += LadderStep {
		ladder = append(ladder, PercentilePoint{Percentile: p, Value: Percentile(sorted, float64(p))})
	}

	median := Percentile(sorted, 50)
	return Summary{
		Count:  len(sorted),
		Min:    lo,
		Median: median,
		Max:    hi,
		Q1:     Percentile(sorted, 25),
		Q2:     median,
		Q3:     Percentile(sorted, 75),
		P95:    Percentile(sorted, 95),
		Ladder: ladder,
	}, nil
}

// Percentile returns the p-th percentile (0..100) of an ascending slice by
// linear interpolation between the closest ranks: h = (n-1)*p/100.
// It returns NaN for an empty slice.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	switch {
	case p <= 0:
		return sorted[0]
	case p >= 100:
		return sorted[n-1]
	}

	h := float64(n-1) * p / 100
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Clusters partitions regions into three ordered groups.
type Clusters struct {
	LowCut  float64      `json:"low_cut"`
	HighCut float64      `json:"high_cut"`
	Low     []RegionCode `json:"low"`
	Median  []RegionCode `json:"median"`
	High    []RegionCode `json:"high"`
}

// Partition assigns each region with a defined value to exactly one group:
// value <= lowCut is Low, lowCut < value <= highCut is Median, anything else
// is High. Predicates are checked in that order, so the groups stay disjoint
// even when lowCut > highCut. Members are sorted by region code.
func Partition(values map[RegionCode]float64, lowCut, highCut float64) Clusters {
	c := Clusters{LowCut: lowCut, HighCut: highCut}
	for code, v := range values {
		if math.IsNaN(v) {
			continue
		}
		switch {
		case v <= lowCut:
			c.Low = append(c.Low, code)
		case v <= highCut:
			c.Median = append(c.Median, code)
		default:
			c.High = append(c.High, code)
		}
	}
	sortCodes(c.Low)
	sortCodes(c.Median)
	sortCodes(c.High)
	return c
}

// Report is the console summary of one metric.
type Report struct {
	Metric   Metric   `json:"metric"`
	Summary  Summary  `json:"summary"`
	Clusters Clusters `json:"clusters"`
}

// BuildReport summarizes t and partitions it on its own median and highCut.
func BuildReport(t RegionTable, highCut float64) (Report, error) {
	values := make([]float64, 0, len(t.Values))
	for _, v := range t.Values {
		values = append(values, v)
	}
	summary, err := Summarize(values)
	if err != nil {
		return Report{}, fmt.Errorf("summarize %s: %w", t.Metric, err)
	}
	return Report{
		Metric:   t.Metric,
		Summary:  summary,
		Clusters: Partition(t.Values, summary.Median, highCut),
	}, nil
}
