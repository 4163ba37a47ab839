package domain

import (
	"fmt"
	"sort"
)

// Category is the classification tag of a joined record.
type Category string

const (
	CategoryHigh  Category = "High"
	CategoryLow   Category = "Low"
	CategoryMixed Category = "Mixed"
)

// Mode selects how per-metric threshold results combine into a Category.
type Mode string

const (
	// ModeTwoWay: High when any metric exceeds its threshold, else Low.
	ModeTwoWay Mode = "two-way"
	// ModeThreeWay: High when any metric exceeds, Low when every metric is
	// present and at or below, else Mixed.
	ModeThreeWay Mode = "three-way"
)

// ParseMode accepts "two-way" or "three-way"; empty means two-way.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeTwoWay:
		return ModeTwoWay, nil
	case ModeThreeWay:
		return ModeThreeWay, nil
	default:
		return "", fmt.Errorf("unknown classify mode %q", s)
	}
}

// Categories lists the tags a mode can produce, in legend order.
func (m Mode) Categories() []Category {
	if m == ModeThreeWay {
		return []Category{CategoryHigh, CategoryLow, CategoryMixed}
	}
	return []Category{CategoryHigh, CategoryLow}
}

// Classifier applies a ThresholdConfig to joined records.
type Classifier struct {
	Mode       Mode
	Thresholds ThresholdConfig
}

// Classify tags record. Only metrics with a threshold take part; "exceeds"
// is strict, so a value equal to its threshold counts as at-or-below. A
// thresholded metric missing from the record never exceeds; in three-way
// mode it also keeps the record out of Low, so such a record is Mixed
// unless another metric is above its threshold.
func (c Classifier) Classify(record JoinedRecord) Category {
	above, missing := 0, 0
	for _, m := range c.metrics() {
		v, ok := record.Values[m]
		switch {
		case !ok:
			missing++
		case v > c.Thresholds[m]:
			above++
		}
	}

	switch c.Mode {
	case ModeThreeWay:
		switch {
		case above > 0:
			return CategoryHigh
		case missing == 0:
			return CategoryLow
		default:
			return CategoryMixed
		}
	default:
		if above > 0 {
			return CategoryHigh
		}
		return CategoryLow
	}
}

// ClassifyAll returns copies of records with Category set.
func (c Classifier) ClassifyAll(records []JoinedRecord) []JoinedRecord {
	out := make([]JoinedRecord, len(records))
	for i, r := range records {
		r.Category = c.Classify(r)
		out[i] = r
	}
	return out
}

// metrics returns the thresholded metrics in a stable order.
func (c Classifier) metrics() []Metric {
	ms := make([]Metric, 0, len(c.Thresholds))
	for m := range c.Thresholds {
		ms = append(ms, m)
	}
	sort.Slice(ms, func(i, j int) bool { return ms[i] < ms[j] })
	return ms
}
